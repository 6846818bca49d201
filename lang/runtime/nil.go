package runtime

// NilType is the type of Nil. Its only legal value is Nil. Represented as a
// distinct named type (rather than an untyped nil interface) so it can carry
// its own Type and String methods, matching spec.md's "nil" value variant.
type NilType byte

// Nil is the sole value of type NilType.
const Nil = NilType(0)

var typeNil = coreTypes.Intern("nil")

var _ Value = Nil

func (NilType) String() string { return "nil" }
func (NilType) Type() *Type    { return typeNil }
func (NilType) Equal(y Value) bool {
	_, ok := y.(NilType)
	return ok
}

// truthy reports whether v is considered true for COND_BR's branch test:
// spec.md §4.1 says only nil and false are falsy.
func truthy(v Value) bool {
	switch v := v.(type) {
	case NilType:
		return false
	case Bool:
		return bool(v)
	default:
		return true
	}
}
