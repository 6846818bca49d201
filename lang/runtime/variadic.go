package runtime

import "fmt"

// VariadicCode wraps a callable and a required_arity, packing surplus
// arguments into a fresh Array at the tail position (spec.md §3, §4.2).
// Constructed by MAKE_VARIADIC.
type VariadicCode struct {
	macroHeader
	Inner        Callable
	RequiredArity int
}

var typeVariadicCode = coreTypes.Intern("variadic-code")

var _ Value = (*VariadicCode)(nil)
var _ Callable = (*VariadicCode)(nil)

// NewVariadicCode wraps inner with the given required arity, inheriting
// inner's macro flag.
func NewVariadicCode(inner Callable, requiredArity int) *VariadicCode {
	return &VariadicCode{
		macroHeader:   macroHeader{macro: inner.IsMacro()},
		Inner:         inner,
		RequiredArity: requiredArity,
	}
}

func (v *VariadicCode) String() string {
	return fmt.Sprintf("variadic(%d):%s", v.RequiredArity, v.Inner)
}
func (v *VariadicCode) Type() *Type { return typeVariadicCode }

// Pack implements spec.md §4.2's exact branching:
//
//	r == required_arity, k == len(argv):
//	  r == 0        -> inner([array(argv)])
//	  k == r        -> inner(argv ++ [array([])])
//	  k > r         -> inner(argv[0..r] ++ [array(argv[r..])])
//	  k < r         -> arity error
func (v *VariadicCode) Pack(argv []Value) ([]Value, error) {
	r, k := v.RequiredArity, len(argv)
	switch {
	case r == 0:
		return []Value{NewArray(append([]Value(nil), argv...))}, nil
	case k == r:
		out := append(append([]Value(nil), argv...), NewArray(nil))
		return out, nil
	case k > r:
		rest := NewArray(append([]Value(nil), NewArray(argv).Slice(r, k)...))
		out := append(append([]Value(nil), argv[:r]...), rest)
		return out, nil
	default:
		return nil, NewEvalError(KindArityMismatch,
			"%s: expected at least %d argument(s), got %d", v, r, k)
	}
}
