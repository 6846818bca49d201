package runtime

import "strings"

// Array is a mutable, randomly indexable run of values. Supplementary to
// spec.md's minimal value-variant list ("arrays" is named explicitly in §3
// but left unspecified beyond that); its shape follows the teacher's Tuple,
// made mutable per original_source's PersistentVector-backed pixie arrays
// (mutation there goes through a copy-on-write root, simplified here to a
// directly mutable slice since spec.md does not call for persistence).
type Array struct {
	elems []Value
}

var typeArray = coreTypes.Intern("array")

var _ Value = (*Array)(nil)
var _ Sequence = (*Array)(nil)

// NewArray returns an Array owning elems (no copy).
func NewArray(elems []Value) *Array {
	return &Array{elems: elems}
}

func (a *Array) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range a.elems {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(v.String())
	}
	b.WriteByte(']')
	return b.String()
}

func (a *Array) Type() *Type { return typeArray }

func (a *Array) Equal(y Value) bool {
	ya, ok := y.(*Array)
	if !ok || len(a.elems) != len(ya.elems) {
		return false
	}
	for i, v := range a.elems {
		vo, ok := v.(Ordered)
		if !ok || !vo.Equal(ya.elems[i]) {
			return false
		}
	}
	return true
}

func (a *Array) Len() int          { return len(a.elems) }
func (a *Array) Index(i int) Value { return a.elems[i] }

// Slice returns the elements from lo (inclusive) to hi (exclusive), used by
// VariadicCode.Pack to extract the trailing rest-arguments (variadic.go).
func (a *Array) Slice(lo, hi int) []Value { return a.elems[lo:hi] }
