package runtime

import "strconv"

// Float is the type of a floating-point value, supplementary to spec.md's
// value model (original_source/pixie/vm/code.py has no direct Float type of
// its own, but pixie's wider numeric tower includes floats throughout the
// rest of original_source; carried here so ADD and EQ have somewhere to send
// mixed Int/Float arithmetic).
type Float float64

var typeFloat = coreTypes.Intern("float")

var _ Value = Float(0)

func (f Float) String() string { return strconv.FormatFloat(float64(f), 'g', -1, 64) }
func (f Float) Type() *Type    { return typeFloat }

// Equal follows IEEE 754: NaN is equal to nothing, including itself.
func (f Float) Equal(y Value) bool {
	switch y := y.(type) {
	case Float:
		return f == y
	case Int:
		return f == Float(y)
	default:
		return false
	}
}

func (f Float) Add(y Value) (Value, error) {
	switch y := y.(type) {
	case Float:
		return f + y, nil
	case Int:
		return f + Float(y), nil
	default:
		return nil, typeMismatch("add", f, y)
	}
}
