package runtime

import "strconv"

// Int is the type of an integer value.
type Int int64

var typeInt = coreTypes.Intern("int")

var _ Value = Int(0)

func (i Int) String() string { return strconv.FormatInt(int64(i), 10) }
func (i Int) Type() *Type    { return typeInt }

func (i Int) Equal(y Value) bool {
	switch y := y.(type) {
	case Int:
		return i == y
	case Float:
		return Float(i) == y
	default:
		return false
	}
}

func (i Int) Add(y Value) (Value, error) {
	switch y := y.(type) {
	case Int:
		return i + y, nil
	case Float:
		return Float(i) + y, nil
	default:
		return nil, typeMismatch("add", i, y)
	}
}
