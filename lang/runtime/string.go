package runtime

import "strconv"

// String is the type of a text value.
type String string

var typeString = coreTypes.Intern("string")

var _ Value = String("")
var _ Sequence = String("")

func (s String) String() string { return string(s) }
func (s String) Type() *Type    { return typeString }

func (s String) Equal(y Value) bool {
	ys, ok := y.(String)
	return ok && s == ys
}

// Len and Index operate on bytes, not runes, matching the teacher's Tuple
// and original_source's byte-oriented string slicing.
func (s String) Len() int { return len(s) }

func (s String) Index(i int) Value {
	return Int(s[i])
}

// Quote returns a Go-syntax-quoted rendering of the string.
func (s String) Quote() string { return strconv.Quote(string(s)) }
