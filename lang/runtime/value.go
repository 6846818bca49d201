// Package runtime implements the execution core described by spec.md: the
// value model, the stack-based bytecode interpreter, the callable hierarchy,
// the namespace/var system with dynamic bindings, and the polymorphic
// dispatch machinery. Much of its shape is adapted from the teacher's
// lang/machine package, which is itself adapted from the Starlark source
// code (see https://github.com/google/starlark-go).
package runtime

import "fmt"

// Value is the interface implemented by every runtime datum. Every value
// carries a reference to its Type; equality of types is identity (spec.md
// §3), which is why Type is a pointer.
type Value interface {
	// String returns the value's textual representation.
	String() string
	// Type returns the value's runtime type.
	Type() *Type
}

// Ordered is implemented by values the EQ opcode can compare; Runtime.Eq
// (runtime.go) calls Equal through this interface directly.
type Ordered interface {
	Value
	// Equal reports whether the receiver equals y. y may be of any type;
	// implementations return false for a y they cannot compare against.
	Equal(y Value) bool
}

// Numeric is implemented by values the ADD opcode's arithmetic protocol can
// operate on.
type Numeric interface {
	Value
	// Add returns the receiver plus y. The arithmetic protocol in runtime.go
	// selects the receiver by its type; Add itself handles the mixed Int +
	// Float case and fails for any other y type.
	Add(y Value) (Value, error)
}

// Sequence abstracts a fixed-length, randomly indexable run of values, used
// by Array and Tuple-like values produced by VariadicCode packing.
type Sequence interface {
	Value
	Len() int
	Index(i int) Value
}

func typeMismatch(op string, a, b Value) error {
	return fmt.Errorf("%s: cannot combine %s and %s", op, a.Type(), b.Type())
}
