package runtime

import "fmt"

// NativeFn is a callable implemented by a host Go function taking an
// argument vector (spec.md §3/§4.2). Invoke appends a native trace entry
// naming Name on failure, mirroring original_source/pixie/vm/code.py's
// wrap_fn, which appends a NativeCodeInfo(fn_name) frame to any
// WrappedException escaping the wrapped call.
type NativeFn struct {
	macroHeader
	Name string
	Fn   func(argv []Value) (Value, error)
}

var typeNativeFn = coreTypes.Intern("native-fn")

var _ Value = (*NativeFn)(nil)
var _ Callable = (*NativeFn)(nil)

// NewNativeFn wraps fn under name. macro is almost always false; the flag
// exists because spec.md's Callable sum requires every variant to carry one.
func NewNativeFn(name string, macro bool, fn func(argv []Value) (Value, error)) *NativeFn {
	return &NativeFn{macroHeader: macroHeader{macro: macro}, Name: name, Fn: fn}
}

func (n *NativeFn) String() string { return fmt.Sprintf("native:%s", n.Name) }
func (n *NativeFn) Type() *Type    { return typeNativeFn }

// Invoke calls the wrapped function, appending a native trace frame to any
// error that escapes it.
func (n *NativeFn) Invoke(argv []Value) (Value, error) {
	v, err := n.Fn(argv)
	if err != nil {
		return nil, AsEvalError(err).AddFrame(Frame{Native: n.Name})
	}
	return v, nil
}

// WrapFunc builds a fixed-arity NativeFn that asserts len(argv) == arity
// before calling fn, raising an arity-mismatch EvalError otherwise. This is
// the Go analogue of original_source's per-arity wrapped_fn closures
// (wrap_fn), collapsed to a single arity parameter since Go has no
// func_code.co_argcount to introspect.
func WrapFunc(name string, arity int, fn func(argv []Value) (Value, error)) *NativeFn {
	return NewNativeFn(name, false, func(argv []Value) (Value, error) {
		if len(argv) != arity {
			return nil, NewEvalError(KindArityMismatch,
				"%s: expected %d argument(s), got %d", name, arity, len(argv))
		}
		return fn(argv)
	})
}
