package runtime

// Callable is implemented by every invokable value variant named in
// spec.md §3: Code, Closure, NativeFn, VariadicCode, MultiArityFn,
// PolymorphicFn, DoublePolymorphicFn, Var. Dispatch over the variant lives
// in Invoke (interp.go), not in this interface, mirroring spec.md §4.2's
// "invoke(callable, argv) selects by variant" phrasing rather than a single
// polymorphic Call method.
type Callable interface {
	Value
	// IsMacro reports the macro flag set at definition time. The interpreter
	// never consults it; it exists purely for the (external) compiler to
	// read back, per spec.md §3.
	IsMacro() bool
}

// macroHeader is embedded by every Callable implementation to give it the
// shared macro flag without forcing an inheritance hierarchy Go doesn't
// have — the same "common struct holds the shared header, interfaces hold
// the behaviour" shape spec.md §9 calls out explicitly for this port.
type macroHeader struct {
	macro bool
}

func (h macroHeader) IsMacro() bool { return h.macro }
