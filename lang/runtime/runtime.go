package runtime

// Runtime bundles the process-wide state a running program shares: the
// namespace registry and a type registry for host-defined types (core types
// like Int and Bool live in the package-level coreTypes registry, not here,
// since they exist independent of any particular Runtime instance). It also
// owns the Addable arithmetic protocol the interpreter's ADD opcode
// dispatches through. EQ has no protocol: Eq compares through the Ordered
// interface directly.
type Runtime struct {
	Namespaces *NamespaceRegistry
	Types      *TypeRegistry

	addProtocol *Protocol
	addFn       *PolymorphicFn
}

// NewRuntime constructs a Runtime with its arithmetic protocol wired for the
// built-in numeric types.
func NewRuntime() *Runtime {
	r := &Runtime{
		Namespaces: NewNamespaceRegistry(),
		Types:      NewTypeRegistry(),
	}
	r.installArithmetic()
	return r
}

func (r *Runtime) installArithmetic() {
	r.addProtocol = NewProtocol("Addable")
	r.addFn = NewPolymorphicFn("add", r.addProtocol)
	r.addFn.Extend(typeInt, WrapFunc("add/int", 2, func(argv []Value) (Value, error) {
		return argv[0].(Numeric).Add(argv[1])
	}))
	r.addFn.Extend(typeFloat, WrapFunc("add/float", 2, func(argv []Value) (Value, error) {
		return argv[0].(Numeric).Add(argv[1])
	}))
}

// Add implements the ADD opcode's dispatch: it delegates to the Addable
// protocol, keyed on a's type, so host code can extend arithmetic to new
// types without the interpreter knowing about them.
func (r *Runtime) Add(th *Thread, a, b Value) (Value, error) {
	fn, err := r.addFn.Dispatch([]Value{a, b})
	if err != nil {
		return nil, err
	}
	return Invoke(th, r, fn, []Value{a, b})
}

// Eq implements the EQ opcode: values sharing the Ordered interface compare
// structurally; everything else compares false rather than failing, since
// "is this == that" should never itself raise for two unrelated types.
func (r *Runtime) Eq(a, b Value) (Value, error) {
	ao, ok := a.(Ordered)
	if !ok {
		return False, nil
	}
	return Bool(ao.Equal(b)), nil
}
