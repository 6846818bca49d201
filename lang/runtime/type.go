package runtime

import "sync"

// coreTypes interns the handles for the value variants built into the
// language itself (nil, bool, int, ...). Host-registered types live in a
// Runtime's own TypeRegistry instead (see runtime.go).
var coreTypes = NewTypeRegistry()

// Type is a first-class runtime type handle. Two Type values are equal iff
// they are the same pointer (spec.md §3: "Equality of types is identity").
// A Type is itself a Value, since INSTALL takes a type handle off the
// operand stack alongside the method and protocol-fn it binds it to
// (spec.md §4.1).
type Type struct {
	name string
}

var typeType = coreTypes.Intern("type")

var _ Value = (*Type)(nil)

func (t *Type) String() string { return t.name }

// Name returns the type's declared name.
func (t *Type) Name() string { return t.name }

// Type returns the handle for "type" itself, the type of every Type value.
func (t *Type) Type() *Type { return typeType }

// TypeRegistry interns Type handles by name, so that host code registering
// the same type name twice (e.g. across two calls to a loader) gets back the
// identical *Type rather than two distinct, incompatible handles.
type TypeRegistry struct {
	mu    sync.Mutex
	types map[string]*Type
}

// NewTypeRegistry returns an empty registry.
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{types: make(map[string]*Type)}
}

// Intern returns the Type named name, creating it if this is the first time
// name has been seen. Idempotent, like Namespace.InternOrMake for vars.
func (r *TypeRegistry) Intern(name string) *Type {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.types[name]; ok {
		return t
	}
	t := &Type{name: name}
	r.types[name] = t
	return t
}

// Lookup returns the Type named name without creating it.
func (r *TypeRegistry) Lookup(name string) (*Type, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.types[name]
	return t, ok
}
