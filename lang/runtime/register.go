package runtime

import "strings"

// StdlibNamespace is the namespace as-var installs into when no namespace
// is given explicitly, mirroring original_source's bare `intern_var(name)`
// convenience (ns defaults to "").
const StdlibNamespace = ""

// AsVar installs fn as the root of the var ns/name (spec.md §4.5). If fn is
// a bare Go function rather than an already-built Callable, wrap it with
// WrapFunc first and pass the result here; AsVar itself only deals with
// already-built callables, since Go's type system can't express "assert
// argument count" generically the way munge's Python counterpart does for
// arbitrary function objects.
func AsVar(reg *NamespaceRegistry, ns, name string, fn Callable) *Var {
	v := reg.InternVar(ns, name)
	v.SetRoot(fn)
	return v
}

// Munge applies the host-identifier mangling spec.md §4.5 specifies for
// protocol method names: '-' -> '_', '?' -> "_QMARK_", '!' -> "_BANG_".
// Observable only in host-side identifier lookup; the runtime registry
// itself always stores the original, unmunged name.
func Munge(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch r {
		case '-':
			b.WriteByte('_')
		case '?':
			b.WriteString("_QMARK_")
		case '!':
			b.WriteString("_BANG_")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DefProtocol creates a Protocol named name and one PolymorphicFn per entry
// in methods, interning a var for each under ns and returning both the
// protocol and a name -> *PolymorphicFn map of its methods (spec.md §4.5).
func DefProtocol(reg *NamespaceRegistry, ns, name string, methods []string) (*Protocol, map[string]*PolymorphicFn) {
	proto := NewProtocol(name)
	fns := make(map[string]*PolymorphicFn, len(methods))
	for _, m := range methods {
		pfn := NewPolymorphicFn(m, proto)
		AsVar(reg, ns, m, pfn)
		fns[m] = pfn
	}
	return proto, fns
}
