package runtime

import (
	"sort"
	"sync"

	"golang.org/x/exp/maps"
)

// Refer is (target namespace, set of explicitly referred symbol names,
// refer-all flag) — spec.md §3.
type Refer struct {
	Target   *Namespace
	Names    map[string]bool
	ReferAll bool
}

// Namespace owns a mapping name -> *Var (the var registry) and a mapping
// alias -> Refer (the refer table), uniquely identified by its textual
// name (spec.md §3). Grounded on original_source's Namespace class.
type Namespace struct {
	mu       sync.Mutex
	Name     string
	registry map[string]*Var
	refers   map[string]*Refer
}

// NewNamespace returns an empty namespace named name.
func NewNamespace(name string) *Namespace {
	return &Namespace{
		Name:     name,
		registry: make(map[string]*Var),
		refers:   make(map[string]*Refer),
	}
}

// InternOrMake returns the existing var named name if present, else creates
// one with root undefined (spec.md §4.3: "interning is idempotent").
func (ns *Namespace) InternOrMake(name string) *Var {
	ns.mu.Lock()
	defer ns.mu.Unlock()
	if v, ok := ns.registry[name]; ok {
		return v
	}
	v := NewVar(ns.Name, name)
	ns.registry[name] = v
	return v
}

// Get returns the var named name without creating it.
func (ns *Namespace) Get(name string) (*Var, bool) {
	ns.mu.Lock()
	defer ns.mu.Unlock()
	v, ok := ns.registry[name]
	return v, ok
}

// AddRefer installs a Refer under alias (defaulting to target's own name),
// mirroring original_source's add_refer.
func (ns *Namespace) AddRefer(alias string, target *Namespace, names map[string]bool, referAll bool) {
	ns.mu.Lock()
	defer ns.mu.Unlock()
	if alias == "" {
		alias = target.Name
	}
	ns.refers[alias] = &Refer{Target: target, Names: names, ReferAll: referAll}
}

// referAliasesSorted returns the refer table's aliases in a deterministic
// order. spec.md §9 flags refer-iteration order as unspecified and warns
// callers not to rely on shadowing between two refer-all namespaces that
// expose the same name; sorting by alias at least makes a single run
// reproducible, using golang.org/x/exp/maps the way the teacher's own
// codebase reaches for it elsewhere for deterministic map iteration.
func (ns *Namespace) referAliasesSorted() []string {
	aliases := maps.Keys(ns.refers)
	sort.Strings(aliases)
	return aliases
}

// Resolve implements spec.md §4.3's namespace-resolution algorithm for a
// symbol with namespace part (sym.NS) and name part (sym.Name). useRefers
// disables refer-table fallback for the recursive call the algorithm makes
// into a referred namespace.
func (ns *Namespace) Resolve(reg *NamespaceRegistry, sym Symbol, useRefers bool) (*Var, error) {
	var resolvedNS *Namespace

	if sym.Qualified() {
		ns.mu.Lock()
		refer, hasRefer := ns.refers[sym.NS]
		ns.mu.Unlock()
		if hasRefer {
			resolvedNS = refer.Target
		}
		if resolvedNS == nil {
			resolvedNS, _ = reg.Get(sym.NS)
		}
		if resolvedNS == nil {
			return nil, NewEvalError(KindUnresolvedNamespace,
				"unable to resolve namespace: %s inside namespace %s", sym.NS, ns.Name)
		}
		v, _ := resolvedNS.Get(sym.Name)
		return v, nil
	}

	resolvedNS = ns
	if v, ok := resolvedNS.Get(sym.Name); ok {
		return v, nil
	}
	if !useRefers {
		return nil, nil
	}
	for _, alias := range ns.referAliasesSorted() {
		ns.mu.Lock()
		refer := ns.refers[alias]
		ns.mu.Unlock()
		if refer.Names[sym.Name] || refer.ReferAll {
			v, err := refer.Target.Resolve(reg, Symbol{Name: sym.Name}, false)
			if err != nil {
				return nil, err
			}
			if v != nil {
				return v, nil
			}
		}
	}
	return nil, nil
}

// NamespaceRegistry is a single process-wide mapping name -> Namespace;
// namespaces are created on demand and never destroyed during a run
// (spec.md §3).
type NamespaceRegistry struct {
	mu    sync.Mutex
	byName map[string]*Namespace
}

// NewNamespaceRegistry returns an empty registry.
func NewNamespaceRegistry() *NamespaceRegistry {
	return &NamespaceRegistry{byName: make(map[string]*Namespace)}
}

// FindOrMake returns the namespace named name, creating it on first use.
func (r *NamespaceRegistry) FindOrMake(name string) *Namespace {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n, ok := r.byName[name]; ok {
		return n
	}
	n := NewNamespace(name)
	r.byName[name] = n
	return n
}

// Get returns the namespace named name without creating it.
func (r *NamespaceRegistry) Get(name string) (*Namespace, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.byName[name]
	return n, ok
}

// InternVar is the registration glue's intern_var primitive (spec.md §4.5):
// find-or-make ns, then intern-or-make name within it.
func (r *NamespaceRegistry) InternVar(ns, name string) *Var {
	return r.FindOrMake(ns).InternOrMake(name)
}
