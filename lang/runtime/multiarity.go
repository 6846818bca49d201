package runtime

import (
	"fmt"
	"sort"
	"strings"
)

// MultiArityFn maps exact arity to callable, with an optional rest callable
// and its own required_arity, for the ">= n args" tail case (spec.md §3).
type MultiArityFn struct {
	macroHeader
	Name          string
	ByArity       map[int]Callable
	Rest          Callable // nil if no rest callable
	RestRequired  int
}

var typeMultiArityFn = coreTypes.Intern("multi-arity-fn")

var _ Value = (*MultiArityFn)(nil)
var _ Callable = (*MultiArityFn)(nil)

// NewMultiArityFn returns an empty multi-arity dispatcher named name.
func NewMultiArityFn(name string) *MultiArityFn {
	return &MultiArityFn{Name: name, ByArity: make(map[int]Callable)}
}

func (m *MultiArityFn) String() string { return "multi-arity:" + m.Name }
func (m *MultiArityFn) Type() *Type    { return typeMultiArityFn }

// AddArity installs fn for the exact argument count arity.
func (m *MultiArityFn) AddArity(arity int, fn Callable) {
	m.ByArity[arity] = fn
}

// SetRest installs the rest callable, used for argc >= requiredArity once no
// exact-arity entry matches.
func (m *MultiArityFn) SetRest(requiredArity int, fn Callable) {
	m.Rest = fn
	m.RestRequired = requiredArity
}

// Select implements spec.md §4.2: "look up the callable for exact arity;
// else, if a rest callable exists and arity >= required, use the rest; else
// fail with an arity-mismatch error naming all accepted arities."
func (m *MultiArityFn) Select(argc int) (Callable, error) {
	if fn, ok := m.ByArity[argc]; ok {
		return fn, nil
	}
	if m.Rest != nil && argc >= m.RestRequired {
		return m.Rest, nil
	}
	return nil, NewEvalError(KindArityMismatch, "%s: no match for %d argument(s) (accepts %s)",
		m.Name, argc, m.acceptedArities())
}

func (m *MultiArityFn) acceptedArities() string {
	arities := make([]int, 0, len(m.ByArity))
	for a := range m.ByArity {
		arities = append(arities, a)
	}
	sort.Ints(arities)
	parts := make([]string, len(arities))
	for i, a := range arities {
		parts[i] = fmt.Sprintf("%d", a)
	}
	if m.Rest != nil {
		parts = append(parts, fmt.Sprintf("%d+", m.RestRequired))
	}
	return strings.Join(parts, ", ")
}
