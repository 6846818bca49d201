package runtime

import (
	"sync/atomic"
)

// Protocol is a named collection of method references and a set of types
// that satisfy it, with a revision counter (spec.md §3). PolymorphicFns
// register themselves against a Protocol so Satisfies can answer "does this
// type implement this protocol".
type Protocol struct {
	Name       string
	rev        atomic.Int64
	satisfies  map[*Type]bool
	polyfns    map[string]*PolymorphicFn
}

var typeProtocol = coreTypes.Intern("protocol")

var _ Value = (*Protocol)(nil)

// NewProtocol returns an empty protocol named name.
func NewProtocol(name string) *Protocol {
	return &Protocol{Name: name, satisfies: make(map[*Type]bool), polyfns: make(map[string]*PolymorphicFn)}
}

func (p *Protocol) String() string { return "protocol:" + p.Name }
func (p *Protocol) Type() *Type    { return typeProtocol }

// Revision returns the protocol's revision counter.
func (p *Protocol) Revision() int64 { return p.rev.Load() }

// AddMethod registers a PolymorphicFn as one of this protocol's methods,
// mirroring original_source's Protocol.add_method.
func (p *Protocol) AddMethod(pfn *PolymorphicFn) {
	p.polyfns[pfn.Name] = pfn
	pfn.protocol = p
}

// addSatisfies records tp as satisfying the protocol and bumps the
// revision; called by PolymorphicFn.Extend and DoublePolymorphicFn.Extend2.
func (p *Protocol) addSatisfies(tp *Type) {
	p.satisfies[tp] = true
	p.rev.Add(1)
}

// Satisfies reports whether tp has been extended for any method of this
// protocol.
func (p *Protocol) Satisfies(tp *Type) bool { return p.satisfies[tp] }

// PolymorphicFn is itself callable: a name, back-reference to its protocol,
// a mapping Type -> callable, and a revision counter (spec.md §3/§4.4).
// There is no separate default callable: Dispatch itself returns the
// no-override error when no entry matches.
type PolymorphicFn struct {
	macroHeader
	Name     string
	protocol *Protocol
	byType   map[*Type]Callable
	rev      atomic.Int64
}

var typePolymorphicFn = coreTypes.Intern("polymorphic-fn")

var _ Value = (*PolymorphicFn)(nil)
var _ Callable = (*PolymorphicFn)(nil)

// NewPolymorphicFn returns a dispatcher named name with an empty dispatch
// table. Pass protocol to register it; nil is valid for ad hoc polyfns not
// attached to any protocol.
func NewPolymorphicFn(name string, protocol *Protocol) *PolymorphicFn {
	pfn := &PolymorphicFn{Name: name, protocol: protocol, byType: make(map[*Type]Callable)}
	if protocol != nil {
		protocol.AddMethod(pfn)
	}
	return pfn
}

func (pf *PolymorphicFn) String() string { return "polyfn:" + pf.Name }
func (pf *PolymorphicFn) Type() *Type    { return typePolymorphicFn }

// Revision returns the polyfn's own revision counter.
func (pf *PolymorphicFn) Revision() int64 { return pf.rev.Load() }

// Extend installs fn for tp, bumping both the polyfn's and the protocol's
// revision counters and recording tp as satisfying the protocol (spec.md
// §4.4). protocol may be nil if this polyfn has none.
func (pf *PolymorphicFn) Extend(tp *Type, fn Callable) {
	pf.byType[tp] = fn
	pf.rev.Add(1)
	if pf.protocol != nil {
		pf.protocol.addSatisfies(tp)
	}
}

// Dispatch resolves the callable for argv[0]'s type, falling back to a
// no-protocol-override error naming the method and the type if nothing
// matches (spec.md §4.4). A trace entry is attached by the caller
// (interp.go), which has access to the invocation's own position info.
func (pf *PolymorphicFn) Dispatch(argv []Value) (Callable, error) {
	if len(argv) == 0 {
		return nil, NewEvalError(KindArityMismatch, "%s: requires at least 1 argument", pf.Name)
	}
	tp := argv[0].Type()
	if fn, ok := pf.byType[tp]; ok {
		return fn, nil
	}
	protoName := "<none>"
	if pf.protocol != nil {
		protoName = pf.protocol.Name
	}
	return nil, NewEvalError(KindNoProtocolOverride,
		"no override for %s on %s in protocol %s", tp, pf.Name, protoName)
}

// DoublePolymorphicFn dispatches on the pair (argv[0].Type, argv[1].Type)
// (spec.md §3/§4.4).
type DoublePolymorphicFn struct {
	macroHeader
	Name     string
	protocol *Protocol
	byPair   map[[2]*Type]Callable
	Default  Callable
	rev      atomic.Int64
}

var typeDoublePolymorphicFn = coreTypes.Intern("double-polymorphic-fn")

var _ Value = (*DoublePolymorphicFn)(nil)
var _ Callable = (*DoublePolymorphicFn)(nil)

// NewDoublePolymorphicFn returns an empty dispatcher named name. def is the
// default callable invoked when no pair matches; it should itself raise a
// no-protocol-override error when called. protocol may be nil if this
// double-dispatcher has none.
func NewDoublePolymorphicFn(name string, protocol *Protocol, def Callable) *DoublePolymorphicFn {
	return &DoublePolymorphicFn{Name: name, protocol: protocol, byPair: make(map[[2]*Type]Callable), Default: def}
}

func (pf *DoublePolymorphicFn) String() string { return "double-polyfn:" + pf.Name }
func (pf *DoublePolymorphicFn) Type() *Type    { return typeDoublePolymorphicFn }

// Extend2 installs fn for the pair (tp1, tp2), bumping the revision and
// recording tp1 as satisfying the protocol, mirroring
// original_source/pixie/vm/code.py's DoublePolymorphicFn.extend2, which
// always calls self._protocol.add_satisfies(tp1).
func (pf *DoublePolymorphicFn) Extend2(tp1, tp2 *Type, fn Callable) {
	pf.byPair[[2]*Type{tp1, tp2}] = fn
	pf.rev.Add(1)
	if pf.protocol != nil {
		pf.protocol.addSatisfies(tp1)
	}
}

// Dispatch resolves the callable for the pair (argv[0].Type, argv[1].Type),
// falling back to Default if no entry matches either tier.
func (pf *DoublePolymorphicFn) Dispatch(argv []Value) (Callable, error) {
	if len(argv) < 2 {
		return nil, NewEvalError(KindArityMismatch, "%s: requires at least 2 arguments", pf.Name)
	}
	key := [2]*Type{argv[0].Type(), argv[1].Type()}
	if fn, ok := pf.byPair[key]; ok {
		return fn, nil
	}
	if pf.Default != nil {
		return pf.Default, nil
	}
	return nil, NewEvalError(KindNoProtocolOverride,
		"no override for %s on (%s, %s)", pf.Name, key[0], key[1])
}
