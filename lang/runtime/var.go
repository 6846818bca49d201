package runtime

import (
	"fmt"
	"sync/atomic"
)

// undefinedType is the sole type of the undefined sentinel, a var's root
// before anything has been installed into it. Kept distinct from Nil so a
// var that has genuinely been set_root(nil) is distinguishable from one
// nobody has touched yet (original_source's module-level `undefined`).
type undefinedType struct{}

func (undefinedType) String() string { return "#<undefined>" }
func (undefinedType) Type() *Type    { return typeUndefined }
func (undefinedType) Equal(y Value) bool {
	_, ok := y.(undefinedType)
	return ok
}

var typeUndefined = coreTypes.Intern("undefined")

// undefined is the distinguished sentinel value, unexported: code outside
// this package observes its effect (an undefined-var error from Deref)
// rather than the sentinel itself.
var undefined Value = undefinedType{}

var _ Value = undefined

// Var is a mutable container residing in a namespace (spec.md §3): owning
// namespace name, var name, a root value, a dynamic flag, and a revision
// counter bumped on every root change or flag flip. Invariant: a var never
// reverts from dynamic to non-dynamic (enforced by SetDynamic being the only
// setter and never having an unset counterpart).
type Var struct {
	macroHeader
	NS      string
	Name    string
	root    Value
	dynamic bool
	rev     atomic.Int64
}

var typeVar = coreTypes.Intern("var")

var _ Value = (*Var)(nil)
var _ Callable = (*Var)(nil)

// NewVar returns a var with root undefined and dynamic false, owned by ns.
func NewVar(ns, name string) *Var {
	return &Var{NS: ns, Name: name, root: undefined}
}

func (v *Var) String() string { return fmt.Sprintf("#'%s/%s", v.NS, v.Name) }
func (v *Var) Type() *Type    { return typeVar }

// Revision returns the current revision counter, for cache-guard use by an
// optimising interpreter (spec.md §4.4's rationale applies equally here).
func (v *Var) Revision() int64 { return v.rev.Load() }

// IsDynamic reports the dynamic flag.
func (v *Var) IsDynamic() bool { return v.dynamic }

// SetRoot always succeeds: it increments the revision and replaces the root
// (spec.md §4.3).
func (v *Var) SetRoot(val Value) {
	v.root = val
	v.rev.Add(1)
}

// SetDynamic flips the dynamic flag on, bumping the revision. It is
// idempotent but still counts as a revision bump even if already dynamic,
// matching original_source's unconditional self._rev += 1.
func (v *Var) SetDynamic() {
	v.dynamic = true
	v.rev.Add(1)
}

// SetValue writes val into the top dynamic-var frame of dv. Allowed only
// when the var is dynamic (spec.md §4.3).
func (v *Var) SetValue(dv *DynamicVars, val Value) error {
	if !v.dynamic {
		return NewEvalError(KindInvariantViolation, "can't set the value of a non-dynamic var %s/%s", v.NS, v.Name)
	}
	dv.Set(v, val)
	return nil
}

// Deref resolves the var's current value: if dynamic, the top dynamic-var
// frame's binding, falling back to the root if the frame has none; else the
// root directly. Fails with an undefined-var error if the resolved value is
// still the undefined sentinel (spec.md §4.3).
func (v *Var) Deref(dv *DynamicVars) (Value, error) {
	val := v.root
	if v.dynamic {
		if bound, ok := dv.Get(v); ok {
			val = bound
		}
	}
	if val == undefined {
		return nil, NewEvalError(KindUndefinedVar, "undefined var %s/%s", v.NS, v.Name)
	}
	return val, nil
}
