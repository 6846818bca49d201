package runtime

import (
	"context"
	"sync/atomic"
)

// Thread is one logical thread of execution: its own dynamic-var binding
// stack, its own call stack (for trace rendering and depth limits), and its
// own step counter. spec.md's Non-goals rule out running more than one
// Thread over the same Runtime concurrently, but each Thread still gets its
// own DynamicVars so nested invocations on the same goroutine compose
// correctly. Shape adapted from the teacher's lang/machine.Thread.
type Thread struct {
	Name string

	// MaxSteps bounds the number of opcodes executed before Step fails with
	// an error; <= 0 means no limit. A deliberately coarse proxy for wall
	// time, the same role the teacher's Thread.MaxSteps plays.
	MaxSteps int

	// MaxCallDepth bounds the interpreted-call stack; <= 0 means no limit.
	// RECUR, LOOP_RECUR and a TAIL_CALL into the same Code never push a new
	// entry, so tight self-recursion loops can run past this limit without
	// tripping it; a TAIL_CALL into a different callable does push one.
	MaxCallDepth int

	dyn       *DynamicVars
	callStack []Frame
	steps     uint64
	cancelled atomic.Bool

	ctx       context.Context
	ctxCancel func()
}

// NewThread returns a thread with a fresh, single-frame DynamicVars stack.
func NewThread(name string) *Thread {
	return &Thread{Name: name, dyn: NewDynamicVars()}
}

// Dynamic returns the thread's dynamic-var binding stack.
func (th *Thread) Dynamic() *DynamicVars { return th.dyn }

// Cancel marks the thread cancelled; the interpreter loop checks this
// through Step before every instruction.
func (th *Thread) Cancel() { th.cancelled.Store(true) }

// Cancelled reports whether Cancel (or expiry of the context bound by
// WithContext) has fired.
func (th *Thread) Cancelled() bool {
	if th.cancelled.Load() {
		return true
	}
	if th.ctx != nil && th.ctx.Err() != nil {
		return true
	}
	return false
}

// Step increments the step counter and fails with an invariant-violation
// error if MaxSteps is exceeded, the same guard the teacher's Thread
// enforces per instruction.
func (th *Thread) Step() error {
	th.steps++
	if th.MaxSteps > 0 && th.steps > uint64(th.MaxSteps) {
		return NewEvalError(KindInvariantViolation, "%s: exceeded max steps (%d)", th.Name, th.MaxSteps)
	}
	if th.Cancelled() {
		return NewEvalError(KindInvariantViolation, "%s: cancelled", th.Name)
	}
	return nil
}

// PushCall pushes a call-stack entry, failing if MaxCallDepth would be
// exceeded.
func (th *Thread) PushCall(f Frame) error {
	if th.MaxCallDepth > 0 && len(th.callStack) >= th.MaxCallDepth {
		return NewEvalError(KindInvariantViolation, "%s: exceeded max call depth (%d)", th.Name, th.MaxCallDepth)
	}
	th.callStack = append(th.callStack, f)
	return nil
}

// PopCall pops the most recent call-stack entry.
func (th *Thread) PopCall() {
	th.callStack = th.callStack[:len(th.callStack)-1]
}

// CallDepth returns the current call-stack depth.
func (th *Thread) CallDepth() int { return len(th.callStack) }

// WithContext binds ctx to the thread so Cancelled observes its expiry too.
func (th *Thread) WithContext(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	th.ctx = ctx
	th.ctxCancel = cancel
}

// Close releases the thread's context, if any.
func (th *Thread) Close() {
	if th.ctxCancel != nil {
		th.ctxCancel()
	}
}
