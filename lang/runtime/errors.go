package runtime

import (
	"errors"
	"fmt"
	"strings"
)

// Frame is one entry of an EvalError's trace, innermost call first (spec.md
// §7: "an ordered trace from innermost to outermost"). Exactly one of Code,
// Method, or Native is set, identifying which of the three trace-attaching
// boundaries produced the entry.
type Frame struct {
	Code   string // interpreted-callable boundary: the Code's symbolic name
	Method string // polymorphic-call boundary: method name
	Type   string // polymorphic-call boundary: dispatched first-arg type
	Native string // native-function boundary: the NativeFn's name

	Line, Col int  // source point, if a debug-point entry bracketed the IP
	HasPos    bool
}

func (f Frame) String() string {
	var name string
	switch {
	case f.Method != "":
		name = fmt.Sprintf("%s on %s", f.Method, f.Type)
	case f.Native != "":
		name = f.Native + " (native)"
	default:
		name = f.Code
	}
	if f.HasPos {
		return fmt.Sprintf("%s at %d:%d", name, f.Line, f.Col)
	}
	return name
}

// ErrorKind classifies an EvalError the way spec.md §7 names its abstract
// error kinds. It carries no behaviour of its own; callers switch on it to
// decide how to react, the way a REPL might print a friendlier message for
// undefined-var than for an internal invariant violation.
type ErrorKind int

const (
	// KindHostError wraps an error surfaced by a native callable.
	KindHostError ErrorKind = iota
	KindArityMismatch
	KindUndefinedVar
	KindUnresolvedNamespace
	KindNoProtocolOverride
	KindTypeAssertionFailure
	KindInvariantViolation
)

func (k ErrorKind) String() string {
	switch k {
	case KindArityMismatch:
		return "arity-mismatch"
	case KindUndefinedVar:
		return "undefined-var"
	case KindUnresolvedNamespace:
		return "unresolved-namespace"
	case KindNoProtocolOverride:
		return "no-protocol-override"
	case KindTypeAssertionFailure:
		return "type-assertion-failure"
	case KindInvariantViolation:
		return "invariant-violation"
	default:
		return "host-error"
	}
}

// EvalError is the interpreter's single error type: a message, a kind, and
// an accumulating call-stack trace. Propagation never uses panic/recover for
// ordinary failures; every opcode that can fail returns an error, and the
// interpreter's three boundary points (interp.go's runCode for Code/Closure,
// interp.go's Invoke for PolymorphicFn/DoublePolymorphicFn, nativefn.go's
// Invoke) wrap it with AddFrame before returning it further up, per spec.md
// §7.
type EvalError struct {
	Kind    ErrorKind
	Message string
	Trace   []Frame
}

var _ error = (*EvalError)(nil)

// NewEvalError constructs a fresh error with an empty trace.
func NewEvalError(kind ErrorKind, format string, args ...any) *EvalError {
	return &EvalError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func (e *EvalError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	b.WriteString(": ")
	b.WriteString(e.Message)
	for _, f := range e.Trace {
		b.WriteString("\n\tat ")
		b.WriteString(f.String())
	}
	return b.String()
}

// AddFrame appends a trace entry and returns the receiver, so call sites can
// write `return nil, err.AddFrame(...)`.
func (e *EvalError) AddFrame(f Frame) *EvalError {
	e.Trace = append(e.Trace, f)
	return e
}

// AsEvalError unwraps err into an *EvalError if it is (or wraps) one;
// otherwise it wraps err as a host-error, the pass-through kind spec.md §7
// reserves for errors raised by native callables.
func AsEvalError(err error) *EvalError {
	if err == nil {
		return nil
	}
	var ee *EvalError
	if errors.As(err, &ee) {
		return ee
	}
	return &EvalError{Kind: KindHostError, Message: err.Error()}
}
