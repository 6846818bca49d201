package runtime

import "fmt"

// Closure is a Code plus an ordered vector of captured values. Invariant
// (spec.md §3): every CLOSED_OVER k in the embedded bytecode satisfies
// k < len(ClosedOvers); MAKE_CLOSURE is the only opcode that constructs one,
// and it is the compiler's job (out of scope here) to keep that invariant;
// the interpreter only ever indexes, it never validates it up front.
type Closure struct {
	macroHeader
	Code        *Code
	ClosedOvers []Value
}

var typeClosure = coreTypes.Intern("closure")

var _ Value = (*Closure)(nil)
var _ Callable = (*Closure)(nil)

// NewClosure captures over values, inheriting code's macro flag.
func NewClosure(code *Code, captured []Value) *Closure {
	return &Closure{macroHeader: code.macroHeader, Code: code, ClosedOvers: captured}
}

func (cl *Closure) String() string { return fmt.Sprintf("closure:%s", cl.Code.Name()) }
func (cl *Closure) Type() *Type    { return typeClosure }

// Name returns the underlying code's symbolic name.
func (cl *Closure) Name() string { return cl.Code.Name() }
