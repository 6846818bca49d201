package runtime

import (
	"fmt"

	"github.com/kgann/pixie/lang/bytecode"
)

// Code is an interpreted callable: a symbolic name, an immutable constant
// pool, immutable bytecode, a precomputed stack_size upper bound, and an
// optional debug-point table (spec.md §3). The bytecode, stack size, and
// debug points live in *bytecode.Unit (the wire contract of §6); Consts is
// the reified form of Unit.Consts (literals turned into Values, ConstRaw
// entries unwrapped), built once by NewCode so the interpreter never has to
// branch on ConstKind in its hot loop.
type Code struct {
	macroHeader
	Unit   *bytecode.Unit
	Consts []Value
}

var typeCode = coreTypes.Intern("code")

var _ Value = (*Code)(nil)
var _ Callable = (*Code)(nil)

// NewCode reifies u's constant pool and wraps the result as a callable
// value. Fails if a ConstRaw entry's Any isn't a Value, or an unknown
// ConstKind appears (both indicate a malformed Unit rather than anything a
// well-behaved compiler would produce).
func NewCode(u *bytecode.Unit, macro bool) (*Code, error) {
	consts := make([]Value, len(u.Consts))
	for i, c := range u.Consts {
		switch c.Kind {
		case bytecode.ConstInt:
			consts[i] = Int(c.Int)
		case bytecode.ConstFloat:
			consts[i] = Float(c.Flt)
		case bytecode.ConstString:
			consts[i] = String(c.Str)
		case bytecode.ConstRaw:
			v, ok := c.Any.(Value)
			if !ok {
				return nil, NewEvalError(KindInvariantViolation,
					"%s: const %d is not a runtime value (%T)", u.Name, i, c.Any)
			}
			consts[i] = v
		default:
			return nil, NewEvalError(KindInvariantViolation, "%s: unknown const kind %d", u.Name, c.Kind)
		}
	}
	return &Code{macroHeader: macroHeader{macro: macro}, Unit: u, Consts: consts}, nil
}

func (c *Code) String() string { return fmt.Sprintf("code:%s", c.Unit.Name) }
func (c *Code) Type() *Type    { return typeCode }

// Name returns the code's symbolic name, used by interp.go when it appends
// an interpreted-callable trace frame on failure.
func (c *Code) Name() string { return c.Unit.Name }
