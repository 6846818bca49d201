package bytecode

import "fmt"

// DebugPoint brackets the half-open instruction range [StartPC, EndPC) with a
// source location, used to annotate trace entries when an error unwinds
// through a Unit's bytecode.
type DebugPoint struct {
	StartPC, EndPC uint32
	Line, Col      int
}

// Covers reports whether pc falls within the debug point's bracketed range.
func (d DebugPoint) Covers(pc uint32) bool { return pc >= d.StartPC && pc < d.EndPC }

// Const is a constant-pool entry. The compiler (out of scope) only ever
// produces the primitive kinds below; the runtime reifies them into Values
// when it loads a Unit (see runtime.NewCode).
type Const struct {
	// exactly one of these is meaningful, selected by Kind
	Kind ConstKind
	Int  int64
	Flt  float64
	Str  string
	// Any holds a pre-built runtime value for ConstRaw entries: a Var (for
	// SET_VAR/DEREF_VAR), a nested Code (for MAKE_CLOSURE), or a Symbol. The
	// text assembler in asm.go cannot express these, since there is no
	// compiler here to build them from source; runtime tests that need them
	// construct a Unit's Consts slice directly instead.
	Any any
}

type ConstKind byte

const (
	ConstInt ConstKind = iota
	ConstFloat
	ConstString
	ConstRaw
)

// Unit is the compiler -> runtime wire contract described in spec.md §6: a
// symbolic name, an immutable constant pool, immutable bytecode (a sequence
// of 32-bit words), a precomputed stack size, and an optional debug-point
// table. No other fields are part of the contract.
type Unit struct {
	Name        string
	Consts      []Const
	Code        []uint32
	StackSize   int
	DebugPoints []DebugPoint
}

// NewUnit constructs a Unit from the five wire-contract fields. This is the
// factory an external compiler is expected to call.
func NewUnit(name string, consts []Const, code []uint32, stackSize int, debugPoints []DebugPoint) *Unit {
	return &Unit{Name: name, Consts: consts, Code: code, StackSize: stackSize, DebugPoints: debugPoints}
}

// Decode reads the instruction at word index pc, returning its opcode, its
// immediate operand words (empty if the opcode takes none), and the index of
// the next instruction. The returned args slice is only ever 0, 1, or 2
// elements long (see Op.NumOperands).
func Decode(code []uint32, pc uint32) (op Op, args []uint32, next uint32, err error) {
	if int(pc) >= len(code) {
		return 0, nil, 0, fmt.Errorf("bytecode: pc %d out of range (len %d)", pc, len(code))
	}
	word := code[pc]
	op = Op(byte(word))
	next = pc + 1
	n := op.NumOperands()
	if n > 0 {
		if int(next)+n > len(code) {
			return 0, nil, 0, fmt.Errorf("bytecode: %s at pc %d missing operand word", op, pc)
		}
		args = append(args, code[next:next+uint32(n)]...)
		next += uint32(n)
	}
	return op, args, next, nil
}

// Encode appends the instruction op (with its operand words, if any) to
// code, returning the extended slice. Panics if len(args) doesn't match
// op.NumOperands() — a programmer error in the caller, not a runtime one.
func Encode(code []uint32, op Op, args ...uint32) []uint32 {
	n := op.NumOperands()
	if len(args) != n {
		panic(fmt.Sprintf("bytecode: %s takes %d operand(s), got %d", op, n, len(args)))
	}
	code = append(code, uint32(byte(op)))
	code = append(code, args...)
	return code
}
