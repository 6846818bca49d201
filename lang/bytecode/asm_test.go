package bytecode_test

import (
	"testing"

	"github.com/kgann/pixie/lang/bytecode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembleConstantReturn(t *testing.T) {
	src := `
unit: constant-return 1
consts:
	int 42
code:
	LOAD_CONST 0
	RETURN
`
	u, err := bytecode.Assemble([]byte(src))
	require.NoError(t, err)
	assert.Equal(t, "constant-return", u.Name)
	assert.Equal(t, 1, u.StackSize)
	require.Len(t, u.Consts, 1)
	assert.Equal(t, int64(42), u.Consts[0].Int)

	op, args, next, err := bytecode.Decode(u.Code, 0)
	require.NoError(t, err)
	assert.Equal(t, bytecode.LOAD_CONST, op)
	assert.Equal(t, []uint32{0}, args)

	op, _, _, err = bytecode.Decode(u.Code, next)
	require.NoError(t, err)
	assert.Equal(t, bytecode.RETURN, op)
}

func TestAssembleAddition(t *testing.T) {
	src := `
unit: add 2
consts:
	int 2
	int 3
code:
	LOAD_CONST 0
	LOAD_CONST 1
	ADD
	RETURN
`
	u, err := bytecode.Assemble([]byte(src))
	require.NoError(t, err)
	require.Len(t, u.Consts, 2)
}

func TestAssembleMakeClosureTwoOperands(t *testing.T) {
	src := "unit: make-closure 2\ncode:\n\tMAKE_CLOSURE 0 2\n\tRETURN\n"
	u, err := bytecode.Assemble([]byte(src))
	require.NoError(t, err)

	op, args, _, err := bytecode.Decode(u.Code, 0)
	require.NoError(t, err)
	assert.Equal(t, bytecode.MAKE_CLOSURE, op)
	assert.Equal(t, []uint32{0, 2}, args)
}

func TestAssembleRejectsWrongOperandCount(t *testing.T) {
	src := "unit: bad 1\ncode:\n\tMAKE_CLOSURE 0\n"
	_, err := bytecode.Assemble([]byte(src))
	assert.Error(t, err)
}

func TestAssembleRejectsUnknownOpcode(t *testing.T) {
	src := "unit: bad 1\ncode:\n\tNOT_AN_OP\n"
	_, err := bytecode.Assemble([]byte(src))
	assert.Error(t, err)
}

func TestDisassembleRoundtrip(t *testing.T) {
	src := `
unit: roundtrip 2
consts:
	string "hi"
code:
	LOAD_CONST 0
	RETURN
`
	u, err := bytecode.Assemble([]byte(src))
	require.NoError(t, err)
	out := bytecode.Disassemble(u)

	u2, err := bytecode.Assemble([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, u.Name, u2.Name)
	assert.Equal(t, u.Code, u2.Code)
	assert.Equal(t, u.Consts, u2.Consts)
}
