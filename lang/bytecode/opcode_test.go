package bytecode_test

import (
	"testing"

	"github.com/kgann/pixie/lang/bytecode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpcodeOrderIsLoadBearing(t *testing.T) {
	// spec.md §6 fixes this exact order; an external compiler emits opcodes
	// by index, so renumbering any of these would be a breaking wire change.
	want := []bytecode.Op{
		bytecode.LOAD_CONST, bytecode.ADD, bytecode.EQ, bytecode.INVOKE,
		bytecode.TAIL_CALL, bytecode.DUP_NTH, bytecode.RETURN, bytecode.COND_BR,
		bytecode.JMP, bytecode.CLOSED_OVER, bytecode.MAKE_CLOSURE, bytecode.SET_VAR,
		bytecode.POP, bytecode.DEREF_VAR, bytecode.INSTALL, bytecode.RECUR,
		bytecode.LOOP_RECUR, bytecode.ARG, bytecode.PUSH_SELF, bytecode.POP_UP_N,
		bytecode.MAKE_MULTI_ARITY, bytecode.MAKE_VARIADIC,
	}
	for i, op := range want {
		assert.Equal(t, bytecode.Op(i), op, "opcode %s must be at index %d", op, i)
	}
}

func TestEncodeDecodeRoundtrip(t *testing.T) {
	var code []uint32
	code = bytecode.Encode(code, bytecode.LOAD_CONST, 3)
	code = bytecode.Encode(code, bytecode.ADD)
	code = bytecode.Encode(code, bytecode.MAKE_CLOSURE, 1, 2)
	code = bytecode.Encode(code, bytecode.RETURN)

	op, args, next, err := bytecode.Decode(code, 0)
	require.NoError(t, err)
	assert.Equal(t, bytecode.LOAD_CONST, op)
	assert.Equal(t, []uint32{3}, args)

	op, _, next, err = bytecode.Decode(code, next)
	require.NoError(t, err)
	assert.Equal(t, bytecode.ADD, op)

	op, args, next, err = bytecode.Decode(code, next)
	require.NoError(t, err)
	assert.Equal(t, bytecode.MAKE_CLOSURE, op)
	assert.Equal(t, []uint32{1, 2}, args)

	op, _, _, err = bytecode.Decode(code, next)
	require.NoError(t, err)
	assert.Equal(t, bytecode.RETURN, op)
}

func TestEncodePanicsOnWrongOperandCount(t *testing.T) {
	assert.Panics(t, func() {
		bytecode.Encode(nil, bytecode.LOAD_CONST)
	})
}

func TestDecodeOutOfRange(t *testing.T) {
	_, _, _, err := bytecode.Decode(nil, 0)
	assert.Error(t, err)
}

func TestDecodeMissingOperand(t *testing.T) {
	code := []uint32{uint32(byte(bytecode.LOAD_CONST))}
	_, _, _, err := bytecode.Decode(code, 0)
	assert.Error(t, err)
}
