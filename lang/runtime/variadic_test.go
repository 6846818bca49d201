package runtime_test

import (
	"testing"

	"github.com/kgann/pixie/lang/runtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func innerCapturingCallable(t *testing.T) (*runtime.NativeFn, func() [][]runtime.Value) {
	t.Helper()
	var calls [][]runtime.Value
	fn := runtime.NewNativeFn("inner", false, func(argv []runtime.Value) (runtime.Value, error) {
		calls = append(calls, append([]runtime.Value(nil), argv...))
		return runtime.Nil, nil
	})
	return fn, func() [][]runtime.Value { return calls }
}

func TestVariadicPackZeroRequired(t *testing.T) {
	inner, calls := innerCapturingCallable(t)
	v := runtime.NewVariadicCode(inner, 0)

	packed, err := v.Pack([]runtime.Value{runtime.Int(1), runtime.Int(2)})
	require.NoError(t, err)
	require.Len(t, packed, 1)
	arr, ok := packed[0].(*runtime.Array)
	require.True(t, ok)
	assert.Equal(t, 2, arr.Len())
	_ = calls
}

func TestVariadicPackExactArity(t *testing.T) {
	inner, _ := innerCapturingCallable(t)
	v := runtime.NewVariadicCode(inner, 2)

	packed, err := v.Pack([]runtime.Value{runtime.Int(1), runtime.Int(2)})
	require.NoError(t, err)
	require.Len(t, packed, 3)
	assert.Equal(t, runtime.Int(1), packed[0])
	assert.Equal(t, runtime.Int(2), packed[1])
	arr, ok := packed[2].(*runtime.Array)
	require.True(t, ok)
	assert.Equal(t, 0, arr.Len())
}

func TestVariadicPackSurplusArity(t *testing.T) {
	inner, _ := innerCapturingCallable(t)
	v := runtime.NewVariadicCode(inner, 1)

	packed, err := v.Pack([]runtime.Value{runtime.Int(1), runtime.Int(2), runtime.Int(3)})
	require.NoError(t, err)
	require.Len(t, packed, 2)
	assert.Equal(t, runtime.Int(1), packed[0])
	arr, ok := packed[1].(*runtime.Array)
	require.True(t, ok)
	assert.Equal(t, 2, arr.Len())
	assert.Equal(t, runtime.Int(2), arr.Index(0))
	assert.Equal(t, runtime.Int(3), arr.Index(1))
}

func TestVariadicPackTooFewArgsErrors(t *testing.T) {
	inner, _ := innerCapturingCallable(t)
	v := runtime.NewVariadicCode(inner, 2)

	_, err := v.Pack([]runtime.Value{runtime.Int(1)})
	require.Error(t, err)
	ee := runtime.AsEvalError(err)
	assert.Equal(t, runtime.KindArityMismatch, ee.Kind)
}

func TestVariadicInheritsMacroFlag(t *testing.T) {
	macroInner := runtime.NewNativeFn("inner", true, func(argv []runtime.Value) (runtime.Value, error) {
		return runtime.Nil, nil
	})
	v := runtime.NewVariadicCode(macroInner, 0)
	assert.True(t, v.IsMacro())
}
