package runtime_test

import (
	"testing"

	"github.com/kgann/pixie/lang/runtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPolymorphicFnNoOverrideError exercises spec.md §8 scenario 7: protocol
// P with method m extended only for type A; invoking m on a value of type B
// fails with a no-protocol-override error naming m, P, and B.
func TestPolymorphicFnNoOverrideError(t *testing.T) {
	reg := runtime.NewTypeRegistry()
	typeA := reg.Intern("A")
	typeB := reg.Intern("B")

	proto := runtime.NewProtocol("P")
	m := runtime.NewPolymorphicFn("m", proto)
	m.Extend(typeA, runtime.WrapFunc("m/A", 1, func(argv []runtime.Value) (runtime.Value, error) {
		return runtime.Int(1), nil
	}))

	b := &fakeTypedValue{tp: typeB}
	_, err := m.Dispatch([]runtime.Value{b})
	require.Error(t, err)

	ee := runtime.AsEvalError(err)
	assert.Equal(t, runtime.KindNoProtocolOverride, ee.Kind)
	assert.Contains(t, ee.Message, "m")
	assert.Contains(t, ee.Message, "P")
	assert.Contains(t, ee.Message, "B")
}

func TestPolymorphicFnDispatchSucceeds(t *testing.T) {
	reg := runtime.NewTypeRegistry()
	typeA := reg.Intern("A")

	proto := runtime.NewProtocol("P")
	m := runtime.NewPolymorphicFn("m", proto)
	m.Extend(typeA, runtime.WrapFunc("m/A", 1, func(argv []runtime.Value) (runtime.Value, error) {
		return runtime.Int(42), nil
	}))

	a := &fakeTypedValue{tp: typeA}
	fn, err := m.Dispatch([]runtime.Value{a})
	require.NoError(t, err)

	rt := runtime.NewRuntime()
	th := runtime.NewThread("main")
	v, err := runtime.Invoke(th, rt, fn, []runtime.Value{a})
	require.NoError(t, err)
	assert.Equal(t, runtime.Int(42), v)

	assert.True(t, proto.Satisfies(typeA))
}

func TestDoublePolymorphicFnDispatchAndDefault(t *testing.T) {
	reg := runtime.NewTypeRegistry()
	typeA := reg.Intern("A")
	typeB := reg.Intern("B")

	def := runtime.WrapFunc("default", 2, func(argv []runtime.Value) (runtime.Value, error) {
		return runtime.Int(-1), nil
	})
	proto := runtime.NewProtocol("Combine")
	m := runtime.NewDoublePolymorphicFn("combine", proto, def)
	m.Extend2(typeA, typeB, runtime.WrapFunc("combine/A,B", 2, func(argv []runtime.Value) (runtime.Value, error) {
		return runtime.Int(1), nil
	}))

	assert.True(t, proto.Satisfies(typeA))
	assert.False(t, proto.Satisfies(typeB))

	a := &fakeTypedValue{tp: typeA}
	b := &fakeTypedValue{tp: typeB}

	fn, err := m.Dispatch([]runtime.Value{a, b})
	require.NoError(t, err)
	rt := runtime.NewRuntime()
	th := runtime.NewThread("main")
	v, err := runtime.Invoke(th, rt, fn, []runtime.Value{a, b})
	require.NoError(t, err)
	assert.Equal(t, runtime.Int(1), v)

	// (B, A) isn't registered, so it falls back to Default.
	fn, err = m.Dispatch([]runtime.Value{b, a})
	require.NoError(t, err)
	v, err = runtime.Invoke(th, rt, fn, []runtime.Value{b, a})
	require.NoError(t, err)
	assert.Equal(t, runtime.Int(-1), v)
}

// fakeTypedValue is a minimal runtime.Value stand-in for exercising
// type-keyed dispatch tables without depending on any of the built-in
// value types.
type fakeTypedValue struct{ tp *runtime.Type }

func (f *fakeTypedValue) String() string     { return "fake" }
func (f *fakeTypedValue) Type() *runtime.Type { return f.tp }
