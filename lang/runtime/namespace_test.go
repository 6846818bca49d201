package runtime_test

import (
	"testing"

	"github.com/kgann/pixie/lang/runtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamespaceResolveUnqualified(t *testing.T) {
	reg := runtime.NewNamespaceRegistry()
	ns := reg.FindOrMake("user")
	want := ns.InternOrMake("x")

	got, err := ns.Resolve(reg, runtime.Symbol{Name: "x"}, true)
	require.NoError(t, err)
	assert.Same(t, want, got)
}

func TestNamespaceResolveQualified(t *testing.T) {
	reg := runtime.NewNamespaceRegistry()
	other := reg.FindOrMake("other.ns")
	want := other.InternOrMake("y")

	ns := reg.FindOrMake("user")
	got, err := ns.Resolve(reg, runtime.Symbol{NS: "other.ns", Name: "y"}, true)
	require.NoError(t, err)
	assert.Same(t, want, got)
}

func TestNamespaceResolveQualifiedUnresolvedNamespace(t *testing.T) {
	reg := runtime.NewNamespaceRegistry()
	ns := reg.FindOrMake("user")

	_, err := ns.Resolve(reg, runtime.Symbol{NS: "nonexistent", Name: "y"}, true)
	require.Error(t, err)
	ee := runtime.AsEvalError(err)
	assert.Equal(t, runtime.KindUnresolvedNamespace, ee.Kind)
}

func TestNamespaceResolveViaReferAll(t *testing.T) {
	reg := runtime.NewNamespaceRegistry()
	lib := reg.FindOrMake("lib")
	want := lib.InternOrMake("helper")

	ns := reg.FindOrMake("user")
	ns.AddRefer("lib", lib, nil, true)

	got, err := ns.Resolve(reg, runtime.Symbol{Name: "helper"}, true)
	require.NoError(t, err)
	assert.Same(t, want, got)
}

func TestNamespaceResolveViaExplicitRefer(t *testing.T) {
	reg := runtime.NewNamespaceRegistry()
	lib := reg.FindOrMake("lib")
	want := lib.InternOrMake("helper")
	lib.InternOrMake("other") // not referred by name

	ns := reg.FindOrMake("user")
	ns.AddRefer("lib", lib, map[string]bool{"helper": true}, false)

	got, err := ns.Resolve(reg, runtime.Symbol{Name: "helper"}, true)
	require.NoError(t, err)
	assert.Same(t, want, got)

	got, err = ns.Resolve(reg, runtime.Symbol{Name: "other"}, true)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestNamespaceResolveLocalShadowsRefer(t *testing.T) {
	reg := runtime.NewNamespaceRegistry()
	lib := reg.FindOrMake("lib")
	lib.InternOrMake("x")

	ns := reg.FindOrMake("user")
	ns.AddRefer("lib", lib, nil, true)
	local := ns.InternOrMake("x")

	got, err := ns.Resolve(reg, runtime.Symbol{Name: "x"}, true)
	require.NoError(t, err)
	assert.Same(t, local, got)
}

func TestNamespaceResolveUnresolvedReturnsNilNotError(t *testing.T) {
	reg := runtime.NewNamespaceRegistry()
	ns := reg.FindOrMake("user")

	got, err := ns.Resolve(reg, runtime.Symbol{Name: "nope"}, true)
	require.NoError(t, err)
	assert.Nil(t, got)
}

// TestNamespaceReferIterationDeterministic checks that two refer-all
// namespaces exposing the same name resolve to the same var on every call,
// since referAliasesSorted always walks aliases in the same order.
func TestNamespaceReferIterationDeterministic(t *testing.T) {
	reg := runtime.NewNamespaceRegistry()
	a := reg.FindOrMake("a.lib")
	b := reg.FindOrMake("b.lib")
	wantA := a.InternOrMake("shared")
	b.InternOrMake("shared")

	ns := reg.FindOrMake("user")
	ns.AddRefer("a.lib", a, nil, true)
	ns.AddRefer("b.lib", b, nil, true)

	var first *runtime.Var
	for i := 0; i < 5; i++ {
		got, err := ns.Resolve(reg, runtime.Symbol{Name: "shared"}, true)
		require.NoError(t, err)
		if i == 0 {
			first = got
		} else {
			assert.Same(t, first, got)
		}
	}
	assert.Same(t, wantA, first) // "a.lib" sorts before "b.lib"
}
