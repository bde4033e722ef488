package closure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/winterop/winrtgen/metadata"
)

// prunedTree builds and prunes a tree where Lamp references a foundation type.
func prunedTree(t *testing.T) *Tree {
	t.Helper()
	limits := NewLimits(lampUniverse())
	for _, sel := range mustParse(t, "windows.devices.lights.Lamp") {
		require.NoError(t, limits.Insert(sel))
	}
	tree, err := limits.Build()
	require.NoError(t, err)

	Prune(tree)
	return tree
}

func TestPruneRemovesFoundationNamespaces(t *testing.T) {
	tree := prunedTree(t)

	assert.False(t, tree.HasNamespace("Windows.Foundation"))
	assert.True(t, tree.HasNamespace("Windows.Devices.Lights"))
}

func TestPruneRewritesDanglingReferences(t *testing.T) {
	tree := prunedTree(t)

	patches := tree.Patches("Windows.Devices.Lights")
	require.Len(t, patches, 1)
	assert.Equal(t, "Windows.Foundation.Uri", patches[0].Removed.String())
	assert.Equal(t, "windows.Foundation.Uri", patches[0].Alias)
}

func TestPruneLeavesIntraTreeEdgesAlone(t *testing.T) {
	tree := prunedTree(t)

	// LampInfo stayed in the tree, so the Lamp -> LampInfo edge needs no patch
	for _, p := range tree.Patches("Windows.Devices.Lights") {
		assert.NotEqual(t, "LampInfo", p.Removed.Name)
	}
	assert.True(t, tree.Contains(metadata.TypeHandle{Namespace: "Windows.Devices.Lights", Name: "LampInfo"}))
}

func TestPruneIsIdempotent(t *testing.T) {
	tree := prunedTree(t)
	namespaces := tree.Namespaces()
	patches := tree.Patches("Windows.Devices.Lights")

	Prune(tree)

	assert.Equal(t, namespaces, tree.Namespaces())
	assert.Equal(t, patches, tree.Patches("Windows.Devices.Lights"))
}

func TestPruneNoFoundationIsNoOp(t *testing.T) {
	u := metadata.NewMemoryUniverse()
	u.AddType("Custom.Ns", "Widget")

	limits := NewLimits(u)
	for _, sel := range mustParse(t, "custom.ns.*") {
		require.NoError(t, limits.Insert(sel))
	}
	tree, err := limits.Build()
	require.NoError(t, err)

	Prune(tree)

	assert.True(t, tree.HasNamespace("Custom.Ns"))
	assert.Empty(t, tree.Patches("Custom.Ns"))
	assert.Equal(t, 1, tree.TypeCount())
}

func TestReexportAlias(t *testing.T) {
	assert.Equal(t, "windows.Foundation.Collections.IVector",
		reexportAlias("Windows.Foundation.Collections.IVector"))
	assert.Equal(t, "windows.Other.Thing", reexportAlias("Other.Thing"))
}

func TestIsFoundation(t *testing.T) {
	assert.True(t, IsFoundation("Windows.Foundation"))
	assert.True(t, IsFoundation("windows.foundation.collections"))
	assert.False(t, IsFoundation("Windows.Storage"))
}
