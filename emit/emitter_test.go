package emit

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/winterop/winrtgen/closure"
	"github.com/winterop/winrtgen/metadata"
	"github.com/winterop/winrtgen/selector"
)

func testTree(t *testing.T) (*metadata.MemoryUniverse, *closure.Tree) {
	t.Helper()
	u := metadata.NewMemoryUniverse()
	uri := u.AddType("Windows.Foundation", "Uri")
	u.AddType("Windows.Devices.Lights", "Lamp", uri)
	u.SetFragment(metadata.TypeHandle{Namespace: "Windows.Devices.Lights", Name: "Lamp"},
		"pub struct Lamp;")

	limits := closure.NewLimits(u)
	set, err := selector.ParseSelectors("windows.devices.lights.*")
	require.NoError(t, err)
	for _, sel := range set.Selectors() {
		require.NoError(t, limits.Insert(sel))
	}
	tree, err := limits.Build()
	require.NoError(t, err)
	return u, tree
}

func TestRenderDeterministic(t *testing.T) {
	u, tree := testTree(t)
	e := &Emitter{Universe: u}

	first := e.Render(tree)
	second := e.Render(tree)
	assert.Equal(t, first, second)
}

func TestRenderOrderAndContent(t *testing.T) {
	u, tree := testTree(t)
	e := &Emitter{Universe: u}

	out := e.Render(tree)
	assert.Contains(t, out, "// Code generated by winrtgen. DO NOT EDIT.")

	lights := "// namespace Windows.Devices.Lights"
	foundation := "// namespace Windows.Foundation"
	assert.Contains(t, out, lights)
	assert.Contains(t, out, foundation)
	// Sorted namespace order
	assert.Less(t, strings.Index(out, lights), strings.Index(out, foundation))
	// Registered fragment used for Lamp, placeholder for Uri
	assert.Contains(t, out, "pub struct Lamp;")
	assert.Contains(t, out, "type Uri;")
}

func TestRenderReexportPatches(t *testing.T) {
	u, tree := testTree(t)
	closure.Prune(tree)

	e := &Emitter{Universe: u}
	out := e.Render(tree)

	assert.NotContains(t, out, "// namespace Windows.Foundation")
	assert.Contains(t, out, "use windows.Foundation.Uri; // replaces Windows.Foundation.Uri")
}

func TestEmitWithoutFormatter(t *testing.T) {
	u, tree := testTree(t)
	e := &Emitter{Universe: u}

	out := filepath.Join(t.TempDir(), "gen", "winrt.rs")
	require.NoError(t, e.Emit(tree, out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, e.Render(tree), string(data))
}

func TestEmitMissingFormatterKeepsArtifact(t *testing.T) {
	u, tree := testTree(t)
	e := &Emitter{
		Universe:  u,
		Formatter: "definitely-not-a-real-formatter-binary",
		Mode:      ModeInPlace,
	}

	out := filepath.Join(t.TempDir(), "winrt.rs")
	require.NoError(t, e.Emit(tree, out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, e.Render(tree), string(data))
}

func TestEmitMissingFormatterPipeModeKeepsArtifact(t *testing.T) {
	u, tree := testTree(t)
	e := &Emitter{
		Universe:  u,
		Formatter: "definitely-not-a-real-formatter-binary",
		Mode:      ModePipe,
	}

	out := filepath.Join(t.TempDir(), "winrt.rs")
	require.NoError(t, e.Emit(tree, out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, e.Render(tree), string(data))
}

func TestEmitPipeMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on cat")
	}
	u, tree := testTree(t)
	e := &Emitter{Universe: u, Formatter: "cat", Mode: ModePipe}

	out := filepath.Join(t.TempDir(), "winrt.rs")
	require.NoError(t, e.Emit(tree, out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, e.Render(tree), string(data))
}

func TestEmitFailingFormatterKeepsArtifact(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on sh")
	}
	u, tree := testTree(t)
	e := &Emitter{
		Universe:  u,
		Formatter: "sh -c 'exit 3'",
		Mode:      ModeInPlace,
	}

	out := filepath.Join(t.TempDir(), "winrt.rs")
	require.NoError(t, e.Emit(tree, out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, e.Render(tree), string(data))
}
