package selector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/winterop/winrtgen/errors"
	"github.com/winterop/winrtgen/nuget"
)

func parseOne(t *testing.T, src string) Selector {
	t.Helper()
	set, err := ParseSelectors(src)
	require.NoError(t, err)
	sels := set.Selectors()
	require.Len(t, sels, 1)
	return sels[0]
}

func TestParseWildcardSelector(t *testing.T) {
	sel := parseOne(t, "a.b.c.*")

	assert.Equal(t, "a.b.c", sel.Namespace)
	assert.True(t, sel.Limit.All)
	assert.Empty(t, sel.Limit.Names)
}

func TestParseGroupSelector(t *testing.T) {
	sel := parseOne(t, "a.b.{X, Y}")

	assert.Equal(t, "a.b", sel.Namespace)
	assert.False(t, sel.Limit.All)
	assert.Equal(t, []string{"X", "Y"}, sel.Limit.Names)
}

func TestParseBareLeafSelector(t *testing.T) {
	sel := parseOne(t, "a.b.Widget")

	assert.Equal(t, "a.b", sel.Namespace)
	assert.Equal(t, []string{"Widget"}, sel.Limit.Names)
}

func TestParseLowercaseLeafRejected(t *testing.T) {
	_, err := ParseSelectors("a.b.x")
	require.Error(t, err)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, ErrorKindSemantic, perr.Kind)
	assert.Contains(t, perr.Message, "looks like a module, not a type")
	assert.Equal(t, "x", perr.Token)
}

func TestParseRenameRejected(t *testing.T) {
	_, err := ParseSelectors("a.b.C as D")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrRenameUnsupported))

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "as", perr.Token)
}

func TestParseRenameRejectedBeforeLeafCasing(t *testing.T) {
	// A lowercase leaf followed by 'as' is a rename rejection, not a
	// casing complaint about the leaf.
	_, err := ParseSelectors("a.b.c as D")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrRenameUnsupported))

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "as", perr.Token)
	assert.NotContains(t, perr.Message, "looks like a module")
}

func TestParseLowercaseLeafSpanAnchorsLeaf(t *testing.T) {
	_, err := ParseSelectors("a.b.x")
	require.Error(t, err)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	// "x" sits at 0-based column 4, not at the selector's start.
	assert.Equal(t, 1, perr.Span.Start.Line)
	assert.Equal(t, 4, perr.Span.Start.Character)
}

func TestParseNestedGroupPathRejected(t *testing.T) {
	_, err := ParseSelectors("a.{b.C}")
	require.Error(t, err)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Message, "cannot nest inside a type group")
}

func TestParseEmptyGroupRejected(t *testing.T) {
	_, err := ParseSelectors("a.b.{}")
	require.Error(t, err)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Message, "at least one type")
}

func TestParseSelectorWithoutNamespaceRejected(t *testing.T) {
	_, err := ParseSelectors("Widget")
	require.Error(t, err)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Message, "needs a namespace")
}

func TestParseWildcardMustTerminate(t *testing.T) {
	_, err := ParseSelectors("a.*.b")
	require.Error(t, err)
}

func TestRoughNamespaceNormalization(t *testing.T) {
	// Underscore and quote noise is stripped; casing is lost on purpose.
	sel := parseOne(t, "Microsoft.AI.Machine_Learning.*")
	assert.Equal(t, "microsoft.ai.machinelearning", sel.Namespace)
	assert.Equal(t, "Microsoft.AI.Machine_Learning", sel.Raw)
}

func TestSetMergesDuplicateNamespaces(t *testing.T) {
	set, err := ParseSelectors("a.b.{X}\na.b.{Y}\na.b.X")
	require.NoError(t, err)

	sels := set.Selectors()
	require.Len(t, sels, 1)
	assert.Equal(t, []string{"X", "Y"}, sels[0].Limit.Names)
}

func TestSetAllAbsorbsNamed(t *testing.T) {
	set, err := ParseSelectors("a.b.{X}\na.b.*")
	require.NoError(t, err)

	sels := set.Selectors()
	require.Len(t, sels, 1)
	assert.True(t, sels[0].Limit.All)
}

func TestSetOrderedByNamespace(t *testing.T) {
	set, err := ParseSelectors("z.last.*\na.first.*\nm.middle.*")
	require.NoError(t, err)

	sels := set.Selectors()
	require.Len(t, sels, 3)
	assert.Equal(t, "a.first", sels[0].Namespace)
	assert.Equal(t, "m.middle", sels[1].Namespace)
	assert.Equal(t, "z.last", sels[2].Namespace)
}

func TestParseDeclaration(t *testing.T) {
	decl, err := ParseDeclaration(`
		dependencies
			os
			nuget: Microsoft.AI.MachineLearning
		types
			microsoft.ai.machinelearning.*
	`)
	require.NoError(t, err)

	require.Len(t, decl.Dependencies, 2)
	assert.Equal(t, nuget.OS(), decl.Dependencies[0])
	assert.Equal(t, nuget.Package("Microsoft.AI.MachineLearning"), decl.Dependencies[1])
	assert.False(t, decl.Foundation)
	assert.Equal(t, 1, decl.Selectors.Len())
}

func TestParseDeclarationFoundation(t *testing.T) {
	decl, err := ParseDeclaration("dependencies os types foundation windows.storage.*")
	require.NoError(t, err)
	assert.True(t, decl.Foundation)
	assert.Equal(t, 1, decl.Selectors.Len())
}

func TestParseDeclarationRequiresDependencies(t *testing.T) {
	_, err := ParseDeclaration("dependencies types a.b.*")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one dependency")
}

func TestParseDeclarationRequiresSelectors(t *testing.T) {
	_, err := ParseDeclaration("dependencies os types")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one type selector")
}

func TestParseDeclarationUnknownDependencyKind(t *testing.T) {
	_, err := ParseDeclaration("dependencies cargo: Foo types a.b.*")
	require.Error(t, err)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "cargo", perr.Token)
}

func TestParseErrorSpansAnchorToSource(t *testing.T) {
	_, err := ParseSelectors("good.ns.*\nbad.ns.lower")
	require.Error(t, err)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.Span.Start.Line)
}

func TestParseErrorPlainFormat(t *testing.T) {
	_, err := ParseSelectors("a.b.x")

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	plain := perr.FormatError(ErrorContextPlain)
	assert.Contains(t, plain, "1:")
	assert.Contains(t, plain, "looks like a module")
	assert.Contains(t, plain, "Suggestions:")
}
