// Package selector parses the caller-facing declaration language into
// dependency declarations and namespace selectors.
//
// Grammar:
//
//	declaration := "dependencies" dep+ "types" ["foundation"] selector+
//	dep         := "os" | "nuget:" package_name
//	selector    := path_segment ("." path_segment)* tail
//	tail        := "*" | "{" name ("," name)* "}" | <empty>
//
// Identifier casing in selection paths is lossy (snake_case module paths
// against PascalCase metadata names), so selectors carry a rough
// lower-cased namespace key; exact-case resolution happens later against
// the metadata universe.
package selector

import (
	"sort"
	"strings"
)

// Limit scopes a selector to all types in its namespace or to a named subset.
type Limit struct {
	All   bool
	Names []string // sorted, unique; empty when All
}

// Named builds a Named limit from leaf names.
func Named(names ...string) Limit {
	return Limit{Names: dedupSorted(names)}
}

// All is the whole-namespace limit.
var All = Limit{All: true}

// Selector is one parsed namespace selection.
type Selector struct {
	// Namespace is the rough lower-cased dotted key, underscore and quote
	// noise stripped.
	Namespace string
	// Raw is the namespace path as written, for diagnostics.
	Raw string
	// Limit scopes the selection.
	Limit Limit
	// Span anchors the selector in the declaration text.
	Span Range
}

// Set is a selector collection keyed by namespace. Duplicate namespaces
// merge: All absorbs Named, two Named limits union their leaves. Merging
// (rather than last-wins) is the only policy under which declaration
// order cannot change the resulting closure.
type Set struct {
	byNamespace map[string]*Selector
}

// NewSet creates an empty selector set.
func NewSet() *Set {
	return &Set{byNamespace: make(map[string]*Selector)}
}

// Add merges a selector into the set.
func (s *Set) Add(sel Selector) {
	existing, ok := s.byNamespace[sel.Namespace]
	if !ok {
		copied := sel
		copied.Limit.Names = dedupSorted(sel.Limit.Names)
		s.byNamespace[sel.Namespace] = &copied
		return
	}
	if sel.Limit.All || existing.Limit.All {
		existing.Limit = All
		return
	}
	existing.Limit.Names = dedupSorted(append(existing.Limit.Names, sel.Limit.Names...))
}

// Len returns the number of distinct namespaces selected.
func (s *Set) Len() int {
	return len(s.byNamespace)
}

// Selectors returns the selectors ordered by namespace.
func (s *Set) Selectors() []Selector {
	keys := make([]string, 0, len(s.byNamespace))
	for ns := range s.byNamespace {
		keys = append(keys, ns)
	}
	sort.Strings(keys)
	out := make([]Selector, len(keys))
	for i, ns := range keys {
		out[i] = *s.byNamespace[ns]
	}
	return out
}

// RoughNamespace lower-cases a dotted path and strips underscore and
// quote noise, producing the key used for case-insensitive matching
// against canonical metadata namespaces.
func RoughNamespace(path string) string {
	return strings.ToLower(stripIdentNoise(path))
}

// stripIdentNoise removes underscores and quoting characters that
// selection syntax may carry but canonical metadata names never do.
func stripIdentNoise(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '_', '"', '\'', '`':
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func dedupSorted(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
