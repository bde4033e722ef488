// Package closure expands a selector set into the minimal namespace tree
// of types that must be generated, and prunes the built-in foundation
// namespaces out of it when the caller opts out of them.
package closure

import (
	"sort"

	"github.com/winterop/winrtgen/metadata"
)

// ReexportPatch records the substitute path for a reference into a
// deleted foundation namespace, so generated text still produces valid
// references without re-introducing the deleted namespace's body.
type ReexportPatch struct {
	// Removed is the deleted type that remaining types still reference.
	Removed metadata.TypeHandle
	// Alias is the stable canonical path used instead.
	Alias string
}

// namespaceNode holds the selected types of one namespace and, for each,
// the dependency edges recorded at insertion. The edges are the
// back-references the pruner rewrites.
type namespaceNode struct {
	types   map[string][]metadata.TypeHandle
	patches map[metadata.TypeHandle]string // removed handle -> alias path
}

// Tree is the namespace tree: namespace name -> selected/required types.
// Grown by the builder, shrunk and patched by the pruner, read-only for
// emission. All iteration is sorted.
type Tree struct {
	nodes map[string]*namespaceNode
}

// NewTree creates an empty tree.
func NewTree() *Tree {
	return &Tree{nodes: make(map[string]*namespaceNode)}
}

// Insert adds a type with its direct dependency edges.
// Returns false when the type was already present.
func (t *Tree) Insert(h metadata.TypeHandle, deps []metadata.TypeHandle) bool {
	node, ok := t.nodes[h.Namespace]
	if !ok {
		node = &namespaceNode{
			types:   make(map[string][]metadata.TypeHandle),
			patches: make(map[metadata.TypeHandle]string),
		}
		t.nodes[h.Namespace] = node
	}
	if _, present := node.types[h.Name]; present {
		return false
	}
	node.types[h.Name] = deps
	return true
}

// Contains reports whether the type is in the tree.
func (t *Tree) Contains(h metadata.TypeHandle) bool {
	node, ok := t.nodes[h.Namespace]
	if !ok {
		return false
	}
	_, present := node.types[h.Name]
	return present
}

// HasNamespace reports whether the namespace has a node.
func (t *Tree) HasNamespace(ns string) bool {
	_, ok := t.nodes[ns]
	return ok
}

// Namespaces returns the namespace names in sorted order.
func (t *Tree) Namespaces() []string {
	names := make([]string, 0, len(t.nodes))
	for ns := range t.nodes {
		names = append(names, ns)
	}
	sort.Strings(names)
	return names
}

// Types returns the namespace's types sorted by name.
func (t *Tree) Types(ns string) []metadata.TypeHandle {
	node, ok := t.nodes[ns]
	if !ok {
		return nil
	}
	handles := make([]metadata.TypeHandle, 0, len(node.types))
	for name := range node.types {
		handles = append(handles, metadata.TypeHandle{Namespace: ns, Name: name})
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i].Name < handles[j].Name })
	return handles
}

// Dependencies returns the edges recorded for a type at insertion.
func (t *Tree) Dependencies(h metadata.TypeHandle) []metadata.TypeHandle {
	node, ok := t.nodes[h.Namespace]
	if !ok {
		return nil
	}
	return node.types[h.Name]
}

// Patches returns the namespace's re-export patches sorted by removed path.
func (t *Tree) Patches(ns string) []ReexportPatch {
	node, ok := t.nodes[ns]
	if !ok {
		return nil
	}
	patches := make([]ReexportPatch, 0, len(node.patches))
	for removed, alias := range node.patches {
		patches = append(patches, ReexportPatch{Removed: removed, Alias: alias})
	}
	sort.Slice(patches, func(i, j int) bool {
		return patches[i].Removed.String() < patches[j].Removed.String()
	})
	return patches
}

// TypeCount returns the total number of types across all namespaces.
func (t *Tree) TypeCount() int {
	n := 0
	for _, node := range t.nodes {
		n += len(node.types)
	}
	return n
}

func (t *Tree) remove(ns string) {
	delete(t.nodes, ns)
}

func (t *Tree) addPatch(ns string, patch ReexportPatch) {
	t.nodes[ns].patches[patch.Removed] = patch.Alias
}
