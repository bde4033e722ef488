// Package metadata defines the boundary to the winmd type universe.
//
// The binary metadata format reader lives behind the Universe interface:
// the generation pipeline only needs namespace listing, type resolution,
// dependency edges and a per-type source fragment. Readers for the real
// on-disk format plug in through an Opener; tests and tooling use the
// in-memory implementation in memory.go.
package metadata

// TypeHandle identifies a single type definition in the universe.
// Value identity: two handles are the same type iff namespace and name match.
type TypeHandle struct {
	Namespace string
	Name      string
}

// String returns the canonical dotted path of the type.
func (h TypeHandle) String() string {
	return h.Namespace + "." + h.Name
}

// Universe exposes lookup and cross-reference information for every type
// defined in a set of metadata files.
//
// Namespace matching is case-insensitive: selection syntax is lossy about
// casing (see the selector package), so ResolveNamespace maps a rough
// lower-cased key onto the canonical name. When two canonical namespaces
// differ only by case, the first in sorted canonical order wins; winmd
// namespaces do not collide by case in practice and upstream behavior for
// that situation is unspecified.
type Universe interface {
	// Namespaces returns every namespace name in sorted order.
	Namespaces() []string

	// ResolveNamespace maps a rough (lower-cased) namespace key onto the
	// canonical namespace name.
	ResolveNamespace(rough string) (string, bool)

	// Resolve looks up a type by canonical namespace and case-insensitive name.
	Resolve(namespace, name string) (TypeHandle, bool)

	// Types returns every type defined in the namespace, sorted by name.
	Types(namespace string) []TypeHandle

	// DirectDependencies returns the types a definition directly requires:
	// interfaces implemented, field types, method signature types.
	DirectDependencies(h TypeHandle) []TypeHandle

	// Render produces the generated source fragment for one type.
	Render(h TypeHandle) string
}

// Opener constructs a Universe from a set of metadata file paths.
// The generation pipeline receives one as injected configuration so the
// file format stays out of the core.
type Opener func(files []string) (Universe, error)
