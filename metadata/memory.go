package metadata

import (
	"sort"
	"strings"
)

// MemoryUniverse is a map-backed Universe. It backs tests across the
// repository and serves as the registration target for format readers
// that materialize their type tables up front.
type MemoryUniverse struct {
	// namespace -> type name -> dependency handles
	types map[string]map[string][]TypeHandle
	// namespace -> type name -> source fragment
	fragments map[string]map[string]string
}

// NewMemoryUniverse creates an empty in-memory universe.
func NewMemoryUniverse() *MemoryUniverse {
	return &MemoryUniverse{
		types:     make(map[string]map[string][]TypeHandle),
		fragments: make(map[string]map[string]string),
	}
}

// AddType registers a type and its direct dependencies.
// Registering the same type twice replaces its dependency list.
func (u *MemoryUniverse) AddType(namespace, name string, deps ...TypeHandle) TypeHandle {
	if u.types[namespace] == nil {
		u.types[namespace] = make(map[string][]TypeHandle)
	}
	u.types[namespace][name] = deps
	return TypeHandle{Namespace: namespace, Name: name}
}

// AddDependency records one more direct dependency edge for a registered
// type. Unlike AddType it appends rather than replaces.
func (u *MemoryUniverse) AddDependency(from, to TypeHandle) {
	if u.types[from.Namespace] == nil {
		u.types[from.Namespace] = make(map[string][]TypeHandle)
	}
	u.types[from.Namespace][from.Name] = append(u.types[from.Namespace][from.Name], to)
}

// SetFragment registers the source fragment Render returns for a type.
func (u *MemoryUniverse) SetFragment(h TypeHandle, fragment string) {
	if u.fragments[h.Namespace] == nil {
		u.fragments[h.Namespace] = make(map[string]string)
	}
	u.fragments[h.Namespace][h.Name] = fragment
}

// Namespaces returns every namespace name in sorted order.
func (u *MemoryUniverse) Namespaces() []string {
	names := make([]string, 0, len(u.types))
	for ns := range u.types {
		names = append(names, ns)
	}
	sort.Strings(names)
	return names
}

// ResolveNamespace maps a rough lower-cased key onto the canonical name.
// First case-insensitive match in sorted canonical order wins.
func (u *MemoryUniverse) ResolveNamespace(rough string) (string, bool) {
	for _, ns := range u.Namespaces() {
		if strings.EqualFold(ns, rough) {
			return ns, true
		}
	}
	return "", false
}

// Resolve looks up a type by canonical namespace and case-insensitive name.
func (u *MemoryUniverse) Resolve(namespace, name string) (TypeHandle, bool) {
	defs, ok := u.types[namespace]
	if !ok {
		return TypeHandle{}, false
	}
	if _, ok := defs[name]; ok {
		return TypeHandle{Namespace: namespace, Name: name}, true
	}
	// Selection syntax is lossy about casing; fall back to a scan.
	// Sorted order so a case-only collision always resolves the same way,
	// as ResolveNamespace does.
	names := make([]string, 0, len(defs))
	for defined := range defs {
		names = append(names, defined)
	}
	sort.Strings(names)
	for _, defined := range names {
		if strings.EqualFold(defined, name) {
			return TypeHandle{Namespace: namespace, Name: defined}, true
		}
	}
	return TypeHandle{}, false
}

// Types returns every type defined in the namespace, sorted by name.
func (u *MemoryUniverse) Types(namespace string) []TypeHandle {
	defs := u.types[namespace]
	handles := make([]TypeHandle, 0, len(defs))
	for name := range defs {
		handles = append(handles, TypeHandle{Namespace: namespace, Name: name})
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i].Name < handles[j].Name })
	return handles
}

// DirectDependencies returns the registered dependency edges of a type.
func (u *MemoryUniverse) DirectDependencies(h TypeHandle) []TypeHandle {
	deps := u.types[h.Namespace][h.Name]
	out := make([]TypeHandle, len(deps))
	copy(out, deps)
	return out
}

// Render returns the registered fragment, or a placeholder declaration
// when none was registered.
func (u *MemoryUniverse) Render(h TypeHandle) string {
	if frag, ok := u.fragments[h.Namespace][h.Name]; ok {
		return frag
	}
	return "type " + h.Name + ";"
}
