package closure

import (
	"fmt"
	"sort"

	"github.com/winterop/winrtgen/errors"
	"github.com/winterop/winrtgen/logger"
	"github.com/winterop/winrtgen/metadata"
	"github.com/winterop/winrtgen/selector"
)

// Limits is the working selector set, keyed by canonical namespace.
// Selectors are resolved against the universe as they are inserted so
// unknown namespaces surface against the original declaration syntax,
// before any closure work starts.
type Limits struct {
	universe metadata.Universe
	limits   map[string]selector.Limit
}

// NewLimits creates an empty limit set over the universe.
func NewLimits(u metadata.Universe) *Limits {
	return &Limits{universe: u, limits: make(map[string]selector.Limit)}
}

// Insert resolves a parsed selector against the universe and merges it in.
// An unresolvable namespace is an input error naming the declaration span,
// not a generic resolution failure.
func (l *Limits) Insert(sel selector.Selector) error {
	canonical, ok := l.universe.ResolveNamespace(sel.Namespace)
	if !ok {
		return errors.WithHint(
			errors.NewUnknownNamespace("%q (declared at %d:%d) does not exist in the metadata",
				sel.Raw, sel.Span.Start.Line, sel.Span.Start.Character+1),
			"check the declared dependencies cover this namespace")
	}
	l.merge(canonical, sel.Limit)
	return nil
}

// InsertAll force-includes every type of a canonical namespace. Foundation
// opt-in goes through here: it is just an additional All selector, not a
// separate code path. Namespaces absent from the universe are skipped —
// the caller never named them.
func (l *Limits) InsertAll(canonical string) {
	resolved, ok := l.universe.ResolveNamespace(canonical)
	if !ok {
		logger.Debugw("Namespace not present in universe, skipping", "namespace", canonical)
		return
	}
	l.merge(resolved, selector.All)
}

func (l *Limits) merge(canonical string, limit selector.Limit) {
	existing, ok := l.limits[canonical]
	if !ok {
		l.limits[canonical] = limit
		return
	}
	if limit.All || existing.All {
		l.limits[canonical] = selector.All
		return
	}
	l.limits[canonical] = selector.Named(append(existing.Names, limit.Names...)...)
}

// namespaces returns the limit keys in sorted order.
func (l *Limits) namespaces() []string {
	keys := make([]string, 0, len(l.limits))
	for ns := range l.limits {
		keys = append(keys, ns)
	}
	sort.Strings(keys)
	return keys
}

// Build produces the namespace tree containing exactly the selected types
// and every type transitively required by them.
func (l *Limits) Build() (*Tree, error) {
	tree := NewTree()
	if err := l.Expand(tree); err != nil {
		return nil, err
	}
	return tree, nil
}

// Expand grows an existing tree to the dependency closure of the limit
// set. Expanding an already-closed tree adds nothing.
func (l *Limits) Expand(tree *Tree) error {
	var worklist []metadata.TypeHandle

	for _, ns := range l.namespaces() {
		limit := l.limits[ns]
		if limit.All {
			worklist = append(worklist, l.universe.Types(ns)...)
			continue
		}
		for _, name := range limit.Names {
			h, ok := l.universe.Resolve(ns, name)
			if !ok {
				return errors.Wrap(errors.ErrUnknownType,
					fmt.Sprintf("%s has no type %q", ns, name))
			}
			worklist = append(worklist, h)
		}
	}

	seeded := len(worklist)
	for len(worklist) > 0 {
		h := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		if tree.Contains(h) {
			continue
		}
		deps := l.universe.DirectDependencies(h)
		tree.Insert(h, deps)
		worklist = append(worklist, deps...)
	}

	logger.Debugw("Closure computed",
		"seeded", seeded,
		"namespaces", len(tree.Namespaces()),
		"types", tree.TypeCount())
	return nil
}
