package closure

import "github.com/winterop/winrtgen/logger"

// Prune deletes every foundation namespace node from the tree in full,
// then rewrites remaining references to the deleted types to resolve
// through the stable re-export root. Foundation symbols are assumed
// available there; inlining their bodies is an explicit non-choice.
//
// Two passes, never interleaved: rewriting must see the final deleted
// set, so deletion order cannot affect which edges get rewritten.
// Pruning an already-pruned tree is a no-op.
func Prune(tree *Tree) {
	// Pass 1: delete foundation namespaces wholesale.
	deleted := make(map[string]bool)
	for _, ns := range tree.Namespaces() {
		if IsFoundation(ns) {
			deleted[ns] = true
			tree.remove(ns)
		}
	}
	if len(deleted) == 0 {
		return
	}

	// Pass 2: patch every remaining edge into the deleted set.
	patched := 0
	for _, ns := range tree.Namespaces() {
		for _, h := range tree.Types(ns) {
			for _, dep := range tree.Dependencies(h) {
				if !deleted[dep.Namespace] {
					continue
				}
				tree.addPatch(ns, ReexportPatch{
					Removed: dep,
					Alias:   reexportAlias(dep.String()),
				})
				patched++
			}
		}
	}

	logger.Debugw("Pruned foundation namespaces",
		"removed", len(deleted),
		"patched_references", patched)
}
