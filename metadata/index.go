package metadata

import (
	"encoding/json"
	"os"

	"github.com/winterop/winrtgen/errors"
)

// indexSidecarExt is appended to a metadata file path to locate its
// pre-extracted type index.
const indexSidecarExt = ".json"

// indexFile is the on-disk shape of one sidecar index.
type indexFile struct {
	Types []indexType `json:"types"`
}

type indexType struct {
	Namespace string   `json:"namespace"`
	Name      string   `json:"name"`
	Deps      []string `json:"deps,omitempty"`
	Fragment  string   `json:"fragment,omitempty"`
}

// OpenIndex builds a Universe from sidecar index files. For every metadata
// file "X.winmd" it reads "X.winmd.json", a type catalog extracted ahead of
// time, so the binary metadata format never has to be decoded here.
//
// Dependency edges reference types as "Namespace.Name"; edges that point
// outside the loaded catalog are dropped, matching how an absent namespace
// simply contributes nothing to a closure.
func OpenIndex(files []string) (Universe, error) {
	u := NewMemoryUniverse()

	type pendingEdge struct {
		from TypeHandle
		to   string
	}
	var edges []pendingEdge

	for _, file := range files {
		sidecar := file + indexSidecarExt
		data, err := os.ReadFile(sidecar)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read type index for %s", file)
		}

		var idx indexFile
		if err := json.Unmarshal(data, &idx); err != nil {
			return nil, errors.Wrapf(err, "malformed type index %s", sidecar)
		}

		for _, t := range idx.Types {
			h := u.AddType(t.Namespace, t.Name)
			if t.Fragment != "" {
				u.SetFragment(h, t.Fragment)
			}
			for _, dep := range t.Deps {
				edges = append(edges, pendingEdge{from: h, to: dep})
			}
		}
	}

	// Edges resolve after every index is loaded so cross-file references
	// work regardless of load order.
	for _, e := range edges {
		ns, name, ok := splitTypeRef(e.to)
		if !ok {
			continue
		}
		if h, ok := u.Resolve(ns, name); ok {
			u.AddDependency(e.from, h)
		}
	}

	return u, nil
}

// splitTypeRef splits "A.B.C.Name" into namespace "A.B.C" and leaf "Name".
func splitTypeRef(ref string) (string, string, bool) {
	for i := len(ref) - 1; i >= 0; i-- {
		if ref[i] == '.' {
			if i == 0 || i == len(ref)-1 {
				return "", "", false
			}
			return ref[:i], ref[i+1:], true
		}
	}
	return "", "", false
}
