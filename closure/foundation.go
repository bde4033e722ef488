package closure

import "strings"

// FoundationNamespaces is the fixed set of base namespaces that can be
// wholesale included or wholesale excluded-and-re-exported as a unit.
// When excluded, their symbols are assumed available through the stable
// re-export root rather than inlined into the generated tree.
var FoundationNamespaces = []string{
	"Windows.Foundation",
	"Windows.Foundation.Collections",
	"Windows.Foundation.Metadata",
	"Windows.Foundation.Numerics",
}

// ReexportRoot is the stable alias path substituted for references into
// excluded foundation namespaces.
const ReexportRoot = "windows"

// IsFoundation reports whether ns is one of the foundation namespaces.
func IsFoundation(ns string) bool {
	for _, f := range FoundationNamespaces {
		if strings.EqualFold(ns, f) {
			return true
		}
	}
	return false
}

// reexportAlias builds the substitute canonical path for a removed type:
// "Windows.Foundation.Uri" resolves through "windows.Foundation.Uri".
func reexportAlias(path string) string {
	if rest, ok := strings.CutPrefix(path, "Windows."); ok {
		return ReexportRoot + "." + rest
	}
	return ReexportRoot + "." + path
}
