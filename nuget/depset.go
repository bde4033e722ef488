package nuget

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/winterop/winrtgen/errors"
)

// DependencySet is the deduplicated union of metadata file paths
// contributed by all declared dependencies. Iteration order is
// lexicographic so generated output is reproducible across runs.
type DependencySet struct {
	paths map[string]struct{}
}

// NewDependencySet creates an empty set.
func NewDependencySet() *DependencySet {
	return &DependencySet{paths: make(map[string]struct{})}
}

// Add inserts a single metadata file path. Duplicates collapse.
func (s *DependencySet) Add(path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		// Abs only fails when the working directory is gone; keep the
		// path as given rather than dropping a metadata file.
		abs = path
	}
	s.paths[abs] = struct{}{}
}

// AddDir recursively expands a directory, collecting every winmd file.
func (s *DependencySet) AddDir(dir string) error {
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".winmd") {
			s.Add(path)
		}
		return nil
	})
	if err != nil {
		return errors.Wrapf(err, "failed to expand metadata directory %s", dir)
	}
	return nil
}

// Len returns the number of distinct metadata files.
func (s *DependencySet) Len() int {
	return len(s.paths)
}

// Files returns the metadata file paths in lexicographic order.
func (s *DependencySet) Files() []string {
	files := make([]string, 0, len(s.paths))
	for p := range s.paths {
		files = append(files, p)
	}
	sort.Strings(files)
	return files
}
