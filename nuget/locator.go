package nuget

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/winterop/winrtgen/errors"
	"github.com/winterop/winrtgen/logger"
)

// Locator maps declared dependencies to metadata files on disk.
type Locator struct {
	// PackageRoot holds one subdirectory per installed package version,
	// named "<Package.Name>.<version>".
	PackageRoot string
	// OSMetadataRoot holds the platform winmd files
	// (conventionally %WINDIR%\System32\WinMetadata).
	OSMetadataRoot string
}

// Resolve expands every declared dependency into a DependencySet.
// Fails on the first missing or ambiguous package; the caller cannot
// meaningfully generate from a partial universe.
func (l *Locator) Resolve(deps []Dependency) (*DependencySet, error) {
	set := NewDependencySet()
	seen := make(map[string]bool)

	for _, dep := range deps {
		if seen[dep.Name] {
			continue
		}
		seen[dep.Name] = true

		var dir string
		switch dep.Kind {
		case KindOS:
			dir = l.OSMetadataRoot
		case KindPackage:
			located, err := l.locatePackage(dep.Name)
			if err != nil {
				return nil, err
			}
			dir = located
		}

		if err := set.AddDir(dir); err != nil {
			return nil, errors.Wrapf(err, "dependency %s", dep)
		}
		logger.Debugw("Resolved dependency",
			"dependency", dep.String(),
			"dir", dir,
			"files", set.Len())
	}

	return set, nil
}

// locatePackage finds the single installed directory whose name starts
// with the package name. Zero matches is a missing dependency; two or
// more (side-by-side versions) is ambiguous and the caller must
// disambiguate out of band rather than have a version guessed.
func (l *Locator) locatePackage(name string) (string, error) {
	entries, err := os.ReadDir(l.PackageRoot)
	if err != nil {
		return "", errors.Wrapf(errors.ErrMissingDependency,
			"package root %s is not readable: %v", l.PackageRoot, err)
	}

	var matches []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if hasPackagePrefix(entry.Name(), name) {
			matches = append(matches, entry.Name())
		}
	}

	switch len(matches) {
	case 0:
		return "", errors.WithHint(
			errors.NewMissingDependency("no installed package matches %q under %s", name, l.PackageRoot),
			"install the package into the package root before generating")
	case 1:
		return filepath.Join(l.PackageRoot, matches[0]), nil
	default:
		return "", errors.WithHintf(
			errors.NewAmbiguousDependency("package %q has %d installed versions: %s",
				name, len(matches), strings.Join(describeVersions(name, matches), ", ")),
			"remove all but one installed version of %q", name)
	}
}

// hasPackagePrefix matches directory names of the form "<name>" or
// "<name>.<suffix>", case-insensitively; "Foo.BarBaz" must not match a
// declared "Foo.Bar".
func hasPackagePrefix(dirName, pkgName string) bool {
	if len(dirName) < len(pkgName) {
		return false
	}
	if !strings.EqualFold(dirName[:len(pkgName)], pkgName) {
		return false
	}
	return len(dirName) == len(pkgName) || dirName[len(pkgName)] == '.'
}

// describeVersions renders the version suffixes of matched directories for
// the ambiguity diagnostic, in ascending version order where the suffixes
// parse as versions.
func describeVersions(pkgName string, dirs []string) []string {
	type entry struct {
		raw    string
		parsed *semver.Version
	}
	entries := make([]entry, 0, len(dirs))
	for _, dir := range dirs {
		suffix := strings.TrimPrefix(dir[len(pkgName):], ".")
		if suffix == "" {
			suffix = dir
		}
		v, err := semver.NewVersion(suffix)
		if err != nil {
			entries = append(entries, entry{raw: suffix})
			continue
		}
		entries = append(entries, entry{raw: suffix, parsed: v})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].parsed != nil && entries[j].parsed != nil {
			return entries[i].parsed.LessThan(entries[j].parsed)
		}
		return entries[i].raw < entries[j].raw
	})
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.raw
	}
	return out
}
