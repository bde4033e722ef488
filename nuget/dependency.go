// Package nuget resolves declared metadata dependencies to the winmd
// files of installed packages.
//
// Resolution is local-only: packages are expected to already be installed
// under a well-known root directory (one subdirectory per package version,
// named "<Package.Name>.<version>"). Nothing here touches the network; a
// missing or ambiguous installation is reported to the caller, who must
// fix it out of band.
package nuget

// Kind discriminates the two declared dependency forms.
type Kind int

const (
	// KindOS is platform metadata shipped with the operating system.
	KindOS Kind = iota
	// KindPackage is a named external package ("nuget: My.Package").
	KindPackage
)

// Dependency is one declared metadata source. Identity is the name string;
// OS dependencies share the fixed name "os".
type Dependency struct {
	Kind Kind
	Name string
}

// OS returns the platform-metadata dependency.
func OS() Dependency {
	return Dependency{Kind: KindOS, Name: "os"}
}

// Package returns a named package dependency.
func Package(name string) Dependency {
	return Dependency{Kind: KindPackage, Name: name}
}

func (d Dependency) String() string {
	if d.Kind == KindOS {
		return "os"
	}
	return "nuget: " + d.Name
}
