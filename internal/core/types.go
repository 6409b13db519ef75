// Package core provides the shared metadata model, errors and derived views.
package core

// Kind identifies the packaging format of a distribution.
type Kind int

const (
	KindUnknown Kind = iota
	KindSDist
	KindWheel
	KindEgg
)

// String returns the distutils command name for the kind.
func (k Kind) String() string {
	switch k {
	case KindSDist:
		return "sdist"
	case KindWheel:
		return "bdist_wheel"
	case KindEgg:
		return "bdist_egg"
	default:
		return "unknown"
	}
}

// MetadataFile returns the file name that holds metadata for the kind.
func (k Kind) MetadataFile() string {
	if k == KindWheel {
		return "METADATA"
	}
	return "PKG-INFO"
}

// Field is one raw header as it appeared in the metadata document.
type Field struct {
	Name  string
	Value string
}

// Metadata is a parsed PKG-INFO or METADATA document.
//
// Scalar fields are empty when the document does not set them. Sequence
// fields keep file order and duplicates, and are never nil once parsed.
type Metadata struct {
	MetadataVersion string
	Name            string
	Version         string

	Summary                string
	Description            string
	DescriptionContentType string
	Keywords               string
	HomePage               string
	DownloadURL            string
	Author                 string
	AuthorEmail            string
	Maintainer             string
	MaintainerEmail        string
	License                string
	LicenseExpression      string

	Platforms          []string
	SupportedPlatforms []string
	Classifiers        []string
	Requires           []string
	Provides           []string
	Obsoletes          []string
	RequiresDist       []string
	ProvidesDist       []string
	ObsoletesDist      []string
	RequiresExternal   []string
	ProjectURLs        []string
	ProvidesExtra      []string
	RequiresPython     []string
	Dynamic            []string
	LicenseFiles       []string

	// Raw holds every header in document order, including the ones the
	// declared metadata version does not define.
	Raw []Field
}

// Package is a registry-neutral summary of a distribution's metadata.
type Package struct {
	Name        string
	Version     string
	Description string
	Homepage    string
	Repository  string
	Licenses    string
	Keywords    []string
	Metadata    map[string]any
}

// Dependency represents a package dependency.
type Dependency struct {
	Name         string
	Requirements string
	Scope        Scope
	Optional     bool
}

// Scope indicates when a dependency is required.
// Environment markers are carried verbatim as the scope.
type Scope string

const (
	Runtime  Scope = "runtime"
	Optional Scope = "optional"
)

// Maintainer represents a package author or maintainer.
type Maintainer struct {
	Name  string
	Email string
	Role  string
}
