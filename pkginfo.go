// Package pkginfo reads metadata from Python distributions.
//
// Source distributions (tar, optionally gzip, bzip2, xz, lzma or zstd
// compressed, or zip), wheels and eggs are supported. The metadata document
// inside the archive (PKG-INFO or METADATA) is parsed into a typed record
// whose fields follow the document's Metadata-Version.
//
// Basic usage:
//
//	d, err := pkginfo.Open("requests-2.32.3-py3-none-any.whl")
//	if err != nil {
//		log.Fatal(err)
//	}
//	m := d.Metadata()
//	fmt.Println(d.Kind(), m.Name, m.Version, m.RequiresDist)
//
// Metadata documents can also be parsed directly:
//
//	m, err := pkginfo.ParseMetadata(data)
package pkginfo

import (
	"io"

	"github.com/git-pkgs/purl"

	"github.com/git-pkgs/pkginfo/internal/core"
	"github.com/git-pkgs/pkginfo/internal/dist"
	"github.com/git-pkgs/pkginfo/internal/logging"
	"github.com/git-pkgs/pkginfo/internal/metadata"
	"github.com/git-pkgs/pkginfo/internal/schema"
)

// Re-export types from internal/core
type (
	// Metadata is a parsed PKG-INFO or METADATA document.
	Metadata = core.Metadata

	// Field is one raw header from a metadata document.
	Field = core.Field

	// Kind identifies sdists, wheels and eggs.
	Kind = core.Kind

	// Package is a registry-neutral summary of the metadata.
	Package = core.Package

	// Dependency is one parsed Requires-Dist entry.
	Dependency = core.Dependency

	// Maintainer is an author or maintainer with their email.
	Maintainer = core.Maintainer

	// Scope indicates when a dependency is required.
	Scope = core.Scope

	// URLs builds registry and documentation links for a release.
	URLs = core.URLs
)

// Distribution is an opened distribution file.
type Distribution = dist.Distribution

// PURL represents a parsed Package URL.
type PURL = purl.PURL

// Logger receives diagnostic messages while distributions are opened.
type Logger = logging.Logger

// Re-export constants
const (
	KindUnknown = core.KindUnknown
	KindSDist   = core.KindSDist
	KindWheel   = core.KindWheel
	KindEgg     = core.KindEgg

	Runtime  = core.Runtime
	Optional = core.Optional

	DefaultIndexURL        = core.DefaultIndexURL
	DefaultMaxArchiveSize  = dist.DefaultMaxArchiveSize
	DefaultMaxMetadataSize = dist.DefaultMaxMetadataSize
)

// Re-export errors
var (
	ErrUnknownDistributionFormat = core.ErrUnknownDistributionFormat
	ErrMetadataNotFound          = core.ErrMetadataNotFound
	ErrInvalidMetadataVersion    = core.ErrInvalidMetadataVersion
	ErrMalformedMetadata         = core.ErrMalformedMetadata
	ErrIO                        = core.ErrIO
)

// Error types
type (
	IOError                = core.IOError
	AmbiguousMetadataError = core.AmbiguousMetadataError
	MissingFieldError      = core.MissingFieldError
	VersionError           = core.VersionError
)

// Option configures how a distribution is opened.
type Option = dist.Option

// WithLogger sets the logger for classification and lookup details.
var WithLogger = dist.WithLogger

// WithMaxArchiveSize limits how many bytes of an archive are read.
var WithMaxArchiveSize = dist.WithMaxArchiveSize

// WithMaxMetadataSize limits the size of the metadata member.
var WithMaxMetadataSize = dist.WithMaxMetadataSize

// NewConsoleLogger returns a Logger writing to stderr.
func NewConsoleLogger(verbose bool) Logger {
	return logging.NewConsoleLogger(verbose)
}

// Open reads the distribution at path. The format is chosen from the file
// name suffix.
func Open(path string, opts ...Option) (*Distribution, error) {
	return dist.Open(path, opts...)
}

// FromReader reads a distribution from r. An empty name selects the format
// from the content instead of the suffix.
func FromReader(name string, r io.Reader, opts ...Option) (*Distribution, error) {
	return dist.FromReader(name, r, opts...)
}

// FromBytes parses a distribution held in memory.
func FromBytes(name string, data []byte, opts ...Option) (*Distribution, error) {
	return dist.FromBytes(name, data, opts...)
}

// ParseMetadata parses a PKG-INFO or METADATA document.
func ParseMetadata(data []byte) (*Metadata, error) {
	return metadata.Parse(data)
}

// KnownMetadataVersions returns the Metadata-Version values with a field
// table, oldest first. Newer versions are parsed with the latest table.
func KnownMetadataVersions() []string {
	known := schema.Known()
	out := make([]string, len(known))
	for i, v := range known {
		out[i] = string(v)
	}
	return out
}

// NormalizeName returns the PEP 503 normalised form of a project name.
func NormalizeName(name string) string {
	return core.NormalizeName(name)
}

// ParsePURL parses a Package URL string into its components.
// Supports both package PURLs (pkg:pypi/requests) and version PURLs
// (pkg:pypi/requests@2.31.0).
func ParsePURL(purlStr string) (*PURL, error) {
	return purl.Parse(purlStr)
}

// NewURLs returns a link builder for m. If baseURL is empty, DefaultIndexURL
// is used.
func NewURLs(baseURL string, m *Metadata) *URLs {
	return core.NewURLs(baseURL, m)
}

// BuildURLs returns a map of all non-empty URLs for a release.
// Keys are "registry", "download", "docs", and "purl".
func BuildURLs(urls *URLs) map[string]string {
	return core.BuildURLs(urls)
}
