package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownDistributionFormat is returned when a file name or its content
	// does not match any supported archive kind.
	ErrUnknownDistributionFormat = errors.New("unknown distribution format")

	// ErrMetadataNotFound is returned when the archive was readable but the
	// metadata member is missing or ambiguous.
	ErrMetadataNotFound = errors.New("metadata file not found")

	// ErrInvalidMetadataVersion is returned when Metadata-Version is missing
	// or malformed.
	ErrInvalidMetadataVersion = errors.New("invalid metadata version")

	// ErrMalformedMetadata is returned when a document has no usable header
	// structure.
	ErrMalformedMetadata = errors.New("malformed metadata")

	// ErrIO matches every IOError.
	ErrIO = errors.New("i/o error")
)

// IOError wraps a failure to open, decompress or read an archive.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrIO.
func (e *IOError) Is(target error) bool {
	return target == ErrIO
}

// AmbiguousMetadataError is returned when more than one archive member
// qualifies as the metadata file.
type AmbiguousMetadataError struct {
	Pattern    string
	Candidates []string
}

func (e *AmbiguousMetadataError) Error() string {
	return fmt.Sprintf("found %d metadata files matching %s: %s",
		len(e.Candidates), e.Pattern, strings.Join(e.Candidates, ", "))
}

func (e *AmbiguousMetadataError) Unwrap() error {
	return ErrMetadataNotFound
}

// MissingFieldError is returned when a required header is absent.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("metadata field %s not found", e.Field)
}

func (e *MissingFieldError) Unwrap() error {
	return ErrMalformedMetadata
}

// VersionError describes an unusable Metadata-Version value.
type VersionError struct {
	Value string
}

func (e *VersionError) Error() string {
	if e.Value == "" {
		return "Metadata-Version header not found"
	}
	return fmt.Sprintf("unrecognized Metadata-Version %q", e.Value)
}

func (e *VersionError) Unwrap() error {
	return ErrInvalidMetadataVersion
}
