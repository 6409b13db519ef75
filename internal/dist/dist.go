// Package dist opens Python distributions and extracts their metadata.
package dist

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/git-pkgs/pkginfo/internal/archive"
	"github.com/git-pkgs/pkginfo/internal/core"
	"github.com/git-pkgs/pkginfo/internal/metadata"
)

// Distribution is one opened distribution file and its parsed metadata.
type Distribution struct {
	kind          core.Kind
	format        archive.Format
	filename      string
	metadataPath  string
	pythonVersion string
	metadata      *core.Metadata
}

// Open reads the distribution at path.
func Open(path string, opts ...Option) (*Distribution, error) {
	cfg := newConfig(opts)

	f, err := os.Open(path)
	if err != nil {
		return nil, &core.IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	if cfg.maxArchiveSize > 0 {
		if info, err := f.Stat(); err == nil && info.Size() > cfg.maxArchiveSize {
			return nil, &core.IOError{Op: "open", Path: path,
				Err: fmt.Errorf("archive is %d bytes, limit is %d", info.Size(), cfg.maxArchiveSize)}
		}
	}

	data, err := readAll(f, cfg.maxArchiveSize)
	if err != nil {
		return nil, &core.IOError{Op: "read", Path: path, Err: err}
	}
	return build(filepath.Base(path), data, cfg)
}

// FromReader reads a distribution from r. name is the original file name
// and selects the format; an empty name falls back to content sniffing.
func FromReader(name string, r io.Reader, opts ...Option) (*Distribution, error) {
	cfg := newConfig(opts)
	data, err := readAll(r, cfg.maxArchiveSize)
	if err != nil {
		return nil, &core.IOError{Op: "read", Path: name, Err: err}
	}
	return build(name, data, cfg)
}

// FromBytes parses a distribution already held in memory.
func FromBytes(name string, data []byte, opts ...Option) (*Distribution, error) {
	cfg := newConfig(opts)
	if cfg.maxArchiveSize > 0 && int64(len(data)) > cfg.maxArchiveSize {
		return nil, &core.IOError{Op: "read", Path: name,
			Err: fmt.Errorf("archive is %d bytes, limit is %d", len(data), cfg.maxArchiveSize)}
	}
	return build(name, data, cfg)
}

func readAll(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("archive exceeds %d bytes", limit)
	}
	return data, nil
}

func build(name string, data []byte, cfg *config) (*Distribution, error) {
	base := filepath.Base(filepath.FromSlash(name))
	if name == "" {
		base = ""
	}

	format, kinds, err := classify(base, data)
	if err != nil {
		cfg.logger.Verbose("classify %q: %v", base, err)
		return nil, err
	}
	cfg.logger.Verbose("classified %q as %s, trying %v", base, format, kinds)

	a, err := archive.New(format, data)
	if err != nil {
		return nil, withPath(err, base)
	}
	defer a.Close()

	kind, member, err := locate(a, kinds, cfg)
	if err != nil {
		return nil, withPath(err, base)
	}
	cfg.logger.Verbose("found %s metadata at %s", kind, member)

	raw, err := archive.ReadMember(a, member, cfg.maxMetadataSize)
	if err != nil {
		return nil, withPath(err, base)
	}

	m, err := metadata.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", member, err)
	}

	return &Distribution{
		kind:          kind,
		format:        format,
		filename:      base,
		metadataPath:  member,
		pythonVersion: pythonVersion(base, kind),
		metadata:      m,
	}, nil
}

// classify picks the archive format and the kinds worth trying, in order.
func classify(name string, data []byte) (archive.Format, []core.Kind, error) {
	if name != "" {
		format, ok := archive.DetectByName(name)
		if !ok {
			return archive.Format{}, nil, fmt.Errorf("%w: %s", core.ErrUnknownDistributionFormat, name)
		}
		return format, []core.Kind{kindByName(name)}, nil
	}

	format, ok := archive.Sniff(data)
	if !ok {
		return archive.Format{}, nil, fmt.Errorf("%w: unrecognised content", core.ErrUnknownDistributionFormat)
	}
	if format.Container == archive.ContainerZip {
		return format, []core.Kind{core.KindWheel, core.KindEgg, core.KindSDist}, nil
	}
	return format, []core.Kind{core.KindSDist}, nil
}

func kindByName(name string) core.Kind {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".whl":
		return core.KindWheel
	case ".egg":
		return core.KindEgg
	default:
		return core.KindSDist
	}
}

// locate returns the first kind whose metadata member exists. The error of
// the first kind is reported when none match.
func locate(a archive.Archive, kinds []core.Kind, cfg *config) (core.Kind, string, error) {
	var first error
	for _, kind := range kinds {
		member, err := archive.Locate(a, kind)
		if err == nil {
			return kind, member, nil
		}
		cfg.logger.Verbose("no %s metadata: %v", kind, err)
		if first == nil {
			first = err
		}
	}
	return core.KindUnknown, "", first
}

// withPath records the archive name on I/O errors raised below it.
func withPath(err error, name string) error {
	var ioErr *core.IOError
	if errors.As(err, &ioErr) && name != "" {
		if ioErr.Path == "" {
			ioErr.Path = name
			return err
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return err
}

// pythonVersion extracts the python tag from wheel and egg file names.
func pythonVersion(name string, kind core.Kind) string {
	if kind == core.KindSDist {
		return "source"
	}

	stem := strings.TrimSuffix(name, filepath.Ext(name))
	parts := strings.Split(stem, "-")
	switch kind {
	case core.KindWheel:
		// name-version(-build)?-python-abi-platform
		switch len(parts) {
		case 5:
			return parts[2]
		case 6:
			return parts[3]
		}
	case core.KindEgg:
		// name-version-python(-platform)?
		if len(parts) == 3 || len(parts) == 4 {
			return parts[2]
		}
	}
	return "any"
}

// Kind returns the distribution kind.
func (d *Distribution) Kind() core.Kind {
	return d.kind
}

// Format returns the archive format the distribution was read as.
func (d *Distribution) Format() archive.Format {
	return d.format
}

// Metadata returns the parsed metadata.
func (d *Distribution) Metadata() *core.Metadata {
	return d.metadata
}

// Filename returns the base name the distribution was opened with. It is
// empty for unnamed readers.
func (d *Distribution) Filename() string {
	return d.filename
}

// MetadataPath returns the archive member the metadata was read from.
func (d *Distribution) MetadataPath() string {
	return d.metadataPath
}

// PythonVersion returns "source" for sdists, the python tag from wheel and
// egg file names, and "any" when the name carries no tag.
func (d *Distribution) PythonVersion() string {
	return d.pythonVersion
}

// PURL returns the Package URL of the distribution, qualified by file name.
func (d *Distribution) PURL() string {
	return core.BuildPURL(d.metadata.Name, d.metadata.Version, map[string]string{
		"file_name": d.filename,
	})
}

// Package returns the normalised package view with distribution details
// added to its metadata map.
func (d *Distribution) Package() *core.Package {
	pkg := d.metadata.Package()
	pkg.Metadata["kind"] = d.kind.String()
	pkg.Metadata["python_version"] = d.pythonVersion
	if d.filename != "" {
		pkg.Metadata["filename"] = d.filename
	}
	return pkg
}
