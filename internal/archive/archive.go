// Package archive reads member names and contents from distribution archives.
//
// Tar archives may sit behind a compression layer; zip archives (wheels,
// eggs and zip sdists) use deflate internally. Every backend implements
// Archive so callers never branch on the container type after New.
package archive

import (
	"bytes"
	"io"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
	"github.com/ulikunitz/xz"
	"github.com/ulikunitz/xz/lzma"

	"github.com/git-pkgs/pkginfo/internal/core"
)

// Archive exposes the regular-file members of an archive.
type Archive interface {
	// Names lists member names as stored, in archive order.
	Names() []string
	// Open returns a stream over one member.
	Open(name string) (io.ReadCloser, error)
	Close() error
}

// Container is the archive layout.
type Container int

const (
	ContainerUnknown Container = iota
	ContainerTar
	ContainerZip
)

func (c Container) String() string {
	switch c {
	case ContainerTar:
		return "tar"
	case ContainerZip:
		return "zip"
	default:
		return "unknown"
	}
}

// Compression is the stream layer wrapped around a tar container.
type Compression int

const (
	CompressionNone Compression = iota
	CompressionGzip
	CompressionBzip2
	CompressionXZ
	CompressionLZMA
	CompressionZstd
)

func (c Compression) String() string {
	switch c {
	case CompressionGzip:
		return "gzip"
	case CompressionBzip2:
		return "bzip2"
	case CompressionXZ:
		return "xz"
	case CompressionLZMA:
		return "lzma"
	case CompressionZstd:
		return "zstd"
	default:
		return "none"
	}
}

// Format is a container plus its compression layer.
type Format struct {
	Container   Container
	Compression Compression
}

func (f Format) String() string {
	if f.Compression == CompressionNone {
		return f.Container.String()
	}
	return f.Container.String() + "+" + f.Compression.String()
}

// Known reports whether f names a supported container.
func (f Format) Known() bool {
	return f.Container != ContainerUnknown
}

// suffixes is checked in order, so double suffixes come first.
var suffixes = []struct {
	suffix string
	format Format
}{
	{".tar.gz", Format{ContainerTar, CompressionGzip}},
	{".tar.bz2", Format{ContainerTar, CompressionBzip2}},
	{".tar.xz", Format{ContainerTar, CompressionXZ}},
	{".tar.lzma", Format{ContainerTar, CompressionLZMA}},
	{".tar.zst", Format{ContainerTar, CompressionZstd}},
	{".tgz", Format{ContainerTar, CompressionGzip}},
	{".tbz", Format{ContainerTar, CompressionBzip2}},
	{".tbz2", Format{ContainerTar, CompressionBzip2}},
	{".txz", Format{ContainerTar, CompressionXZ}},
	{".tlz", Format{ContainerTar, CompressionLZMA}},
	{".tzst", Format{ContainerTar, CompressionZstd}},
	{".tar", Format{ContainerTar, CompressionNone}},
	{".zip", Format{ContainerZip, CompressionNone}},
	{".whl", Format{ContainerZip, CompressionNone}},
	{".egg", Format{ContainerZip, CompressionNone}},
}

// DetectByName picks a format from the file name suffix.
func DetectByName(name string) (Format, bool) {
	lower := strings.ToLower(name)
	for _, s := range suffixes {
		if strings.HasSuffix(lower, s.suffix) {
			return s.format, true
		}
	}
	return Format{}, false
}

var (
	zipMagic   = []byte("PK\x03\x04")
	gzipMagic  = []byte{0x1f, 0x8b}
	bzip2Magic = []byte("BZh")
	xzMagic    = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
	zstdMagic  = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// Sniff detects a format from the leading bytes of an archive. Compressed
// streams are assumed to hold a tar archive. Raw lzma has no magic and is
// only found by name.
func Sniff(header []byte) (Format, bool) {
	switch {
	case bytes.HasPrefix(header, zipMagic):
		return Format{ContainerZip, CompressionNone}, true
	case bytes.HasPrefix(header, gzipMagic):
		return Format{ContainerTar, CompressionGzip}, true
	case bytes.HasPrefix(header, bzip2Magic):
		return Format{ContainerTar, CompressionBzip2}, true
	case bytes.HasPrefix(header, xzMagic):
		return Format{ContainerTar, CompressionXZ}, true
	case bytes.HasPrefix(header, zstdMagic):
		return Format{ContainerTar, CompressionZstd}, true
	case isTar(header):
		return Format{ContainerTar, CompressionNone}, true
	}
	return Format{}, false
}

// isTar checks for the ustar magic at offset 257.
func isTar(data []byte) bool {
	if len(data) < 262 {
		return false
	}
	return string(data[257:262]) == "ustar"
}

// New opens data as an archive of the given format.
func New(f Format, data []byte) (Archive, error) {
	var (
		a   Archive
		err error
	)
	switch f.Container {
	case ContainerTar:
		a, err = newTar(f.Compression, data)
	case ContainerZip:
		a, err = newZip(data)
	default:
		return nil, core.ErrUnknownDistributionFormat
	}
	if err != nil {
		return nil, &core.IOError{Op: "open " + f.String(), Err: err}
	}
	return a, nil
}

// decompress wraps r in the reader for c.
func decompress(c Compression, r io.Reader) (io.ReadCloser, error) {
	switch c {
	case CompressionNone:
		return io.NopCloser(r), nil
	case CompressionGzip:
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, errors.Wrap(err, "initializing gzip reader")
		}
		return gz, nil
	case CompressionBzip2:
		bz, err := bzip2.NewReader(r, nil)
		if err != nil {
			return nil, errors.Wrap(err, "initializing bzip2 reader")
		}
		return bz, nil
	case CompressionXZ:
		xr, err := xz.NewReader(r)
		if err != nil {
			return nil, errors.Wrap(err, "initializing xz reader")
		}
		return io.NopCloser(xr), nil
	case CompressionLZMA:
		lr, err := lzma.NewReader(r)
		if err != nil {
			return nil, errors.Wrap(err, "initializing lzma reader")
		}
		return io.NopCloser(lr), nil
	case CompressionZstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, errors.Wrap(err, "initializing zstd reader")
		}
		return dec.IOReadCloser(), nil
	}
	return nil, errors.Errorf("unsupported compression %d", c)
}

// ReadMember reads one member, failing when it is larger than limit bytes.
// A limit of zero or less disables the check.
func ReadMember(a Archive, name string, limit int64) ([]byte, error) {
	rc, err := a.Open(name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var r io.Reader = rc
	if limit > 0 {
		r = io.LimitReader(rc, limit+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &core.IOError{Op: "read", Path: name, Err: errors.Wrap(err, "reading member")}
	}
	if limit > 0 && int64(len(data)) > limit {
		return nil, &core.IOError{Op: "read", Path: name, Err: errors.Errorf("member exceeds %d bytes", limit)}
	}
	return data, nil
}
