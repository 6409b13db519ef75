package archive

import (
	"archive/tar"
	"bytes"
	"io"

	"github.com/pkg/errors"

	"github.com/git-pkgs/pkginfo/internal/core"
)

// tarArchive keeps the compressed bytes and decompresses again for every
// Open, so at most one member is held in memory.
type tarArchive struct {
	data        []byte
	compression Compression
	names       []string
}

func newTar(c Compression, data []byte) (*tarArchive, error) {
	t := &tarArchive{data: data, compression: c}
	err := t.walk(func(hdr *tar.Header, _ io.Reader) (bool, error) {
		t.names = append(t.names, hdr.Name)
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// walk calls fn for each regular file until fn returns true.
func (t *tarArchive) walk(fn func(hdr *tar.Header, r io.Reader) (bool, error)) error {
	rc, err := decompress(t.compression, bytes.NewReader(t.data))
	if err != nil {
		return err
	}
	defer rc.Close()

	tr := tar.NewReader(rc)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "reading tar header")
		}
		// global pax headers come back as entries of their own
		if hdr.Typeflag == tar.TypeXGlobalHeader || !hdr.FileInfo().Mode().IsRegular() {
			continue
		}
		done, err := fn(hdr, tr)
		if err != nil || done {
			return err
		}
	}
}

func (t *tarArchive) Names() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

func (t *tarArchive) Open(name string) (io.ReadCloser, error) {
	var content []byte
	found := false
	err := t.walk(func(hdr *tar.Header, r io.Reader) (bool, error) {
		if hdr.Name != name {
			return false, nil
		}
		data, err := io.ReadAll(r)
		if err != nil {
			return true, errors.Wrapf(err, "reading %s", name)
		}
		content, found = data, true
		return true, nil
	})
	if err != nil {
		return nil, &core.IOError{Op: "read", Path: name, Err: err}
	}
	if !found {
		return nil, &core.IOError{Op: "open", Path: name, Err: errors.New("no such member")}
	}
	return io.NopCloser(bytes.NewReader(content)), nil
}

func (t *tarArchive) Close() error {
	t.data = nil
	t.names = nil
	return nil
}
