package archive

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zip"
	"github.com/pkg/errors"

	"github.com/git-pkgs/pkginfo/internal/core"
)

type zipArchive struct {
	reader *zip.Reader
	files  map[string]*zip.File
	names  []string
}

func newZip(data []byte) (*zipArchive, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, errors.Wrap(err, "initializing zip reader")
	}

	z := &zipArchive{reader: zr, files: make(map[string]*zip.File, len(zr.File))}
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if _, dup := z.files[f.Name]; dup {
			continue
		}
		z.files[f.Name] = f
		z.names = append(z.names, f.Name)
	}
	return z, nil
}

func (z *zipArchive) Names() []string {
	out := make([]string, len(z.names))
	copy(out, z.names)
	return out
}

func (z *zipArchive) Open(name string) (io.ReadCloser, error) {
	f, ok := z.files[name]
	if !ok {
		return nil, &core.IOError{Op: "open", Path: name, Err: errors.New("no such member")}
	}
	rc, err := f.Open()
	if err != nil {
		return nil, &core.IOError{Op: "open", Path: name, Err: errors.Wrap(err, "opening zip member")}
	}
	return rc, nil
}

func (z *zipArchive) Close() error {
	z.reader = nil
	z.files = nil
	z.names = nil
	return nil
}
