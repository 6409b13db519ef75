// Package archivetest builds in-memory distribution archives for tests.
package archivetest

import (
	"archive/tar"
	"bytes"
	"io"
	"testing"

	"github.com/dsnet/compress/bzip2"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
	"github.com/ulikunitz/xz/lzma"

	"github.com/git-pkgs/pkginfo/internal/archive"
)

// File is one archive member. Names ending in "/" become directories.
type File struct {
	Name string
	Body string
}

// MinimalMetadata is the smallest document the parser accepts.
const MinimalMetadata = "Metadata-Version: 1.0\nName: foo\nVersion: 1.0\n"

// SDist lays out files under a single top-level directory with PKG-INFO.
func SDist(top, pkgInfo string, extra ...File) []File {
	files := []File{
		{Name: top + "/"},
		{Name: top + "/PKG-INFO", Body: pkgInfo},
		{Name: top + "/setup.py", Body: "from setuptools import setup\nsetup()\n"},
	}
	for _, f := range extra {
		files = append(files, File{Name: top + "/" + f.Name, Body: f.Body})
	}
	return files
}

// Wheel lays out a wheel with a single dist-info directory.
func Wheel(distInfo, metadata string, extra ...File) []File {
	files := []File{
		{Name: "foo/__init__.py"},
		{Name: distInfo + "/METADATA", Body: metadata},
		{Name: distInfo + "/WHEEL", Body: "Wheel-Version: 1.0\nRoot-Is-Purelib: true\nTag: py3-none-any\n"},
		{Name: distInfo + "/RECORD"},
	}
	return append(files, extra...)
}

// Egg lays out an egg with EGG-INFO/PKG-INFO.
func Egg(pkgInfo string, extra ...File) []File {
	files := []File{
		{Name: "foo/__init__.py"},
		{Name: "EGG-INFO/PKG-INFO", Body: pkgInfo},
		{Name: "EGG-INFO/top_level.txt", Body: "foo\n"},
	}
	return append(files, extra...)
}

// Tar writes files into a tar stream behind compression c.
func Tar(t testing.TB, c archive.Compression, files []File) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := compressor(t, c, &buf)

	tw := tar.NewWriter(w)
	for _, f := range files {
		hdr := &tar.Header{Name: f.Name, Mode: 0o644, Size: int64(len(f.Body)), Typeflag: tar.TypeReg}
		if isDir(f.Name) {
			hdr.Mode, hdr.Size, hdr.Typeflag = 0o755, 0, tar.TypeDir
		}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatalf("writing tar header %s: %v", f.Name, err)
		}
		if _, err := io.WriteString(tw, f.Body); err != nil {
			t.Fatalf("writing tar member %s: %v", f.Name, err)
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("closing tar writer: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("closing %s writer: %v", c, err)
	}
	return buf.Bytes()
}

// Zip writes files into a deflate zip archive.
func Zip(t testing.TB, files []File) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, f := range files {
		if isDir(f.Name) {
			if _, err := zw.Create(f.Name); err != nil {
				t.Fatalf("writing zip dir %s: %v", f.Name, err)
			}
			continue
		}
		w, err := zw.CreateHeader(&zip.FileHeader{Name: f.Name, Method: zip.Deflate})
		if err != nil {
			t.Fatalf("writing zip header %s: %v", f.Name, err)
		}
		if _, err := io.WriteString(w, f.Body); err != nil {
			t.Fatalf("writing zip member %s: %v", f.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing zip writer: %v", err)
	}
	return buf.Bytes()
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func compressor(t testing.TB, c archive.Compression, w io.Writer) io.WriteCloser {
	t.Helper()

	var (
		wc  io.WriteCloser
		err error
	)
	switch c {
	case archive.CompressionNone:
		wc = nopWriteCloser{w}
	case archive.CompressionGzip:
		wc = gzip.NewWriter(w)
	case archive.CompressionBzip2:
		wc, err = bzip2.NewWriter(w, nil)
	case archive.CompressionXZ:
		wc, err = xz.NewWriter(w)
	case archive.CompressionLZMA:
		wc, err = lzma.NewWriter(w)
	case archive.CompressionZstd:
		wc, err = zstd.NewWriter(w)
	default:
		t.Fatalf("unsupported compression %s", c)
	}
	if err != nil {
		t.Fatalf("creating %s writer: %v", c, err)
	}
	return wc
}

func isDir(name string) bool {
	return len(name) > 0 && name[len(name)-1] == '/'
}
