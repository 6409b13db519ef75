package archive_test

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/git-pkgs/pkginfo/internal/archive"
	"github.com/git-pkgs/pkginfo/internal/archive/archivetest"
	"github.com/git-pkgs/pkginfo/internal/core"
)

var compressions = []archive.Compression{
	archive.CompressionNone,
	archive.CompressionGzip,
	archive.CompressionBzip2,
	archive.CompressionXZ,
	archive.CompressionLZMA,
	archive.CompressionZstd,
}

func TestTarRoundTrip(t *testing.T) {
	files := archivetest.SDist("foo-1.0", archivetest.MinimalMetadata)

	for _, c := range compressions {
		t.Run(c.String(), func(t *testing.T) {
			data := archivetest.Tar(t, c, files)

			a, err := archive.New(archive.Format{Container: archive.ContainerTar, Compression: c}, data)
			require.NoError(t, err)
			defer a.Close()

			// directory entries are not members
			assert.Equal(t, []string{"foo-1.0/PKG-INFO", "foo-1.0/setup.py"}, a.Names())

			name, err := archive.Locate(a, core.KindSDist)
			require.NoError(t, err)
			assert.Equal(t, "foo-1.0/PKG-INFO", name)

			body, err := archive.ReadMember(a, name, 0)
			require.NoError(t, err)
			assert.Equal(t, archivetest.MinimalMetadata, string(body))
		})
	}
}

func TestZipRoundTrip(t *testing.T) {
	data := archivetest.Zip(t, archivetest.Wheel("foo-1.0.dist-info", archivetest.MinimalMetadata))

	a, err := archive.New(archive.Format{Container: archive.ContainerZip}, data)
	require.NoError(t, err)
	defer a.Close()

	name, err := archive.Locate(a, core.KindWheel)
	require.NoError(t, err)
	assert.Equal(t, "foo-1.0.dist-info/METADATA", name)

	rc, err := a.Open(name)
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, archivetest.MinimalMetadata, string(body))
}

func TestDetectByName(t *testing.T) {
	tests := []struct {
		name string
		want archive.Format
		ok   bool
	}{
		{"foo-1.0.tar.gz", archive.Format{Container: archive.ContainerTar, Compression: archive.CompressionGzip}, true},
		{"FOO-1.0.TGZ", archive.Format{Container: archive.ContainerTar, Compression: archive.CompressionGzip}, true},
		{"foo-1.0.tar.bz2", archive.Format{Container: archive.ContainerTar, Compression: archive.CompressionBzip2}, true},
		{"foo-1.0.tbz", archive.Format{Container: archive.ContainerTar, Compression: archive.CompressionBzip2}, true},
		{"foo-1.0.tar.xz", archive.Format{Container: archive.ContainerTar, Compression: archive.CompressionXZ}, true},
		{"foo-1.0.tar.lzma", archive.Format{Container: archive.ContainerTar, Compression: archive.CompressionLZMA}, true},
		{"foo-1.0.tar.zst", archive.Format{Container: archive.ContainerTar, Compression: archive.CompressionZstd}, true},
		{"foo-1.0.tar", archive.Format{Container: archive.ContainerTar}, true},
		{"foo-1.0.zip", archive.Format{Container: archive.ContainerZip}, true},
		{"foo-1.0-py3-none-any.whl", archive.Format{Container: archive.ContainerZip}, true},
		{"foo-1.0-py2.7.egg", archive.Format{Container: archive.ContainerZip}, true},
		{"foo-1.0.gz", archive.Format{}, false},
		{"foo-1.0.rpm", archive.Format{}, false},
		{"", archive.Format{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := archive.DetectByName(tt.name)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSniff(t *testing.T) {
	files := archivetest.SDist("foo-1.0", archivetest.MinimalMetadata)

	for _, c := range compressions {
		if c == archive.CompressionLZMA {
			continue
		}
		t.Run(c.String(), func(t *testing.T) {
			got, ok := archive.Sniff(archivetest.Tar(t, c, files))
			require.True(t, ok)
			assert.Equal(t, archive.Format{Container: archive.ContainerTar, Compression: c}, got)
		})
	}

	t.Run("zip", func(t *testing.T) {
		got, ok := archive.Sniff(archivetest.Zip(t, files))
		require.True(t, ok)
		assert.Equal(t, archive.ContainerZip, got.Container)
	})

	t.Run("garbage", func(t *testing.T) {
		_, ok := archive.Sniff([]byte("hello world"))
		assert.False(t, ok)
	})
}

func TestNewCorrupt(t *testing.T) {
	tests := []struct {
		name   string
		format archive.Format
		data   []byte
	}{
		{"gzip", archive.Format{Container: archive.ContainerTar, Compression: archive.CompressionGzip}, []byte("not gzip")},
		{"xz", archive.Format{Container: archive.ContainerTar, Compression: archive.CompressionXZ}, []byte("not xz at all")},
		{"zstd", archive.Format{Container: archive.ContainerTar, Compression: archive.CompressionZstd}, []byte("not zstd at all")},
		{"zip", archive.Format{Container: archive.ContainerZip}, []byte("not a zip")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := archive.New(tt.format, tt.data)
			require.Error(t, err)
			assert.ErrorIs(t, err, core.ErrIO)
		})
	}

	_, err := archive.New(archive.Format{}, nil)
	assert.ErrorIs(t, err, core.ErrUnknownDistributionFormat)
}

func TestTruncatedTar(t *testing.T) {
	data := archivetest.Tar(t, archive.CompressionGzip, archivetest.SDist("foo-1.0", archivetest.MinimalMetadata))
	_, err := archive.New(archive.Format{Container: archive.ContainerTar, Compression: archive.CompressionGzip}, data[:len(data)/2])
	assert.ErrorIs(t, err, core.ErrIO)
}

func TestReadMemberLimit(t *testing.T) {
	data := archivetest.Zip(t, archivetest.Egg(archivetest.MinimalMetadata))
	a, err := archive.New(archive.Format{Container: archive.ContainerZip}, data)
	require.NoError(t, err)
	defer a.Close()

	_, err = archive.ReadMember(a, "EGG-INFO/PKG-INFO", 8)
	assert.ErrorIs(t, err, core.ErrIO)

	body, err := archive.ReadMember(a, "EGG-INFO/PKG-INFO", int64(len(archivetest.MinimalMetadata)))
	require.NoError(t, err)
	assert.Equal(t, archivetest.MinimalMetadata, string(body))

	_, err = archive.ReadMember(a, "missing", 0)
	assert.ErrorIs(t, err, core.ErrIO)
}

func TestNormalize(t *testing.T) {
	tests := map[string]string{
		"foo/PKG-INFO":      "foo/PKG-INFO",
		"./foo/PKG-INFO":    "foo/PKG-INFO",
		"/foo/PKG-INFO":     "foo/PKG-INFO",
		"././/foo/PKG-INFO": "foo/PKG-INFO",
		`foo\EGG-INFO\x`:    "foo/EGG-INFO/x",
		"":                  "",
	}
	for in, want := range tests {
		assert.Equal(t, want, archive.Normalize(in), in)
	}
}
