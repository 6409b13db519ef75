package pkginfo_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/git-pkgs/pkginfo"
	"github.com/git-pkgs/pkginfo/internal/archive"
	"github.com/git-pkgs/pkginfo/internal/archive/archivetest"
)

func TestKnownMetadataVersions(t *testing.T) {
	versions := pkginfo.KnownMetadataVersions()

	expected := []string{"1.0", "1.1", "1.2", "2.1", "2.2", "2.3", "2.4"}
	if len(versions) != len(expected) {
		t.Fatalf("expected %d versions, got %d: %v", len(expected), len(versions), versions)
	}
	for i, v := range expected {
		if versions[i] != v {
			t.Errorf("expected version %q at position %d, got %q", v, i, versions[i])
		}
	}
}

func TestFromBytes(t *testing.T) {
	tests := []struct {
		name string
		data func(t *testing.T) []byte
		kind pkginfo.Kind
	}{
		{"foo-1.0.tar.gz", func(t *testing.T) []byte {
			return archivetest.Tar(t, archive.CompressionGzip, archivetest.SDist("foo-1.0", archivetest.MinimalMetadata))
		}, pkginfo.KindSDist},
		{"foo-1.0-py3-none-any.whl", func(t *testing.T) []byte {
			return archivetest.Zip(t, archivetest.Wheel("foo-1.0.dist-info", archivetest.MinimalMetadata))
		}, pkginfo.KindWheel},
		{"foo-1.0-py3.12.egg", func(t *testing.T) []byte {
			return archivetest.Zip(t, archivetest.Egg(archivetest.MinimalMetadata))
		}, pkginfo.KindEgg},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := pkginfo.FromBytes(tt.name, tt.data(t))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if d.Kind() != tt.kind {
				t.Errorf("expected kind %v, got %v", tt.kind, d.Kind())
			}
			m := d.Metadata()
			if m.Name != "foo" || m.Version != "1.0" {
				t.Errorf("unexpected metadata: %s %s", m.Name, m.Version)
			}
		})
	}
}

func TestFromReaderSniffs(t *testing.T) {
	data := archivetest.Zip(t, archivetest.Egg(archivetest.MinimalMetadata))
	d, err := pkginfo.FromReader("", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Kind() != pkginfo.KindEgg {
		t.Errorf("expected egg, got %v", d.Kind())
	}
}

func TestErrorsAreExported(t *testing.T) {
	_, err := pkginfo.FromBytes("foo.rpm", nil)
	if !errors.Is(err, pkginfo.ErrUnknownDistributionFormat) {
		t.Errorf("expected ErrUnknownDistributionFormat, got %v", err)
	}

	_, err = pkginfo.ParseMetadata([]byte("Name: foo\nVersion: 1.0\n"))
	var verr *pkginfo.VersionError
	if !errors.As(err, &verr) || !errors.Is(err, pkginfo.ErrInvalidMetadataVersion) {
		t.Errorf("expected VersionError, got %v", err)
	}
}

func TestParseMetadataAndURLs(t *testing.T) {
	m, err := pkginfo.ParseMetadata([]byte("Metadata-Version: 2.1\nName: Foo.Bar\nVersion: 2.0\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	urls := pkginfo.BuildURLs(pkginfo.NewURLs("", m))
	if urls["registry"] != "https://pypi.org/project/foo-bar/2.0/" {
		t.Errorf("unexpected registry url %q", urls["registry"])
	}
	if urls["purl"] != "pkg:pypi/foo-bar@2.0" {
		t.Errorf("unexpected purl %q", urls["purl"])
	}

	p, err := pkginfo.ParsePURL(urls["purl"])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name != "foo-bar" || p.Version != "2.0" {
		t.Errorf("unexpected purl components: %+v", p)
	}
	if pkginfo.NormalizeName("Foo.Bar") != "foo-bar" {
		t.Errorf("unexpected normalised name")
	}
}

func TestParsePURL(t *testing.T) {
	tests := []struct {
		input    string
		wantType string
		wantNS   string
		wantName string
		wantVer  string
		wantErr  bool
	}{
		{"pkg:pypi/requests", "pypi", "", "requests", "", false},
		{"pkg:pypi/requests@2.31.0", "pypi", "", "requests", "2.31.0", false},
		{"pkg:pypi/typing-extensions@4.0.0", "pypi", "", "typing-extensions", "4.0.0", false},
		{"pkg:pypi/build@0.4.0?file_name=build-0.4.0.tar.gz", "pypi", "", "build", "0.4.0", false},
		{"pkg:golang/github.com/gorilla/mux@v1.8.0", "golang", "github.com/gorilla", "mux", "v1.8.0", false},

		// Errors
		{"pypi/requests", "", "", "", "", true}, // missing pkg: prefix
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p, err := pkginfo.ParsePURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParsePURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}

			if p.Type != tt.wantType {
				t.Errorf("Type = %q, want %q", p.Type, tt.wantType)
			}
			if p.Namespace != tt.wantNS {
				t.Errorf("Namespace = %q, want %q", p.Namespace, tt.wantNS)
			}
			if p.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", p.Name, tt.wantName)
			}
			if p.Version != tt.wantVer {
				t.Errorf("Version = %q, want %q", p.Version, tt.wantVer)
			}
		})
	}
}
