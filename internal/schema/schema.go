// Package schema describes which metadata fields each Metadata-Version
// defines and which of them may repeat.
//
// Versions only ever add fields, so a schema for a newer version is a
// superset of every older one. The tables are built once at init and are
// read-only afterwards.
package schema

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Version is a Metadata-Version value.
type Version string

const (
	V1_0 Version = "1.0" // PEP 241
	V1_1 Version = "1.1" // PEP 314
	V1_2 Version = "1.2" // PEP 345
	V2_1 Version = "2.1" // PEP 566
	V2_2 Version = "2.2" // PEP 643
	V2_3 Version = "2.3" // PEP 685
	V2_4 Version = "2.4" // PEP 639
)

// ErrMalformedVersion is returned by Lookup for values that are not a
// dotted sequence of integers.
var ErrMalformedVersion = errors.New("malformed metadata version")

// Field describes one metadata header.
type Field struct {
	// Name is the canonical header spelling.
	Name string
	// Attr is the snake_case attribute name used in mapping views.
	Attr string
	// Multiple reports whether every occurrence is kept.
	Multiple bool
	// Since is the first version that defines the field.
	Since Version
}

// Schema is the set of fields defined by one metadata version.
type Schema struct {
	version  Version
	declared string
	fields   []Field
	byKey    map[string]Field
}

var definitions = []Field{
	{Name: "Metadata-Version", Attr: "metadata_version", Since: V1_0},
	{Name: "Name", Attr: "name", Since: V1_0},
	{Name: "Version", Attr: "version", Since: V1_0},
	{Name: "Platform", Attr: "platforms", Multiple: true, Since: V1_0},
	{Name: "Summary", Attr: "summary", Since: V1_0},
	{Name: "Description", Attr: "description", Since: V1_0},
	{Name: "Keywords", Attr: "keywords", Since: V1_0},
	{Name: "Home-page", Attr: "home_page", Since: V1_0},
	{Name: "Author", Attr: "author", Since: V1_0},
	{Name: "Author-email", Attr: "author_email", Since: V1_0},
	{Name: "License", Attr: "license", Since: V1_0},

	{Name: "Supported-Platform", Attr: "supported_platforms", Multiple: true, Since: V1_1},
	{Name: "Download-URL", Attr: "download_url", Since: V1_1},
	{Name: "Classifier", Attr: "classifiers", Multiple: true, Since: V1_1},
	{Name: "Requires", Attr: "requires", Multiple: true, Since: V1_1},
	{Name: "Provides", Attr: "provides", Multiple: true, Since: V1_1},
	{Name: "Obsoletes", Attr: "obsoletes", Multiple: true, Since: V1_1},

	{Name: "Maintainer", Attr: "maintainer", Since: V1_2},
	{Name: "Maintainer-email", Attr: "maintainer_email", Since: V1_2},
	{Name: "Requires-Python", Attr: "requires_python", Multiple: true, Since: V1_2},
	{Name: "Requires-External", Attr: "requires_external", Multiple: true, Since: V1_2},
	{Name: "Project-URL", Attr: "project_urls", Multiple: true, Since: V1_2},
	{Name: "Requires-Dist", Attr: "requires_dist", Multiple: true, Since: V1_2},
	{Name: "Provides-Dist", Attr: "provides_dist", Multiple: true, Since: V1_2},
	{Name: "Obsoletes-Dist", Attr: "obsoletes_dist", Multiple: true, Since: V1_2},

	{Name: "Description-Content-Type", Attr: "description_content_type", Since: V2_1},
	{Name: "Provides-Extra", Attr: "provides_extra", Multiple: true, Since: V2_1},

	{Name: "Dynamic", Attr: "dynamic", Multiple: true, Since: V2_2},

	{Name: "License-Expression", Attr: "license_expression", Since: V2_4},
	{Name: "License-File", Attr: "license_files", Multiple: true, Since: V2_4},
}

var (
	known  = []Version{V1_0, V1_1, V1_2, V2_1, V2_2, V2_3, V2_4}
	tables = buildTables()
)

func buildTables() map[Version]*Schema {
	out := make(map[Version]*Schema, len(known))
	for _, v := range known {
		s := &Schema{version: v, declared: string(v), byKey: make(map[string]Field)}
		for _, f := range definitions {
			if compare(f.Since, v) > 0 {
				continue
			}
			s.fields = append(s.fields, f)
			s.byKey[strings.ToLower(f.Name)] = f
		}
		out[v] = s
	}
	return out
}

// Known returns the supported versions, oldest first.
func Known() []Version {
	out := make([]Version, len(known))
	copy(out, known)
	return out
}

// Latest returns the schema of the newest known version.
func Latest() *Schema {
	return tables[known[len(known)-1]]
}

// Lookup resolves a raw Metadata-Version value. Versions equal to a known one
// after zero padding ("1.0.0") use its table; other well-formed versions use
// the newest schema.
func Lookup(raw string) (*Schema, error) {
	declared := strings.TrimSpace(raw)
	if !wellFormed(declared) {
		return nil, fmt.Errorf("%w: %q", ErrMalformedVersion, raw)
	}

	s, ok := tables[Version(declared)]
	if !ok {
		s = Latest()
		for _, v := range known {
			if compare(v, Version(declared)) == 0 {
				s = tables[v]
				break
			}
		}
	}
	if s.declared == declared {
		return s, nil
	}

	cp := *s
	cp.declared = declared
	return &cp, nil
}

// Version returns the version whose field table is in use.
func (s *Schema) Version() Version {
	return s.version
}

// Declared returns the version string as written in the document.
func (s *Schema) Declared() string {
	return s.declared
}

// Field looks up a header name case-insensitively.
func (s *Schema) Field(key string) (Field, bool) {
	f, ok := s.byKey[strings.ToLower(strings.TrimSpace(key))]
	return f, ok
}

// Fields returns the defined fields in declaration order.
func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// IsMultiple reports whether key is a repeatable field in this schema.
func (s *Schema) IsMultiple(key string) bool {
	f, ok := s.Field(key)
	return ok && f.Multiple
}

// FieldByAttr finds a field of the newest schema by its attribute name.
func FieldByAttr(attr string) (Field, bool) {
	attr = strings.ToLower(strings.TrimSpace(attr))
	for _, f := range definitions {
		if f.Attr == attr {
			return f, true
		}
	}
	return Field{}, false
}

func wellFormed(v string) bool {
	if v == "" {
		return false
	}
	for _, part := range strings.Split(v, ".") {
		if part == "" {
			return false
		}
		for _, r := range part {
			if r < '0' || r > '9' {
				return false
			}
		}
	}
	return true
}

// compare orders two well-formed versions numerically.
func compare(a, b Version) int {
	as := strings.Split(string(a), ".")
	bs := strings.Split(string(b), ".")
	for i := 0; i < len(as) || i < len(bs); i++ {
		var x, y int
		if i < len(as) {
			x, _ = strconv.Atoi(as[i])
		}
		if i < len(bs) {
			y, _ = strconv.Atoi(bs[i])
		}
		if x != y {
			if x < y {
				return -1
			}
			return 1
		}
	}
	return 0
}
