// Package metadata parses PKG-INFO and METADATA documents.
package metadata

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/git-pkgs/pkginfo/internal/core"
	"github.com/git-pkgs/pkginfo/internal/header"
	"github.com/git-pkgs/pkginfo/internal/schema"
)

// unknownValue is what old setuptools releases wrote for fields the
// author left empty.
const unknownValue = "UNKNOWN"

// distutils folded long values with eight spaces and a pipe.
const (
	legacyFold = "        |"
	plainFold  = "        "
)

var headerLine = regexp.MustCompile(`^([^\s:]+):[ \t]*(.*)$`)

// Parse reads a metadata document into a Metadata record.
//
// Headers are matched against the schema for the declared Metadata-Version.
// Repeatable fields keep every occurrence in file order; for other fields the
// first occurrence wins. Headers the schema does not define are kept only in
// Raw.
func Parse(data []byte) (*core.Metadata, error) {
	fields, body, err := split(data)
	if err != nil {
		return nil, err
	}

	s, err := resolveSchema(fields)
	if err != nil {
		return nil, err
	}

	m := newMetadata()
	m.MetadataVersion = s.Declared()
	m.Raw = fields

	seen := make(map[string]bool)
	for _, f := range fields {
		def, ok := s.Field(f.Name)
		if !ok || def.Name == "Metadata-Version" {
			continue
		}
		if def.Multiple {
			seq := m.Sequence(def.Attr)
			*seq = append(*seq, f.Value)
			continue
		}
		if seen[def.Attr] {
			continue
		}
		seen[def.Attr] = true
		if f.Value == unknownValue {
			continue
		}
		*m.Scalar(def.Attr) = f.Value
	}

	if m.Description == "" && strings.TrimSpace(body) != "" {
		m.Description = body
	}

	if m.Name == "" {
		return nil, &core.MissingFieldError{Field: "Name"}
	}
	if m.Version == "" {
		return nil, &core.MissingFieldError{Field: "Version"}
	}
	return m, nil
}

// split separates the header block from the body. Header values are joined
// across continuation lines and decoded.
func split(data []byte) ([]core.Field, string, error) {
	text := string(normalizeNewlines(header.ToUTF8(data)))
	lines := strings.Split(text, "\n")

	var fields []core.Field
	i := 0
	for ; i < len(lines); i++ {
		line := lines[i]
		if line == "" {
			i++
			break
		}

		if line[0] == ' ' || line[0] == '\t' {
			if len(fields) == 0 {
				return nil, "", fmt.Errorf("%w: document starts with a continuation line", core.ErrMalformedMetadata)
			}
			last := &fields[len(fields)-1]
			if last.Value != "" {
				last.Value += "\n"
			}
			last.Value += unfold(line)
			continue
		}

		match := headerLine.FindStringSubmatch(line)
		if match == nil {
			break
		}
		fields = append(fields, core.Field{Name: match[1], Value: match[2]})
	}

	if len(fields) == 0 {
		return nil, "", fmt.Errorf("%w: no header lines found", core.ErrMalformedMetadata)
	}

	for j := range fields {
		fields[j].Value = header.Decode(strings.TrimRight(fields[j].Value, " \t\n"))
	}

	var body string
	if i < len(lines) {
		body = strings.TrimRight(strings.Join(lines[i:], "\n"), "\n")
	}
	return fields, body, nil
}

func resolveSchema(fields []core.Field) (*schema.Schema, error) {
	for _, f := range fields {
		if !strings.EqualFold(f.Name, "Metadata-Version") {
			continue
		}
		s, err := schema.Lookup(f.Value)
		if err != nil {
			return nil, &core.VersionError{Value: f.Value}
		}
		return s, nil
	}
	return nil, &core.VersionError{}
}

func unfold(line string) string {
	switch {
	case strings.HasPrefix(line, legacyFold):
		return line[len(legacyFold):]
	case strings.HasPrefix(line, plainFold):
		return line[len(plainFold):]
	default:
		return strings.TrimLeft(line, " \t")
	}
}

func normalizeNewlines(b []byte) []byte {
	b = bytes.ReplaceAll(b, []byte("\r\n"), []byte("\n"))
	return bytes.ReplaceAll(b, []byte("\r"), []byte("\n"))
}

func newMetadata() *core.Metadata {
	m := &core.Metadata{}
	for _, f := range schema.Latest().Fields() {
		if seq := m.Sequence(f.Attr); seq != nil {
			*seq = []string{}
		}
	}
	return m
}
