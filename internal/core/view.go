package core

import (
	"strings"

	"github.com/git-pkgs/pkginfo/internal/schema"
)

// Scalar returns a pointer to the single-valued field named by attr, or nil
// when attr is not a single-valued attribute.
func (m *Metadata) Scalar(attr string) *string {
	switch attr {
	case "metadata_version":
		return &m.MetadataVersion
	case "name":
		return &m.Name
	case "version":
		return &m.Version
	case "summary":
		return &m.Summary
	case "description":
		return &m.Description
	case "description_content_type":
		return &m.DescriptionContentType
	case "keywords":
		return &m.Keywords
	case "home_page":
		return &m.HomePage
	case "download_url":
		return &m.DownloadURL
	case "author":
		return &m.Author
	case "author_email":
		return &m.AuthorEmail
	case "maintainer":
		return &m.Maintainer
	case "maintainer_email":
		return &m.MaintainerEmail
	case "license":
		return &m.License
	case "license_expression":
		return &m.LicenseExpression
	}
	return nil
}

// Sequence returns a pointer to the multi-valued field named by attr, or nil
// when attr is not a multi-valued attribute.
func (m *Metadata) Sequence(attr string) *[]string {
	switch attr {
	case "platforms":
		return &m.Platforms
	case "supported_platforms":
		return &m.SupportedPlatforms
	case "classifiers":
		return &m.Classifiers
	case "requires":
		return &m.Requires
	case "provides":
		return &m.Provides
	case "obsoletes":
		return &m.Obsoletes
	case "requires_dist":
		return &m.RequiresDist
	case "provides_dist":
		return &m.ProvidesDist
	case "obsoletes_dist":
		return &m.ObsoletesDist
	case "requires_external":
		return &m.RequiresExternal
	case "project_urls":
		return &m.ProjectURLs
	case "provides_extra":
		return &m.ProvidesExtra
	case "requires_python":
		return &m.RequiresPython
	case "dynamic":
		return &m.Dynamic
	case "license_files":
		return &m.LicenseFiles
	}
	return nil
}

// resolveAttr maps a header name or attribute name to an attribute name.
func resolveAttr(key string) (string, bool) {
	key = strings.TrimSpace(key)
	if f, ok := schema.Latest().Field(key); ok {
		return f.Attr, true
	}
	if f, ok := schema.FieldByAttr(key); ok {
		return f.Attr, true
	}
	return "", false
}

// Get returns the first value for key. Keys may be header names in any case
// ("Home-Page") or attribute names ("home_page"). Headers that are not part
// of the structured record are looked up in Raw.
func (m *Metadata) Get(key string) (string, bool) {
	values := m.GetAll(key)
	if len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// GetAll returns every value for key in document order.
func (m *Metadata) GetAll(key string) []string {
	if attr, ok := resolveAttr(key); ok {
		if p := m.Scalar(attr); p != nil {
			if *p == "" {
				return nil
			}
			return []string{*p}
		}
		if p := m.Sequence(attr); p != nil {
			out := make([]string, len(*p))
			copy(out, *p)
			return out
		}
	}

	var out []string
	for _, f := range m.Raw {
		if strings.EqualFold(f.Name, strings.TrimSpace(key)) {
			out = append(out, f.Value)
		}
	}
	return out
}

// Keys returns the attribute names present in AsMap, in schema order.
func (m *Metadata) Keys() []string {
	fields := schema.Latest().Fields()
	keys := make([]string, 0, len(fields))
	for _, f := range fields {
		if f.Multiple {
			keys = append(keys, f.Attr)
			continue
		}
		if p := m.Scalar(f.Attr); p != nil && *p != "" {
			keys = append(keys, f.Attr)
		}
	}
	return keys
}

// AsMap returns a generic view keyed by attribute name. Unset scalars are
// left out; multi-valued attributes are always present, possibly empty.
func (m *Metadata) AsMap() map[string]any {
	out := make(map[string]any)
	for _, f := range schema.Latest().Fields() {
		if f.Multiple {
			values := []string{}
			if p := m.Sequence(f.Attr); p != nil {
				values = append(values, *p...)
			}
			out[f.Attr] = values
			continue
		}
		if p := m.Scalar(f.Attr); p != nil && *p != "" {
			out[f.Attr] = *p
		}
	}
	return out
}
