package core

import (
	"sort"

	packageurl "github.com/package-url/packageurl-go"
)

// BuildPURL returns the pypi Package URL for a name and optional version.
// Qualifiers with empty values are dropped.
func BuildPURL(name, version string, qualifiers map[string]string) string {
	keys := make([]string, 0, len(qualifiers))
	for k, v := range qualifiers {
		if v != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var q packageurl.Qualifiers
	for _, k := range keys {
		q = append(q, packageurl.Qualifier{Key: k, Value: qualifiers[k]})
	}

	p := packageurl.NewPackageURL(packageurl.TypePyPi, "", NormalizeName(name), version, q, "")
	return p.ToString()
}

// PURL returns the Package URL of the metadata's name and version.
func (m *Metadata) PURL() string {
	if m.Name == "" {
		return ""
	}
	return BuildPURL(m.Name, m.Version, nil)
}
