package core

import (
	"net/mail"
	"regexp"
	"strings"

	"github.com/github/go-spdx/v2/spdxexp"
)

var pep508NameRegex = regexp.MustCompile(`^([A-Za-z0-9][-A-Za-z0-9._]*[A-Za-z0-9]|[A-Za-z0-9])(\s*\[.*?\])?`)

// Package summarises the metadata in registry-neutral form.
func (m *Metadata) Package() *Package {
	return &Package{
		Name:        m.Name,
		Version:     m.Version,
		Description: m.Summary,
		Homepage:    m.Homepage(),
		Repository:  m.Repository(),
		Licenses:    m.Licenses(),
		Keywords:    m.KeywordList(),
		Metadata: map[string]any{
			"classifiers":      m.Classifiers,
			"documentation":    m.projectURL("Documentation"),
			"normalized_name":  NormalizeName(m.Name),
			"requires_python":  strings.Join(m.RequiresPython, ", "),
			"metadata_version": m.MetadataVersion,
		},
	}
}

// ProjectURLMap splits Project-URL entries ("label, url") into a map.
// Later entries with the same label replace earlier ones.
func (m *Metadata) ProjectURLMap() map[string]string {
	out := make(map[string]string, len(m.ProjectURLs))
	for _, entry := range m.ProjectURLs {
		label, url, ok := strings.Cut(entry, ",")
		if !ok {
			continue
		}
		label = strings.TrimSpace(label)
		url = strings.TrimSpace(url)
		if label != "" && url != "" {
			out[label] = url
		}
	}
	return out
}

// projectURL returns the first Project-URL whose label matches, ignoring case.
func (m *Metadata) projectURL(label string) string {
	for _, entry := range m.ProjectURLs {
		key, url, ok := strings.Cut(entry, ",")
		if !ok {
			continue
		}
		url = strings.TrimSpace(url)
		if strings.EqualFold(strings.TrimSpace(key), label) && url != "" {
			return url
		}
	}
	return ""
}

// Repository returns the most likely source repository URL.
func (m *Metadata) Repository() string {
	projectURLs := m.ProjectURLMap()
	priorityKeys := []string{"Repository", "Source", "Source Code", "Code"}
	for _, key := range priorityKeys {
		if url, ok := projectURLs[key]; ok && url != "" {
			if isRepoURL(url) {
				return url
			}
		}
	}

	// walk Project-URL in file order so the result is deterministic
	for _, entry := range m.ProjectURLs {
		_, url, _ := strings.Cut(entry, ",")
		url = strings.TrimSpace(url)
		if isRepoURL(url) && !strings.Contains(url, "github.com/sponsors") {
			return url
		}
	}

	if isRepoURL(m.HomePage) {
		return m.HomePage
	}

	return ""
}

// Homepage returns Home-page, falling back to a "Homepage" project URL.
func (m *Metadata) Homepage() string {
	if m.HomePage != "" {
		return m.HomePage
	}
	projectURLs := m.ProjectURLMap()
	if url, ok := projectURLs["Homepage"]; ok {
		return url
	}
	if url, ok := projectURLs["Home"]; ok {
		return url
	}
	return ""
}

func isRepoURL(url string) bool {
	return strings.Contains(url, "github.com") ||
		strings.Contains(url, "gitlab.com") ||
		strings.Contains(url, "bitbucket.org") ||
		strings.Contains(url, "codeberg.org")
}

// Licenses returns License-Expression, License, or the last component of a
// "License ::" classifier, in that order of preference.
func (m *Metadata) Licenses() string {
	if m.LicenseExpression != "" {
		return m.LicenseExpression
	}
	if m.License != "" {
		return NormalizeLicense(m.License)
	}

	for _, classifier := range m.Classifiers {
		if strings.HasPrefix(classifier, "License :: ") {
			parts := strings.Split(classifier, " :: ")
			if len(parts) > 0 {
				return parts[len(parts)-1]
			}
		}
	}

	return ""
}

// NormalizeLicense rewrites free-form license text to an SPDX identifier
// when it differs from one only by spacing ("Apache 2.0" → "Apache-2.0").
// Anything else is returned trimmed but otherwise unchanged.
func NormalizeLicense(license string) string {
	license = strings.TrimSpace(license)
	if license == "" || strings.Contains(license, "\n") {
		return license
	}
	if ok, _ := spdxexp.ValidateLicenses([]string{license}); ok {
		return license
	}

	candidate := strings.Join(strings.Fields(license), "-")
	if ok, _ := spdxexp.ValidateLicenses([]string{candidate}); ok {
		return candidate
	}
	return license
}

// ValidLicenseExpression reports whether every license referenced by expr
// is a known SPDX identifier.
func ValidLicenseExpression(expr string) bool {
	licenses, err := spdxexp.ExtractLicenses(expr)
	if err != nil || len(licenses) == 0 {
		return false
	}
	ok, _ := spdxexp.ValidateLicenses(licenses)
	return ok
}

// KeywordList splits Keywords on commas, or on whitespace when there are none.
func (m *Metadata) KeywordList() []string {
	return parseKeywords(m.Keywords)
}

func parseKeywords(keywords string) []string {
	if keywords == "" {
		return nil
	}
	if strings.Contains(keywords, ",") {
		parts := strings.Split(keywords, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				result = append(result, p)
			}
		}
		return result
	}
	return strings.Fields(keywords)
}

// NormalizeName applies PEP 503 normalisation.
func NormalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, "_", "-")
	name = strings.ReplaceAll(name, ".", "-")
	for strings.Contains(name, "--") {
		name = strings.ReplaceAll(name, "--", "-")
	}
	return name
}

// Dependencies parses Requires-Dist, or Requires for documents older than
// metadata 1.2.
func (m *Metadata) Dependencies() []Dependency {
	reqs := m.RequiresDist
	if len(reqs) == 0 {
		reqs = m.Requires
	}
	if len(reqs) == 0 {
		return nil
	}

	deps := make([]Dependency, 0, len(reqs))
	for _, req := range reqs {
		depName, requirements, envMarker := parsePEP508(req)

		scope := Runtime
		optional := false
		if envMarker != "" {
			scope = Scope(envMarker)
			optional = true
		}

		deps = append(deps, Dependency{
			Name:         depName,
			Requirements: requirements,
			Scope:        scope,
			Optional:     optional,
		})
	}

	return deps
}

func parsePEP508(dep string) (name, requirements, envMarker string) {
	// Split on ; first to get environment markers
	parts := strings.SplitN(dep, ";", 2)
	nameAndVersion := strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		envMarker = strings.TrimSpace(parts[1])
	}

	match := pep508NameRegex.FindStringSubmatch(nameAndVersion)
	if match != nil {
		name = strings.TrimSpace(match[1])
		requirements = strings.TrimSpace(nameAndVersion[len(match[0]):])
		// legacy Requires uses "name (>=1.0)"
		requirements = strings.Trim(requirements, "()")
		requirements = strings.TrimSpace(requirements)
	} else {
		name = nameAndVersion
	}

	if idx := strings.Index(name, "["); idx != -1 {
		name = name[:idx]
	}

	if requirements == "" {
		requirements = "*"
	}

	return
}

// Maintainers lists the author and maintainer entries. Email fields may
// hold several RFC 822 addresses; each becomes its own entry.
func (m *Metadata) Maintainers() []Maintainer {
	var out []Maintainer
	out = append(out, people(m.Author, m.AuthorEmail, "author")...)
	out = append(out, people(m.Maintainer, m.MaintainerEmail, "maintainer")...)
	return out
}

func people(name, email, role string) []Maintainer {
	if email == "" {
		if name == "" {
			return nil
		}
		return []Maintainer{{Name: name, Role: role}}
	}

	addrs, err := mail.ParseAddressList(email)
	if err != nil {
		return []Maintainer{{Name: name, Email: strings.TrimSpace(email), Role: role}}
	}

	out := make([]Maintainer, 0, len(addrs))
	for _, addr := range addrs {
		n := addr.Name
		if n == "" && len(addrs) == 1 {
			n = name
		}
		out = append(out, Maintainer{Name: n, Email: addr.Address, Role: role})
	}
	return out
}
