package core

import (
	"fmt"
	"strings"
)

// DefaultIndexURL is the index used for registry links.
const DefaultIndexURL = "https://pypi.org"

// URLs builds links for a parsed distribution. Nothing is fetched.
type URLs struct {
	baseURL string
	meta    *Metadata
}

// NewURLs returns a builder for m. An empty baseURL means DefaultIndexURL.
func NewURLs(baseURL string, m *Metadata) *URLs {
	if baseURL == "" {
		baseURL = DefaultIndexURL
	}
	return &URLs{baseURL: strings.TrimSuffix(baseURL, "/"), meta: m}
}

func (u *URLs) Registry() string {
	name := NormalizeName(u.meta.Name)
	if name == "" {
		return ""
	}
	if u.meta.Version != "" {
		return fmt.Sprintf("%s/project/%s/%s/", u.baseURL, name, u.meta.Version)
	}
	return fmt.Sprintf("%s/project/%s/", u.baseURL, name)
}

// Download returns the declared Download-URL.
func (u *URLs) Download() string {
	return u.meta.DownloadURL
}

// Documentation prefers a "Documentation" project URL and otherwise guesses
// the Read the Docs location.
func (u *URLs) Documentation() string {
	if url := u.meta.projectURL("Documentation"); url != "" {
		return url
	}
	name := NormalizeName(u.meta.Name)
	if name == "" {
		return ""
	}
	if u.meta.Version != "" {
		return fmt.Sprintf("https://%s.readthedocs.io/en/%s/", name, u.meta.Version)
	}
	return fmt.Sprintf("https://%s.readthedocs.io/", name)
}

func (u *URLs) PURL() string {
	return u.meta.PURL()
}

// BuildURLs returns a map of all non-empty URLs for a package.
// Keys are "registry", "download", "docs", and "purl".
func BuildURLs(urls *URLs) map[string]string {
	result := make(map[string]string)
	if v := urls.Registry(); v != "" {
		result["registry"] = v
	}
	if v := urls.Download(); v != "" {
		result["download"] = v
	}
	if v := urls.Documentation(); v != "" {
		result["docs"] = v
	}
	if v := urls.PURL(); v != "" {
		result["purl"] = v
	}
	return result
}
