package archive

import (
	"fmt"
	"path"
	"strings"

	"github.com/git-pkgs/pkginfo/internal/core"
)

const (
	wheelPattern = "*.dist-info/METADATA"
	eggPath      = "EGG-INFO/PKG-INFO"
)

// Locate returns the stored name of the metadata member for kind.
//
// Names are compared after normalising separators; the comparison itself is
// case-sensitive.
func Locate(a Archive, kind core.Kind) (string, error) {
	stored := make(map[string]string)
	var names []string
	for _, name := range a.Names() {
		n := Normalize(name)
		if _, dup := stored[n]; dup || n == "" {
			continue
		}
		stored[n] = name
		names = append(names, n)
	}

	switch kind {
	case core.KindSDist:
		return locateSDist(names, stored)
	case core.KindWheel:
		return locateWheel(names, stored)
	case core.KindEgg:
		if name, ok := stored[eggPath]; ok {
			return name, nil
		}
		return "", fmt.Errorf("%w: %s", core.ErrMetadataNotFound, eggPath)
	}
	return "", core.ErrUnknownDistributionFormat
}

// locateSDist expects a single top-level directory holding PKG-INFO.
// Plain files at the archive root do not count as directories.
func locateSDist(names []string, stored map[string]string) (string, error) {
	var tops []string
	seen := make(map[string]bool)
	for _, n := range names {
		top, _, nested := strings.Cut(n, "/")
		if !nested || seen[top] {
			continue
		}
		seen[top] = true
		tops = append(tops, top)
	}

	switch len(tops) {
	case 0:
		return "", fmt.Errorf("%w: no top-level directory", core.ErrMetadataNotFound)
	case 1:
	default:
		return "", fmt.Errorf("%w: %d top-level directories: %s",
			core.ErrMetadataNotFound, len(tops), strings.Join(tops, ", "))
	}

	target := tops[0] + "/" + core.KindSDist.MetadataFile()
	if name, ok := stored[target]; ok {
		return name, nil
	}
	return "", fmt.Errorf("%w: %s", core.ErrMetadataNotFound, target)
}

// locateWheel expects exactly one root-level dist-info directory. The
// pattern cannot cross a separator, so vendored copies deeper in the tree
// are not candidates.
func locateWheel(names []string, stored map[string]string) (string, error) {
	var candidates []string
	for _, n := range names {
		if ok, _ := path.Match(wheelPattern, n); ok {
			candidates = append(candidates, n)
		}
	}

	switch len(candidates) {
	case 0:
		return "", fmt.Errorf("%w: %s", core.ErrMetadataNotFound, wheelPattern)
	case 1:
		return stored[candidates[0]], nil
	}
	return "", &core.AmbiguousMetadataError{Pattern: wheelPattern, Candidates: candidates}
}

// Normalize converts a member name to a slash-separated relative path.
func Normalize(name string) string {
	n := strings.ReplaceAll(name, `\`, "/")
	for {
		trimmed := strings.TrimLeft(strings.TrimPrefix(n, "./"), "/")
		if trimmed == n {
			return n
		}
		n = trimmed
	}
}
