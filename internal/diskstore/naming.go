package diskstore

import (
	"path/filepath"

	"github.com/hupe1980/duocache/internal/entry"
)

const (
	suffixPixelsPlain      = ".p"
	suffixPixelsCompressed = ".cp"
	suffixString           = ".s"
)

// pixelSuffix returns the suffix for a pixel payload given its
// compression flag.
func pixelSuffix(compressed bool) string {
	if compressed {
		return suffixPixelsCompressed
	}
	return suffixPixelsPlain
}

// path builds ${root}/${topLevelID}/${cacheID}${suffix}.
func path(root, topLevelID, cacheID, suffix string) string {
	return filepath.Join(root, topLevelID, cacheID+suffix)
}

// candidatePaths returns the file paths that could back cacheID for the
// given kind, in probe order (compressed pixel variant first).
func candidatePaths(root, topLevelID, cacheID string, kind entry.Kind) []string {
	switch kind {
	case entry.String:
		return []string{path(root, topLevelID, cacheID, suffixString)}
	default:
		return []string{
			path(root, topLevelID, cacheID, suffixPixelsCompressed),
			path(root, topLevelID, cacheID, suffixPixelsPlain),
		}
	}
}
