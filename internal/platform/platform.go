// Package platform implements the disk tier's OS-dependent enablement
// checks: whether a root path names a real, ready volume, and an
// advisory "we're about to read this file sequentially" hint.
//
// The split into a shared file plus per-OS build-tagged files mirrors
// internal/mmap's os_unix.go / os_windows.go pattern.
package platform

import "path/filepath"

// HasVolumePrefix reports whether root includes a volume prefix on
// platforms that require one (e.g. "C:\" on Windows). On platforms with
// no concept of a volume prefix, every non-empty path passes.
func HasVolumePrefix(root string) bool {
	if root == "" {
		return false
	}
	if needsVolumePrefix {
		return filepath.VolumeName(root) != ""
	}
	return true
}
