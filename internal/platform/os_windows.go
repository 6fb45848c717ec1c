//go:build windows

package platform

import (
	"os"
	"path/filepath"

	"golang.org/x/sys/windows"
)

const needsVolumePrefix = true

// VolumeReady reports whether the drive backing root is mounted and
// responsive (DRIVE_NO_ROOT_DIR / DRIVE_UNKNOWN both count as not
// ready). Root must already have a volume prefix; see HasVolumePrefix.
func VolumeReady(root string) bool {
	vol := filepath.VolumeName(root)
	if vol == "" {
		return false
	}

	p, err := windows.UTF16PtrFromString(vol + `\`)
	if err != nil {
		return false
	}

	switch windows.GetDriveType(p) {
	case windows.DRIVE_NO_ROOT_DIR, windows.DRIVE_UNKNOWN:
		return false
	default:
		return true
	}
}

// SequentialScanHint advises the OS that f will be read sequentially
// start-to-finish. Windows has no direct posix_fadvise equivalent
// reachable without CreateFile flags set at open time, which the
// standard os package does not expose; this is a no-op here, matching
// internal/mmap's osAdvise no-op on Windows.
func SequentialScanHint(f *os.File) {
	_ = f
}
