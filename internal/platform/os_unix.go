//go:build unix

package platform

import (
	"os"

	"golang.org/x/sys/unix"
)

// Unix paths carry no volume prefix concept; any non-empty root passes
// HasVolumePrefix.
const needsVolumePrefix = false

// VolumeReady always reports true on Unix: there is no drive-readiness
// concept distinct from the directory simply existing, which the
// caller checks separately via MkdirAll.
func VolumeReady(root string) bool {
	_ = root
	return true
}

// SequentialScanHint advises the kernel that f will be read
// sequentially start-to-finish, mirroring internal/mmap's
// MADV_SEQUENTIAL usage for file-backed reads. The hint is advisory;
// errors are ignored.
func SequentialScanHint(f *os.File) {
	if f == nil {
		return
	}
	_ = unix.Fadvise(int(f.Fd()), 0, 0, unix.FADV_SEQUENTIAL)
}
