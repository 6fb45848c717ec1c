package fs

import (
	"fmt"
	"os"
	"strings"
	"sync"
)

// Fault describes one failure mode to inject into writes/syncs/closes
// against a matching file.
type Fault struct {
	// FailAfterBytes fails a Write once this many bytes have been
	// written to the file it applies to. -1 disables the check.
	FailAfterBytes int64
	FailOnRead     bool
	FailOnSync     bool
	FailOnClose    bool
	Err            error
}

// FaultyFS wraps a FileSystem and injects Faults into it, so
// diskstore.Store's error paths (PutBytes/PutString write failures,
// Get read failures) can be exercised without needing a real broken
// disk.
type FaultyFS struct {
	FS      FileSystem
	mu      sync.Mutex
	rules   map[string]Fault // substring of the file name -> Fault
	Default Fault            // applied when no rule matches

	Err         error // fallback error when a matched Fault leaves Err nil
	written     int64
	globalLimit int64
}

// NewFaultyFS wraps target (or Default if nil) with no rules installed,
// so it behaves exactly like target until AddRule or SetLimit is called.
func NewFaultyFS(target FileSystem) *FaultyFS {
	if target == nil {
		target = Default
	}
	return &FaultyFS{
		FS:    target,
		rules: make(map[string]Fault),
		Default: Fault{
			FailAfterBytes: -1,
		},
		Err:         fmt.Errorf("duocache: injected fault"),
		globalLimit: -1,
	}
}

// GetWritten returns the total bytes written across every file opened
// through this FaultyFS.
func (f *FaultyFS) GetWritten() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.written
}

// SetLimit fails any write that would push the FaultyFS-wide byte total
// past limit, regardless of which file it targets. -1 disables it.
func (f *FaultyFS) SetLimit(limit int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.globalLimit = limit
}

// AddRule installs a Fault for files whose name contains pattern. Rules
// are kept in a map, so when more than one pattern matches a file, which
// of them applies is not defined.
func (f *FaultyFS) AddRule(pattern string, fault Fault) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rules[pattern] = fault
}

func (f *FaultyFS) OpenFile(name string, flag int, perm os.FileMode) (File, error) {
	file, err := f.FS.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	fault := f.Default
	for pattern, rule := range f.rules {
		if strings.Contains(name, pattern) {
			fault = rule
		}
	}
	if fault.Err == nil {
		fault.Err = f.Err
	}
	f.mu.Unlock()

	return &faultyFile{File: file, fs: f, fault: fault}, nil
}

func (f *FaultyFS) Remove(name string) error {
	return f.FS.Remove(name)
}

func (f *FaultyFS) Rename(oldpath, newpath string) error {
	return f.FS.Rename(oldpath, newpath)
}

func (f *FaultyFS) Stat(name string) (os.FileInfo, error) {
	return f.FS.Stat(name)
}

func (f *FaultyFS) MkdirAll(path string, perm os.FileMode) error {
	return f.FS.MkdirAll(path, perm)
}

func (f *FaultyFS) ReadDir(name string) ([]os.DirEntry, error) {
	return f.FS.ReadDir(name)
}

func (f *FaultyFS) Truncate(name string, size int64) error {
	return f.FS.Truncate(name, size)
}

type faultyFile struct {
	File
	fs      *FaultyFS
	fault   Fault
	written int64
}

func (ff *faultyFile) Write(p []byte) (n int, err error) {
	// Per-file limit is checked before the global counter is touched,
	// so a rejected write never counts against the FaultyFS-wide total.
	if ff.fault.FailAfterBytes >= 0 {
		if ff.written+int64(len(p)) > ff.fault.FailAfterBytes {
			return 0, firstNonNil(ff.fault.Err, ff.fs.Err, fmt.Errorf("duocache: injected fault"))
		}
	}

	ff.fs.mu.Lock()
	globalExceeded := ff.fs.globalLimit >= 0 && ff.fs.written+int64(len(p)) > ff.fs.globalLimit
	if !globalExceeded {
		ff.fs.written += int64(len(p))
	}
	ff.fs.mu.Unlock()

	if globalExceeded {
		return 0, firstNonNil(ff.fs.Err, fmt.Errorf("duocache: injected fault"))
	}

	n, err = ff.File.Write(p)
	if n > 0 {
		ff.written += int64(n)
	}
	return n, err
}

func (ff *faultyFile) Read(p []byte) (int, error) {
	if ff.fault.FailOnRead {
		return 0, firstNonNil(ff.fault.Err, fmt.Errorf("duocache: injected read fault"))
	}
	return ff.File.Read(p)
}

func (ff *faultyFile) Sync() error {
	if ff.fault.FailOnSync {
		return firstNonNil(ff.fault.Err, fmt.Errorf("duocache: injected sync fault"))
	}
	return ff.File.Sync()
}

func (ff *faultyFile) Close() error {
	if ff.fault.FailOnClose {
		ff.File.Close()
		return firstNonNil(ff.fault.Err, fmt.Errorf("duocache: injected close fault"))
	}
	return ff.File.Close()
}

func firstNonNil(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
