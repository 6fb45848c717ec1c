// Package fs abstracts the filesystem calls diskstore.Store makes
// against its cache root, so tests can substitute fault injection for
// the real OS.
//
//   - [File]: the handle Store reads/writes/stats a single .p/.cp/.s
//     cache file through.
//   - [FileSystem]: the directory-level operations Store issues
//     (open, remove, rename, mkdir, stat, read-dir, truncate).
//
// # Implementations
//
//   - [LocalFS]: the production FileSystem, backed by the os package.
//   - [FaultyFS]: wraps another FileSystem and injects write/sync/close
//     errors, for exercising Store's error-handling paths without a
//     real broken disk.
//
// # Usage
//
// diskstore.New installs fs.Default (a [LocalFS]) whenever a Config
// leaves FS nil:
//
//	file, err := fs.Default.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
//
// Tests inject [FaultyFS] as diskstore.Config.FS to simulate failures:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.AddRule(".p", fs.Fault{FailAfterBytes: 4})
//	store := diskstore.New(diskstore.Config{FS: ffs, ...})
//
// # Design notes
//
// This package intentionally has no context.Context parameters.
// diskstore.Store's own IO throttling goes through resource.Controller
// at the io.Reader/io.Writer level (see limitedReader/limitedWriter in
// disk.go), not through FileSystem — the filesystem calls here are the
// fast, non-interruptible syscalls (open, mkdir, stat, rename), not the
// byte-at-a-time transfers that benefit from cancellation.
package fs
