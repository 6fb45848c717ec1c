// Package diskstore implements the persistent tier: content-addressed
// files under ${root}/${topLevelID}/${cacheID}${suffix}, a per-key
// reader/writer lock discipline, and an in-memory status repository
// that memoizes existence/compression checks.
//
// Grounded on an LRU-indexed on-disk cache, generalized from a single
// fixed-size disk cache to a simpler write-once, presence-memoized
// store (no disk-side eviction — capacity discipline lives entirely in
// the memory tier).
package diskstore

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/hupe1980/duocache/internal/entry"
	"github.com/hupe1980/duocache/internal/fs"
	"github.com/hupe1980/duocache/internal/lock"
	"github.com/hupe1980/duocache/internal/platform"
	"github.com/hupe1980/duocache/internal/scratch"
	"github.com/hupe1980/duocache/resource"
	"github.com/klauspost/compress/gzip"
)

// writeChunkSize bounds each Write call while streaming a payload to
// disk, so no single write call blocks for too long.
const writeChunkSize = 4096

// logger is the minimal surface Store needs from a logging sink. Both
// *slog.Logger and the module's Logger (which embeds *slog.Logger)
// satisfy it.
type logger interface {
	Debug(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Error(string, ...any) {}

// PutResponse mirrors the module-level duocache.PutResponse values
// without importing the root package (which imports diskstore).
type PutResponse int

const (
	PutSuccess PutResponse = iota
	PutDisabled
	PutInvalidData
	PutError
)

// Config configures a Store.
type Config struct {
	// Enabled is the master switch for the disk tier.
	Enabled bool
	// RootDir is the directory cache files are stored under.
	RootDir string
	// Logger receives Debug/Error diagnostics. Defaults to a no-op sink.
	Logger logger
	// FS abstracts filesystem access for testability; defaults to
	// fs.Default (the real OS).
	FS fs.FileSystem
	// Scratch is the pool of reusable read buffers for pixel payloads.
	// A Store created without one allocates its own.
	Scratch *scratch.Pool
	// IOLimiter, if set, throttles every disk read and write through
	// its byte-rate budget. Nil means unthrottled.
	IOLimiter *resource.Controller
}

// Store is the persistent cache tier.
type Store struct {
	root      string
	enabled   bool
	fs        fs.FileSystem
	logger    logger
	locks     *lock.Registry
	status    *statusRepository
	scratch   *scratch.Pool
	ioLimiter *resource.Controller
}

// New constructs a Store. It never returns an error: every condition
// that would otherwise be fatal (disk disabled by config, empty root, missing
// volume prefix, volume not ready, root not creatable) instead disables
// the instance for its lifetime, logged once at error level. All
// subsequent operations then become no-ops.
func New(cfg Config) *Store {
	s := &Store{
		root:      cfg.RootDir,
		fs:        cfg.FS,
		logger:    cfg.Logger,
		locks:     lock.NewRegistry(),
		status:    newStatusRepository(),
		scratch:   cfg.Scratch,
		ioLimiter: cfg.IOLimiter,
	}
	if s.fs == nil {
		s.fs = fs.Default
	}
	if s.logger == nil {
		s.logger = noopLogger{}
	}
	if s.scratch == nil {
		s.scratch = scratch.NewPool()
	}

	s.enabled = s.tryEnable(cfg)
	return s
}

func (s *Store) tryEnable(cfg Config) bool {
	if !cfg.Enabled {
		s.logger.Error("disk cache disabled by configuration")
		return false
	}
	if cfg.RootDir == "" {
		s.logger.Error("disk cache disabled: empty root folder")
		return false
	}
	if !platform.HasVolumePrefix(cfg.RootDir) {
		s.logger.Error("disk cache disabled: root folder has no volume prefix", "root", cfg.RootDir)
		return false
	}
	if !platform.VolumeReady(cfg.RootDir) {
		s.logger.Error("disk cache disabled: volume not ready", "root", cfg.RootDir)
		return false
	}
	if err := s.fs.MkdirAll(cfg.RootDir, 0o755); err != nil {
		s.logger.Error("disk cache disabled: cannot create root folder", "root", cfg.RootDir, "error", err)
		return false
	}
	return true
}

// Enabled reports whether the disk tier is active.
func (s *Store) Enabled() bool { return s.enabled }

// PutBytes persists a pixel item under (topLevelID, cacheID) with
// create-new semantics: it fails if the target file already exists. A
// write that fails after the file was created removes that partial
// file, so no later probe reports the key as cached.
func (s *Store) PutBytes(topLevelID, cacheID string, item *entry.Item) PutResponse {
	if cacheID == "" || item == nil || len(item.Data) == 0 {
		return PutInvalidData
	}
	if !s.enabled {
		return PutDisabled
	}

	unlock := s.locks.Lock(cacheID)
	defer unlock()

	dir := filepath.Join(s.root, topLevelID)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		s.logger.Debug("disk cache put: mkdir failed", "cache_id", cacheID, "error", err)
		return PutError
	}

	suffix := pixelSuffix(item.IsCompressed)
	target := path(s.root, topLevelID, cacheID, suffix)

	f, err := s.fs.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		s.logger.Debug("disk cache put: create failed", "cache_id", cacheID, "error", err)
		return PutError
	}
	defer f.Close()

	if err := writeChunked(s.limitedWriter(f), item.Data); err != nil {
		s.logger.Debug("disk cache put: write failed", "cache_id", cacheID, "error", err)
		_ = f.Close()
		_ = s.fs.Remove(target)
		return PutError
	}

	s.status.set(cacheID, status{present: true, compressed: item.IsCompressed, path: target})
	return PutSuccess
}

// PutString persists a string item under the ".s" suffix, gzip-framing
// the payload while it is written. Status is always recorded compressed.
func (s *Store) PutString(topLevelID, cacheID string, item *entry.Item) PutResponse {
	if cacheID == "" || item == nil || len(item.Data) == 0 {
		return PutInvalidData
	}
	if !s.enabled {
		return PutDisabled
	}

	unlock := s.locks.Lock(cacheID)
	defer unlock()

	dir := filepath.Join(s.root, topLevelID)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		s.logger.Debug("disk cache put: mkdir failed", "cache_id", cacheID, "error", err)
		return PutError
	}

	target := path(s.root, topLevelID, cacheID, suffixString)

	f, err := s.fs.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		s.logger.Debug("disk cache put: create failed", "cache_id", cacheID, "error", err)
		return PutError
	}
	defer f.Close()

	gw := gzip.NewWriter(s.limitedWriter(f))
	if err := writeChunked(gw, item.Data); err != nil {
		s.logger.Debug("disk cache put: gzip write failed", "cache_id", cacheID, "error", err)
		return PutError
	}
	if err := gw.Close(); err != nil {
		s.logger.Debug("disk cache put: gzip close failed", "cache_id", cacheID, "error", err)
		return PutError
	}

	s.status.set(cacheID, status{present: true, compressed: true, path: target})
	return PutSuccess
}

// Get reads the payload for (topLevelID, cacheID) back. It returns
// absent if the store is disabled, cacheID is empty, or status says the
// key is not present. Pixel reads land the raw bytes in a pooled
// scratch buffer, copy them into the returned Item's own buffer, then
// release the scratch buffer back to the pool for the next caller;
// string reads always allocate fresh and keep that allocation.
//
// Get does not undo any compression: the returned Item's Data is
// exactly the file's bytes, and IsCompressed reflects what was written.
func (s *Store) Get(kind entry.Kind, topLevelID, cacheID string) (*entry.Item, bool) {
	if !s.enabled || cacheID == "" {
		return nil, false
	}

	st, ok := s.status.get(cacheID)
	if !ok {
		if !s.IsCached(kind, topLevelID, cacheID) {
			return nil, false
		}
		st, ok = s.status.get(cacheID)
		if !ok {
			return nil, false
		}
	}
	if !st.present {
		return nil, false
	}

	unlockRead := s.locks.RLock(cacheID)
	defer unlockRead()

	f, err := s.fs.OpenFile(st.path, os.O_RDONLY, 0)
	if err != nil {
		s.status.invalidate(cacheID)
		s.logger.Debug("disk cache get: open failed", "cache_id", cacheID, "error", err)
		return nil, false
	}
	defer f.Close()

	if osFile, ok := any(f).(*os.File); ok {
		platform.SequentialScanHint(osFile)
	}

	info, err := f.Stat()
	if err != nil {
		s.status.invalidate(cacheID)
		s.logger.Debug("disk cache get: stat failed", "cache_id", cacheID, "error", err)
		return nil, false
	}
	size := info.Size()

	var data []byte
	if kind == entry.String {
		data = make([]byte, size)
		if _, err := io.ReadFull(s.limitedReader(f), data); err != nil {
			s.status.invalidate(cacheID)
			s.logger.Debug("disk cache get: read failed", "cache_id", cacheID, "error", err)
			return nil, false
		}
	} else {
		buf := s.scratch.Get(int(size))
		if _, err := io.ReadFull(s.limitedReader(f), buf.Bytes()); err != nil {
			buf.Release()
			s.status.invalidate(cacheID)
			s.logger.Debug("disk cache get: read failed", "cache_id", cacheID, "error", err)
			return nil, false
		}
		data = make([]byte, size)
		copy(data, buf.Bytes())
		buf.Release()
	}

	return &entry.Item{
		Data:         data,
		Size:         size,
		IsCompressed: st.compressed,
		Kind:         kind,
	}, true
}

// IsCached reports whether cacheID has a backing file for kind. The
// fast path answers from the memoized status repository; the slow path
// probes disk (compressed-then-uncompressed for pixels, the single
// string file for strings) and installs the outcome either way.
func (s *Store) IsCached(kind entry.Kind, topLevelID, cacheID string) bool {
	if !s.enabled || cacheID == "" {
		return false
	}

	if st, ok := s.status.get(cacheID); ok && st.present {
		return true
	}

	unlockRead := s.locks.RLock(cacheID)
	defer unlockRead()

	// Re-check under the per-key lock: another goroutine may have
	// installed a positive entry while we waited for the lock.
	if st, ok := s.status.get(cacheID); ok && st.present {
		return true
	}

	for _, candidate := range candidatePaths(s.root, topLevelID, cacheID, kind) {
		if info, err := s.fs.Stat(candidate); err == nil && !info.IsDir() {
			compressed := kind == entry.String || filepath.Ext(candidate) == suffixPixelsCompressed
			s.status.set(cacheID, status{present: true, compressed: compressed, path: candidate})
			return true
		}
	}

	s.status.set(cacheID, status{present: false})
	return false
}

// ClearIsCached invalidates the status entry for cacheID only. The
// backing file, if any, is left on disk — a subsequent PutBytes/PutString
// for the same key will then fail with PutError because of create-new
// semantics. This is a documented quirk, not a bug.
func (s *Store) ClearIsCached(cacheID string) {
	s.status.invalidate(cacheID)
}

// Enumerate lists file names directly under root/topLevelID. Errors are
// swallowed and logged; callers get an empty slice rather than an error.
func (s *Store) Enumerate(topLevelID string) []string {
	if !s.enabled {
		return nil
	}
	entries, err := s.fs.ReadDir(filepath.Join(s.root, topLevelID))
	if err != nil {
		s.logger.Debug("disk cache enumerate failed", "top_level_id", topLevelID, "error", err)
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names
}

// limitedWriter wraps w with the configured IOLimiter, if any.
func (s *Store) limitedWriter(w io.Writer) io.Writer {
	if s.ioLimiter == nil {
		return w
	}
	return resource.NewRateLimitedWriter(w, s.ioLimiter, context.Background())
}

// limitedReader wraps r with the configured IOLimiter, if any.
func (s *Store) limitedReader(r io.Reader) io.Reader {
	if s.ioLimiter == nil {
		return r
	}
	return resource.NewRateLimitedReader(r, s.ioLimiter, context.Background())
}

// writeChunked writes data to w in chunks of at most writeChunkSize
// bytes, so no single write call blocks for too long.
func writeChunked(w io.Writer, data []byte) error {
	for len(data) > 0 {
		n := len(data)
		if n > writeChunkSize {
			n = writeChunkSize
		}
		written, err := w.Write(data[:n])
		if err != nil {
			return err
		}
		if written == 0 {
			return errors.New("diskstore: zero-length write")
		}
		data = data[written:]
	}
	return nil
}
