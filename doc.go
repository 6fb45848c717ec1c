// Package duocache implements a two-tier content cache for opaque
// binary payloads: a byte-budgeted in-memory LRU tier fronting a
// persistent disk tier, unified behind a single read-through/
// write-through façade.
//
// # Quick start
//
//	cache, err := duocache.NewCache(duocache.Config{
//		DiskCacheEnabled:            true,
//		DiskCacheRootFolder:         "/var/cache/myapp",
//		PixelMemoryCacheCapacityMB:  256,
//		StringMemoryCacheCapacityMB: 32,
//	}, duocache.WithLogger(duocache.NewTextLogger(slog.LevelInfo)))
//
//	cache.Put("session-42", "thumb-1", &duocache.Item{Data: raw})
//	item, ok, err := cache.Get(ctx, duocache.Pixels, "session-42", "thumb-1", nil)
//
// # Two kinds of payload
//
// Pixels items are opaque binary buffers, optionally compressed with a
// caller-supplied codec (see the codec package for an LZ4-based one).
// String items are UTF-8 text, always gzip-framed on disk by the disk
// tier itself.
//
// # Read pipeline
//
// A nil Pipeline makes Get a plain pass-through: whatever bytes are on
// disk come back as-is, and nothing is cached in memory. Passing a
// Pipeline lets Get decompress and post-process a disk hit before
// caching the result, re-homing the output into a buffer the memory
// tier can safely retain — see Pipeline and Cache.Get.
//
// # Disabling the disk tier
//
// The disk tier disables itself, once, at construction if it cannot be
// made usable (config says off, empty root, an unready or prefix-less
// volume, or a root directory that cannot be created). A disabled disk
// tier turns every disk operation into a documented no-op: Put and
// PutString return PutDisabled, Get and IsCachedToDisk report absent.
package duocache
