package duocache

import (
	"context"
	"fmt"

	"github.com/hupe1980/duocache/internal/diskstore"
	"github.com/hupe1980/duocache/internal/entry"
	"github.com/hupe1980/duocache/internal/memlru"
	"github.com/hupe1980/duocache/internal/scratch"
)

// Cache is the read-through/write-through façade over a persistent disk
// tier and two byte-budgeted in-memory LRU tiers, one per Kind.
//
// Grounded on blobstore.CachingStore's Get/Put fan-out between an LRU
// and a backing store, generalized here to two independently sized
// memory tiers and the opaque Pixels/String payload split.
type Cache struct {
	logger *Logger
	disk   *diskstore.Store
	pixels *memlru.Tier[*entry.Item]
	string *memlru.Tier[*entry.Item]
}

// NewCache builds a Cache from cfg and any Options. It returns a
// *ConfigError wrapping ErrConfigInvalid if a supplied capacity is
// negative.
func NewCache(cfg Config, opts ...Option) (*Cache, error) {
	if cfg.PixelMemoryCacheCapacityMB < 0 {
		return nil, newConfigError("PixelMemoryCacheCapacityMB", cfg.PixelMemoryCacheCapacityMB)
	}
	if cfg.StringMemoryCacheCapacityMB < 0 {
		return nil, newConfigError("StringMemoryCacheCapacityMB", cfg.StringMemoryCacheCapacityMB)
	}

	o := applyOptions(opts)

	c := &Cache{
		logger: o.logger,
		disk: diskstore.New(diskstore.Config{
			Enabled:   cfg.DiskCacheEnabled,
			RootDir:   cfg.DiskCacheRootFolder,
			Logger:    o.logger,
			Scratch:   scratch.NewPool(),
			IOLimiter: o.ioLimiter,
		}),
		pixels: memlru.New[*entry.Item](cfg.PixelMemoryCacheCapacityMB * 1024 * 1024),
		string: memlru.New[*entry.Item](cfg.StringMemoryCacheCapacityMB * 1024 * 1024),
	}

	c.pixels.SetDiscardingOldest(func(key string, item *entry.Item) {
		c.logger.LogEvict(key, Pixels, item.CacheSize())
	})
	c.string.SetDiscardingOldest(func(key string, item *entry.Item) {
		c.logger.LogEvict(key, String, item.CacheSize())
	})

	if !c.disk.Enabled() {
		c.logger.LogDiskDisabled("see prior log line for the specific reason", "root", cfg.DiskCacheRootFolder)
	}

	return c, nil
}

func (c *Cache) tier(kind Kind) *memlru.Tier[*entry.Item] {
	if kind == String {
		return c.string
	}
	return c.pixels
}

// Get implements the read-through path:
//
//  1. Memory hit → return, promoted to most-recently-used.
//  2. Disk miss → absent.
//  3. If pipeline is non-nil: decompress (ErrDecompressorMissing if the
//     item is compressed and pipeline.Decompressor is nil), post-process,
//     then re-home the result into a buffer the memory tier can own
//     outright — reusing an evictee's backing array via
//     PopOldestIfMatches when the sizes line up, or copying into a
//     fresh allocation otherwise. The resulting item's declared Size is
//     the buffer's length unless pipeline.ConversionBufferSize overrides
//     it.
//  4. Insert into the memory tier.
//  5. Return.
//
// A nil pipeline skips steps 3 and 4 entirely: the raw disk bytes are
// returned but never cached in memory, since Cache has no way to know
// whether they are safe to keep as-is.
func (c *Cache) Get(ctx context.Context, kind Kind, topLevelID, cacheID string, pipeline *Pipeline) (*Item, bool, error) {
	tier := c.tier(kind)

	if item, ok := tier.Get(cacheID); ok {
		c.logger.LogGet(ctx, cacheID, kind, true, false, nil)
		return item, true, nil
	}

	diskItem, ok := c.disk.Get(kind, topLevelID, cacheID)
	if !ok {
		c.logger.LogGet(ctx, cacheID, kind, false, false, nil)
		return nil, false, nil
	}

	if pipeline == nil {
		c.logger.LogGet(ctx, cacheID, kind, false, true, nil)
		return diskItem, true, nil
	}

	data := diskItem.Data
	if diskItem.IsCompressed {
		if pipeline.Decompressor == nil {
			err := fmt.Errorf("%w: cache_id=%s kind=%s", ErrDecompressorMissing, cacheID, kind)
			c.logger.LogGet(ctx, cacheID, kind, false, true, err)
			return nil, false, err
		}
		decompressed, err := pipeline.Decompressor(data)
		if err != nil {
			err = fmt.Errorf("duocache: decompress cache_id=%s: %w", cacheID, err)
			c.logger.LogGet(ctx, cacheID, kind, false, true, err)
			return nil, false, err
		}
		data = decompressed
	}

	if pipeline.PostProcessor != nil {
		processed, err := pipeline.PostProcessor(data)
		if err != nil {
			err = fmt.Errorf("duocache: post-process cache_id=%s: %w", cacheID, err)
			c.logger.LogGet(ctx, cacheID, kind, false, true, err)
			return nil, false, err
		}
		data = processed
	}

	transformed := &entry.Item{
		Data:         data,
		Size:         pipeline.declaredSize(int64(len(data))),
		IsCompressed: false,
		Kind:         kind,
	}
	result := c.rehome(tier, transformed)

	tier.Add(cacheID, result)
	c.logger.LogGet(ctx, cacheID, kind, false, true, nil)
	return result, true, nil
}

// rehome returns a deep copy of item that the memory tier can own
// outright — no reference to item.Data (scratch or transform-output
// storage) may survive into the tier. It first tries to recycle the
// backing array of the entry that Add would otherwise evict (same
// declared size, tier over capacity, and a backing array large enough
// for item.Data); failing that, it allocates fresh.
func (c *Cache) rehome(tier *memlru.Tier[*entry.Item], item *entry.Item) *entry.Item {
	if evicted, ok := tier.PopOldestIfMatches(item.Size); ok && cap(evicted.Data) >= len(item.Data) {
		return item.Clone(evicted.Data[:len(item.Data)])
	}
	return item.Clone(make([]byte, len(item.Data)))
}

// Put writes item through to disk under (topLevelID, cacheID). If the
// disk tier is disabled and item has a non-empty payload, Put falls back
// to caching it in the pixel memory tier only, still returning
// PutDisabled so the caller
// knows persistence did not happen. InvalidData and Error responses
// never fall back.
func (c *Cache) Put(topLevelID, cacheID string, item *Item) PutResponse {
	resp := PutResponse(c.disk.PutBytes(topLevelID, cacheID, item))
	c.logger.LogPut(context.Background(), cacheID, Pixels, resp)

	if resp == PutDisabled && item != nil && len(item.Data) > 0 {
		c.pixels.Add(cacheID, item)
	}
	return resp
}

// PutString writes a string item through to disk. There is no memory
// fallback: string payloads are always gzip-framed on disk, and the
// memory tier only ever holds decompressed, pipeline-processed items
// installed via Get.
func (c *Cache) PutString(topLevelID, cacheID string, item *Item) PutResponse {
	resp := PutResponse(c.disk.PutString(topLevelID, cacheID, item))
	c.logger.LogPut(context.Background(), cacheID, String, resp)
	return resp
}

// PutMemory inserts item directly into the pixel memory tier without
// touching disk.
func (c *Cache) PutMemory(cacheID string, item *Item) {
	c.pixels.Add(cacheID, item)
}

// GetMemory reads cacheID from the pixel memory tier only; it never
// escalates to disk on a miss.
func (c *Cache) GetMemory(cacheID string) (*Item, bool) {
	return c.pixels.Get(cacheID)
}

// IsCachedToDisk reports whether (topLevelID, cacheID) has a backing
// file for kind.
func (c *Cache) IsCachedToDisk(kind Kind, topLevelID, cacheID string) bool {
	return c.disk.IsCached(kind, topLevelID, cacheID)
}

// ClearCachedToDisk invalidates the disk status entry for cacheID (see
// diskstore.Store.ClearIsCached for the create-new interaction this
// leaves in place).
func (c *Cache) ClearCachedToDisk(cacheID string) {
	c.disk.ClearIsCached(cacheID)
}

// ClearFromMemory removes cacheID from the memory tier for kind.
func (c *Cache) ClearFromMemory(kind Kind, cacheID string) bool {
	return c.tier(kind).Remove(cacheID)
}

// Stats reports the current entry counts and byte totals of the two
// memory tiers.
type Stats struct {
	PixelEntries int
	PixelBytes   int64
	StringEntries int
	StringBytes  int64
}

// Stats returns a point-in-time snapshot of the memory tiers.
func (c *Cache) Stats() Stats {
	return Stats{
		PixelEntries:  c.pixels.Len(),
		PixelBytes:    c.pixels.CurrentBytes(),
		StringEntries: c.string.Len(),
		StringBytes:   c.string.CurrentBytes(),
	}
}
