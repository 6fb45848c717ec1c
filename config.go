package duocache

// Config is the code-based configuration surface for NewCache. Every
// field has a documented zero-value behavior so a caller can populate
// only what it cares about.
type Config struct {
	// DiskCacheEnabled is the master switch for the persistent tier. If
	// false, Cache.Put and Cache.PutString return PutDisabled for any
	// non-empty key and payload (PutInvalidData otherwise), with the
	// Pixels memory fallback described on Cache.Put, and
	// Cache.Get never reaches disk.
	DiskCacheEnabled bool

	// DiskCacheRootFolder is the directory cache files are written
	// under. Required when DiskCacheEnabled is true; an empty value
	// disables the disk tier even if DiskCacheEnabled is true.
	DiskCacheRootFolder string

	// PixelMemoryCacheCapacityMB bounds the Pixels memory tier in
	// megabytes. 0 means unbounded (Add never evicts).
	PixelMemoryCacheCapacityMB int64

	// StringMemoryCacheCapacityMB bounds the String memory tier in
	// megabytes. 0 means unbounded.
	StringMemoryCacheCapacityMB int64
}
