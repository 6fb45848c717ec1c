package duocache

import "github.com/hupe1980/duocache/internal/entry"

// Kind selects the on-disk suffix, the memory tier, and the read
// allocation strategy for an Item. It is an alias of internal/entry's
// Kind so the memory tier, disk tier, and unifier packages can all talk
// about the same type without importing each other.
type Kind = entry.Kind

const (
	// Pixels are raw image pixel buffers. Backed on disk by ".p"
	// (uncompressed) or ".cp" (opaque codec-compressed) files, and read
	// through a pooled, monotonically-growing scratch buffer.
	Pixels = entry.Pixels
	// String items hold UTF-8 text, always gzip-framed on disk (".s"),
	// and always allocate a fresh buffer on read.
	String = entry.String
)

// Item is a single cache entry: an owned byte payload plus metadata.
//
// Size may differ from len(Data) after a Pipeline transform has run —
// it reflects the declared logical size of the entry, not necessarily
// the buffer length.
type Item = entry.Item
