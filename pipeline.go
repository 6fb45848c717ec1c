package duocache

// UnsetBufferSize is the sentinel value for Pipeline.ConversionBufferSize
// meaning "do not override the declared size".
const UnsetBufferSize int64 = -1

// Pipeline optionally transforms an Item as it moves from the disk tier
// into the memory tier during Cache.Get. A nil Pipeline skips that
// transform-and-cache step entirely: Get returns the disk item exactly
// as it was read, compressed or not, and never installs it into the
// memory tier.
type Pipeline struct {
	// Decompressor undoes on-disk compression. Required whenever the
	// disk item comes back with IsCompressed set; Cache.Get returns
	// ErrDecompressorMissing if it is nil in that case.
	Decompressor func(data []byte) ([]byte, error)

	// PostProcessor runs after decompression, e.g. to convert a wire
	// format into the caller's in-memory representation. May be nil.
	PostProcessor func(data []byte) ([]byte, error)

	// ConversionBufferSize overrides the item's declared Size after
	// PostProcessor runs, for the case where the returned buffer's
	// length no longer matches the logical size of the value it holds
	// (e.g. a decoded image whose pixel count differs from its byte
	// count). Leave it at UnsetBufferSize to declare the size as the
	// buffer's length, unchanged.
	ConversionBufferSize int64
}

// declaredSize returns the size Cache.Get should record for an item
// produced by this pipeline: actualSize unless ConversionBufferSize was
// set to something other than UnsetBufferSize.
func (p *Pipeline) declaredSize(actualSize int64) int64 {
	if p == nil || p.ConversionBufferSize == UnsetBufferSize {
		return actualSize
	}
	return p.ConversionBufferSize
}
