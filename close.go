package duocache

// Close releases the memory tiers held by this Cache.
//
// The disk tier opens and closes a file per operation, so there is no
// persistent handle to release there. Close exists for API symmetry
// with callers that manage a Cache's lifetime alongside other closable
// resources, and to make an explicit point where a caller can drop
// large in-memory buffers ahead of process shutdown.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	c.pixels.Clear()
	c.string.Clear()
	return nil
}
