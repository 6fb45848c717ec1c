// Package scratch provides a pool of reusable, monotonically-growing
// byte buffers for the disk tier's pixel reads.
//
// Go has no per-thread storage equivalent to a classic "thread-local
// buffer", so a sync.Pool stands in for it: a goroutine draws a buffer,
// reads into it, and returns it when done. Buffers never shrink, so the
// pool converges on buffers sized for the largest read seen so far,
// achieved with Go's idiomatic pooling primitive instead of
// goroutine-local state.
package scratch

import "sync"

// Buffer is a growable byte buffer drawn from a Pool. Its Bytes are
// valid only until the Buffer is Released; a caller that needs to keep
// the data must copy it into an owned buffer first.
type Buffer struct {
	buf []byte
	p   *Pool
}

// Bytes returns the buffer's current contents.
func (b *Buffer) Bytes() []byte { return b.buf }

// Grow ensures the buffer has at least n bytes of capacity and sets its
// length to n, without ever shrinking previously acquired capacity.
func (b *Buffer) Grow(n int) []byte {
	if cap(b.buf) < n {
		b.buf = make([]byte, n)
	} else {
		b.buf = b.buf[:n]
	}
	return b.buf
}

// Release returns the buffer to its Pool for reuse. After Release, the
// caller must not read from or write to the slice returned by Bytes.
func (b *Buffer) Release() {
	if b.p != nil {
		b.p.pool.Put(b)
	}
}

// Pool hands out growable scratch Buffers.
type Pool struct {
	pool sync.Pool
}

// NewPool creates an empty Pool.
func NewPool() *Pool {
	p := &Pool{}
	p.pool.New = func() any {
		return &Buffer{p: p}
	}
	return p
}

// Get draws a Buffer from the pool, growing it to at least n bytes.
func (p *Pool) Get(n int) *Buffer {
	b := p.pool.Get().(*Buffer)
	b.Grow(n)
	return b
}
