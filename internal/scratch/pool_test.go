package scratch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPool_GrowsAndReuses(t *testing.T) {
	p := NewPool()

	b1 := p.Get(16)
	assert.Len(t, b1.Bytes(), 16)
	copy(b1.Bytes(), []byte("0123456789abcdef"))
	b1.Release()

	b2 := p.Get(8)
	assert.Len(t, b2.Bytes(), 8)
	assert.GreaterOrEqual(t, cap(b2.Bytes()), 16, "capacity should not shrink across reuse")
}

func TestPool_IndependentBuffersDoNotAlias(t *testing.T) {
	p := NewPool()

	b1 := p.Get(4)
	copy(b1.Bytes(), []byte("aaaa"))

	b2 := p.Get(4)
	copy(b2.Bytes(), []byte("bbbb"))

	assert.Equal(t, []byte("aaaa"), b1.Bytes())
	assert.Equal(t, []byte("bbbb"), b2.Bytes())
}
