package entry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKind_String(t *testing.T) {
	assert.Equal(t, "Pixels", Pixels.String())
	assert.Equal(t, "String", String.String())
	assert.Equal(t, "Unknown", Kind(99).String())
}

func TestItem_CacheSize(t *testing.T) {
	var nilItem *Item
	assert.Equal(t, int64(0), nilItem.CacheSize())

	item := &Item{Data: []byte("xyz"), Size: 3}
	assert.Equal(t, int64(3), item.CacheSize())
}

func TestItem_Clone(t *testing.T) {
	src := &Item{Data: []byte("hello"), Size: 999, IsCompressed: true, Kind: String}

	dst := make([]byte, len(src.Data))
	clone := src.Clone(dst)

	assert.Equal(t, src.Data, clone.Data)
	assert.Equal(t, src.Size, clone.Size, "declared size carries over even when it diverges from the buffer length")
	assert.Equal(t, src.IsCompressed, clone.IsCompressed)
	assert.Equal(t, src.Kind, clone.Kind)

	// The clone must not alias src's backing array.
	clone.Data[0] = 'X'
	assert.Equal(t, byte('h'), src.Data[0])
}

func TestItem_Clone_IntoLargerBuffer(t *testing.T) {
	src := &Item{Data: []byte("ab")}
	dst := make([]byte, 8)

	clone := src.Clone(dst)
	assert.Equal(t, []byte("ab"), clone.Data, "Clone truncates dst to the number of bytes actually copied")
}
