package codec

import (
	"bytes"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGzipDecompressor_RoundTrip(t *testing.T) {
	plain := []byte("some UTF-8 text, gzip framed exactly like diskstore writes it")

	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	_, err := gw.Write(plain)
	require.NoError(t, err)
	require.NoError(t, gw.Close())

	got, err := GzipDecompressor(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, plain, got)
}

func TestGzipDecompressor_RejectsGarbage(t *testing.T) {
	_, err := GzipDecompressor([]byte("not gzip"))
	assert.Error(t, err)
}
