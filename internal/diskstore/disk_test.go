package diskstore

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/hupe1980/duocache/internal/entry"
	"github.com/hupe1980/duocache/internal/fs"
	"github.com/hupe1980/duocache/internal/scratch"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	root := t.TempDir()
	s := New(Config{Enabled: true, RootDir: root})
	require.True(t, s.Enabled())
	return s, root
}

func TestStore_DisabledWhenConfigOff(t *testing.T) {
	s := New(Config{Enabled: false, RootDir: t.TempDir()})
	assert.False(t, s.Enabled())

	resp := s.PutBytes("T1", "K1", &entry.Item{Data: []byte("hi")})
	assert.Equal(t, PutDisabled, resp)

	_, ok := s.Get(entry.Pixels, "T1", "K1")
	assert.False(t, ok)
	assert.False(t, s.IsCached(entry.Pixels, "T1", "K1"))
}

func TestStore_DisabledWhenRootEmpty(t *testing.T) {
	s := New(Config{Enabled: true, RootDir: ""})
	assert.False(t, s.Enabled())
}

func TestStore_PutBytesThenGet_RoundTrip(t *testing.T) {
	s, root := newTestStore(t)

	payload := []byte("hello pixels")
	resp := s.PutBytes("T1", "K1", &entry.Item{Data: payload, IsCompressed: false})
	require.Equal(t, PutSuccess, resp)
	assert.FileExists(t, filepath.Join(root, "T1", "K1.p"))

	got, ok := s.Get(entry.Pixels, "T1", "K1")
	require.True(t, ok)
	assert.Equal(t, payload, got.Data)
	assert.False(t, got.IsCompressed)
	assert.Equal(t, int64(len(payload)), got.Size)
}

func TestStore_PutBytes_CompressedSuffix(t *testing.T) {
	s, root := newTestStore(t)

	resp := s.PutBytes("T1", "K1", &entry.Item{Data: []byte("compressed-bytes"), IsCompressed: true})
	require.Equal(t, PutSuccess, resp)
	assert.FileExists(t, filepath.Join(root, "T1", "K1.cp"))

	got, ok := s.Get(entry.Pixels, "T1", "K1")
	require.True(t, ok)
	assert.True(t, got.IsCompressed)
}

func TestStore_PutBytes_CreateNewFailsIfExists(t *testing.T) {
	s, _ := newTestStore(t)

	require.Equal(t, PutSuccess, s.PutBytes("T1", "K1", &entry.Item{Data: []byte("a")}))
	resp := s.PutBytes("T1", "K1", &entry.Item{Data: []byte("b")})
	assert.Equal(t, PutError, resp)

	// Winner's data must be untouched.
	got, ok := s.Get(entry.Pixels, "T1", "K1")
	require.True(t, ok)
	assert.Equal(t, []byte("a"), got.Data)
}

func TestStore_PutBytes_InvalidData(t *testing.T) {
	s, _ := newTestStore(t)

	assert.Equal(t, PutInvalidData, s.PutBytes("T1", "", &entry.Item{Data: []byte("x")}))
	assert.Equal(t, PutInvalidData, s.PutBytes("T1", "K1", &entry.Item{Data: nil}))
	assert.Equal(t, PutInvalidData, s.PutBytes("T1", "K1", nil))
}

// Decompression happens above this layer: Store.Get returns the raw
// gzip-framed bytes as written, untouched.
func TestStore_PutString_GzipRoundTrip(t *testing.T) {
	s, root := newTestStore(t)

	text := "some UTF-8 text"
	resp := s.PutString("T1", "K1", &entry.Item{Data: []byte(text)})
	require.Equal(t, PutSuccess, resp)

	path := filepath.Join(root, "T1", "K1.s")
	assert.FileExists(t, path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	zr, err := gzip.NewReader(f)
	require.NoError(t, err)
	defer zr.Close()
	decoded, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Equal(t, text, string(decoded))

	got, ok := s.Get(entry.String, "T1", "K1")
	require.True(t, ok)
	assert.True(t, got.IsCompressed)

	// Verify the raw bytes really are the gzip member.
	assert.Equal(t, got.Data[:2], []byte{0x1f, 0x8b})
}

func TestStore_IsCached_Idempotent(t *testing.T) {
	s, _ := newTestStore(t)

	require.False(t, s.IsCached(entry.Pixels, "T1", "K1"))
	require.False(t, s.IsCached(entry.Pixels, "T1", "K1"))

	require.Equal(t, PutSuccess, s.PutBytes("T1", "K1", &entry.Item{Data: []byte("x")}))
	assert.True(t, s.IsCached(entry.Pixels, "T1", "K1"))
	assert.True(t, s.IsCached(entry.Pixels, "T1", "K1"))
}

func TestStore_ClearIsCached_LeavesFile_SubsequentPutFails(t *testing.T) {
	s, root := newTestStore(t)

	require.Equal(t, PutSuccess, s.PutBytes("T1", "K1", &entry.Item{Data: []byte("x")}))
	s.ClearIsCached("K1")

	assert.FileExists(t, filepath.Join(root, "T1", "K1.p"))

	// Documented quirk: status forgot the key, but create-new still
	// collides with the leftover file.
	resp := s.PutBytes("T1", "K1", &entry.Item{Data: []byte("y")})
	assert.Equal(t, PutError, resp)
}

func TestStore_GetSelfHealsOnMissingFile(t *testing.T) {
	s, root := newTestStore(t)

	require.Equal(t, PutSuccess, s.PutBytes("T1", "K1", &entry.Item{Data: []byte("x")}))
	require.NoError(t, os.Remove(filepath.Join(root, "T1", "K1.p")))

	_, ok := s.Get(entry.Pixels, "T1", "K1")
	assert.False(t, ok)

	// The file is gone, so create-new lets a fresh write succeed.
	assert.Equal(t, PutSuccess, s.PutBytes("T1", "K1", &entry.Item{Data: []byte("z")}))
}

func TestStore_Enumerate(t *testing.T) {
	s, _ := newTestStore(t)

	require.Equal(t, PutSuccess, s.PutBytes("T1", "K1", &entry.Item{Data: []byte("x")}))
	require.Equal(t, PutSuccess, s.PutBytes("T1", "K2", &entry.Item{Data: []byte("y")}))

	names := s.Enumerate("T1")
	assert.ElementsMatch(t, []string{"K1.p", "K2.p"}, names)
}

func TestStore_Enumerate_MissingDirIsBestEffort(t *testing.T) {
	s, _ := newTestStore(t)
	assert.Empty(t, s.Enumerate("does-not-exist"))
}

// PutBytes must surface a write failure as PutError and must not leave
// a status entry behind for a key whose write never completed.
func TestStore_PutBytes_WriteFailureReturnsError(t *testing.T) {
	ffs := fs.NewFaultyFS(fs.LocalFS{})
	ffs.AddRule("K1.p", fs.Fault{FailAfterBytes: 4})
	s := New(Config{Enabled: true, RootDir: t.TempDir(), FS: ffs})
	require.True(t, s.Enabled())

	resp := s.PutBytes("T1", "K1", &entry.Item{Data: []byte("more than four bytes")})
	assert.Equal(t, PutError, resp)
	assert.False(t, s.IsCached(entry.Pixels, "T1", "K1"))
}

// Get must self-heal (invalidate the status entry) when the underlying
// read fails partway through, the same way it does for a file that
// vanished out from under it.
func TestStore_Get_ReadFailureInvalidatesStatus(t *testing.T) {
	ffs := fs.NewFaultyFS(fs.LocalFS{})
	s := New(Config{Enabled: true, RootDir: t.TempDir(), FS: ffs})
	require.True(t, s.Enabled())

	require.Equal(t, PutSuccess, s.PutBytes("T1", "K1", &entry.Item{Data: []byte("hello pixels")}))

	ffs.AddRule("K1.p", fs.Fault{FailOnRead: true})
	_, ok := s.Get(entry.Pixels, "T1", "K1")
	assert.False(t, ok)

	// Status was invalidated, but the file is left in place, so a
	// subsequent Put for the same key still collides with the leftover
	// file rather than silently overwriting it.
	_, memoized := s.status.get("K1")
	require.False(t, memoized)
	assert.Equal(t, PutError, s.PutBytes("T1", "K1", &entry.Item{Data: []byte("again")}))
}

// Get must release its scratch buffer back to the pool once the data is
// copied out. Buffers never shrink, so once Get has driven the pool's
// buffer up to a large read's size, drawing again for a small read
// should still come back with the large capacity — proof the same
// grown buffer is being handed out, not a fresh small one.
func TestStore_Get_ReleasesScratchBufferForReuse(t *testing.T) {
	pool := scratch.NewPool()
	s := New(Config{Enabled: true, RootDir: t.TempDir(), Scratch: pool})
	require.True(t, s.Enabled())

	big := make([]byte, 4096)
	require.Equal(t, PutSuccess, s.PutBytes("T1", "K1", &entry.Item{Data: big}))
	_, ok := s.Get(entry.Pixels, "T1", "K1")
	require.True(t, ok)

	small := []byte("tiny")
	require.Equal(t, PutSuccess, s.PutBytes("T1", "K2", &entry.Item{Data: small}))
	_, ok = s.Get(entry.Pixels, "T1", "K2")
	require.True(t, ok)

	buf := pool.Get(4)
	defer buf.Release()
	assert.GreaterOrEqual(t, cap(buf.Bytes()), 4096, "pool buffer must retain the largest capacity Get has driven it to")
}
