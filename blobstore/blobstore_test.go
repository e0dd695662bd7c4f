package blobstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Lifecycle(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	data := []byte("hello world, this is a test blob for meshgo")
	require.NoError(t, store.Put(ctx, "mesh-001.bin", data))

	blob, err := store.Open(ctx, "mesh-001.bin")
	require.NoError(t, err)
	defer blob.Close()

	require.Equal(t, int64(len(data)), blob.Size())

	buf := make([]byte, 5)
	n, err := blob.ReadAt(buf, 6) // "world"
	require.NoError(t, err)
	require.Equal(t, 5, n)
	require.Equal(t, "world", string(buf))

	got, err := ReadAll(blob)
	require.NoError(t, err)
	require.Equal(t, data, got)

	// Mutating the Put buffer must not change the stored blob.
	data[0] = 'X'
	got, err = ReadAll(blob)
	require.NoError(t, err)
	require.Equal(t, byte('h'), got[0])

	require.NoError(t, store.Put(ctx, "mesh-002.bin", []byte("x")))
	require.NoError(t, store.Put(ctx, "other.bin", []byte("y")))

	names, err := store.List(ctx, "mesh-")
	require.NoError(t, err)
	require.Equal(t, []string{"mesh-001.bin", "mesh-002.bin"}, names)

	require.NoError(t, store.Delete(ctx, "mesh-001.bin"))
	require.NoError(t, store.Delete(ctx, "mesh-001.bin")) // idempotent

	_, err = store.Open(ctx, "mesh-001.bin")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStore_Lifecycle(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewLocalStore(tmpDir)
	require.NoError(t, err)

	ctx := context.Background()

	data := []byte("0123456789")
	require.NoError(t, store.Put(ctx, "boundary.bin", data))

	// Put must leave a plain file and no temp leftovers.
	_, err = os.Stat(filepath.Join(tmpDir, "boundary.bin"))
	require.NoError(t, err)

	blob, err := store.Open(ctx, "boundary.bin")
	require.NoError(t, err)
	defer blob.Close()

	require.Equal(t, int64(len(data)), blob.Size())

	buf := make([]byte, 4)
	n, err := blob.ReadAt(buf, 3)
	require.NoError(t, err)
	require.Equal(t, "3456", string(buf[:n]))

	// Mappable fast path.
	m, ok := blob.(Mappable)
	require.True(t, ok)
	raw, err := m.Bytes()
	require.NoError(t, err)
	require.Equal(t, data, raw)

	require.NoError(t, store.Put(ctx, "second.bin", []byte("x")))

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	require.Equal(t, []string{"boundary.bin", "second.bin"}, names)

	require.NoError(t, store.Delete(ctx, "second.bin"))
	require.NoError(t, store.Delete(ctx, "second.bin")) // idempotent

	_, err = store.Open(ctx, "second.bin")
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLocalStore_Overwrite(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "a.bin", []byte("first version")))
	require.NoError(t, store.Put(ctx, "a.bin", []byte("second")))

	blob, err := store.Open(ctx, "a.bin")
	require.NoError(t, err)
	defer blob.Close()

	got, err := ReadAll(blob)
	require.NoError(t, err)
	require.Equal(t, "second", string(got))
}

func TestLocalStore_Throttled(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), func(o *LocalOptions) {
		o.WriteBytesPerSecond = 1 << 20
	})
	require.NoError(t, err)
	ctx := context.Background()

	data := make([]byte, 4096)
	require.NoError(t, store.Put(ctx, "throttled.bin", data))

	blob, err := store.Open(ctx, "throttled.bin")
	require.NoError(t, err)
	defer blob.Close()
	require.Equal(t, int64(len(data)), blob.Size())
}
