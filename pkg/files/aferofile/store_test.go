package aferofile

import (
	"context"
	"io"
	"os"
	"testing"

	"github.com/datatug/netexplorer/pkg/files"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTree(t *testing.T) (*Store, afero.Fs) {
	t.Helper()
	store, mem := NewMemStore()
	require.NoError(t, mem.MkdirAll("/data/a", 0o755))
	require.NoError(t, mem.MkdirAll("/data/b", 0o755))
	for _, name := range []string{"/data/a/x.pdf", "/data/a/y.pdf", "/data/readme.txt"} {
		require.NoError(t, afero.WriteFile(mem, name, []byte("content"), 0o644))
	}
	return store, mem
}

func TestStore_ReadDir(t *testing.T) {
	store, _ := newTree(t)
	entries, err := store.ReadDir(context.Background(), "/data")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "a", entries[0].Name())
	assert.True(t, entries[0].IsDir())
	assert.Equal(t, "readme.txt", entries[2].Name())
	assert.False(t, entries[2].IsDir())

	_, err = store.ReadDir(context.Background(), "/missing")
	assert.ErrorIs(t, err, os.ErrNotExist)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = store.ReadDir(ctx, "/data")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStore_Stat(t *testing.T) {
	store, _ := newTree(t)
	fi, err := store.Stat(context.Background(), "/data/a/x.pdf")
	require.NoError(t, err)
	assert.Equal(t, int64(len("content")), fi.Size())

	fi, err = store.Stat(context.Background(), "/data/b")
	require.NoError(t, err)
	assert.True(t, fi.IsDir())
}

func TestStore_OpenDir(t *testing.T) {
	store, mem := newTree(t)
	for i := 0; i < 5; i++ {
		require.NoError(t, afero.WriteFile(mem, "/data/b/f"+string(rune('0'+i)), nil, 0o644))
	}
	dr, err := store.OpenDir(context.Background(), "/data/b")
	require.NoError(t, err)
	defer func() {
		_ = dr.Close()
	}()
	total := 0
	for {
		batch, err := dr.ReadDir(2)
		total += len(batch)
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
	}
	assert.Equal(t, 5, total)

	entries, more, err := files.ReadDirLimit(context.Background(), store, "/data/b", 3)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
	assert.True(t, more)
}

func TestStore_Root(t *testing.T) {
	store := NewStore(afero.NewReadOnlyFs(afero.NewMemMapFs()), "", WithTitle("sandbox"))
	assert.Equal(t, "sandbox", store.RootTitle())
	assert.Equal(t, "/", store.RootURL().Path)
	assert.False(t, files.IsNetworkStore(store))
	assert.NotNil(t, store.Fs())
}
