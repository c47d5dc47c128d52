package files

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func makeEntries(n int) []os.DirEntry {
	entries := make([]os.DirEntry, n)
	for i := range entries {
		entries[i] = NewDirEntry(fmt.Sprintf("f%03d", i), false)
	}
	return entries
}

type sliceDirReader struct {
	entries []os.DirEntry
	reads   int
	closed  bool
	err     error
}

func (r *sliceDirReader) ReadDir(n int) ([]os.DirEntry, error) {
	r.reads++
	if r.err != nil {
		return nil, r.err
	}
	if len(r.entries) == 0 {
		return nil, io.EOF
	}
	if n > len(r.entries) {
		n = len(r.entries)
	}
	batch := r.entries[:n]
	r.entries = r.entries[n:]
	return batch, nil
}

func (r *sliceDirReader) Close() error {
	r.closed = true
	return nil
}

type openerStore struct {
	*MockStore
	reader  *sliceDirReader
	openErr error
}

func (s openerStore) OpenDir(_ context.Context, _ string) (DirReader, error) {
	if s.openErr != nil {
		return nil, s.openErr
	}
	return s.reader, nil
}

func TestReadDirLimit_FullListing(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	for _, tt := range []struct {
		name     string
		count    int
		wantLen  int
		wantMore bool
	}{
		{name: "below_limit", count: 12, wantLen: 12},
		{name: "exactly_limit", count: 100, wantLen: 100},
		{name: "above_limit", count: 150, wantLen: 100, wantMore: true},
	} {
		t.Run(tt.name, func(t *testing.T) {
			store := NewMockStore(ctrl)
			store.EXPECT().ReadDir(gomock.Any(), "/data").Return(makeEntries(tt.count), nil)
			entries, more, err := ReadDirLimit(ctx, store, "/data", 100)
			require.NoError(t, err)
			assert.Len(t, entries, tt.wantLen)
			assert.Equal(t, tt.wantMore, more)
		})
	}

	t.Run("error", func(t *testing.T) {
		store := NewMockStore(ctrl)
		store.EXPECT().ReadDir(gomock.Any(), "/denied").Return(nil, os.ErrPermission)
		entries, more, err := ReadDirLimit(ctx, store, "/denied", 100)
		assert.ErrorIs(t, err, os.ErrPermission)
		assert.Nil(t, entries)
		assert.False(t, more)
	})
}

func TestReadDirLimit_Incremental(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	t.Run("stops_after_limit", func(t *testing.T) {
		reader := &sliceDirReader{entries: makeEntries(1000)}
		store := openerStore{MockStore: NewMockStore(ctrl), reader: reader}
		entries, more, err := ReadDirLimit(ctx, store, "/big", 100)
		require.NoError(t, err)
		assert.Len(t, entries, 100)
		assert.True(t, more)
		assert.True(t, reader.closed)
		assert.Less(t, reader.reads, 10)
	})

	t.Run("exact_count", func(t *testing.T) {
		reader := &sliceDirReader{entries: makeEntries(100)}
		store := openerStore{MockStore: NewMockStore(ctrl), reader: reader}
		entries, more, err := ReadDirLimit(ctx, store, "/dir", 100)
		require.NoError(t, err)
		assert.Len(t, entries, 100)
		assert.False(t, more)
	})

	t.Run("open_error", func(t *testing.T) {
		store := openerStore{MockStore: NewMockStore(ctrl), openErr: os.ErrPermission}
		_, _, err := ReadDirLimit(ctx, store, "/denied", 100)
		assert.ErrorIs(t, err, os.ErrPermission)
	})

	t.Run("read_error", func(t *testing.T) {
		reader := &sliceDirReader{err: errors.New("connection reset")}
		store := openerStore{MockStore: NewMockStore(ctrl), reader: reader}
		_, _, err := ReadDirLimit(ctx, store, "/dir", 100)
		assert.EqualError(t, err, "connection reset")
		assert.True(t, reader.closed)
	})

	t.Run("cancelled", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		reader := &sliceDirReader{entries: makeEntries(10)}
		store := openerStore{MockStore: NewMockStore(ctrl), reader: reader}
		_, _, err := ReadDirLimit(cancelled, store, "/dir", 100)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestIsNetworkStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	store.EXPECT().RootURL().Return(url.URL{Scheme: "file"})
	assert.False(t, IsNetworkStore(store))
	store.EXPECT().RootURL().Return(url.URL{Scheme: "ftp", Host: "nas"})
	assert.True(t, IsNetworkStore(store))
}

func TestIsNetworkPath_UNC(t *testing.T) {
	assert.True(t, IsNetworkPath(`\\server\share\docs`))
	assert.True(t, IsNetworkPath("//server/share"))
}

func TestJoin(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	store.EXPECT().RootURL().Return(url.URL{Scheme: "file"})
	assert.Equal(t, filepath.Join("data", "a"), Join(store, "data", "a"))
	store.EXPECT().RootURL().Return(url.URL{Scheme: "ftp"})
	assert.Equal(t, "/pub/docs", Join(store, "/pub", "docs"))
}
