package explorer

import (
	"context"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/datatug/netexplorer/pkg/files"
	"github.com/datatug/netexplorer/pkg/files/aferofile"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// newMemStore creates the given files; paths ending with a slash are directories.
func newMemStore(t *testing.T, paths ...string) *aferofile.Store {
	t.Helper()
	store, mem := aferofile.NewMemStore()
	for _, p := range paths {
		if strings.HasSuffix(p, "/") {
			require.NoError(t, mem.MkdirAll(p, 0o755))
			continue
		}
		require.NoError(t, afero.WriteFile(mem, p, []byte(p), 0o644))
	}
	return store
}

func addFiles(t *testing.T, store *aferofile.Store, dir string, n int, ext string) {
	t.Helper()
	require.NoError(t, store.Fs().MkdirAll(dir, 0o755))
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("%s/file%03d%s", dir, i, ext)
		require.NoError(t, afero.WriteFile(store.Fs(), name, nil, 0o644))
	}
}

// testStore wraps a memory store to inject failures and record calls.
type testStore struct {
	*aferofile.Store
	denied   map[string]bool
	statFail map[string]bool
	network  bool

	mu     sync.Mutex
	opened []string
}

func newTestStore(base *aferofile.Store) *testStore {
	return &testStore{Store: base, denied: map[string]bool{}, statFail: map[string]bool{}}
}

func (s *testStore) record(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opened = append(s.opened, name)
}

func (s *testStore) openedDirs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.opened...)
}

func (s *testStore) RootURL() url.URL {
	if s.network {
		return url.URL{Scheme: "ftp", Host: "nas"}
	}
	return s.Store.RootURL()
}

func (s *testStore) ReadDir(ctx context.Context, name string) ([]os.DirEntry, error) {
	s.record(name)
	if s.denied[name] {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrPermission}
	}
	return s.Store.ReadDir(ctx, name)
}

func (s *testStore) OpenDir(ctx context.Context, name string) (files.DirReader, error) {
	s.record(name)
	if s.denied[name] {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrPermission}
	}
	return s.Store.OpenDir(ctx, name)
}

func (s *testStore) Stat(ctx context.Context, name string) (os.FileInfo, error) {
	if s.statFail[name] {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
	}
	return s.Store.Stat(ctx, name)
}

// blockingStore blocks every ReadDir below the root until released or cancelled.
type blockingStore struct {
	*aferofile.Store
	root    string
	entered chan string
	release chan struct{}
}

func newBlockingStore(base *aferofile.Store, root string) *blockingStore {
	return &blockingStore{
		Store:   base,
		root:    root,
		entered: make(chan string, 100),
		release: make(chan struct{}),
	}
}

func (s *blockingStore) ReadDir(ctx context.Context, name string) ([]os.DirEntry, error) {
	if name != s.root {
		s.entered <- name
		select {
		case <-s.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.Store.ReadDir(ctx, name)
}

// fakeClock advances by step on every call.
func fakeClock(t *testing.T, step time.Duration) {
	t.Helper()
	orig := timeNow
	t.Cleanup(func() { timeNow = orig })
	var mu sync.Mutex
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	timeNow = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(step)
		return now
	}
}

type eventRecorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *eventRecorder) listen(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *eventRecorder) snapshot() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}
