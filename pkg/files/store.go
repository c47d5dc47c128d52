package files

//go:generate mockgen -destination=store_mock.go -package=files . Store

import (
	"context"
	"errors"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
)

var ErrNotSupported = errors.New("not supported by store")

// Store lists directories and stats entries of one file system root.
// Implementations must not follow symbolic links when reporting entry types.
type Store interface {
	RootTitle() string
	RootURL() url.URL
	ReadDir(ctx context.Context, name string) ([]os.DirEntry, error)
	Stat(ctx context.Context, name string) (os.FileInfo, error)
}

// DirReader enumerates a directory in batches.
type DirReader interface {
	// ReadDir returns at most n entries; io.EOF is returned once the directory is exhausted.
	ReadDir(n int) ([]os.DirEntry, error)
	Close() error
}

// DirOpener is implemented by stores that can enumerate a directory incrementally.
type DirOpener interface {
	OpenDir(ctx context.Context, name string) (DirReader, error)
}

// ReadDirLimit returns up to limit entries of a directory and reports whether
// more entries exist beyond the limit.
func ReadDirLimit(ctx context.Context, store Store, name string, limit int) (entries []os.DirEntry, more bool, err error) {
	opener, ok := store.(DirOpener)
	if !ok {
		if entries, err = store.ReadDir(ctx, name); err != nil {
			return nil, false, err
		}
		if len(entries) > limit {
			return entries[:limit], true, nil
		}
		return entries, false, nil
	}
	var dr DirReader
	if dr, err = opener.OpenDir(ctx, name); err != nil {
		return nil, false, err
	}
	defer func() {
		_ = dr.Close()
	}()
	const batchSize = 32
	for len(entries) <= limit {
		if err = ctx.Err(); err != nil {
			return entries, false, err
		}
		batch, readErr := dr.ReadDir(batchSize)
		entries = append(entries, batch...)
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				break
			}
			return entries, false, readErr
		}
		if len(batch) == 0 {
			break
		}
	}
	if len(entries) > limit {
		return entries[:limit], true, nil
	}
	return entries, false, nil
}

func IsNetworkStore(store Store) bool {
	return store.RootURL().Scheme != "file"
}

// Join joins a directory and a child name with the separator the store uses:
// OS paths for file stores, slash paths for network protocols.
func Join(store Store, dir, name string) string {
	if store.RootURL().Scheme == "file" {
		return filepath.Join(dir, name)
	}
	return path.Join(dir, name)
}
