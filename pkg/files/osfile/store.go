package osfile

import (
	"context"
	"net/url"
	"os"
	"strings"

	"github.com/datatug/netexplorer/pkg/files"
)

var osReadDir = os.ReadDir
var osStat = os.Stat
var osOpen = os.Open
var osHostname = os.Hostname

var _ files.Store = (*Store)(nil)
var _ files.DirOpener = (*Store)(nil)

// Store reads the local file system, including network shares mounted by the OS.
type Store struct {
	title string
	root  string
}

func (s Store) RootURL() url.URL {
	return url.URL{
		Scheme: "file",
		Path:   s.root,
	}
}

func (s Store) RootTitle() string {
	return strings.TrimSuffix(s.title, ".station")
}

func (s Store) ReadDir(ctx context.Context, name string) ([]os.DirEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return osReadDir(name)
}

func (s Store) Stat(ctx context.Context, name string) (os.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return osStat(name)
}

func (s Store) OpenDir(ctx context.Context, name string) (files.DirReader, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := osOpen(name)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// IsNetwork reports whether the store root is a UNC path or a network mount.
func (s Store) IsNetwork() bool {
	return files.IsNetworkPath(s.root)
}

func NewStore(root string) *Store {
	if root == "" {
		root = "/"
	}
	store := Store{root: root}
	var err error
	if store.title, err = osHostname(); err != nil {
		store.title = err.Error()
	}
	return &store
}
