// Package aferofile exposes any afero.Fs as a files.Store.
package aferofile

import (
	"context"
	"io/fs"
	"net/url"
	"os"

	"github.com/datatug/netexplorer/pkg/files"
	"github.com/spf13/afero"
)

var _ files.Store = (*Store)(nil)
var _ files.DirOpener = (*Store)(nil)

type Store struct {
	fs    afero.Fs
	title string
	root  string
}

type Option func(*Store)

func WithTitle(title string) Option {
	return func(s *Store) {
		s.title = title
	}
}

func NewStore(fsys afero.Fs, root string, o ...Option) *Store {
	if root == "" {
		root = "/"
	}
	s := &Store{fs: fsys, root: root, title: fsys.Name()}
	for _, opt := range o {
		opt(s)
	}
	return s
}

// NewMemStore returns a store backed by an empty in-memory file system.
func NewMemStore() (*Store, afero.Fs) {
	mem := afero.NewMemMapFs()
	return NewStore(mem, "/"), mem
}

func (s *Store) RootTitle() string {
	return s.title
}

func (s *Store) RootURL() url.URL {
	return url.URL{Scheme: "file", Path: s.root}
}

func (s *Store) Fs() afero.Fs {
	return s.fs
}

func (s *Store) ReadDir(ctx context.Context, name string) ([]os.DirEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	infos, err := afero.ReadDir(s.fs, name)
	if err != nil {
		return nil, err
	}
	return toDirEntries(infos), nil
}

func (s *Store) Stat(ctx context.Context, name string) (os.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.fs.Stat(name)
}

func (s *Store) OpenDir(ctx context.Context, name string) (files.DirReader, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := s.fs.Open(name)
	if err != nil {
		return nil, err
	}
	return dirReader{f: f}, nil
}

type dirReader struct {
	f afero.File
}

func (r dirReader) ReadDir(n int) ([]os.DirEntry, error) {
	infos, err := r.f.Readdir(n)
	return toDirEntries(infos), err
}

func (r dirReader) Close() error {
	return r.f.Close()
}

func toDirEntries(infos []os.FileInfo) []os.DirEntry {
	entries := make([]os.DirEntry, len(infos))
	for i, fi := range infos {
		entries[i] = fs.FileInfoToDirEntry(fi)
	}
	return entries
}
