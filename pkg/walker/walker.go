// Package walker traverses a directory tree of a files.Store lazily.
package walker

import (
	"context"
	"io/fs"
	"iter"
	"sort"

	"github.com/datatug/netexplorer/pkg/files"
	"go.uber.org/zap"
)

// Visit is one enumerated directory. When Err is set the directory could not
// be enumerated and Files and Dirs are empty.
type Visit struct {
	Dir   string
	Depth int
	Files []string
	Dirs  []string
	Err   error
}

func (v Visit) Skipped() bool {
	return v.Err != nil
}

type Option func(*Walker)

func WithLogger(logger *zap.Logger) Option {
	return func(w *Walker) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// Walker enumerates directory names only; it never stats files and never
// follows symbolic links.
type Walker struct {
	store  files.Store
	logger *zap.Logger
}

func New(store files.Store, o ...Option) *Walker {
	w := &Walker{
		store:  store,
		logger: zap.NewNop(),
	}
	for _, opt := range o {
		opt(w)
	}
	return w
}

// Join returns the path of a child of dir in the walked store.
func (w *Walker) Join(dir, name string) string {
	return files.Join(w.store, dir, name)
}

type frame struct {
	dir   string
	depth int
}

// Walk yields the root and then every reachable subdirectory in pre-order,
// children in name order. ctx is checked before each directory is read; once
// it is done the sequence ends without an error.
func (w *Walker) Walk(ctx context.Context, root string) iter.Seq[Visit] {
	return func(yield func(Visit) bool) {
		stack := []frame{{dir: root}}
		for len(stack) > 0 {
			if ctx.Err() != nil {
				return
			}
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			entries, err := w.store.ReadDir(ctx, f.dir)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				w.logger.Warn("skipping directory", zap.String("dir", f.dir), zap.Error(err))
				if !yield(Visit{Dir: f.dir, Depth: f.depth, Err: err}) {
					return
				}
				continue
			}

			visit := Visit{Dir: f.dir, Depth: f.depth}
			for _, entry := range entries {
				if IsDir(entry) {
					visit.Dirs = append(visit.Dirs, entry.Name())
				} else {
					visit.Files = append(visit.Files, entry.Name())
				}
			}
			sort.Strings(visit.Dirs)
			sort.Strings(visit.Files)
			if !yield(visit) {
				return
			}
			for i := len(visit.Dirs) - 1; i >= 0; i-- {
				stack = append(stack, frame{dir: w.Join(f.dir, visit.Dirs[i]), depth: f.depth + 1})
			}
		}
	}
}

// IsDir reports whether entry is a real directory. Links to directories are leaves.
func IsDir(entry fs.DirEntry) bool {
	return entry.IsDir() && entry.Type()&fs.ModeSymlink == 0
}
