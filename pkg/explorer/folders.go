package explorer

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/datatug/netexplorer/pkg/files"
	"github.com/datatug/netexplorer/pkg/walker"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const listingProgressEvery = 5

type lister struct {
	store    files.Store
	logger   *zap.Logger
	countCap int
	workers  int
}

// run summarises the immediate subdirectories of dir. It never looks deeper
// than one level below dir and counts at most countCap children per folder.
func (l lister) run(ctx context.Context, dir string, progress progressFunc) Result {
	res := Result{Op: OpListing, Root: dir}
	entries, err := l.store.ReadDir(ctx, dir)
	if err != nil {
		if ctx.Err() != nil {
			res.Status = StatusCancelled
			return res
		}
		res.Status = StatusError
		res.Err = fmt.Errorf("failed to list %s: %w", dir, err)
		res.Errors = append(res.Errors, describeSkip(dir, err))
		return res
	}

	var children []string
	for _, entry := range entries {
		if walker.IsDir(entry) {
			children = append(children, entry.Name())
		} else {
			res.FilesSeen++
		}
	}

	summaries := make([]*FolderSummary, len(children))
	var (
		mu   sync.Mutex
		done int
	)
	var g errgroup.Group
	g.SetLimit(l.workers)
	for i, name := range children {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			summary, ok := l.summarize(ctx, dir, name)
			if !ok {
				return nil
			}
			mu.Lock()
			defer mu.Unlock()
			summaries[i] = &summary
			done++
			if done%listingProgressEvery == 0 {
				progress(Progress{
					Dir:            summary.Path,
					FoldersVisited: done,
					Message:        fmt.Sprintf("Loading folders... Found %d", done),
				})
			}
			return nil
		})
	}
	_ = g.Wait()

	for _, s := range summaries {
		if s != nil {
			res.Folders = append(res.Folders, *s)
		}
	}
	sortFolders(res.Folders)
	res.FoldersVisited = len(res.Folders)
	res.Status = statusOf(ctx.Err())
	return res
}

// summarize counts the children of one subdirectory; ok is false when the
// work was interrupted by cancellation.
func (l lister) summarize(ctx context.Context, parent, name string) (summary FolderSummary, ok bool) {
	if ctx.Err() != nil {
		return summary, false
	}
	p := files.Join(l.store, parent, name)
	summary = FolderSummary{Name: name, Path: p}

	if fi, err := l.store.Stat(ctx, p); err == nil {
		summary.Modified = fi.ModTime()
	} else {
		summary.Modified = timeNow()
	}

	entries, more, err := files.ReadDirLimit(ctx, l.store, p, l.countCap)
	if err != nil {
		if ctx.Err() != nil {
			return summary, false
		}
		l.logger.Debug("cannot count folder children", zap.String("dir", p), zap.Error(err))
		summary.Dirs = Count{State: CountUnknown}
		summary.Files = Count{State: CountUnknown}
		return summary, true
	}
	state := CountExact
	if more {
		state = CountAtLeast
	}
	summary.Dirs.State = state
	summary.Files.State = state
	for _, entry := range entries {
		if walker.IsDir(entry) {
			summary.Dirs.N++
		} else {
			summary.Files.N++
		}
	}
	return summary, true
}

func sortFolders(folders []FolderSummary) {
	c := collate.New(language.Und, collate.IgnoreCase)
	sort.SliceStable(folders, func(i, j int) bool {
		return c.CompareString(folders[i].Name, folders[j].Name) < 0
	})
}
