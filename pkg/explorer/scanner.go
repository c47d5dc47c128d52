package explorer

import (
	"context"
	"fmt"

	"github.com/datatug/netexplorer/pkg/catalog"
	"github.com/datatug/netexplorer/pkg/files"
	"github.com/datatug/netexplorer/pkg/walker"
	"go.uber.org/zap"
)

type scanner struct {
	store   files.Store
	catalog *catalog.Catalog
	logger  *zap.Logger
}

// run collects a record for every file under root whose extension is in
// allow. Records of a directory are published only once the whole directory
// has been processed, so a cancelled scan never holds a partial directory.
func (s scanner) run(ctx context.Context, root string, allow catalog.ExtensionSet, progress progressFunc) Result {
	res := Result{Op: OpScan, Root: root}
	w := walker.New(s.store, walker.WithLogger(s.logger))

	for visit := range w.Walk(ctx, root) {
		if visit.Skipped() {
			res.Errors = append(res.Errors, describeSkip(visit.Dir, visit.Err))
			if visit.Depth == 0 {
				res.Status = StatusError
				res.Err = fmt.Errorf("failed to read %s: %w", root, visit.Err)
				return res
			}
			continue
		}

		batch, interrupted := s.processDir(ctx, w, visit, allow)
		if interrupted {
			break
		}
		res.FoldersVisited++
		res.FilesSeen += len(visit.Files)
		res.Records = append(res.Records, batch...)
		progress(Progress{
			Dir:            visit.Dir,
			FoldersVisited: res.FoldersVisited,
			FilesSeen:      res.FilesSeen,
			Matched:        len(res.Records),
			Message:        "Scanning: " + visit.Dir,
		})
	}
	res.Status = statusOf(ctx.Err())
	return res
}

func (s scanner) processDir(ctx context.Context, w *walker.Walker, visit walker.Visit, allow catalog.ExtensionSet) (batch []FileRecord, interrupted bool) {
	for _, name := range visit.Files {
		ext := catalog.Ext(name)
		if !allow.Has(ext) {
			continue
		}
		p := w.Join(visit.Dir, name)
		fi, err := s.store.Stat(ctx, p)
		if err != nil {
			if ctx.Err() != nil {
				return nil, true
			}
			s.logger.Debug("skipping file", zap.String("path", p), zap.Error(err))
			continue
		}
		batch = append(batch, FileRecord{
			Name:     name,
			Path:     p,
			Ext:      ext,
			Size:     fi.Size(),
			Modified: fi.ModTime(),
			Category: s.catalog.CategoryOf(ext),
		})
	}
	return batch, false
}
