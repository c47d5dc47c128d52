package explorer

import (
	"context"
	"fmt"
	"time"

	"github.com/datatug/netexplorer/pkg/catalog"
	"github.com/datatug/netexplorer/pkg/files"
	"github.com/datatug/netexplorer/pkg/walker"
	"go.uber.org/zap"
)

var timeNow = time.Now

type diagnoser struct {
	store                files.Store
	catalog              *catalog.Catalog
	logger               *zap.Logger
	sampleSize           int
	largeFolderThreshold int
}

// run walks at most sampleSize readable folders from root and extrapolates
// the cost of a full scan from the time the sample took.
func (d diagnoser) run(ctx context.Context, root string, progress progressFunc) Result {
	report := &DiagnosisReport{
		Root:       root,
		IsNetwork:  isNetworkLocation(d.store, root),
		Accessible: true,
		FileTypes:  make(map[string]int),
		SampleSize: d.sampleSize,

		LargeFolderLimit: d.largeFolderThreshold,
	}
	res := Result{Op: OpDiagnosis, Root: root, Network: report.IsNetwork, Report: report}
	index := d.catalog.Index()
	w := walker.New(d.store, walker.WithLogger(d.logger))

	start := timeNow()
	for visit := range w.Walk(ctx, root) {
		if visit.Skipped() {
			msg := describeSkip(visit.Dir, visit.Err)
			report.Errors = append(report.Errors, msg)
			if visit.Depth == 0 {
				report.Accessible = false
				res.Err = fmt.Errorf("failed to read %s: %w", root, visit.Err)
			}
			continue
		}
		report.TotalFolders++
		report.TotalFiles += len(visit.Files)
		for _, name := range visit.Files {
			if ext := catalog.Ext(name); index.Has(ext) {
				report.FileTypes[ext]++
			}
		}
		if len(visit.Files) > d.largeFolderThreshold {
			report.LargeFolders = append(report.LargeFolders, LargeFolder{Path: visit.Dir, FileCount: len(visit.Files)})
		}
		progress(Progress{
			Dir:            visit.Dir,
			FoldersVisited: report.TotalFolders,
			FilesSeen:      report.TotalFiles,
			Message:        fmt.Sprintf("Analyzed %d folders, %d files...", report.TotalFolders, report.TotalFiles),
		})
		if report.TotalFolders >= d.sampleSize {
			report.SampleComplete = true
			break
		}
	}
	report.Elapsed = timeNow().Sub(start)
	if report.SampleComplete && report.Elapsed > 0 {
		ratio := float64(report.TotalFolders) / float64(d.sampleSize)
		report.EstimatedScanTime = time.Duration(ratio * float64(report.Elapsed))
	}
	report.CompletedAt = timeNow()

	res.Errors = report.Errors
	res.FoldersVisited = report.TotalFolders
	res.FilesSeen = report.TotalFiles
	switch {
	case !report.Accessible:
		res.Status = StatusError
	case report.SampleComplete:
		res.Status = StatusCompleted
	default:
		res.Status = statusOf(ctx.Err())
	}
	return res
}

func isNetworkLocation(store files.Store, root string) bool {
	if files.IsNetworkStore(store) {
		return true
	}
	return files.IsNetworkPath(root)
}
