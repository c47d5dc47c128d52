package explorer

import (
	"time"

	"github.com/datatug/netexplorer/pkg/catalog"
	"go.uber.org/zap"
)

const (
	DefaultSampleSize           = 10
	DefaultLargeFolderThreshold = 100
	DefaultFolderCountCap       = 100
	DefaultListerWorkers        = 4
	DefaultSupersedeWait        = 2 * time.Second
)

type options struct {
	catalog              *catalog.Catalog
	logger               *zap.Logger
	listener             Listener
	sampleSize           int
	largeFolderThreshold int
	folderCountCap       int
	listerWorkers        int
	supersedeWait        time.Duration
}

func defaultOptions() options {
	return options{
		catalog:              catalog.Default,
		logger:               zap.NewNop(),
		sampleSize:           DefaultSampleSize,
		largeFolderThreshold: DefaultLargeFolderThreshold,
		folderCountCap:       DefaultFolderCountCap,
		listerWorkers:        DefaultListerWorkers,
		supersedeWait:        DefaultSupersedeWait,
	}
}

type Option func(*options)

func WithCatalog(c *catalog.Catalog) Option {
	return func(o *options) {
		if c != nil {
			o.catalog = c
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func WithListener(l Listener) Option {
	return func(o *options) {
		o.listener = l
	}
}

// WithSampleSize sets how many folders a diagnosis samples.
func WithSampleSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.sampleSize = n
		}
	}
}

// WithLargeFolderThreshold sets the file count above which a folder is reported as large.
func WithLargeFolderThreshold(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.largeFolderThreshold = n
		}
	}
}

// WithFolderCountCap bounds how many children of each listed folder are counted.
func WithFolderCountCap(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.folderCountCap = n
		}
	}
}

func WithListerWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.listerWorkers = n
		}
	}
}

// WithSupersedeWait bounds how long starting a session waits for the
// cancelled predecessor to wind down.
func WithSupersedeWait(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.supersedeWait = d
		}
	}
}
