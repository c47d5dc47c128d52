package explorer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"
	"time"

	"github.com/datatug/netexplorer/pkg/catalog"
	"github.com/datatug/netexplorer/pkg/files"
	"go.uber.org/zap"
)

// Engine runs scans, diagnoses and folder listings against one store, at
// most one at a time. Starting an operation cancels the running one.
type Engine struct {
	store files.Store
	opts  options

	mu     sync.Mutex
	active *Session
}

func New(store files.Store, o ...Option) *Engine {
	e := &Engine{
		store: store,
		opts:  defaultOptions(),
	}
	for _, opt := range o {
		opt(&e.opts)
	}
	return e
}

func (e *Engine) Store() files.Store {
	return e.store
}

func (e *Engine) Catalog() *catalog.Catalog {
	return e.opts.catalog
}

// Active returns the running session or nil.
func (e *Engine) Active() *Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.active
}

// CancelActive cancels the running session, if any, without waiting for it.
func (e *Engine) CancelActive() {
	if s := e.Active(); s != nil {
		s.Cancel()
	}
}

// StartScan starts a full scan of root collecting files whose extension is in allow.
func (e *Engine) StartScan(ctx context.Context, root string, allow catalog.ExtensionSet) (*Session, error) {
	s := scanner{store: e.store, catalog: e.opts.catalog, logger: e.opts.logger}
	return e.start(ctx, OpScan, root, func(ctx context.Context, progress progressFunc) Result {
		return s.run(ctx, root, allow, progress)
	})
}

// StartDiagnosis starts a bounded sample of root.
func (e *Engine) StartDiagnosis(ctx context.Context, root string) (*Session, error) {
	d := diagnoser{
		store:                e.store,
		catalog:              e.opts.catalog,
		logger:               e.opts.logger,
		sampleSize:           e.opts.sampleSize,
		largeFolderThreshold: e.opts.largeFolderThreshold,
	}
	return e.start(ctx, OpDiagnosis, root, func(ctx context.Context, progress progressFunc) Result {
		return d.run(ctx, root, progress)
	})
}

// StartListing starts summarising the immediate subdirectories of dir.
func (e *Engine) StartListing(ctx context.Context, dir string) (*Session, error) {
	l := lister{
		store:    e.store,
		logger:   e.opts.logger,
		countCap: e.opts.folderCountCap,
		workers:  e.opts.listerWorkers,
	}
	return e.start(ctx, OpListing, dir, func(ctx context.Context, progress progressFunc) Result {
		return l.run(ctx, dir, progress)
	})
}

type runFunc func(ctx context.Context, progress progressFunc) Result

func (e *Engine) start(ctx context.Context, op Op, root string, run runFunc) (*Session, error) {
	if err := e.validateRoot(ctx, root); err != nil {
		return nil, err
	}

	e.mu.Lock()
	e.supersede()
	sctx, cancel := context.WithCancel(ctx)
	s := newSession(op, root, cancel)
	e.active = s
	e.mu.Unlock()

	logger := e.opts.logger.With(zap.Stringer("session", s.ID), zap.Stringer("op", op), zap.String("root", root))
	logger.Info("session started")
	e.emit(s, Event{Kind: EventStarted})

	network := isNetworkLocation(e.store, root)
	go func() {
		res := run(sctx, func(p Progress) {
			s.observe(p)
			e.emit(s, Event{Kind: EventProgress, Progress: p})
		})
		res.SessionID = s.ID
		res.Network = network
		res.Duration = timeNow().Sub(s.Started)
		s.finish(res)
		logger.Info("session finished", zap.Stringer("status", res.Status), zap.Int("folders", res.FoldersVisited), zap.Int("errors", len(res.Errors)))
		e.emit(s, Event{Kind: EventCompleted, Result: &res})

		e.mu.Lock()
		if e.active == s {
			e.active = nil
		}
		e.mu.Unlock()
	}()
	return s, nil
}

// supersede cancels the active session and waits a bounded time for it to
// end. Its remaining events are dropped either way. Callers hold e.mu.
func (e *Engine) supersede() {
	prev := e.active
	if prev == nil {
		return
	}
	prev.superseded.Store(true)
	prev.Cancel()
	select {
	case <-prev.Done():
	case <-time.After(e.opts.supersedeWait):
		e.opts.logger.Warn("superseded session is still running", zap.Stringer("session", prev.ID))
	}
	e.active = nil
}

func (e *Engine) emit(s *Session, event Event) {
	if e.opts.listener == nil || s.superseded.Load() {
		return
	}
	event.SessionID = s.ID
	event.Op = s.Op
	event.Root = s.Root
	e.opts.listener(event)
}

func (e *Engine) validateRoot(ctx context.Context, root string) error {
	if strings.TrimSpace(root) == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidRoot)
	}
	fi, err := e.store.Stat(ctx, root)
	if err == nil {
		if !fi.IsDir() {
			return fmt.Errorf("%w: %s is not a directory", ErrInvalidRoot, root)
		}
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s does not exist", ErrInvalidRoot, root)
	}
	// Some servers cannot stat a directory; a readable listing is proof enough.
	if _, _, listErr := files.ReadDirLimit(ctx, e.store, root, 1); listErr == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %v", ErrInvalidRoot, root, err)
}
