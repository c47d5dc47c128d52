package explorer

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Session is one background traversal. The caller may cancel it and wait for
// its Result; everything else belongs to the worker.
type Session struct {
	ID      uuid.UUID
	Op      Op
	Root    string
	Started time.Time

	cancel     context.CancelFunc
	done       chan struct{}
	result     Result
	visited    atomic.Int64
	superseded atomic.Bool
}

func newSession(op Op, root string, cancel context.CancelFunc) *Session {
	return &Session{
		ID:      uuid.New(),
		Op:      op,
		Root:    root,
		Started: timeNow(),
		cancel:  cancel,
		done:    make(chan struct{}),
	}
}

// Cancel asks the worker to stop before the next directory. It is safe to
// call more than once and after completion.
func (s *Session) Cancel() {
	s.cancel()
}

func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Wait blocks until the session ends and returns its result.
func (s *Session) Wait() Result {
	<-s.done
	return s.result
}

// Result returns the result if the session has ended.
func (s *Session) Result() (Result, bool) {
	select {
	case <-s.done:
		return s.result, true
	default:
		return Result{}, false
	}
}

// FoldersVisited never decreases while the session runs.
func (s *Session) FoldersVisited() int {
	return int(s.visited.Load())
}

func (s *Session) observe(p Progress) {
	for {
		current := s.visited.Load()
		if int64(p.FoldersVisited) <= current || s.visited.CompareAndSwap(current, int64(p.FoldersVisited)) {
			return
		}
	}
}

func (s *Session) finish(res Result) {
	s.result = res
	s.cancel()
	close(s.done)
}
