package explorer

import (
	"github.com/google/uuid"
)

type EventKind int

const (
	EventStarted EventKind = iota
	EventProgress
	EventCompleted
)

func (k EventKind) String() string {
	switch k {
	case EventStarted:
		return "started"
	case EventProgress:
		return "progress"
	case EventCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Progress is a liveness snapshot of a running session.
type Progress struct {
	Dir            string
	FoldersVisited int
	FilesSeen      int
	Matched        int
	Message        string
}

type Event struct {
	Kind      EventKind
	SessionID uuid.UUID
	Op        Op
	Root      string
	Progress  Progress
	// Result is set on EventCompleted.
	Result *Result
}

// Listener receives session events on the worker goroutine. Events of a
// session that has been superseded by a newer one are not delivered.
type Listener func(Event)

type progressFunc func(Progress)
