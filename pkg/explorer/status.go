package explorer

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Op int

const (
	OpScan Op = iota
	OpDiagnosis
	OpListing
)

func (op Op) String() string {
	switch op {
	case OpScan:
		return "scan"
	case OpDiagnosis:
		return "diagnosis"
	case OpListing:
		return "listing"
	default:
		return fmt.Sprintf("op(%d)", int(op))
	}
}

// Status is the terminal outcome of a session.
type Status int

const (
	StatusCompleted Status = iota
	StatusCancelled
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusCompleted:
		return "completed"
	case StatusCancelled:
		return "cancelled"
	case StatusError:
		return "error"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Result is handed to the caller once a session ends; the worker no longer
// touches it afterwards.
type Result struct {
	SessionID uuid.UUID
	Op        Op
	Root      string
	Network   bool
	Status    Status
	// Err is set for StatusError only.
	Err error
	// Errors lists every non-fatal problem met during the traversal.
	Errors         []string
	Records        []FileRecord
	Report         *DiagnosisReport
	Folders        []FolderSummary
	FoldersVisited int
	FilesSeen      int
	Duration       time.Duration
}

// StatusText renders the terminal status: completed, cancelled or "error: <message>".
func (r Result) StatusText() string {
	if r.Status == StatusError && r.Err != nil {
		return "error: " + r.Err.Error()
	}
	return r.Status.String()
}

func (r Result) locationKind() string {
	if r.Network {
		return "Network"
	}
	return "Local"
}

// Summary is a one-line status message for a status bar.
func (r Result) Summary() string {
	if r.Status == StatusError {
		return r.StatusText()
	}
	switch r.Op {
	case OpScan:
		if r.Status == StatusCancelled {
			return fmt.Sprintf("Scan stopped by user. Found %d matching files.", len(r.Records))
		}
		return fmt.Sprintf("%s scan complete. Found %d matching files.", r.locationKind(), len(r.Records))
	case OpListing:
		if r.Status == StatusCancelled {
			return fmt.Sprintf("Folder loading stopped. Found %d folders.", len(r.Folders))
		}
		return fmt.Sprintf("%s folders loaded: %d folders found", r.locationKind(), len(r.Folders))
	case OpDiagnosis:
		if r.Status == StatusCancelled {
			return fmt.Sprintf("Diagnosis stopped after %d folders.", r.FoldersVisited)
		}
		return fmt.Sprintf("Diagnosis complete: %d folders, %d files sampled.", r.FoldersVisited, r.FilesSeen)
	}
	return r.StatusText()
}

func statusOf(ctxErr error) Status {
	if ctxErr != nil {
		return StatusCancelled
	}
	return StatusCompleted
}
