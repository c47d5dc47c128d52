package explorer

import (
	"strconv"
	"time"
)

// FileRecord is one matching file found by a scan.
type FileRecord struct {
	Name     string    `json:"name" yaml:"name"`
	Path     string    `json:"path" yaml:"path"`
	Ext      string    `json:"ext" yaml:"ext"`
	Size     int64     `json:"size" yaml:"size"`
	Modified time.Time `json:"modified" yaml:"modified"`
	Category string    `json:"category" yaml:"category"`
}

type CountState int

const (
	CountExact CountState = iota
	CountAtLeast
	CountUnknown
)

// Count is a child count of a listed folder. Counting stops at a cap, so a
// count may be a lower bound or unknown when the folder is unreadable.
type Count struct {
	N     int
	State CountState
}

func (c Count) String() string {
	switch c.State {
	case CountAtLeast:
		return strconv.Itoa(c.N) + "+"
	case CountUnknown:
		return "?"
	default:
		return strconv.Itoa(c.N)
	}
}

// FolderSummary describes an immediate subdirectory of a listed folder.
type FolderSummary struct {
	Name     string
	Path     string
	Modified time.Time
	Dirs     Count
	Files    Count
}

// Describe renders the counts the way the folder browser shows them.
func (f FolderSummary) Describe() string {
	switch {
	case f.Dirs.State == CountUnknown && f.Files.State == CountUnknown:
		return "Access denied"
	case f.Dirs.State == CountUnknown || f.Files.State == CountUnknown:
		return "Access limited"
	}
	return f.Dirs.String() + " folders, " + f.Files.String() + " files"
}

type LargeFolder struct {
	Path      string `json:"path" yaml:"path"`
	FileCount int    `json:"file_count" yaml:"file_count"`
}

// DiagnosisReport summarises a bounded sample of a tree.
//
// EstimatedScanTime extrapolates the sample linearly and assumes every folder
// costs about the same to read. Trees with a few huge or slow folders break
// that assumption, so the value is an approximation only.
type DiagnosisReport struct {
	Root              string         `json:"path" yaml:"path"`
	IsNetwork         bool           `json:"is_network" yaml:"is_network"`
	Accessible        bool           `json:"accessible" yaml:"accessible"`
	TotalFolders      int            `json:"total_folders" yaml:"total_folders"`
	TotalFiles        int            `json:"total_files" yaml:"total_files"`
	FileTypes         map[string]int `json:"file_types" yaml:"file_types"`
	LargeFolders      []LargeFolder  `json:"large_folders" yaml:"large_folders"`
	LargeFolderLimit  int            `json:"large_folder_threshold" yaml:"large_folder_threshold"`
	Errors            []string       `json:"errors" yaml:"errors"`
	SampleSize        int            `json:"sample_size" yaml:"sample_size"`
	SampleComplete    bool           `json:"sample_complete" yaml:"sample_complete"`
	Elapsed           time.Duration  `json:"elapsed" yaml:"elapsed"`
	EstimatedScanTime time.Duration  `json:"estimated_scan_time" yaml:"estimated_scan_time"`
	CompletedAt       time.Time      `json:"completed_at" yaml:"completed_at"`
}
