package explorer

import (
	"errors"
	"fmt"
	"io/fs"
)

// ErrInvalidRoot is returned synchronously when the root to explore is empty,
// missing, not a directory or not reachable at all.
var ErrInvalidRoot = errors.New("invalid root")

// describeSkip turns a directory enumeration failure into a report line.
func describeSkip(dir string, err error) string {
	if errors.Is(err, fs.ErrPermission) {
		return "Access denied: " + dir
	}
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		err = pathErr.Err
	}
	return fmt.Sprintf("Cannot read %s: %v", dir, err)
}
