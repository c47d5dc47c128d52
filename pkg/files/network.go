package files

import (
	"strings"
)

// IsNetworkPath reports whether path is a UNC path or lives on a network mount.
func IsNetworkPath(path string) bool {
	if isUNCPath(path) {
		return true
	}
	return isRemoteMount(path)
}

func isUNCPath(path string) bool {
	return strings.HasPrefix(path, `\\`) || strings.HasPrefix(path, "//")
}
