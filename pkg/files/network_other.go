//go:build !linux && !windows

package files

func isRemoteMount(_ string) bool {
	return false
}
