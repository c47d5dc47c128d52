package files

import (
	"path/filepath"

	"golang.org/x/sys/windows"
)

var getDriveType = windows.GetDriveType

func isRemoteMount(path string) bool {
	volume := filepath.VolumeName(path)
	if volume == "" {
		return false
	}
	root, err := windows.UTF16PtrFromString(volume + `\`)
	if err != nil {
		return false
	}
	return getDriveType(root) == windows.DRIVE_REMOTE
}
