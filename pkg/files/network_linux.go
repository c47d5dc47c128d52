package files

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

const mountsFile = "/proc/self/mounts"

var networkFSTypes = map[string]bool{
	"nfs":         true,
	"nfs4":        true,
	"cifs":        true,
	"smb3":        true,
	"smbfs":       true,
	"sshfs":       true,
	"fuse.sshfs":  true,
	"9p":          true,
	"afs":         true,
	"ceph":        true,
	"glusterfs":   true,
	"davfs":       true,
	"fuse.rclone": true,
}

var readMounts = func() (string, error) {
	data, err := os.ReadFile(mountsFile)
	return string(data), err
}

func isRemoteMount(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	mounts, err := readMounts()
	if err != nil {
		return false
	}
	return networkFSTypes[mountFSType(mounts, abs)]
}

// mountFSType returns the file system type of the longest mount point containing path.
func mountFSType(mounts, path string) (fsType string) {
	var best string
	scanner := bufio.NewScanner(strings.NewReader(mounts))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 3 {
			continue
		}
		mountPoint := unescapeMountPoint(fields[1])
		if !isUnder(path, mountPoint) || len(mountPoint) < len(best) {
			continue
		}
		best = mountPoint
		fsType = fields[2]
	}
	return fsType
}

func isUnder(path, mountPoint string) bool {
	if mountPoint == "/" {
		return true
	}
	return path == mountPoint || strings.HasPrefix(path, mountPoint+"/")
}

// unescapeMountPoint decodes the octal escapes used by the kernel for spaces and tabs.
func unescapeMountPoint(s string) string {
	r := strings.NewReplacer(`\040`, " ", `\011`, "\t", `\012`, "\n", `\134`, `\`)
	return r.Replace(s)
}
