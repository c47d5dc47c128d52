package files

import (
	"os"
	"path/filepath"
)

func NewDirEntry(name string, isDir bool, o ...FileInfoOption) DirEntry {
	if parent, _ := filepath.Split(name); parent != "" {
		// It's OK to have panic here.
		panic("dir entry name can not have path: " + name)
	}
	dirEntry := DirEntry{
		name:  name,
		isDir: isDir,
	}
	if len(o) > 0 {
		dirEntry.info = NewFileInfo(dirEntry, o...)
	}
	return dirEntry
}

var _ os.DirEntry = (*DirEntry)(nil)

type DirEntry struct {
	name    string
	isDir   bool
	symlink bool
	info    *FileInfo
}

// NewSymlinkEntry creates an entry for a symbolic link; links are never reported as directories.
func NewSymlinkEntry(name string, o ...FileInfoOption) DirEntry {
	entry := NewDirEntry(name, false)
	entry.symlink = true
	if len(o) > 0 {
		entry.info = NewFileInfo(entry, o...)
	}
	return entry
}

func (d DirEntry) Name() string { return d.name }
func (d DirEntry) IsDir() bool  { return d.isDir }
func (d DirEntry) Type() os.FileMode {
	switch {
	case d.isDir:
		return os.ModeDir
	case d.symlink:
		return os.ModeSymlink
	}
	return 0
}
func (d DirEntry) Info() (os.FileInfo, error) {
	if d.info == nil {
		return nil, nil
	}
	return d.info, nil
}
