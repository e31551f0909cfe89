package sysmonitor

import (
	"io/fs"
	"os"
)

// FileSystem abstracts reads of the cgroup control files.
type FileSystem interface {
	ReadFile(name string) ([]byte, error)
	Open(name string) (fs.File, error)
}

// OSFileSystem implements FileSystem using the os package
type OSFileSystem struct{}

func (OSFileSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

func (OSFileSystem) Open(name string) (fs.File, error) {
	return os.Open(name)
}

// setFileSystem replaces the file system cgroup readers use and returns
// a restore function.
func setFileSystem(fsys FileSystem) func() {
	prev := loadFileSystem()
	fileSystem.Store(fileSystemHolder{fs: fsys})
	return func() {
		fileSystem.Store(fileSystemHolder{fs: prev})
	}
}
