package cases

import (
	"io"
	"io/fs"
	"os"
)

// FileSystem abstracts the file system operations used by the test cases.
type FileSystem interface {
	Stat(name string) (fs.FileInfo, error)
	// ReadDir returns the directory entries in file system order.
	ReadDir(name string) ([]fs.DirEntry, error)
	Create(name string) (io.WriteCloser, error)
	Remove(name string) error
}

// OSFileSystem implements FileSystem using the os package.
type OSFileSystem struct{}

var _ FileSystem = OSFileSystem{}

func (OSFileSystem) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

// ReadDir reads the directory without sorting, unlike os.ReadDir.
func (OSFileSystem) ReadDir(name string) ([]fs.DirEntry, error) {
	dir, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer dir.Close()
	return dir.ReadDir(-1)
}

func (OSFileSystem) Create(name string) (io.WriteCloser, error) {
	return os.Create(name)
}

func (OSFileSystem) Remove(name string) error {
	return os.Remove(name)
}

// exists reports whether name can be stat'ed. Any stat error counts as absent.
func exists(fsys FileSystem, name string) bool {
	_, err := fsys.Stat(name)
	return err == nil
}
