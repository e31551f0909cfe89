package cases

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	smoke "github.com/reugn/go-smoke"
)

// ErrOddTimestamp is returned by FileList.Prep when the current Unix
// time in seconds is odd.
var ErrOddTimestamp = errors.New("Divisibility by 2: False")

// FileList lists the regular files of a directory.
// Its prep phase only passes on even seconds.
type FileList struct {
	smoke.Base
	dir   string
	fs    FileSystem
	clock func() time.Time
}

var _ smoke.TestCase = (*FileList)(nil)

// NewFileList returns a new FileList test case for the given directory.
// Supported options: WithFileSystem, WithClock.
func NewFileList(dir string, logger smoke.Logger, opts ...Option) *FileList {
	o := applyOptions(opts)
	return &FileList{
		Base:  smoke.NewBase("01", "file_list", logger),
		dir:   dir,
		fs:    o.fs,
		clock: o.clock,
	}
}

// Dir returns the target directory.
func (f *FileList) Dir() string {
	return f.dir
}

// Prep requires the current time, in whole seconds since the Unix epoch,
// to be even.
func (f *FileList) Prep() error {
	_ = f.Base.Prep()

	seconds := f.clock().Unix()
	f.Logger().Debug(fmt.Sprintf("Seconds since epoch (int) = %d", seconds))
	if seconds%2 != 0 {
		return ErrOddTimestamp
	}
	f.Logger().Debug("Divisibility by 2: True")
	return nil
}

// Run lists the regular files of the target directory. A missing target
// directory fails the test.
func (f *FileList) Run() (bool, error) {
	_, _ = f.Base.Run()

	info, err := f.fs.Stat(f.dir)
	if err != nil || !info.IsDir() {
		f.Logger().Error(fmt.Sprintf("Directory '%s' does not exist", f.dir))
		return false, nil
	}

	files, err := ListFiles(f.fs, f.dir)
	if err != nil {
		return false, err
	}
	f.Logger().Debug(fmt.Sprintf("List of files in the '%s' directory", f.dir),
		"files", files)
	return true, nil
}

// CleanUp does nothing.
func (f *FileList) CleanUp() error {
	return nil
}

// ListFiles returns the names of the regular files directly under dir, in
// the order the file system enumerates them. Symbolic links are followed;
// directories and other non-regular entries are skipped.
func ListFiles(fsys FileSystem, dir string) ([]string, error) {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		mode := entry.Type()
		if mode&fs.ModeSymlink != 0 {
			info, err := fsys.Stat(filepath.Join(dir, entry.Name()))
			if err != nil {
				continue
			}
			mode = info.Mode().Type()
		}
		if mode.IsRegular() {
			files = append(files, entry.Name())
		}
	}
	return files, nil
}
