package cases

import (
	"errors"
	"fmt"
	"io"

	smoke "github.com/reugn/go-smoke"
)

const (
	// DefaultRandomFileName is the name of the file written by RandomFile.
	DefaultRandomFileName = "random_data"
	// RequiredMemory is the minimum available memory for RandomFile, 1 GiB.
	RequiredMemory uint64 = 1 << 30
	// RequiredFileSize is the size of the random file, 1 MiB.
	RequiredFileSize int64 = 1 << 20
)

var (
	// ErrNotEnoughMemory is returned by RandomFile.Prep when less than
	// RequiredMemory is available.
	ErrNotEnoughMemory = errors.New("Not enough memory, requiered min. 1 GB")
	// ErrFileNotRemoved is returned by RandomFile.CleanUp when the file is
	// still present after removal.
	ErrFileNotRemoved = errors.New("File was not removed")
)

// RandomFile writes a file of random content and verifies its size.
type RandomFile struct {
	smoke.Base
	fileName         string
	requiredMemory   uint64
	requiredFileSize int64

	fs     FileSystem
	memory MemoryReader
	random io.Reader
}

var _ smoke.TestCase = (*RandomFile)(nil)

// NewRandomFile returns a new RandomFile test case.
// Supported options: WithFileSystem, WithMemoryReader, WithRandom, WithFileName.
func NewRandomFile(logger smoke.Logger, opts ...Option) *RandomFile {
	o := applyOptions(opts)
	return &RandomFile{
		Base:             smoke.NewBase("02", "random_file", logger),
		fileName:         o.fileName,
		requiredMemory:   RequiredMemory,
		requiredFileSize: RequiredFileSize,
		fs:               o.fs,
		memory:           o.memory,
		random:           o.random,
	}
}

// FileName returns the path of the random file.
func (r *RandomFile) FileName() string {
	return r.fileName
}

// Prep requires at least RequiredMemory bytes of available memory.
func (r *RandomFile) Prep() error {
	_ = r.Base.Prep()

	available, err := r.memory()
	if err != nil {
		return fmt.Errorf("failed to read available memory: %w", err)
	}
	r.Logger().Debug(fmt.Sprintf("RAM available for the process: %.2f GB",
		float64(available)/float64(1<<30)))
	if available < r.requiredMemory {
		return ErrNotEnoughMemory
	}
	return nil
}

// Run writes RequiredFileSize random bytes to the file and checks the
// resulting file size.
func (r *RandomFile) Run() (bool, error) {
	_, _ = r.Base.Run()

	if err := r.writeRandom(); err != nil {
		return false, err
	}

	info, err := r.fs.Stat(r.fileName)
	if err != nil {
		r.Logger().Debug("File check: file not found")
		return false, nil
	}
	r.Logger().Debug("File check: file found")

	if info.Size() != r.requiredFileSize {
		r.Logger().Debug("File size check: NOK", "size", info.Size())
		return false, nil
	}
	r.Logger().Debug("File size check: OK")
	return true, nil
}

func (r *RandomFile) writeRandom() error {
	file, err := r.fs.Create(r.fileName)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", r.fileName, err)
	}

	if _, err := io.CopyN(file, r.random, r.requiredFileSize); err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to write random data to %s: %w", r.fileName, err)
	}
	r.Logger().Debug("Random data written to the file")

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", r.fileName, err)
	}
	r.Logger().Debug("File closed")
	return nil
}

// CleanUp removes the file if present and verifies it is gone.
func (r *RandomFile) CleanUp() error {
	_ = r.Base.CleanUp()

	if !exists(r.fs, r.fileName) {
		return nil
	}
	if err := r.fs.Remove(r.fileName); err != nil {
		return fmt.Errorf("failed to remove %s: %w", r.fileName, err)
	}
	r.Logger().Debug("File removed")

	if exists(r.fs, r.fileName) {
		return ErrFileNotRemoved
	}
	return nil
}
