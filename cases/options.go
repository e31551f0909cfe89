package cases

import (
	"crypto/rand"
	"io"
	"time"

	"github.com/reugn/go-smoke/internal/sysmonitor"
)

// MemoryReader returns the memory available to the process in bytes.
type MemoryReader func() (uint64, error)

type options struct {
	fs       FileSystem
	clock    func() time.Time
	memory   MemoryReader
	random   io.Reader
	fileName string
}

func defaultOptions() options {
	return options{
		fs:       OSFileSystem{},
		clock:    time.Now,
		memory:   sysmonitor.AvailableMemory,
		random:   rand.Reader,
		fileName: DefaultRandomFileName,
	}
}

// Option customizes the collaborators of a test case.
type Option func(*options)

// WithFileSystem sets the file system the test case operates on.
func WithFileSystem(fsys FileSystem) Option {
	return func(o *options) {
		if fsys != nil {
			o.fs = fsys
		}
	}
}

// WithClock sets the time source.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithMemoryReader sets the available memory source.
func WithMemoryReader(reader MemoryReader) Option {
	return func(o *options) {
		if reader != nil {
			o.memory = reader
		}
	}
}

// WithRandom sets the source of the random file content.
func WithRandom(r io.Reader) Option {
	return func(o *options) {
		if r != nil {
			o.random = r
		}
	}
}

// WithFileName sets the path of the file written by RandomFile.
func WithFileName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.fileName = name
		}
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
