package flightdb

import (
	"github.com/spf13/afero"
)

// MalformedPolicy decides what Load does with a line that does not hold a
// valid record.
type MalformedPolicy uint8

const (
	// StopAtMalformed stops reading at the first malformed line, the lines
	// after it are not loaded even if they are valid.
	StopAtMalformed MalformedPolicy = iota
	// SkipMalformed skips malformed lines and keeps reading.
	SkipMalformed
)

func (p MalformedPolicy) String() string {
	switch p {
	case StopAtMalformed:
		return "stop"
	case SkipMalformed:
		return "skip"
	}

	return "unknown"
}

type options struct {
	// The file system to access. The default file system is implemented by os package.
	fs FileSystem

	// What to do with malformed lines while loading. The default is StopAtMalformed.
	malformed MalformedPolicy

	logger Logger
}

func defaultOptions() *options {
	return &options{
		fs:        afero.NewOsFs(),
		malformed: StopAtMalformed,
		logger:    &nopLogger{},
	}
}

type Option interface {
	apply(*options)
}

type funcOption struct {
	fn func(*options)
}

func (funcOpt funcOption) apply(o *options) {
	funcOpt.fn(o)
}

func newFuncOption(fn func(*options)) *funcOption {
	return &funcOption{
		fn: fn,
	}
}

// WithFileSystem set the file system to access.
func WithFileSystem(fs FileSystem) Option {
	return newFuncOption(func(o *options) {
		o.fs = fs
	})
}

// WithMalformedPolicy set how Load handles malformed lines.
func WithMalformedPolicy(policy MalformedPolicy) Option {
	return newFuncOption(func(o *options) {
		o.malformed = policy
	})
}

// WithLogger set the logger, a nil logger disables logging.
func WithLogger(logger Logger) Option {
	return newFuncOption(func(o *options) {
		if logger == nil {
			logger = &nopLogger{}
		}
		o.logger = logger
	})
}
