package walker

import (
	"context"
)

// Logger is the subset of logging used by the walker.
type Logger interface {
	Debug(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// IgnorePredicate decides whether a path should be excluded from the
// walk. It receives an absolute, slash-separated path. Returning true
// for a directory prunes the whole subtree.
type IgnorePredicate func(absPath string, isDir bool) bool

// WalkOptions configures the behavior of the Walk function
type WalkOptions struct {
	Logger  Logger
	Ignore  IgnorePredicate
	Context context.Context
}

// defaultOptions returns the default walk options
func defaultOptions() WalkOptions {
	return WalkOptions{
		Logger:  nopLogger{},
		Ignore:  nil,
		Context: context.Background(),
	}
}

// Option is a functional option for configuring WalkOptions
type Option func(*WalkOptions)

// WithLogger sets a custom logger for the walker
func WithLogger(logger Logger) Option {
	return func(opts *WalkOptions) {
		if logger != nil {
			opts.Logger = logger
		}
	}
}

// WithIgnore sets the predicate used to exclude paths from the walk.
func WithIgnore(pred IgnorePredicate) Option {
	return func(opts *WalkOptions) {
		opts.Ignore = pred
	}
}

// WithContext sets the context for cancellation
func WithContext(ctx context.Context) Option {
	return func(opts *WalkOptions) {
		if ctx != nil {
			opts.Context = ctx
		}
	}
}
