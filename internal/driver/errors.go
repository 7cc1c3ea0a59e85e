package driver

import (
	"errors"
	"fmt"
)

// ErrNoSourceFiles: the given paths contain nothing with a known extension.
var ErrNoSourceFiles = errors.New("no source files found")

// IOError is a read or write failure. The CLI maps it to exit code 74.
type IOError struct {
	Op   string // "read", "write", "stat", "walk"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// IsIOError reports whether err is, or wraps, an *IOError.
func IsIOError(err error) bool {
	var ioErr *IOError
	return errors.As(err, &ioErr)
}
