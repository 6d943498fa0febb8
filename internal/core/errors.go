package core

import (
	"errors"
	"io/fs"
)

// SetupError is returned for anything that keeps the server from starting:
// bad arguments, an unreadable dictionary, a socket that can't be bound, etc.
type SetupError struct {
	Op  string
	Err error
}

func (e *SetupError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *SetupError) Unwrap() error { return e.Err }

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
