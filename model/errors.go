package model

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidLevel    = errors.New("invalid level")
	ErrInvalidObserver = errors.New("invalid observer")
	ErrClosed          = errors.New("closed")
)

// UnknownBackendError reports a kind with no registered constructor.
type UnknownBackendError struct{ Kind string }

func (e *UnknownBackendError) Error() string {
	return fmt.Sprintf("unknown backend ( %s )", e.Kind)
}

// ConnectError reports a failure to establish a backend channel.
type ConnectError struct {
	Backend string
	Err     error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("connect ( %s ) failed ( %s )", e.Backend, e.Err.Error())
}
func (e *ConnectError) Unwrap() error { return e.Err }

// WriteError reports a failure to deliver a message to a sink.
type WriteError struct {
	Backend string
	Err     error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write ( %s ) failed ( %s )", e.Backend, e.Err.Error())
}
func (e *WriteError) Unwrap() error { return e.Err }
