package source

import (
	"errors"
	"fmt"
)

// ErrUnknownMode is returned when a listing mode is not offered by the source.
var ErrUnknownMode = errors.New("unknown listing mode")

// ErrEmpty matches every EmptyResultError with errors.Is.
var ErrEmpty = errors.New("empty result")

// TransportError is an upstream failure at the HTTP level: a non-success status or a network error.
type TransportError struct {
	// Status is 0 for network errors.
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("HTTP %d", e.Status)
	}
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ApplicationError is a failure reported in the upstream envelope, e.g. a non-zero code.
type ApplicationError struct {
	Source  string
	Message string
}

func (e *ApplicationError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "request failed"
	}
	if e.Source == "" {
		return msg
	}
	return e.Source + ": " + msg
}

// EmptyResultError means the upstream answered successfully with nothing usable.
type EmptyResultError struct {
	What string
}

func (e *EmptyResultError) Error() string {
	if e.What == "" {
		return "no data found"
	}
	return e.What
}

func (e *EmptyResultError) Is(target error) bool {
	return target == ErrEmpty
}

// Messages of EmptyResultError.
const (
	NoData            = "no data found"
	NoEpisodes        = "no episodes"
	StreamUnavailable = "stream unavailable"
)
