package rest

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedRequest reports a request that could not be built at all,
	// e.g. from an invalid URL.
	ErrMalformedRequest = errors.New("malformed request")

	// ErrCancelled reports a call superseded before it completed. Callers
	// suppress it from user-visible surfaces but still release any
	// fetching guards they hold.
	ErrCancelled = errors.New("call cancelled")
)

// StatusError reports an HTTP status outside [200,300).
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("http status %d", e.Code)
}

// TransportError reports a connection-level failure.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError reports a 2xx response whose body failed to parse.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
