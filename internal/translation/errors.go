package translation

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidResponse reports a non-2xx upstream status.
	ErrInvalidResponse = errors.New("got invalid response")

	// ErrFailedParsing reports a body that does not match the grammar of the
	// variant in use. It usually means the upstream format drifted and is
	// not worth retrying as-is.
	ErrFailedParsing = errors.New("failed parsing")
)

// StatusError carries the status code of a rejected response. It matches
// ErrInvalidResponse with errors.Is.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: status %d", ErrInvalidResponse, e.StatusCode)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrInvalidResponse
}

// TransportError wraps a failure below HTTP: DNS, connect, deadline expiry or
// an aborted body read.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "transport: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsInvalidResponse reports whether err stems from a non-2xx status.
func IsInvalidResponse(err error) bool {
	return errors.Is(err, ErrInvalidResponse)
}

// IsFailedParsing reports whether err stems from an unparseable body.
func IsFailedParsing(err error) bool {
	return errors.Is(err, ErrFailedParsing)
}

// IsTransport reports whether err is a TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
