package posts

import (
	"errors"
	"fmt"
)

// Sentinel errors for classifying fetch failures.
var (
	// ErrUnexpectedStatus indicates the server answered with a non-2xx status.
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")

	// ErrTransport indicates the request never produced a response.
	ErrTransport = errors.New("request failed")

	// ErrDecode indicates the response body was not a JSON array of posts.
	ErrDecode = errors.New("decoding posts")
)

// StatusError carries the HTTP status code of a non-2xx response.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %d", ErrUnexpectedStatus.Error(), e.Code)
}

// Unwrap lets errors.Is match ErrUnexpectedStatus.
func (e *StatusError) Unwrap() error {
	return ErrUnexpectedStatus
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code
	}
	return 0
}
