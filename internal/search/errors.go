package search

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrCanceled is wrapped by every error caused by the caller aborting
	// the request.
	ErrCanceled = errors.New("request canceled")

	// ErrNoEndpoint is returned when no endpoint URL is configured.
	ErrNoEndpoint = errors.New("search endpoint not configured")

	// ErrResponseTooLarge is returned when a successful response body is
	// over the client's limit.
	ErrResponseTooLarge = errors.New("search response too large")
)

// StatusError reports a non-2xx response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("search endpoint returned %d", e.Code)
	}
	return fmt.Sprintf("search endpoint returned %d: %s", e.Code, e.Body)
}

// DecodeError reports a 2xx response whose body is not a list of records.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return "malformed search response: " + e.Err.Error() }

func (e *DecodeError) Unwrap() error { return e.Err }

// IsCancel reports whether err came from a cancelled request.
func IsCancel(err error) bool {
	return errors.Is(err, ErrCanceled)
}

// canceled wraps err so that both ErrCanceled and the original cause match.
func canceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %w", ErrCanceled, err)
	}
	return err
}
