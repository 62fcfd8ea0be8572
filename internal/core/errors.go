package core

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// HTTPError represents an HTTP error response.
type HTTPError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.URL)
}

// IsNotFound returns true if the error represents a 404 response.
func (e *HTTPError) IsNotFound() bool {
	return e.StatusCode == 404
}

// FetchError is returned when the feed could not be reached or answered
// with a non-success status.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the request failed because a deadline expired.
func (e *FetchError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(e.Err, &netErr) && netErr.Timeout()
}

// ParseError is returned when a feed response is not well-formed XML.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing feed response: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// UnsupportedModeError is returned for repository modes that have no resolver.
type UnsupportedModeError struct {
	Mode Mode
}

func (e *UnsupportedModeError) Error() string {
	return fmt.Sprintf("repository mode %q is not supported", e.Mode)
}
