package siteflow

import (
	"errors"
	"fmt"
)

type (
	// AuthError reports a failed credential exchange. Either Status and
	// Body carry the remote rejection, or Err carries the transport
	// failure that prevented the exchange
	AuthError struct {
		Err    error
		Body   string
		Status int
	}

	// APIError reports a non-2xx response from a forwarded call. The
	// remote body is carried verbatim; its semantics are not interpreted
	APIError struct {
		Method string
		Path   string
		Body   string
		Status int
	}
)

var ErrNoAccessToken = errors.New(
	"authentication response missing access token",
)

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("authentication failed: %s", e.Err)
	}
	return fmt.Sprintf("authentication failed: HTTP %d: %s",
		e.Status, e.Body)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

func (e *APIError) Error() string {
	return fmt.Sprintf("siteflow API error: %s %s: HTTP %d: %s",
		e.Method, e.Path, e.Status, e.Body)
}
