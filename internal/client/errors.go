package client

import (
	"errors"
	"fmt"
)

var (
	// ErrNoToken is returned before any request is issued when an
	// authenticated call is attempted without an access token.
	ErrNoToken = errors.New("no access token")

	// ErrBadResponse marks a backend reply whose shape does not match the
	// endpoint's contract (missing data, wrong types, created entity
	// without an id). Distinct from a backend-reported failure.
	ErrBadResponse = errors.New("malformed backend response")
)

// BackendError carries the server-provided failure message so handlers can
// surface it to the user verbatim.
type BackendError struct {
	Status  int
	Message string
}

func (e *BackendError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend request failed with status %d", e.Status)
}
