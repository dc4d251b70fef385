package remote

import (
	"errors"
	"fmt"
)

// ErrMissingID is reported when a write succeeded on the transport level but
// the response does not echo the record id.
var ErrMissingID = errors.New("response is missing the record id")

// FetchError is returned when a list request fails
type FetchError struct {
	Path       string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.Path, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.Path, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// PatchError is returned when a write request fails or is not confirmed
type PatchError struct {
	Path       string
	ID         string
	StatusCode int
	Err        error
}

func (e *PatchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("patch %s (id %s): unexpected status %d", e.Path, e.ID, e.StatusCode)
	}
	return fmt.Sprintf("patch %s (id %s): %v", e.Path, e.ID, e.Err)
}

func (e *PatchError) Unwrap() error {
	return e.Err
}
