package pipeline

import (
	"errors"
	"fmt"
)

// ErrInvalidInput means the message text carries no recognized link marker.
// No network call is made for such requests.
var ErrInvalidInput = errors.New("no recognized link in message")

// ResolutionError means metadata could not be resolved for a URL. Terminal
// for the request.
type ResolutionError struct {
	URL string
	Err error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolve %s: %v", e.URL, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// FetchError means a required rendition download failed. Terminal for the
// request; Asset is "video" or "audio".
type FetchError struct {
	Asset string
	Err   error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Asset, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
