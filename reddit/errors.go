package reddit

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNoResults is returned when a search page has no result group.
	ErrNoResults = errors.New("no search results")

	// ErrMissingDate is returned for an entry without a timestamp when
	// Config.RequireDate is set.
	ErrMissingDate = errors.New("entry has no timestamp")
)

// FetchError describes a failed page fetch. StatusCode is zero when no
// response was received.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetching %s: HTTP %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Temporary reports whether retrying the fetch could succeed.
func (e *FetchError) Temporary() bool {
	return e.StatusCode == 0 ||
		e.StatusCode == http.StatusTooManyRequests ||
		e.StatusCode >= http.StatusInternalServerError
}
