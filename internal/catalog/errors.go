package catalog

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrFetch is wrapped by every failed catalog call: transport errors, non-2xx
// statuses and undecodable bodies are not told apart by callers.
var ErrFetch = errors.New("catalog: fetch failed")

// StatusError reports a non-2xx response.
type StatusError struct {
	URL    string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("catalog: %s returned %d %s", e.URL, e.Status, http.StatusText(e.Status))
}

// Is lets errors.Is(err, ErrFetch) match status failures.
func (e *StatusError) Is(target error) bool {
	return target == ErrFetch
}

// StatusCode extracts the HTTP status from err, or 0 when err carries none.
func StatusCode(err error) int {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Status
	}
	return 0
}
