package ikb

import (
	"errors"
	"fmt"
)

// ErrNetwork indicates a transport-level failure (timeout, DNS, reset).
// Check with errors.Is(); the wrapped error carries the transport detail.
var ErrNetwork = errors.New("network error")

// UpstreamError is returned for any non-2xx response from the API.
// Status is the HTTP status text as received.
type UpstreamError struct {
	StatusCode int
	Status     string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream API error: %s", e.Status)
}
