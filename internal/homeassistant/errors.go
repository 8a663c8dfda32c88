package homeassistant

import (
	"errors"
	"fmt"
)

// ErrNoToken is returned for every query when no Supervisor token is configured.
var ErrNoToken = errors.New("supervisor token not configured")

// ErrResponseTooLarge is returned when a Supervisor response exceeds the
// client's body limit. It is not retried.
var ErrResponseTooLarge = errors.New("response body too large")

// ErrNoPatterns is returned by NewDeviceSource when every pattern is blank.
var ErrNoPatterns = errors.New("no usable entity pattern")

// QueryError reports a failed upstream status query.
type QueryError struct {
	Endpoint string
	Status   int
	Cause    error
}

func (e *QueryError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("UPSTREAM_QUERY: GET %s: status %d: %v", e.Endpoint, e.Status, e.Cause)
	}
	return fmt.Sprintf("UPSTREAM_QUERY: GET %s: %v", e.Endpoint, e.Cause)
}

func (e *QueryError) Unwrap() error {
	return e.Cause
}
