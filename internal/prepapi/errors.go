package prepapi

import (
	"encoding/json"
	"fmt"
)

// ErrStatus indicates the service answered with a non-2xx status code.
type ErrStatus struct {
	Endpoint   string
	StatusCode int
	Detail     string
}

func (e *ErrStatus) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: HTTP %d: %s", e.Endpoint, e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("%s: HTTP %d", e.Endpoint, e.StatusCode)
}

// ErrUnavailable indicates the service could not be reached.
type ErrUnavailable struct {
	Endpoint string
	Err      error
}

func (e *ErrUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("analysis service unavailable (%s): %v", e.Endpoint, e.Err)
	}
	return fmt.Sprintf("analysis service unavailable (%s)", e.Endpoint)
}

func (e *ErrUnavailable) Unwrap() error { return e.Err }

// ErrInvalidResponse indicates a 2xx body that is not valid JSON or does
// not conform to the endpoint's schema.
type ErrInvalidResponse struct {
	Endpoint string
	Content  json.RawMessage
	Err      error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid response from %s: %v", e.Endpoint, e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }
