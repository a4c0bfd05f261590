package catalog

import "fmt"

// NetworkError reports a transport-level failure: the request could not be
// sent, timed out, or came back with a non-2xx status. It is terminal for the
// fetch; callers surface it and do not retry.
type NetworkError struct {
	Endpoint string
	Status   int // 0 when the request never produced a response
	Err      error
}

func (e *NetworkError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("request to %s failed with status %d", e.Endpoint, e.Status)
	}
	return fmt.Sprintf("request to %s failed: %v", e.Endpoint, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// DataShapeError reports a response body that does not decode into the
// expected array or object shape.
type DataShapeError struct {
	Endpoint string
	Err      error
}

func (e *DataShapeError) Error() string {
	return fmt.Sprintf("unexpected response shape from %s: %v", e.Endpoint, e.Err)
}

func (e *DataShapeError) Unwrap() error { return e.Err }

// MissingFieldError reports a required nested field that was absent from an
// otherwise well-formed response.
type MissingFieldError struct {
	Endpoint string
	Field    string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("response from %s is missing required field %q", e.Endpoint, e.Field)
}
