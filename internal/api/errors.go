package api

import "fmt"

// NetworkError reports a transport failure: the endpoint was never reached
// or the response could not be read.
type NetworkError struct {
	Endpoint string
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.Endpoint, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// APIError reports a non-success status. Message holds the server-supplied
// explanation when the body carried one.
type APIError struct {
	Endpoint string
	Status   int
	Message  string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s returned status %d: %s", e.Endpoint, e.Status, e.Message)
	}
	return fmt.Sprintf("%s returned status %d", e.Endpoint, e.Status)
}

// MalformedResponseError reports a success status whose body lacks an
// expected field.
type MalformedResponseError struct {
	Endpoint string
	Field    string
	Err      error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: malformed response: %v", e.Endpoint, e.Err)
	}
	return fmt.Sprintf("%s: response is missing %q", e.Endpoint, e.Field)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}
