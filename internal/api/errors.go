package api

import (
	"errors"
	"fmt"
)

// ErrMissingAPIKey is wrapped by the APIError returned when no key is configured.
var ErrMissingAPIKey = errors.New("missing api key")

// ErrResponseTooLarge is returned when a body exceeds the read cap.
var ErrResponseTooLarge = errors.New("response too large")

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
	cause      error
}

func (e *APIError) Error() string {
	if e.Endpoint == "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error %d on %s: %s", e.StatusCode, e.Endpoint, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.cause
}

// NewMissingKeyError reports that endpoint could not be called without a key.
func NewMissingKeyError(endpoint string) *APIError {
	return &APIError{
		StatusCode: 401,
		Message:    ErrMissingAPIKey.Error(),
		Endpoint:   endpoint,
		cause:      ErrMissingAPIKey,
	}
}
