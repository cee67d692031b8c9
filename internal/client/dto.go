package client

import (
	"errors"
	"net/http"
)

type APIError struct {
	StatusCode int
	Message    string
}

func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}

// IsNotFound reports whether err is a 404 from the store.
func IsNotFound(err error) bool {
	apiErr := AsAPIError(err)
	return apiErr != nil && apiErr.StatusCode == http.StatusNotFound
}

type SessionContextResponse struct {
	Context string `json:"context"`
}
