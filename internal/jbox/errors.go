// Package jbox provides the client for the JBox object-storage service:
// SSO-code login, personal space discovery, directory creation, and the
// multipart chunked uploader.
package jbox

import (
	"errors"
	"fmt"
)

// ErrLogin is returned when the cookie-to-token exchange cannot establish a
// valid session: no one-time code in the redirect, a non-zero login status,
// or a token of the wrong width.
var ErrLogin = errors.New("jbox: login failed")

// ServiceError is an application-level failure reported in an otherwise
// successful response: a non-zero status plus the service's code/message
// pair.
type ServiceError struct {
	Status  int
	Code    string
	Message string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("jbox: %s (status %d, code %q)", e.Message, e.Status, e.Code)
}

// HTTPError is a non-2xx transport-level response.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("jbox: HTTP %d: %s", e.StatusCode, e.Body)
}
