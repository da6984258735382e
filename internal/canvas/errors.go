// Package canvas provides the Canvas LMS REST client: bearer-token JSON
// endpoints for courses, assignments, submissions, files, folders, users,
// calendar and colors, plus streaming file download and the two-step
// submission file upload.
package canvas

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for HTTP status classification.
// Use errors.Is(err, canvas.ErrUnauthorized) to check.
var (
	ErrBadRequest   = errors.New("canvas: bad request")
	ErrUnauthorized = errors.New("canvas: unauthorized")
	ErrForbidden    = errors.New("canvas: forbidden")
	ErrNotFound     = errors.New("canvas: not found")
	ErrThrottled    = errors.New("canvas: throttled")
	ErrServerError  = errors.New("canvas: server error")
)

// ErrSubmissionRejected is returned when the submission upload endpoint
// answers with an application-level error message instead of upload
// parameters.
var ErrSubmissionRejected = errors.New("canvas: submission upload rejected")

// APIError wraps a sentinel error with the HTTP status code and the response
// body for debugging.
type APIError struct {
	StatusCode int
	Message    string
	Err        error // sentinel, for errors.Is()
}

func (e *APIError) Error() string {
	return fmt.Sprintf("canvas: HTTP %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// classifyStatus maps an HTTP status code to a sentinel error.
// Returns nil for 2xx success codes.
func classifyStatus(code int) error {
	switch code {
	case http.StatusBadRequest:
		return ErrBadRequest
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusTooManyRequests:
		return ErrThrottled
	default:
		if code >= http.StatusInternalServerError {
			return ErrServerError
		}

		return nil
	}
}
