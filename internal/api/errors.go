package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// RequestError is returned for any non-2xx response from the backend.
// Its message is the response body text so callers can surface it verbatim.
type RequestError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
	RequestID  string
}

func (e *RequestError) Error() string {
	if body := strings.TrimSpace(e.Body); body != "" {
		return body
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// Detail includes method, path and request id for logs.
func (e *RequestError) Detail() string {
	if e.RequestID != "" {
		return fmt.Sprintf("%s %s: status=%d request_id=%s: %s", e.Method, e.Path, e.StatusCode, e.RequestID, e.Error())
	}
	return fmt.Sprintf("%s %s: status=%d: %s", e.Method, e.Path, e.StatusCode, e.Error())
}

// UnreachableError indicates the backend could not be reached at all.
type UnreachableError struct {
	Host string
	Err  error
}

func (e *UnreachableError) Error() string {
	if e == nil {
		return "unreachable"
	}
	if e.Host != "" {
		return fmt.Sprintf("backend unreachable at %s: %v", e.Host, e.Err)
	}
	return fmt.Sprintf("backend unreachable: %v", e.Err)
}

func (e *UnreachableError) Unwrap() error { return e.Err }

// IsStatus reports whether err is a RequestError with the given status code.
func IsStatus(err error, code int) bool {
	var re *RequestError
	if errors.As(err, &re) {
		return re.StatusCode == code
	}
	return false
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool { return IsStatus(err, http.StatusNotFound) }

// IsUnreachable reports whether err is a transport-level failure.
func IsUnreachable(err error) bool {
	var ue *UnreachableError
	return errors.As(err, &ue)
}
