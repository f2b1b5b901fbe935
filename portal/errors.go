package portal

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// APIError is a non-2xx response from the backend
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Header     http.Header
	Body       []byte
	// Detail is the backend's "detail" or "error" message, if any
	Detail string
	// Fields holds field-level validation messages, including non_field_errors
	Fields map[string][]string
}

func newAPIError(req *Request, resp *http.Response, body []byte) *APIError {
	e := &APIError{
		Method:     req.Method,
		Path:       req.Path,
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}

	var payload map[string]json.RawMessage
	if json.Unmarshal(body, &payload) != nil {
		return e
	}
	for key, raw := range payload {
		var msg string
		if json.Unmarshal(raw, &msg) == nil {
			if key == "detail" || key == "error" {
				e.Detail = msg
				continue
			}
			e.addField(key, msg)
			continue
		}
		var msgs []string
		if json.Unmarshal(raw, &msgs) == nil {
			for _, m := range msgs {
				e.addField(key, m)
			}
		}
	}
	return e
}

func (e *APIError) addField(field, msg string) {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "portal: %s %s: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
	if e.Detail != "" {
		fmt.Fprintf(&b, ": %s", e.Detail)
	}
	if len(e.Fields) > 0 {
		fields := make([]string, 0, len(e.Fields))
		for f := range e.Fields {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		for _, f := range fields {
			fmt.Fprintf(&b, "; %s: %s", f, strings.Join(e.Fields[f], " "))
		}
	}
	return b.String()
}

// TransportError is a request that never produced an HTTP response
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("portal: %s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// SessionInvalidatedError is returned when a 401 could not be recovered because
// the refresh call failed. The client has already navigated to the root; Err is
// the refresh failure.
type SessionInvalidatedError struct {
	Err error
}

func (e *SessionInvalidatedError) Error() string {
	return fmt.Sprintf("portal: session invalidated: %v", e.Err)
}

func (e *SessionInvalidatedError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status carried by err, or 0 when err holds no
// backend response
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}

func IsForbidden(err error) bool {
	return StatusCode(err) == http.StatusForbidden
}

// IsSessionInvalidated reports whether err ended in a forced redirect
func IsSessionInvalidated(err error) bool {
	var sessionErr *SessionInvalidatedError
	return errors.As(err, &sessionErr)
}
