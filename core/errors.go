package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ApiError represents a non-2xx answer from the backend.
type ApiError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
	// Detail is the decoded error payload, when the body carried one.
	Detail *ServerDetail
}

// ServerDetail is the error payload hotel backends answer with, e.g.
// {"status":"error","message":"Invalid request payload","details":"...","errors":{"price":"must be >= 0"}}.
type ServerDetail struct {
	Status  string            `json:"status,omitempty"`
	Message string            `json:"message,omitempty"`
	Details string            `json:"details,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// Error implements the error interface.
func (e *ApiError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("response body: %s", e.Body)
	}
	if e.Detail != nil && e.Detail.Message != "" {
		return fmt.Sprintf(
			"%s request to %s returned status code %d: %s", e.Method, e.URL, e.StatusCode, e.Detail.Summary(),
		)
	}
	return fmt.Sprintf(
		"%s request to %s returned status code %d, response body: %s", e.Method, e.URL, e.StatusCode, e.Body,
	)
}

// FieldErrors returns per-field messages provided by the server, or nil.
func (e *ApiError) FieldErrors() map[string]string {
	if e.Detail == nil || len(e.Detail.Errors) == 0 {
		return nil
	}
	return e.Detail.Errors
}

// Summary renders message, details and field errors on one line.
func (d *ServerDetail) Summary() string {
	parts := []string{d.Message}
	if d.Details != "" {
		parts = append(parts, d.Details)
	}
	if len(d.Errors) > 0 {
		fields := make([]string, 0, len(d.Errors))
		for field := range d.Errors {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		for _, field := range fields {
			parts = append(parts, fmt.Sprintf("%s: %s", field, d.Errors[field]))
		}
	}
	return strings.Join(parts, "; ")
}

// decodeServerDetail extracts a ServerDetail from a JSON error body. Returns nil when the body
// is not a JSON object or carries neither a message nor field errors.
func decodeServerDetail(body string) *ServerDetail {
	trimmed := strings.TrimSpace(body)
	if !strings.HasPrefix(trimmed, "{") {
		return nil
	}
	var detail ServerDetail
	if err := json.Unmarshal([]byte(trimmed), &detail); err != nil {
		// "errors" may be a list of strings on some backends, keep the message at least.
		var loose struct {
			Message string `json:"message"`
			Details string `json:"details"`
		}
		if json.Unmarshal([]byte(trimmed), &loose) != nil || loose.Message == "" {
			return nil
		}
		return &ServerDetail{Message: loose.Message, Details: loose.Details}
	}
	if detail.Message == "" && len(detail.Errors) == 0 {
		return nil
	}
	return &detail
}

func IsApiError(err error) bool {
	var apiErr *ApiError
	return errors.As(err, &apiErr)
}

// AsApiError unwraps err into an *ApiError.
func AsApiError(err error) (*ApiError, bool) {
	var apiErr *ApiError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

func IgnoreStatusCodes(err error, codes ...int) error {
	apiErr, ok := AsApiError(err)
	if !ok {
		return err
	}
	for _, code := range codes {
		if apiErr.StatusCode == code {
			return nil
		}
	}
	return err
}

func ExpectStatusCodes(err error, codes ...int) bool {
	apiErr, ok := AsApiError(err)
	if !ok {
		return false
	}
	for _, code := range codes {
		if apiErr.StatusCode == code {
			return true
		}
	}
	return false
}

// TransportError means the request never reached the server or the response never came back.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("failed to perform %s request to %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func IsTransportErr(err error) bool {
	var tErr *TransportError
	return errors.As(err, &tErr)
}

type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("resource '%s' not found for id '%s'", e.Resource, e.ID)
}

func IsNotFoundErr(err error) bool {
	var nfErr *NotFoundError
	return errors.As(err, &nfErr)
}
