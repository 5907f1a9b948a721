package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	urlpkg "net/url"
	"strings"
)

// validateResponse checks the response for a 2xx status code.
// It returns an *ApiError if the status code is outside 2xx or if the response is nil.
// The body of a failed response is consumed and decoded into ApiError.Detail when possible.
func validateResponse(response *http.Response) error {
	requestURL := "<unknown URL>"
	method := "<unknown method>"
	if response == nil {
		return &ApiError{
			Method:     method,
			URL:        requestURL,
			StatusCode: 0,
			Body:       "server unreachable: verify the endpoint is correct and the network is accessible",
		}
	}
	if response.StatusCode >= 200 && response.StatusCode <= 299 {
		return nil
	}
	if response.Request != nil {
		if response.Request.URL != nil {
			requestURL = response.Request.URL.String()
		}
		method = response.Request.Method
	}
	body := getResponseBodyAsStr(response)
	return &ApiError{
		Method:     method,
		URL:        requestURL,
		StatusCode: response.StatusCode,
		Body:       body,
		Detail:     decodeServerDetail(body),
	}
}

// buildUrl joins the base url, the api prefix and path. Each path segment is escaped.
// If path is already a full URI it is returned unchanged.
func buildUrl(s RESTSession, path, query string) (string, error) {
	parsedURL, parseErr := urlpkg.Parse(path)
	if parseErr == nil && parsedURL.Scheme != "" {
		return path, nil
	}
	base, err := urlpkg.Parse(s.GetConfig().BaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base url: %w", err)
	}
	segments := []string{apiPrefix}
	for _, segment := range strings.Split(strings.Trim(path, "/"), "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	joined, err := urlpkg.JoinPath(base.String(), segments...)
	if err != nil {
		return "", err
	}
	if query != "" {
		joined += "?" + query
	}
	return joined, nil
}

// ResourcePath builds "<resource>/<id>" with the id escaped as a single path segment.
func ResourcePath(resource string, id ...string) string {
	parts := []string{strings.Trim(resource, "/")}
	for _, part := range id {
		parts = append(parts, urlpkg.PathEscape(part))
	}
	return strings.Join(parts, "/")
}

// getResponseBodyAsStr reads and returns the HTTP response body as a string.
// If the response body contains valid JSON, it returns a pretty-printed version.
//
// Note: This function consumes and closes the response body.
func getResponseBodyAsStr(r *http.Response) string {
	var b bytes.Buffer
	if r == nil || r.Body == nil {
		return ""
	}
	defer r.Body.Close()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return ""
	}
	if err = json.Indent(&b, body, "", "  "); err == nil {
		return b.String()
	}
	return string(body)
}
