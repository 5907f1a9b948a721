package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/hoteldesk/go-hotel-client/core"
	log "github.com/hoteldesk/go-hotel-client/internal/logging"
)

// passwordKeys are masked before a request body reaches the aux log.
var passwordKeys = []string{"password", "token"}

// BeforeRequestFnCallback logs the HTTP request being sent to the aux log.
// Requests marked with core.WithIgnoreLogging are skipped.
func BeforeRequestFnCallback(ctx context.Context, _ *http.Request, verb, url string, body io.Reader) error {
	if core.IsIgnoreLogging(ctx) {
		return nil
	}
	requestInfo := fmt.Sprintf("HTTP request start: [%s] %s", verb, url)
	if body == nil {
		log.AuxLog(requestInfo)
		return nil
	}
	bodyBytes, err := io.ReadAll(body)
	if err != nil {
		log.AuxLogf("ERROR: failed to read request body: %v", err)
		return err
	}
	bodyMsg := compactBody(bodyBytes)
	if bodyMsg == "" {
		log.AuxLog(requestInfo)
	} else {
		log.AuxLogf("%s | body: %s", requestInfo, bodyMsg)
	}
	return nil
}

func compactBody(raw []byte) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return ""
	}
	var fields map[string]any
	if err := json.Unmarshal(trimmed, &fields); err == nil {
		for _, key := range passwordKeys {
			if _, ok := fields[key]; ok {
				fields[key] = "***"
			}
		}
		if masked, err := json.Marshal(fields); err == nil {
			return string(masked)
		}
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, trimmed); err == nil {
		return compact.String()
	}
	return string(trimmed)
}

// AfterRequestFnCallback logs a short description of the decoded response.
func AfterRequestFnCallback(ctx context.Context, response core.Renderable) (core.Renderable, error) {
	if core.IsIgnoreLogging(ctx) {
		return response, nil
	}
	var responseStr string
	switch resp := response.(type) {
	case core.Record:
		if id := resp.RecordID(); id != "" {
			responseStr = fmt.Sprintf("Record %s", id)
		} else {
			responseStr = "Record received"
		}
	case core.RecordSet:
		responseStr = fmt.Sprintf("RecordSet with %d record(s)", len(resp))
	default:
		responseStr = "Response received"
	}
	log.AuxLogf("HTTP response: %s", responseStr)
	return response, nil
}
