package core

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"go.uber.org/zap"
)

const ignoreLoggingKey contextKey = "@ignoreLogging"

// WithIgnoreLogging marks ctx so request interceptors skip logging, e.g. for periodic refreshes.
func WithIgnoreLogging(ctx context.Context) context.Context {
	return context.WithValue(ctx, ignoreLoggingKey, true)
}

// IsIgnoreLogging reports whether ctx was marked with WithIgnoreLogging.
func IsIgnoreLogging(ctx context.Context) bool {
	ignore, _ := ctx.Value(ignoreLoggingKey).(bool)
	return ignore
}

// ######################################################
//
//	REQUEST/RESPONSE INTERCEPTORS
//
// ######################################################

// doBeforeRequest logs the outgoing request and runs the user-defined callback.
func doBeforeRequest(ctx context.Context, config *Config, r *http.Request, verb, url string, body io.Reader) error {
	if !IsIgnoreLogging(ctx) {
		beforeRequestLog(config.Logger, verb, url, body)
	}
	if config.BeforeRequestFn != nil {
		return config.BeforeRequestFn(ctx, r, verb, url, body)
	}
	return nil
}

// doAfterRequest logs the decoded response and runs the user-defined callback.
func doAfterRequest(ctx context.Context, config *Config, verb, url string, response Renderable) (Renderable, error) {
	var err error
	if !IsIgnoreLogging(ctx) {
		afterRequestLog(config.Logger, verb, url, response)
	}
	if config.AfterRequestFn != nil {
		if response, err = config.AfterRequestFn(ctx, response); err != nil {
			return nil, err
		}
	}
	return response, nil
}

func logFailedRequest(ctx context.Context, config *Config, err error) {
	if IsIgnoreLogging(ctx) {
		return
	}
	fields := []zap.Field{zap.Error(err)}
	if apiErr, ok := AsApiError(err); ok {
		fields = append(fields,
			zap.String("method", apiErr.Method),
			zap.String("url", apiErr.URL),
			zap.Int("status", apiErr.StatusCode))
	}
	config.Logger.Warn("http request failed", fields...)
}

// ######################################################
//
//	REQUEST/RESPONSE LOGGING
//
// ######################################################

// beforeRequestLog logs the method and url. At debug level the compacted JSON body is added.
func beforeRequestLog(logger *zap.Logger, verb, url string, body io.Reader) {
	fields := []zap.Field{zap.String("method", verb), zap.String("url", url)}
	if body != nil && logger.Core().Enabled(zap.DebugLevel) {
		if bodyBytes, err := io.ReadAll(body); err == nil {
			trimmed := bytes.TrimSpace(bodyBytes)
			if len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null")) {
				var compact bytes.Buffer
				if err := json.Compact(&compact, trimmed); err == nil {
					fields = append(fields, zap.String("body", compact.String()))
				} else {
					fields = append(fields, zap.String("body", string(trimmed)))
				}
			}
		}
	}
	logger.Info("http request start", fields...)
}

// afterRequestLog logs a summary of the response. At debug level the full JSON is added.
func afterRequestLog(logger *zap.Logger, verb, url string, response Renderable) {
	fields := []zap.Field{zap.String("method", verb), zap.String("url", url)}
	switch resp := response.(type) {
	case Record:
		fields = append(fields, zap.String("kind", "record"), zap.String("id", resp.RecordID()))
	case RecordSet:
		fields = append(fields, zap.String("kind", "record_set"), zap.Int("count", len(resp)))
	}
	if logger.Core().Enabled(zap.DebugLevel) {
		fields = append(fields, zap.String("response", response.PrettyJson()))
	}
	logger.Info("http response", fields...)
}
