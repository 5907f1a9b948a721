package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	urlpkg "net/url"
	"runtime"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Config represents the configuration required to create a REST session against a hotel backend.
type Config struct {
	BaseURL        string             // Scheme and host of the backend, e.g. http://localhost:8080.
	Credentials    CredentialProvider // Source of the bearer token attached to every request.
	SslVerify      bool               // Whether to verify TLS certificates.
	Timeout        *time.Duration     // HTTP client timeout. If nil, a default is applied by validators.
	MaxConnections int                // Maximum number of concurrent HTTP connections per host.
	UserAgent      string             // Optional custom User-Agent header. If empty, a default is applied.
	Logger         *zap.Logger        // Logger used by request interceptors. Defaults to a no-op logger.

	// BeforeRequestFn is an optional hook executed before a request is sent.
	// Any error returned aborts the request.
	BeforeRequestFn func(ctx context.Context, r *http.Request, verb, url string, body io.Reader) error

	// AfterRequestFn is an optional hook executed after a successful response was decoded.
	// It may return a modified Renderable.
	AfterRequestFn func(ctx context.Context, response Renderable) (Renderable, error)
}

// ConfigFunc defines a function that can modify or validate a Config.
type ConfigFunc func(*Config) error

// Validate applies the given validators to the config and returns the first error.
func (config *Config) Validate(validators ...ConfigFunc) error {
	for _, fn := range validators {
		if err := fn(config); err != nil {
			return err
		}
	}
	return nil
}

// DefaultValidators is the validator chain used by NewSession.
func DefaultValidators() []ConfigFunc {
	return []ConfigFunc{
		WithBaseURL,
		WithCredentials,
		WithTimeout(30 * time.Second),
		WithMaxConnections(10),
		WithUserAgent,
		WithLogger,
	}
}

// WithTimeout sets a default timeout if none is provided.
func WithTimeout(timeout time.Duration) ConfigFunc {
	return func(config *Config) error {
		if config.Timeout == nil {
			config.Timeout = &timeout
		}
		return nil
	}
}

// WithMaxConnections sets the maximum number of connections if not explicitly provided.
func WithMaxConnections(maxConnections int) ConfigFunc {
	return func(config *Config) error {
		if config.MaxConnections == 0 {
			config.MaxConnections = maxConnections
		}
		return nil
	}
}

// WithBaseURL validates BaseURL and strips a trailing slash.
func WithBaseURL(config *Config) error {
	if config.BaseURL == "" {
		return errors.New("base url cannot be empty string")
	}
	parsed, err := urlpkg.Parse(config.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base url %q: %w", config.BaseURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("invalid base url %q: scheme must be http or https", config.BaseURL)
	}
	if parsed.Host == "" {
		return fmt.Errorf("invalid base url %q: host is missing", config.BaseURL)
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	return nil
}

// WithCredentials validates that a credential provider is configured.
func WithCredentials(config *Config) error {
	if config.Credentials == nil {
		return errors.New("credential provider must be provided")
	}
	return nil
}

// WithUserAgent sets a default User-Agent header if none is provided in the config.
func WithUserAgent(config *Config) error {
	if config.UserAgent == "" {
		config.UserAgent = fmt.Sprintf(
			"%s,os:%s,arch:%s",
			fmt.Sprintf("go-hotel-client-%s", ClientVersion()),
			runtime.GOOS,
			runtime.GOARCH,
		)
	}
	return nil
}

// WithLogger installs a no-op logger when none is provided.
func WithLogger(config *Config) error {
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}
	return nil
}
