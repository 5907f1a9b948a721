package core

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"strings"
)

type contextKey string

type RESTSession interface {
	Get(context.Context, string, Params, []http.Header) (Renderable, error)
	Post(context.Context, string, Params, []http.Header) (Renderable, error)
	Put(context.Context, string, Params, []http.Header) (Renderable, error)
	Delete(context.Context, string, Params, []http.Header) (Renderable, error)
	GetConfig() *Config
}

// Session is a REST session against a hotel backend. Every request carries the bearer token of
// the configured CredentialProvider. Requests are never retried.
type Session struct {
	config *Config
	client *http.Client
}

type SessionMethod func(context.Context, string, Params, []http.Header) (Renderable, error)

// NewSession validates config with DefaultValidators and creates a session.
func NewSession(config *Config) (*Session, error) {
	if config == nil {
		return nil, fmt.Errorf("config must be provided")
	}
	if err := config.Validate(DefaultValidators()...); err != nil {
		return nil, err
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: !config.SslVerify}
	transport.MaxConnsPerHost = config.MaxConnections
	transport.IdleConnTimeout = *config.Timeout
	client := &http.Client{Transport: transport, Timeout: *config.Timeout}
	return &Session{config: config, client: client}, nil
}

// Request issues verb against path (relative to /api) and converts the response into T.
func Request[T RecordUnion](
	ctx context.Context,
	session RESTSession,
	verb, path string,
	query, body Params,
) (T, error) {
	var (
		method SessionMethod
		q      string
	)
	if ctx == nil {
		ctx = context.Background()
	}
	switch strings.ToUpper(verb) {
	case http.MethodGet:
		method = session.Get
	case http.MethodPost:
		method = session.Post
	case http.MethodPut:
		method = session.Put
	case http.MethodDelete:
		method = session.Delete
	default:
		return nil, fmt.Errorf("unknown verb: %s", verb)
	}
	if query != nil {
		q = query.ToQuery()
	}
	url, err := buildUrl(session, path, q)
	if err != nil {
		return nil, err
	}
	response, err := method(ctx, url, body, nil)
	if err != nil {
		return nil, err
	}
	// An empty body decodes as Record{}, which is an empty set for list calls.
	if _, wantSet := any(*new(T)).(RecordSet); wantSet {
		if rec, ok := response.(Record); ok {
			if rec.Empty() {
				response = RecordSet{}
			} else {
				response = RecordSet{rec}
			}
		}
	}
	result, ok := response.(T)
	if !ok {
		return nil, fmt.Errorf(
			"unexpected response type for request to %s: got %T, expected %T", url, response, *new(T),
		)
	}
	return result, nil
}

func (s *Session) Get(ctx context.Context, url string, _ Params, headers []http.Header) (Renderable, error) {
	return doRequest(ctx, s, http.MethodGet, url, nil, headers)
}

func (s *Session) Post(ctx context.Context, url string, body Params, headers []http.Header) (Renderable, error) {
	return doRequest(ctx, s, http.MethodPost, url, body, headers)
}

func (s *Session) Put(ctx context.Context, url string, body Params, headers []http.Header) (Renderable, error) {
	return doRequest(ctx, s, http.MethodPut, url, body, headers)
}

func (s *Session) Delete(ctx context.Context, url string, _ Params, headers []http.Header) (Renderable, error) {
	return doRequest(ctx, s, http.MethodDelete, url, nil, headers)
}

func (s *Session) GetConfig() *Config {
	return s.config
}

func consolidateHeaders(s RESTSession, customHeaders []http.Header) http.Header {
	finalHeaders := make(http.Header)

	for _, header := range customHeaders {
		for key, values := range header {
			for _, value := range values {
				finalHeaders.Add(key, value)
			}
		}
	}
	if finalHeaders.Get(HeaderAccept) == "" {
		finalHeaders.Set(HeaderAccept, ContentTypeJSON)
	}
	if finalHeaders.Get(HeaderContentType) == "" {
		finalHeaders.Set(HeaderContentType, ContentTypeJSON)
	}
	if finalHeaders.Get(HeaderUserAgent) == "" {
		finalHeaders.Set(HeaderUserAgent, s.GetConfig().UserAgent)
	}
	return finalHeaders
}

func setupHeaders(r *http.Request, cred Credential, headers http.Header) {
	for key, values := range headers {
		for _, value := range values {
			r.Header.Add(key, value)
		}
	}
	setAuthHeader(&r.Header, cred)
}

// doRequest creates and processes a single HTTP request.
func doRequest(ctx context.Context, s *Session, verb, url string, body Params, headers []http.Header) (Renderable, error) {
	var (
		config            = s.GetConfig()
		requestData       io.Reader
		beforeRequestData io.Reader
		err               error
	)
	if url, err = buildUrl(s, url, ""); err != nil {
		return nil, err
	}
	cred, err := config.Credentials.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("cannot authorize %s request to %s: %w", verb, url, err)
	}
	if body == nil {
		requestData = bytes.NewReader(nil)
	} else {
		if requestData, err = body.ToBody(); err != nil {
			return nil, err
		}
		if beforeRequestData, err = body.ToBody(); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, verb, url, requestData)
	if err != nil {
		return nil, err
	}
	setupHeaders(req, cred, consolidateHeaders(s, headers))

	if err = doBeforeRequest(ctx, config, req, verb, url, beforeRequestData); err != nil {
		return nil, err
	}
	response, responseErr := s.client.Do(req)
	if responseErr != nil {
		return nil, &TransportError{Method: verb, URL: url, Err: responseErr}
	}
	if err = validateResponse(response); err != nil {
		if response.StatusCode == http.StatusUnauthorized {
			if inv, ok := config.Credentials.(Invalidator); ok {
				inv.Invalidate()
			}
		}
		logFailedRequest(ctx, config, err)
		return nil, err
	}
	result, err := unmarshalToRecordUnion(response)
	if err != nil {
		return nil, fmt.Errorf("failed to decode response of %s request to %s: %w", verb, url, err)
	}
	return doAfterRequest(ctx, config, verb, url, result)
}
