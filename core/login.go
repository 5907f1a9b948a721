package core

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	urlpkg "net/url"
	"time"
)

// LoginPath is where a username and password are exchanged for a bearer token.
const LoginPath = "auth/login"

// LoginConfig describes a password login against a hotel backend.
type LoginConfig struct {
	BaseURL   string
	Username  string
	Password  string
	SslVerify bool
	Timeout   time.Duration // defaults to 20s
}

type loginResponse struct {
	Token     string     `json:"token"`
	ExpiresAt *time.Time `json:"expiresAt"`
}

// Login obtains a new credential from POST /api/auth/login.
// When the token is a JWT its exp claim wins over the expiresAt field of the answer.
func Login(ctx context.Context, config LoginConfig) (Credential, error) {
	if config.Username == "" || config.Password == "" {
		return Credential{}, errors.New("username and password are required to log in")
	}
	base := Config{BaseURL: config.BaseURL}
	if err := WithBaseURL(&base); err != nil {
		return Credential{}, err
	}
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 20 * time.Second
	}
	client := &http.Client{
		Transport: &http.Transport{TLSClientConfig: &tls.Config{InsecureSkipVerify: !config.SslVerify}},
		Timeout:   timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			// Prevent following redirects (like 301, 302)
			return http.ErrUseLastResponse
		},
	}
	url, err := urlpkg.JoinPath(base.BaseURL, apiPrefix, LoginPath)
	if err != nil {
		return Credential{}, err
	}
	body, err := json.Marshal(map[string]string{"username": config.Username, "password": config.Password})
	if err != nil {
		return Credential{}, err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Credential{}, err
	}
	req.Header.Set(HeaderContentType, ContentTypeJSON)
	req.Header.Set(HeaderAccept, ContentTypeJSON)

	resp, err := client.Do(req)
	if err != nil {
		return Credential{}, &TransportError{Method: http.MethodPost, URL: url, Err: err}
	}
	if err = validateResponse(resp); err != nil {
		return Credential{}, err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Credential{}, err
	}
	var answer loginResponse
	if err = json.Unmarshal(raw, &answer); err != nil {
		return Credential{}, err
	}
	if answer.Token == "" {
		return Credential{}, errors.New("login answer carries no token")
	}
	cred := CredentialFromToken(answer.Token)
	if cred.ExpiresAt.IsZero() && answer.ExpiresAt != nil {
		cred.ExpiresAt = *answer.ExpiresAt
	}
	return cred, nil
}
