package core

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestLogin(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := signedToken(t, exp)
	var gotPath string
	var gotBody map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		if gotBody["password"] != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"status":"error","message":"invalid credentials"}`))
			return
		}
		w.Write([]byte(`{"token":"` + token + `"}`))
	}))
	defer server.Close()

	cred, err := Login(context.Background(), LoginConfig{BaseURL: server.URL, Username: "clerk", Password: "secret"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if gotPath != "/api/auth/login" {
		t.Errorf("path = %q", gotPath)
	}
	if gotBody["username"] != "clerk" {
		t.Errorf("body = %v", gotBody)
	}
	if cred.Token != token || !cred.ExpiresAt.Equal(exp) {
		t.Errorf("credential = %+v", cred)
	}

	_, err = Login(context.Background(), LoginConfig{BaseURL: server.URL, Username: "clerk", Password: "wrong"})
	if !ExpectStatusCodes(err, http.StatusUnauthorized) {
		t.Errorf("Login() error = %v, want 401 ApiError", err)
	}
}

func TestLogin_ExpiresAtField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token":"opaque","expiresAt":"2030-01-02T03:04:05Z"}`))
	}))
	defer server.Close()

	cred, err := Login(context.Background(), LoginConfig{BaseURL: server.URL, Username: "u", Password: "p"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	want := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	if cred.Token != "opaque" || !cred.ExpiresAt.Equal(want) {
		t.Errorf("credential = %+v", cred)
	}
}

func TestLogin_Failures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	tests := []struct {
		name   string
		config LoginConfig
	}{
		{name: "missing password", config: LoginConfig{BaseURL: server.URL, Username: "u"}},
		{name: "bad base url", config: LoginConfig{BaseURL: "localhost", Username: "u", Password: "p"}},
		{name: "no token in answer", config: LoginConfig{BaseURL: server.URL, Username: "u", Password: "p"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Login(context.Background(), tt.config); err == nil {
				t.Error("Login() error = nil")
			}
		})
	}

	closed := httptest.NewServer(http.NotFoundHandler())
	closed.Close()
	_, err := Login(context.Background(), LoginConfig{BaseURL: closed.URL, Username: "u", Password: "p"})
	if !IsTransportErr(err) {
		t.Errorf("Login() error = %v, want TransportError", err)
	}
}
