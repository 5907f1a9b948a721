package client

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoteldesk/go-hotel-client/core"
	"github.com/hoteldesk/go-hotel-client/internal/database"
)

// hotelServer issues "fresh-token" on login and serves rooms to requests carrying it.
func hotelServer(t *testing.T, logins *int32) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			atomic.AddInt32(logins, 1)
			w.Write([]byte(`{"token":"fresh-token"}`))
		case "/api/rooms":
			if r.Header.Get("Authorization") != "Bearer fresh-token" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.Write([]byte(`[{"id":"r1","roomNumber":"101"}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func openStore(t *testing.T) *database.Service {
	t.Helper()
	store, err := database.Open(filepath.Join(t.TempDir(), "store.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestNewRest_LogsInAndPersistsToken(t *testing.T) {
	var logins int32
	server := hotelServer(t, &logins)
	store := openStore(t)
	profile := &database.Profile{Alias: "desk", BaseURL: server.URL, Username: "clerk", Password: "secret"}
	require.NoError(t, store.CreateProfileAsActive(profile))

	rest, err := NewRest(profile, store)
	require.NoError(t, err)

	rooms, err := rest.Rooms.List()
	require.NoError(t, err)
	assert.Len(t, rooms, 1)
	assert.Equal(t, int32(1), atomic.LoadInt32(&logins))

	cred, err := store.Credential(profile.ID)
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", cred.Token)

	// the token is reused by a new client for the same profile
	again, err := NewRest(profile, store)
	require.NoError(t, err)
	_, err = again.Rooms.List()
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&logins))
}

func TestNewRest_RejectedTokenRefreshesOnNextRequest(t *testing.T) {
	var logins int32
	server := hotelServer(t, &logins)
	store := openStore(t)
	profile := &database.Profile{Alias: "desk", BaseURL: server.URL, Username: "clerk", Password: "secret"}
	require.NoError(t, store.CreateProfile(profile))
	require.NoError(t, store.SaveToken(profile.ID, core.Credential{Token: "revoked"}))

	rest, err := NewRest(profile, store)
	require.NoError(t, err)

	_, err = rest.Rooms.List()
	assert.True(t, core.ExpectStatusCodes(err, http.StatusUnauthorized), "no retry of the failed request")
	assert.Equal(t, int32(0), atomic.LoadInt32(&logins))

	_, err = rest.Rooms.List()
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&logins))
}

func TestNewRest_TokenOnlyProfile(t *testing.T) {
	var logins int32
	server := hotelServer(t, &logins)
	store := openStore(t)
	profile := &database.Profile{Alias: "token", BaseURL: server.URL}
	require.NoError(t, store.CreateProfile(profile))

	rest, err := NewRest(profile, store)
	require.NoError(t, err)

	_, err = rest.Rooms.List()
	assert.ErrorIs(t, err, core.ErrNoCredential)

	require.NoError(t, store.SaveToken(profile.ID, core.Credential{Token: "fresh-token"}))
	_, err = rest.Rooms.List()
	assert.NoError(t, err, "token rotated in the store is picked up")
	assert.Equal(t, int32(0), atomic.LoadInt32(&logins))

	// a later rotation replaces the token the client already used
	require.NoError(t, store.SaveToken(profile.ID, core.Credential{Token: "revoked"}))
	_, err = rest.Rooms.List()
	assert.True(t, core.ExpectStatusCodes(err, http.StatusUnauthorized), "rotated token sent: %v", err)
}

func TestService_GetOrCreateClient(t *testing.T) {
	store := openStore(t)
	svc := newService(store)
	profile := &database.Profile{Alias: "desk", BaseURL: "http://localhost:8080"}
	require.NoError(t, store.CreateProfile(profile))

	var wg sync.WaitGroup
	clients := make([]any, 8)
	for i := range clients {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c, err := svc.GetOrCreateClient(profile)
			assert.NoError(t, err)
			clients[i] = c
		}(i)
	}
	wg.Wait()
	for _, c := range clients {
		assert.Same(t, clients[0], c)
	}
	assert.Equal(t, 1, svc.GetClientCount())

	other := *profile
	other.BaseURL = "http://localhost:9090"
	_, err := svc.GetOrCreateClient(&other)
	require.NoError(t, err)
	assert.Equal(t, 2, svc.GetClientCount())

	svc.RemoveClient(&other)
	assert.Equal(t, 1, svc.GetClientCount())
	svc.ClearAllClients()
	assert.Equal(t, 0, svc.GetClientCount())

	_, err = svc.GetOrCreateClient(nil)
	assert.ErrorIs(t, err, database.ErrNoActiveProfile)
}

func TestCompactBody_MasksSecrets(t *testing.T) {
	assert.Equal(t, `{"password":"***","username":"clerk"}`, compactBody([]byte(`{"username": "clerk", "password": "secret"}`)))
	assert.Equal(t, "", compactBody([]byte(" null ")))
	assert.Equal(t, `[1,2]`, compactBody([]byte(`[1, 2]`)))
}
