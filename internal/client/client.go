package client

import (
	"crypto/sha256"
	"fmt"
	"sync"

	hotel_client "github.com/hoteldesk/go-hotel-client"
	"github.com/hoteldesk/go-hotel-client/core"
	"github.com/hoteldesk/go-hotel-client/internal/database"
	"github.com/hoteldesk/go-hotel-client/internal/logging"
)

// Service manages REST clients with caching based on profile hash
type Service struct {
	store   TokenStore
	clients map[string]*hotel_client.HotelRest
	mu      sync.RWMutex
	locks   *core.KeyLocker
}

var (
	clientInstance *Service
	clientOnce     sync.Once
)

// NewRestService creates or returns the singleton REST client service
func NewRestService(store TokenStore) *Service {
	clientOnce.Do(func() {
		clientInstance = newService(store)
	})
	return clientInstance
}

func newService(store TokenStore) *Service {
	return &Service{
		store:   store,
		clients: make(map[string]*hotel_client.HotelRest),
		locks:   core.NewKeyLocker(),
	}
}

// profileHash covers everything a session is built from. The token is not part of it,
// it is read from the store on every request.
func profileHash(profile *database.Profile) string {
	configStr := fmt.Sprintf("%d:%s:%s:%s:%t",
		profile.ID, profile.BaseURL, profile.Username, profile.Password, profile.SSLVerify)
	hash := sha256.Sum256([]byte(configStr))
	return fmt.Sprintf("%x", hash)
}

// GetOrCreateClient returns an existing client for the profile or creates a new one
func (s *Service) GetOrCreateClient(profile *database.Profile) (*hotel_client.HotelRest, error) {
	if profile == nil {
		return nil, database.ErrNoActiveProfile
	}
	hash := profileHash(profile)

	s.mu.RLock()
	if client, exists := s.clients[hash]; exists {
		s.mu.RUnlock()
		return client, nil
	}
	s.mu.RUnlock()

	unlock := s.locks.Lock(hash)
	defer unlock()

	// Double-check in case another goroutine created it
	s.mu.RLock()
	client, exists := s.clients[hash]
	s.mu.RUnlock()
	if exists {
		return client, nil
	}

	client, err := NewRest(profile, s.store)
	if err != nil {
		return nil, fmt.Errorf("failed to create REST client: %w", err)
	}
	s.mu.Lock()
	s.clients[hash] = client
	s.mu.Unlock()
	return client, nil
}

// RemoveClient drops the cached client of the profile
func (s *Service) RemoveClient(profile *database.Profile) {
	hash := profileHash(profile)
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.clients, hash)
}

// ClearAllClients removes all cached clients
func (s *Service) ClearAllClients() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients = make(map[string]*hotel_client.HotelRest)
}

// GetClientCount returns the number of cached clients
func (s *Service) GetClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// NewRest builds a client for profile whose token is read from store at request time.
func NewRest(profile *database.Profile, store TokenStore) (*hotel_client.HotelRest, error) {
	config := &hotel_client.Config{
		BaseURL:     profile.BaseURL,
		Credentials: NewProfileCredentials(profile, store),
		SslVerify:   profile.SSLVerify,
		UserAgent:   getUserAgent(),
		Logger:      logging.GetGlobalLogger(),

		BeforeRequestFn: BeforeRequestFnCallback,
		AfterRequestFn:  AfterRequestFnCallback,
	}
	return hotel_client.NewHotelRest(config)
}
