package core

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/sync/singleflight"
)

// ErrNoCredential is returned when a provider has no token to offer.
var ErrNoCredential = errors.New("no credential available")

// ErrCredentialExpired is returned when a credential is expired and cannot be refreshed.
var ErrCredentialExpired = errors.New("credential expired")

// Credential is a bearer token with an optional expiry. A zero ExpiresAt means the token does not expire.
type Credential struct {
	Token     string
	ExpiresAt time.Time
}

// Expired reports whether the credential is expired at now, or will be within skew.
func (c Credential) Expired(now time.Time, skew time.Duration) bool {
	if c.ExpiresAt.IsZero() {
		return false
	}
	return !now.Add(skew).Before(c.ExpiresAt)
}

// Empty reports whether the credential carries no token.
func (c Credential) Empty() bool {
	return c.Token == ""
}

// CredentialProvider supplies the token attached to every request.
//
// Token must return a credential that is not expired, or an error. Providers are asked on every
// request so a token rotated in the backing store is picked up without rebuilding the session.
type CredentialProvider interface {
	Token(ctx context.Context) (Credential, error)
}

// Invalidator is implemented by providers that can drop a cached credential.
// The session calls Invalidate after the server answered 401, the request itself is not retried.
type Invalidator interface {
	Invalidate()
}

// CredentialFromToken builds a Credential from a raw token. When the token is a JWT carrying an
// "exp" claim, ExpiresAt is taken from it. The signature is not verified, the server does that.
func CredentialFromToken(token string) Credential {
	cred := Credential{Token: token}
	if token == "" {
		return cred
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return cred
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		cred.ExpiresAt = exp.Time
	}
	return cred
}

// StaticCredentials always returns the same token.
type StaticCredentials struct {
	Credential Credential
}

// NewStaticCredentials returns a provider for a fixed token.
func NewStaticCredentials(token string) *StaticCredentials {
	return &StaticCredentials{Credential: CredentialFromToken(token)}
}

func (s *StaticCredentials) Token(_ context.Context) (Credential, error) {
	if s.Credential.Empty() {
		return Credential{}, ErrNoCredential
	}
	if s.Credential.Expired(time.Now(), 0) {
		return Credential{}, ErrCredentialExpired
	}
	return s.Credential, nil
}

// CredentialSourceFn reads the current credential from persistent storage.
type CredentialSourceFn func(ctx context.Context) (Credential, error)

// RefreshFn obtains a new credential from the authentication subsystem.
type RefreshFn func(ctx context.Context, expired Credential) (Credential, error)

// RefreshingCredentials reads the credential from Source on every Token call and refreshes it through
// Refresh when it is expired or about to expire. The last good credential is used while the stored one
// is missing or expired. Concurrent refreshes are collapsed into one call.
type RefreshingCredentials struct {
	Source  CredentialSourceFn
	Refresh RefreshFn // optional; without it an expired credential is an error
	Skew    time.Duration

	mu          sync.Mutex
	cached      Credential
	invalidated bool
	group       singleflight.Group
	now         func() time.Time
}

// NewRefreshingCredentials creates a provider with a 30s expiry skew.
func NewRefreshingCredentials(source CredentialSourceFn, refresh RefreshFn) *RefreshingCredentials {
	return &RefreshingCredentials{
		Source:  source,
		Refresh: refresh,
		Skew:    30 * time.Second,
		now:     time.Now,
	}
}

func (p *RefreshingCredentials) clock() time.Time {
	if p.now == nil {
		return time.Now()
	}
	return p.now()
}

func (p *RefreshingCredentials) Token(ctx context.Context) (Credential, error) {
	p.mu.Lock()
	cached, invalidated := p.cached, p.invalidated
	p.mu.Unlock()
	now := p.clock()

	// The store is read on every call so a rotated token wins over the cache.
	// After a 401 the stored token is known to be rejected, go straight to Refresh when there is one.
	stale := cached
	if p.Source != nil && (!invalidated || p.Refresh == nil) {
		stored, err := p.Source(ctx)
		if err != nil && !errors.Is(err, ErrNoCredential) {
			return Credential{}, err
		}
		if err == nil && !stored.Empty() {
			if !stored.Expired(now, p.Skew) {
				p.store(stored)
				return stored, nil
			}
			stale = stored
		}
	}

	if !invalidated && !cached.Empty() && !cached.Expired(now, p.Skew) {
		return cached, nil
	}

	if p.Refresh == nil {
		if stale.Empty() {
			return Credential{}, ErrNoCredential
		}
		return Credential{}, ErrCredentialExpired
	}

	v, err, _ := p.group.Do("refresh", func() (any, error) {
		return p.Refresh(ctx, stale)
	})
	if err != nil {
		return Credential{}, err
	}
	fresh := v.(Credential)
	if fresh.Empty() {
		return Credential{}, ErrNoCredential
	}
	p.store(fresh)
	return fresh, nil
}

func (p *RefreshingCredentials) store(cred Credential) {
	p.mu.Lock()
	p.cached = cred
	p.invalidated = false
	p.mu.Unlock()
}

// Invalidate drops the cached credential; the next Token call goes straight to Refresh.
func (p *RefreshingCredentials) Invalidate() {
	p.mu.Lock()
	p.cached = Credential{}
	p.invalidated = true
	p.mu.Unlock()
}

// setAuthHeader attaches the bearer token to headers.
func setAuthHeader(headers *http.Header, cred Credential) {
	headers.Set(HeaderAuthorization, AuthTypeBearer+" "+cred.Token)
}
