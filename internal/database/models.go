package database

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/hoteldesk/go-hotel-client/core"
)

// Profile represents connection information for a hotel backend
type Profile struct {
	gorm.Model

	// Alias is a user-friendly name for the profile (max 20 characters)
	Alias string `json:"alias" gorm:"size:20;uniqueIndex"`

	// BaseURL is the scheme and host of the backend, e.g. http://localhost:8080
	BaseURL string `json:"base_url" gorm:"not null"`

	// Username and Password are exchanged for a token at /api/auth/login (can be empty if using token)
	Username string `json:"username"`
	Password string `json:"password"`

	// Token is the last bearer token issued for this profile
	Token string `json:"token"`

	// TokenExpiresAt is zero when the token carries no expiry
	TokenExpiresAt time.Time `json:"token_expires_at"`

	SSLVerify bool `json:"ssl_verify"`

	// Active indicates if this profile is currently active (only one can be active)
	Active bool `json:"active" gorm:"default:false;index:idx_active_unique,where:active = true"`
}

func (p *Profile) ProfileName() string {
	if p.Alias != "" {
		return fmt.Sprintf("%s [%s]", p.Alias, p.BaseURL)
	}
	return p.BaseURL
}

// Credential returns the stored token of the profile.
func (p *Profile) Credential() core.Credential {
	cred := core.CredentialFromToken(p.Token)
	if cred.ExpiresAt.IsZero() {
		cred.ExpiresAt = p.TokenExpiresAt
	}
	return cred
}

// CanLogin reports whether the profile holds a username and password for token refresh.
func (p *Profile) CanLogin() bool {
	return p.Username != "" && p.Password != ""
}

// ScreenHistory remembers the last admin screen shown, single row table
type ScreenHistory struct {
	gorm.Model
	CurrentScreen  string `json:"current_screen"`
	PreviousScreen string `json:"previous_screen"`
}

// Snapshot is the last collection loaded by an admin screen, stored msgpack encoded.
type Snapshot struct {
	gorm.Model
	ProfileID uint   `json:"profile_id" gorm:"uniqueIndex:idx_snapshot_key"`
	Resource  string `json:"resource" gorm:"uniqueIndex:idx_snapshot_key"`
	Count     int    `json:"count"`
	Data      []byte `json:"-"`
}
