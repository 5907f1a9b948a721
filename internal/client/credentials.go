package client

import (
	"context"

	"go.uber.org/zap"

	"github.com/hoteldesk/go-hotel-client/core"
	"github.com/hoteldesk/go-hotel-client/internal/database"
	"github.com/hoteldesk/go-hotel-client/internal/logging"
)

// TokenStore persists the bearer token of a profile.
type TokenStore interface {
	Credential(profileID uint) (core.Credential, error)
	SaveToken(profileID uint, cred core.Credential) error
}

// NewProfileCredentials reads the token of profile from store on every request. When the
// stored token is missing, expired or rejected and the profile holds a password, a new one is
// obtained from the login endpoint and written back to the store.
func NewProfileCredentials(profile *database.Profile, store TokenStore) *core.RefreshingCredentials {
	profileID := profile.ID
	source := func(ctx context.Context) (core.Credential, error) {
		return store.Credential(profileID)
	}
	var refresh core.RefreshFn
	if profile.CanLogin() {
		login := core.LoginConfig{
			BaseURL:   profile.BaseURL,
			Username:  profile.Username,
			Password:  profile.Password,
			SslVerify: profile.SSLVerify,
		}
		refresh = func(ctx context.Context, expired core.Credential) (core.Credential, error) {
			logging.Debug("Refreshing token", zap.String("profile", profile.ProfileName()))
			cred, err := core.Login(ctx, login)
			if err != nil {
				logging.Warn("Token refresh failed", zap.String("profile", profile.ProfileName()), zap.Error(err))
				return core.Credential{}, err
			}
			if err := store.SaveToken(profileID, cred); err != nil {
				logging.Error("Failed to persist refreshed token", zap.Error(err))
			}
			return cred, nil
		}
	}
	return core.NewRefreshingCredentials(source, refresh)
}
