package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoteldesk/go-hotel-client/core"
)

func openTestDB(t *testing.T) *Service {
	t.Helper()
	svc, err := Open(filepath.Join(t.TempDir(), "store.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })
	return svc
}

func TestService_ProfileOperations(t *testing.T) {
	svc := openTestDB(t)

	t.Run("create and retrieve profile", func(t *testing.T) {
		profile := &Profile{Alias: "front-desk", BaseURL: "http://localhost:8080/", Username: "clerk", Password: "secret"}
		require.NoError(t, svc.CreateProfile(profile))

		got, err := svc.GetProfileByAlias("front-desk")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "http://localhost:8080", got.BaseURL)
		assert.Equal(t, "front-desk [http://localhost:8080]", got.ProfileName())
		assert.True(t, got.CanLogin())
		assert.False(t, got.Active)
	})

	t.Run("invalid profiles are rejected", func(t *testing.T) {
		assert.Error(t, svc.CreateProfile(&Profile{Alias: "", BaseURL: "http://localhost"}))
		assert.Error(t, svc.CreateProfile(&Profile{Alias: "x", BaseURL: "localhost:8080"}))
		assert.Error(t, svc.CreateProfile(&Profile{Alias: "a-very-long-alias-name-here", BaseURL: "http://localhost"}))
	})

	t.Run("unknown alias", func(t *testing.T) {
		got, err := svc.GetProfileByAlias("nope")
		assert.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestService_ActiveProfile(t *testing.T) {
	svc := openTestDB(t)

	active, err := svc.GetActiveProfile()
	require.NoError(t, err)
	assert.Nil(t, active)

	first := &Profile{Alias: "first", BaseURL: "http://one.local"}
	second := &Profile{Alias: "second", BaseURL: "http://two.local"}
	require.NoError(t, svc.CreateProfileAsActive(first))
	require.NoError(t, svc.CreateProfileAsActive(second))

	active, err = svc.GetActiveProfile()
	require.NoError(t, err)
	assert.Equal(t, "second", active.Alias)

	require.NoError(t, svc.SetActiveProfile(first.ID))
	active, err = svc.GetActiveProfile()
	require.NoError(t, err)
	assert.Equal(t, "first", active.Alias)

	profiles, err := svc.GetAllProfiles()
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	activeCount := 0
	for _, p := range profiles {
		if p.Active {
			activeCount++
		}
	}
	assert.Equal(t, 1, activeCount)

	assert.Error(t, svc.SetActiveProfile(999))
}

func TestService_DeleteProfile(t *testing.T) {
	svc := openTestDB(t)
	profile := &Profile{Alias: "gone", BaseURL: "http://gone.local"}
	require.NoError(t, svc.CreateProfile(profile))
	require.NoError(t, svc.SaveSnapshot(profile.ID, "rooms", core.RecordSet{{"id": "r1"}}))

	require.NoError(t, svc.DeleteProfile(profile.ID))

	got, err := svc.GetProfileByAlias("gone")
	require.NoError(t, err)
	assert.Nil(t, got)
	records, savedAt, err := svc.LoadSnapshot(profile.ID, "rooms")
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.True(t, savedAt.IsZero())

	// alias can be reused
	require.NoError(t, svc.CreateProfile(&Profile{Alias: "gone", BaseURL: "http://gone.local"}))
}

func TestService_Tokens(t *testing.T) {
	svc := openTestDB(t)
	profile := &Profile{Alias: "tokens", BaseURL: "http://localhost:8080"}
	require.NoError(t, svc.CreateProfile(profile))

	_, err := svc.Credential(profile.ID)
	assert.ErrorIs(t, err, core.ErrNoCredential)

	expires := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	require.NoError(t, svc.SaveToken(profile.ID, core.Credential{Token: "opaque", ExpiresAt: expires}))

	cred, err := svc.Credential(profile.ID)
	require.NoError(t, err)
	assert.Equal(t, "opaque", cred.Token)
	assert.True(t, expires.Equal(cred.ExpiresAt), "got %v", cred.ExpiresAt)
}

func TestService_ScreenHistory(t *testing.T) {
	svc := openTestDB(t)
	assert.Equal(t, "rooms", svc.CurrentScreen("rooms"))

	require.NoError(t, svc.SetCurrentScreen("bookings"))
	require.NoError(t, svc.SetCurrentScreen("food-orders"))
	require.NoError(t, svc.SetCurrentScreen("food-orders"))

	history, err := svc.GetScreenHistory()
	require.NoError(t, err)
	assert.Equal(t, "food-orders", history.CurrentScreen)
	assert.Equal(t, "bookings", history.PreviousScreen)
	assert.Equal(t, "food-orders", svc.CurrentScreen("rooms"))
}

func TestService_Snapshots(t *testing.T) {
	svc := openTestDB(t)

	rooms := core.RecordSet{
		{"id": "r1", "roomNumber": "101", "price": 49.5, "maxOccupancy": 2.0},
		{"id": "r2", "roomNumber": "102", "price": 80.0, "maxOccupancy": 3.0},
	}
	require.NoError(t, svc.SaveSnapshot(1, "rooms", rooms))

	got, savedAt, err := svc.LoadSnapshot(1, "rooms")
	require.NoError(t, err)
	assert.False(t, savedAt.IsZero())
	assert.Equal(t, rooms, got)

	// replaced, not appended
	require.NoError(t, svc.SaveSnapshot(1, "rooms", rooms[:1]))
	got, _, err = svc.LoadSnapshot(1, "rooms")
	require.NoError(t, err)
	assert.Equal(t, rooms[:1], got)

	other, _, err := svc.LoadSnapshot(2, "rooms")
	require.NoError(t, err)
	assert.Empty(t, other)
}
