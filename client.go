package hotel_client

import (
	"github.com/hoteldesk/go-hotel-client/core"
	"github.com/hoteldesk/go-hotel-client/rest"
)

type (
	Config             = core.Config
	Params             = core.Params
	Record             = core.Record
	RecordSet          = core.RecordSet
	Renderable         = core.Renderable
	Credential         = core.Credential
	CredentialProvider = core.CredentialProvider
	ResourceAPI        = core.ResourceAPI
	HotelRest          = rest.UntypedHotelRest
	TypedHotelRest     = rest.TypedHotelRest
)

// NewHotelRest creates a client for the rooms, bookings and food orders collections.
func NewHotelRest(config *Config) (*HotelRest, error) {
	return rest.NewUntypedHotelRest(config)
}

func NewTypedHotelRest(config *Config) (*TypedHotelRest, error) {
	return rest.NewTypedHotelRest(config)
}

// NewStaticCredentials returns a provider that always attaches token.
func NewStaticCredentials(token string) *core.StaticCredentials {
	return core.NewStaticCredentials(token)
}

// NewRefreshingCredentials returns a provider reading source at request time and refreshing through refresh.
func NewRefreshingCredentials(source core.CredentialSourceFn, refresh core.RefreshFn) *core.RefreshingCredentials {
	return core.NewRefreshingCredentials(source, refresh)
}

// NewTypedHotelRestFrom returns the typed view of an existing client. Both share one session.
func NewTypedHotelRestFrom(untypedRest *HotelRest) *TypedHotelRest {
	return rest.NewTypedHotelRestFrom(untypedRest)
}
