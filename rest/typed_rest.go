package rest

import (
	"github.com/hoteldesk/go-hotel-client/core"
	"github.com/hoteldesk/go-hotel-client/resources/typed"
)

// TypedHotelRest exposes the hotel resources with request and response structs.
type TypedHotelRest struct {
	Untyped *UntypedHotelRest

	Rooms      *typed.Room
	Bookings   *typed.Booking
	FoodOrders *typed.FoodOrder
}

func NewTypedHotelRest(config *core.Config) (*TypedHotelRest, error) {
	untypedRest, err := NewUntypedHotelRest(config)
	if err != nil {
		return nil, err
	}
	return NewTypedHotelRestFrom(untypedRest), nil
}

// NewTypedHotelRestFrom shares the session of an existing untyped client.
func NewTypedHotelRestFrom(untypedRest *UntypedHotelRest) *TypedHotelRest {
	return &TypedHotelRest{
		Untyped:    untypedRest,
		Rooms:      &typed.Room{Untyped: untypedRest.Rooms},
		Bookings:   &typed.Booking{Untyped: untypedRest.Bookings},
		FoodOrders: &typed.FoodOrder{Untyped: untypedRest.FoodOrders},
	}
}
