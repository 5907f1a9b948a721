package devserver

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hoteldesk/go-hotel-client/core"
	"github.com/hoteldesk/go-hotel-client/resources/schemas"
	"github.com/hoteldesk/go-hotel-client/resources/typed"
)

// Seed is the content of a HOTELIX_DEV_SEED file, e.g.
//
//	rooms:
//	  - roomNumber: "101"
//	    roomType: Single
//	    price: 49.5
//	    maxOccupancy: 1
type Seed struct {
	Rooms      []typed.RoomRequestBody      `yaml:"rooms"`
	Bookings   []typed.BookingRequestBody   `yaml:"bookings"`
	FoodOrders []typed.FoodOrderRequestBody `yaml:"food-orders"`
}

func LoadSeed(path string) (*Seed, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var seed Seed
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return nil, fmt.Errorf("invalid seed file %s: %w", path, err)
	}
	return &seed, nil
}

// Apply validates every seeded record and adds it to store.
func (s *Seed) Apply(store *Store) error {
	var err error
	for i := range s.Rooms {
		if err = seedOne(store, schemas.ResourceRooms, &s.Rooms[i]); err != nil {
			return err
		}
	}
	for i := range s.Bookings {
		if err = seedOne(store, schemas.ResourceBookings, &s.Bookings[i]); err != nil {
			return err
		}
	}
	for i := range s.FoodOrders {
		if err = seedOne(store, schemas.ResourceFoodOrders, &s.FoodOrders[i]); err != nil {
			return err
		}
	}
	return nil
}

func seedOne(store *Store, collection string, body any) error {
	if err := validateBody(body); err != nil {
		return fmt.Errorf("invalid %s seed: %w", collection, err)
	}
	fields, err := core.NewParamsFromStruct(body)
	if err != nil {
		return err
	}
	applyDefaults(collection, fields)
	store.Create(collection, fields)
	return nil
}
