// Package schemas declares the admin screen schema of every hotel resource.
package schemas

import (
	"time"

	"github.com/hoteldesk/go-hotel-client/admin"
)

const (
	ResourceRooms      = "rooms"
	ResourceBookings   = "bookings"
	ResourceFoodOrders = "food-orders"
)

var (
	RoomTypes       = []string{"Single", "Double", "Suite", "Deluxe"}
	RoomStatuses    = []string{"Available", "Occupied", "Maintenance", "Reserved"}
	BookingStatuses = []string{"Pending", "Confirmed", "CheckedIn", "CheckedOut", "Cancelled"}
	OrderStatuses   = []string{"Pending", "Preparing", "Delivered", "Cancelled"}
)

func Rooms() *admin.Schema {
	return &admin.Schema{
		Resource: ResourceRooms,
		Title:    "Rooms",
		Singular: "room",
		Fields: []admin.Field{
			{Name: "roomNumber", Label: "Room number", Kind: admin.KindText, Required: true, Rules: "max=16"},
			{Name: "roomType", Label: "Type", Kind: admin.KindEnum, Required: true, Options: RoomTypes},
			{Name: "price", Label: "Price", Kind: admin.KindNumber, Required: true, Rules: "min=0", Format: admin.FormatCurrency},
			{Name: "maxOccupancy", Label: "Max occupancy", Kind: admin.KindInteger, Required: true, Rules: "min=1"},
			{Name: "status", Label: "Status", Kind: admin.KindEnum, Required: true, Options: RoomStatuses, Default: "Available"},
			{Name: "description", Label: "Description", Kind: admin.KindText, Rules: "max=500", Hidden: true},
		},
	}
}

func Bookings() *admin.Schema {
	return &admin.Schema{
		Resource: ResourceBookings,
		Title:    "Bookings",
		Singular: "booking",
		Fields: []admin.Field{
			{Name: "guestName", Label: "Guest", Kind: admin.KindText, Required: true, Rules: "max=100"},
			{Name: "roomNumber", Label: "Room number", Kind: admin.KindText, Required: true, Rules: "max=16"},
			{Name: "checkIn", Label: "Check-in", Kind: admin.KindDate, Required: true},
			{Name: "checkOut", Label: "Check-out", Kind: admin.KindDate, Required: true},
			{Name: "guests", Label: "Guests", Kind: admin.KindInteger, Required: true, Rules: "min=1"},
			{Name: "status", Label: "Status", Kind: admin.KindEnum, Required: true, Options: BookingStatuses, Default: "Pending"},
		},
		Check: checkStay,
	}
}

func FoodOrders() *admin.Schema {
	return &admin.Schema{
		Resource: ResourceFoodOrders,
		Title:    "Food orders",
		Singular: "food order",
		Fields: []admin.Field{
			{Name: "roomNumber", Label: "Room number", Kind: admin.KindText, Required: true, Rules: "max=16"},
			{Name: "item", Label: "Item", Kind: admin.KindText, Required: true, Rules: "max=100"},
			{Name: "quantity", Label: "Quantity", Kind: admin.KindInteger, Required: true, Rules: "min=1"},
			{Name: "price", Label: "Price", Kind: admin.KindNumber, Required: true, Rules: "min=0", Format: admin.FormatCurrency},
			{Name: "status", Label: "Status", Kind: admin.KindEnum, Required: true, Options: OrderStatuses, Default: "Pending"},
			{Name: "notes", Label: "Notes", Kind: admin.KindText, Rules: "max=500", Hidden: true},
		},
	}
}

// All returns the schemas in screen order.
func All() []*admin.Schema {
	return []*admin.Schema{Rooms(), Bookings(), FoodOrders()}
}

// ByResource returns the schema of the given collection path.
func ByResource(resource string) (*admin.Schema, bool) {
	for _, s := range All() {
		if s.Resource == resource {
			return s, true
		}
	}
	return nil, false
}

// checkStay requires the check-out date to follow the check-in date.
func checkStay(draft admin.Draft) admin.FieldErrors {
	in, errIn := time.Parse(admin.DateLayout, asString(draft["checkIn"]))
	out, errOut := time.Parse(admin.DateLayout, asString(draft["checkOut"]))
	if errIn != nil || errOut != nil {
		return nil
	}
	if !out.After(in) {
		return admin.FieldErrors{"checkOut": "Check-out must be after Check-in"}
	}
	return nil
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}
