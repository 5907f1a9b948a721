package typed

import (
	"context"
	"time"

	"github.com/hoteldesk/go-hotel-client/resources/untyped"
)

// -----------------------------------------------------
// REQUEST BODY
// -----------------------------------------------------

// BookingRequestBody is the body of POST /api/bookings and PUT /api/bookings/<id>.
// Dates use the YYYY-MM-DD layout.
type BookingRequestBody struct {
	GuestName  string `json:"guestName" yaml:"guestName" binding:"required,max=100"`
	RoomNumber string `json:"roomNumber" yaml:"roomNumber" binding:"required,max=16"`
	CheckIn    string `json:"checkIn" yaml:"checkIn" binding:"required,datetime=2006-01-02"`
	CheckOut   string `json:"checkOut" yaml:"checkOut" binding:"required,datetime=2006-01-02"`
	Guests     int64  `json:"guests" yaml:"guests" binding:"required,min=1"`
	Status     string `json:"status,omitempty" yaml:"status,omitempty" binding:"omitempty,oneof=Pending Confirmed CheckedIn CheckedOut Cancelled"`
}

// -----------------------------------------------------
// RESPONSE BODY
// -----------------------------------------------------

// BookingResponseBody is a booking as returned by the backend.
type BookingResponseBody struct {
	Id         ID        `json:"id" yaml:"id"`
	GuestName  string    `json:"guestName" yaml:"guestName"`
	RoomNumber string    `json:"roomNumber" yaml:"roomNumber"`
	CheckIn    string    `json:"checkIn" yaml:"checkIn"`
	CheckOut   string    `json:"checkOut" yaml:"checkOut"`
	Guests     int64     `json:"guests" yaml:"guests"`
	Status     string    `json:"status" yaml:"status"`
	CreatedAt  time.Time `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	UpdatedAt  time.Time `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
}

// -----------------------------------------------------
// RESOURCE METHODS
// -----------------------------------------------------

// Booking is the typed bookings resource.
type Booking struct {
	Untyped *untyped.Booking
}

func (b *Booking) crud() crud[BookingRequestBody, BookingResponseBody] {
	return crud[BookingRequestBody, BookingResponseBody]{resource: b.Untyped}
}

func (b *Booking) ListWithContext(ctx context.Context) ([]BookingResponseBody, error) {
	return b.crud().list(ctx)
}

func (b *Booking) List() ([]BookingResponseBody, error) {
	return b.ListWithContext(context.Background())
}

func (b *Booking) CreateWithContext(ctx context.Context, req *BookingRequestBody) (*BookingResponseBody, error) {
	return b.crud().create(ctx, req)
}

func (b *Booking) Create(req *BookingRequestBody) (*BookingResponseBody, error) {
	return b.CreateWithContext(context.Background(), req)
}

func (b *Booking) UpdateWithContext(ctx context.Context, id string, req *BookingRequestBody) (*BookingResponseBody, error) {
	return b.crud().update(ctx, id, req)
}

func (b *Booking) Update(id string, req *BookingRequestBody) (*BookingResponseBody, error) {
	return b.UpdateWithContext(context.Background(), id, req)
}

func (b *Booking) DeleteWithContext(ctx context.Context, id string) error {
	return b.crud().delete(ctx, id)
}

func (b *Booking) Delete(id string) error {
	return b.DeleteWithContext(context.Background(), id)
}
