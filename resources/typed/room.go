package typed

import (
	"context"
	"time"

	"github.com/hoteldesk/go-hotel-client/resources/untyped"
)

// -----------------------------------------------------
// REQUEST BODY
// -----------------------------------------------------

// RoomRequestBody is the body of POST /api/rooms and PUT /api/rooms/<id>.
type RoomRequestBody struct {
	RoomNumber   string   `json:"roomNumber" yaml:"roomNumber" binding:"required,max=16"`
	RoomType     string   `json:"roomType" yaml:"roomType" binding:"required,oneof=Single Double Suite Deluxe"`
	Price        *float64 `json:"price" yaml:"price" binding:"required,min=0"`
	MaxOccupancy int64    `json:"maxOccupancy" yaml:"maxOccupancy" binding:"required,min=1"`
	Status       string   `json:"status,omitempty" yaml:"status,omitempty" binding:"omitempty,oneof=Available Occupied Maintenance Reserved"`
	Description  string   `json:"description,omitempty" yaml:"description,omitempty" binding:"max=500"`
}

// -----------------------------------------------------
// RESPONSE BODY
// -----------------------------------------------------

// RoomResponseBody is a room as returned by the backend.
type RoomResponseBody struct {
	Id           ID        `json:"id" yaml:"id"`
	RoomNumber   string    `json:"roomNumber" yaml:"roomNumber"`
	RoomType     string    `json:"roomType" yaml:"roomType"`
	Price        float64   `json:"price" yaml:"price"`
	MaxOccupancy int64     `json:"maxOccupancy" yaml:"maxOccupancy"`
	Status       string    `json:"status" yaml:"status"`
	Description  string    `json:"description,omitempty" yaml:"description,omitempty"`
	CreatedAt    time.Time `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	UpdatedAt    time.Time `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
}

// -----------------------------------------------------
// RESOURCE METHODS
// -----------------------------------------------------

// Room is the typed rooms resource.
type Room struct {
	Untyped *untyped.Room
}

func (r *Room) crud() crud[RoomRequestBody, RoomResponseBody] {
	return crud[RoomRequestBody, RoomResponseBody]{resource: r.Untyped}
}

// ListWithContext returns every room.
func (r *Room) ListWithContext(ctx context.Context) ([]RoomResponseBody, error) {
	return r.crud().list(ctx)
}

func (r *Room) List() ([]RoomResponseBody, error) {
	return r.ListWithContext(context.Background())
}

// CreateWithContext creates a room.
func (r *Room) CreateWithContext(ctx context.Context, req *RoomRequestBody) (*RoomResponseBody, error) {
	return r.crud().create(ctx, req)
}

func (r *Room) Create(req *RoomRequestBody) (*RoomResponseBody, error) {
	return r.CreateWithContext(context.Background(), req)
}

// UpdateWithContext replaces the room with the given id.
func (r *Room) UpdateWithContext(ctx context.Context, id string, req *RoomRequestBody) (*RoomResponseBody, error) {
	return r.crud().update(ctx, id, req)
}

func (r *Room) Update(id string, req *RoomRequestBody) (*RoomResponseBody, error) {
	return r.UpdateWithContext(context.Background(), id, req)
}

// DeleteWithContext deletes the room with the given id.
func (r *Room) DeleteWithContext(ctx context.Context, id string) error {
	return r.crud().delete(ctx, id)
}

func (r *Room) Delete(id string) error {
	return r.DeleteWithContext(context.Background(), id)
}
