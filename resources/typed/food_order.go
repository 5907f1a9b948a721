package typed

import (
	"context"
	"time"

	"github.com/hoteldesk/go-hotel-client/resources/untyped"
)

// FoodOrderRequestBody is the body of POST /api/food-orders and PUT /api/food-orders/<id>.
type FoodOrderRequestBody struct {
	RoomNumber string   `json:"roomNumber" yaml:"roomNumber" binding:"required,max=16"`
	Item       string   `json:"item" yaml:"item" binding:"required,max=100"`
	Quantity   int64    `json:"quantity" yaml:"quantity" binding:"required,min=1"`
	Price      *float64 `json:"price" yaml:"price" binding:"required,min=0"`
	Status     string   `json:"status,omitempty" yaml:"status,omitempty" binding:"omitempty,oneof=Pending Preparing Delivered Cancelled"`
	Notes      string   `json:"notes,omitempty" yaml:"notes,omitempty" binding:"max=500"`
}

// FoodOrderResponseBody is a food order as returned by the backend.
type FoodOrderResponseBody struct {
	Id         ID        `json:"id" yaml:"id"`
	RoomNumber string    `json:"roomNumber" yaml:"roomNumber"`
	Item       string    `json:"item" yaml:"item"`
	Quantity   int64     `json:"quantity" yaml:"quantity"`
	Price      float64   `json:"price" yaml:"price"`
	Status     string    `json:"status" yaml:"status"`
	Notes      string    `json:"notes,omitempty" yaml:"notes,omitempty"`
	CreatedAt  time.Time `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	UpdatedAt  time.Time `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
}

// FoodOrder is the typed food orders resource.
type FoodOrder struct {
	Untyped *untyped.FoodOrder
}

func (f *FoodOrder) crud() crud[FoodOrderRequestBody, FoodOrderResponseBody] {
	return crud[FoodOrderRequestBody, FoodOrderResponseBody]{resource: f.Untyped}
}

func (f *FoodOrder) ListWithContext(ctx context.Context) ([]FoodOrderResponseBody, error) {
	return f.crud().list(ctx)
}

func (f *FoodOrder) List() ([]FoodOrderResponseBody, error) {
	return f.ListWithContext(context.Background())
}

func (f *FoodOrder) CreateWithContext(ctx context.Context, req *FoodOrderRequestBody) (*FoodOrderResponseBody, error) {
	return f.crud().create(ctx, req)
}

func (f *FoodOrder) Create(req *FoodOrderRequestBody) (*FoodOrderResponseBody, error) {
	return f.CreateWithContext(context.Background(), req)
}

func (f *FoodOrder) UpdateWithContext(ctx context.Context, id string, req *FoodOrderRequestBody) (*FoodOrderResponseBody, error) {
	return f.crud().update(ctx, id, req)
}

func (f *FoodOrder) Update(id string, req *FoodOrderRequestBody) (*FoodOrderResponseBody, error) {
	return f.UpdateWithContext(context.Background(), id, req)
}

func (f *FoodOrder) DeleteWithContext(ctx context.Context, id string) error {
	return f.crud().delete(ctx, id)
}

func (f *FoodOrder) Delete(id string) error {
	return f.DeleteWithContext(context.Background(), id)
}
