package untyped

import (
	"context"

	"github.com/hoteldesk/go-hotel-client/core"
)

type Room struct {
	*core.Resource
}

// ByNumberWithContext returns the room with the given room number.
func (r *Room) ByNumberWithContext(ctx context.Context, roomNumber string) (core.Record, error) {
	return findBy(ctx, r.Resource, "roomNumber", roomNumber)
}

func (r *Room) ByNumber(roomNumber string) (core.Record, error) {
	return r.ByNumberWithContext(context.Background(), roomNumber)
}

type Booking struct {
	*core.Resource
}

// ForRoomWithContext returns the bookings of one room. The backend has no filters, the list is filtered locally.
func (b *Booking) ForRoomWithContext(ctx context.Context, roomNumber string) (core.RecordSet, error) {
	return filterBy(ctx, b.Resource, "roomNumber", roomNumber)
}

func (b *Booking) ForRoom(roomNumber string) (core.RecordSet, error) {
	return b.ForRoomWithContext(context.Background(), roomNumber)
}

type FoodOrder struct {
	*core.Resource
}

// ForRoomWithContext returns the food orders of one room.
func (f *FoodOrder) ForRoomWithContext(ctx context.Context, roomNumber string) (core.RecordSet, error) {
	return filterBy(ctx, f.Resource, "roomNumber", roomNumber)
}

func (f *FoodOrder) ForRoom(roomNumber string) (core.RecordSet, error) {
	return f.ForRoomWithContext(context.Background(), roomNumber)
}

func filterBy(ctx context.Context, resource *core.Resource, key, value string) (core.RecordSet, error) {
	records, err := resource.ListWithContext(ctx)
	if err != nil {
		return nil, err
	}
	out := core.RecordSet{}
	for _, record := range records {
		if core.FormatScalar(record[key]) == value {
			out = append(out, record)
		}
	}
	return out, nil
}

func findBy(ctx context.Context, resource *core.Resource, key, value string) (core.Record, error) {
	records, err := filterBy(ctx, resource, key, value)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, &core.NotFoundError{Resource: resource.GetResourceName(), ID: key + "=" + value}
	}
	return records[0], nil
}
