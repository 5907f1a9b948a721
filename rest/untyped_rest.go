package rest

import (
	"context"
	"fmt"
	"reflect"
	"sort"

	"github.com/hoteldesk/go-hotel-client/core"
	"github.com/hoteldesk/go-hotel-client/resources/untyped"
)

// UntypedResourceType is satisfied by every untyped resource. All of them embed *core.Resource.
type UntypedResourceType interface {
	core.ResourceAPI
}

type UntypedHotelRest struct {
	ctx         context.Context
	Session     core.RESTSession
	resourceMap map[string]core.ResourceAPI // keyed by collection path

	Rooms      *untyped.Room
	Bookings   *untyped.Booking
	FoodOrders *untyped.FoodOrder
}

func NewUntypedHotelRest(config *core.Config) (*UntypedHotelRest, error) {
	session, err := core.NewSession(config)
	if err != nil {
		return nil, err
	}
	return newUntypedHotelRest(session), nil
}

// NewUntypedHotelRestFromSession wraps an existing session, e.g. a test double.
func NewUntypedHotelRestFromSession(session core.RESTSession) *UntypedHotelRest {
	return newUntypedHotelRest(session)
}

func newUntypedHotelRest(session core.RESTSession) *UntypedHotelRest {
	rest := &UntypedHotelRest{
		ctx:         context.Background(),
		Session:     session,
		resourceMap: make(map[string]core.ResourceAPI),
	}
	rest.Rooms = newUntypedResource[untyped.Room](rest, "rooms")
	rest.Bookings = newUntypedResource[untyped.Booking](rest, "bookings")
	rest.FoodOrders = newUntypedResource[untyped.FoodOrder](rest, "food-orders")
	return rest
}

func (rest *UntypedHotelRest) GetSession() core.RESTSession {
	return rest.Session
}

// GetResource returns the resource served under /api/<path>.
func (rest *UntypedHotelRest) GetResource(path string) (core.ResourceAPI, error) {
	if res, ok := rest.resourceMap[path]; ok {
		return res, nil
	}
	return nil, fmt.Errorf("unknown resource %q, expected one of %v", path, rest.ResourceNames())
}

// ResourceNames returns the collection paths of all resources, sorted.
func (rest *UntypedHotelRest) ResourceNames() []string {
	names := make([]string, 0, len(rest.resourceMap))
	for name := range rest.resourceMap {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (rest *UntypedHotelRest) GetCtx() context.Context {
	return rest.ctx
}

func (rest *UntypedHotelRest) SetCtx(ctx context.Context) {
	rest.ctx = ctx
}

func newUntypedResource[T any](rest *UntypedHotelRest, resourcePath string) *T {
	var zero T
	t := reflect.TypeOf(zero)
	instance := reflect.New(t).Interface()
	resource := core.NewResource(rest.Session, resourcePath)

	// All untyped resources embed *core.Resource
	val := reflect.ValueOf(instance).Elem()
	found := false
	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		if field.Type() == reflect.TypeOf((*core.Resource)(nil)) && field.CanSet() {
			field.Set(reflect.ValueOf(resource))
			found = true
			break
		}
	}
	if !found {
		panic(fmt.Sprintf("Resource %s does not embed *core.Resource or field is not settable", t.Name()))
	}

	if res, ok := instance.(UntypedResourceType); ok {
		rest.resourceMap[resourcePath] = res
	}
	if result, ok := instance.(*T); ok {
		return result
	}
	panic(fmt.Sprintf("Failed to convert instance to type *%s", t.Name()))
}
