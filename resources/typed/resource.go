package typed

import (
	"context"

	"github.com/hoteldesk/go-hotel-client/core"
)

// crud implements typed CRUD calls on top of an untyped resource.
type crud[Req any, Resp any] struct {
	resource core.ResourceAPI
}

func (c crud[Req, Resp]) list(ctx context.Context) ([]Resp, error) {
	records, err := c.resource.ListWithContext(ctx)
	if err != nil {
		return nil, err
	}
	response := make([]Resp, 0, len(records))
	if err = records.Fill(&response); err != nil {
		return nil, err
	}
	return response, nil
}

func (c crud[Req, Resp]) create(ctx context.Context, req *Req) (*Resp, error) {
	params, err := core.NewParamsFromStruct(req)
	if err != nil {
		return nil, err
	}
	record, err := c.resource.CreateWithContext(ctx, params)
	if err != nil {
		return nil, err
	}
	var response Resp
	if err = record.Fill(&response); err != nil {
		return nil, err
	}
	return &response, nil
}

func (c crud[Req, Resp]) update(ctx context.Context, id string, req *Req) (*Resp, error) {
	params, err := core.NewParamsFromStruct(req)
	if err != nil {
		return nil, err
	}
	record, err := c.resource.UpdateWithContext(ctx, id, params)
	if err != nil {
		return nil, err
	}
	var response Resp
	if err = record.Fill(&response); err != nil {
		return nil, err
	}
	return &response, nil
}

func (c crud[Req, Resp]) delete(ctx context.Context, id string) error {
	return c.resource.DeleteWithContext(ctx, id)
}
