package core

import (
	"context"
	"net/http"
)

// ResourceAPI is the CRUD surface of one server-managed collection.
type ResourceAPI interface {
	GetResourceName() string
	ListWithContext(ctx context.Context) (RecordSet, error)
	CreateWithContext(ctx context.Context, body Params) (Record, error)
	UpdateWithContext(ctx context.Context, id string, body Params) (Record, error)
	DeleteWithContext(ctx context.Context, id string) error
}

// Resource talks to /api/<name> and /api/<name>/<id>.
type Resource struct {
	name    string
	session RESTSession
}

func NewResource(session RESTSession, name string) *Resource {
	return &Resource{name: name, session: session}
}

func (e *Resource) Session() RESTSession {
	return e.session
}

func (e *Resource) GetResourceName() string {
	return e.name
}

// ListWithContext fetches the whole collection. No pagination or filtering.
func (e *Resource) ListWithContext(ctx context.Context) (RecordSet, error) {
	return Request[RecordSet](ctx, e.session, http.MethodGet, ResourcePath(e.name), nil, nil)
}

// CreateWithContext posts body as a new record and returns the created record.
func (e *Resource) CreateWithContext(ctx context.Context, body Params) (Record, error) {
	return Request[Record](ctx, e.session, http.MethodPost, ResourcePath(e.name), nil, body)
}

// UpdateWithContext replaces the record with the given id by body.
func (e *Resource) UpdateWithContext(ctx context.Context, id string, body Params) (Record, error) {
	if id == "" {
		return nil, &NotFoundError{Resource: e.name, ID: id}
	}
	return Request[Record](ctx, e.session, http.MethodPut, ResourcePath(e.name, id), nil, body)
}

// DeleteWithContext removes the record with the given id.
func (e *Resource) DeleteWithContext(ctx context.Context, id string) error {
	if id == "" {
		return &NotFoundError{Resource: e.name, ID: id}
	}
	_, err := Request[Record](ctx, e.session, http.MethodDelete, ResourcePath(e.name, id), nil, nil)
	return err
}

// GetByIdWithContext returns one record from the collection. The contract has no single-record
// GET, so the collection is listed and searched.
func (e *Resource) GetByIdWithContext(ctx context.Context, id string) (Record, error) {
	records, err := e.ListWithContext(ctx)
	if err != nil {
		return nil, err
	}
	if rec, ok := records.Find(id); ok {
		return rec, nil
	}
	return nil, &NotFoundError{Resource: e.name, ID: id}
}

func (e *Resource) List() (RecordSet, error) {
	return e.ListWithContext(context.Background())
}

func (e *Resource) Create(body Params) (Record, error) {
	return e.CreateWithContext(context.Background(), body)
}

func (e *Resource) Update(id string, body Params) (Record, error) {
	return e.UpdateWithContext(context.Background(), id, body)
}

func (e *Resource) Delete(id string) error {
	return e.DeleteWithContext(context.Background(), id)
}

func (e *Resource) GetById(id string) (Record, error) {
	return e.GetByIdWithContext(context.Background(), id)
}

func (e *Resource) String() string {
	return "Resource(" + e.name + ")"
}
