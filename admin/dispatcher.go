package admin

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hoteldesk/go-hotel-client/core"
)

// Op is a mutation kind.
type Op int

const (
	OpCreate Op = iota
	OpUpdate
	OpDelete
)

func (o Op) String() string {
	switch o {
	case OpCreate:
		return "create"
	case OpUpdate:
		return "update"
	default:
		return "delete"
	}
}

// Guard keys. A triggering action is ignored while a request under its key is pending.
const (
	KeySubmit = "submit"
	KeyDelete = "delete"
)

// MutationMsg carries the result of one create, update or delete.
type MutationMsg struct {
	Resource   string
	Generation uint64
	Op         Op
	Key        string
	ID         string
	Record     core.Record
	Err        error
}

// Dispatcher sends mutations for one resource. Requests are never retried.
type Dispatcher struct {
	resource core.ResourceAPI
	ctx      context.Context
	locks    *core.KeyLocker
	release  map[string]func()
}

func NewDispatcher(ctx context.Context, resource core.ResourceAPI) *Dispatcher {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Dispatcher{
		resource: resource,
		ctx:      ctx,
		locks:    core.NewKeyLocker(),
		release:  make(map[string]func()),
	}
}

// Create posts body as a new record. It returns nil when a submit is already pending.
func (d *Dispatcher) Create(body core.Params) tea.Cmd {
	return d.dispatch(KeySubmit, OpCreate, "", func(ctx context.Context) (core.Record, error) {
		return d.resource.CreateWithContext(ctx, body)
	})
}

// Update replaces the record id with body. It returns nil when a submit is already pending.
func (d *Dispatcher) Update(id string, body core.Params) tea.Cmd {
	return d.dispatch(KeySubmit, OpUpdate, id, func(ctx context.Context) (core.Record, error) {
		return d.resource.UpdateWithContext(ctx, id, body)
	})
}

// Delete removes the record id. It returns nil when a delete of the same id is pending.
func (d *Dispatcher) Delete(id string) tea.Cmd {
	return d.dispatch(DeleteKey(id), OpDelete, id, func(ctx context.Context) (core.Record, error) {
		return nil, d.resource.DeleteWithContext(ctx, id)
	})
}

// DeleteKey is the guard key of a row delete.
func DeleteKey(id string) string {
	return KeyDelete + ":" + id
}

func (d *Dispatcher) dispatch(key string, op Op, id string, call func(context.Context) (core.Record, error)) tea.Cmd {
	release, ok := d.locks.TryLock(key)
	if !ok {
		return nil
	}
	d.release[key] = release
	ctx, name := d.ctx, d.resource.GetResourceName()
	return func() tea.Msg {
		record, err := call(ctx)
		return MutationMsg{Resource: name, Op: op, Key: key, ID: id, Record: record, Err: err}
	}
}

// Settle releases the guard held by the mutation that produced msg.
func (d *Dispatcher) Settle(msg MutationMsg) {
	if release, ok := d.release[msg.Key]; ok {
		delete(d.release, msg.Key)
		release()
	}
}

// Pending reports whether a request under key is in flight.
func (d *Dispatcher) Pending(key string) bool {
	return d.locks.Held(key)
}

// Reset releases every guard. Results of the released requests must be dropped by the caller.
func (d *Dispatcher) Reset() {
	for key, release := range d.release {
		release()
		delete(d.release, key)
	}
}
