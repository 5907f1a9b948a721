package admin

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hoteldesk/go-hotel-client/core"
)

// LoadedMsg carries the result of one collection fetch.
type LoadedMsg struct {
	Resource   string
	Generation uint64
	Seq        uint64
	Records    core.RecordSet
	Err        error
}

// Loader owns the collection view of one resource.
//
// Every Load gets a sequence number. Only the result of the last issued load is applied,
// so the view never goes back to an older snapshot.
type Loader struct {
	resource core.ResourceAPI
	ctx      context.Context

	issued  uint64
	loading bool
	stale   bool
	loaded  bool
	records core.RecordSet
}

func NewLoader(ctx context.Context, resource core.ResourceAPI) *Loader {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Loader{resource: resource, ctx: ctx}
}

// Load fetches the whole collection. It returns nil while a load is already in flight.
func (l *Loader) Load() tea.Cmd {
	if l.loading {
		return nil
	}
	return l.issue()
}

func (l *Loader) issue() tea.Cmd {
	l.issued++
	l.loading = true
	l.stale = false
	seq := l.issued
	resource, ctx := l.resource, l.ctx
	return func() tea.Msg {
		records, err := resource.ListWithContext(ctx)
		return LoadedMsg{Resource: resource.GetResourceName(), Seq: seq, Records: records, Err: err}
	}
}

// Invalidate marks the view outdated and reloads it. When a load is in flight
// a new one is issued as soon as it settles, so the applied snapshot always postdates the call.
func (l *Loader) Invalidate() tea.Cmd {
	if l.loading {
		l.stale = true
		return nil
	}
	return l.issue()
}

// Apply settles a load. It reports whether msg was the current load and returns
// the follow-up load requested by Invalidate, if any. A failed load keeps the previous view.
func (l *Loader) Apply(msg LoadedMsg) (bool, tea.Cmd) {
	if msg.Seq != l.issued || !l.loading {
		return false, nil
	}
	l.loading = false
	if msg.Err == nil {
		records := msg.Records
		if records == nil {
			records = core.RecordSet{}
		}
		l.records = records
		l.loaded = true
	}
	if l.stale {
		return true, l.issue()
	}
	return true, nil
}

// Reset empties the view and forgets any load in flight.
func (l *Loader) Reset() {
	l.loading = false
	l.stale = false
	l.loaded = false
	l.records = nil
}

func (l *Loader) Records() core.RecordSet {
	return l.records
}

// Find returns the record with the given id from the current view.
func (l *Loader) Find(id string) (core.Record, bool) {
	return l.records.Find(id)
}

func (l *Loader) Loading() bool {
	return l.loading
}

// Loaded reports whether at least one load succeeded.
func (l *Loader) Loaded() bool {
	return l.loaded
}
