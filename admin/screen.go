package admin

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hoteldesk/go-hotel-client/core"
)

// State of an admin screen.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateFormOpenCreate
	StateFormOpenEdit
	StateSubmitting
	StateError
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "Loading"
	case StateFormOpenCreate:
		return "FormOpen-Create"
	case StateFormOpenEdit:
		return "FormOpen-Edit"
	case StateSubmitting:
		return "Submitting"
	case StateError:
		return "Error"
	default:
		return "Idle"
	}
}

// DefaultErrorHold is how long a screen stays in StateError after a failed delete.
const DefaultErrorHold = 3 * time.Second

// ErrorExpiredMsg ends the error hold started by a failed delete.
type ErrorExpiredMsg struct {
	Resource   string
	Generation uint64
	Tag        int
}

type ScreenOption func(*Screen)

// WithErrorHold sets how long the screen stays in StateError.
func WithErrorHold(d time.Duration) ScreenOption {
	return func(s *Screen) { s.errorHold = d }
}

// WithContext sets the context every request of the screen runs with.
func WithContext(ctx context.Context) ScreenOption {
	return func(s *Screen) { s.ctx = ctx }
}

// WithOnLoaded registers a hook called with every applied successful load.
func WithOnLoaded(fn func(resource string, records core.RecordSet)) ScreenOption {
	return func(s *Screen) { s.onLoaded = fn }
}

// Screen drives the list, create, edit and delete flow of one resource.
// All methods must be called from the bubbletea update loop.
type Screen struct {
	schema     *Schema
	loader     *Loader
	form       *Form
	dispatcher *Dispatcher
	presenter  Presenter
	notifier   Notifier

	ctx        context.Context
	errorHold  time.Duration
	onLoaded   func(string, core.RecordSet)
	active     bool
	generation uint64
	submitting bool
	inError    bool
	errorTag   int
}

func NewScreen(schema *Schema, resource core.ResourceAPI, notifier Notifier, opts ...ScreenOption) *Screen {
	s := &Screen{
		schema:    schema,
		form:      NewForm(schema),
		presenter: NewPresenter(schema),
		notifier:  notifier,
		errorHold: DefaultErrorHold,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.notifier == nil {
		s.notifier = NotifierFunc(func(Notification) {})
	}
	s.loader = NewLoader(s.ctx, resource)
	s.dispatcher = NewDispatcher(s.ctx, resource)
	return s
}

// Mount activates the screen with an empty view and starts the first load.
func (s *Screen) Mount() tea.Cmd {
	s.generation++
	s.active = true
	s.submitting = false
	s.inError = false
	s.form.Close()
	s.loader.Reset()
	s.dispatcher.Reset()
	return s.stamp(s.loader.Load())
}

// Unmount deactivates the screen. Results that arrive afterwards are dropped.
func (s *Screen) Unmount() {
	s.active = false
}

func (s *Screen) Active() bool {
	return s.active
}

func (s *Screen) State() State {
	switch {
	case s.submitting:
		return StateSubmitting
	case s.form.Mode() == ModeCreate:
		return StateFormOpenCreate
	case s.form.Mode() == ModeEdit:
		return StateFormOpenEdit
	case s.inError:
		return StateError
	case s.loader.Loading():
		return StateLoading
	default:
		return StateIdle
	}
}

func (s *Screen) Schema() *Schema {
	return s.schema
}

func (s *Screen) Form() *Form {
	return s.form
}

func (s *Screen) Records() core.RecordSet {
	return s.loader.Records()
}

func (s *Screen) Headers() []string {
	return s.presenter.Headers()
}

func (s *Screen) Rows() []Row {
	return s.presenter.Rows(s.loader.Records())
}

// Loaded reports whether the collection was fetched at least once since mount.
func (s *Screen) Loaded() bool {
	return s.loader.Loaded()
}

// Deleting reports whether a delete of id is in flight.
func (s *Screen) Deleting(id string) bool {
	return s.dispatcher.Pending(DeleteKey(id))
}

// Refresh reloads the collection. Ignored while a load is in flight.
func (s *Screen) Refresh() tea.Cmd {
	if !s.active {
		return nil
	}
	s.clearError()
	return s.stamp(s.loader.Load())
}

// Add opens an empty create form. It reports whether the form was opened.
func (s *Screen) Add() bool {
	if !s.active || s.form.Open() {
		return false
	}
	s.clearError()
	s.form.OpenCreate()
	return true
}

// Edit opens the form for the record shown at rowIndex.
func (s *Screen) Edit(rowIndex int) bool {
	if !s.active || s.form.Open() {
		return false
	}
	records := s.loader.Records()
	if rowIndex < 0 || rowIndex >= len(records) {
		return false
	}
	s.clearError()
	s.form.OpenEdit(records[rowIndex])
	return true
}

// Cancel closes the form and drops the draft. Ignored while submitting.
func (s *Screen) Cancel() bool {
	if s.submitting || !s.form.Open() {
		return false
	}
	s.form.Close()
	return true
}

// Submit validates the draft and sends it. Invalid drafts never reach the network.
func (s *Screen) Submit() tea.Cmd {
	if !s.active || !s.form.Open() || s.submitting {
		return nil
	}
	if errs := s.form.Validate(); len(errs) > 0 {
		err := &ValidationError{Resource: s.schema.Singular, Errors: errs}
		s.notify(LevelWarn, err.Error(), err)
		return nil
	}
	var cmd tea.Cmd
	if s.form.Mode() == ModeCreate {
		cmd = s.dispatcher.Create(s.form.Body())
	} else {
		cmd = s.dispatcher.Update(s.form.EditID(), s.form.Body())
	}
	if cmd == nil {
		return nil
	}
	s.submitting = true
	return s.stamp(cmd)
}

// Delete removes the record shown at rowIndex. Ignored while the form is open
// or while a delete of the same record is pending.
func (s *Screen) Delete(rowIndex int) tea.Cmd {
	if !s.active || s.form.Open() {
		return nil
	}
	records := s.loader.Records()
	if rowIndex < 0 || rowIndex >= len(records) {
		return nil
	}
	s.clearError()
	return s.stamp(s.dispatcher.Delete(records[rowIndex].RecordID()))
}

// Update handles the result messages of this screen. Messages of other screens,
// of an older mount or arriving after Unmount are ignored.
func (s *Screen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case LoadedMsg:
		if !s.accepts(msg.Resource, msg.Generation) {
			return nil
		}
		applied, next := s.loader.Apply(msg)
		if applied {
			if msg.Err != nil {
				s.notify(LevelError, fmt.Sprintf("Failed to load %s: %s", s.schema.Title, Describe(msg.Err)), msg.Err)
			} else if s.onLoaded != nil {
				s.onLoaded(s.schema.Resource, s.loader.Records())
			}
		}
		return s.stamp(next)

	case MutationMsg:
		if !s.accepts(msg.Resource, msg.Generation) {
			return nil
		}
		s.dispatcher.Settle(msg)
		if msg.Op == OpDelete {
			return s.deleted(msg)
		}
		return s.submitted(msg)

	case ErrorExpiredMsg:
		if s.accepts(msg.Resource, msg.Generation) && msg.Tag == s.errorTag {
			s.inError = false
		}
	}
	return nil
}

func (s *Screen) submitted(msg MutationMsg) tea.Cmd {
	s.submitting = false
	if msg.Err != nil {
		if apiErr, ok := core.AsApiError(msg.Err); ok && s.form.Open() {
			s.form.SetServerErrors(apiErr.FieldErrors())
		}
		s.notify(LevelError, fmt.Sprintf("Failed to %s %s: %s", msg.Op, s.schema.Singular, Describe(msg.Err)), msg.Err)
		return nil
	}
	s.form.Close()
	s.notify(LevelInfo, fmt.Sprintf("%s %sd", capitalize(s.schema.Singular), msg.Op), nil)
	return s.stamp(s.loader.Invalidate())
}

func (s *Screen) deleted(msg MutationMsg) tea.Cmd {
	if msg.Err != nil {
		s.notify(LevelError, fmt.Sprintf("Failed to delete %s %s: %s", s.schema.Singular, msg.ID, Describe(msg.Err)), msg.Err)
		s.inError = true
		s.errorTag++
		tag, gen, resource := s.errorTag, s.generation, s.schema.Resource
		return tea.Tick(s.errorHold, func(time.Time) tea.Msg {
			return ErrorExpiredMsg{Resource: resource, Generation: gen, Tag: tag}
		})
	}
	s.notify(LevelInfo, fmt.Sprintf("%s %s deleted", capitalize(s.schema.Singular), msg.ID), nil)
	return s.stamp(s.loader.Invalidate())
}

func (s *Screen) accepts(resource string, generation uint64) bool {
	return s.active && resource == s.schema.Resource && generation == s.generation
}

func (s *Screen) clearError() {
	s.inError = false
}

func (s *Screen) notify(level Level, message string, err error) {
	s.notifier.Notify(Notification{Level: level, Resource: s.schema.Resource, Message: message, Err: err})
}

// stamp tags the result of cmd with the current mount generation.
func (s *Screen) stamp(cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	generation := s.generation
	return func() tea.Msg {
		switch msg := cmd().(type) {
		case LoadedMsg:
			msg.Generation = generation
			return msg
		case MutationMsg:
			msg.Generation = generation
			return msg
		default:
			return msg
		}
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}
