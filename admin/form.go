package admin

import (
	"github.com/hoteldesk/go-hotel-client/core"
)

// Mode is the purpose an open form was opened for.
type Mode int

const (
	ModeClosed Mode = iota
	ModeCreate
	ModeEdit
)

func (m Mode) String() string {
	switch m {
	case ModeCreate:
		return "create"
	case ModeEdit:
		return "edit"
	default:
		return "closed"
	}
}

// Form binds a draft to either an empty template (create) or a selected record (edit).
type Form struct {
	schema *Schema
	mode   Mode
	editID string
	draft  Draft
	errors FieldErrors
}

func NewForm(schema *Schema) *Form {
	return &Form{schema: schema}
}

// OpenCreate starts a create form seeded with the schema defaults.
func (f *Form) OpenCreate() {
	f.mode = ModeCreate
	f.editID = ""
	f.draft = f.schema.Defaults()
	f.errors = nil
}

// OpenEdit starts an edit form. The draft is a field-for-field copy of record.
func (f *Form) OpenEdit(record core.Record) {
	f.mode = ModeEdit
	f.editID = record.RecordID()
	f.draft = Draft(record.Clone())
	f.errors = nil
}

// Close discards the draft.
func (f *Form) Close() {
	f.mode = ModeClosed
	f.editID = ""
	f.draft = nil
	f.errors = nil
}

func (f *Form) Open() bool {
	return f.mode != ModeClosed
}

func (f *Form) Mode() Mode {
	return f.mode
}

// EditID is the id of the record being edited, empty for create forms.
func (f *Form) EditID() string {
	return f.editID
}

func (f *Form) Schema() *Schema {
	return f.schema
}

// Draft returns a copy of the current draft.
func (f *Form) Draft() Draft {
	if f.draft == nil {
		return nil
	}
	return f.draft.Clone()
}

// Value returns the current draft value of one field.
func (f *Form) Value(name string) any {
	return f.draft[name]
}

// Errors returns the inline messages of the last validation or server response.
func (f *Form) Errors() FieldErrors {
	return f.errors
}

// Set merges one field into the draft. Other fields are untouched.
func (f *Form) Set(name string, value any) {
	if !f.Open() {
		return
	}
	f.draft[name] = value
	delete(f.errors, name)
}

// SetText parses text by the kind of the field and merges the result.
func (f *Form) SetText(name, text string) {
	field, ok := f.schema.Field(name)
	if !ok {
		field = Field{Name: name, Kind: KindText}
	}
	f.Set(name, parseText(field, text))
}

// Validate applies every field rule and the schema check. The result is also kept for Errors.
func (f *Form) Validate() FieldErrors {
	errs := FieldErrors{}
	for _, field := range f.schema.Fields {
		if msg := validateField(field, f.draft[field.Name]); msg != "" {
			errs[field.Name] = msg
		}
	}
	if len(errs) == 0 && f.schema.Check != nil {
		for name, msg := range f.schema.Check(f.draft) {
			errs[name] = msg
		}
	}
	if len(errs) == 0 {
		f.errors = nil
		return nil
	}
	f.errors = errs
	return errs
}

// SetServerErrors shows per-field messages returned by the server. Keys that are not schema fields are ignored.
// It returns how many messages were applied.
func (f *Form) SetServerErrors(fieldErrors map[string]string) int {
	applied := 0
	for name, msg := range fieldErrors {
		field, ok := f.schema.Field(name)
		if !ok {
			continue
		}
		if f.errors == nil {
			f.errors = FieldErrors{}
		}
		f.errors[name] = field.Label + ": " + msg
		applied++
	}
	return applied
}

// Body builds the request body from the schema fields of the draft.
// Blank optional fields are omitted and values are converted to their kind.
func (f *Form) Body() core.Params {
	body := core.Params{}
	for _, field := range f.schema.Fields {
		value, ok := f.draft[field.Name]
		if !ok || isBlank(value) {
			if field.Required {
				body[field.Name] = value
			}
			continue
		}
		if parsed, err := coerce(field, value); err == nil {
			body[field.Name] = parsed
		} else {
			body[field.Name] = value
		}
	}
	return body
}
