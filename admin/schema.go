package admin

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/hoteldesk/go-hotel-client/core"
)

// Kind tells the form how to parse input for a field and the presenter how to render it.
type Kind int

const (
	KindText Kind = iota
	KindNumber
	KindInteger
	KindEnum
	KindDate
)

// DateLayout is the wire format of KindDate fields.
const DateLayout = "2006-01-02"

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindInteger:
		return "whole number"
	case KindEnum:
		return "choice"
	case KindDate:
		return "date"
	default:
		return "text"
	}
}

// Field describes one editable attribute of a resource record.
type Field struct {
	// Name is the JSON key on the wire.
	Name  string
	Label string
	Kind  Kind
	// Required fields must be non-empty before a request is sent.
	Required bool
	// Rules are go-playground/validator rules applied to the parsed value, e.g. "min=0".
	// Enum fields get a "oneof" rule from Options automatically.
	Rules   string
	Options []string
	// Default seeds the draft of a create form.
	Default any
	// Hidden fields are editable but not shown as table columns.
	Hidden bool
	// Format overrides the cell rendering of the field.
	Format func(any) string
}

func (f Field) rules() string {
	rules := f.Rules
	if f.Kind == KindEnum && len(f.Options) > 0 {
		rules = joinRules(rules, "oneof="+strings.Join(f.Options, " "))
	}
	if f.Kind == KindDate {
		rules = joinRules(rules, "datetime="+DateLayout)
	}
	return rules
}

func joinRules(a, b string) string {
	if a == "" {
		return b
	}
	return a + "," + b
}

// Schema describes a resource collection managed by one admin screen.
type Schema struct {
	// Resource is the collection path segment: /api/<Resource>.
	Resource string
	Title    string
	Singular string
	Fields   []Field
	// Check runs after the per-field rules passed and may report cross-field errors.
	Check func(Draft) FieldErrors
}

// Field returns the field with the given name.
func (s *Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Columns returns the fields shown in the table, in declaration order.
func (s *Schema) Columns() []Field {
	columns := make([]Field, 0, len(s.Fields))
	for _, f := range s.Fields {
		if !f.Hidden {
			columns = append(columns, f)
		}
	}
	return columns
}

// Defaults returns a draft holding the Default of every field that has one.
func (s *Schema) Defaults() Draft {
	draft := Draft{}
	for _, f := range s.Fields {
		if f.Default != nil {
			draft[f.Name] = f.Default
		}
	}
	return draft
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateField checks a single draft value against the field's kind, required flag and rules.
// An empty string means the value is valid.
func validateField(f Field, value any) string {
	if isBlank(value) {
		if f.Required {
			return fmt.Sprintf("%s is required", f.Label)
		}
		return ""
	}
	parsed, err := coerce(f, value)
	if err != nil {
		return fmt.Sprintf("%s must be a %s", f.Label, f.Kind)
	}
	rules := f.rules()
	if rules == "" {
		return ""
	}
	if err = validate.Var(parsed, rules); err != nil {
		return describeRule(f, err)
	}
	return ""
}

func describeRule(f Field, err error) string {
	var verrs validator.ValidationErrors
	if ok := asValidationErrors(err, &verrs); !ok || len(verrs) == 0 {
		return fmt.Sprintf("%s is invalid", f.Label)
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "min", "gte":
		if f.Kind == KindText {
			return fmt.Sprintf("%s must be at least %s characters", f.Label, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", f.Label, fe.Param())
	case "max", "lte":
		if f.Kind == KindText {
			return fmt.Sprintf("%s must be at most %s characters", f.Label, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", f.Label, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", f.Label, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", f.Label, strings.Join(f.Options, ", "))
	case "datetime":
		return fmt.Sprintf("%s must be a date (YYYY-MM-DD)", f.Label)
	default:
		return fmt.Sprintf("%s is invalid", f.Label)
	}
}

func isBlank(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	default:
		return false
	}
}

// FormatCurrency renders a number as a dollar amount, e.g. "$50" or "$49.5".
func FormatCurrency(v any) string {
	if isBlank(v) {
		return ""
	}
	return "$" + core.FormatScalar(v)
}
