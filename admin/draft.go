package admin

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/hoteldesk/go-hotel-client/core"
)

// Draft holds the in-progress field values of an open form.
type Draft map[string]any

// Clone returns a shallow copy of the draft.
func (d Draft) Clone() Draft {
	out := make(Draft, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// FieldErrors maps a field name to a message that names the field.
type FieldErrors map[string]string

// Messages returns the messages ordered by field name.
func (fe FieldErrors) Messages() []string {
	names := make([]string, 0, len(fe))
	for name := range fe {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, fe[name])
	}
	return out
}

// ValidationError is returned when a draft fails client side validation. It never reaches the network.
type ValidationError struct {
	Resource string
	Errors   FieldErrors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Resource, strings.Join(e.Errors.Messages(), "; "))
}

// IsValidationErr checks if the error is a ValidationError.
func IsValidationErr(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}

// coerce converts a draft value to the Go type of its field kind:
// float64 for numbers, int64 for integers, string otherwise.
func coerce(f Field, value any) (any, error) {
	switch f.Kind {
	case KindNumber:
		v, err := toFloat(value)
		if err != nil {
			return nil, err
		}
		if !finite(v) {
			return nil, fmt.Errorf("%v is not a finite number", v)
		}
		return v, nil
	case KindInteger:
		switch v := value.(type) {
		case int:
			return int64(v), nil
		case int64:
			return v, nil
		case float64:
			if !finite(v) || v != math.Trunc(v) {
				return nil, fmt.Errorf("%v is not a whole number", v)
			}
			return int64(v), nil
		case json.Number:
			return v.Int64()
		case string:
			return strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		}
	default:
		if s, ok := value.(string); ok {
			return strings.TrimSpace(s), nil
		}
		return core.FormatScalar(value), nil
	}
	return nil, fmt.Errorf("unsupported %s value %T", f.Kind, value)
}

func toFloat(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case json.Number:
		return v.Float64()
	case string:
		return strconv.ParseFloat(strings.TrimSpace(v), 64)
	}
	return 0, fmt.Errorf("unsupported number value %T", value)
}

func finite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

// parseText turns raw text input into a draft value. Text that does not parse
// as the field kind is kept verbatim so validation can report it.
func parseText(f Field, text string) any {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}
	switch f.Kind {
	case KindNumber:
		if v, err := strconv.ParseFloat(trimmed, 64); err == nil && finite(v) {
			return v
		}
	case KindInteger:
		if v, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
			return v
		}
	}
	return trimmed
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	return errors.As(err, target)
}
