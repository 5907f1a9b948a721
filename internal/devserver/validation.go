package devserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/hoteldesk/go-hotel-client/admin"
	"github.com/hoteldesk/go-hotel-client/core"
	"github.com/hoteldesk/go-hotel-client/resources/schemas"
)

var tagNameOnce sync.Once

// useJSONNames makes validation errors report json field names instead of Go ones.
func useJSONNames() {
	tagNameOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterTagNameFunc(func(field reflect.StructField) string {
				name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
				if name == "-" {
					return ""
				}
				return name
			})
		}
	})
}

func validateBody(body any) error {
	useJSONNames()
	return binding.Validator.ValidateStruct(body)
}

// fieldErrors maps a binding error onto per-field messages. It returns nil when err
// does not point at a field.
func fieldErrors(err error) map[string]string {
	var (
		validationErrs validator.ValidationErrors
		typeErr        *json.UnmarshalTypeError
	)
	switch {
	case errors.As(err, &validationErrs):
		out := make(map[string]string, len(validationErrs))
		for _, fe := range validationErrs {
			out[fe.Field()] = describeFieldError(fe)
		}
		return out
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return map[string]string{typeErr.Field: "must be a " + kindName(typeErr.Type)}
	default:
		return nil
	}
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of " + strings.Join(strings.Fields(fe.Param()), ", ")
	case "datetime":
		return "must be a date (YYYY-MM-DD)"
	default:
		return "is invalid"
	}
}

func kindName(t reflect.Type) string {
	if t == nil {
		return "valid value"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "whole number"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.String:
		return "text"
	default:
		return t.Kind().String()
	}
}

// applyDefaults fills the fields of collection the client left out with their schema default.
func applyDefaults(collection string, fields core.Params) {
	schema, ok := schemas.ByResource(collection)
	if !ok {
		return
	}
	for _, f := range schema.Fields {
		if f.Default == nil {
			continue
		}
		if v, present := fields[f.Name]; !present || v == "" {
			fields[f.Name] = f.Default
		}
	}
}

// crossCheck runs the record level checks of the collection schema.
func crossCheck(collection string, fields core.Params) map[string]string {
	schema, ok := schemas.ByResource(collection)
	if !ok || schema.Check == nil {
		return nil
	}
	errs := schema.Check(admin.Draft(fields))
	if len(errs) == 0 {
		return nil
	}
	return errs
}
