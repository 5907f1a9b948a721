package admin_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoteldesk/go-hotel-client/admin"
	"github.com/hoteldesk/go-hotel-client/core"
	"github.com/hoteldesk/go-hotel-client/resources/schemas"
)

func TestForm_OpenCreateUsesDefaults(t *testing.T) {
	form := admin.NewForm(schemas.Rooms())
	assert.False(t, form.Open())

	form.OpenCreate()
	assert.Equal(t, admin.ModeCreate, form.Mode())
	assert.Equal(t, admin.Draft{"status": "Available"}, form.Draft())
	assert.Empty(t, form.EditID())
}

func TestForm_SetIsShallowMerge(t *testing.T) {
	form := admin.NewForm(schemas.Rooms())
	form.OpenEdit(core.Record{"id": "r1", "roomNumber": "101", "price": 50.0, "extra": "kept"})

	form.Set("price", 70.0)
	draft := form.Draft()
	assert.Equal(t, 70.0, draft["price"])
	assert.Equal(t, "101", draft["roomNumber"])
	assert.Equal(t, "kept", draft["extra"])

	draft["roomNumber"] = "999"
	assert.Equal(t, "101", form.Value("roomNumber"), "Draft returns a copy")
}

func TestForm_SetIgnoredWhenClosed(t *testing.T) {
	form := admin.NewForm(schemas.Rooms())
	form.Set("price", 1.0)
	assert.Nil(t, form.Draft())
}

func TestForm_SetText(t *testing.T) {
	tests := []struct {
		name  string
		field string
		text  string
		want  any
	}{
		{name: "text is trimmed", field: "roomNumber", text: " 101 ", want: "101"},
		{name: "number", field: "price", text: "49.5", want: 49.5},
		{name: "integer", field: "maxOccupancy", text: "3", want: int64(3)},
		{name: "invalid number kept verbatim", field: "price", text: "cheap", want: "cheap"},
		{name: "infinity kept verbatim", field: "price", text: "Inf", want: "Inf"},
		{name: "fraction for integer kept verbatim", field: "maxOccupancy", text: "2.5", want: "2.5"},
		{name: "blank clears", field: "description", text: "   ", want: nil},
		{name: "unknown field is text", field: "floor", text: "3", want: "3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := admin.NewForm(schemas.Rooms())
			form.OpenCreate()
			form.SetText(tt.field, tt.text)
			assert.Equal(t, tt.want, form.Value(tt.field))
		})
	}
}

func TestForm_Validate(t *testing.T) {
	valid := func(form *admin.Form) {
		fillRoom(form, "101", "Single", "50", "2")
	}
	tests := []struct {
		name    string
		mutate  func(*admin.Form)
		field   string
		message string
	}{
		{name: "required", mutate: func(f *admin.Form) { f.SetText("roomType", "") }, field: "roomType", message: "Type is required"},
		{name: "negative price", mutate: func(f *admin.Form) { f.SetText("price", "-1") }, field: "price", message: "Price must be at least 0"},
		{name: "price not a number", mutate: func(f *admin.Form) { f.SetText("price", "cheap") }, field: "price", message: "Price must be a number"},
		{name: "infinite price", mutate: func(f *admin.Form) { f.SetText("price", "Inf") }, field: "price", message: "Price must be a number"},
		{name: "signed infinite price", mutate: func(f *admin.Form) { f.SetText("price", "+Inf") }, field: "price", message: "Price must be a number"},
		{name: "spelled infinity", mutate: func(f *admin.Form) { f.SetText("price", "infinity") }, field: "price", message: "Price must be a number"},
		{name: "NaN price", mutate: func(f *admin.Form) { f.SetText("price", "NaN") }, field: "price", message: "Price must be a number"},
		{name: "infinite value set directly", mutate: func(f *admin.Form) { f.Set("price", math.Inf(1)) }, field: "price", message: "Price must be a number"},
		{name: "zero occupancy", mutate: func(f *admin.Form) { f.SetText("maxOccupancy", "0") }, field: "maxOccupancy", message: "Max occupancy must be at least 1"},
		{name: "fractional occupancy", mutate: func(f *admin.Form) { f.SetText("maxOccupancy", "1.5") }, field: "maxOccupancy", message: "Max occupancy must be a whole number"},
		{name: "unknown type", mutate: func(f *admin.Form) { f.SetText("roomType", "Penthouse") }, field: "roomType", message: "Type must be one of Single, Double, Suite, Deluxe"},
		{name: "long room number", mutate: func(f *admin.Form) { f.SetText("roomNumber", "12345678901234567") }, field: "roomNumber", message: "Room number must be at most 16 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := admin.NewForm(schemas.Rooms())
			form.OpenCreate()
			valid(form)
			tt.mutate(form)

			errs := form.Validate()
			require.Len(t, errs, 1, "errors: %v", errs)
			assert.Equal(t, tt.message, errs[tt.field])
			assert.Equal(t, errs, form.Errors())
		})
	}

	t.Run("valid draft", func(t *testing.T) {
		form := admin.NewForm(schemas.Rooms())
		form.OpenCreate()
		valid(form)
		assert.Nil(t, form.Validate())
		assert.Nil(t, form.Errors())
	})
}

func TestForm_ValidateDate(t *testing.T) {
	form := admin.NewForm(schemas.Bookings())
	form.OpenCreate()
	form.SetText("guestName", "Ann")
	form.SetText("roomNumber", "101")
	form.SetText("checkIn", "05/03/2026")
	form.SetText("checkOut", "2026-03-07")
	form.SetText("guests", "1")

	errs := form.Validate()
	assert.Equal(t, admin.FieldErrors{"checkIn": "Check-in must be a date (YYYY-MM-DD)"}, errs)
}

func TestForm_Body(t *testing.T) {
	form := admin.NewForm(schemas.Rooms())
	form.OpenEdit(core.Record{
		"id":           "r1",
		"roomNumber":   "101",
		"roomType":     "Single",
		"price":        50.0,
		"maxOccupancy": 2.0,
		"status":       "Available",
		"description":  "",
		"createdAt":    "2026-01-01T00:00:00Z",
	})

	assert.Equal(t, core.Params{
		"roomNumber":   "101",
		"roomType":     "Single",
		"price":        50.0,
		"maxOccupancy": int64(2),
		"status":       "Available",
	}, form.Body())
}

func TestForm_BodyFormatsNumericText(t *testing.T) {
	form := admin.NewForm(schemas.Rooms())
	form.OpenCreate()
	fillRoom(form, "101", "Single", "50", "2")
	form.Set("roomNumber", 1000000.0)
	form.Set("description", int64(42))

	body := form.Body()
	assert.Equal(t, "1000000", body["roomNumber"])
	assert.Equal(t, "42", body["description"])
}

func TestForm_SetServerErrors(t *testing.T) {
	form := admin.NewForm(schemas.FoodOrders())
	form.OpenCreate()
	applied := form.SetServerErrors(map[string]string{"quantity": "too many", "kitchen": "closed"})
	assert.Equal(t, 1, applied)
	assert.Equal(t, admin.FieldErrors{"quantity": "Quantity: too many"}, form.Errors())

	form.Close()
	assert.Nil(t, form.Errors())
	assert.Equal(t, admin.ModeClosed, form.Mode())
}

func TestValidationError(t *testing.T) {
	err := &admin.ValidationError{Resource: "room", Errors: admin.FieldErrors{
		"price":      "Price must be at least 0",
		"roomNumber": "Room number is required",
	}}
	assert.Equal(t, "invalid room: Price must be at least 0; Room number is required", err.Error())
	assert.True(t, admin.IsValidationErr(err))
}
