package admin

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/hoteldesk/go-hotel-client/core"
)

type Level int

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
)

// Notification is a one-shot message for the user.
type Notification struct {
	Level    Level
	Resource string
	Message  string
	Err      error
}

// Notifier receives every notification raised by a screen.
type Notifier interface {
	Notify(Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notification)

func (fn NotifierFunc) Notify(n Notification) {
	fn(n)
}

// Describe turns an error from the REST layer into a short message for the user.
func Describe(err error) string {
	var (
		apiErr       *core.ApiError
		transportErr *core.TransportError
		validErr     *ValidationError
	)
	switch {
	case errors.As(err, &validErr):
		return validErr.Error()
	case errors.As(err, &apiErr):
		if apiErr.StatusCode == 0 {
			return apiErr.Body
		}
		if apiErr.Detail != nil && apiErr.Detail.Message != "" {
			return fmt.Sprintf("%s (%d)", apiErr.Detail.Summary(), apiErr.StatusCode)
		}
		return fmt.Sprintf("server answered %d %s", apiErr.StatusCode, http.StatusText(apiErr.StatusCode))
	case errors.As(err, &transportErr):
		return fmt.Sprintf("cannot reach server: %v", transportErr.Err)
	case err == nil:
		return ""
	default:
		return err.Error()
	}
}
