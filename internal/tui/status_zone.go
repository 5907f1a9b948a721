package tui

import (
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/hoteldesk/go-hotel-client/internal/colors"
	log "github.com/hoteldesk/go-hotel-client/internal/logging"
	"github.com/hoteldesk/go-hotel-client/internal/msg_types"
)

// StatusZone shows the latest error or info message and the spinner.
type StatusZone struct {
	width    int
	errorMsg string
	infoMsg  string
	warn     bool
	infoTag  int16
}

func NewStatusZone() *StatusZone {
	return &StatusZone{}
}

func (s *StatusZone) SetWidth(width int) {
	s.width = width
}

// SetError sets the error message to display. It stays until cleared.
func (s *StatusZone) SetError(msg string) {
	s.errorMsg = msg
	log.Debug("Error message set", zap.String("message", msg))
}

// SetInfo shows msg until its debounce fires or another message replaces it.
func (s *StatusZone) SetInfo(msg msg_types.InfoMsg, warn bool) {
	s.infoMsg = msg.Message
	s.infoTag = msg.Tag
	s.warn = warn
	log.Debug("Info message set", zap.String("message", msg.Message))
}

// Debounced clears the info message when tag is still the current one.
func (s *StatusZone) Debounced(tag int16) {
	if tag == s.infoTag {
		s.infoMsg = ""
		s.warn = false
	}
}

func (s *StatusZone) ClearError() {
	s.errorMsg = ""
}

func (s *StatusZone) Error() string {
	return s.errorMsg
}

func (s *StatusZone) Info() string {
	return s.infoMsg
}

// View renders the status line: error first, then info, then the spinner.
func (s *StatusZone) View(spinner string) string {
	style := lipgloss.NewStyle()
	if s.width > 0 {
		style = style.Width(s.width)
	}
	switch {
	case s.errorMsg != "":
		return style.Foreground(colors.ErrorColor).Render("✗ " + s.errorMsg)
	case s.infoMsg != "" && s.warn:
		return style.Foreground(colors.WarningColor).Render("! " + s.infoMsg)
	case s.infoMsg != "":
		return style.Foreground(colors.SuccessColor).Render("✓ " + s.infoMsg)
	case spinner != "":
		return style.Render(spinner)
	default:
		return style.Render("")
	}
}
