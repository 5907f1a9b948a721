package msg_types

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// InfoDebounce is how long an info message stays in the status zone.
const InfoDebounce = 4 * time.Second

var infoCounter = Counter{1}

// ErrorMsg is a message for displaying errors
type ErrorMsg struct {
	Err error
}

// InfoMsg is a message for displaying info messages
type InfoMsg struct {
	Message string
	Tag     int16 // Used for debouncing
}

// InfoDebounceMsg is sent after delay to auto-clear info messages
type InfoDebounceMsg struct {
	Tag int16 // If this matches current tag, clear the info message
}

// ClearErrorMsg is a message for clearing errors from status zone
type ClearErrorMsg struct{}

// SetScreenMsg switches the app to the screen of Resource.
type SetScreenMsg struct {
	Resource string
}

// ClipboardMsg reports the outcome of a clipboard copy.
type ClipboardMsg struct {
	Text string
	Err  error
}

// NewInfo returns an InfoMsg with a fresh debounce tag.
func NewInfo(message string) InfoMsg {
	tag := infoCounter.Value()
	infoCounter.Inc()
	return InfoMsg{Message: message, Tag: tag}
}

// DebounceInfo clears the info message carrying tag after InfoDebounce.
func DebounceInfo(tag int16) tea.Cmd {
	return tea.Tick(InfoDebounce, func(time.Time) tea.Msg {
		return InfoDebounceMsg{Tag: tag}
	})
}

func ProcessWithClearError(cmd tea.Cmd) tea.Cmd {
	clearError := func() tea.Msg {
		return ClearErrorMsg{}
	}
	if cmd == nil {
		return clearError
	}
	return tea.Sequence(clearError, cmd)
}

// Counter is a wrapping non-zero int16 sequence.
type Counter struct {
	value int16
}

func (c *Counter) Inc() {
	if c.value == 32767 {
		c.value = -32768
	} else {
		c.value++
	}

	if c.value == 0 {
		c.value++
	}
}

func (c *Counter) Value() int16 {
	return c.value
}
