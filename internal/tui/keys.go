package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hoteldesk/go-hotel-client/internal/colors"
)

// KeyBinding is one entry of the key help line.
type KeyBinding struct {
	Key     string // Key combination (e.g., "ctrl+c")
	Desc    string
	Generic bool // Valid on every screen
}

var (
	listKeyBindings = []KeyBinding{
		{Key: "1/2/3", Desc: "switch screen", Generic: true},
		{Key: "tab", Desc: "next screen", Generic: true},
		{Key: "q", Desc: "quit", Generic: true},
		{Key: "a", Desc: "add"},
		{Key: "e/enter", Desc: "edit"},
		{Key: "d", Desc: "delete"},
		{Key: "r", Desc: "refresh"},
		{Key: "y", Desc: "copy id"},
	}
	formKeyBindings = []KeyBinding{
		{Key: "tab/↓", Desc: "next field"},
		{Key: "shift+tab/↑", Desc: "previous field"},
		{Key: "ctrl+s", Desc: "save"},
		{Key: "esc", Desc: "cancel"},
	}
)

// renderKeyBindings renders bindings on one line, generic ones first.
func renderKeyBindings(bindings []KeyBinding, width int) string {
	genericKeyStyle := lipgloss.NewStyle().Foreground(colors.DeepBlue).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(colors.Yellow).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(colors.HelpDesc)

	var generic, specific []string
	for _, kb := range bindings {
		if kb.Generic {
			generic = append(generic, genericKeyStyle.Render(kb.Key)+" "+descStyle.Render(kb.Desc))
		} else {
			specific = append(specific, keyStyle.Render(kb.Key)+" "+descStyle.Render(kb.Desc))
		}
	}
	line := strings.Join(append(generic, specific...), "  ")
	if width > 0 {
		return lipgloss.NewStyle().MaxWidth(width).Render(line)
	}
	return line
}
