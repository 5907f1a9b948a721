package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hoteldesk/go-hotel-client/admin"
	"github.com/hoteldesk/go-hotel-client/core"
	"github.com/hoteldesk/go-hotel-client/internal/colors"
)

// FormView edits the draft of an admin.Form through one text input per field.
// Every keystroke is written back to the form, the inputs hold no state of their own.
type FormView struct {
	form   *admin.Form
	inputs []textinput.Model
	focus  int
	width  int
}

func NewFormView(form *admin.Form) *FormView {
	fv := &FormView{form: form}
	for _, f := range form.Schema().Fields {
		input := textinput.New()
		input.Prompt = ""
		input.CharLimit = 500
		switch f.Kind {
		case admin.KindDate:
			input.Placeholder = admin.DateLayout
		case admin.KindEnum:
			input.Placeholder = strings.Join(f.Options, " | ")
		}
		fv.inputs = append(fv.inputs, input)
	}
	return fv
}

// Reset loads the draft into the inputs and focuses the first field.
func (fv *FormView) Reset() tea.Cmd {
	for i, f := range fv.form.Schema().Fields {
		fv.inputs[i].SetValue(core.FormatScalar(fv.form.Value(f.Name)))
		fv.inputs[i].Blur()
	}
	fv.focus = 0
	return fv.inputs[0].Focus()
}

func (fv *FormView) SetWidth(width int) {
	fv.width = width
}

// Focused returns the index of the focused field.
func (fv *FormView) Focused() int {
	return fv.focus
}

// OnLastField reports whether the focus is on the last field.
func (fv *FormView) OnLastField() bool {
	return fv.focus == len(fv.inputs)-1
}

// Move shifts the focus by delta, wrapping around.
func (fv *FormView) Move(delta int) tea.Cmd {
	fv.inputs[fv.focus].Blur()
	fv.focus = (fv.focus + delta + len(fv.inputs)) % len(fv.inputs)
	return fv.inputs[fv.focus].Focus()
}

// Cycle steps the focused choice field through its options.
func (fv *FormView) Cycle(delta int) bool {
	f := fv.form.Schema().Fields[fv.focus]
	if f.Kind != admin.KindEnum || len(f.Options) == 0 {
		return false
	}
	current := -1
	value := fv.inputs[fv.focus].Value()
	for i, option := range f.Options {
		if option == value {
			current = i
		}
	}
	next := (current + delta + len(f.Options)) % len(f.Options)
	if current < 0 && delta < 0 {
		next = len(f.Options) - 1
	}
	fv.inputs[fv.focus].SetValue(f.Options[next])
	fv.form.SetText(f.Name, f.Options[next])
	return true
}

// Update feeds msg to the focused input and writes its value back to the form.
func (fv *FormView) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	fv.inputs[fv.focus], cmd = fv.inputs[fv.focus].Update(msg)
	f := fv.form.Schema().Fields[fv.focus]
	fv.form.SetText(f.Name, fv.inputs[fv.focus].Value())
	return cmd
}

func (fv *FormView) View(submitting bool) string {
	labelStyle := lipgloss.NewStyle().Foreground(colors.InputLabelFg).Bold(true)
	starStyle := lipgloss.NewStyle().Foreground(colors.InputRequiredStar)
	typeStyle := lipgloss.NewStyle().Foreground(colors.InputTypeFg)
	errorStyle := lipgloss.NewStyle().Foreground(colors.InputErrorFg)
	boxWidth := 40
	if fv.width > 20 && fv.width-4 < boxWidth {
		boxWidth = fv.width - 4
	}

	title := fmt.Sprintf("New %s", fv.form.Schema().Singular)
	if fv.form.Mode() == admin.ModeEdit {
		title = fmt.Sprintf("Edit %s %s", fv.form.Schema().Singular, fv.form.EditID())
	}
	if submitting {
		title += " (saving...)"
	}

	errs := fv.form.Errors()
	lines := []string{lipgloss.NewStyle().Bold(true).Render(title), ""}
	for i, f := range fv.form.Schema().Fields {
		label := labelStyle.Render(f.Label)
		if f.Required {
			label += starStyle.Render("*")
		}
		label += " " + typeStyle.Render("("+f.Kind.String()+")")

		border := colors.InputNormalBorder
		if i == fv.focus {
			border = colors.InputFocusedBorder
		}
		box := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Width(boxWidth).
			Render(fv.inputs[i].View())

		lines = append(lines, label, box)
		if msg, ok := errs[f.Name]; ok {
			lines = append(lines, errorStyle.Render(msg))
		}
	}
	return strings.Join(lines, "\n")
}
