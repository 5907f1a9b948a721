package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/hoteldesk/go-hotel-client/admin"
	"github.com/hoteldesk/go-hotel-client/internal/colors"
)

const deletingMark = " (deleting)"

// renderTable draws the collection of screen with the row at cursor highlighted.
func renderTable(screen *admin.Screen, cursor, width int) string {
	rows := screen.Rows()
	if len(rows) == 0 {
		hint := "No " + screen.Schema().Title + " yet, press a to add one."
		if !screen.Loaded() {
			hint = "Loading " + screen.Schema().Title + "..."
		}
		return lipgloss.NewStyle().Foreground(colors.DimColor).Render(hint)
	}

	data := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells := append([]string(nil), row.Cells...)
		if screen.Deleting(row.ID) && len(cells) > 0 {
			cells[0] += deletingMark
		}
		data = append(data, cells)
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(colors.HeaderForeground).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	selectedStyle := cellStyle.Background(colors.SelectedBackground).Foreground(colors.SelectedForeground)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colors.BorderNormal)).
		Headers(screen.Headers()...).
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row == cursor:
				return selectedStyle
			default:
				return cellStyle
			}
		})
	if width > 0 {
		t = t.Width(width)
	}
	return t.Render()
}
