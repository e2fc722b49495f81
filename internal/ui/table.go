// Package ui renders train records and provides an optional terminal viewer.
package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/nibzard/trainreg/internal/trains"
)

// Column headers of the records table.
var Headers = []string{"Destination", "Train No.", "Departure"}

// columnWidths include one cell of padding on each side.
var columnWidths = []int{37, 17, 27}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1).Align(lipgloss.Center)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Center)
)

// RenderTable renders records as a bordered table with a row separator
// between entries. An empty slice renders only the header.
func RenderTable(records []trains.Record) string {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{rec.Destination, rec.TrainNumber, rec.DepartureTime})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderRow(true).
		Headers(Headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := cellStyle
			if row == table.HeaderRow {
				style = headerStyle
			}
			if col >= 0 && col < len(columnWidths) {
				style = style.Width(columnWidths[col])
			}
			return style
		})

	return t.Render()
}
