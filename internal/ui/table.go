package ui

import (
	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
)

// Table is a borderless table with aligned columns.
type Table struct {
	Headers []string
	Rows    [][]string
	// Highlight optionally styles a body cell by column and content.
	Highlight func(col int, cell string) lipgloss.Style
}

// String renders the table followed by a newline, or "" when there are
// no rows.
func (t Table) String() string {
	if len(t.Rows) == 0 {
		return ""
	}
	pad := lipgloss.NewStyle().PaddingRight(2)

	return table.New().
		Headers(t.Headers...).
		Rows(t.Rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return pad.Bold(true)
			case t.Highlight != nil && row < len(t.Rows) && col < len(t.Rows[row]):
				return t.Highlight(col, t.Rows[row][col]).PaddingRight(2)
			default:
				return pad
			}
		}).
		String() + "\n"
}
