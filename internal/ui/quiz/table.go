package quiz

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"mcquiz/internal/session"
)

// resultColumns returns the ledger table columns.
func resultColumns() []table.Column {
	return []table.Column{
		{Title: "Question", Width: 10},
		{Title: "Your Answer", Width: 22},
		{Title: "Correct Answer", Width: 16},
		{Title: "Points", Width: 8},
	}
}

// tableStyles returns table styles for the results view.
func tableStyles(noColor bool) table.Styles {
	if noColor {
		return table.DefaultStyles()
	}
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(lipgloss.Color("252"))
	return styles
}

// resultRows converts the session ledger into table rows.
func resultRows(state session.State) []table.Row {
	rows := make([]table.Row, 0, len(state.Ledger))
	for _, row := range state.Ledger {
		rows = append(rows, table.Row{
			row.QuestionID,
			row.StudentAnswer,
			row.CorrectAnswer,
			fmtInt(row.PointsEarned),
		})
	}
	return rows
}
