package ui

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	idStyle     = cellStyle.Foreground(lipgloss.Color("244"))
	titleStyle  = cellStyle.Foreground(lipgloss.Color("37"))
	doneStyle   = cellStyle.Foreground(lipgloss.Color("2")).Align(lipgloss.Center)
	undoneStyle = cellStyle.Foreground(lipgloss.Color("1")).Align(lipgloss.Center)

	captionStyle  = lipgloss.NewStyle().Bold(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	faintStyle    = lipgloss.NewStyle().Faint(true)
	currentMarker = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Render("*")
)

const (
	// DoneMark is shown for completed todos.
	DoneMark = "✔"
	// UndoneMark is shown for pending todos.
	UndoneMark = "✘"
)

func mark(done bool) string {
	if done {
		return DoneMark
	}
	return UndoneMark
}
