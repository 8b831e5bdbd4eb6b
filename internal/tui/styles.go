package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Base palette
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d0d4dc"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec")).
			Bold(true)

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ea8de")).
			Bold(true)

	// Status notices
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e05561"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#34d474"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4a844"))

	// Attendance status chips
	checkedInStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#34d474"))

	pausedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4a844"))

	checkedOutStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	// Form fields
	fieldLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	fieldErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e05561"))

	// Table
	tableHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#505868")).
				Bold(true)

	selectedRowStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("#1e1e2a"))

	// Help bar
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ea8de"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	// Wordmark
	logoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ea8de")).
			Bold(true)
)

// statusStyle returns the chip style for an attendance record status.
func statusStyle(status string) lipgloss.Style {
	switch status {
	case "checked-in":
		return checkedInStyle
	case "paused":
		return pausedStyle
	case "checked-out":
		return checkedOutStyle
	}
	return dimStyle
}

// helpEntry renders a single "key label" pair for help bars.
func helpEntry(key, label string) string {
	return helpKeyStyle.Render(key) + " " + helpLabelStyle.Render(label)
}
