package tui

import "github.com/charmbracelet/lipgloss"

// Static styles for content elements
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 1)

	PathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4"))

	SelectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true)

	EntryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA"))

	MissingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			Italic(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	RedCardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	TipStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7"))

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	focusedBorder = lipgloss.Color("#04B575")
	blurredBorder = lipgloss.Color("#626262")
)

// actionPalette colours matrix cells by the index of their dominant action.
var actionPalette = []lipgloss.Color{
	"#04B575", // first action, usually check or fold
	"#FF6B6B",
	"#FFD700",
	"#7D56F4",
	"#4ECDC4",
	"#F78FB3",
}

// ActionColor returns the colour for the action at index i.
func ActionColor(i int) lipgloss.Color {
	if i < 0 {
		return blurredBorder
	}
	return actionPalette[i%len(actionPalette)]
}
