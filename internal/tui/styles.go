package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/labMorim/MavitKanban/internal/board"
)

var (
	colorText    lipgloss.Color = "#cdd6f4"
	colorMuted   lipgloss.Color = "#a6adc8"
	colorBorder  lipgloss.Color = "#585b70"
	colorAccent  lipgloss.Color = "#89b4fa"
	colorSuccess lipgloss.Color = "#a6e3a1"
	colorError   lipgloss.Color = "#f38ba8"
	colorWarn    lipgloss.Color = "#f9e2af"
	colorSurface lipgloss.Color = "#313244"
)

// columnColors maps the palette onto terminal colors.
var columnColors = map[board.Color]lipgloss.Color{
	board.ColorBlue:   "#89b4fa",
	board.ColorYellow: "#f9e2af",
	board.ColorGreen:  "#a6e3a1",
	board.ColorRed:    "#f38ba8",
	board.ColorPurple: "#cba6f7",
	board.ColorTeal:   "#94e2d5",
	board.ColorGray:   "#9399b2",
}

// Backgrounds the user can cycle through. The chosen name persists
// under the background storage key.
var backgroundNames = []string{"midnight", "ocean", "forest", "plain"}

var backgroundColors = map[string]lipgloss.Color{
	"midnight": "#1e1e2e",
	"ocean":    "#0f1b2d",
	"forest":   "#141f18",
}

var (
	titleStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)

	columnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	columnTitleStyle = lipgloss.NewStyle().Bold(true)
	columnCountStyle = lipgloss.NewStyle().Foreground(colorMuted)
	overLimitStyle   = lipgloss.NewStyle().Foreground(colorError).Bold(true)

	cardStyle = lipgloss.NewStyle().Foreground(colorText)
	cardCursorStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)
	cardGrabbedStyle = lipgloss.NewStyle().
				Foreground(colorWarn).
				Bold(true)
	cardDoneStyle    = lipgloss.NewStyle().Foreground(colorMuted).Strikethrough(true)
	cardOverdueStyle = lipgloss.NewStyle().Foreground(colorError)

	statusStyle    = lipgloss.NewStyle().Foreground(colorSuccess)
	statusErrStyle = lipgloss.NewStyle().Foreground(colorError)
	helpStyle      = lipgloss.NewStyle().Foreground(colorMuted)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(1, 2)

	fieldLabelStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	fieldFocusedStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
)

// columnBorder returns the column frame tinted with the column's color
// tag, highlighted when it holds the cursor.
func columnBorder(c board.Column, active bool) lipgloss.Style {
	s := columnStyle
	if tint, ok := columnColors[c.Color]; ok {
		s = s.BorderForeground(tint)
	}
	if active {
		s = s.Bold(true)
	}
	return s
}

// priorityMarker is the plain-text priority tag shown on a card line.
// It stays unstyled so the whole line can take the card style.
func priorityMarker(p *board.Priority) string {
	if p == nil {
		return "   "
	}
	switch *p {
	case board.PriorityHigh:
		return "!!!"
	case board.PriorityMedium:
		return " !!"
	case board.PriorityLow:
		return "  !"
	}
	return "   "
}
