package viz

import "github.com/charmbracelet/lipgloss"

// Styles are built from CurrentTheme on each render so theme switches apply
// immediately.

func headerStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Accent).Bold(true).MarginBottom(1)
}

func statsStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(CurrentTheme.Muted).
		Padding(1, 2).
		Width(42)
}

func labelStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Muted).Width(12)
}

func valueStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Text)
}

func statusStyle(running bool) lipgloss.Style {
	c := CurrentTheme.Accent
	if !running {
		c = CurrentTheme.Paused
	}
	return lipgloss.NewStyle().Foreground(c).Bold(true)
}

func helpStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Muted).MarginTop(1)
}

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	graphStyle  = lipgloss.NewStyle().Padding(1, 0)
)

// cursorLine renders a menu line, highlighted when selected.
func cursorLine(text string, selected bool) string {
	if selected {
		return lipgloss.NewStyle().Foreground(CurrentTheme.Accent).Bold(true).Render("▸ " + text)
	}
	return lipgloss.NewStyle().Foreground(CurrentTheme.Muted).Render("  " + text)
}
