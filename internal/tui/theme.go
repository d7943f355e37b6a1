// Package tui renders the conversation collection in the terminal. It is
// purely a presentation layer: every user action maps onto one session
// method, and everything drawn comes from session snapshots.
package tui

import "github.com/charmbracelet/lipgloss"

// Theme holds the color scheme for the viewer.
type Theme struct {
	Accent    lipgloss.Color
	Sent      lipgloss.Color
	Received  lipgloss.Color
	Hint      lipgloss.Color
	Error     lipgloss.Color
	DeadMedia lipgloss.Color
}

// defaultTheme provides default colors.
var defaultTheme = Theme{
	Accent:    lipgloss.Color("#00D787"), // green
	Sent:      lipgloss.Color("#5FAFD7"), // light blue
	Received:  lipgloss.Color("#D7AF5F"), // amber
	Hint:      lipgloss.Color("#6C6C6C"), // dim gray
	Error:     lipgloss.Color("#FF005F"), // red
	DeadMedia: lipgloss.Color("#585858"), // darker gray
}

func (t Theme) titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
}

func (t Theme) selectedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
}

func (t Theme) sentStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Sent)
}

func (t Theme) receivedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Received)
}

func (t Theme) hintStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Hint).Italic(true)
}

func (t Theme) errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Error).Bold(true)
}

func (t Theme) deadMediaStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.DeadMedia).Strikethrough(true)
}

func (t Theme) listPaneStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, true, false, false).
		BorderForeground(t.Hint)
}
