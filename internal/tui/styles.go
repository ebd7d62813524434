package tui

import "github.com/charmbracelet/lipgloss"

// Styles contains the visual styling for the tracker UI.
type Styles struct {
	Title      lipgloss.Style
	Header     lipgloss.Style
	Selected   lipgloss.Style
	Done       lipgloss.Style
	Error      lipgloss.Style
	Success    lipgloss.Style
	Subtle     lipgloss.Style
	StreakHit  lipgloss.Style
	StreakMiss lipgloss.Style
}

// DefaultStyles returns the default styling.
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252")),
		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")),
		Done: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Strikethrough(true),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")),
		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color("46")),
		Subtle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		StreakHit: lipgloss.NewStyle().
			Foreground(lipgloss.Color("46")),
		StreakMiss: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
	}
}
