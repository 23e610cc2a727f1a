package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/productbazar/bazaaradmin/internal/roles"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
	activeStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#4F46E5"))
	cursorStyle  = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#059669")).Padding(0, 1)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#DC2626")).Padding(0, 1)
	toastStyle   = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#6B7280"))

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#D1D5DB")).
			Padding(0, 1)
	focusedPaneStyle = paneStyle.BorderForeground(lipgloss.Color("#4F46E5"))

	chipStyle = lipgloss.NewStyle().Padding(0, 1)
	pillStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#374151")).Background(lipgloss.Color("#E5E7EB")).Padding(0, 1)
)

// roleChip renders a role as a tinted label with its icon.
func roleChip(r roles.Role) string {
	meta := r.Meta()
	return chipStyle.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color(meta.Tint)).
		Render(meta.Icon + " " + meta.Label)
}
