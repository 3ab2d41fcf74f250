package cli

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	menuStyle    = lipgloss.NewStyle().PaddingLeft(2)
	promptStyle  = lipgloss.NewStyle().Bold(true)
	correctStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func banner(title string) string {
	return titleStyle.Render("--- " + title + " ---")
}
