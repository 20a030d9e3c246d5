package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"vozdalei/publications"
)

var (
	dimColor       = lipgloss.Color("7")
	accentColor    = lipgloss.Color("12")
	successColor   = lipgloss.Color("10")
	warningColor   = lipgloss.Color("11")
	dangerColor    = lipgloss.Color("9")
	highlightColor = lipgloss.Color("13")

	// User message style
	UserStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)
	// NO .Background() = transparent!

	// Assistant message style
	AssistantStyle = lipgloss.NewStyle().
			Foreground(accentColor)

	// System/timestamp style
	DimStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	BorderStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	TitleStyle = lipgloss.NewStyle().
			Bold(true)

	StatusStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(warningColor).
			Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	HighlightStyle = lipgloss.NewStyle().
			Foreground(highlightColor).
			Bold(true)

	// Assistant answers that carry an error are framed in red
	ErrorBlockStyle = lipgloss.NewStyle().
			Foreground(dangerColor).
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(dangerColor).
			PaddingLeft(1)

	// Active tab in the title bar
	TabActiveStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true).
			Underline(true)

	TabStyle = lipgloss.NewStyle().
			Foreground(dimColor)
)

// StatusBadge colors a project status the way the catalog groups it
func StatusBadge(status string) string {
	color := warningColor
	switch publications.BucketFor(status) {
	case publications.BucketApproved:
		color = successColor
	case publications.BucketSenate:
		color = accentColor
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true).Render("● " + status)
}

// FormatFooter formats a footer string with alternating keys and descriptions.
// Keys remain default color, descriptions are rendered in assistant blue+bold.
// Usage: FormatFooter("j/k", "Navegar", "Enter", "Selecionar", "Esc", "Fechar")
func FormatFooter(parts ...string) string {
	descStyle := lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	var result []string
	for i := 0; i < len(parts); i += 2 {
		if i+1 < len(parts) {
			result = append(result, parts[i]+" "+descStyle.Render(parts[i+1]))
		}
	}
	return strings.Join(result, "  ")
}
