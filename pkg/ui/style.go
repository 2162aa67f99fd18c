// Package ui holds the lipgloss styles used for terminal output.
package ui

import "github.com/charmbracelet/lipgloss"

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	currentStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	missingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	hintStyle    = lipgloss.NewStyle().Faint(true)
)

// Heading renders a section title.
func Heading(s string) string { return headingStyle.Render(s) }

// Current renders the active theme entry.
func Current(s string) string { return currentStyle.Render(s) }

// Missing renders an active theme whose directory is gone.
func Missing(s string) string { return missingStyle.Render(s) }

// Hint renders usage hints.
func Hint(s string) string { return hintStyle.Render(s) }

// ThemeLine formats one row of the theme listing. The marker column is
// "*" for the active theme, "!" for a dangling active theme and blank
// otherwise.
func ThemeLine(name string, current, missing bool) string {
	switch {
	case missing:
		return "  " + Missing("! "+name)
	case current:
		return "  " + Current("* "+name)
	default:
		return "    " + name
	}
}
