package ui

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Title    lipgloss.Style
	Tagline  lipgloss.Style
	Badge    lipgloss.Style
	Heading  lipgloss.Style
	Body     lipgloss.Style
	Card     lipgloss.Style
	Selected lipgloss.Style
	Label    lipgloss.Style
	Hint     lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
}

func newTheme(accent, muted, badgeFg, badgeBg, text, border, selected, errc, ok lipgloss.Color) Theme {
	card := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(border).Padding(0, 1)
	return Theme{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(accent),
		Tagline:  lipgloss.NewStyle().Foreground(muted),
		Badge:    lipgloss.NewStyle().Foreground(badgeFg).Background(badgeBg).Padding(0, 1),
		Heading:  lipgloss.NewStyle().Bold(true).Foreground(text),
		Body:     lipgloss.NewStyle().Foreground(text),
		Card:     card,
		Selected: card.BorderForeground(selected),
		Label:    lipgloss.NewStyle().Faint(true).Foreground(accent),
		Hint:     lipgloss.NewStyle().Faint(true).Foreground(muted),
		Error:    lipgloss.NewStyle().Bold(true).Foreground(errc),
		Success:  lipgloss.NewStyle().Bold(true).Foreground(ok),
	}
}

// Catppuccin Mocha
var DarkTheme = newTheme("#CBA6F7", "#A6ADC8", "#1E1E2E", "#B4BEFE", "#CDD6F4", "#45475A", "#F5C2E7", "#F38BA8", "#A6E3A1")

// Catppuccin Latte
var LightTheme = newTheme("#8839EF", "#6C6F85", "#EFF1F5", "#7287FD", "#4C4F69", "#BCC0CC", "#EA76CB", "#D20F39", "#40A02B")

func themeFor(dark bool) Theme {
	if dark {
		return DarkTheme
	}
	return LightTheme
}
