package main

import "github.com/charmbracelet/lipgloss"

type theme struct {
	Header      lipgloss.Style
	Frame       lipgloss.Style
	Display     lipgloss.Style
	Register    lipgloss.Style
	Label       lipgloss.Style
	Annunciator lipgloss.Style
	Muted       lipgloss.Style
	Accent      lipgloss.Style
	Alert       lipgloss.Style
	Danger      lipgloss.Style
	Overlay     lipgloss.Style
	OverlayBox  lipgloss.Style
}

func defaultTheme() theme {
	accent := lipgloss.Color("#00FFFF")
	secondary := lipgloss.Color("#7D7D7D")
	lcd := lipgloss.Color("#C8E6A0")
	lcdText := lipgloss.Color("#1E2A14")
	alert := lipgloss.Color("#FFBF00")
	danger := lipgloss.Color("#FF0055")

	return theme{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1),
		Display: lipgloss.NewStyle().
			Bold(true).
			Background(lcd).
			Foreground(lcdText).
			Padding(0, 1).
			Align(lipgloss.Right),
		Register: lipgloss.NewStyle().
			Align(lipgloss.Right),
		Label: lipgloss.NewStyle().
			Foreground(secondary).
			Width(3),
		Annunciator: lipgloss.NewStyle().
			Bold(true).
			Foreground(alert),
		Muted: lipgloss.NewStyle().
			Foreground(secondary),
		Accent: lipgloss.NewStyle().
			Foreground(accent),
		Alert: lipgloss.NewStyle().
			Foreground(alert),
		Danger: lipgloss.NewStyle().
			Foreground(danger),
		Overlay: lipgloss.NewStyle().
			Foreground(secondary),
		OverlayBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1),
	}
}
