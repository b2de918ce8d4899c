package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary   = lipgloss.Color("62")
	colorSecondary = lipgloss.Color("241")
	colorHighlight = lipgloss.Color("212")
	colorError     = lipgloss.Color("196")
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")).
			Background(colorPrimary).
			Padding(0, 1)

	filterBadge = lipgloss.NewStyle().
			Foreground(colorHighlight).
			Padding(0, 1)

	selectedItem = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")).
			Background(colorPrimary).
			Padding(0, 1)

	normalItem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Padding(0, 1)

	metaStyle = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorHighlight)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			MarginTop(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true).
			Padding(0, 1)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Padding(0, 1)

	helpKey  = lipgloss.NewStyle().Foreground(colorHighlight).Bold(true)
	helpText = lipgloss.NewStyle().Foreground(colorSecondary)
)
