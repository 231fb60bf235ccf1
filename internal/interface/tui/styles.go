package tui

import "github.com/charmbracelet/lipgloss"

var (
	primary  = lipgloss.Color("#FF00FF")
	accent   = lipgloss.Color("#FFFF00")
	errorCol = lipgloss.Color("#FF3131")
	muted    = lipgloss.Color("#888888")
	text     = lipgloss.Color("#FFFFFF")

	headerStyle = lipgloss.NewStyle().
			Foreground(primary).
			Bold(true).
			Padding(1, 1).
			MarginLeft(1)

	cardStyle = lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(muted).
			MarginLeft(2)

	labelStyle = lipgloss.NewStyle().
			Foreground(muted).
			Width(24)

	buttonStyle = lipgloss.NewStyle().
			Foreground(text).
			Padding(0, 1)

	activeButtonStyle = buttonStyle.
				Foreground(accent).
				Bold(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(primary).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(muted)

	errorTextStyle = lipgloss.NewStyle().
			Foreground(errorCol).
			PaddingLeft(2)

	footerStyle = lipgloss.NewStyle().
			Foreground(muted).
			MarginTop(1).
			PaddingLeft(4).
			Faint(true)
)
