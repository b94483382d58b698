// Package tui implements the Bubble Tea dashboard for traindesk.
package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Tokyo Night color palette.
var (
	colorGreen  = lipgloss.Color("#9ece6a")
	colorYellow = lipgloss.Color("#e0af68")
	colorBlue   = lipgloss.Color("#7aa2f7")
	colorRed    = lipgloss.Color("#f7768e")
	colorGray   = lipgloss.Color("#565f89")
	colorWhite  = lipgloss.Color("#c0caf5")
	colorBg     = lipgloss.Color("#1a1b26")
)

// Banner ASCII art for the header.
const banner = `
 ╔╦╗╦═╗╔═╗╦╔╗╔╔╦╗╔═╗╔═╗╦╔═
  ║ ╠╦╝╠═╣║║║║ ║║║╣ ╚═╗╠╩╗
  ╩ ╩╚═╩ ╩╩╝╚╝═╩╝╚═╝╚═╝╩ ╩`

var (
	bannerStyle = lipgloss.NewStyle().
			Foreground(colorBlue).
			Bold(true).
			PaddingLeft(1)

	// Metric card shown above the tables, one per dashboard total.
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorGray).
			Padding(0, 2).
			MarginRight(1)

	cardValueStyle = lipgloss.NewStyle().
			Foreground(colorBlue).
			Bold(true)

	cardLabelStyle = lipgloss.NewStyle().
			Foreground(colorGray)

	// Tab bar above the active table.
	tabActiveStyle = lipgloss.NewStyle().
			Foreground(colorBlue).
			Bold(true).
			Padding(0, 1)

	tabInactiveStyle = lipgloss.NewStyle().
				Foreground(colorGray).
				Padding(0, 1)

	// Toast status line.
	toastOkStyle = lipgloss.NewStyle().
			Foreground(colorGreen).
			PaddingLeft(1)

	toastErrStyle = lipgloss.NewStyle().
			Foreground(colorRed).
			PaddingLeft(1)

	// Confirm prompt.
	confirmStyle = lipgloss.NewStyle().
			Foreground(colorYellow).
			PaddingLeft(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorGray).
			PaddingLeft(1)

	tableHeaderStyle = lipgloss.NewStyle().
				Foreground(colorWhite).
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(colorGray).
				BorderBottom(true).
				Bold(true)

	tableSelectedStyle = lipgloss.NewStyle().
				Foreground(colorBg).
				Background(colorBlue).
				Bold(false)
)
