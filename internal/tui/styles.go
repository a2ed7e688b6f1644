package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/saadjs/caltrack/internal/nutrition"
)

var (
	colorPrimary = lipgloss.Color("#F97316") // orange
	colorSuccess = lipgloss.Color("#22C55E") // green
	colorWarning = lipgloss.Color("#FBBF24") // amber
	colorDanger  = lipgloss.Color("#EF4444") // red
	colorMuted   = lipgloss.Color("#6B7280") // gray
	colorSubtle  = lipgloss.Color("#374151") // dark gray
	colorText    = lipgloss.Color("#F9FAFB") // near white
	colorProtein = lipgloss.Color("#60A5FA") // blue
	colorCarbs   = lipgloss.Color("#FBBF24") // amber
	colorFat     = lipgloss.Color("#F472B6") // pink

	styleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			PaddingBottom(1)

	styleItemName = lipgloss.NewStyle().
			Foreground(colorText)

	styleProtein = lipgloss.NewStyle().
			Foreground(colorProtein)

	styleCarbs = lipgloss.NewStyle().
			Foreground(colorCarbs)

	styleFat = lipgloss.NewStyle().
			Foreground(colorFat)

	styleHelp = lipgloss.NewStyle().
			Foreground(colorMuted).
			MarginTop(1)

	styleError = lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true)

	styleSelected = lipgloss.NewStyle().
			Background(colorSubtle).
			Foreground(colorPrimary).
			Bold(true)

	styleInput = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(0, 1)

	styleDimmed = lipgloss.NewStyle().
			Foreground(colorMuted)
)

// BandStyle is the foreground style for a progress band.
func BandStyle(b nutrition.Band) lipgloss.Style {
	switch b {
	case nutrition.BandUnder:
		return lipgloss.NewStyle().Foreground(colorSuccess)
	case nutrition.BandWarning:
		return lipgloss.NewStyle().Foreground(colorWarning)
	case nutrition.BandDanger:
		return lipgloss.NewStyle().Foreground(colorDanger).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(colorMuted)
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
