package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
)

// Color palette
var (
	ColorSuccess = lipgloss.Color("#00D787") // Green
	ColorError   = lipgloss.Color("#FF5F87") // Pink
	ColorWarning = lipgloss.Color("#FFAF00") // Yellow
	ColorInfo    = lipgloss.Color("#5FAFFF") // Blue
	ColorMuted   = lipgloss.Color("#888888") // Mid gray (readable)
	ColorAccent  = lipgloss.Color("#AF87FF") // Purple
)

// Text styles
var (
	StyleSuccess  = lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
	StyleError    = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	StyleWarning  = lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
	StyleInfo     = lipgloss.NewStyle().Foreground(ColorInfo)
	StyleMuted    = lipgloss.NewStyle().Foreground(ColorMuted)
	StyleAccent   = lipgloss.NewStyle().Foreground(ColorAccent)
	StyleBold     = lipgloss.NewStyle().Bold(true)
	StyleTitle    = lipgloss.NewStyle().Foreground(ColorInfo).Bold(true)
	StyleSelected = lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)
)

// Progress bar styles
var (
	StyleProgressFilled = lipgloss.NewStyle().Foreground(ColorAccent)
	StyleProgressEmpty  = lipgloss.NewStyle().Foreground(ColorMuted)
)

// Progress bar characters
const (
	barFilled = "█"
	barEmpty  = "░"
	barWidth  = 20
)

// maxStars is the longest questionnaire that still gets a star row.
const maxStars = 15

// GetTerminalWidth returns the current terminal width, or a default fallback.
func GetTerminalWidth() int {
	width, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// BoxStyle creates a bordered box of the given width.
func BoxStyle(borderColor lipgloss.Color, width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Width(width - 2) // leave margin
}

// progressBar renders done/total as a fixed-width bar.
func progressBar(done, total int) string {
	filled := 0
	if total > 0 {
		filled = done * barWidth / total
	}
	if filled > barWidth {
		filled = barWidth
	}
	return StyleProgressFilled.Render(strings.Repeat(barFilled, filled)) +
		StyleProgressEmpty.Render(strings.Repeat(barEmpty, barWidth-filled))
}

// starRow renders one star per question, filled up to the current one.
func starRow(current, total int) string {
	if total > maxStars {
		return ""
	}
	return StyleWarning.Render(strings.Repeat("★", current)) +
		StyleMuted.Render(strings.Repeat("☆", total-current))
}

var likertFaces = []string{"😞", "🙁", "😐", "🙂", "😄"}
