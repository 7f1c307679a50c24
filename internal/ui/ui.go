// Package ui provides terminal output utilities for the non-interactive
// commands.
package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Colors returns true if colored output should be enabled.
// Respects NO_COLOR env var and --no-color flag.
func Colors(noColorFlag bool) bool {
	if noColorFlag {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return true
}

// Style returns a lipgloss style with color support based on configuration.
func Style(noColor bool) lipgloss.Style {
	if noColor {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("default"))
}

// TerminalWidth detects the current terminal width.
func TerminalWidth() int {
	width, _, err := term.GetSize(0)
	if err != nil || width <= 0 {
		return 80 // default fallback
	}
	return width
}
