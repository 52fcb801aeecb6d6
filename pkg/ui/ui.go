// Package ui provides terminal capability detection and output styling for
// console reporters and the maintenance CLI. Reporters use it to decide
// whether an interactive diff tool can be launched at all, and to render
// mismatch summaries that survive both color terminals and redirected CI logs.
package ui

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

var (
	detectOnce  sync.Once
	interactive bool
	colored     bool
)

func detect() {
	detectOnce.Do(func() {
		if os.Getenv("TERM") == "dumb" {
			return
		}
		if !term.IsTerminal(int(os.Stderr.Fd())) {
			return
		}
		interactive = true
		colored = termenv.ColorProfile() != termenv.Ascii
	})
}

// Interactive reports whether stderr is attached to a usable terminal.
// Piped or redirected output, and TERM=dumb, count as non-interactive.
func Interactive() bool {
	detect()
	return interactive
}

// ColorCapable reports whether the terminal advertises any color profile.
func ColorCapable() bool {
	detect()
	return colored
}

// GUISession reports whether a graphical session is available for launching
// windowed diff tools. On CI this is always false regardless of DISPLAY.
func GUISession() bool {
	if CI() {
		return false
	}
	switch {
	case os.Getenv("DISPLAY") != "", os.Getenv("WAYLAND_DISPLAY") != "":
		return true
	}
	// Windows and macOS always have a session when a user is logged in.
	return osAlwaysGraphical
}

// CI reports whether the process appears to run under a CI service.
// Most services set CI=true; Jenkins sets BUILD_NUMBER.
func CI() bool {
	return os.Getenv("CI") != "" || os.Getenv("BUILD_NUMBER") != ""
}

// Styles for mismatch output. Lipgloss degrades to plain text when the
// terminal has no color profile.
var (
	FailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF3838")).Bold(true)
	PassStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00D26A"))
	PathStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4D96FF"))
	HintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")).Italic(true)
)

// Icon returns the unicode glyph on capable terminals, the ascii fallback
// otherwise.
func Icon(unicode, ascii string) string {
	if Interactive() {
		return unicode
	}
	return ascii
}
