// ABOUTME: Fixes the lipgloss background before Bubble Tea's init can query the terminal
// ABOUTME: BLINKO_THEME=light selects a light background; anything else is dark

package termfix

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// EnvTheme names the variable read at init.
const EnvTheme = "BLINKO_THEME"

func init() {
	// Once the background is explicit, lipgloss skips its OSC 10/11 query.
	// This package must not import bubbletea so this init runs first.
	SetTheme(os.Getenv(EnvTheme))
}

// SetTheme records whether theme is a light or dark palette.
func SetTheme(theme string) {
	lipgloss.SetHasDarkBackground(!IsLight(theme))
}

// IsLight reports whether theme names the light palette.
func IsLight(theme string) bool {
	return strings.EqualFold(strings.TrimSpace(theme), "light")
}
