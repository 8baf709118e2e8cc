// ABOUTME: Tests for theme name parsing and the lipgloss background switch
// ABOUTME: Not parallel: the background flag is process-wide

package termfix

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestIsLight(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"light", true},
		{" Light ", true},
		{"dark", false},
		{"", false},
		{"solarized", false},
	}
	for _, tt := range tests {
		if got := IsLight(tt.in); got != tt.want {
			t.Errorf("IsLight(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSetTheme(t *testing.T) {
	SetTheme("light")
	if lipgloss.HasDarkBackground() {
		t.Error("light theme should clear the dark background")
	}
	SetTheme("dark")
	if !lipgloss.HasDarkBackground() {
		t.Error("dark theme should set the dark background")
	}
}
