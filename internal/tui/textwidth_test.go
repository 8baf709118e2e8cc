// ABOUTME: Tests for display-width measurement, truncation and wrapping
// ABOUTME: Covers ASCII, wide CJK runes, combining marks and styled text

package tui

import (
	"reflect"
	"testing"
)

func TestVisibleWidth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want int
	}{
		{"empty", "", 0},
		{"ascii", "hello", 5},
		{"cjk", "读书", 4},
		{"combining", "cafe\u0301", 4},
		{"styled", "\x1b[31mred\x1b[0m", 3},
		{"osc", "\x1b]0;title\x07ok", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := visibleWidth(tt.in); got != tt.want {
				t.Errorf("visibleWidth(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestTruncateWidth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"fits", "abc", 5, "abc"},
		{"cut", "abcdef", 3, "abc"},
		{"wide rune not split", "a读书", 2, "a"},
		{"styled cut resets", "\x1b[1mbold text\x1b[0m", 4, "\x1b[1mbold\x1b[0m"},
		{"zero", "abc", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := truncateWidth(tt.in, tt.max); got != tt.want {
				t.Errorf("truncateWidth(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
		})
	}
}

func TestSliceFromCol(t *testing.T) {
	t.Parallel()
	if got := sliceFromCol("abcdef", 2); got != "cdef" {
		t.Errorf("sliceFromCol = %q", got)
	}
	if got := sliceFromCol("读书ab", 2); got != "书ab" {
		t.Errorf("sliceFromCol wide = %q", got)
	}
	if got := sliceFromCol("ab", 5); got != "" {
		t.Errorf("sliceFromCol past end = %q", got)
	}
}

func TestWrapPlain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		w    int
		want []string
	}{
		{"short", 10, []string{"short"}},
		{"hello brave new world", 11, []string{"hello brave", "new world"}},
		{"abcdefgh", 3, []string{"abc", "def", "gh"}},
	}

	for _, tt := range tests {
		if got := wrapPlain(tt.in, tt.w); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("wrapPlain(%q, %d) = %q, want %q", tt.in, tt.w, got, tt.want)
		}
	}
}
