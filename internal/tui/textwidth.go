// ABOUTME: Display-width helpers for styled terminal text
// ABOUTME: Grapheme-aware via uniseg and runewidth; ANSI escape sequences count as zero width

package tui

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// visibleWidth returns the number of terminal cells s occupies.
func visibleWidth(s string) int {
	w := 0
	forEachCluster(s, func(_ string, cw int, _ bool) bool {
		w += cw
		return true
	})
	return w
}

// truncateWidth cuts s to at most maxCols cells. Escape sequences are kept so
// styling stays balanced; a reset is appended when anything was cut.
func truncateWidth(s string, maxCols int) string {
	if maxCols <= 0 {
		return ""
	}
	if visibleWidth(s) <= maxCols {
		return s
	}
	var b strings.Builder
	col, cut := 0, false
	forEachCluster(s, func(text string, cw int, esc bool) bool {
		if esc {
			b.WriteString(text)
			return true
		}
		if col+cw > maxCols {
			cut = true
			return false
		}
		b.WriteString(text)
		col += cw
		return true
	})
	if cut && strings.Contains(s, "\x1b[") {
		b.WriteString("\x1b[0m")
	}
	return b.String()
}

// sliceFromCol returns the part of s starting at visible column startCol.
func sliceFromCol(s string, startCol int) string {
	col, offset := 0, -1
	pos := 0
	forEachCluster(s, func(text string, cw int, esc bool) bool {
		if !esc && col >= startCol {
			offset = pos
			return false
		}
		col += cw
		pos += len(text)
		return true
	})
	if offset < 0 {
		return ""
	}
	return s[offset:]
}

// padRight pads s with spaces to w cells.
func padRight(s string, w int) string {
	if n := w - visibleWidth(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

// wrapPlain breaks unstyled text into lines of at most w cells, preferring
// breaks at spaces.
func wrapPlain(s string, w int) []string {
	if w <= 0 || visibleWidth(s) <= w {
		return []string{s}
	}
	var (
		lines  []string
		cur    strings.Builder
		col    int
		lastSp = -1
	)
	flush := func() {
		lines = append(lines, cur.String())
		cur.Reset()
		col, lastSp = 0, -1
	}
	forEachCluster(s, func(text string, cw int, _ bool) bool {
		if col+cw > w {
			if text == " " {
				flush()
				return true
			}
			if lastSp > 0 {
				line := cur.String()
				rest := line[lastSp+1:]
				cur.Reset()
				cur.WriteString(line[:lastSp])
				flush()
				cur.WriteString(rest)
				col = visibleWidth(rest)
			} else {
				flush()
			}
		}
		if text == " " {
			lastSp = cur.Len()
		}
		cur.WriteString(text)
		col += cw
		return true
	})
	lines = append(lines, cur.String())
	return lines
}

// forEachCluster walks s by grapheme cluster, reporting escape sequences
// separately. fn returns false to stop.
func forEachCluster(s string, fn func(text string, width int, esc bool) bool) {
	state := -1
	for len(s) > 0 {
		if s[0] == '\x1b' {
			n := escapeLen(s)
			if !fn(s[:n], 0, true) {
				return
			}
			s = s[n:]
			state = -1
			continue
		}
		cluster, rest, _, next := uniseg.FirstGraphemeClusterInString(s, state)
		r, _ := utf8.DecodeRuneInString(cluster)
		if !fn(cluster, runewidth.RuneWidth(r), false) {
			return
		}
		s, state = rest, next
	}
}

// escapeLen is the byte length of the CSI or OSC sequence at the start of s.
func escapeLen(s string) int {
	if len(s) < 2 {
		return len(s)
	}
	switch s[1] {
	case '[':
		for i := 2; i < len(s); i++ {
			if s[i] >= 0x40 && s[i] <= 0x7e {
				return i + 1
			}
		}
	case ']':
		for i := 2; i < len(s); i++ {
			if s[i] == '\x07' {
				return i + 1
			}
			if s[i] == '\x1b' && i+1 < len(s) && s[i+1] == '\\' {
				return i + 2
			}
		}
	default:
		return 2
	}
	return len(s)
}
