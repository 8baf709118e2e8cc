// ABOUTME: Cursor snapshot tracking that survives popovers taking focus
// ABOUTME: Also holds the trailing-tag substitution used when a tag is picked

package editor

import (
	"strings"
	"unicode/utf8"
)

// TagSeparator follows an inserted tag. It is a non-breaking space so the
// next detection pass sees the token as closed.
const TagSeparator = "\u00a0"

// encodedSpace is how some markdown serialisers write a significant space.
const encodedSpace = "&#x20;"

// Snapshot is the caret position and the caret line's text before it.
type Snapshot struct {
	Range Pos
	Text  string
}

// Tracker remembers the last caret snapshot taken while no popover was up.
type Tracker struct {
	last  Snapshot
	valid bool
}

// Capture records a snapshot of d unless a popover is visible, in which
// case the previous snapshot stays frozen. It returns the current snapshot.
func (t *Tracker) Capture(d *Document, popoverVisible bool) Snapshot {
	if popoverVisible && t.valid {
		return t.last
	}
	t.last = Snapshot{Range: d.Caret(), Text: d.Preceding()}
	t.valid = true
	return t.last
}

// Last returns the most recent snapshot and whether one exists.
func (t *Tracker) Last() (Snapshot, bool) {
	return t.last, t.valid
}

// Reset forgets the snapshot.
func (t *Tracker) Reset() {
	t.last = Snapshot{}
	t.valid = false
}

// ReplaceTrailingTag rewrites the trailing "#token" of snap to
// "#tag"+TagSeparator on the line the snapshot was taken from. The line must
// still begin with the snapshot text and the column must match it; other
// lines are never touched. A single space (plain or encoded) directly after
// the token is absorbed by the separator. It returns buffer unchanged and
// false when the snapshot has no trailing tag or no longer matches.
func ReplaceTrailingTag(snap Snapshot, buffer, tag string) (string, bool) {
	lines := strings.Split(buffer, "\n")
	n := snap.Range.Line
	if n < 0 || n >= len(lines) || utf8.RuneCountInString(snap.Text) != snap.Range.Col {
		return buffer, false
	}
	line := lines[n]
	if !strings.HasPrefix(line, snap.Text) {
		return buffer, false
	}

	prefix := strings.ReplaceAll(snap.Text, encodedSpace, " ")
	start := tagStart(prefix)
	if start < 0 {
		return buffer, false
	}
	rest := line[len(snap.Text):]
	if r, ok := strings.CutPrefix(rest, encodedSpace); ok {
		rest = r
	} else {
		rest = strings.TrimPrefix(rest, " ")
	}

	lines[n] = prefix[:start] + "#" + tag + TagSeparator + rest
	return strings.Join(lines, "\n"), true
}
