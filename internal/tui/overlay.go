// ABOUTME: Composites a popover box onto the rendered screen
// ABOUTME: Overlay rows replace the covered columns; background outside the box is kept

package tui

import "strings"

// overlayAt splices overlay into background with its top-left corner at
// (row, col). Rows past the background are appended.
func overlayAt(background, overlay string, row, col int) string {
	bg := strings.Split(background, "\n")
	ov := strings.Split(overlay, "\n")
	row, col = max(row, 0), max(col, 0)

	for len(bg) < row+len(ov) {
		bg = append(bg, "")
	}
	for i, line := range ov {
		r := row + i
		base := bg[r]
		prefix := padRight(truncateWidth(base, col), col)
		suffix := sliceFromCol(base, col+visibleWidth(line))
		bg[r] = prefix + line + suffix
	}
	return strings.Join(bg, "\n")
}

// overlayCenter places overlay in the middle of a width x height screen.
func overlayCenter(background, overlay string, width, height int) string {
	ovW := 0
	lines := strings.Split(overlay, "\n")
	for _, l := range lines {
		ovW = max(ovW, visibleWidth(l))
	}
	return overlayAt(background, overlay, (height-len(lines))/2, (width-ovW)/2)
}
