package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Composite draws the dialog centered over a rendered background frame.
// Background lines may carry ANSI styling; the slices on either side of
// the dialog are cut on display columns, not bytes or runes, so escape
// sequences are never split.
func Composite(background, overlay string, width, height int) string {
	if overlay == "" {
		return background
	}

	bgLines := strings.Split(background, "\n")
	for len(bgLines) < height {
		bgLines = append(bgLines, "")
	}

	overlayLines := strings.Split(overlay, "\n")
	overlayWidth := 0
	for _, line := range overlayLines {
		if w := ansi.StringWidth(line); w > overlayWidth {
			overlayWidth = w
		}
	}

	top := (height - len(overlayLines)) / 2
	if top < 0 {
		top = 0
	}
	left := (width - overlayWidth) / 2
	if left < 0 {
		left = 0
	}

	for i, line := range overlayLines {
		row := top + i
		if row >= len(bgLines) {
			break
		}
		bgLines[row] = spliceLine(bgLines[row], line, left)
	}

	return strings.Join(bgLines[:height], "\n")
}

// spliceLine lays one dialog line over a background line at the given
// column, keeping whatever background remains visible on both sides.
func spliceLine(bg, overlay string, col int) string {
	prefix := ansi.Truncate(bg, col, "")
	if pad := col - ansi.StringWidth(prefix); pad > 0 {
		prefix += strings.Repeat(" ", pad)
	}
	suffix := ansi.TruncateLeft(bg, col+ansi.StringWidth(overlay), "")
	return prefix + overlay + suffix
}

// DialogMaxWidth clamps the dialog width to a readable range for the
// given terminal width.
func DialogMaxWidth(termWidth int) int {
	w := termWidth * 2 / 3
	switch {
	case w < 44:
		return 44
	case w > 64:
		return 64
	}
	return w
}
