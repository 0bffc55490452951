package tui

import (
	"strings"
)

type pageLayout struct {
	windowWidth    int
	windowHeight   int
	viewportWidth  int
	viewportHeight int
	pickerHeight   int
}

func newPageLayout() pageLayout {
	return pageLayout{
		viewportWidth:  80,
		viewportHeight: 12,
		pickerHeight:   10,
	}
}

// Update recomputes panel sizes for a terminal of width x height. The hero,
// file panel, composer and status bar take a fixed share; the answer viewport
// gets the rest.
func (l *pageLayout) Update(width, height int) {
	l.windowWidth = width
	l.windowHeight = height
	innerWidth := width - viewportHorizontalPadding
	if innerWidth < minViewportWidth {
		innerWidth = minViewportWidth
	}
	l.viewportWidth = innerWidth

	const chrome = 18
	answer := height - chrome
	if answer < 6 {
		answer = 6
	}
	l.viewportHeight = answer

	const pickerChrome = 12
	picker := height - pickerChrome
	if picker < 5 {
		picker = 5
	}
	l.pickerHeight = picker
}

func (l pageLayout) wrapWidth(padding int) int {
	width := l.viewportWidth
	if width <= 0 {
		width = 80
	}
	if padding < 0 {
		padding = 0
	}
	available := width - padding
	if available < 20 {
		available = 20
	}
	return available
}

func joinNonEmpty(parts []string) string {
	filtered := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		filtered = append(filtered, part)
	}
	return strings.Join(filtered, "\n\n")
}
