// viewport.go provides a scrollable, word-wrapping text area used by the
// chat and history views.
package tui

import (
	"strings"
)

// Viewport is a vertically scrollable text area with line wrapping.
type Viewport struct {
	width   int
	height  int
	content []string // logical lines, wrapped at render time
	scrollY int      // vertical scroll offset into wrapped lines
}

// NewViewport creates a viewport with the given dimensions.
func NewViewport(width, height int) *Viewport {
	return &Viewport{width: width, height: height}
}

// SetContentLines replaces the viewport content.
func (v *Viewport) SetContentLines(lines []string) {
	v.content = lines
	v.clampScroll()
}

// SetSize updates viewport dimensions.
func (v *Viewport) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.clampScroll()
}

// ScrollUp moves the viewport up by n lines.
func (v *Viewport) ScrollUp(n int) {
	v.scrollY -= n
	v.clampScroll()
}

// ScrollDown moves the viewport down by n lines.
func (v *Viewport) ScrollDown(n int) {
	v.scrollY += n
	v.clampScroll()
}

// PageUp scrolls up by one page.
func (v *Viewport) PageUp() {
	v.ScrollUp(v.height)
}

// PageDown scrolls down by one page.
func (v *Viewport) PageDown() {
	v.ScrollDown(v.height)
}

// End scrolls to the bottom.
func (v *Viewport) End() {
	v.scrollY = v.maxScrollY()
}

// Render returns the visible portion of the content, padded to height.
func (v *Viewport) Render() string {
	wrapped := v.wrapped()

	start := v.scrollY
	if start > len(wrapped) {
		start = len(wrapped)
	}
	end := start + v.height
	if end > len(wrapped) {
		end = len(wrapped)
	}

	visible := make([]string, 0, v.height)
	visible = append(visible, wrapped[start:end]...)
	for len(visible) < v.height {
		visible = append(visible, "")
	}

	return strings.Join(visible, "\n")
}

// wrapped hard-wraps every content line to the viewport width.
func (v *Viewport) wrapped() []string {
	if v.width <= 0 {
		return v.content
	}
	var out []string
	for _, line := range v.content {
		for len(line) > v.width {
			out = append(out, line[:v.width])
			line = line[v.width:]
		}
		out = append(out, line)
	}
	return out
}

func (v *Viewport) clampScroll() {
	maxY := v.maxScrollY()
	if v.scrollY > maxY {
		v.scrollY = maxY
	}
	if v.scrollY < 0 {
		v.scrollY = 0
	}
}

func (v *Viewport) maxScrollY() int {
	max := len(v.wrapped()) - v.height
	if max < 0 {
		return 0
	}
	return max
}
