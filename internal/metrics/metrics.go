// Package metrics estimates text and box dimensions from font size, the
// same approximation used by reference layered-graph renderers: average
// glyph advance is taken as 0.6 of the font size.
package metrics

// TextWidth approximates the rendered width of s at the given font size.
func TextWidth(s string, fontSize float64) float64 {
	return float64(len([]rune(s))) * fontSize * 0.6
}

// NodeSize returns the (width, height) of a node box sized to fit label at
// fontSize, with padding on every side.
func NodeSize(label string, fontSize float64) (width, height float64) {
	padding := fontSize * 0.8
	w := TextWidth(label, fontSize) + 2*padding
	minWidth := fontSize * 3.2
	if w < minWidth {
		w = minWidth
	}
	h := fontSize*2 + padding
	return w, h
}
