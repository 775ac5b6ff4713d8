package generator

import "strings"

// Measurer reports the rendered width of a string at a font size. Both
// renderers provide one; tests use a fake with deterministic widths.
type Measurer interface {
	Width(text string, size float64) float64
}

// Name line sizing bounds, matching the certificate artwork.
const (
	NameStartSize = 48.0
	NameFloorSize = 24.0
	NameStepSize  = 2.0
)

// FitLine shrinks the font size from start by step until text measures within
// maxWidth, stopping at the floor. Returns the chosen size and whether the
// text fits at that size. A false fit is a visual degradation for the caller
// to clamp, never an error.
func FitLine(m Measurer, text string, maxWidth, start, floor, step float64) (size float64, fits bool) {
	size = start
	for size > floor && m.Width(text, size) > maxWidth {
		size -= step
	}
	if size < floor {
		size = floor
	}
	return size, m.Width(text, size) <= maxWidth
}

// WrapWords greedily breaks text into lines no wider than maxWidth at the
// given font size. Words are never split or hyphenated, so a single word
// wider than maxWidth becomes a line on its own. The final buffer is always
// flushed.
func WrapWords(m Measurer, text string, size, maxWidth float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := ""
	for _, word := range words {
		tentative := word
		if current != "" {
			tentative = current + " " + word
		}
		if current != "" && m.Width(tentative, size) > maxWidth {
			lines = append(lines, current)
			current = word
			continue
		}
		current = tentative
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}
