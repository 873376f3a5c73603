package solartime

import "fmt"

// Placeholder is shown for readings that cannot be rendered.
const Placeholder = "--:--:--"

// Format renders a reading as zero-padded 24-hour HH:MM:SS.
func Format(w WallClock) string {
	if !w.Valid() {
		return Placeholder
	}
	h, m, s := w.Clock()
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
