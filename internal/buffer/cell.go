package buffer

// RGB is an 8-bit color.
type RGB [3]uint8

// Cell is one character position.
type Cell struct {
	Ch    rune
	Color RGB
}

const (
	// Continuation marks the cell covered by the right half of a wide rune.
	Continuation rune = -1

	// invalid never matches a written cell, forcing a repaint.
	invalid rune = -2
)

// Blank is the cell a freshly sized back grid holds.
var Blank = Cell{Ch: ' '}

// FillMode decides whether the cell color is applied to the glyph or the
// background.
type FillMode uint8

const (
	Foreground FillMode = iota
	Background
)

func (m FillMode) String() string {
	if m == Background {
		return "background"
	}
	return "foreground"
}

// ParseFillMode accepts "fg"/"foreground" and "bg"/"background".
func ParseFillMode(s string) (FillMode, bool) {
	switch s {
	case "", "fg", "foreground":
		return Foreground, true
	case "bg", "background":
		return Background, true
	}
	return Foreground, false
}

// contrast picks black or white text for a background color.
func contrast(c RGB) RGB {
	l := 299*int(c[0]) + 587*int(c[1]) + 114*int(c[2])
	if l > 128*1000 {
		return RGB{0, 0, 0}
	}
	return RGB{255, 255, 255}
}
