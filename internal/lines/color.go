package lines

// Color identifies a ball colour. The zero value is an empty cell.
type Color uint8

// Ball palette. Order matters: presets take a prefix of Palette.
const (
	Empty Color = iota
	Red
	Green
	Blue
	Yellow
	Purple
	Cyan
	Orange
	Pink
)

// Palette lists every ball colour in palette order.
var Palette = []Color{Red, Green, Blue, Yellow, Purple, Cyan, Orange, Pink}

var colorLetters = [...]byte{'.', 'R', 'G', 'B', 'Y', 'P', 'C', 'O', 'K'}

var colorNames = [...]string{"empty", "red", "green", "blue", "yellow", "purple", "cyan", "orange", "pink"}

// PaletteOf returns the first n colours of the palette, clamped to [1, len(Palette)].
func PaletteOf(n int) []Color {
	if n < 1 {
		n = 1
	}
	if n > len(Palette) {
		n = len(Palette)
	}
	out := make([]Color, n)
	copy(out, Palette[:n])
	return out
}

// Valid reports whether c is Empty or a palette colour.
func (c Color) Valid() bool {
	return int(c) < len(colorLetters)
}

// String returns the colour name.
func (c Color) String() string {
	if !c.Valid() {
		return "invalid"
	}
	return colorNames[c]
}

// Letter returns the single-letter code used by String and ParseBoard.
func (c Color) Letter() byte {
	if !c.Valid() {
		return '?'
	}
	return colorLetters[c]
}

// ColorFromLetter maps a letter code back to a colour. Unknown letters map to Empty.
func ColorFromLetter(b byte) Color {
	for i, l := range colorLetters {
		if l == b {
			return Color(i)
		}
	}
	return Empty
}
