package core

// Color is the logical colour of a screen cell. The platform maps it to a
// terminal colour through the active theme, so games never deal with ANSI
// codes directly.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorBlue
	ColorYellow
	ColorPurple
	ColorCyan
	ColorOrange
	ColorPink
	ColorMuted  // empty cells, grid lines
	ColorAccent // cursor, selection, titles
	ColorDanger // game over, errors
)

// BallColors lists the colours used for balls, in palette order.
var BallColors = []Color{
	ColorRed, ColorGreen, ColorBlue, ColorYellow,
	ColorPurple, ColorCyan, ColorOrange, ColorPink,
}
