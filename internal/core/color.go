package core

// Color represents a foreground color for a screen cell.
// The platform layer maps these to ANSI codes at render time.
type Color uint8

// Predefined colors for playfield elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// laneColors cycles across lanes so adjacent columns read apart.
var laneColors = []Color{
	ColorBrightCyan,
	ColorBrightMagenta,
	ColorBrightYellow,
	ColorBrightGreen,
	ColorBrightBlue,
	ColorBrightRed,
}

// LaneColor returns the note color for a lane.
func LaneColor(lane int) Color {
	if lane < 0 {
		return ColorDefault
	}
	return laneColors[lane%len(laneColors)]
}
