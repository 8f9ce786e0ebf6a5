package core

// Color represents a foreground color for a screen cell.
// Values map to ANSI 256-color codes in the terminal platform.
type Color uint8

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
	ColorBrightYellow
	ColorBrightCyan
	ColorOrange
	ColorGray
)

// Roles of patrol map cells, used by the viewer when drawing a grid.
const (
	ColorFloor    = ColorGray
	ColorObstacle = ColorWhite
	ColorTrail    = ColorCyan
	ColorGuard    = ColorBrightYellow
	ColorLoop     = ColorBrightRed
	ColorFrame    = ColorBlue
	ColorStatus   = ColorGreen
)
