package core

// Color represents a foreground color for a screen cell.
// Front ends map it to ANSI 256-color codes (terminal) or to a palette
// index (web clients), so the simulation never deals in hex strings.
type Color uint8

// Predefined colors for game elements.
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
	ColorDarkGreen
)

// Matrix palette used by the runner.
const (
	ColorMatrix = ColorBrightGreen   // #00ff41
	ColorSky    = ColorBrightCyan    // #00aaff
	ColorGold   = ColorOrange        // #ffcc00
	ColorNeon   = ColorBrightMagenta // #ff0066
	ColorSpark  = ColorBrightYellow  // #ffff00
)

// String returns the color name, used in logs and debug dumps.
func (c Color) String() string {
	switch c {
	case ColorDefault:
		return "default"
	case ColorRed:
		return "red"
	case ColorGreen:
		return "green"
	case ColorYellow:
		return "yellow"
	case ColorBlue:
		return "blue"
	case ColorMagenta:
		return "magenta"
	case ColorCyan:
		return "cyan"
	case ColorWhite:
		return "white"
	case ColorBrightRed:
		return "bright-red"
	case ColorBrightGreen:
		return "bright-green"
	case ColorBrightYellow:
		return "bright-yellow"
	case ColorBrightBlue:
		return "bright-blue"
	case ColorBrightMagenta:
		return "bright-magenta"
	case ColorBrightCyan:
		return "bright-cyan"
	case ColorBrightWhite:
		return "bright-white"
	case ColorOrange:
		return "orange"
	case ColorGray:
		return "gray"
	case ColorDarkGreen:
		return "dark-green"
	default:
		return "unknown"
	}
}
