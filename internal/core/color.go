package core

// Color is the foreground of a screen cell. The front end decides how each
// value is drawn; ColorDefault leaves the terminal's own color.
type Color uint8

const (
	ColorDefault Color = iota

	// Map and chrome.
	ColorWhite
	ColorBrightWhite
	ColorGray
	ColorDarkGray
	ColorGreen
	ColorCyan
	ColorBrightCyan

	// Creatures, highlights and puzzle widgets.
	ColorRed
	ColorBrightRed
	ColorOrange
	ColorBrightYellow
	ColorBrightGreen
	ColorBrightBlue
	ColorBrightMagenta
)
