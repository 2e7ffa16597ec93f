package overlay

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Color is one of the colors overlay text can be drawn in.
type Color uint8

const (
	// White is the default text color.
	White Color = iota
	Red
	Yellow
	Cyan
	Green
	Blue
	Magenta
)

var colorNames = map[Color]string{
	White:   "white",
	Red:     "red",
	Yellow:  "yellow",
	Cyan:    "cyan",
	Green:   "green",
	Blue:    "blue",
	Magenta: "magenta",
}

var colorAttributes = map[Color]color.Attribute{
	White:   color.FgWhite,
	Red:     color.FgRed,
	Yellow:  color.FgYellow,
	Cyan:    color.FgCyan,
	Green:   color.FgGreen,
	Blue:    color.FgBlue,
	Magenta: color.FgMagenta,
}

// String returns the lower case name of the color.
func (c Color) String() string {
	if name, ok := colorNames[c]; ok {
		return name
	}

	return fmt.Sprintf("color(%d)", uint8(c))
}

// ParseColor returns the color with the given name, ignoring case.
func ParseColor(name string) (Color, error) {
	for c, n := range colorNames {
		if strings.EqualFold(n, name) {
			return c, nil
		}
	}

	return White, fmt.Errorf("unknown overlay color: %q", name)
}

// attribute maps c to its terminal attribute, falling back to white.
func (c Color) attribute() color.Attribute {
	if attr, ok := colorAttributes[c]; ok {
		return attr
	}

	return color.FgWhite
}
