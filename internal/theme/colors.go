package theme

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// ParseColorful parses a hex color string (e.g., "#FF0000" or "FF0000").
func ParseColorful(hex string) (colorful.Color, error) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return colorful.Color{}, fmt.Errorf("invalid hex color length: %s", hex)
	}

	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("invalid hex color %s: %w", hex, err)
	}
	return c, nil
}

// ToTcell converts a colorful.Color to a 24-bit tcell.Color.
func ToTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
