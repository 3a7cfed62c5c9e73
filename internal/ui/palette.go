package ui

import (
	"strconv"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/samdwyer/slidetile/internal/board"
	"github.com/samdwyer/slidetile/internal/theme"
)

// minLabelDistance is the CIE Lab distance below which the theme label
// color is considered unreadable on a tile.
const minLabelDistance = 0.25

var (
	labelDark  = colorful.Color{R: 0, G: 0, B: 0}
	labelLight = colorful.Color{R: 1, G: 1, B: 1}
)

// TileColor returns the fill color for a tile of the given rank.
func TileColor(r board.Rank, p theme.Palette) colorful.Color {
	if r.Empty() {
		return p.Empty
	}
	a := int(r)
	return colorful.Color{
		R: float64((45*a)%256) / 255,
		G: float64((64*a)%256) / 255,
		B: float64((33*a)%256) / 255,
	}
}

// LabelColor returns the theme label color, or black/white when the label
// would be too close to the tile color to read.
func LabelColor(bg colorful.Color, p theme.Palette) colorful.Color {
	if p.Label.DistanceLab(bg) >= minLabelDistance {
		return p.Label
	}
	if l, _, _ := bg.Lab(); l > 0.5 {
		return labelDark
	}
	return labelLight
}

// Label returns the text shown on a tile; empty tiles have no label.
func Label(r board.Rank, classic bool) string {
	if r.Empty() {
		return ""
	}
	if classic {
		return strconv.Itoa(r.ClassicValue())
	}
	return strconv.Itoa(r.Value())
}
