package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/samdwyer/slidetile/internal/board"
	"github.com/samdwyer/slidetile/internal/theme"
)

const (
	// Tile size in terminal cells
	TileWidth  = 8
	TileHeight = 3

	tileGap = 1
	originX = 2
	originY = 1
)

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen  *Screen
	palette theme.Palette
	classic bool
}

// NewRenderer creates a new renderer for the given screen.
// classic selects 2^rank labels instead of 2^(rank-1).
func NewRenderer(screen *Screen, palette theme.Palette, classic bool) *Renderer {
	return &Renderer{
		screen:  screen,
		palette: palette,
		classic: classic,
	}
}

// TileOrigin returns the top-left screen position of the tile at (row, col).
func TileOrigin(row, col int) (x, y int) {
	return originX + col*(TileWidth+tileGap), originY + row*(TileHeight+tileGap)
}

// StatusRow returns the screen row of the status line.
func StatusRow() int {
	_, y := TileOrigin(board.Height, 0)
	return y
}

// Render draws the grid and a status line to the screen.
func (r *Renderer) Render(grid board.Grid, status string, alert bool) {
	r.screen.Clear()

	bg := theme.ToTcell(r.palette.Background)
	frameW := board.Width*(TileWidth+tileGap) + tileGap
	frameH := board.Height*(TileHeight+tileGap) + tileGap
	r.screen.Fill(originX-tileGap, originY-tileGap, frameW, frameH, tcell.StyleDefault.Background(bg))

	for row := 0; row < board.Height; row++ {
		for col := 0; col < board.Width; col++ {
			r.renderTile(row, col, grid[row][col])
		}
	}

	statusColor := r.palette.Text
	if alert {
		statusColor = r.palette.Alert
	}
	statusStyle := tcell.StyleDefault.
		Foreground(theme.ToTcell(statusColor)).
		Background(bg).
		Bold(alert)
	r.drawText(originX, StatusRow(), status, statusStyle)

	r.screen.Show()
}

// renderTile fills one tile and centers its label.
func (r *Renderer) renderTile(row, col int, rank board.Rank) {
	x, y := TileOrigin(row, col)
	fill := TileColor(rank, r.palette)
	style := tcell.StyleDefault.Background(theme.ToTcell(fill))
	r.screen.Fill(x, y, TileWidth, TileHeight, style)

	label := Label(rank, r.classic)
	if label == "" {
		return
	}
	labelStyle := style.Foreground(theme.ToTcell(LabelColor(fill, r.palette))).Bold(true)
	r.drawText(x+(TileWidth-runewidth.StringWidth(label))/2, y+TileHeight/2, label, labelStyle)
}

// drawText writes msg starting at (x, y), advancing by each rune's display width.
func (r *Renderer) drawText(x, y int, msg string, style tcell.Style) {
	for _, ch := range msg {
		r.screen.SetContent(x, y, ch, style)
		x += runewidth.RuneWidth(ch)
	}
}
