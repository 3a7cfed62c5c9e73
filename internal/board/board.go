// Package board implements the sliding-tile grid: moves, merges and tile spawning.
package board

import (
	"errors"
	"math/rand"
)

const (
	// Board dimensions
	Width  = 4
	Height = 4

	// StartTiles is the number of tiles placed by Reset.
	StartTiles = 4

	// SpawnRank is the rank of every newly spawned tile.
	SpawnRank Rank = 1
)

var (
	// ErrBoardFull is returned by SpawnTile when no cell is empty.
	ErrBoardFull = errors.New("board is full")
	// ErrInvalidDirection is returned by ParseDirection for an unknown token.
	ErrInvalidDirection = errors.New("invalid direction")
)

// Grid is a snapshot of cell ranks indexed [row][col], row 0 at the top.
type Grid [Height][Width]Rank

// Board owns the grid and the random source used for spawning.
// It is not safe for concurrent use.
type Board struct {
	cells Grid
	rng   *rand.Rand
}

// New creates a board seeded with StartTiles tiles.
func New(rng *rand.Rand) *Board {
	b := &Board{rng: rng}
	b.Reset()
	return b
}

// FromGrid creates a board with the given cells and no extra tiles.
func FromGrid(g Grid, rng *rand.Rand) *Board {
	return &Board{cells: g, rng: rng}
}

// Reset clears the grid and places StartTiles new tiles.
func (b *Board) Reset() {
	b.cells = Grid{}
	for i := 0; i < StartTiles; i++ {
		// A 16-cell board always has room for the start tiles.
		_, _, _ = b.SpawnTile()
	}
}

// Grid returns a copy of the current cells.
func (b *Board) Grid() Grid {
	return b.cells
}

// At returns the rank at the given position, or 0 when out of bounds.
func (b *Board) At(row, col int) Rank {
	if row < 0 || row >= Height || col < 0 || col >= Width {
		return 0
	}
	return b.cells[row][col]
}

// Count returns the number of non-empty cells.
func (b *Board) Count() int {
	n := 0
	for row := range b.cells {
		for _, r := range b.cells[row] {
			if !r.Empty() {
				n++
			}
		}
	}
	return n
}

// IsFull returns true if no cell is empty.
func (b *Board) IsFull() bool {
	for row := range b.cells {
		for _, r := range b.cells[row] {
			if r.Empty() {
				return false
			}
		}
	}
	return true
}

// CanMove returns true if at least one direction would change the grid.
func (b *Board) CanMove() bool {
	for row := 0; row < Height; row++ {
		for col := 0; col < Width; col++ {
			r := b.cells[row][col]
			if r.Empty() {
				return true
			}
			if col+1 < Width && b.cells[row][col+1] == r {
				return true
			}
			if row+1 < Height && b.cells[row+1][col] == r {
				return true
			}
		}
	}
	return false
}

// Move slides every line toward dir, merging equal neighbours once.
// It returns true if any cell changed.
func (b *Board) Move(dir Direction) bool {
	changed := false
	line := make([]Rank, dir.lineLength())

	for l := 0; l < dir.lines(); l++ {
		b.readLine(dir, l, line)
		before := append([]Rank(nil), line...)

		compact(line)
		merge(line)
		compact(line)

		for i := range line {
			if line[i] != before[i] {
				changed = true
				break
			}
		}
		b.writeLine(dir, l, line)
	}

	return changed
}

// SpawnTile places a SpawnRank tile on a uniformly chosen empty cell.
// It returns ErrBoardFull without touching the grid when no cell is empty.
func (b *Board) SpawnTile() (row, col int, err error) {
	empty := make([][2]int, 0, Width*Height)
	for r := 0; r < Height; r++ {
		for c := 0; c < Width; c++ {
			if b.cells[r][c].Empty() {
				empty = append(empty, [2]int{r, c})
			}
		}
	}
	if len(empty) == 0 {
		return -1, -1, ErrBoardFull
	}

	pick := empty[b.rng.Intn(len(empty))]
	b.cells[pick[0]][pick[1]] = SpawnRank
	return pick[0], pick[1], nil
}

func (b *Board) readLine(dir Direction, l int, line []Rank) {
	for pos := range line {
		row, col := dir.cell(l, pos)
		line[pos] = b.cells[row][col]
	}
}

func (b *Board) writeLine(dir Direction, l int, line []Rank) {
	for pos, r := range line {
		row, col := dir.cell(l, pos)
		b.cells[row][col] = r
	}
}

// compact moves non-empty cells to the front of line, keeping their order.
func compact(line []Rank) {
	w := 0
	for _, r := range line {
		if !r.Empty() {
			line[w] = r
			w++
		}
	}
	for ; w < len(line); w++ {
		line[w] = 0
	}
}

// merge combines equal neighbours into the cell nearer the front.
// A merged cell leaves an empty slot behind it, so it never merges twice.
func merge(line []Rank) {
	for i := 1; i < len(line); i++ {
		if !line[i].Empty() && line[i] == line[i-1] {
			line[i-1]++
			line[i] = 0
		}
	}
}
