package board

import (
	"fmt"
	"strings"
)

// Direction is the edge tiles slide toward.
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
)

// Directions lists every direction in a stable order.
var Directions = []Direction{Left, Right, Up, Down}

// String returns the input token for the direction.
func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "unknown"
	}
}

// ParseDirection converts an input token ("left", "right", "up", "down") to a Direction.
func ParseDirection(s string) (Direction, error) {
	for _, d := range Directions {
		if strings.EqualFold(s, d.String()) {
			return d, nil
		}
	}
	return Left, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}

// lines returns how many independent lines a move in d processes.
func (d Direction) lines() int {
	if d == Left || d == Right {
		return Height
	}
	return Width
}

// lineLength returns the number of cells in each line for d.
func (d Direction) lineLength() int {
	if d == Left || d == Right {
		return Width
	}
	return Height
}

// cell maps a position within a line to grid coordinates.
// Position 0 is the cell touching the target edge.
func (d Direction) cell(line, pos int) (row, col int) {
	switch d {
	case Right:
		return line, Width - 1 - pos
	case Up:
		return pos, line
	case Down:
		return Height - 1 - pos, line
	default:
		return line, pos
	}
}
