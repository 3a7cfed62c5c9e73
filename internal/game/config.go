package game

import "github.com/samdwyer/slidetile/internal/board"

// Config holds game configuration options.
type Config struct {
	// Seed for random number generation. Used for reproducible tile spawns.
	// A seed of 0 means a random seed will be generated.
	Seed int64

	// Classic labels tiles 2^rank, so a fresh tile reads 2 instead of 1.
	Classic bool

	// Theme names an embedded color theme. Empty selects the default.
	Theme string

	// Opening moves are played before the first key press.
	Opening []board.Direction
}
