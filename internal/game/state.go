// Package game provides the main game loop and state management.
package game

// State represents the current game state.
type State int

const (
	// StatePlaying accepts moves.
	StatePlaying State = iota
	// StateGameOver is reached when the board is full and no move changes it.
	StateGameOver
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}
