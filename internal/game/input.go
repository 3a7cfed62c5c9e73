package game

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/slidetile/internal/board"
)

// action is what a key press asks the game to do.
type action int

const (
	actionNone action = iota
	actionMove
	actionRestart
	actionQuit
)

// command is a decoded key press.
type command struct {
	action action
	dir    board.Direction
}

// runeDirections maps wasd and vi keys to directions.
var runeDirections = map[rune]board.Direction{
	'a': board.Left,
	'd': board.Right,
	'w': board.Up,
	's': board.Down,
	'h': board.Left,
	'l': board.Right,
	'k': board.Up,
	'j': board.Down,
}

// decodeKey translates a key (and its rune for tcell.KeyRune) into a command.
func decodeKey(key tcell.Key, ch rune) command {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return command{action: actionQuit}
	case tcell.KeyLeft:
		return command{action: actionMove, dir: board.Left}
	case tcell.KeyRight:
		return command{action: actionMove, dir: board.Right}
	case tcell.KeyUp:
		return command{action: actionMove, dir: board.Up}
	case tcell.KeyDown:
		return command{action: actionMove, dir: board.Down}
	case tcell.KeyRune:
		ch = unicode.ToLower(ch)
		if dir, ok := runeDirections[ch]; ok {
			return command{action: actionMove, dir: dir}
		}
		switch ch {
		case 'r':
			return command{action: actionRestart}
		case 'q':
			return command{action: actionQuit}
		}
	}
	return command{action: actionNone}
}
