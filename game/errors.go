package game

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrGameOver is returned by Step once the game has ended.
	ErrGameOver = errors.New("game is over, call Reset to start a new game")

	// ErrInvalidLastMove is returned by the encoder when the last move index is neither NoMove nor on the board.
	ErrInvalidLastMove = errors.New("invalid last move")
)

// IllegalMoveError is returned by Step when the target cell is off the board or already occupied.
// The game is left untouched.
type IllegalMoveError struct {
	Move   int
	Reason string
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move %d: %s", e.Move, e.Reason)
}
