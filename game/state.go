package game

import "fmt"

// Player is the value a cell holds. The empty cell is the zero value.
type Player int8

const (
	Empty     Player = 0
	PlayerOne Player = 1
	PlayerTwo Player = -1

	// NoMove marks the absence of a last move.
	NoMove = -1
)

// Opponent returns the other player. Opponent(Empty) is Empty.
func Opponent(p Player) Player { return -p }

func (p Player) String() string {
	switch p {
	case PlayerOne:
		return "X"
	case PlayerTwo:
		return "O"
	case Empty:
		return "."
	}
	return fmt.Sprintf("Player(%d)", int8(p))
}

// Status is the coarse classification of a game.
type Status int

const (
	InProgress Status = iota
	Won
	Drawn
)

func (s Status) String() string {
	switch s {
	case InProgress:
		return "in progress"
	case Won:
		return "won"
	case Drawn:
		return "drawn"
	}
	return "UNKNOWN STATUS"
}

// Info is the auxiliary data returned by Step. It is currently always empty.
type Info map[string]interface{}

// State is the read-only view of a game that agents and drivers use.
type State interface {
	BoardSize() int
	ActionSpace() int       // number of cells on the board
	Board() Board           // snapshot of the board
	Turn() Player           // player to move; meaningless once the game has ended
	LastMove() int          // last played cell or NoMove
	MoveNumber() int        // stones placed so far
	Ended() (bool, Player)  // has the game ended? if yes, then who's the winner?
	LegalMovesMask() []bool // true at every empty cell
	Check(action int) bool  // is the action legal right now?
}

var _ State = (*Gomoku)(nil)
