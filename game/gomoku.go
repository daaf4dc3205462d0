package game

import (
	"io"

	"github.com/pkg/errors"
)

// directions are the four line orientations a run can follow. The negative
// half of each line is walked by negating the vector.
var directions = [4][2]int{
	{0, 1},  // horizontal
	{1, 0},  // vertical
	{1, 1},  // diagonal down-right
	{1, -1}, // diagonal down-left
}

// Gomoku is a connect-N game on a square board.
//
// A Gomoku has a single owner and is not safe for concurrent use. Concurrent
// self-play needs one instance per game.
type Gomoku struct {
	size   int
	winLen int

	board     Board
	current   Player
	done      bool
	winner    Player
	available []int // empty cells, ascending
	lastMove  int
	moves     int
}

// New returns a fresh game on a size×size board where winLen stones in a row win.
func New(size, winLen int) (*Gomoku, error) {
	if size < 1 {
		return nil, errors.Errorf("board size must be positive, got %d", size)
	}
	if winLen < 1 || winLen > size {
		return nil, errors.Errorf("win length must be in [1, %d], got %d", size, winLen)
	}
	g := &Gomoku{size: size, winLen: winLen}
	g.Reset()
	return g, nil
}

// Reset re-initializes the game to its creation values.
func (g *Gomoku) Reset() {
	g.board = NewBoard(g.size)
	g.current = PlayerOne
	g.done = false
	g.winner = Empty
	g.available = make([]int, g.size*g.size)
	for i := range g.available {
		g.available[i] = i
	}
	g.lastMove = NoMove
	g.moves = 0
}

// Step places the current player's stone on action.
//
// It returns a snapshot of the board, the reward (+1 if PlayerOne just won,
// -1 if PlayerTwo just won, 0 otherwise), whether the game has ended and an
// empty Info. The turn passes to the opponent even on the final move.
func (g *Gomoku) Step(action int) (Board, float32, bool, Info, error) {
	if g.done {
		return Board{}, 0, true, nil, ErrGameOver
	}
	if err := g.validate(action); err != nil {
		return Board{}, 0, false, nil, err
	}

	row, col := g.board.Coord(action)
	g.board.Cells[action] = g.current
	g.remove(action)
	g.lastMove = action
	g.moves++

	var reward float32
	switch {
	case g.checkWinner(row, col):
		g.done = true
		g.winner = g.current
		reward = float32(g.current)
	case len(g.available) == 0:
		g.done = true
		g.winner = Empty
	}

	g.current = Opponent(g.current)
	return g.board.Clone(), reward, g.done, Info{}, nil
}

func (g *Gomoku) validate(action int) error {
	if action < 0 || action >= len(g.board.Cells) {
		return &IllegalMoveError{Move: action, Reason: "off the board"}
	}
	if g.board.Cells[action] != Empty {
		return &IllegalMoveError{Move: action, Reason: "cell already occupied"}
	}
	return nil
}

// remove deletes action from the sorted available list.
func (g *Gomoku) remove(action int) {
	for i, a := range g.available {
		if a == action {
			g.available = append(g.available[:i], g.available[i+1:]...)
			return
		}
	}
}

// checkWinner reports whether the stone at (row, col) completes a run of at
// least winLen. Only lines through the newest stone can have changed, so it
// is the only anchor ever checked.
func (g *Gomoku) checkWinner(row, col int) bool {
	player := g.board.At(row, col)
	for _, d := range directions {
		count := 1 + g.run(row, col, d[0], d[1], player) + g.run(row, col, -d[0], -d[1], player)
		if count >= g.winLen {
			return true
		}
	}
	return false
}

// run counts consecutive stones of player starting one step from (row, col) along (dr, dc).
func (g *Gomoku) run(row, col, dr, dc int, player Player) int {
	var n int
	for i := 1; i < g.winLen; i++ {
		r, c := row+dr*i, col+dc*i
		if !g.board.InBounds(r, c) || g.board.At(r, c) != player {
			break
		}
		n++
	}
	return n
}

// LegalMovesMask returns a mask of length BoardSize² that is true at every available cell.
func (g *Gomoku) LegalMovesMask() []bool {
	mask := make([]bool, g.size*g.size)
	for _, a := range g.available {
		mask[a] = true
	}
	return mask
}

// AvailableActions returns a copy of the empty cells in ascending order.
func (g *Gomoku) AvailableActions() []int {
	retVal := make([]int, len(g.available))
	copy(retVal, g.available)
	return retVal
}

// Check returns true if action may be played now.
func (g *Gomoku) Check(action int) bool {
	return !g.done && g.validate(action) == nil
}

// Render writes the board to w.
func (g *Gomoku) Render(w io.Writer) error { return g.board.Render(w) }

func (g *Gomoku) String() string { return g.board.String() }

func (g *Gomoku) BoardSize() int   { return g.size }
func (g *Gomoku) WinLen() int      { return g.winLen }
func (g *Gomoku) ActionSpace() int { return g.size * g.size }
func (g *Gomoku) Board() Board     { return g.board.Clone() }
func (g *Gomoku) Turn() Player     { return g.current }
func (g *Gomoku) Winner() Player   { return g.winner }
func (g *Gomoku) LastMove() int    { return g.lastMove }
func (g *Gomoku) MoveNumber() int  { return g.moves }

// Ended returns whether the game is over and, if so, the winner (Empty for a draw).
func (g *Gomoku) Ended() (bool, Player) { return g.done, g.winner }

// Status classifies the game.
func (g *Gomoku) Status() Status {
	switch {
	case !g.done:
		return InProgress
	case g.winner == Empty:
		return Drawn
	}
	return Won
}

// Clone returns an independent copy of the game.
func (g *Gomoku) Clone() *Gomoku {
	retVal := *g
	retVal.board = g.board.Clone()
	retVal.available = g.AvailableActions()
	return &retVal
}
