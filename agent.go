package alphagomoku

import (
	"io"
	"sync"

	"github.com/hashicorp/go-multierror"

	"github.com/alphagomoku/game"
)

// An Agent is a player, AI or Human
type Agent struct {
	Searcher
	Player game.Player

	// Statistics
	Wins float32
	Loss float32
	Draw float32
	sync.Mutex

	name    string
	closers []io.Closer
}

// NewAgent wraps a searcher. The closers (typically Inferers) are released by Close.
func NewAgent(name string, s Searcher, closers ...io.Closer) *Agent {
	return &Agent{
		Searcher: s,
		name:     name,
		closers:  closers,
	}
}

func (a *Agent) Name() string { return a.name }

// Close releases every closer the agent owns and returns all of their errors.
func (a *Agent) Close() error {
	var errs error
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	a.closers = nil
	return errs
}

// Stats returns the wins, losses and draws recorded so far.
func (a *Agent) Stats() (wins, loss, draw float32) {
	a.Lock()
	defer a.Unlock()
	return a.Wins, a.Loss, a.Draw
}

// record books the result of a game in which the agent played a.Player.
func (a *Agent) record(winner game.Player) {
	a.Lock()
	switch winner {
	case game.Empty:
		a.Draw++
	case a.Player:
		a.Wins++
	default:
		a.Loss++
	}
	a.Unlock()
}

func (a *Agent) resetStats() {
	a.Lock()
	a.Wins = 0
	a.Loss = 0
	a.Draw = 0
	a.Unlock()
}
