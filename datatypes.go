package alphagomoku

import (
	"io"

	dual "github.com/alphagomoku/dualnet"
	"github.com/alphagomoku/game"
	"gorgonia.org/tensor"
)

// Config for the AZ structure.
// It holds the game parameters and the shape contract of the neural network.
type Config struct {
	Name            string      `json:"name"`
	BoardSize       int         `json:"board_size"`
	WinLen          int         `json:"win_len"`
	NNConf          dual.Config `json:"nn_conf"`
	UpdateThreshold float64     `json:"update_threshold"`
	// maximum number of examples
	MaxExamples int `json:"max_examples"`
	// seeds the example shuffling
	Seed uint64 `json:"seed"`
}

// DefaultConfig is a 6×6 board with four in a row to win.
func DefaultConfig() Config {
	return Config{
		Name:            "AlphaGomoku",
		BoardSize:       6,
		WinLen:          4,
		NNConf:          dual.DefaultConf(6),
		UpdateThreshold: 0.55,
	}
}

func (c Config) IsValid() bool {
	return c.BoardSize >= 1 &&
		c.WinLen >= 1 && c.WinLen <= c.BoardSize &&
		c.NNConf.IsValid() &&
		c.NNConf.Width == c.BoardSize && c.NNConf.Height == c.BoardSize &&
		c.UpdateThreshold >= 0 && c.UpdateThreshold <= 1 &&
		c.MaxExamples >= 0
}

// Searcher picks a move for the side to move in g. The returned policy is a
// distribution over all cells and may be nil.
type Searcher interface {
	Search(g game.State) (move int, policy []float32, err error)
}

// Inferer is anything that can infer given an encoded position of shape (N, 5, n, n).
type Inferer interface {
	Infer(x *tensor.Dense) (policy []float32, value float32, err error)
	io.Closer
}

// Trainer fits a network to a batch of encoded positions, target policies and target values.
type Trainer interface {
	Train(xs, policies, values *tensor.Dense) error
}

// Promoter is implemented by trainers that keep a best network apart from the one being trained.
type Promoter interface {
	Promote() error
}

// ExecLogger is anything that can return the execution log.
type ExecLogger interface {
	ExecLog() string
}
