package dual

import (
	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

// Features is the number of input planes the encoder produces.
const Features = 5

// Config describes the shapes a policy-value network consumes and produces.
// The network itself lives outside this module.
type Config struct {
	BatchSize   int `json:"batch_size"`   // batch size
	Width       int `json:"width"`        // board size width
	Height      int `json:"height"`       // board size height
	Features    int `json:"features"`     // feature counts
	ActionSpace int `json:"action_space"` // action space
}

// DefaultConf returns the configuration for a square board of size n.
func DefaultConf(n int) Config {
	return Config{
		BatchSize:   256,
		Width:       n,
		Height:      n,
		Features:    Features,
		ActionSpace: n * n,
	}
}

func (conf Config) IsValid() bool {
	return conf.Width >= 1 &&
		conf.Height >= 1 &&
		conf.BatchSize >= 1 &&
		conf.Features == Features &&
		conf.ActionSpace == conf.Width*conf.Height
}

// CheckInput returns an error unless x has shape (batch, Features, Height, Width).
func (conf Config) CheckInput(x tensor.Tensor) error {
	shape := x.Shape()
	if shape.Dims() != 4 {
		return errors.Errorf("expected a rank 4 input, got shape %v", shape)
	}
	if shape[1] != conf.Features || shape[2] != conf.Height || shape[3] != conf.Width {
		return errors.Errorf("expected input of shape (_, %d, %d, %d), got %v", conf.Features, conf.Height, conf.Width, shape)
	}
	return nil
}

// CheckPolicy returns an error unless policy covers the whole action space.
func (conf Config) CheckPolicy(policy []float32) error {
	if len(policy) != conf.ActionSpace {
		return errors.Errorf("expected a policy of %d entries, got %d", conf.ActionSpace, len(policy))
	}
	return nil
}
