package alphagomoku

import (
	"github.com/chewxy/math32"
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"
	"gorgonia.org/tensor"
	"gorgonia.org/vecf32"

	dual "github.com/alphagomoku/dualnet"
	"github.com/alphagomoku/game"
)

// ErrNoLegalMoves is returned by searchers asked to move in a finished or full position.
var ErrNoLegalMoves = errors.New("no legal moves")

// RandomSearcher plays uniformly among the legal cells.
type RandomSearcher struct {
	r *rand.Rand
}

func NewRandomSearcher(seed uint64) *RandomSearcher {
	return &RandomSearcher{r: rand.New(rand.NewSource(seed))}
}

// Search returns a random legal move and the uniform policy over legal moves.
func (s *RandomSearcher) Search(g game.State) (int, []float32, error) {
	if ended, _ := g.Ended(); ended {
		return game.NoMove, nil, ErrNoLegalMoves
	}
	mask := g.LegalMovesMask()
	var legal []int
	for i, ok := range mask {
		if ok {
			legal = append(legal, i)
		}
	}
	if len(legal) == 0 {
		return game.NoMove, nil, ErrNoLegalMoves
	}
	policy := make([]float32, len(mask))
	p := 1 / float32(len(legal))
	for _, i := range legal {
		policy[i] = p
	}
	return legal[s.r.Intn(len(legal))], policy, nil
}

// PolicySearcher plays from the policy head of a network.
// With a positive Temperature the move is sampled, otherwise the most probable legal move is played.
type PolicySearcher struct {
	Temperature float32

	nn   Inferer
	conf dual.Config
	src  rand.Source
}

func NewPolicySearcher(nn Inferer, conf dual.Config, temperature float32, seed uint64) (*PolicySearcher, error) {
	if !conf.IsValid() {
		return nil, errors.New("NNConf is not valid")
	}
	return &PolicySearcher{
		Temperature: temperature,
		nn:          nn,
		conf:        conf,
		src:         rand.NewSource(seed),
	}, nil
}

// Search encodes g from the side to move, infers, drops the illegal cells and picks a move.
// The returned policy is the renormalised distribution over legal cells.
func (s *PolicySearcher) Search(g game.State) (int, []float32, error) {
	if ended, _ := g.Ended(); ended {
		return game.NoMove, nil, ErrNoLegalMoves
	}
	backing, err := game.InputEncoder(g)
	if err != nil {
		return game.NoMove, nil, err
	}
	n := g.BoardSize()
	x := tensor.New(tensor.WithBacking(backing), tensor.WithShape(1, game.Features, n, n))
	if err = s.conf.CheckInput(x); err != nil {
		return game.NoMove, nil, err
	}
	raw, _, err := s.nn.Infer(x)
	if err != nil {
		if el, ok := s.nn.(ExecLogger); ok {
			return game.NoMove, nil, errors.WithMessage(err, el.ExecLog())
		}
		return game.NoMove, nil, errors.WithMessage(err, "inference failed")
	}
	if err = s.conf.CheckPolicy(raw); err != nil {
		return game.NoMove, nil, err
	}
	if !validPolicies(raw) {
		return game.NoMove, nil, errors.New("inferred policy contains NaN or Inf")
	}

	policy, legal := maskPolicy(raw, g.LegalMovesMask())
	if legal == 0 {
		return game.NoMove, nil, ErrNoLegalMoves
	}

	if s.Temperature <= 0 {
		return argmax(policy), policy, nil
	}
	weights := make([]float64, len(policy))
	for i, p := range policy {
		if p > 0 {
			weights[i] = float64(math32.Pow(p, 1/s.Temperature))
		}
	}
	move, ok := sampleuv.NewWeighted(weights, s.src).Take()
	if !ok {
		return argmax(policy), policy, nil
	}
	return move, policy, nil
}

// maskPolicy zeroes the illegal and negative entries of raw and renormalises.
// When no mass is left on the legal cells they share it uniformly.
func maskPolicy(raw []float32, mask []bool) (policy []float32, legal int) {
	policy = make([]float32, len(raw))
	for i, ok := range mask {
		if !ok {
			continue
		}
		legal++
		if raw[i] > 0 {
			policy[i] = raw[i]
		}
	}
	if legal == 0 {
		return policy, 0
	}

	sum := vecf32.Sum(policy)
	if sum > math32.SmallestNonzeroFloat32 {
		vecf32.Scale(policy, 1/sum)
		return policy, legal
	}
	p := 1 / float32(legal)
	for i, ok := range mask {
		if ok {
			policy[i] = p
		}
	}
	return policy, legal
}

func argmax(a []float32) int {
	var retVal int
	var max = math32.Inf(-1)
	for i := range a {
		if a[i] > max {
			max = a[i]
			retVal = i
		}
	}
	return retVal
}

func validPolicies(policy []float32) bool {
	for _, v := range policy {
		if math32.IsInf(v, 0) {
			return false
		}
		if math32.IsNaN(v) {
			return false
		}
	}
	return true
}
