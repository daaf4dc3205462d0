package alphagomoku

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorgonia.org/tensor"

	dual "github.com/alphagomoku/dualnet"
	"github.com/alphagomoku/game"
)

// fixedInferer returns the same policy for every input and remembers the last input.
type fixedInferer struct {
	policy []float32
	value  float32
	err    error

	last   *tensor.Dense
	calls  int
	closed int
}

func (f *fixedInferer) Infer(x *tensor.Dense) ([]float32, float32, error) {
	f.last = x
	f.calls++
	if f.err != nil {
		return nil, 0, f.err
	}
	out := make([]float32, len(f.policy))
	copy(out, f.policy)
	return out, f.value, nil
}

func (f *fixedInferer) Close() error {
	f.closed++
	return f.err
}

func mustGame(t *testing.T, size, winLen int) *game.Gomoku {
	t.Helper()
	g, err := game.New(size, winLen)
	require.NoError(t, err)
	return g
}

func step(t *testing.T, g *game.Gomoku, moves ...int) {
	t.Helper()
	for _, m := range moves {
		_, _, _, _, err := g.Step(m)
		require.NoError(t, err)
	}
}

func TestRandomSearcher(t *testing.T) {
	s := NewRandomSearcher(42)
	g := mustGame(t, 4, 3)
	for {
		ended, _ := g.Ended()
		if ended {
			break
		}
		mask := g.LegalMovesMask()
		move, policy, err := s.Search(g)
		require.NoError(t, err)
		require.True(t, mask[move], "illegal move %d", move)
		require.Len(t, policy, g.ActionSpace())

		var sum float32
		for i, p := range policy {
			if !mask[i] {
				require.Zero(t, p)
			}
			sum += p
		}
		require.InDelta(t, 1, sum, 1e-5)
		step(t, g, move)
	}

	_, _, err := s.Search(g)
	assert.True(t, errors.Is(err, ErrNoLegalMoves))
}

func TestPolicySearcherArgmax(t *testing.T) {
	g := mustGame(t, 3, 3)
	step(t, g, 4)

	// the largest value sits on an occupied cell and must be ignored
	nn := &fixedInferer{policy: []float32{0.1, 0.05, 0.2, 0, 0.5, 0.05, 0.1, 0, 0}}
	s, err := NewPolicySearcher(nn, dual.DefaultConf(3), 0, 1)
	require.NoError(t, err)

	move, policy, err := s.Search(g)
	require.NoError(t, err)
	assert.Equal(t, 2, move)
	assert.Zero(t, policy[4])
	assert.InDelta(t, 0.4, policy[2], 1e-5)

	var sum float32
	for _, p := range policy {
		sum += p
	}
	assert.InDelta(t, 1, sum, 1e-5)

	// the network saw the position from O's side with the last move marked
	require.NotNil(t, nn.last)
	want, err := game.Encode(g.Board(), game.PlayerTwo, 4)
	require.NoError(t, err)
	assert.Equal(t, want.Data(), nn.last.Data())
}

func TestPolicySearcherSampling(t *testing.T) {
	g := mustGame(t, 3, 3)
	step(t, g, 0, 1)

	nn := &fixedInferer{policy: []float32{1, 1, 0, 0, 0.5, 0, 0, 0.5, 0}}
	s, err := NewPolicySearcher(nn, dual.DefaultConf(3), 1, 7)
	require.NoError(t, err)

	seen := make(map[int]int)
	for i := 0; i < 200; i++ {
		move, _, err := s.Search(g)
		require.NoError(t, err)
		seen[move]++
	}
	for move := range seen {
		assert.Contains(t, []int{4, 7}, move)
	}
	assert.Len(t, seen, 2)
}

func TestPolicySearcherUniformFallback(t *testing.T) {
	g := mustGame(t, 3, 3)
	step(t, g, 0)

	// all of the mass sits on the occupied cell
	nn := &fixedInferer{policy: []float32{1, 0, 0, 0, 0, 0, 0, 0, 0}}
	s, err := NewPolicySearcher(nn, dual.DefaultConf(3), 0, 1)
	require.NoError(t, err)

	move, policy, err := s.Search(g)
	require.NoError(t, err)
	assert.NotEqual(t, 0, move)
	assert.Zero(t, policy[0])
	for i := 1; i < 9; i++ {
		assert.InDelta(t, 1.0/8, policy[i], 1e-6)
	}
}

func TestPolicySearcherErrors(t *testing.T) {
	conf := dual.DefaultConf(3)
	g := mustGame(t, 3, 3)

	cases := []struct {
		name string
		nn   *fixedInferer
	}{
		{"inference error", &fixedInferer{err: errors.New("boom")}},
		{"short policy", &fixedInferer{policy: make([]float32, 4)}},
		{"nan policy", &fixedInferer{policy: []float32{math32.NaN(), 0, 0, 0, 0, 0, 0, 0, 0}}},
		{"inf policy", &fixedInferer{policy: []float32{math32.Inf(1), 0, 0, 0, 0, 0, 0, 0, 0}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s, err := NewPolicySearcher(c.nn, conf, 0, 1)
			require.NoError(t, err)
			_, _, err = s.Search(g)
			assert.Error(t, err)
		})
	}

	t.Run("board size mismatch", func(t *testing.T) {
		s, err := NewPolicySearcher(&fixedInferer{policy: make([]float32, 16)}, dual.DefaultConf(4), 0, 1)
		require.NoError(t, err)
		_, _, err = s.Search(g)
		assert.Error(t, err)
	})

	t.Run("invalid config", func(t *testing.T) {
		bad := conf
		bad.Features = 2
		_, err := NewPolicySearcher(&fixedInferer{}, bad, 0, 1)
		assert.Error(t, err)
	})
}

func TestSearchersRefuseFinishedGame(t *testing.T) {
	g := mustGame(t, 4, 3)
	step(t, g, 0, 4, 1, 5, 2)
	ended, winner := g.Ended()
	require.True(t, ended)
	require.Equal(t, game.PlayerOne, winner)
	// empty cells are still marked legal once the game is won
	require.True(t, g.LegalMovesMask()[9])

	nn := &fixedInferer{policy: make([]float32, 16)}
	ps, err := NewPolicySearcher(nn, dual.DefaultConf(4), 0, 1)
	require.NoError(t, err)

	for name, s := range map[string]Searcher{"random": NewRandomSearcher(1), "policy": ps} {
		t.Run(name, func(t *testing.T) {
			move, policy, err := s.Search(g)
			assert.True(t, errors.Is(err, ErrNoLegalMoves), "%v", err)
			assert.Equal(t, game.NoMove, move)
			assert.Nil(t, policy)
		})
	}
	assert.Zero(t, nn.calls)
}

func TestFeaturesAgree(t *testing.T) {
	assert.Equal(t, game.Features, dual.Features)
}
