package game

import (
	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

// Input planes, in order.
const (
	OwnPlane = iota
	OpponentPlane
	EmptyPlane
	PlayerPlane
	LastMovePlane

	Features // number of input planes
)

// PlayRecord is one ply of a played game, used as a training example.
// Board is the position before Action was played by Mover.
type PlayRecord struct {
	Board   Board
	Mover   Player
	Policy  []float32
	Action  int
	Outcome float32
}

// encodeInto writes the planes for board from mover's point of view into dst,
// which must be zeroed and of length Features*Size*Size.
func encodeInto(dst []float32, board Board, mover Player, lastMove int) error {
	n := len(board.Cells)
	if lastMove != NoMove && (lastMove < 0 || lastMove >= n) {
		return errors.Wrapf(ErrInvalidLastMove, "index %d on a board of %d cells", lastMove, n)
	}
	own := dst[OwnPlane*n : (OwnPlane+1)*n]
	opp := dst[OpponentPlane*n : (OpponentPlane+1)*n]
	empty := dst[EmptyPlane*n : (EmptyPlane+1)*n]
	player := dst[PlayerPlane*n : (PlayerPlane+1)*n]
	last := dst[LastMovePlane*n : (LastMovePlane+1)*n]

	for i, c := range board.Cells {
		switch c {
		case mover:
			own[i] = 1
		case Opponent(mover):
			opp[i] = 1
		case Empty:
			empty[i] = 1
		}
		// the raw id, not 0/1, so that the evaluator can tell the sides apart
		player[i] = float32(mover)
	}
	if lastMove != NoMove {
		last[lastMove] = 1
	}
	return nil
}

// InputEncoder encodes the live game from the side to move, marking its last move.
// The result is the backing of a (1, Features, Size, Size) tensor.
func InputEncoder(g State) ([]float32, error) {
	b := g.Board()
	retVal := make([]float32, Features*len(b.Cells))
	if err := encodeInto(retVal, b, g.Turn(), g.LastMove()); err != nil {
		return nil, err
	}
	return retVal, nil
}

// Encode encodes board from mover's perspective as a (1, Features, Size, Size) tensor.
// lastMove is a flattened index or NoMove. board is not modified.
func Encode(board Board, mover Player, lastMove int) (*tensor.Dense, error) {
	backing := make([]float32, Features*len(board.Cells))
	if err := encodeInto(backing, board, mover, lastMove); err != nil {
		return nil, err
	}
	return tensor.New(tensor.WithBacking(backing), tensor.WithShape(1, Features, board.Size, board.Size)), nil
}

// EncodeBatch encodes records into aligned input, policy and outcome tensors of shapes
// (N, Features, Size, Size), (N, Size²) and (N). Each record is encoded from its Mover's
// perspective with its Action as the last-move marker.
func EncodeBatch(records []PlayRecord) (xs, pis, zs *tensor.Dense, err error) {
	if len(records) == 0 {
		return nil, nil, nil, errors.New("no records to encode")
	}
	size := records[0].Board.Size
	cells := size * size
	planes := Features * cells

	xsBacking := make([]float32, len(records)*planes)
	pisBacking := make([]float32, len(records)*cells)
	zsBacking := make([]float32, len(records))
	for i, r := range records {
		if r.Board.Size != size {
			return nil, nil, nil, errors.Errorf("record %d: board size %d, expected %d", i, r.Board.Size, size)
		}
		if len(r.Policy) != cells {
			return nil, nil, nil, errors.Errorf("record %d: policy has %d entries, expected %d", i, len(r.Policy), cells)
		}
		if err = encodeInto(xsBacking[i*planes:(i+1)*planes], r.Board, r.Mover, r.Action); err != nil {
			return nil, nil, nil, errors.WithMessagef(err, "record %d", i)
		}
		copy(pisBacking[i*cells:], r.Policy)
		zsBacking[i] = r.Outcome
	}

	xs = tensor.New(tensor.WithBacking(xsBacking), tensor.WithShape(len(records), Features, size, size))
	pis = tensor.New(tensor.WithBacking(pisBacking), tensor.WithShape(len(records), cells))
	zs = tensor.New(tensor.WithBacking(zsBacking), tensor.WithShape(len(records)))
	return xs, pis, zs, nil
}
