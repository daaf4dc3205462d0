package game

import (
	"bytes"
	"io"
)

// Board is a square grid of cells flattened row major: cell i sits at
// (i / Size, i % Size).
type Board struct {
	Size  int
	Cells []Player
}

// NewBoard returns an empty board of the given size.
func NewBoard(size int) Board {
	return Board{
		Size:  size,
		Cells: make([]Player, size*size),
	}
}

// Index flattens a coordinate.
func (b Board) Index(row, col int) int { return row*b.Size + col }

// Coord is the inverse of Index.
func (b Board) Coord(idx int) (row, col int) { return idx / b.Size, idx % b.Size }

// InBounds returns true if (row, col) lies on the board.
func (b Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.Size && col >= 0 && col < b.Size
}

// At returns the value at (row, col). The caller must check bounds.
func (b Board) At(row, col int) Player { return b.Cells[b.Index(row, col)] }

// Clone returns a deep copy of the board.
func (b Board) Clone() Board {
	cells := make([]Player, len(b.Cells))
	copy(cells, b.Cells)
	return Board{Size: b.Size, Cells: cells}
}

// Count returns the number of cells holding p.
func (b Board) Count(p Player) int {
	var n int
	for _, c := range b.Cells {
		if c == p {
			n++
		}
	}
	return n
}

// Render writes the board as Size lines of Size space separated symbols,
// followed by a blank line.
func (b Board) Render(w io.Writer) error {
	var buf bytes.Buffer
	for row := 0; row < b.Size; row++ {
		for col := 0; col < b.Size; col++ {
			if col > 0 {
				buf.WriteByte(' ')
			}
			buf.WriteString(b.At(row, col).String())
		}
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
	_, err := w.Write(buf.Bytes())
	return err
}

func (b Board) String() string {
	var buf bytes.Buffer
	b.Render(&buf)
	return buf.String()
}
