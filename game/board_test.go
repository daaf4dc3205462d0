package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoardCoords(t *testing.T) {
	b := NewBoard(6)
	for i := range b.Cells {
		row, col := b.Coord(i)
		assert.True(t, b.InBounds(row, col))
		assert.Equal(t, i, b.Index(row, col))
	}
	assert.False(t, b.InBounds(-1, 0))
	assert.False(t, b.InBounds(0, 6))
	assert.False(t, b.InBounds(6, 6))
}

func TestBoardClone(t *testing.T) {
	b := NewBoard(3)
	b.Cells[2] = PlayerOne
	c := b.Clone()
	c.Cells[2] = PlayerTwo
	assert.Equal(t, PlayerOne, b.At(0, 2))
	assert.Equal(t, 1, b.Count(PlayerOne))
	assert.Equal(t, 8, b.Count(Empty))
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "X", PlayerOne.String())
	assert.Equal(t, "O", PlayerTwo.String())
	assert.Equal(t, ".", Empty.String())
	assert.Equal(t, "Player(3)", Player(3).String())
	assert.Equal(t, PlayerTwo, Opponent(PlayerOne))
	assert.Equal(t, Empty, Opponent(Empty))

	assert.Equal(t, "drawn", Drawn.String())
	assert.Equal(t, "UNKNOWN STATUS", Status(9).String())
}
