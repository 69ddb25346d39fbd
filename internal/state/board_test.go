package state_test

import (
	"testing"

	"github.com/janpfeifer/gomokuGo/internal/generics"
	. "github.com/janpfeifer/gomokuGo/internal/state"
	. "github.com/janpfeifer/gomokuGo/internal/state/statetest"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBoard(t *testing.T) {
	b, err := NewBoard(DefaultBoardSize)
	require.NoError(t, err)
	assert.Equal(t, 15, b.Size())
	assert.Equal(t, 225, b.NumEmpty())
	assert.True(t, b.IsEmpty())
	assert.False(t, b.IsFull())

	_, err = NewBoard(MinBoardSize - 1)
	require.Error(t, err)
}

func TestPlaceAndRemove(t *testing.T) {
	b, err := NewBoard(5)
	require.NoError(t, err)
	require.True(t, b.IsValidMove(2, 3))
	require.NoError(t, b.Place(2, 3, PlayerA))
	assert.Equal(t, PlayerA, b.At(2, 3))
	assert.False(t, b.IsValidMove(2, 3))
	assert.Equal(t, 24, b.NumEmpty())

	// Occupied and out-of-bounds cells.
	err = b.Place(2, 3, PlayerB)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidMove))
	for _, m := range []Move{{-1, 0}, {0, -1}, {5, 0}, {0, 5}} {
		err = b.Place(m.Row, m.Col, PlayerB)
		assert.Truef(t, errors.Is(err, ErrInvalidMove), "move %s should be invalid", m)
		assert.False(t, b.IsValidMove(m.Row, m.Col))
	}
	err = b.Place(0, 0, PlayerNone)
	assert.True(t, errors.Is(err, ErrInvalidPlayer))

	b.Remove(2, 3)
	assert.Equal(t, PlayerNone, b.At(2, 3))
	assert.True(t, b.IsEmpty())

	// Removing an empty or out of bounds cell is a no-op.
	b.Remove(2, 3)
	b.Remove(10, 10)
	assert.Equal(t, 25, b.NumEmpty())
}

func TestApply(t *testing.T) {
	b := BuildBoard(t, 7, Row(3, 0, 3, PlayerA))
	before := b.Clone()
	func() {
		undo, err := b.Apply(Move{3, 3}, PlayerB)
		require.NoError(t, err)
		defer undo()
		assert.Equal(t, PlayerB, b.At(3, 3))
	}()
	assert.True(t, before.Equal(b))

	_, err := b.Apply(Move{3, 0}, PlayerB)
	require.True(t, errors.Is(err, ErrInvalidMove))
	assert.True(t, before.Equal(b))
}

func TestIsFullAndEmptyCells(t *testing.T) {
	b, err := NewBoard(5)
	require.NoError(t, err)
	player := PlayerA
	for _, m := range b.EmptyCells() {
		require.NoError(t, b.Place(m.Row, m.Col, player))
		player = player.Opponent()
	}
	assert.True(t, b.IsFull())
	assert.Empty(t, b.EmptyCells())

	b.Remove(4, 1)
	b.Remove(0, 2)
	assert.Equal(t, []Move{{0, 2}, {4, 1}}, b.EmptyCells())
	// Deterministic order.
	assert.Equal(t, b.EmptyCells(), b.EmptyCells())
}

func TestKey(t *testing.T) {
	b := BuildBoard(t, 5, []StoneOnBoard{{0, 0, PlayerA}, {4, 4, PlayerB}})
	assert.Equal(t, "1000000000000000000000002|1", b.Key(PlayerA))
	assert.NotEqual(t, b.Key(PlayerA), b.Key(PlayerB))

	// All distinct boards lead to distinct keys.
	keys := generics.MakeSet[string]()
	empty, err := NewBoard(5)
	require.NoError(t, err)
	keys.Insert(empty.Key(PlayerA))
	for _, m := range empty.EmptyCells() {
		for _, player := range []PlayerNum{PlayerA, PlayerB} {
			b := empty.Clone()
			require.NoError(t, b.Place(m.Row, m.Col, player))
			key := b.Key(PlayerA)
			require.False(t, keys.Has(key), "duplicate key %q", key)
			keys.Insert(key)
		}
	}
	assert.Len(t, keys, 1+2*25)

	// Different sizes never collide.
	b6, err := NewBoard(6)
	require.NoError(t, err)
	assert.NotEqual(t, empty.Key(PlayerA), b6.Key(PlayerA))
}

func TestParseBoard(t *testing.T) {
	b := FromText(t, `
		X . . . .
		. O . . .
		. . X . .
		. . . . .
		. . . . O
	`)
	assert.Equal(t, 5, b.Size())
	assert.Equal(t, PlayerA, b.At(0, 0))
	assert.Equal(t, PlayerB, b.At(1, 1))
	assert.Equal(t, PlayerA, b.At(2, 2))
	assert.Equal(t, PlayerB, b.At(4, 4))
	assert.Equal(t, 21, b.NumEmpty())

	// Round trip through String.
	b2, err := ParseBoard(b.String())
	require.NoError(t, err)
	assert.True(t, b.Equal(b2))

	_, err = ParseBoard("X . . . .\n. . .")
	require.Error(t, err)
	_, err = ParseBoard("X . . . Z\n")
	require.Error(t, err)
}

func TestPlayerNum(t *testing.T) {
	assert.Equal(t, PlayerB, PlayerA.Opponent())
	assert.Equal(t, PlayerA, PlayerB.Opponent())
	assert.Equal(t, PlayerNone, PlayerNone.Opponent())
	assert.False(t, PlayerNone.Valid())
	assert.False(t, PlayerNum(3).Valid())
	assert.Equal(t, "A", PlayerA.String())
	assert.Equal(t, "PlayerNum(7)", PlayerNum(7).String())

	for _, p := range PlayerNumValues() {
		parsed, err := PlayerNumString(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, parsed)
	}
	p, err := PlayerNumString("b")
	require.NoError(t, err)
	assert.Equal(t, PlayerB, p)
	_, err = PlayerNumString("C")
	assert.Error(t, err)

	text, err := PlayerA.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "A", string(text))
}
