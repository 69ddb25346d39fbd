package rules

import (
	"testing"

	. "github.com/janpfeifer/gomokuGo/internal/state"
	. "github.com/janpfeifer/gomokuGo/internal/state/statetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsWin(t *testing.T) {
	for name, layout := range map[string][]StoneOnBoard{
		"horizontal":    Row(7, 3, 5, PlayerA),
		"vertical":      {{3, 2, PlayerB}, {4, 2, PlayerB}, {5, 2, PlayerB}, {6, 2, PlayerB}, {7, 2, PlayerB}},
		"diagonal":      {{0, 0, PlayerA}, {1, 1, PlayerA}, {2, 2, PlayerA}, {3, 3, PlayerA}, {4, 4, PlayerA}},
		"anti-diagonal": {{10, 4, PlayerB}, {9, 5, PlayerB}, {8, 6, PlayerB}, {7, 7, PlayerB}, {6, 8, PlayerB}},
	} {
		t.Run(name, func(t *testing.T) {
			b := BuildBoard(t, DefaultBoardSize, layout)
			for _, s := range layout {
				move := Move{s.Row, s.Col}
				assert.Truef(t, IsWin(b, move), "stone at %s should be a win", move)
			}
			assert.Equal(t, layout[0].Player, Winner(b))
			assert.True(t, IsFinished(b))

			// Breaking the run in the middle removes the win.
			b.Remove(layout[2].Row, layout[2].Col)
			assert.False(t, IsWin(b, Move{layout[0].Row, layout[0].Col}))
			assert.Equal(t, PlayerNone, Winner(b))
		})
	}
}

func TestRunLength(t *testing.T) {
	b := BuildBoard(t, 9, append(Row(4, 0, 4, PlayerA), StoneOnBoard{4, 4, PlayerB}))
	assert.Equal(t, 4, RunLength(b, Move{4, 1}))
	assert.Equal(t, 1, RunLength(b, Move{4, 4}))
	assert.Equal(t, 0, RunLength(b, Move{0, 0}))
	assert.False(t, IsWin(b, Move{4, 0}))
}

func TestWinningMoves(t *testing.T) {
	b := BuildBoard(t, DefaultBoardSize, append(Row(7, 1, 4, PlayerA), Row(2, 0, 3, PlayerB)...))
	before := b.Clone()
	assert.Equal(t, []Move{{7, 0}, {7, 5}}, WinningMoves(b, PlayerA))
	assert.Empty(t, WinningMoves(b, PlayerB))
	require.True(t, before.Equal(b))
}

func TestIsFinishedFullBoard(t *testing.T) {
	// Pattern without five in a row: pairs of columns alternate players, shifted every row.
	b, err := NewBoard(5)
	require.NoError(t, err)
	for row := range 5 {
		for col := range 5 {
			player := PlayerA
			if ((col+2*row)/2)%2 == 1 {
				player = PlayerB
			}
			require.NoError(t, b.Place(row, col, player))
		}
	}
	require.True(t, b.IsFull())
	assert.True(t, IsFinished(b))
}
