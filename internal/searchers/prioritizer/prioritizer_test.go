package prioritizer

import (
	"testing"

	. "github.com/janpfeifer/gomokuGo/internal/state"
	. "github.com/janpfeifer/gomokuGo/internal/state/statetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrder(t *testing.T) {
	board := BuildBoard(t, DefaultBoardSize, nil)
	p := New(1)
	moves := p.Order(board)
	require.Len(t, moves, 225)
	assert.Equal(t, Move{7, 7}, moves[0])
	// The 4 orthogonal neighbours of the center come next, in row-major order.
	assert.Equal(t, []Move{{6, 7}, {7, 6}, {7, 8}, {8, 7}}, moves[1:5])
	// Corners are last.
	assert.Equal(t, []Move{{0, 0}, {0, 14}, {14, 0}, {14, 14}}, moves[221:])

	// Priorities are non-increasing.
	for ii := 1; ii < len(moves); ii++ {
		assert.GreaterOrEqual(t, p.Priority(board, moves[ii-1]), p.Priority(board, moves[ii]))
	}

	// Occupied cells are not candidates.
	require.NoError(t, board.Place(7, 7, PlayerA))
	moves = p.Order(board)
	assert.Len(t, moves, 224)
	assert.Equal(t, Move{6, 7}, moves[0])
}

func TestScaleDoesNotChangeOrder(t *testing.T) {
	board := BuildBoard(t, 9, []StoneOnBoard{{4, 4, PlayerA}, {3, 5, PlayerB}})
	easy, medium, hard := New(0.5), New(1), New(1.5)
	assert.Equal(t, medium.Order(board), easy.Order(board))
	assert.Equal(t, medium.Order(board), hard.Order(board))
	assert.InDelta(t, 1.5, hard.Priority(board, Move{4, 4}), 1e-6)
	assert.InDelta(t, 0.5, easy.Priority(board, Move{4, 4}), 1e-6)
	assert.InDelta(t, 1.0/3.0, medium.Priority(board, Move{4, 6}), 1e-6)
}

func TestRadius(t *testing.T) {
	board := BuildBoard(t, DefaultBoardSize, []StoneOnBoard{{0, 0, PlayerA}})
	moves := New(1).WithRadius(1).Order(board)
	assert.Equal(t, []Move{{1, 1}, {0, 1}, {1, 0}}, moves)

	moves = New(1).WithRadius(2).Order(board)
	assert.Len(t, moves, 8)

	// Empty board: all cells are candidates.
	empty := BuildBoard(t, DefaultBoardSize, nil)
	assert.Len(t, New(1).WithRadius(1).Order(empty), 225)
}
