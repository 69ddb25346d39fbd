package cli

import (
	"strings"
	"testing"

	. "github.com/janpfeifer/gomokuGo/internal/state"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMove(t *testing.T) {
	for text, want := range map[string]Move{
		"7 4":      {7, 4},
		"  0,14 ":  {0, 14},
		"10, 3\n":  {10, 3},
		"3\t\t12 ": {3, 12},
	} {
		move, err := ParseMove(text)
		require.NoErrorf(t, err, "parsing %q", text)
		assert.Equal(t, want, move)
	}
	for _, text := range []string{"", "7", "a b", "-1 2", "1 2 3"} {
		_, err := ParseMove(text)
		assert.Errorf(t, err, "parsing %q should fail", text)
	}
}

func TestReadMove(t *testing.T) {
	board, err := NewBoard(5)
	require.NoError(t, err)
	require.NoError(t, board.Place(1, 1, PlayerA))

	// Invalid inputs are retried.
	ui := New(false, false).WithInput(strings.NewReader("x y\n1 1\n2 3\n"))
	move, err := ui.ReadMove(board, PlayerB)
	require.NoError(t, err)
	assert.Equal(t, Move{2, 3}, move)

	ui = New(false, false).WithInput(strings.NewReader("quit\n"))
	_, err = ui.ReadMove(board, PlayerB)
	assert.True(t, errors.Is(err, ErrQuit))

	ui = New(false, false).WithInput(strings.NewReader("a\nb\nc\n2 2\n"))
	_, err = ui.ReadMove(board, PlayerB)
	assert.Error(t, err)
}

func TestBoardString(t *testing.T) {
	board, err := NewBoard(5)
	require.NoError(t, err)
	require.NoError(t, board.Place(0, 0, PlayerA))
	require.NoError(t, board.Place(4, 3, PlayerB))
	ui := New(false, false)
	want := "   0 1 2 3 4\n" +
		"0  X . . . .\n" +
		"1  . . . . .\n" +
		"2  . . . . .\n" +
		"3  . . . . .\n" +
		"4  . . . O .\n"
	assert.Equal(t, want, ui.BoardString(board, &Move{4, 3}))

	// Two digits coordinates.
	board, err = NewBoard(DefaultBoardSize)
	require.NoError(t, err)
	lines := strings.Split(ui.BoardString(board, nil), "\n")
	assert.Equal(t, "     0  1  2  3  4  5  6  7  8  9 10 11 12 13 14", lines[0])
	assert.Equal(t, " 0   .  .  .  .  .  .  .  .  .  .  .  .  .  .  .", lines[1])
	assert.Equal(t, displayWidth(lines[0]), displayWidth(lines[1]))
}
