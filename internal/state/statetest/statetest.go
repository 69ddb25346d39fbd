// Package statetest provides helper functions to create tests using Gomoku boards.
package statetest

import (
	"fmt"
	"testing"

	. "github.com/janpfeifer/gomokuGo/internal/state"
	"github.com/janpfeifer/gomokuGo/internal/ui/cli"
	"github.com/stretchr/testify/require"
)

// StoneOnBoard represents the position and owner of a stone on the board.
type StoneOnBoard struct {
	Row, Col int
	Player   PlayerNum
}

// BuildBoard creates a size x size board with the given stones. It fails the test if any of the
// stones is not a valid placement.
func BuildBoard(t testing.TB, size int, layout []StoneOnBoard) *Board {
	t.Helper()
	b, err := NewBoard(size)
	require.NoError(t, err)
	for _, s := range layout {
		require.NoErrorf(t, b.Place(s.Row, s.Col, s.Player), "placing stone %+v", s)
	}
	return b
}

// Row returns the layout of a horizontal run of stones of player starting at (row, col).
func Row(row, col, length int, player PlayerNum) []StoneOnBoard {
	layout := make([]StoneOnBoard, length)
	for ii := range layout {
		layout[ii] = StoneOnBoard{Row: row, Col: col + ii, Player: player}
	}
	return layout
}

// FromText parses a text board (see state.ParseBoard), failing the test on error.
func FromText(t testing.TB, text string) *Board {
	t.Helper()
	b, err := ParseBoard(text)
	require.NoError(t, err)
	return b
}

// PrintBoard prints the board with the cli UI, without colors.
func PrintBoard(b *Board) {
	ui := cli.New(false, false)
	fmt.Println()
	ui.PrintBoard(b, nil)
	fmt.Println()
}
