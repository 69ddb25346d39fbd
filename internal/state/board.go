// Package state holds the Gomoku board representation used by the AI: a fixed-size square
// grid of cells, each either empty or holding a stone of one of the two players.
//
// There are no game rules here beyond bounds checking: see package rules for win detection.
package state

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// PlayerNum identifies the owner of a stone. The zero value, PlayerNone, also represents an empty cell.
type PlayerNum uint8

const (
	PlayerNone PlayerNum = iota
	PlayerA
	PlayerB
)

//go:generate go tool enumer -type=PlayerNum -trimprefix=Player -values -text -json board.go

const (
	// DefaultBoardSize is the standard Gomoku board (15x15).
	DefaultBoardSize = 15

	// MinBoardSize is the smallest board where a five-in-a-row is possible.
	MinBoardSize = 5
)

var (
	// ErrInvalidMove is returned when placing a stone out of bounds or on an occupied cell.
	ErrInvalidMove = errors.New("invalid move")

	// ErrNoValidMoves is returned when a move is requested for a full board.
	ErrNoValidMoves = errors.New("no valid moves")

	// ErrInvalidPlayer is returned when a player other than PlayerA or PlayerB is given.
	ErrInvalidPlayer = errors.New("invalid player")
)

// Valid returns whether the player is PlayerA or PlayerB.
func (p PlayerNum) Valid() bool {
	return p == PlayerA || p == PlayerB
}

// Opponent returns the other player. Opponent of PlayerNone is PlayerNone.
func (p PlayerNum) Opponent() PlayerNum {
	switch p {
	case PlayerA:
		return PlayerB
	case PlayerB:
		return PlayerA
	}
	return PlayerNone
}

// Symbol returns the one character representation used in text boards: '.', 'X' or 'O'.
func (p PlayerNum) Symbol() byte {
	switch p {
	case PlayerA:
		return 'X'
	case PlayerB:
		return 'O'
	}
	return '.'
}

// Move is a (row, col) coordinate on the board.
type Move struct {
	Row, Col int
}

// String returns a text representation of Move.
func (m Move) String() string {
	return fmt.Sprintf("(%d, %d)", m.Row, m.Col)
}

// Board is a square grid of cells. The zero value is not usable, create it with NewBoard.
//
// Searchers mutate a board transiently (Place followed by Remove, or Apply and the returned undo),
// so a Board should not be shared across goroutines without cloning.
type Board struct {
	size  int
	cells []PlayerNum
	empty int
}

// NewBoard creates an empty board of size x size cells.
func NewBoard(size int) (*Board, error) {
	if size < MinBoardSize {
		return nil, errors.Errorf("board size %d too small, minimum is %d", size, MinBoardSize)
	}
	return &Board{
		size:  size,
		cells: make([]PlayerNum, size*size),
		empty: size * size,
	}, nil
}

// Size returns the number of rows (and columns) of the board.
func (b *Board) Size() int {
	return b.size
}

func (b *Board) index(row, col int) int {
	return row*b.size + col
}

// InBounds returns whether (row, col) is inside the board.
func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && col >= 0 && row < b.size && col < b.size
}

// At returns the owner of the cell at (row, col), PlayerNone if empty or out of bounds.
func (b *Board) At(row, col int) PlayerNum {
	if !b.InBounds(row, col) {
		return PlayerNone
	}
	return b.cells[b.index(row, col)]
}

// IsValidMove returns whether (row, col) is inside the board and empty.
func (b *Board) IsValidMove(row, col int) bool {
	return b.InBounds(row, col) && b.cells[b.index(row, col)] == PlayerNone
}

// Place a stone of the given player at (row, col).
//
// It returns an error wrapping ErrInvalidMove if the cell is out of bounds or occupied,
// and ErrInvalidPlayer if player is not PlayerA or PlayerB.
func (b *Board) Place(row, col int, player PlayerNum) error {
	if !player.Valid() {
		return errors.Wrapf(ErrInvalidPlayer, "placing %s at (%d, %d)", player, row, col)
	}
	if !b.InBounds(row, col) {
		return errors.Wrapf(ErrInvalidMove, "(%d, %d) is out of bounds for a %dx%d board", row, col, b.size, b.size)
	}
	idx := b.index(row, col)
	if b.cells[idx] != PlayerNone {
		return errors.Wrapf(ErrInvalidMove, "(%d, %d) is already taken by player %s", row, col, b.cells[idx])
	}
	b.cells[idx] = player
	b.empty--
	return nil
}

// Remove the stone at (row, col), leaving the cell empty. It is a no-op if the cell is already
// empty or out of bounds.
func (b *Board) Remove(row, col int) {
	if !b.InBounds(row, col) {
		return
	}
	idx := b.index(row, col)
	if b.cells[idx] != PlayerNone {
		b.cells[idx] = PlayerNone
		b.empty++
	}
}

// Apply places a stone for player at move and returns the function that undoes it.
//
// Typical use during search:
//
//	undo, err := board.Apply(move, player)
//	if err != nil {
//		return err
//	}
//	defer undo()
func (b *Board) Apply(move Move, player PlayerNum) (undo func(), err error) {
	if err = b.Place(move.Row, move.Col, player); err != nil {
		return nil, err
	}
	return func() { b.Remove(move.Row, move.Col) }, nil
}

// IsFull returns whether there are no empty cells left.
func (b *Board) IsFull() bool {
	return b.empty == 0
}

// IsEmpty returns whether there are no stones on the board.
func (b *Board) IsEmpty() bool {
	return b.empty == len(b.cells)
}

// NumEmpty returns the number of empty cells.
func (b *Board) NumEmpty() int {
	return b.empty
}

// EmptyCells returns the empty cells in row-major order.
func (b *Board) EmptyCells() []Move {
	moves := make([]Move, 0, b.empty)
	for idx, cell := range b.cells {
		if cell == PlayerNone {
			moves = append(moves, Move{Row: idx / b.size, Col: idx % b.size})
		}
	}
	return moves
}

// Clone makes a deep copy of the board.
func (b *Board) Clone() *Board {
	newB := &Board{}
	*newB = *b
	newB.cells = make([]PlayerNum, len(b.cells))
	copy(newB.cells, b.cells)
	return newB
}

// Equal returns whether both boards have the same size and contents.
func (b *Board) Equal(b2 *Board) bool {
	if b.size != b2.size {
		return false
	}
	for idx, cell := range b.cells {
		if b2.cells[idx] != cell {
			return false
		}
	}
	return true
}

// Key returns the canonical encoding of the board contents and the player to move: one digit
// per cell in row-major order, followed by '|' and the player digit.
//
// The board size is implied by the length, so boards of different sizes never share a key.
func (b *Board) Key(player PlayerNum) string {
	var sb strings.Builder
	sb.Grow(len(b.cells) + 2)
	for _, cell := range b.cells {
		sb.WriteByte('0' + byte(cell))
	}
	sb.WriteByte('|')
	sb.WriteByte('0' + byte(player))
	return sb.String()
}

// String renders the board as text, one row per line, using PlayerNum.Symbol for the cells.
func (b *Board) String() string {
	var sb strings.Builder
	for row := range b.size {
		for col := range b.size {
			if col > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteByte(b.cells[b.index(row, col)].Symbol())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ParseBoard reads a board in the format written by Board.String: one line per row, cells
// given by '.' (or '-', '_') for empty, 'X' (or 'x', '1') for PlayerA and 'O' (or 'o', '2')
// for PlayerB. Spaces are ignored, as well as blank lines.
func ParseBoard(text string) (*Board, error) {
	var rows [][]PlayerNum
	for lineNum, line := range strings.Split(text, "\n") {
		line = strings.ReplaceAll(strings.TrimSpace(line), " ", "")
		if line == "" {
			continue
		}
		row := make([]PlayerNum, 0, len(line))
		for _, c := range line {
			switch c {
			case '.', '-', '_':
				row = append(row, PlayerNone)
			case 'X', 'x', '1':
				row = append(row, PlayerA)
			case 'O', 'o', '2':
				row = append(row, PlayerB)
			default:
				return nil, errors.Errorf("invalid cell %q in line %d of board", c, lineNum+1)
			}
		}
		rows = append(rows, row)
	}
	b, err := NewBoard(len(rows))
	if err != nil {
		return nil, err
	}
	for row, cells := range rows {
		if len(cells) != b.size {
			return nil, errors.Errorf("board row %d has %d cells, expected %d", row, len(cells), b.size)
		}
		for col, cell := range cells {
			if cell == PlayerNone {
				continue
			}
			if err := b.Place(row, col, cell); err != nil {
				return nil, err
			}
		}
	}
	return b, nil
}
