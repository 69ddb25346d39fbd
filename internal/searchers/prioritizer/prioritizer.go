// Package prioritizer orders the candidate moves of a board before a search expands them.
//
// The priority is a cheap heuristic (closeness to the center of the board): it only affects the
// order in which alpha-beta explores the moves, never the scores. Good moves found earlier lead to
// more pruning.
package prioritizer

import (
	"slices"

	"github.com/chewxy/math32"
	"github.com/janpfeifer/gomokuGo/internal/generics"
	. "github.com/janpfeifer/gomokuGo/internal/state"
)

// Prioritizer orders empty cells by descending priority.
//
// It caches the ranking of the cells for the last board size seen, so it is not safe for
// concurrent use.
type Prioritizer struct {
	scale  float32
	radius int

	rankedSize  int
	rankedCells []Move
}

// New returns a Prioritizer with the given priority scale (difficulty dependent, 1 is neutral).
func New(scale float32) *Prioritizer {
	if scale <= 0 {
		scale = 1
	}
	return &Prioritizer{scale: scale}
}

// WithRadius restricts the candidates to empty cells within the given Chebyshev distance of any
// stone on the board. A radius <= 0 (the default) disables the restriction.
//
// On an empty board all cells remain candidates.
func (p *Prioritizer) WithRadius(radius int) *Prioritizer {
	p.radius = max(radius, 0)
	return p
}

// Priority of a cell: scale / (1 + euclidean distance to the center of the board).
func (p *Prioritizer) Priority(board *Board, move Move) float32 {
	center := float32(board.Size()-1) / 2
	dist := math32.Hypot(float32(move.Row)-center, float32(move.Col)-center)
	return p.scale / (1 + dist)
}

// Order returns the candidate moves sorted by descending priority. Ties keep the
// row-major order of Board.EmptyCells, so the order is deterministic.
//
// If the radius filter leaves no candidates, all empty cells are returned.
func (p *Prioritizer) Order(board *Board) []Move {
	ranked := p.ranked(board)
	moves := make([]Move, 0, board.NumEmpty())
	for _, move := range ranked {
		if board.IsValidMove(move.Row, move.Col) {
			moves = append(moves, move)
		}
	}
	if p.radius > 0 && !board.IsEmpty() {
		if near := FilterNear(board, slices.Clone(moves), p.radius); len(near) > 0 {
			moves = near
		}
	}
	return moves
}

// ranked returns all the cells of the board sorted by priority. Since the priority depends only
// on the position, it is computed once per board size.
func (p *Prioritizer) ranked(board *Board) []Move {
	size := board.Size()
	if p.rankedSize == size {
		return p.rankedCells
	}
	cells := make([]Move, 0, size*size)
	for row := range size {
		for col := range size {
			cells = append(cells, Move{Row: row, Col: col})
		}
	}
	priorities := make([]float32, len(cells))
	for ii, move := range cells {
		priorities[ii] = p.Priority(board, move)
	}
	p.rankedCells = make([]Move, len(cells))
	for ii, idx := range generics.SliceOrdering(priorities, true) {
		p.rankedCells[ii] = cells[idx]
	}
	p.rankedSize = size
	return p.rankedCells
}

// FilterNear returns the moves that have a stone within the given Chebyshev distance.
// It reuses the space of the given slice.
func FilterNear(board *Board, moves []Move, radius int) []Move {
	filtered := moves[:0]
	for _, move := range moves {
		if hasStoneNear(board, move, radius) {
			filtered = append(filtered, move)
		}
	}
	return filtered
}

func hasStoneNear(board *Board, move Move, radius int) bool {
	for row := move.Row - radius; row <= move.Row+radius; row++ {
		for col := move.Col - radius; col <= move.Col+radius; col++ {
			if board.At(row, col) != PlayerNone {
				return true
			}
		}
	}
	return false
}
