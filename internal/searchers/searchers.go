// Package searchers defines the interface of the move search strategies. Implementations live
// in the sub-packages: alphabeta (minimax with alpha-beta pruning) and mcts (Monte Carlo Tree
// Search).
package searchers

import (
	. "github.com/janpfeifer/gomokuGo/internal/state"
)

// Searcher is the interface that any of the search algorithms must adhere to be valid.
//
// Searchers mutate the given board transiently while exploring (placing and removing stones),
// but always return it in the state it was given. The chosen move is not applied.
//
// A Searcher is not safe for concurrent use.
type Searcher interface {
	// Search returns the move player should take on board, along with the expected score of
	// taking it from player's perspective.
	//
	// It returns an error wrapping state.ErrNoValidMoves if the board is full. Errors from the
	// board (e.g. state.ErrInvalidMove) are propagated unchanged, they indicate a bug.
	Search(board *Board, player PlayerNum) (move Move, score float32, err error)

	// String returns a short description of the searcher and its configuration.
	String() string
}
