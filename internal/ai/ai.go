// Package ai (Artificial Intelligence) defines the standard interfaces of the position scorers
// used by the searchers, and a few helpers shared by them.
package ai

import (
	"fmt"

	"github.com/chewxy/math32"
	. "github.com/janpfeifer/gomokuGo/internal/state"
)

// WinScore is the score of a position won by the player being evaluated: for the losing side it
// is -WinScore. It is well above any heuristic score the evaluator can return, so searchers can
// add small depth adjustments to it and still tell wins apart from heuristic values.
//
// It must stay below 2^24 so that WinScore + depth is exact in float32.
const WinScore = float32(10_000_000)

// ValueScorer returns a heuristic score (value) of a board for the given player.
// Larger is better for player.
type ValueScorer interface {
	Score(board *Board, player PlayerNum) float32
	String() string
}

// SquashScore converts any score to a value between -1 and +1 by using the tanh(x/scale)
// function -- a type of S curve.
func SquashScore(x, scale float32) float32 {
	return math32.Tanh(x / scale)
}

// differential is a ValueScorer that returns the base score of the player minus the base score of
// the opponent.
type differential struct {
	base ValueScorer
}

// Differential wraps a single-sided scorer into one that subtracts the opponent's score:
//
//	Differential(s).Score(b, p) == s.Score(b, p) - s.Score(b, p.Opponent())
//
// It is what searchers use by default to evaluate leaves, so that opponent threats lower the
// value of a position.
func Differential(base ValueScorer) ValueScorer {
	return differential{base: base}
}

// Score implements ValueScorer.
func (d differential) Score(board *Board, player PlayerNum) float32 {
	return d.base.Score(board, player) - d.base.Score(board, player.Opponent())
}

// String implements ValueScorer and fmt.Stringer.
func (d differential) String() string {
	return fmt.Sprintf("differential(%s)", d.base)
}
