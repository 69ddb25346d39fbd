// Package linescore implements the hand-authored position evaluator: every row, column and
// diagonal of the board is scanned for runs of consecutive stones of a player, and each run
// is scored by its length.
//
// The score is single-player-relative: stones of the opponent only matter in that they (like
// empty cells) terminate runs. See ai.Differential to combine both players' scores.
package linescore

import (
	"sync"

	"github.com/janpfeifer/gomokuGo/internal/ai"
	. "github.com/janpfeifer/gomokuGo/internal/state"
)

// RunScores maps the length of a run to its score. Runs of length 5 or longer score
// RunScores[5].
var RunScores = [6]float32{0, 10, 100, 1_000, 10_000, 100_000}

// RunScore returns the score of a run of the given length.
func RunScore(length int) float32 {
	if length >= len(RunScores) {
		return RunScores[len(RunScores)-1]
	}
	return RunScores[length]
}

// LineScore scores a single line (row, column or diagonal) for player: the sum of RunScore
// for every maximal run of consecutive cells owned by player.
func LineScore(line []PlayerNum, player PlayerNum) float32 {
	return runsScore(len(line), func(i int) PlayerNum { return line[i] }, player)
}

// runsScore implements LineScore over a line of length cells given by an accessor, so the board
// doesn't need to be copied into a slice per line.
func runsScore(length int, cellAt func(i int) PlayerNum, player PlayerNum) (score float32) {
	run := 0
	for i := range length {
		if cellAt(i) == player {
			run++
			continue
		}
		score += RunScore(run)
		run = 0
	}
	score += RunScore(run)
	return
}

// Lines returns the 4*size-2 lines of a board: size rows, size columns, 2*size-1 diagonals
// (top-left to bottom-right) and 2*size-1 anti-diagonals (top-right to bottom-left).
//
// The returned slices are shared and must not be modified.
func Lines(size int) [][]Move {
	linesCache.mu.Lock()
	defer linesCache.mu.Unlock()
	if lines, found := linesCache.bySize[size]; found {
		return lines
	}
	lines := buildLines(size)
	linesCache.bySize[size] = lines
	return lines
}

var linesCache = struct {
	mu     sync.Mutex
	bySize map[int][][]Move
}{bySize: make(map[int][][]Move)}

func buildLines(size int) [][]Move {
	lines := make([][]Move, 0, 4*size-2)
	for row := range size {
		line := make([]Move, size)
		for col := range size {
			line[col] = Move{Row: row, Col: col}
		}
		lines = append(lines, line)
	}
	for col := range size {
		line := make([]Move, size)
		for row := range size {
			line[row] = Move{Row: row, Col: col}
		}
		lines = append(lines, line)
	}
	// Diagonals: cells with the same col-row, from -(size-1) to size-1.
	for diff := -(size - 1); diff < size; diff++ {
		var line []Move
		for row := range size {
			if col := row + diff; col >= 0 && col < size {
				line = append(line, Move{Row: row, Col: col})
			}
		}
		lines = append(lines, line)
	}
	// Anti-diagonals: cells with the same row+col, from 0 to 2*(size-1).
	for sum := 0; sum < 2*size-1; sum++ {
		var line []Move
		for row := range size {
			if col := sum - row; col >= 0 && col < size {
				line = append(line, Move{Row: row, Col: col})
			}
		}
		lines = append(lines, line)
	}
	return lines
}

// Scorer is the position evaluator: it implements ai.ValueScorer by summing LineScore over all
// Lines of the board. It holds no state and is safe for concurrent use.
type Scorer struct{}

// New returns the position evaluator.
func New() *Scorer {
	return &Scorer{}
}

// Assert Scorer is an ai.ValueScorer.
var _ ai.ValueScorer = (*Scorer)(nil)

// Score implements ai.ValueScorer.
func (s *Scorer) Score(board *Board, player PlayerNum) (score float32) {
	for _, line := range Lines(board.Size()) {
		score += runsScore(len(line), func(i int) PlayerNum { return board.At(line[i].Row, line[i].Col) }, player)
	}
	return
}

// String implements ai.ValueScorer and fmt.Stringer.
func (s *Scorer) String() string {
	return "linescore"
}
