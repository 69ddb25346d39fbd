// Package alphabeta implements a depth-limited, time-bounded minimax search with alpha-beta
// pruning, the searchers.Searcher used for the easy and medium difficulties.
//
// See: wikipedia.org/wiki/Alpha-beta_pruning
package alphabeta

import (
	"fmt"
	"time"

	"github.com/chewxy/math32"
	"github.com/janpfeifer/gomokuGo/internal/ai"
	"github.com/janpfeifer/gomokuGo/internal/rules"
	"github.com/janpfeifer/gomokuGo/internal/searchers"
	"github.com/janpfeifer/gomokuGo/internal/searchers/prioritizer"
	. "github.com/janpfeifer/gomokuGo/internal/state"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Searcher implements the searchers.Searcher interface.
//
// The root and every other level where the searching player moves are maximizing levels, the
// opponent's levels are minimizing. Leaves are scored from the searching player's perspective,
// the sign flip between levels is handled here and not by the scorer.
type Searcher struct {
	maxDepth    int
	maxTime     time.Duration
	iterative   bool
	singleSided bool
	scorer      ai.ValueScorer
	leafScorer  ai.ValueScorer
	prioritizer *prioritizer.Prioritizer
	stats       Stats

	// Per search state.
	player   PlayerNum
	deadline time.Time
	timedOut bool
}

// Assert that Searcher implements searchers.Searcher.
var _ searchers.Searcher = (*Searcher)(nil)

// Stats stores running stats collected during the search: for benchmarking, monitoring and debugging purposes.
type Stats struct {
	// Nodes "played" during search: each trial placement of a stone.
	Nodes int

	// Leaves evaluated by the scorer. Terminal (won) positions are not scored and don't count here.
	Leaves int

	// Prunes is the number of times the remaining siblings of a node were skipped.
	Prunes int

	// Wins is the number of terminal positions (five-in-a-row) found.
	Wins int

	// TimeCutoffs counts the nodes evaluated as leaves because the deadline passed.
	TimeCutoffs int

	// Depth of the last completed search.
	Depth int
}

// New returns an Alpha-Beta Pruning based searchers.Searcher implementation.
// There are many other optional configurations, see methods Searcher.With...
//
// The one obligatory parameter is the single-sided position scorer (see linescore.Scorer).
func New(scorer ai.ValueScorer) *Searcher {
	return &Searcher{
		scorer:      scorer,
		leafScorer:  ai.Differential(scorer),
		maxDepth:    DefaultMaxDepth,
		prioritizer: prioritizer.New(1),
	}
}

// DefaultMaxDepth for search.
const DefaultMaxDepth = 2

// WithMaxDepth sets the max depth of search: the unit here are plies (ply singular). Each player
// playing counts as one ply. See https://en.wikipedia.org/wiki/Ply_(game_theory).
//
// A value of 0 means no depth limit: the search then requires WithMaxTime, and implies
// iterative deepening until the time expires.
//
// The default is 2 (DefaultMaxDepth).
func (ab *Searcher) WithMaxDepth(maxDepth int) *Searcher {
	ab.maxDepth = max(maxDepth, 0)
	return ab
}

// WithMaxTime sets the max duration of thinking per search. Nodes expanded after the deadline are
// evaluated as leaves: exceeding it degrades the quality of the search, it is not an error.
//
// The default is 0, no time limit.
func (ab *Searcher) WithMaxTime(maxTime time.Duration) *Searcher {
	ab.maxTime = max(maxTime, 0)
	return ab
}

// WithIterativeDeepening makes the search run at depths 1, 2, ... up to the max depth, keeping the
// result of the deepest search completed before the deadline.
func (ab *Searcher) WithIterativeDeepening(iterative bool) *Searcher {
	ab.iterative = iterative
	return ab
}

// WithPrioritizer sets the move prioritizer used to order the candidates at every node.
func (ab *Searcher) WithPrioritizer(p *prioritizer.Prioritizer) *Searcher {
	ab.prioritizer = p
	return ab
}

// WithSingleSided configures leaves to be evaluated with the scorer for the searching player only,
// instead of the default differential score (player's score minus opponent's score).
func (ab *Searcher) WithSingleSided(singleSided bool) *Searcher {
	ab.singleSided = singleSided
	if singleSided {
		ab.leafScorer = ab.scorer
	} else {
		ab.leafScorer = ai.Differential(ab.scorer)
	}
	return ab
}

// Stats returns the statistics of the last search.
func (ab *Searcher) Stats() Stats {
	return ab.stats
}

// String implements searchers.Searcher.
func (ab *Searcher) String() string {
	return fmt.Sprintf("alphabeta(max_depth=%d, max_time=%s, iterative=%v, eval=%s)",
		ab.maxDepth, ab.maxTime, ab.iterative, ab.leafScorer)
}

// Search implements the searchers.Searcher interface.
func (ab *Searcher) Search(board *Board, player PlayerNum) (move Move, score float32, err error) {
	if !player.Valid() {
		err = errors.Wrapf(ErrInvalidPlayer, "alphabeta search for player %s", player)
		return
	}
	if board.IsFull() {
		err = errors.Wrapf(ErrNoValidMoves, "alphabeta search on a full %dx%d board", board.Size(), board.Size())
		return
	}
	if ab.maxDepth == 0 && ab.maxTime == 0 {
		err = errors.New("alphabeta search requires either a max depth or a max time")
		return
	}

	start := time.Now()
	ab.stats = Stats{}
	ab.player = player
	ab.deadline = time.Time{}
	if ab.maxTime > 0 {
		ab.deadline = start.Add(ab.maxTime)
	}

	if ab.iterative || ab.maxDepth == 0 {
		move, score, err = ab.iterativeDeepening(board)
	} else {
		move, score, err = ab.searchToDepth(board, ab.maxDepth)
		ab.stats.Depth = ab.maxDepth
	}
	if err != nil {
		return
	}

	if klog.V(2).Enabled() {
		elapsed := time.Since(start)
		klog.Infof("alphabeta: player %s plays %s, score=%g, depth=%d, elapsed=%s", player, move, score, ab.stats.Depth, elapsed)
		klog.Infof("  stats: %+v", ab.stats)
		klog.Infof("  nodes/s=%.1f", float64(ab.stats.Nodes)/elapsed.Seconds())
	}
	return
}

// iterativeDeepening searches at increasing depths until the max depth is reached, the deadline
// passes or a forced win is found.
func (ab *Searcher) iterativeDeepening(board *Board) (move Move, score float32, err error) {
	maxDepth := ab.maxDepth
	if maxDepth == 0 {
		maxDepth = board.NumEmpty()
	}
	for depth := 1; depth <= maxDepth; depth++ {
		depthMove, depthScore, depthErr := ab.searchToDepth(board, depth)
		if depthErr != nil {
			return move, score, depthErr
		}
		if ab.timedOut && depth > 1 {
			klog.V(2).Infof("alphabeta: deadline reached during depth %d, using depth %d result", depth, depth-1)
			break
		}
		move, score = depthMove, depthScore
		ab.stats.Depth = depth
		if ab.timedOut || math32.Abs(score) >= ai.WinScore {
			break
		}
	}
	return
}

// searchToDepth executes the root (maximizing) level of the alpha-beta pruning algorithm
// to the given depth.
//
// Ties are broken by the prioritizer order: only a strictly better score replaces the best move.
func (ab *Searcher) searchToDepth(board *Board, depth int) (bestMove Move, bestScore float32, err error) {
	ab.timedOut = false
	candidates := ab.prioritizer.Order(board)
	if len(candidates) == 0 {
		err = errors.Wrapf(ErrNoValidMoves, "alphabeta search on a full board")
		return
	}
	alpha, beta := math32.Inf(-1), math32.Inf(1)
	bestScore = math32.Inf(-1)
	bestMove = candidates[0]
	for _, move := range candidates {
		var score float32
		score, err = ab.playAndRecurse(board, move, ab.player, depth-1, alpha, beta, ab.minimize)
		if err != nil {
			return
		}
		if score > bestScore {
			bestScore, bestMove = score, move
		}
		alpha = max(alpha, bestScore)
		if alpha >= beta {
			ab.stats.Prunes++
			break
		}
	}
	return
}

// isLeaf returns whether the recursion stops at this node: no depth left, no moves left, or the
// deadline passed.
func (ab *Searcher) isLeaf(board *Board, depthLeft int) bool {
	if depthLeft <= 0 || board.IsFull() {
		return true
	}
	if !ab.deadline.IsZero() && time.Now().After(ab.deadline) {
		ab.timedOut = true
		ab.stats.TimeCutoffs++
		return true
	}
	return false
}

// evaluate a leaf, always from the searching player's perspective.
func (ab *Searcher) evaluate(board *Board) float32 {
	ab.stats.Leaves++
	return ab.leafScorer.Score(board, ab.player)
}

type levelFn func(board *Board, depthLeft int, alpha, beta float32) (float32, error)

// playAndRecurse places a stone of mover at move, scores the resulting position with next and
// restores the board.
//
// A move completing five-in-a-row ends the recursion: it scores ±(ai.WinScore + depthLeft), so
// that faster wins (and slower losses) are preferred.
func (ab *Searcher) playAndRecurse(board *Board, move Move, mover PlayerNum, depthLeft int,
	alpha, beta float32, next levelFn) (float32, error) {
	undo, err := board.Apply(move, mover)
	if err != nil {
		return 0, err
	}
	defer undo()
	ab.stats.Nodes++
	if rules.IsWin(board, move) {
		ab.stats.Wins++
		winScore := ai.WinScore + float32(depthLeft)
		if mover == ab.player {
			return winScore, nil
		}
		return -winScore, nil
	}
	return next(board, depthLeft, alpha, beta)
}

// maximize is the level where the searching player moves.
func (ab *Searcher) maximize(board *Board, depthLeft int, alpha, beta float32) (float32, error) {
	if ab.isLeaf(board, depthLeft) {
		return ab.evaluate(board), nil
	}
	best := math32.Inf(-1)
	for _, move := range ab.prioritizer.Order(board) {
		score, err := ab.playAndRecurse(board, move, ab.player, depthLeft-1, alpha, beta, ab.minimize)
		if err != nil {
			return 0, err
		}
		best = max(best, score)
		alpha = max(alpha, best)
		if alpha >= beta {
			ab.stats.Prunes++
			break
		}
	}
	return best, nil
}

// minimize is the level where the opponent moves.
func (ab *Searcher) minimize(board *Board, depthLeft int, alpha, beta float32) (float32, error) {
	if ab.isLeaf(board, depthLeft) {
		return ab.evaluate(board), nil
	}
	best := math32.Inf(1)
	opponent := ab.player.Opponent()
	for _, move := range ab.prioritizer.Order(board) {
		score, err := ab.playAndRecurse(board, move, opponent, depthLeft-1, alpha, beta, ab.maximize)
		if err != nil {
			return 0, err
		}
		best = min(best, score)
		beta = min(beta, best)
		if alpha >= beta {
			ab.stats.Prunes++
			break
		}
	}
	return best, nil
}
