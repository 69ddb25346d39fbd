// Package mcts is a Monte Carlo Tree Search implementation of searchers.Searcher, using UCT
// (Upper Confidence bounds applied to Trees) for selection and uniformly random playouts to
// evaluate new nodes.
//
// References:
//
//   - https://en.wikipedia.org/wiki/Monte_Carlo_tree_search
//   - Kocsis and Szepesvári, "Bandit based Monte-Carlo Planning" (2006), where UCT was introduced.
package mcts

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/chewxy/math32"
	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/gomokuGo/internal/ai"
	"github.com/janpfeifer/gomokuGo/internal/rules"
	"github.com/janpfeifer/gomokuGo/internal/searchers"
	"github.com/janpfeifer/gomokuGo/internal/searchers/alphabeta"
	"github.com/janpfeifer/gomokuGo/internal/searchers/prioritizer"
	. "github.com/janpfeifer/gomokuGo/internal/state"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

const (
	// DefaultExploration is the UCT exploration constant C, sqrt(2).
	DefaultExploration = float32(math.Sqrt2)

	// DefaultMaxSimulations is the default simulation budget.
	DefaultMaxSimulations = 1000

	// DefaultScoreScale is the scale used to squash the evaluation of the final board of a playout
	// that ended without five-in-a-row.
	DefaultScoreScale = float32(1000)
)

// Searcher implements searchers.Searcher with Monte Carlo Tree Search.
//
// The tree is rebuilt from scratch at every Search. Given the same seed, board and budget in
// number of simulations the result is deterministic.
type Searcher struct {
	// maxTime defines the maximum time to spend thinking.
	// Either maxTime or maxSimulations must be defined.
	maxTime time.Duration

	// maxSimulations, minSimulations limit the number of simulations (select, expand, playout and
	// backpropagate) per search. minSimulations takes precedence over maxTime.
	maxSimulations, minSimulations int

	// c is the UCT exploration constant.
	c float32

	// radius, if > 0, restricts the moves expanded in the tree to cells near existing stones.
	// Playouts always choose among all empty cells.
	radius int

	// scanWinIn1 enables checking for immediate wins, and then for immediate threats to block,
	// before searching.
	scanWinIn1 bool

	// tacticalDepth, if > 0, runs an alpha-beta search to this depth before the tree search. If it
	// finds a forced win, it is played without simulations.
	tacticalDepth int

	seed       int64
	rng        *rand.Rand
	baseScorer ai.ValueScorer
	scorer     ai.ValueScorer
	scoreScale float32
	stats      Stats
}

// Assert that Searcher implements searchers.Searcher.
var _ searchers.Searcher = (*Searcher)(nil)

// Stats of the last search, for benchmarking and debugging.
type Stats struct {
	// Simulations completed, which is also the number of visits of the root.
	Simulations int

	// Nodes created in the tree, excluding the root.
	Nodes int

	// PlayoutWins is the number of random playouts that ended with a five-in-a-row.
	PlayoutWins int

	// MaxDepth of the tree built.
	MaxDepth int

	// WinIn1 is set if the move was decided by the immediate win/block check, without search.
	WinIn1 bool

	// Tactical is set if the move was a forced win found by the alpha-beta search, see
	// Searcher.WithTacticalDepth.
	Tactical bool

	// TacticalNodes visited by the alpha-beta search.
	TacticalNodes int
}

// New creates a Monte Carlo Tree Search searcher. The scorer is a single-sided ValueScorer: playouts
// that end without a winner are evaluated with its differential form, squashed to [-1, 1].
//
// See the With... methods for the other configurations.
func New(scorer ai.ValueScorer) *Searcher {
	return &Searcher{
		maxSimulations: DefaultMaxSimulations,
		c:              DefaultExploration,
		scanWinIn1:     true,
		baseScorer:     scorer,
		scorer:         ai.Differential(scorer),
		scoreScale:     DefaultScoreScale,
	}
}

// WithMaxSimulations sets the max number of simulations per search. 0 means limited by time only.
func (s *Searcher) WithMaxSimulations(maxSimulations int) *Searcher {
	s.maxSimulations = max(maxSimulations, 0)
	return s
}

// WithMinSimulations sets the minimum number of simulations per search, even if the time is over.
func (s *Searcher) WithMinSimulations(minSimulations int) *Searcher {
	s.minSimulations = max(minSimulations, 0)
	return s
}

// WithMaxTime sets the max duration of a search. 0 means limited by the number of simulations only.
func (s *Searcher) WithMaxTime(maxTime time.Duration) *Searcher {
	s.maxTime = max(maxTime, 0)
	return s
}

// WithExploration sets the UCT exploration constant C. Default is sqrt(2).
func (s *Searcher) WithExploration(c float32) *Searcher {
	s.c = c
	return s
}

// WithSeed sets the seed of the random number generator, reset at the start of every search.
func (s *Searcher) WithSeed(seed int64) *Searcher {
	s.seed = seed
	return s
}

// WithRadius restricts the moves considered in the tree to empty cells within this Chebyshev
// distance of a stone. 0 (the default) considers all empty cells.
func (s *Searcher) WithRadius(radius int) *Searcher {
	s.radius = max(radius, 0)
	return s
}

// WithScanWinIn1 enables (the default) or disables playing immediate wins and blocking
// immediate losses without searching.
func (s *Searcher) WithScanWinIn1(scan bool) *Searcher {
	s.scanWinIn1 = scan
	return s
}

// WithTacticalDepth enables an alpha-beta search to the given depth (in plies) before the tree
// search, sharing the searcher's max time. If it finds a forced win the move is played right away,
// otherwise the tree search runs as usual. 0 (the default) disables it.
func (s *Searcher) WithTacticalDepth(depth int) *Searcher {
	s.tacticalDepth = max(depth, 0)
	return s
}

// WithScoreScale sets the scale used to squash the evaluation of playouts that end without a winner.
func (s *Searcher) WithScoreScale(scale float32) *Searcher {
	s.scoreScale = scale
	return s
}

// Stats returns the statistics of the last search.
func (s *Searcher) Stats() Stats {
	return s.stats
}

// String implements searchers.Searcher.
func (s *Searcher) String() string {
	return fmt.Sprintf("mcts(max_simulations=%d, min_simulations=%d, max_time=%s, c=%g, radius=%d, tactical_depth=%d, seed=%d)",
		s.maxSimulations, s.minSimulations, s.maxTime, s.c, s.radius, s.tacticalDepth, s.seed)
}

// node of the search tree.
//
// value accumulates the rewards from the perspective of the player who moved into the node, that
// is, player.Opponent(). This way a parent simply picks the child with the highest UCT.
type node struct {
	board  *Board
	player PlayerNum // Player to move.
	parent *node
	move   Move // Move that led to this node from parent.
	depth  int

	children []*node
	untried  []Move

	visits int
	value  float32

	// winner is set if move completed a five-in-a-row: no further expansion.
	winner PlayerNum
}

func (s *Searcher) newNode(board *Board, player PlayerNum, parent *node, move Move) *node {
	n := &node{
		board:  board,
		player: player,
		parent: parent,
		move:   move,
	}
	if parent != nil {
		n.depth = parent.depth + 1
		if rules.IsWin(board, move) {
			n.winner = parent.player
			return n
		}
	}
	n.untried = board.EmptyCells()
	if s.radius > 0 && !board.IsEmpty() && len(n.untried) > 0 {
		if near := prioritizer.FilterNear(board, append([]Move(nil), n.untried...), s.radius); len(near) > 0 {
			n.untried = near
		}
	}
	return n
}

// terminal returns whether the node can't be expanded: game won or board full.
func (n *node) terminal() bool {
	return n.winner != PlayerNone || n.board.IsFull()
}

// uct returns the Upper Confidence Bound of the child, from the perspective of its parent.
// Unvisited children have +Inf, so they are always tried first.
func (n *node) uct(c float32) float32 {
	if n.visits == 0 {
		return math32.Inf(1)
	}
	exploitation := n.value / float32(n.visits)
	exploration := c * math32.Sqrt(math32.Log(float32(n.parent.visits))/float32(n.visits))
	return exploitation + exploration
}

// selectChild returns the child with the highest UCT. Ties go to the first created.
func (n *node) selectChild(c float32) *node {
	var best *node
	bestUCT := math32.Inf(-1)
	for _, child := range n.children {
		if u := child.uct(c); best == nil || u > bestUCT {
			best, bestUCT = child, u
		}
	}
	return best
}

// mostVisited returns the child with the most visits. Ties go to the first created.
func (n *node) mostVisited() *node {
	var best *node
	for _, child := range n.children {
		if best == nil || child.visits > best.visits {
			best = child
		}
	}
	return best
}

// Search implements searchers.Searcher.
func (s *Searcher) Search(board *Board, player PlayerNum) (move Move, score float32, err error) {
	if !player.Valid() {
		err = errors.Wrapf(ErrInvalidPlayer, "mcts search for player %s", player)
		return
	}
	if board.IsFull() {
		err = errors.Wrapf(ErrNoValidMoves, "mcts search on a full %dx%d board", board.Size(), board.Size())
		return
	}
	if s.maxSimulations == 0 && s.maxTime == 0 {
		err = errors.New("mcts search requires either max simulations or a max time")
		return
	}
	s.stats = Stats{}
	startTime := time.Now()
	if s.tacticalDepth > 0 {
		var found bool
		move, score, found, err = s.tacticalSearch(board, player)
		if err != nil || found {
			return
		}
	}
	if s.scanWinIn1 {
		var found bool
		move, score, found = s.winIn1(board, player)
		if found {
			s.stats.WinIn1 = true
			klog.V(1).Infof("mcts: player %s plays %s without search, score=%g", player, move, score)
			return
		}
	}

	s.rng = rand.New(rand.NewSource(s.seed))
	root := s.newNode(board.Clone(), player, nil, Move{})
	var elapsed time.Duration
	for {
		s.simulate(root)
		s.stats.Simulations++
		if s.maxSimulations > 0 && s.stats.Simulations >= s.maxSimulations {
			break
		}
		if s.stats.Simulations < s.minSimulations {
			continue
		}
		if s.maxTime > 0 && time.Since(startTime) > s.maxTime {
			break
		}
	}
	elapsed = time.Since(startTime)
	if root.visits != s.stats.Simulations {
		exceptions.Panicf("mcts: root has %d visits after %d simulations", root.visits, s.stats.Simulations)
	}

	best := root.mostVisited()
	if best == nil {
		exceptions.Panicf("mcts: no children expanded after %d simulations on a board with %d empty cells",
			s.stats.Simulations, board.NumEmpty())
	}
	move = best.move
	score = best.value / float32(best.visits)
	if klog.V(1).Enabled() {
		klog.Infof("mcts: player %s plays %s, score=%.3f, visits=%d/%d, elapsed=%s",
			player, move, score, best.visits, root.visits, elapsed)
		klog.Infof("  stats: %+v, %.1f simulations/s", s.stats, float64(s.stats.Simulations)/elapsed.Seconds())
	}
	return
}

// tacticalSearch runs alpha-beta to the tactical depth and reports whether it found a forced win.
// It uses the same time budget as the tree search, which then runs at least minSimulations.
func (s *Searcher) tacticalSearch(board *Board, player PlayerNum) (move Move, score float32, found bool, err error) {
	ab := alphabeta.New(s.baseScorer).WithMaxDepth(s.tacticalDepth).WithMaxTime(s.maxTime)
	var abScore float32
	move, abScore, err = ab.Search(board, player)
	s.stats.TacticalNodes = ab.Stats().Nodes
	if err != nil || abScore < ai.WinScore {
		return
	}
	s.stats.Tactical = true
	klog.V(1).Infof("mcts: player %s plays forced win %s found at depth %d", player, move, s.tacticalDepth)
	return move, 1, true, nil
}

// winIn1 returns a move that wins immediately, or otherwise one that blocks an immediate win of
// the opponent.
func (s *Searcher) winIn1(board *Board, player PlayerNum) (move Move, score float32, found bool) {
	if wins := rules.WinningMoves(board, player); len(wins) > 0 {
		return wins[0], 1, true
	}
	if threats := rules.WinningMoves(board, player.Opponent()); len(threats) > 0 {
		if len(threats) > 1 {
			// Can't block them all: it's lost anyway.
			score = -1
		}
		return threats[0], score, true
	}
	return
}

// simulate runs one iteration of MCTS: selection, expansion, playout and backpropagation.
func (s *Searcher) simulate(root *node) {
	n := root
	for !n.terminal() && len(n.untried) == 0 {
		n = n.selectChild(s.c)
	}
	if !n.terminal() {
		n = s.expand(n)
	}
	n.backpropagate(s.playout(n))
}

// expand creates a child of n for a random untried move.
func (s *Searcher) expand(n *node) *node {
	idx := s.rng.Intn(len(n.untried))
	move := n.untried[idx]
	last := len(n.untried) - 1
	n.untried[idx] = n.untried[last]
	n.untried = n.untried[:last]

	board := n.board.Clone()
	if err := board.Place(move.Row, move.Col, n.player); err != nil {
		exceptions.Panicf("mcts: failed to expand untried move %s: %+v", move, err)
	}
	child := s.newNode(board, n.player.Opponent(), n, move)
	n.children = append(n.children, child)
	s.stats.Nodes++
	s.stats.MaxDepth = max(s.stats.MaxDepth, child.depth)
	return child
}

// playout plays uniformly random moves from n until someone wins or the board is full, and returns
// the reward in [-1, 1] for the player who moved into n.
func (s *Searcher) playout(n *node) float32 {
	mover := n.player.Opponent()
	if n.winner != PlayerNone {
		return 1
	}
	board := n.board.Clone()
	moves := board.EmptyCells()
	s.rng.Shuffle(len(moves), func(i, j int) { moves[i], moves[j] = moves[j], moves[i] })
	player := n.player
	for _, move := range moves {
		if err := board.Place(move.Row, move.Col, player); err != nil {
			exceptions.Panicf("mcts: playout failed to place stone at %s: %+v", move, err)
		}
		if rules.IsWin(board, move) {
			s.stats.PlayoutWins++
			if player == mover {
				return 1
			}
			return -1
		}
		player = player.Opponent()
	}
	return ai.SquashScore(s.scorer.Score(board, mover), s.scoreScale)
}

// backpropagate the reward up to the root, flipping its sign at each level.
func (n *node) backpropagate(reward float32) {
	for ; n != nil; n = n.parent {
		n.visits++
		n.value += reward
		reward = -reward
	}
}
