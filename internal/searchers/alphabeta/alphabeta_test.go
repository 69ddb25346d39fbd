package alphabeta

import (
	"testing"
	"time"

	"github.com/chewxy/math32"
	"github.com/janpfeifer/gomokuGo/internal/ai"
	"github.com/janpfeifer/gomokuGo/internal/ai/linescore"
	"github.com/janpfeifer/gomokuGo/internal/parameters"
	"github.com/janpfeifer/gomokuGo/internal/rules"
	"github.com/janpfeifer/gomokuGo/internal/searchers/prioritizer"
	. "github.com/janpfeifer/gomokuGo/internal/state"
	. "github.com/janpfeifer/gomokuGo/internal/state/statetest"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/klog/v2"
)

func init() {
	klog.InitFlags(nil)
}

var scorer = linescore.New()

func TestWinCompletion(t *testing.T) {
	board := BuildBoard(t, DefaultBoardSize, append(Row(7, 0, 4, PlayerA),
		StoneOnBoard{6, 6, PlayerB}, StoneOnBoard{8, 8, PlayerB}, StoneOnBoard{9, 9, PlayerB}))
	PrintBoard(board)
	for _, depth := range []int{1, 2, 3} {
		searcher := New(scorer).WithMaxDepth(depth)
		move, score, err := searcher.Search(board, PlayerA)
		require.NoError(t, err)
		assert.Equalf(t, Move{7, 4}, move, "depth=%d", depth)
		assert.GreaterOrEqual(t, score, ai.WinScore)
	}
}

func TestBlocking(t *testing.T) {
	board := BuildBoard(t, DefaultBoardSize, append(Row(7, 0, 4, PlayerB),
		StoneOnBoard{6, 6, PlayerA}, StoneOnBoard{8, 8, PlayerA}, StoneOnBoard{3, 10, PlayerA}))
	PrintBoard(board)
	searcher := New(scorer).WithMaxDepth(2)
	move, score, err := searcher.Search(board, PlayerA)
	require.NoError(t, err)
	assert.Equal(t, Move{7, 4}, move)
	assert.Less(t, math32.Abs(score), ai.WinScore)
	assert.Greater(t, searcher.Stats().Wins, 0)
}

func TestBoardRestoredAndDeterministic(t *testing.T) {
	board := BuildBoard(t, DefaultBoardSize, []StoneOnBoard{
		{7, 7, PlayerA}, {7, 8, PlayerB}, {8, 8, PlayerA}, {6, 6, PlayerB}, {9, 9, PlayerA}, {8, 7, PlayerB},
	})
	before := board.Clone()
	searcher := New(scorer).WithMaxDepth(2)
	move1, score1, err := searcher.Search(board, PlayerB)
	require.NoError(t, err)
	require.True(t, before.Equal(board), "board changed by search:\n%s", board)
	require.True(t, board.IsValidMove(move1.Row, move1.Col))

	move2, score2, err := New(scorer).WithMaxDepth(2).Search(board, PlayerB)
	require.NoError(t, err)
	assert.Equal(t, move1, move2)
	assert.Equal(t, score1, score2)
	assert.True(t, before.Equal(board))
}

// bruteForce is a plain minimax, without pruning, with the same conventions as Searcher.
func bruteForce(b *Board, p *prioritizer.Prioritizer, leaf ai.ValueScorer, player, mover PlayerNum, depthLeft int) float32 {
	if depthLeft <= 0 || b.IsFull() {
		return leaf.Score(b, player)
	}
	best := math32.Inf(1)
	if mover == player {
		best = math32.Inf(-1)
	}
	for _, m := range p.Order(b) {
		value := moveValue(b, p, leaf, player, mover, m, depthLeft)
		if mover == player {
			best = max(best, value)
		} else {
			best = min(best, value)
		}
	}
	return best
}

func moveValue(b *Board, p *prioritizer.Prioritizer, leaf ai.ValueScorer, player, mover PlayerNum, m Move, depthLeft int) float32 {
	if err := b.Place(m.Row, m.Col, mover); err != nil {
		panic(err)
	}
	defer b.Remove(m.Row, m.Col)
	if rules.IsWin(b, m) {
		value := ai.WinScore + float32(depthLeft-1)
		if mover != player {
			value = -value
		}
		return value
	}
	return bruteForce(b, p, leaf, player, mover.Opponent(), depthLeft-1)
}

func TestMatchesMinimax(t *testing.T) {
	board := FromText(t, `
		. . . . . .
		. X O . . .
		. . X O . .
		. . O X . .
		. . . . . .
		. . . . . .
	`)
	p := prioritizer.New(1)
	for _, singleSided := range []bool{false, true} {
		leaf := ai.Differential(scorer)
		if singleSided {
			leaf = scorer
		}
		for _, depth := range []int{1, 2, 3} {
			for _, player := range []PlayerNum{PlayerA, PlayerB} {
				wantMove, wantScore := Move{}, math32.Inf(-1)
				for _, m := range p.Order(board) {
					if value := moveValue(board, p, leaf, player, player, m, depth); value > wantScore {
						wantMove, wantScore = m, value
					}
				}
				searcher := New(scorer).WithMaxDepth(depth).WithSingleSided(singleSided)
				move, score, err := searcher.Search(board, player)
				require.NoError(t, err)
				assert.Equalf(t, wantMove, move, "depth=%d, player=%s, singleSided=%v", depth, player, singleSided)
				assert.Equalf(t, wantScore, score, "depth=%d, player=%s, singleSided=%v", depth, player, singleSided)
				if depth > 1 {
					assert.Greater(t, searcher.Stats().Prunes, 0)
				}
			}
		}
	}
}

func TestNoValidMoves(t *testing.T) {
	board, err := NewBoard(5)
	require.NoError(t, err)
	player := PlayerA
	for _, m := range board.EmptyCells() {
		require.NoError(t, board.Place(m.Row, m.Col, player))
		player = player.Opponent()
	}
	_, _, err = New(scorer).Search(board, PlayerA)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoValidMoves))

	_, _, err = New(scorer).Search(BuildBoard(t, 5, nil), PlayerNone)
	assert.True(t, errors.Is(err, ErrInvalidPlayer))
}

func TestTimeLimit(t *testing.T) {
	board := BuildBoard(t, DefaultBoardSize, []StoneOnBoard{{7, 7, PlayerA}, {7, 8, PlayerB}})
	before := board.Clone()
	searcher := New(scorer).WithMaxDepth(6).WithMaxTime(20 * time.Millisecond)
	start := time.Now()
	move, _, err := searcher.Search(board, PlayerA)
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.True(t, board.IsValidMove(move.Row, move.Col))
	assert.Greater(t, searcher.Stats().TimeCutoffs, 0)
	assert.True(t, before.Equal(board))
}

func TestIterativeDeepening(t *testing.T) {
	board := BuildBoard(t, 7, []StoneOnBoard{{3, 3, PlayerA}, {3, 4, PlayerB}, {4, 4, PlayerA}})
	want, wantScore, err := New(scorer).WithMaxDepth(3).Search(board, PlayerB)
	require.NoError(t, err)

	searcher := New(scorer).WithMaxDepth(3).WithIterativeDeepening(true)
	got, gotScore, err := searcher.Search(board, PlayerB)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, wantScore, gotScore)
	assert.Equal(t, 3, searcher.Stats().Depth)

	// Time limited only: it must reach at least depth 1 and stop.
	searcher = New(scorer).WithMaxDepth(0).WithMaxTime(50 * time.Millisecond)
	got, _, err = searcher.Search(board, PlayerB)
	require.NoError(t, err)
	assert.True(t, board.IsValidMove(got.Row, got.Col))
	assert.GreaterOrEqual(t, searcher.Stats().Depth, 1)

	// Iterative deepening stops as soon as a win is found.
	winBoard := BuildBoard(t, 7, Row(0, 0, 4, PlayerA))
	searcher = New(scorer).WithMaxDepth(4).WithIterativeDeepening(true)
	got, _, err = searcher.Search(winBoard, PlayerA)
	require.NoError(t, err)
	assert.Equal(t, Move{0, 4}, got)
	assert.Equal(t, 1, searcher.Stats().Depth)
}

func TestNewFromParams(t *testing.T) {
	params := parameters.NewFromConfigString("ab,max_depth=3,max_time=2s,iterative,priority_scale=1.5,radius=2,eval=single")
	s, err := NewFromParams(scorer, params)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Empty(t, params)
	ab := s.(*Searcher)
	assert.Equal(t, 3, ab.maxDepth)
	assert.Equal(t, 2*time.Second, ab.maxTime)
	assert.True(t, ab.iterative)
	assert.True(t, ab.singleSided)

	// Not selected.
	params = parameters.NewFromConfigString("mcts,max_depth=3")
	s, err = NewFromParams(scorer, params)
	require.NoError(t, err)
	assert.Nil(t, s)
	assert.Len(t, params, 2)

	for _, config := range []string{"ab,max_depth=0", "ab,eval=double", "ab,priority_scale=-1", "ab,max_depth=x"} {
		_, err = NewFromParams(scorer, parameters.NewFromConfigString(config))
		assert.Errorf(t, err, "config %q should fail", config)
	}
}

func BenchmarkSearchDepth2(b *testing.B) {
	board := BuildBoard(b, DefaultBoardSize, []StoneOnBoard{
		{7, 7, PlayerA}, {7, 8, PlayerB}, {8, 8, PlayerA}, {6, 6, PlayerB},
	})
	searcher := New(scorer).WithMaxDepth(2)
	for b.Loop() {
		_, _, _ = searcher.Search(board, PlayerA)
	}
}
