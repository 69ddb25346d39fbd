// Package players implements the AI that plays Gomoku: it binds a difficulty to a searcher,
// and owns the position cache and the evaluator.
//
// The searchers must be registered before use, usually by importing
// _ "github.com/janpfeifer/gomokuGo/internal/players/default".
package players

import (
	"time"

	"github.com/janpfeifer/gomokuGo/internal/ai"
	"github.com/janpfeifer/gomokuGo/internal/ai/linescore"
	"github.com/janpfeifer/gomokuGo/internal/cache"
	"github.com/janpfeifer/gomokuGo/internal/searchers"
	. "github.com/janpfeifer/gomokuGo/internal/state"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// AI chooses moves for a player given a board.
//
// The board given to GetMove is only transiently mutated during the search, and it is returned
// exactly as received: the AI never applies the chosen move, the caller does.
//
// It is not safe for concurrent use: create one AI per game.
type AI struct {
	profiles  map[Difficulty]string
	cacheSize int

	profile  Profile
	scorer   ai.ValueScorer
	searcher searchers.Searcher
	cache    *cache.Cache
}

// Option configures an AI at creation.
type Option func(p *AI)

// WithCacheSize sets the max number of positions in the cache. Default is cache.DefaultMaxSize.
func WithCacheSize(size int) Option {
	return func(p *AI) {
		p.cacheSize = size
	}
}

// WithProfiles overrides the configuration of the given difficulties. The ones not given keep the
// DefaultProfiles configuration.
func WithProfiles(profiles map[Difficulty]string) Option {
	return func(p *AI) {
		for d, config := range profiles {
			p.profiles[d] = config
		}
	}
}

// New creates an AI for the given difficulty.
func New(difficulty Difficulty, options ...Option) (*AI, error) {
	p := &AI{
		profiles: make(map[Difficulty]string, len(DefaultProfiles)),
		scorer:   linescore.New(),
	}
	for d, config := range DefaultProfiles {
		p.profiles[d] = config
	}
	for _, option := range options {
		option(p)
	}
	p.cache = cache.New(p.cacheSize)
	if err := p.SetDifficultyLevel(difficulty); err != nil {
		return nil, err
	}
	return p, nil
}

// SetDifficulty parses the label ("easy", "medium" or "hard") and calls SetDifficultyLevel.
func (p *AI) SetDifficulty(label string) error {
	difficulty, err := ParseDifficulty(label)
	if err != nil {
		return err
	}
	return p.SetDifficultyLevel(difficulty)
}

// SetDifficultyLevel rebuilds the searcher from the profile of the difficulty and clears the
// cache, since cached decisions were made with a different searcher.
//
// On error the previous configuration is kept.
func (p *AI) SetDifficultyLevel(difficulty Difficulty) error {
	config, found := p.profiles[difficulty]
	if !found {
		return errors.Wrapf(ErrUnknownDifficulty, "no profile for difficulty %s", difficulty)
	}
	searcher, err := NewSearcher(p.scorer, config)
	if err != nil {
		return errors.WithMessagef(err, "difficulty %s", difficulty)
	}
	p.profile = Profile{Difficulty: difficulty, Config: config}
	p.searcher = searcher
	p.cache.Clear()
	klog.V(1).Infof("AI difficulty set to %s: %s", difficulty, searcher)
	return nil
}

// Difficulty returns the current difficulty.
func (p *AI) Difficulty() Difficulty {
	return p.profile.Difficulty
}

// Profile returns the current profile.
func (p *AI) Profile() Profile {
	return p.profile
}

// Searcher returns the searcher of the current difficulty.
func (p *AI) Searcher() searchers.Searcher {
	return p.searcher
}

// GetMove returns the move chosen for player.
//
// It returns an error wrapping ErrInvalidPlayer for an invalid player, and ErrNoValidMoves if
// the board is full.
func (p *AI) GetMove(board *Board, player PlayerNum) (Move, error) {
	if !player.Valid() {
		return Move{}, errors.Wrapf(ErrInvalidPlayer, "GetMove for player %s", player)
	}
	if board.IsFull() {
		return Move{}, errors.Wrapf(ErrNoValidMoves, "GetMove for player %s", player)
	}
	key := board.Key(player)
	if move, found := p.cache.BestMove(key); found {
		klog.V(1).Infof("AI (%s) player %s plays %s (cached)", p.profile.Difficulty, player, move)
		return move, nil
	}

	start := time.Now()
	move, score, err := p.searcher.Search(board, player)
	if err != nil {
		return Move{}, errors.WithMessagef(err, "AI (%s) failed to search move for player %s", p.profile.Difficulty, player)
	}
	if !board.IsValidMove(move.Row, move.Col) {
		klog.Errorf("searcher %s returned invalid move %s for board:\n%s", p.searcher, move, board)
		return Move{}, errors.Wrapf(ErrInvalidMove, "searcher %s returned %s", p.searcher, move)
	}
	p.cache.SetBestMove(key, move)
	p.cache.SetScore(key, score)
	klog.V(1).Infof("AI (%s) player %s plays %s, score=%g, elapsed=%s", p.profile.Difficulty, player, move, score, time.Since(start))
	return move, nil
}

// EvaluatePosition returns the single-sided heuristic score of the board for player: the sum of
// the scores of the player's runs. Opponent stones only matter by breaking the runs.
func (p *AI) EvaluatePosition(board *Board, player PlayerNum) float32 {
	return p.scorer.Score(board, player)
}

// CacheStats returns the statistics of the position cache.
func (p *AI) CacheStats() cache.Stats {
	return p.cache.Stats()
}

// ClearCache removes all cached positions.
func (p *AI) ClearCache() {
	p.cache.Clear()
}
