package mcts

import (
	"time"

	"github.com/janpfeifer/gomokuGo/internal/ai"
	"github.com/janpfeifer/gomokuGo/internal/parameters"
	"github.com/janpfeifer/gomokuGo/internal/searchers"
	"github.com/pkg/errors"
)

// NewFromParams creates a Monte Carlo Tree Search searcher if the "mcts" parameter is set,
// otherwise it returns (nil, nil). The parameters used are popped from params.
//
// Parameters:
//
//   - mcts (bool): selects the MCTS searcher.
//   - max_simulations (int): simulation budget per search, default 1000. 0 means limited by max_time only.
//   - min_simulations (int): simulations run even if max_time is exceeded, default 0.
//   - max_time (time.Duration): time budget per search, default 0 (no limit).
//   - c (float): UCT exploration constant, default sqrt(2).
//   - seed (int): seed of the random number generator, default 0.
//   - radius (int): only expand moves within this distance of a stone, default 0 (all moves).
//   - scan_win_in_1 (bool): play immediate wins and block immediate losses without search, default true.
//   - tactical_depth (int): depth of the alpha-beta search for forced wins run before the tree search,
//     default 0 (disabled).
//   - score_scale (float): scale used to squash the evaluation of playouts without a winner, default 1000.
func NewFromParams(scorer ai.ValueScorer, params parameters.Params) (searchers.Searcher, error) {
	isMCTS, err := parameters.PopParamOr(params, "mcts", false)
	if err != nil {
		return nil, err
	}
	if !isMCTS {
		return nil, nil
	}
	maxSimulations, err := parameters.PopParamOr(params, "max_simulations", DefaultMaxSimulations)
	if err != nil {
		return nil, err
	}
	minSimulations, err := parameters.PopParamOr(params, "min_simulations", 0)
	if err != nil {
		return nil, err
	}
	maxTime, err := parameters.PopParamOr(params, "max_time", time.Duration(0))
	if err != nil {
		return nil, err
	}
	if maxSimulations < 0 || minSimulations < 0 || maxTime < 0 {
		return nil, errors.Errorf("negative max_simulations (%d), min_simulations (%d) or max_time (%s) not possible",
			maxSimulations, minSimulations, maxTime)
	}
	if maxSimulations == 0 && maxTime == 0 {
		return nil, errors.New("mcts searcher requires either max_simulations > 0 or max_time > 0")
	}
	if maxSimulations > 0 && minSimulations > maxSimulations {
		return nil, errors.Errorf("min_simulations (%d) > max_simulations (%d)", minSimulations, maxSimulations)
	}
	c, err := parameters.PopParamOr(params, "c", DefaultExploration)
	if err != nil {
		return nil, err
	}
	if c < 0 {
		return nil, errors.Errorf("negative exploration constant c (%g given) not possible", c)
	}
	seed, err := parameters.PopParamOr(params, "seed", 0)
	if err != nil {
		return nil, err
	}
	radius, err := parameters.PopParamOr(params, "radius", 0)
	if err != nil {
		return nil, err
	}
	scan, err := parameters.PopParamOr(params, "scan_win_in_1", true)
	if err != nil {
		return nil, err
	}
	tacticalDepth, err := parameters.PopParamOr(params, "tactical_depth", 0)
	if err != nil {
		return nil, err
	}
	if tacticalDepth < 0 {
		return nil, errors.Errorf("negative tactical_depth (%d) not possible", tacticalDepth)
	}
	scale, err := parameters.PopParamOr(params, "score_scale", DefaultScoreScale)
	if err != nil {
		return nil, err
	}
	if scale <= 0 {
		return nil, errors.Errorf("score_scale must be positive, got %g", scale)
	}

	mcts := New(scorer).
		WithMaxSimulations(maxSimulations).
		WithMinSimulations(minSimulations).
		WithMaxTime(maxTime).
		WithExploration(c).
		WithSeed(int64(seed)).
		WithRadius(radius).
		WithScanWinIn1(scan).
		WithTacticalDepth(tacticalDepth).
		WithScoreScale(scale)
	return mcts, nil
}
