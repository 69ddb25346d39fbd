package alphabeta

import (
	"time"

	"github.com/janpfeifer/gomokuGo/internal/ai"
	"github.com/janpfeifer/gomokuGo/internal/parameters"
	"github.com/janpfeifer/gomokuGo/internal/searchers"
	"github.com/janpfeifer/gomokuGo/internal/searchers/prioritizer"
	"github.com/pkg/errors"
)

// NewFromParams creates an alpha-beta searcher if the "ab" parameter is set, otherwise it returns
// (nil, nil). The parameters used are popped from params.
//
// Parameters:
//
//   - ab (bool): selects the alpha-beta pruning searcher.
//   - max_depth (int): max depth of search in plies, default 2. 0 means limited by max_time only.
//   - max_time (time.Duration): deadline per search, default 0 (no deadline).
//   - iterative (bool): use iterative deepening.
//   - priority_scale (float): move prioritizer scale, default 1.
//   - radius (int): only consider moves within this distance of a stone, default 0 (all moves).
//   - eval (string): "differential" (default) or "single".
func NewFromParams(scorer ai.ValueScorer, params parameters.Params) (searchers.Searcher, error) {
	isAB, err := parameters.PopParamOr(params, "ab", false)
	if err != nil {
		return nil, err
	}
	if !isAB {
		return nil, nil
	}
	maxDepth, err := parameters.PopParamOr(params, "max_depth", DefaultMaxDepth)
	if err != nil {
		return nil, err
	}
	maxTime, err := parameters.PopParamOr(params, "max_time", time.Duration(0))
	if err != nil {
		return nil, err
	}
	if maxDepth < 0 || maxTime < 0 {
		return nil, errors.Errorf("negative max_depth (%d) or max_time (%s) not possible", maxDepth, maxTime)
	}
	if maxDepth == 0 && maxTime == 0 {
		return nil, errors.New("alpha-beta searcher requires either max_depth > 0 or max_time > 0")
	}
	iterative, err := parameters.PopParamOr(params, "iterative", false)
	if err != nil {
		return nil, err
	}
	scale, err := parameters.PopParamOr(params, "priority_scale", float32(1))
	if err != nil {
		return nil, err
	}
	if scale <= 0 {
		return nil, errors.Errorf("priority_scale must be positive, got %g", scale)
	}
	radius, err := parameters.PopParamOr(params, "radius", 0)
	if err != nil {
		return nil, err
	}
	eval, err := parameters.PopParamOr(params, "eval", "differential")
	if err != nil {
		return nil, err
	}
	if eval != "differential" && eval != "single" {
		return nil, errors.Errorf("unknown eval=%q, valid values are \"differential\" or \"single\"", eval)
	}

	ab := New(scorer).
		WithMaxDepth(maxDepth).
		WithMaxTime(maxTime).
		WithIterativeDeepening(iterative).
		WithPrioritizer(prioritizer.New(scale).WithRadius(radius)).
		WithSingleSided(eval == "single")
	return ab, nil
}
