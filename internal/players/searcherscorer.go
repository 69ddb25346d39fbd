package players

import (
	"github.com/janpfeifer/gomokuGo/internal/ai"
	"github.com/janpfeifer/gomokuGo/internal/parameters"
	"github.com/janpfeifer/gomokuGo/internal/searchers"
	"github.com/pkg/errors"
)

// SearcherBuilder creates a searcher from the parameters, popping the ones it uses. It returns
// (nil, nil) if the parameters don't select it.
type SearcherBuilder func(scorer ai.ValueScorer, params parameters.Params) (searchers.Searcher, error)

// RegisteredSearchers holds the builders tried by NewSearcher.
var RegisteredSearchers []SearcherBuilder

// RegisterSearcher adds a builder to RegisteredSearchers. Usually called from init().
func RegisterSearcher(builder SearcherBuilder) {
	RegisteredSearchers = append(RegisteredSearchers, builder)
}

// NewSearcher creates a searcher from the configuration string, using scorer to evaluate positions.
//
// Args:
//
//   - config: a comma-separated list of parameters with optional values associated. Exactly one of
//     the registered searchers must be selected, e.g. "ab,max_depth=2" or "mcts,max_simulations=1000".
//
// Any parameter not used by the selected searcher is an error.
func NewSearcher(scorer ai.ValueScorer, config string) (searchers.Searcher, error) {
	if len(RegisteredSearchers) == 0 {
		return nil, errors.New("no registered searchers. Perhaps you need to import _ \"github.com/janpfeifer/gomokuGo/internal/players/default\" to your binary ?")
	}
	params := parameters.NewFromConfigString(config)
	var searcher searchers.Searcher
	for _, builder := range RegisteredSearchers {
		s, err := builder(scorer, params)
		if err != nil {
			return nil, errors.WithMessagef(err, "failed to create searcher for %q", config)
		}
		if s == nil {
			// Not this type of searcher.
			continue
		}
		if searcher != nil {
			return nil, errors.Errorf("multiple searchers defined in parameters %q", config)
		}
		searcher = s
	}
	if searcher == nil {
		return nil, errors.Errorf("no searchers defined in parameters %q", config)
	}
	if err := parameters.CheckAllConsumed(params); err != nil {
		return nil, errors.WithMessagef(err, "in configuration %q", config)
	}
	return searcher, nil
}
