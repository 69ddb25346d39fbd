// Package _default registers the default searchers that can be included in any
// front-end for gomokuGo.
//
// Currently, it includes alpha-beta pruning ("ab") and Monte Carlo Tree Search ("mcts").
package _default

import (
	"github.com/janpfeifer/gomokuGo/internal/players"
	"github.com/janpfeifer/gomokuGo/internal/searchers/alphabeta"
	"github.com/janpfeifer/gomokuGo/internal/searchers/mcts"
)

func init() {
	players.RegisterSearcher(alphabeta.NewFromParams)
	players.RegisterSearcher(mcts.NewFromParams)
}
