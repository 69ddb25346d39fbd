package players

import (
	"strings"

	"github.com/pkg/errors"
)

// Difficulty of the AI. Each difficulty maps to a Profile.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

//go:generate go tool enumer -type=Difficulty -transform=lower -values -text difficulty.go

// ErrUnknownDifficulty is returned when parsing an invalid difficulty label.
var ErrUnknownDifficulty = errors.New("unknown difficulty")

// ParseDifficulty parses a label ("easy", "medium" or "hard", case-insensitive).
func ParseDifficulty(label string) (Difficulty, error) {
	d, err := DifficultyString(strings.ToLower(strings.TrimSpace(label)))
	if err != nil {
		return Easy, errors.Wrapf(ErrUnknownDifficulty, "%q, valid values are %s", label, strings.Join(DifficultyStrings(), ", "))
	}
	return d, nil
}

// Profile binds a difficulty to the configuration of the searcher used for it.
// See NewSearcher for the format of Config.
type Profile struct {
	Difficulty Difficulty
	Config     string
}

// DefaultProfiles used by the AI, unless changed with WithProfiles.
//
// Easy and medium use alpha-beta pruning with increasing depth. Hard uses Monte Carlo Tree Search,
// preceded by an alpha-beta search for forced wins as deep as medium's, so it never does less work
// than medium.
var DefaultProfiles = map[Difficulty]string{
	Easy:   "ab,max_depth=1,max_time=1s,priority_scale=0.5",
	Medium: "ab,max_depth=2,max_time=3s,priority_scale=1",
	Hard:   "mcts,max_simulations=3000,min_simulations=50,max_time=5s,c=1.4142,radius=2,tactical_depth=2",
}
