// compare runs matches between two AI configurations in parallel, and reports the results and the
// time each AI took per move.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"runtime"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/janpfeifer/gomokuGo/internal/players"
	_ "github.com/janpfeifer/gomokuGo/internal/players/default"
	"github.com/janpfeifer/gomokuGo/internal/profilers"
	"github.com/janpfeifer/gomokuGo/internal/rules"
	"github.com/janpfeifer/gomokuGo/internal/state"
	"github.com/janpfeifer/gomokuGo/internal/ui/cli"
	"github.com/janpfeifer/gomokuGo/internal/ui/spinning"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
	"k8s.io/klog/v2"
)

var (
	flagAI1 = flag.String("ai1", "easy", "1st AI: a difficulty (easy, medium, hard) or "+
		"a searcher configuration (e.g. \"ab,max_depth=3\").")
	flagAI2         = flag.String("ai2", "medium", "2nd AI, see -ai1.")
	flagNumMatches  = flag.Int("num_matches", 20, "Number of matches to play.")
	flagParallelism = flag.Int("parallelism", 0, "If > 0 ignore GOMAXPROCS and play "+
		"these many matches simultaneously.")
	flagSize          = flag.Int("size", state.DefaultBoardSize, "Size of the board.")
	flagOpeningStones = flag.Int("opening_stones", 2, "Number of random stones placed (alternating players) "+
		"near the center before the AIs start playing: AIs are deterministic, so this is what makes matches differ.")
	flagSeed       = flag.Uint64("seed", 1, "Seed for the random openings.")
	flagPrintSteps = flag.Bool("print_steps", false, "Print board at each step. "+
		"Very verbose, and you probably want to set -parallelism=1.")
)

// Globals
var (
	// globalCtx used everywhere. It is cancelled when the program is about to exit either by
	// an interrupt (ctrl+C) or by reaching the end.
	globalCtx = context.Background()
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	// Capture Control+C
	var globalCancel func()
	globalCtx, globalCancel = context.WithCancel(context.Background())
	spinning.SafeInterrupt(globalCancel, 5*time.Second)
	defer globalCancel()

	// Profilers: HTTP profiler server and CPU profile.
	profilers.Setup(globalCtx)
	defer profilers.OnQuit()

	// Check configurations before starting.
	for _, config := range []string{*flagAI1, *flagAI2} {
		_ = must.M1(newAI(config))
	}
	r := must.M1(runMatches(globalCtx, [2]string{*flagAI1, *flagAI2}))
	r.PrintMoveTimes()
}

// newAI creates an AI from a difficulty label or, if it is not a label, from a searcher
// configuration.
func newAI(config string) (*players.AI, error) {
	if difficulty, err := players.ParseDifficulty(config); err == nil {
		return players.New(difficulty)
	}
	return players.New(players.Hard, players.WithProfiles(map[players.Difficulty]string{players.Hard: config}))
}

// Results of the matches, updated concurrently.
type Results struct {
	mu                   sync.Mutex
	start                time.Time
	winsAs1st, winsAs2nd [2]int
	draws                [2]int
	played, total        int

	// moveTimes per AI, in seconds.
	moveTimes [2][]float64
}

func (r *Results) String() string {
	var parts []string
	parts = append(parts, fmt.Sprintf("Played %d of %d: ", r.played, r.total))
	for aiIdx := range 2 {
		parts = append(parts,
			fmt.Sprintf("AI-%d: %d Wins (1st: %d, 2nd: %d) / ",
				aiIdx+1, r.winsAs1st[aiIdx]+r.winsAs2nd[aiIdx],
				r.winsAs1st[aiIdx], r.winsAs2nd[aiIdx]))
	}
	parts = append(parts, fmt.Sprintf("%d draws (%d AI-1 as 1st, %d AI-2 as 1st) - ",
		r.draws[0]+r.draws[1], r.draws[0], r.draws[1]))
	parts = append(parts, time.Since(r.start).Round(time.Millisecond).String())
	parts = append(parts, "\033[0K")
	return strings.Join(parts, "")
}

// PrintMoveTimes prints the statistics of the time per move of each AI.
func (r *Results) PrintMoveTimes() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for aiIdx, config := range []string{*flagAI1, *flagAI2} {
		times := slices.Clone(r.moveTimes[aiIdx])
		if len(times) == 0 {
			continue
		}
		slices.Sort(times)
		mean, std := stat.MeanStdDev(times, nil)
		median := stat.Quantile(0.5, stat.Empirical, times, nil)
		p90 := stat.Quantile(0.9, stat.Empirical, times, nil)
		fmt.Printf("AI-%d (%s): %d moves, time per move: mean=%s, stddev=%s, median=%s, p90=%s, max=%s\n",
			aiIdx+1, config, len(times), seconds(mean), seconds(std), seconds(median), seconds(p90),
			seconds(times[len(times)-1]))
	}
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second)).Round(time.Microsecond)
}

func runMatches(ctx context.Context, configs [2]string) (*Results, error) {
	r := &Results{
		start: time.Now(),
		total: *flagNumMatches,
	}
	var wg errgroup.Group
	wg.SetLimit(getParallelism())
	fmt.Printf("\r%s", r)

	for matchIdx := range r.total {
		wg.Go(func() error {
			// AIs are not safe for concurrent use: each match creates its own.
			var matchAIs [2]*players.AI
			var aiIndices [2]int
			for ii := range 2 {
				aiIdx := ii
				if matchIdx%2 == 1 {
					aiIdx = 1 - ii
				}
				ai, err := newAI(configs[aiIdx])
				if err != nil {
					return err
				}
				matchAIs[ii], aiIndices[ii] = ai, aiIdx
			}
			winner, moveTimes, err := runMatch(ctx, matchIdx, matchAIs)
			if err != nil || ctx.Err() != nil {
				return err
			}

			// Record results: matchAIs[0] plays first as PlayerA.
			r.mu.Lock()
			defer r.mu.Unlock()
			for ii := range 2 {
				r.moveTimes[aiIndices[ii]] = append(r.moveTimes[aiIndices[ii]], moveTimes[ii]...)
			}
			switch winner {
			case state.PlayerNone:
				r.draws[aiIndices[0]]++
			case state.PlayerA:
				r.winsAs1st[aiIndices[0]]++
			case state.PlayerB:
				r.winsAs2nd[aiIndices[1]]++
			}
			r.played++
			fmt.Printf("\r%s", r)
			return nil
		})
	}
	err := wg.Wait()
	fmt.Printf("\r%s", r)
	fmt.Println()
	if ctx.Err() != nil {
		fmt.Printf("Interrupted: %s\n", ctx.Err())
		return r, nil
	}
	return r, err
}

var (
	stepUI   = cli.New(true, false)
	muStepUI sync.Mutex
)

// openingBoard returns a board with *flagOpeningStones random stones near the center, chosen with
// a generator seeded by the match number, and the player to move next.
func openingBoard(matchNum int) (*state.Board, state.PlayerNum, error) {
	board, err := state.NewBoard(*flagSize)
	if err != nil {
		return nil, state.PlayerNone, err
	}
	rng := rand.New(rand.NewPCG(*flagSeed, uint64(matchNum)))
	player := state.PlayerA
	center := *flagSize / 2
	span := min(5, *flagSize)
	for placed := 0; placed < min(*flagOpeningStones, span*span); {
		row, col := center-span/2+rng.IntN(span), center-span/2+rng.IntN(span)
		if board.Place(row, col, player) != nil {
			continue
		}
		player = player.Opponent()
		placed++
	}
	return board, player, nil
}

// runMatch plays a match between the two AIs: the first plays as PlayerA. It returns the winner,
// PlayerNone for a draw, and the time of each move of each AI, in seconds.
func runMatch(ctx context.Context, matchNum int, ais [2]*players.AI) (winner state.PlayerNum, moveTimes [2][]float64, err error) {
	if klog.V(1).Enabled() {
		klog.Infof("Starting match %d", matchNum)
		defer klog.Infof("Finished match %d", matchNum)
	}
	matchName := fmt.Sprintf("Match-%05d", matchNum)
	board, player, err := openingBoard(matchNum)
	if err != nil {
		return
	}
	for moveNumber := 1; !board.IsFull(); moveNumber++ {
		if ctx.Err() != nil {
			klog.V(1).Infof("Match %d interrupted: %s", matchNum, ctx.Err())
			return state.PlayerNone, moveTimes, nil
		}
		aiIdx := int(player) - 1
		start := time.Now()
		var move state.Move
		move, err = ais[aiIdx].GetMove(board, player)
		if err != nil {
			err = errors.WithMessagef(err, "%s, move #%d", matchName, moveNumber)
			return
		}
		moveTimes[aiIdx] = append(moveTimes[aiIdx], time.Since(start).Seconds())
		if err = board.Place(move.Row, move.Col, player); err != nil {
			err = errors.WithMessagef(err, "%s, move #%d returned by AI-%d", matchName, moveNumber, aiIdx+1)
			return
		}
		if *flagPrintSteps {
			muStepUI.Lock()
			fmt.Printf("%s, move #%d: player %s plays %s\n", matchName, moveNumber, player, move)
			stepUI.PrintBoard(board, &move)
			fmt.Println("------------------")
			muStepUI.Unlock()
		}
		if rules.IsWin(board, move) {
			return player, moveTimes, nil
		}
		player = player.Opponent()
	}
	return state.PlayerNone, moveTimes, nil
}

// getParallelism returns the parallelism.
func getParallelism() (parallelism int) {
	parallelism = runtime.GOMAXPROCS(0)
	if *flagParallelism > 0 {
		parallelism = *flagParallelism
	}
	return
}
