// gomoku plays Gomoku (five-in-a-row) in the terminal: against the AI, human vs human (-hotseat),
// or watching the AI play against itself (-watch).
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/gomokuGo/internal/players"
	_ "github.com/janpfeifer/gomokuGo/internal/players/default"
	"github.com/janpfeifer/gomokuGo/internal/profilers"
	"github.com/janpfeifer/gomokuGo/internal/rules"
	. "github.com/janpfeifer/gomokuGo/internal/state"
	"github.com/janpfeifer/gomokuGo/internal/ui/cli"
	"github.com/janpfeifer/gomokuGo/internal/ui/spinning"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

var (
	flagHotseat     = flag.Bool("hotseat", false, "Hotseat match: human vs human")
	flagWatch       = flag.Bool("watch", false, "Watch mode: AI vs AI playing")
	flagFirst       = flag.String("first", "", "Who plays first: human or ai. Default is random.")
	flagDifficulty  = flag.String("difficulty", "medium", "AI difficulty: easy, medium or hard")
	flagDifficulty2 = flag.String("difficulty2", "medium", "Second AI difficulty, if playing AI vs AI with --watch")
	flagConfig      = flag.String("config", "", "If set, overrides the searcher configuration of the AI difficulty, e.g. \"ab,max_depth=3,max_time=5s\"")
	flagSize        = flag.Int("size", DefaultBoardSize, "Size of the board")
	flagColor       = flag.Bool("color", true, "Use colors in the terminal")
	flagQuiet       = flag.Bool("quiet", false, "Quiet mode for when watching AI play, only the moves and the last board position is printed.")

	// aiPlayers indexed by PlayerNum: if nil, it's a human playing.
	aiPlayers [3]*players.AI

	globalCtx = context.Background()
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	// Capture Control+C
	var cancel func()
	globalCtx, cancel = context.WithCancel(context.Background())
	spinning.SafeInterrupt(cancel, 3*time.Second)
	defer cancel()
	profilers.Setup(globalCtx)
	defer profilers.OnQuit()

	createPlayers()
	board := must.M1(NewBoard(*flagSize))
	ui := cli.New(*flagColor, false)

	var lastMove *Move
	player := PlayerA
	moveNumber := 1
	winner := PlayerNone
	for ; !board.IsFull() && globalCtx.Err() == nil; moveNumber++ {
		aiPlayer := aiPlayers[player]
		var move Move
		if aiPlayer == nil {
			ui.Print(board, moveNumber, player, lastMove)
			var err error
			move, err = ui.ReadMove(board, player)
			if errors.Is(err, cli.ErrQuit) {
				fmt.Println("Bye.")
				return
			}
			if err != nil {
				klog.Exitf("Failed to run match: %+v", err)
			}
		} else {
			if *flagWatch && !*flagQuiet {
				ui.Print(board, moveNumber, player, lastMove)
			}
			s := spinning.New(globalCtx, fmt.Sprintf("    AI (%s) thinking", aiPlayer.Difficulty()))
			var err error
			move, err = aiPlayer.GetMove(board, player)
			s.Done()
			if err != nil {
				klog.Exitf("AI failed to play: %+v", err)
			}
			fmt.Printf("    Move #%d: %s (%s) plays %s\n", moveNumber, ui.PlayerString(player), aiPlayer.Difficulty(), move)
		}
		if err := board.Place(move.Row, move.Col, player); err != nil {
			exceptions.Panicf("move %s for player %s was accepted but can't be placed: %+v", move, player, err)
		}
		lastMove = &move
		if rules.IsWin(board, move) {
			winner = player
			break
		}
		player = player.Opponent()
	}

	ui.Print(board, moveNumber, PlayerNone, lastMove)
	ui.PrintWinner(winner)
}

// newAI creates the AI for the difficulty label, using --config if given.
func newAI(label string) *players.AI {
	difficulty := must.M1(players.ParseDifficulty(label))
	var options []players.Option
	if *flagConfig != "" {
		options = append(options, players.WithProfiles(map[players.Difficulty]string{difficulty: *flagConfig}))
	}
	return must.M1(players.New(difficulty, options...))
}

// createPlayers in aiPlayers.
func createPlayers() {
	if *flagHotseat && *flagWatch {
		klog.Fatalf("--hotseat and --watch cannot be used together")
	}
	if *flagHotseat {
		// Both players are human, nothing to do.
		return
	}

	// Create AI player:
	var aiPlayerNum PlayerNum
	if *flagWatch {
		aiPlayerNum = PlayerA
	} else {
		switch strings.ToLower(*flagFirst) {
		case "human":
			aiPlayerNum = PlayerB
		case "ai":
			aiPlayerNum = PlayerA
		case "":
			aiPlayerNum = PlayerNum(1 + rand.IntN(2))
		default:
			exceptions.Panicf("invalid --first=%q, only valid values are \"human\" or \"ai\"", *flagFirst)
		}
	}
	aiPlayers[aiPlayerNum] = newAI(*flagDifficulty)
	if !*flagWatch {
		return
	}

	// Create second AI
	aiPlayers[aiPlayerNum.Opponent()] = newAI(*flagDifficulty2)
}
