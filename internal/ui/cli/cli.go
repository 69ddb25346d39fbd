// Package cli implements a command-line UI for the game.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	. "github.com/janpfeifer/gomokuGo/internal/state"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

var ansiFilter = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// displayWidth of s removes its color/control sequences and returns the length of what is left.
func displayWidth(s string) int {
	return len(ansiFilter.ReplaceAllString(s, ""))
}

func printCentered(block string) {
	lines := strings.Split(block, "\n")
	terminalWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		terminalWidth = 0
	}
	blockWidth := 0
	for _, line := range lines {
		blockWidth = max(blockWidth, displayWidth(line))
	}
	indent := max((terminalWidth-blockWidth)/2, 0)
	for _, line := range lines {
		if len(line) == 0 {
			fmt.Println()
			continue
		}
		fmt.Printf("%s%s\n", strings.Repeat(" ", indent), line)
	}
}

// UI for playing in the terminal.
type UI struct {
	color, clearScreen bool
	reader             *bufio.Reader
}

var (
	moveParser = regexp.MustCompile(`^\s*(\d+)[\s,]+(\d+)[\s,]*$`)
	quitParser = regexp.MustCompile(`^\s*(?i:q|quit|exit)\s*$`)

	// ErrQuit is returned by ReadMove when the user asks to quit.
	ErrQuit = errors.New("user quit")

	parsingErrorMsg = "failed to read move 3 times"
)

// New creates a UI reading moves from the standard input.
//
// If color is set, it uses ANSI colors. If clearScreen is set, the screen is cleared before each
// board is printed.
func New(color bool, clearScreen bool) *UI {
	return &UI{
		color:       color,
		clearScreen: clearScreen,
		reader:      bufio.NewReader(os.Stdin),
	}
}

// WithInput sets the reader of the user's moves, instead of the standard input.
func (ui *UI) WithInput(r io.Reader) *UI {
	ui.reader = bufio.NewReader(r)
	return ui
}

var (
	styleA    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("1"))
	styleB    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("2"))
	styleLast = lipgloss.NewStyle().Blink(true).Reverse(true)
	styleAxis = lipgloss.NewStyle().Faint(true)
	styleDraw = lipgloss.NewStyle().
			Background(lipgloss.Color("13")).
			Foreground(lipgloss.Color("0")).
			Padding(1, 2)
	styleWin = lipgloss.NewStyle().
			Bold(true).
			Padding(1, 2)
)

func (ui *UI) render(style lipgloss.Style, s string) string {
	if !ui.color {
		return s
	}
	return style.Render(s)
}

func (ui *UI) playerStyle(player PlayerNum) lipgloss.Style {
	if player == PlayerA {
		return styleA
	}
	return styleB
}

// PlayerString returns the name of the player with its symbol, colored if color is enabled.
func (ui *UI) PlayerString(player PlayerNum) string {
	return ui.render(ui.playerStyle(player), fmt.Sprintf("Player %s (%c)", player, player.Symbol()))
}

// Print the move number, the board and whose turn it is.
func (ui *UI) Print(board *Board, moveNumber int, next PlayerNum, lastMove *Move) {
	if ui.clearScreen {
		fmt.Print("\033c")
	}
	fmt.Printf("\nMove #%d\n\n", moveNumber)
	ui.PrintBoard(board, lastMove)
	fmt.Println()
	if next.Valid() {
		fmt.Printf("    %s turn to play\n", ui.PlayerString(next))
	}
}

// BoardString renders the board with row and column numbers. If lastMove is not nil, its stone
// is highlighted.
func (ui *UI) BoardString(board *Board, lastMove *Move) string {
	var sb strings.Builder
	size := board.Size()
	width := len(strconv.Itoa(size - 1))
	cellFmt := fmt.Sprintf("%%%dd", width)

	// Header with the columns.
	sb.WriteString(strings.Repeat(" ", width+1))
	for col := range size {
		sb.WriteString(" ")
		sb.WriteString(ui.render(styleAxis, fmt.Sprintf(cellFmt, col)))
	}
	sb.WriteString("\n")

	for row := range size {
		sb.WriteString(ui.render(styleAxis, fmt.Sprintf(cellFmt, row)))
		sb.WriteString(" ")
		for col := range size {
			sb.WriteString(" ")
			sb.WriteString(strings.Repeat(" ", width-1))
			player := board.At(row, col)
			cell := string(player.Symbol())
			if player != PlayerNone {
				cell = ui.render(ui.playerStyle(player), cell)
				if lastMove != nil && lastMove.Row == row && lastMove.Col == col {
					cell = ui.render(styleLast, cell)
				}
			}
			sb.WriteString(cell)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// PrintBoard prints the board centered in the terminal.
func (ui *UI) PrintBoard(board *Board, lastMove *Move) {
	printCentered(ui.BoardString(board, lastMove))
}

// PrintWinner announces the winner, or a draw if winner is PlayerNone.
func (ui *UI) PrintWinner(winner PlayerNum) {
	fmt.Println()
	if winner == PlayerNone {
		printCentered(ui.render(styleDraw, "*** DRAW: board is full! ***"))
	} else {
		printCentered(ui.render(styleWin.Inherit(ui.playerStyle(winner)),
			fmt.Sprintf("*** %s WINS!! Congratulations! ***", strings.ToUpper(ui.PlayerString(winner)))))
	}
	fmt.Println()
}

// ParseMove parses the text "row col" (or "row,col") into a Move. It doesn't check it is valid.
func ParseMove(text string) (move Move, err error) {
	matches := moveParser.FindStringSubmatch(text)
	if len(matches) != 3 {
		err = errors.Errorf("can't parse %q as a move, expected \"<row> <col>\"", strings.TrimSpace(text))
		return
	}
	if move.Row, err = strconv.Atoi(matches[1]); err != nil {
		err = errors.Wrapf(err, "failed to parse row %q", matches[1])
		return
	}
	if move.Col, err = strconv.Atoi(matches[2]); err != nil {
		err = errors.Wrapf(err, "failed to parse column %q", matches[2])
	}
	return
}

// ReadMove reads the move of player from the input, until a valid move is given. After 3 failed
// attempts it returns an error, and ErrQuit if the user typed "quit".
func (ui *UI) ReadMove(board *Board, player PlayerNum) (move Move, err error) {
	for numErrs := 0; numErrs < 3; numErrs++ {
		fmt.Printf("    %s move (row col) > ", ui.PlayerString(player))
		var text string
		text, err = ui.reader.ReadString('\n')
		if err != nil && (err != io.EOF || text == "") {
			return
		}
		if quitParser.MatchString(text) {
			err = ErrQuit
			return
		}
		move, err = ParseMove(text)
		if err != nil {
			fmt.Printf("    * %v, please try again.\n", err)
			continue
		}
		if !board.IsValidMove(move.Row, move.Col) {
			fmt.Printf("    * %s is not an empty cell of the board, please try again.\n", move)
			continue
		}
		return move, nil
	}
	err = errors.New(parsingErrorMsg)
	return
}
