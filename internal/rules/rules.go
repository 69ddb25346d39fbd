// Package rules implements the Gomoku win condition: five (or more) stones in a row,
// horizontally, vertically or diagonally.
//
// The AI core uses it for terminal-state pruning and to end random playouts early; the board
// itself (package state) knows nothing about winning.
package rules

import (
	. "github.com/janpfeifer/gomokuGo/internal/state"
)

// WinLength is the number of aligned stones needed to win.
const WinLength = 5

// Directions along which a run can be formed: horizontal, vertical, diagonal and anti-diagonal.
var Directions = [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}

// countDirection counts the consecutive stones of player starting next to (row, col), stepping
// by (dRow, dCol).
func countDirection(b *Board, row, col, dRow, dCol int, player PlayerNum) (count int) {
	row, col = row+dRow, col+dCol
	for b.At(row, col) == player && player != PlayerNone {
		count++
		row, col = row+dRow, col+dCol
	}
	return
}

// RunLength returns the length of the longest run through move for the stone placed there.
// It returns 0 if the cell is empty.
func RunLength(b *Board, move Move) int {
	player := b.At(move.Row, move.Col)
	if player == PlayerNone {
		return 0
	}
	longest := 0
	for _, dir := range Directions {
		count := 1 +
			countDirection(b, move.Row, move.Col, dir[0], dir[1], player) +
			countDirection(b, move.Row, move.Col, -dir[0], -dir[1], player)
		longest = max(longest, count)
	}
	return longest
}

// IsWin returns whether the stone at move is part of a five-in-a-row.
func IsWin(b *Board, move Move) bool {
	return RunLength(b, move) >= WinLength
}

// Winner scans the whole board and returns the player with five-in-a-row, or PlayerNone.
// If (erroneously) both players have one, the first found in row-major order is returned.
func Winner(b *Board) PlayerNum {
	size := b.Size()
	for row := range size {
		for col := range size {
			player := b.At(row, col)
			if player == PlayerNone {
				continue
			}
			for _, dir := range Directions {
				// Only count runs from their starting stone.
				if b.At(row-dir[0], col-dir[1]) == player {
					continue
				}
				if 1+countDirection(b, row, col, dir[0], dir[1], player) >= WinLength {
					return player
				}
			}
		}
	}
	return PlayerNone
}

// IsFinished returns whether the game is over: someone won or the board is full.
func IsFinished(b *Board) bool {
	return b.IsFull() || Winner(b) != PlayerNone
}

// WinningMoves returns the empty cells where player would immediately complete five-in-a-row,
// in row-major order. The board is restored before returning.
func WinningMoves(b *Board, player PlayerNum) (moves []Move) {
	for _, move := range b.EmptyCells() {
		if b.Place(move.Row, move.Col, player) != nil {
			continue
		}
		if IsWin(b, move) {
			moves = append(moves, move)
		}
		b.Remove(move.Row, move.Col)
	}
	return
}
