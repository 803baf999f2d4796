package main

import (
	"github.com/wricardo/mcp-training/game2048/game/engine"
)

// Strategy picks the next move for a board
type Strategy interface {
	NextMove(board engine.Board) (engine.Direction, bool)
}

// CornerStrategy is a one-ply greedy player. It prefers boards with more
// empty cells and keeps its largest tile in the top-left corner.
type CornerStrategy struct{}

// cornerWeights favour large tiles near the top-left corner, snaking
// along the rows.
var cornerWeights = engine.Board{
	15, 14, 13, 12,
	8, 9, 10, 11,
	7, 6, 5, 4,
	0, 1, 2, 3,
}

const emptyCellWeight = 64

func (CornerStrategy) NextMove(board engine.Board) (engine.Direction, bool) {
	var best engine.Direction
	bestScore, found := 0, false

	for _, dir := range engine.Directions {
		next, changed, err := engine.Slide(board, dir)
		if err != nil || !changed {
			continue
		}
		score := Evaluate(next)
		if !found || score > bestScore {
			best, bestScore, found = dir, score, true
		}
	}
	return best, found
}

// Evaluate scores a board after a slide; higher is better.
func Evaluate(board engine.Board) int {
	score := len(engine.EmptyCells(board)) * emptyCellWeight
	for i, exp := range board {
		score += exp * exp * cornerWeights[i]
	}
	return score
}
