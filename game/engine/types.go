package engine

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// BoardSide is the number of cells along one edge of the board.
	BoardSide = 4
	// BoardCells is the number of cells on the board.
	BoardCells = BoardSide * BoardSide

	// MaxExponent is the largest tile the game can produce (2^17 = 131072).
	MaxExponent = 17

	// FourTileProbability is the chance a spawned tile is a 4 instead of a 2.
	FourTileProbability = 0.1

	// InitialTiles is the number of tiles placed by NewGame.
	InitialTiles = 2
)

// ErrInvalidDirection is returned for a direction outside up, down, left and right.
var ErrInvalidDirection = errors.New("invalid direction")

// Board is a 4x4 grid in row-major order holding tile exponents (0 = empty).
type Board [BoardCells]int

// Line is one row or column of a board, oriented so the move goes toward index 0.
type Line [BoardSide]int

// Direction is a move direction
type Direction string

const (
	Up    Direction = "up"
	Down  Direction = "down"
	Left  Direction = "left"
	Right Direction = "right"
)

// Directions lists the valid directions in wire-code order (u, d, l, r).
var Directions = []Direction{Up, Down, Left, Right}

// lineIndices maps each direction to the board indices of its four lines.
// Index 0 of every sequence is the cell tiles slide toward.
var lineIndices = map[Direction][BoardSide][BoardSide]int{
	Up:    {{0, 4, 8, 12}, {1, 5, 9, 13}, {2, 6, 10, 14}, {3, 7, 11, 15}},
	Down:  {{12, 8, 4, 0}, {13, 9, 5, 1}, {14, 10, 6, 2}, {15, 11, 7, 3}},
	Left:  {{0, 1, 2, 3}, {4, 5, 6, 7}, {8, 9, 10, 11}, {12, 13, 14, 15}},
	Right: {{3, 2, 1, 0}, {7, 6, 5, 4}, {11, 10, 9, 8}, {15, 14, 13, 12}},
}

// LineIndices returns the four index sequences for a direction.
func LineIndices(d Direction) ([BoardSide][BoardSide]int, error) {
	seqs, ok := lineIndices[d]
	if !ok {
		return seqs, fmt.Errorf("%w: %q", ErrInvalidDirection, string(d))
	}
	return seqs, nil
}

// Valid reports whether d is one of the four directions.
func (d Direction) Valid() bool {
	_, ok := lineIndices[d]
	return ok
}

// Code returns the single-character wire code for the direction.
func (d Direction) Code() string {
	if !d.Valid() {
		return ""
	}
	return string(d)[:1]
}

// ParseDirection accepts a wire code (u, d, l, r) or a direction name.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "u", "up":
		return Up, nil
	case "d", "down":
		return Down, nil
	case "l", "left":
		return Left, nil
	case "r", "right":
		return Right, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}

// Spawn records a tile placed by the engine.
type Spawn struct {
	Index int `json:"index"`
	Value int `json:"value"`
}

// MoveOutcome is the result of applying a move to a board
type MoveOutcome struct {
	Board   Board  `json:"board"`
	Changed bool   `json:"changed"`
	Spawned *Spawn `json:"spawned,omitempty"`
}

// GameState represents the complete state of one game
type GameState struct {
	Board       Board              `json:"board"`
	MoveHistory []MoveHistoryEntry `json:"move_history"`
	TotalMoves  int                `json:"total_moves"`

	// CurrentMovesCount counts moves since the last reset; TotalMoves survives resets.
	CurrentMovesCount int `json:"current_moves_count"`
}

// Clone returns a deep copy safe to hand out while the original keeps changing.
func (gs *GameState) Clone() *GameState {
	if gs == nil {
		return nil
	}
	c := *gs
	c.MoveHistory = make([]MoveHistoryEntry, len(gs.MoveHistory))
	for i, e := range gs.MoveHistory {
		c.MoveHistory[i] = e
		if e.Spawned != nil {
			s := *e.Spawned
			c.MoveHistory[i].Spawned = &s
		}
	}
	return &c
}

// MoveHistoryEntry represents a single move in the game history
type MoveHistoryEntry struct {
	Action     Direction `json:"action"`
	Changed    bool      `json:"changed"`
	Spawned    *Spawn    `json:"spawned,omitempty"`
	Timestamp  int64     `json:"timestamp"`
	MoveNumber int       `json:"move_number"`
}
