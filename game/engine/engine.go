package engine

import (
	"fmt"
	"time"
)

// Engine provides the main interface for game operations
type Engine interface {
	// Game state management
	GetState() *GameState
	SetState(state *GameState) error
	Board() Board
	Reset() *GameState

	// Movement operations
	Move(direction Direction) (MoveOutcome, error)
	CanMove(direction Direction) bool
	GetPossibleMoves() []Direction

	// History
	GetMoveHistory() []MoveHistoryEntry
	GetLastMove() *MoveHistoryEntry
}

// GameEngine implements the Engine interface. It is not safe for concurrent
// use; callers serialize access to a single game.
type GameEngine struct {
	state *GameState
	rng   Rand
}

// NewEngine creates a game engine with a freshly dealt board.
// A nil source falls back to the process-wide one.
func NewEngine(rng Rand) *GameEngine {
	if rng == nil {
		rng = NewRand(0)
	}
	return &GameEngine{
		state: &GameState{
			Board:       NewGame(rng),
			MoveHistory: []MoveHistoryEntry{},
		},
		rng: rng,
	}
}

// GetState returns a snapshot of the current game state
func (e *GameEngine) GetState() *GameState {
	return e.state.Clone()
}

// SetState replaces the game state
func (e *GameEngine) SetState(state *GameState) error {
	if state == nil {
		return fmt.Errorf("state cannot be nil")
	}
	for i, v := range state.Board {
		if v < 0 {
			return fmt.Errorf("cell %d has negative value %d", i, v)
		}
		if v > MaxExponent {
			return fmt.Errorf("cell %d has exponent %d above %d", i, v, MaxExponent)
		}
	}
	e.state = state.Clone()
	return nil
}

// Board returns the current board
func (e *GameEngine) Board() Board {
	return e.state.Board
}

// Reset deals a new board
func (e *GameEngine) Reset() *GameState {
	// Preserve cumulative history and totals across resets
	e.state.Board = NewGame(e.rng)
	e.state.CurrentMovesCount = 0
	return e.GetState()
}

// Move applies a move to the board and records it in the history.
// Moves that change nothing are recorded too; invalid directions are not.
func (e *GameEngine) Move(direction Direction) (MoveOutcome, error) {
	outcome, err := ApplyMove(e.state.Board, direction, e.rng)
	if err != nil {
		return outcome, err
	}

	e.state.Board = outcome.Board
	e.addMoveToHistory(direction, outcome)
	return outcome, nil
}

// CanMove reports whether moving in the direction would change the board
func (e *GameEngine) CanMove(direction Direction) bool {
	return CanSlide(e.state.Board, direction)
}

// GetPossibleMoves returns all directions that would change the board
func (e *GameEngine) GetPossibleMoves() []Direction {
	var possible []Direction
	for _, dir := range Directions {
		if e.CanMove(dir) {
			possible = append(possible, dir)
		}
	}
	return possible
}

// GetMoveHistory returns the complete move history
func (e *GameEngine) GetMoveHistory() []MoveHistoryEntry {
	return e.GetState().MoveHistory
}

// GetLastMove returns the last move made, or nil if no moves
func (e *GameEngine) GetLastMove() *MoveHistoryEntry {
	if len(e.state.MoveHistory) == 0 {
		return nil
	}
	last := e.GetState().MoveHistory[len(e.state.MoveHistory)-1]
	return &last
}

func (e *GameEngine) addMoveToHistory(direction Direction, outcome MoveOutcome) {
	entry := MoveHistoryEntry{
		Action:     direction,
		Changed:    outcome.Changed,
		Timestamp:  time.Now().Unix(),
		MoveNumber: e.state.TotalMoves + 1,
	}
	if outcome.Spawned != nil {
		s := *outcome.Spawned
		entry.Spawned = &s
	}

	e.state.MoveHistory = append(e.state.MoveHistory, entry)
	e.state.TotalMoves++
	e.state.CurrentMovesCount++
}
