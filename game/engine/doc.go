// Package engine provides the core game logic for 2048.
//
// The engine package implements the game mechanics including:
//   - Line resolution (slide, merge, compact) for a single row or column
//   - Board moves in the four directions using a static index table
//   - Random tile spawning behind an injectable random source
//   - A stateful GameEngine that records move history
//
// Board Representation:
//
// A Board is 16 cells in row-major order. Each cell stores the exponent of
// its tile rather than the tile itself: 0 is empty, 1 is a 2, 2 is a 4, and
// so on up to 17 (131072). Merging two tiles therefore adds one to the
// exponent.
//
//	 0  1  2  3
//	 4  5  6  7
//	 8  9 10 11
//	12 13 14 15
//
// Usage:
//
//	rng := engine.NewRand(0)
//	board := engine.NewGame(rng)
//
//	outcome, err := engine.ApplyMove(board, engine.Left, rng)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if !outcome.Changed {
//		// nothing moved, no tile was spawned
//	}
//
// Game Rules:
//
// Tiles slide as far as they can in the direction of the move. Adjacent equal
// tiles merge once per move, with merges nearest the direction of travel
// taking priority, so [2 2 2 0] moving left becomes [4 2 0 0]. A move that
// changes the board spawns one new tile (a 2 with probability 0.9, else a 4)
// on a random empty cell; a move that changes nothing spawns nothing.
package engine
