package engine

// NewGame returns a board with two tiles on distinct random cells.
func NewGame(r Rand) Board {
	var b Board
	for i := 0; i < InitialTiles; i++ {
		SpawnTile(&b, r)
	}
	return b
}

// Slide performs the deterministic part of a move: every line of the
// direction is resolved and written back. It reports whether any line changed.
func Slide(b Board, d Direction) (Board, bool, error) {
	seqs, err := LineIndices(d)
	if err != nil {
		return b, false, err
	}

	changed := false
	for _, seq := range seqs {
		var in Line
		for i, idx := range seq {
			in[i] = b[idx]
		}

		out := ResolveLine(in)
		if out == in {
			continue
		}

		changed = true
		for i, idx := range seq {
			b[idx] = out[i]
		}
	}

	return b, changed, nil
}

// SpawnTile places a new tile on a uniformly chosen empty cell.
// It returns false when the board has no empty cell.
func SpawnTile(b *Board, r Rand) (Spawn, bool) {
	empty := EmptyCells(*b)
	if len(empty) == 0 {
		return Spawn{}, false
	}

	s := Spawn{
		Index: empty[r.IntN(len(empty))],
		Value: spawnValue(r),
	}
	b[s.Index] = s.Value
	return s, true
}

// ApplyMove slides the board in the given direction and, if anything moved,
// spawns exactly one new tile. A move that changes nothing returns the input
// board untouched.
func ApplyMove(b Board, d Direction, r Rand) (MoveOutcome, error) {
	next, changed, err := Slide(b, d)
	if err != nil {
		return MoveOutcome{Board: b}, err
	}
	if !changed {
		return MoveOutcome{Board: b}, nil
	}

	outcome := MoveOutcome{Board: next, Changed: true}
	if s, ok := SpawnTile(&outcome.Board, r); ok {
		outcome.Spawned = &s
	}
	return outcome, nil
}
