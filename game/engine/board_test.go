package engine

import (
	"errors"
	"testing"
)

// fakeRand replays scripted draws. IntN results are clamped to n-1.
type fakeRand struct {
	ints   []int
	floats []float64
}

func (f *fakeRand) IntN(n int) int {
	if len(f.ints) == 0 {
		return 0
	}
	v := f.ints[0]
	f.ints = f.ints[1:]
	if v >= n {
		v = n - 1
	}
	return v
}

func (f *fakeRand) Float64() float64 {
	if len(f.floats) == 0 {
		return 0
	}
	v := f.floats[0]
	f.floats = f.floats[1:]
	return v
}

func TestDirectionTable(t *testing.T) {
	expected := map[Direction][4][4]int{
		Up:    {{0, 4, 8, 12}, {1, 5, 9, 13}, {2, 6, 10, 14}, {3, 7, 11, 15}},
		Down:  {{12, 8, 4, 0}, {13, 9, 5, 1}, {14, 10, 6, 2}, {15, 11, 7, 3}},
		Left:  {{0, 1, 2, 3}, {4, 5, 6, 7}, {8, 9, 10, 11}, {12, 13, 14, 15}},
		Right: {{3, 2, 1, 0}, {7, 6, 5, 4}, {11, 10, 9, 8}, {15, 14, 13, 12}},
	}

	for dir, want := range expected {
		got, err := LineIndices(dir)
		if err != nil {
			t.Fatalf("LineIndices(%s) returned error: %v", dir, err)
		}
		if got != want {
			t.Errorf("LineIndices(%s) = %v, want %v", dir, got, want)
		}
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		input   string
		want    Direction
		wantErr bool
	}{
		{"u", Up, false},
		{"d", Down, false},
		{"l", Left, false},
		{"r", Right, false},
		{"up", Up, false},
		{" Left ", Left, false},
		{"RIGHT", Right, false},
		{"x", "", true},
		{"", "", true},
		{"upward", "", true},
	}

	for _, tt := range tests {
		got, err := ParseDirection(tt.input)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidDirection) {
				t.Errorf("ParseDirection(%q) error = %v, want ErrInvalidDirection", tt.input, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDirection(%q) unexpected error: %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("ParseDirection(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestDirectionCode(t *testing.T) {
	codes := map[Direction]string{Up: "u", Down: "d", Left: "l", Right: "r", "sideways": ""}
	for dir, want := range codes {
		if got := dir.Code(); got != want {
			t.Errorf("%q.Code() = %q, want %q", dir, got, want)
		}
	}
}

func TestNewGame(t *testing.T) {
	rng := &fakeRand{ints: []int{2, 4}, floats: []float64{0.5, 0.95}}
	board := NewGame(rng)

	want := Board{0, 0, 1, 0, 0, 2}
	if board != want {
		t.Errorf("NewGame = %v, want %v", board, want)
	}
}

func TestNewGameProperties(t *testing.T) {
	rng := NewRand(7)
	ones, total := 0, 0

	for i := 0; i < 2000; i++ {
		board := NewGame(rng)
		if n := CountTiles(board); n != InitialTiles {
			t.Fatalf("NewGame placed %d tiles, want %d: %v", n, InitialTiles, board)
		}
		for _, v := range board {
			switch v {
			case 0:
			case 1:
				ones++
				total++
			case 2:
				total++
			default:
				t.Fatalf("NewGame produced value %d: %v", v, board)
			}
		}
	}

	ratio := float64(ones) / float64(total)
	if ratio < 0.87 || ratio > 0.93 {
		t.Errorf("fraction of 2-tiles = %.3f, want about 0.9", ratio)
	}
}

func TestSlide(t *testing.T) {
	board := Board{
		1, 1, 0, 0,
		2, 0, 2, 0,
		1, 1, 1, 1,
		0, 0, 0, 1,
	}

	tests := []struct {
		dir  Direction
		want Board
	}{
		{Left, Board{
			2, 0, 0, 0,
			3, 0, 0, 0,
			2, 2, 0, 0,
			1, 0, 0, 0,
		}},
		{Right, Board{
			0, 0, 0, 2,
			0, 0, 0, 3,
			0, 0, 2, 2,
			0, 0, 0, 1,
		}},
		{Up, Board{
			1, 2, 2, 2,
			2, 0, 1, 0,
			1, 0, 0, 0,
			0, 0, 0, 0,
		}},
		{Down, Board{
			0, 0, 0, 0,
			1, 0, 0, 0,
			2, 0, 2, 0,
			1, 2, 1, 2,
		}},
	}

	for _, tt := range tests {
		t.Run(string(tt.dir), func(t *testing.T) {
			got, changed, err := Slide(board, tt.dir)
			if err != nil {
				t.Fatalf("Slide returned error: %v", err)
			}
			if !changed {
				t.Error("Slide should report a change")
			}
			if got != tt.want {
				t.Errorf("Slide(%s) =\n%v\nwant\n%v", tt.dir, Rows(got), Rows(tt.want))
			}
		})
	}
}

func TestApplyMoveEndToEnd(t *testing.T) {
	board := Board{0, 0, 1, 0, 0, 2, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}

	slid, changed, err := Slide(board, Left)
	if err != nil || !changed {
		t.Fatalf("Slide(left) changed=%v err=%v", changed, err)
	}
	wantSlid := Board{1, 0, 0, 0, 2, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	if slid != wantSlid {
		t.Fatalf("pre-spawn board = %v, want %v", slid, wantSlid)
	}

	// empty cells after the slide: 1,2,3,5,...; pick the first, draw a 2
	rng := &fakeRand{ints: []int{0}, floats: []float64{0.3}}
	outcome, err := ApplyMove(board, Left, rng)
	if err != nil {
		t.Fatalf("ApplyMove returned error: %v", err)
	}
	if !outcome.Changed {
		t.Fatal("expected a change")
	}
	if outcome.Spawned == nil || *outcome.Spawned != (Spawn{Index: 1, Value: 1}) {
		t.Fatalf("Spawned = %+v, want index 1 value 1", outcome.Spawned)
	}

	want := wantSlid
	want[1] = 1
	if outcome.Board != want {
		t.Errorf("board = %v, want %v", outcome.Board, want)
	}

	// the input board is a value and must be untouched
	if board[2] != 1 || board[5] != 2 {
		t.Errorf("input board was modified: %v", board)
	}
}

func TestApplyMoveSpawnsFour(t *testing.T) {
	board := Board{0, 0, 1, 0, 0, 2}
	rng := &fakeRand{ints: []int{13}, floats: []float64{0.9}}

	outcome, err := ApplyMove(board, Left, rng)
	if err != nil {
		t.Fatalf("ApplyMove returned error: %v", err)
	}
	if outcome.Spawned == nil || outcome.Spawned.Value != 2 {
		t.Fatalf("expected a 4-tile spawn, got %+v", outcome.Spawned)
	}
	if outcome.Spawned.Index != 15 {
		t.Errorf("spawn index = %d, want 15 (last empty cell)", outcome.Spawned.Index)
	}
}

func TestApplyMoveNoOp(t *testing.T) {
	// compacted upward, no equal neighbours in any column
	board := Board{
		1, 2, 3, 4,
		2, 3, 4, 5,
		0, 4, 0, 6,
		0, 0, 0, 0,
	}
	rng := &fakeRand{ints: []int{0}, floats: []float64{0}}

	outcome, err := ApplyMove(board, Up, rng)
	if err != nil {
		t.Fatalf("ApplyMove returned error: %v", err)
	}
	if outcome.Changed {
		t.Error("expected no change")
	}
	if outcome.Spawned != nil {
		t.Errorf("expected no spawn, got %+v", outcome.Spawned)
	}
	if outcome.Board != board {
		t.Errorf("board = %v, want %v", outcome.Board, board)
	}
	if len(rng.ints) != 1 || len(rng.floats) != 1 {
		t.Error("a no-op move must not consume randomness")
	}
}

func TestApplyMoveInvalidDirection(t *testing.T) {
	board := Board{1}
	outcome, err := ApplyMove(board, Direction("sideways"), &fakeRand{})
	if !errors.Is(err, ErrInvalidDirection) {
		t.Fatalf("error = %v, want ErrInvalidDirection", err)
	}
	if outcome.Board != board {
		t.Error("board should be returned unchanged on error")
	}
}

func TestApplyMoveProperties(t *testing.T) {
	rng := NewRand(42)

	for trial := 0; trial < 500; trial++ {
		var board Board
		for i := range board {
			if rng.IntN(3) > 0 {
				board[i] = rng.IntN(5)
			}
		}

		for _, dir := range Directions {
			slidA, _, _ := Slide(board, dir)
			slidB, _, _ := Slide(board, dir)
			if slidA != slidB {
				t.Fatalf("Slide is not deterministic for %v %s", board, dir)
			}

			outcome, err := ApplyMove(board, dir, rng)
			if err != nil {
				t.Fatalf("ApplyMove error: %v", err)
			}

			if !outcome.Changed {
				if outcome.Board != board {
					t.Fatalf("unchanged move altered board %v -> %v", board, outcome.Board)
				}
				continue
			}

			if CountTiles(slidA) > CountTiles(board) {
				t.Fatalf("slide increased tile count: %v -> %v", board, slidA)
			}
			if CountTiles(outcome.Board) != CountTiles(slidA)+1 {
				t.Fatalf("expected exactly one spawned tile: %v -> %v", slidA, outcome.Board)
			}

			added := TileSum(outcome.Board) - TileSum(board)
			if added != 2 && added != 4 {
				t.Fatalf("tile sum grew by %d, want 2 or 4 (%v %s)", added, board, dir)
			}

			// apart from the spawned cell, the result equals the slide
			expected := slidA
			expected[outcome.Spawned.Index] = outcome.Spawned.Value
			if outcome.Board != expected {
				t.Fatalf("ApplyMove = %v, want slide %v plus spawn %+v", outcome.Board, slidA, *outcome.Spawned)
			}
		}
	}
}

func TestSpawnTileFullBoard(t *testing.T) {
	var board Board
	for i := range board {
		board[i] = i%2 + 1
	}
	if _, ok := SpawnTile(&board, &fakeRand{}); ok {
		t.Error("SpawnTile should fail on a full board")
	}
}
