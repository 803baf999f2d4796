package engine

import (
	"testing"
)

func TestResolveLine(t *testing.T) {
	tests := []struct {
		name     string
		input    Line
		expected Line
	}{
		{"single tile slides", Line{0, 0, 1, 0}, Line{1, 0, 0, 0}},
		{"merge nearest the edge first", Line{1, 1, 1, 0}, Line{2, 1, 0, 0}},
		{"two disjoint pairs", Line{1, 1, 1, 1}, Line{2, 2, 0, 0}},
		{"two different pairs", Line{1, 1, 2, 2}, Line{2, 3, 0, 0}},
		{"merge across a gap", Line{1, 0, 1, 0}, Line{2, 0, 0, 0}},
		{"alternating stays put", Line{1, 2, 1, 2}, Line{1, 2, 1, 2}},
		{"empty line", Line{0, 0, 0, 0}, Line{0, 0, 0, 0}},
		{"full gap merge", Line{3, 0, 0, 3}, Line{4, 0, 0, 0}},
		{"merged tile is not merged again", Line{1, 1, 2, 0}, Line{2, 2, 0, 0}},
		{"trailing pair", Line{0, 2, 5, 5}, Line{2, 6, 0, 0}},
		{"three equal after gap", Line{0, 4, 4, 4}, Line{5, 4, 0, 0}},
		{"max tile merge", Line{16, 16, 0, 0}, Line{17, 0, 0, 0}},
		{"already compact", Line{3, 2, 1, 0}, Line{3, 2, 1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ResolveLine(tt.input)
			if result != tt.expected {
				t.Errorf("ResolveLine(%v) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestResolveLineDoesNotMutateInput(t *testing.T) {
	input := Line{1, 1, 0, 2}
	_ = ResolveLine(input)
	if input != (Line{1, 1, 0, 2}) {
		t.Errorf("input was modified: %v", input)
	}
}

func TestResolveLineStableOnResolvedOutput(t *testing.T) {
	// Once no equal neighbours remain, resolving again is a no-op.
	forEachLine(t, 4, func(in Line) {
		out := ResolveLine(in)
		if hasEqualNeighbours(out) {
			return
		}
		if again := ResolveLine(out); again != out {
			t.Errorf("ResolveLine(ResolveLine(%v)) = %v, want %v", in, again, out)
		}
	})
}

func TestResolveLineInvariants(t *testing.T) {
	forEachLine(t, 4, func(in Line) {
		out := ResolveLine(in)

		// zeros trail
		seenZero := false
		for _, v := range out {
			if v == 0 {
				seenZero = true
			} else if seenZero {
				t.Fatalf("ResolveLine(%v) = %v has a tile after an empty cell", in, out)
			}
		}

		// mass is preserved
		if lineSum(in) != lineSum(out) {
			t.Fatalf("ResolveLine(%v) = %v changed tile sum %d -> %d", in, out, lineSum(in), lineSum(out))
		}

		// tiles never increase
		if lineCount(out) > lineCount(in) {
			t.Fatalf("ResolveLine(%v) = %v increased tile count", in, out)
		}
	})
}

// forEachLine calls fn for every line with cell values in [0, maxVal].
func forEachLine(t *testing.T, maxVal int, fn func(Line)) {
	t.Helper()
	var line Line
	var rec func(pos int)
	rec = func(pos int) {
		if pos == BoardSide {
			fn(line)
			return
		}
		for v := 0; v <= maxVal; v++ {
			line[pos] = v
			rec(pos + 1)
		}
	}
	rec(0)
}

func hasEqualNeighbours(l Line) bool {
	for i := 0; i < BoardSide-1; i++ {
		if l[i] != 0 && l[i] == l[i+1] {
			return true
		}
	}
	return false
}

func lineSum(l Line) int {
	sum := 0
	for _, v := range l {
		sum += TileValue(v)
	}
	return sum
}

func lineCount(l Line) int {
	n := 0
	for _, v := range l {
		if v != 0 {
			n++
		}
	}
	return n
}
