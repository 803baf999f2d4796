package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/wricardo/mcp-training/game2048/game/engine"
)

func TestTiles(t *testing.T) {
	board := engine.Board{0, 0, 1, 0, 0, 2}

	html := Tiles(board)
	lines := strings.Split(strings.TrimSuffix(html, "\n"), "\n")
	if len(lines) != engine.BoardCells {
		t.Fatalf("Expected %d tile elements, got %d:\n%s", engine.BoardCells, len(lines), html)
	}

	if lines[2] != `<div class="tile tile-1">2</div>` {
		t.Errorf("Unexpected markup for index 2: %s", lines[2])
	}
	if lines[5] != `<div class="tile tile-2">4</div>` {
		t.Errorf("Unexpected markup for index 5: %s", lines[5])
	}
	for _, i := range []int{0, 1, 3, 4, 6, 15} {
		if lines[i] != `<div class="tile tile-empty"></div>` {
			t.Errorf("Expected empty tile at index %d, got %s", i, lines[i])
		}
	}
}

func TestTilesLargeValues(t *testing.T) {
	board := engine.Board{11, 17}

	html := Tiles(board)
	if !strings.Contains(html, `<div class="tile tile-11">2048</div>`) {
		t.Errorf("Missing 2048 tile in %s", html)
	}
	if !strings.Contains(html, `<div class="tile tile-17">131072</div>`) {
		t.Errorf("Missing 131072 tile in %s", html)
	}
}

func TestWriteTilesMatchesTiles(t *testing.T) {
	board := engine.Board{3, 0, 0, 4}

	var buf bytes.Buffer
	if err := WriteTiles(&buf, board); err != nil {
		t.Fatalf("WriteTiles failed: %v", err)
	}
	if buf.String() != Tiles(board) {
		t.Error("WriteTiles and Tiles disagree")
	}
}

func TestCells(t *testing.T) {
	cells := Cells(engine.Board{0, 5})
	if !cells[0].Empty() || cells[1].Empty() {
		t.Error("Empty() is wrong")
	}
	if cells[1].Value != 32 || cells[1].Exponent != 5 {
		t.Errorf("Unexpected cell: %+v", cells[1])
	}
}
