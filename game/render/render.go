// Package render turns a board into the HTML tile markup served at /game.
//
// Each of the 16 cells becomes one element in row-major order. Empty cells
// carry the tile-empty class and no text; a tile carries a class named after
// its stored exponent (tile-1 for a 2, tile-11 for a 2048) and shows its face
// value:
//
//	<div class="tile tile-empty"></div>
//	<div class="tile tile-1">2</div>
package render

import (
	"bytes"
	"html/template"
	"io"

	"github.com/wricardo/mcp-training/game2048/game/engine"
)

// Cell is the view of one board cell used by the template
type Cell struct {
	Exponent int
	Value    int
}

// Empty reports whether the cell holds no tile
func (c Cell) Empty() bool {
	return c.Exponent == 0
}

var tilesTemplate = template.Must(template.New("tiles").Parse(
	`{{range .}}{{if .Empty}}<div class="tile tile-empty"></div>{{else}}<div class="tile tile-{{.Exponent}}">{{.Value}}</div>{{end}}
{{end}}`))

// Cells converts a board into template cells.
func Cells(b engine.Board) []Cell {
	cells := make([]Cell, len(b))
	for i, exp := range b {
		cells[i] = Cell{Exponent: exp, Value: engine.TileValue(exp)}
	}
	return cells
}

// WriteTiles writes the tile markup for a board.
func WriteTiles(w io.Writer, b engine.Board) error {
	return tilesTemplate.Execute(w, Cells(b))
}

// Tiles returns the tile markup for a board.
func Tiles(b engine.Board) string {
	var buf bytes.Buffer
	if err := WriteTiles(&buf, b); err != nil {
		// the template only formats ints
		panic(err)
	}
	return buf.String()
}
