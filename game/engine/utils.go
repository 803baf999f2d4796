package engine

// EmptyCells returns the indices of all empty cells in ascending order.
func EmptyCells(b Board) []int {
	cells := make([]int, 0, BoardCells)
	for i, v := range b {
		if v == 0 {
			cells = append(cells, i)
		}
	}
	return cells
}

// CountTiles counts the non-empty cells
func CountTiles(b Board) int {
	return BoardCells - len(EmptyCells(b))
}

// TileSum returns the sum of the face values (2^k) of all tiles.
func TileSum(b Board) int {
	sum := 0
	for _, v := range b {
		if v > 0 {
			sum += TileValue(v)
		}
	}
	return sum
}

// TileValue converts a stored exponent into the number shown on the tile.
// Exponents above MaxExponent are clamped to it.
func TileValue(exp int) int {
	if exp <= 0 {
		return 0
	}
	return 1 << min(exp, MaxExponent)
}

// MaxTile returns the largest exponent on the board.
func MaxTile(b Board) int {
	maxVal := 0
	for _, v := range b {
		if v > maxVal {
			maxVal = v
		}
	}
	return maxVal
}

// Rows splits the board into its four rows, top to bottom.
func Rows(b Board) [BoardSide]Line {
	var rows [BoardSide]Line
	for i, v := range b {
		rows[i/BoardSide][i%BoardSide] = v
	}
	return rows
}

// CanSlide reports whether a move in direction d would change the board.
func CanSlide(b Board, d Direction) bool {
	_, changed, err := Slide(b, d)
	return err == nil && changed
}
