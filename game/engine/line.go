package engine

// ResolveLine slides and merges one line toward index 0.
//
// It compacts the non-zero cells, merges equal neighbours in a single
// left-to-right scan, then compacts again. A merge consumes both operands,
// so [1 1 1 0] becomes [2 1 0 0] and [1 1 1 1] becomes [2 2 0 0].
func ResolveLine(line Line) Line {
	line = compactLine(line)
	line = mergeLine(line)
	return compactLine(line)
}

// compactLine moves every non-zero cell toward index 0, keeping their order.
func compactLine(line Line) Line {
	var out Line
	n := 0
	for _, v := range line {
		if v != 0 {
			out[n] = v
			n++
		}
	}
	return out
}

// mergeLine merges equal neighbours left to right. After a merge at (i, i+1)
// the scan continues at i+1, which is now 0 and cannot merge again.
func mergeLine(line Line) Line {
	for i := 0; i < BoardSide-1; i++ {
		if line[i] != 0 && line[i] == line[i+1] {
			line[i]++
			line[i+1] = 0
		}
	}
	return line
}
