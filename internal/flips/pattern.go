// Package flips generates the per-line lookup tables that let the move
// generator resolve an Othello move with one table read per line instead of
// a scan in each direction.
//
// A line pattern is an 8-bit occupancy of one row, column, or diagonal, bit 0
// being the end of the line nearest square A1. An index is a position within
// that line.
package flips

import "fmt"

// Line geometry.
const (
	LineLen     = 8
	NumPatterns = 256
)

// Outside returns the nearest unset bit on each side of index in pattern.
// A side whose run of set bits reaches the line edge contributes nothing,
// since no capture is possible in that direction.
func Outside(index int, pattern uint8) uint8 {
	checkIndex(index, LineLen)

	var outside uint8
	for i := index - 1; i >= 0; i-- {
		if pattern&(1<<i) == 0 {
			outside |= 1 << i
			break
		}
	}
	for i := index + 1; i < LineLen; i++ {
		if pattern&(1<<i) == 0 {
			outside |= 1 << i
			break
		}
	}
	return outside
}

// CountInside returns, for a disc at index, the number of unset bits between
// it and the nearest set bit on each side, and the mask of those bits.
// A side that reaches the line edge without meeting a set bit is discarded.
func CountInside(index int, pattern uint8) (count int, inside uint8) {
	checkIndex(index, LineLen)

	var insideLeft uint8
	for i := index - 1; i >= 0; i-- {
		if pattern&(1<<i) != 0 {
			count += index - i - 1
			inside |= insideLeft
			break
		}
		insideLeft |= 1 << i
	}

	var insideRight uint8
	for i := index + 1; i < LineLen; i++ {
		if pattern&(1<<i) != 0 {
			count += i - index - 1
			inside |= insideRight
			break
		}
		insideRight |= 1 << i
	}
	return count, inside
}

func checkIndex(index, n int) {
	if index < 0 || index >= n {
		panic(fmt.Sprintf("flips: index %d out of range [0,%d)", index, n))
	}
}
