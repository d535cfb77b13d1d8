package flips

import (
	"fmt"
	"math/bits"

	"github.com/vladpetric/ntest/internal/board"
)

// Orientation identifies one of the four line families on the board.
type Orientation int

const (
	Row Orientation = iota
	Column
	D9 // A1-H8 direction diagonals
	D7 // A8-H1 direction diagonals
)

// Orientations lists the line families in table emission order.
var Orientations = [...]Orientation{Row, Column, D9, D7}

type orientationInfo struct {
	name    string
	indices int
	flip    func(index int, pattern uint8) board.Bitboard
}

var orientations = [...]orientationInfo{
	Row:    {"row", LineLen, RowFlip},
	Column: {"column", LineLen, ColumnFlip},
	D9:     {"d9", board.NumDiagonals, D9Flip},
	D7:     {"d7", board.NumDiagonals, D7Flip},
}

func (o Orientation) String() string {
	if o < Row || o > D7 {
		return fmt.Sprintf("Orientation(%d)", int(o))
	}
	return orientations[o].name
}

// Indices returns the number of lines of this orientation that are tabulated.
func (o Orientation) Indices() int {
	return orientations[o].indices
}

// Flip places pattern on line index of orientation o.
func Flip(o Orientation, index int, pattern uint8) board.Bitboard {
	return orientations[o].flip(index, pattern)
}

// RowFlip places pattern on row index, bit i on column i.
func RowFlip(index int, pattern uint8) board.Bitboard {
	checkIndex(index, LineLen)
	return board.Bitboard(pattern) << (uint(index*8) % 64)
}

// ColumnFlip places pattern on column index, bit i on row i.
func ColumnFlip(index int, pattern uint8) board.Bitboard {
	checkIndex(index, LineLen)
	// Multiplying by the main diagonal drops bit i on column h at row 7-i
	// with no two partial products overlapping; the byte swap then puts it
	// on row i.
	spread := (board.Bitboard(pattern) * board.MaskA1H8) & board.FileH
	return board.Bitboard(bits.ReverseBytes64(uint64(spread))) >> uint(7-index)
}

// D9Flip places pattern on the A1-H8 direction diagonal with offset index,
// bit i on column i. Index board.CenterDiagonal is the main diagonal; each
// step up or down moves the line one row toward row 8 or row 1. Squares
// pushed off the board are dropped.
func D9Flip(index int, pattern uint8) board.Bitboard {
	checkIndex(index, board.NumDiagonals)
	return diagonalFlip(board.MaskA1H8, index, pattern)
}

// D7Flip is D9Flip for the A8-H1 direction diagonals.
func D7Flip(index int, pattern uint8) board.Bitboard {
	checkIndex(index, board.NumDiagonals)
	return diagonalFlip(board.MaskA8H1, index, pattern)
}

func diagonalFlip(lineMask board.Bitboard, index int, pattern uint8) board.Bitboard {
	// Copy the pattern into every row, keep one bit per row along the line.
	line := (board.Bitboard(pattern) * board.FileA) & lineMask
	return board.SignedShift(line, (index-board.CenterDiagonal)*8)
}
