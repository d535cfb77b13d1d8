package board

import "fmt"

// Diagonal offsets covered by the flip tables. Index CenterDiagonal is the
// main diagonal (or anti-diagonal); each step away shifts the line one row.
// Diagonals shorter than three squares can never hold a flip and are not
// tabulated.
const (
	NumDiagonals   = 11
	CenterDiagonal = 5
)

// SignedShift shifts b left by s bits when s is positive and right by -s
// bits otherwise. Shift amounts are taken modulo 64.
func SignedShift(b Bitboard, s int) Bitboard {
	if s > 0 {
		return b << (uint(s) % 64)
	}
	return b >> (uint(-s) % 64)
}

// Line extraction gathers the bits of one line into the low byte with a
// single multiply. Every multiplier below places each source bit in a
// distinct product bit, so no partial products carry into the result byte.

// RowPattern returns the occupancy of row as an 8-bit pattern, bit i = column i.
func RowPattern(b Bitboard, row int) uint8 {
	checkLine(row, 8)
	return uint8(b >> (uint(row) * 8))
}

// ColumnPattern returns the occupancy of col as an 8-bit pattern, bit i = row i.
func ColumnPattern(b Bitboard, col int) uint8 {
	checkLine(col, 8)
	// The anti-diagonal mask doubles as the file-to-row gather multiplier.
	return uint8((((b >> uint(col)) & FileA) * MaskA8H1) >> 56)
}

// D9Pattern returns the occupancy of the A1-H8 direction diagonal with the
// given offset index, bit i = column i.
func D9Pattern(b Bitboard, index int) uint8 {
	checkLine(index, NumDiagonals)
	b = SignedShift(b, -(index-CenterDiagonal)*8)
	return uint8(((b & MaskA1H8) * FileA) >> 56)
}

// D7Pattern returns the occupancy of the A8-H1 direction diagonal with the
// given offset index, bit i = column i.
func D7Pattern(b Bitboard, index int) uint8 {
	checkLine(index, NumDiagonals)
	b = SignedShift(b, -(index-CenterDiagonal)*8)
	return uint8(((b & MaskA8H1) * FileA) >> 56)
}

// D9Index returns the offset index of the A1-H8 direction diagonal through
// sq. ok is false for the short corner diagonals that are not tabulated.
func D9Index(sq Square) (index int, ok bool) {
	index = sq.Row() - sq.Col() + CenterDiagonal
	return index, index >= 0 && index < NumDiagonals
}

// D7Index returns the offset index of the A8-H1 direction diagonal through
// sq. ok is false for the short corner diagonals that are not tabulated.
func D7Index(sq Square) (index int, ok bool) {
	index = sq.Row() + sq.Col() - 2
	return index, index >= 0 && index < NumDiagonals
}

func checkLine(index, n int) {
	if index < 0 || index >= n {
		panic(fmt.Sprintf("board: line index %d out of range [0,%d)", index, n))
	}
}
