// Package board implements the 8x8 bitboard primitives and board geometry
// shared by the flip-table generators.
package board

import "fmt"

// Square represents a square on the board (0-63).
// Row-major: A1=0, H1=7, A8=56, H8=63. Row 0 is the top row in Othello
// notation, so A1 is the top-left corner.
type Square uint8

// Square constants for all 64 squares.
const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
	NoSquare Square = 64
)

// Col returns the column of the square (0-7, where 0=a, 7=h).
func (sq Square) Col() int {
	return int(sq) & 7
}

// Row returns the row of the square (0-7, where 0=1, 7=8).
func (sq Square) Row() int {
	return int(sq) >> 3
}

// String returns the coordinate of the square (e.g., "d3").
func (sq Square) String() string {
	if sq >= NoSquare {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+sq.Col(), '1'+sq.Row())
}

// NewSquare creates a square from column and row (0-indexed).
func NewSquare(col, row int) Square {
	return Square(row*8 + col)
}

// ParseSquare parses a coordinate (e.g., "d3") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("invalid square: %s", s)
	}

	col := int(s[0] - 'a')
	row := int(s[1] - '1')

	if col < 0 || col > 7 || row < 0 || row > 7 {
		return NoSquare, fmt.Errorf("invalid square: %s", s)
	}

	return NewSquare(col, row), nil
}

// IsValid returns true if the square is a valid board square (0-63).
func (sq Square) IsValid() bool {
	return sq < NoSquare
}
