package board

import (
	"fmt"
	"math/bits"
	"strings"
)

// Bitboard represents a 64-bit board where each bit corresponds to a square.
// Bit 0 = A1, Bit 7 = H1, Bit 56 = A8, Bit 63 = H8.
type Bitboard uint64

// Line masks
const (
	FileA Bitboard = 0x0101010101010101
	FileH Bitboard = 0x8080808080808080
	Row1  Bitboard = 0x00000000000000FF

	// MaskA1H8 is the main diagonal, one square per row at column == row.
	MaskA1H8 Bitboard = 0x8040201008040201
	// MaskA8H1 is the anti-diagonal, one square per row at column == 7-row.
	MaskA8H1 Bitboard = 0x0102040810204080
)

// Special masks
const (
	Empty    Bitboard = 0
	Universe Bitboard = 0xFFFFFFFFFFFFFFFF

	NotFileA Bitboard = ^FileA
	NotFileH Bitboard = ^FileH
)

// BitSet reports whether bit i of v is 1.
func BitSet(i int, v uint64) bool {
	if i < 0 {
		panic(fmt.Sprintf("board: negative bit index %d", i))
	}
	return (v>>uint(i))&1 == 1
}

// BitClear reports whether bit i of v is 0.
func BitClear(i int, v uint64) bool {
	if i < 0 {
		panic(fmt.Sprintf("board: negative bit index %d", i))
	}
	return (v>>uint(i))&1 == 0
}

// SquareBB returns a bitboard with only the given square set.
func SquareBB(sq Square) Bitboard {
	return 1 << sq
}

// Set sets a bit at the given square.
func (b Bitboard) Set(sq Square) Bitboard {
	return b | (1 << sq)
}

// Clear clears a bit at the given square.
func (b Bitboard) Clear(sq Square) Bitboard {
	return b &^ (1 << sq)
}

// IsSet returns true if the bit at the given square is set.
func (b Bitboard) IsSet(sq Square) bool {
	return b&(1<<sq) != 0
}

// PopCount returns the number of set bits (population count).
func (b Bitboard) PopCount() int {
	return bits.OnesCount64(uint64(b))
}

// LSB returns the least significant bit (lowest square index).
func (b Bitboard) LSB() Square {
	if b == 0 {
		return NoSquare
	}
	return Square(bits.TrailingZeros64(uint64(b)))
}

// PopLSB removes and returns the least significant bit.
func (b *Bitboard) PopLSB() Square {
	sq := b.LSB()
	*b &= *b - 1
	return sq
}

// North shifts the bitboard one row toward row 1.
func (b Bitboard) North() Bitboard {
	return b >> 8
}

// South shifts the bitboard one row toward row 8.
func (b Bitboard) South() Bitboard {
	return b << 8
}

// East shifts the bitboard one column toward column h.
func (b Bitboard) East() Bitboard {
	return (b << 1) & NotFileA
}

// West shifts the bitboard one column toward column a.
func (b Bitboard) West() Bitboard {
	return (b >> 1) & NotFileH
}

// String returns a visual representation of the bitboard, row 1 first.
func (b Bitboard) String() string {
	var sb strings.Builder
	sb.WriteString("  a b c d e f g h\n")
	for row := 0; row < 8; row++ {
		fmt.Fprintf(&sb, "%d ", row+1)
		for col := 0; col < 8; col++ {
			if b.IsSet(NewSquare(col, row)) {
				sb.WriteString("1 ")
			} else {
				sb.WriteString(". ")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// ForEach calls the function for each set square.
func (b Bitboard) ForEach(f func(Square)) {
	for b != 0 {
		sq := b.PopLSB()
		f(sq)
	}
}

// Squares returns a slice of all squares that are set.
func (b Bitboard) Squares() []Square {
	squares := make([]Square, 0, b.PopCount())
	for b != 0 {
		squares = append(squares, b.PopLSB())
	}
	return squares
}
