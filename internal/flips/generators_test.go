package flips

import (
	"testing"

	"github.com/vladpetric/ntest/internal/board"
)

// columnMagic is the single-multiply file spread that ColumnFlip replaces.
// Its partial products collide when pattern bits 0 and 7 are both set.
const columnMagic = 0x02040810204081

func TestRowFlip(t *testing.T) {
	if got := RowFlip(0, 0b00000001); got != 0x1 {
		t.Errorf("RowFlip(0, 1) = %x, want 1", uint64(got))
	}
	if got := RowFlip(3, 0b00000001); got != 0x1<<24 {
		t.Errorf("RowFlip(3, 1) = %x, want %x", uint64(got), uint64(1)<<24)
	}

	for index := 0; index < LineLen; index++ {
		for p := 0; p < NumPatterns; p++ {
			got := RowFlip(index, uint8(p))
			if uint8(got>>(index*8)) != uint8(p) {
				t.Fatalf("RowFlip(%d, %08b) = %x: pattern not at row offset", index, p, uint64(got))
			}
			if got&^(board.Row1<<(index*8)) != 0 {
				t.Fatalf("RowFlip(%d, %08b) = %x: bits outside the row", index, p, uint64(got))
			}
			if board.RowPattern(got, index) != uint8(p) {
				t.Fatalf("RowPattern(RowFlip(%d, %08b)) mismatch", index, p)
			}
		}
	}
}

func TestColumnFlip(t *testing.T) {
	for index := 0; index < LineLen; index++ {
		for p := 0; p < NumPatterns; p++ {
			got := ColumnFlip(index, uint8(p))

			var want board.Bitboard
			for i := 0; i < LineLen; i++ {
				if p&(1<<i) != 0 {
					want |= board.SquareBB(board.NewSquare(index, i))
				}
			}
			if got != want {
				t.Fatalf("ColumnFlip(%d, %08b) = %x, want %x", index, p, uint64(got), uint64(want))
			}
			if board.ColumnPattern(got, index) != uint8(p) {
				t.Fatalf("ColumnPattern(ColumnFlip(%d, %08b)) mismatch", index, p)
			}

			// Without the colliding pair the single multiply agrees.
			if p&0x81 != 0x81 {
				magic := ((board.Bitboard(p) * columnMagic) & board.FileA) << index
				if got != magic {
					t.Fatalf("ColumnFlip(%d, %08b) = %x, single multiply gives %x",
						index, p, uint64(got), uint64(magic))
				}
			}
		}
	}

	// a1 and a8 only; the single multiply would also set a2.
	if got, want := ColumnFlip(0, 0x81), board.SquareBB(board.A1)|board.SquareBB(board.A8); got != want {
		t.Errorf("ColumnFlip(0, 0x81) = %x, want %x", uint64(got), uint64(want))
	}
	if magic := (board.Bitboard(0x81) * columnMagic) & board.FileA; !magic.IsSet(board.A2) {
		t.Errorf("single multiply no longer carries into a2: %x", uint64(magic))
	}
}

// survivors returns the pattern bits of a diagonal that stay on the board
// after the diagonal is shifted to offset index.
func survivors(o Orientation, index int) uint8 {
	k := index - board.CenterDiagonal
	up := (o == D9) == (k > 0)
	if k < 0 {
		k = -k
	}
	if up {
		return 0xFF >> k
	}
	return 0xFF << k
}

func TestDiagonalFlipCenter(t *testing.T) {
	for p := 0; p < NumPatterns; p++ {
		var want9, want7 board.Bitboard
		for i := 0; i < LineLen; i++ {
			if p&(1<<i) != 0 {
				want9 |= board.SquareBB(board.NewSquare(i, i))
				want7 |= board.SquareBB(board.NewSquare(i, 7-i))
			}
		}
		if got := D9Flip(board.CenterDiagonal, uint8(p)); got != want9 {
			t.Fatalf("D9Flip(center, %08b) = %x, want %x", p, uint64(got), uint64(want9))
		}
		if got := D7Flip(board.CenterDiagonal, uint8(p)); got != want7 {
			t.Fatalf("D7Flip(center, %08b) = %x, want %x", p, uint64(got), uint64(want7))
		}
	}

	if got := D9Flip(board.CenterDiagonal, 0xFF); got != board.MaskA1H8 {
		t.Errorf("D9Flip(center, 0xFF) = %x, want main diagonal", uint64(got))
	}
	if got := D7Flip(board.CenterDiagonal, 0xFF); got != board.MaskA8H1 {
		t.Errorf("D7Flip(center, 0xFF) = %x, want anti-diagonal", uint64(got))
	}
}

func TestDiagonalFlipOffsets(t *testing.T) {
	tests := []struct {
		o       Orientation
		extract func(board.Bitboard, int) uint8
		index   func(board.Square) (int, bool)
	}{
		{D9, board.D9Pattern, board.D9Index},
		{D7, board.D7Pattern, board.D7Index},
	}

	for _, tc := range tests {
		t.Run(tc.o.String(), func(t *testing.T) {
			for index := 0; index < board.NumDiagonals; index++ {
				keep := survivors(tc.o, index)
				for p := 0; p < NumPatterns; p++ {
					got := Flip(tc.o, index, uint8(p))

					if back := tc.extract(got, index); back != uint8(p)&keep {
						t.Fatalf("index %d pattern %08b: extracted %08b, want %08b",
							index, p, back, uint8(p)&keep)
					}
					if got.PopCount() != popcount(uint8(p)&keep) {
						t.Fatalf("index %d pattern %08b: %d bits set, want %d",
							index, p, got.PopCount(), popcount(uint8(p)&keep))
					}
					got.ForEach(func(sq board.Square) {
						i, ok := tc.index(sq)
						if !ok || i != index {
							t.Fatalf("index %d pattern %08b: %s is on diagonal %d", index, p, sq, i)
						}
						if p&(1<<sq.Col()) == 0 {
							t.Fatalf("index %d pattern %08b: %s set for a clear bit", index, p, sq)
						}
					})
				}
			}
		})
	}

	// Offsets one row from the center.
	if got, want := D9Flip(6, 0b00000001), board.SquareBB(board.A2); got != want {
		t.Errorf("D9Flip(6, 1) = %x, want a2", uint64(got))
	}
	if got, want := D9Flip(4, 0b00000010), board.SquareBB(board.B1); got != want {
		t.Errorf("D9Flip(4, 2) = %x, want b1", uint64(got))
	}
	if got, want := D7Flip(4, 0b00000001), board.SquareBB(board.A7); got != want {
		t.Errorf("D7Flip(4, 1) = %x, want a7", uint64(got))
	}
}

func popcount(p uint8) int {
	return board.Bitboard(p).PopCount()
}

func TestFlipDispatch(t *testing.T) {
	funcs := map[Orientation]func(int, uint8) board.Bitboard{
		Row:    RowFlip,
		Column: ColumnFlip,
		D9:     D9Flip,
		D7:     D7Flip,
	}
	for _, o := range Orientations {
		for index := 0; index < o.Indices(); index++ {
			for p := 0; p < NumPatterns; p += 37 {
				if Flip(o, index, uint8(p)) != funcs[o](index, uint8(p)) {
					t.Errorf("Flip(%s, %d, %d) disagrees with the direct generator", o, index, p)
				}
			}
		}
	}
}

func TestOrientation(t *testing.T) {
	tests := []struct {
		o       Orientation
		name    string
		indices int
	}{
		{Row, "row", 8},
		{Column, "column", 8},
		{D9, "d9", 11},
		{D7, "d7", 11},
	}
	for _, tc := range tests {
		if tc.o.String() != tc.name || tc.o.Indices() != tc.indices {
			t.Errorf("%d: got %s/%d, want %s/%d", int(tc.o), tc.o, tc.o.Indices(), tc.name, tc.indices)
		}
	}
	if s := Orientation(9).String(); s != "Orientation(9)" {
		t.Errorf("String() of unknown orientation = %q", s)
	}
}

func TestFlipIndexPanics(t *testing.T) {
	tests := []struct {
		o     Orientation
		index int
	}{
		{Row, 8},
		{Column, -1},
		{D9, 11},
		{D7, -1},
	}
	for _, tc := range tests {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Flip(%s, %d) should panic", tc.o, tc.index)
				}
			}()
			Flip(tc.o, tc.index, 0xFF)
		}()
	}
}
