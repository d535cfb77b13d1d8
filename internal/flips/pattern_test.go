package flips

import (
	"math/bits"
	"testing"
)

func isSet(p uint8, i int) bool {
	return p&(1<<i) != 0
}

func TestOutside(t *testing.T) {
	tests := []struct {
		index   int
		pattern uint8
		want    uint8
	}{
		{3, 0b00001110, 0b00010001},
		{3, 0b00000000, 0b00010100},
		{0, 0b11111111, 0},
		{7, 0b01111111, 0},
		{0, 0b00000110, 0b00001000},
		{7, 0b10011110, 0b01000000},
		{4, 0b11101111, 0},
	}

	for _, tc := range tests {
		if got := Outside(tc.index, tc.pattern); got != tc.want {
			t.Errorf("Outside(%d, %08b) = %08b, want %08b", tc.index, tc.pattern, got, tc.want)
		}
	}
}

func TestOutsideProperties(t *testing.T) {
	for index := 0; index < LineLen; index++ {
		for p := 0; p < NumPatterns; p++ {
			pattern := uint8(p)
			out := Outside(index, pattern)

			if bits.OnesCount8(out) > 2 {
				t.Fatalf("Outside(%d, %08b) = %08b has more than two bits", index, pattern, out)
			}
			if isSet(out, index) {
				t.Fatalf("Outside(%d, %08b) = %08b contains the index", index, pattern, out)
			}

			left := out & (1<<index - 1)
			right := out &^ (1<<(index+1) - 1)

			// Every square between the index and the recorded gap (or the
			// line edge when no gap was recorded) must be set.
			stop := -1
			if left != 0 {
				stop = bits.TrailingZeros8(left)
				if bits.OnesCount8(left) != 1 || isSet(pattern, stop) {
					t.Fatalf("Outside(%d, %08b): bad left gap %08b", index, pattern, left)
				}
			}
			for i := stop + 1; i < index; i++ {
				if !isSet(pattern, i) {
					t.Fatalf("Outside(%d, %08b): unset bit %d skipped on the left", index, pattern, i)
				}
			}

			stop = LineLen
			if right != 0 {
				stop = bits.TrailingZeros8(right)
				if bits.OnesCount8(right) != 1 || isSet(pattern, stop) {
					t.Fatalf("Outside(%d, %08b): bad right gap %08b", index, pattern, right)
				}
			}
			for i := index + 1; i < stop; i++ {
				if !isSet(pattern, i) {
					t.Fatalf("Outside(%d, %08b): unset bit %d skipped on the right", index, pattern, i)
				}
			}
		}
	}
}

func TestCountInside(t *testing.T) {
	tests := []struct {
		index      int
		pattern    uint8
		wantCount  int
		wantInside uint8
	}{
		// Bound on the left only; the right side runs off the edge.
		{3, 0b00001001, 2, 0b00000110},
		// Bound on both sides.
		{3, 0b01001001, 4, 0b00110110},
		// Adjacent own discs flip nothing.
		{3, 0b00011100, 0, 0},
		// No bound anywhere.
		{3, 0b00001000, 0, 0},
		{0, 0b10000001, 6, 0b01111110},
		{7, 0b10000001, 6, 0b01111110},
		// Index bit itself is not consulted.
		{5, 0b00000001, 4, 0b00011110},
	}

	for _, tc := range tests {
		count, inside := CountInside(tc.index, tc.pattern)
		if count != tc.wantCount || inside != tc.wantInside {
			t.Errorf("CountInside(%d, %08b) = %d, %08b, want %d, %08b",
				tc.index, tc.pattern, count, inside, tc.wantCount, tc.wantInside)
		}
	}
}

func TestCountInsideProperties(t *testing.T) {
	for index := 0; index < LineLen; index++ {
		for p := 0; p < NumPatterns; p++ {
			pattern := uint8(p)
			count, inside := CountInside(index, pattern)

			if count < 0 || count > 6 {
				t.Fatalf("CountInside(%d, %08b): count %d out of [0,6]", index, pattern, count)
			}
			if bits.OnesCount8(inside) != count {
				t.Fatalf("CountInside(%d, %08b): count %d but inside %08b", index, pattern, count, inside)
			}
			if inside&pattern != 0 {
				t.Fatalf("CountInside(%d, %08b): inside %08b overlaps set bits", index, pattern, inside)
			}
			if isSet(inside, index) {
				t.Fatalf("CountInside(%d, %08b): inside %08b contains the index", index, pattern, inside)
			}
		}
	}
}

func TestPatternIndexPanics(t *testing.T) {
	for _, index := range []int{-1, LineLen} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Outside(%d, 0) should panic", index)
				}
			}()
			Outside(index, 0)
		}()
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("CountInside(%d, 0) should panic", index)
				}
			}()
			CountInside(index, 0)
		}()
	}
}
