package board

// Pre-computed neighbor masks, used by the move generator to prune candidate
// squares that touch no disc.
var neighbors [64]Bitboard

func init() {
	initNeighbors()
}

func initNeighbors() {
	for sq := A1; sq <= H8; sq++ {
		m := SquareBB(sq)

		// Widen along the row first so the row shifts below pick up the
		// diagonal neighbors as well.
		if sq.Col() > 0 {
			m |= m >> 1
		}
		if sq.Col() < 7 {
			m |= m << 1
		}
		m |= (m >> 8) | (m << 8)

		neighbors[sq] = m &^ SquareBB(sq)
	}
}

// Neighbors returns the mask of squares adjacent to sq.
func Neighbors(sq Square) Bitboard {
	return neighbors[sq]
}

// NeighborTable returns a copy of all 64 neighbor masks, ordered by square.
func NeighborTable() [64]Bitboard {
	return neighbors
}
