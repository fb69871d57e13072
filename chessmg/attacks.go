package chessmg

import "sync"

// Directions indexing rays. Even/odd pairs are not opposites; see opposite.
const (
	dirN = iota
	dirS
	dirE
	dirW
	dirNE
	dirNW
	dirSE
	dirSW
)

var opposite = [8]int{dirS, dirN, dirW, dirE, dirSW, dirSE, dirNW, dirNE}

// Rays towards higher square indices; the first blocker is the LSB.
var positiveDir = [8]bool{true, false, true, false, true, true, false, false}

var (
	knightAttacks [64]Bitboard
	kingAttacks   [64]Bitboard

	// rays[sq][d] holds the squares from sq in direction d, excluding sq.
	rays [64][8]Bitboard

	between [64][64]Bitboard
	line    [64][64]Bitboard
)

var tablesOnce sync.Once

// InitTables builds every precomputed table. It is idempotent and safe to call
// from multiple goroutines; the package init calls it, so explicit calls are
// only needed by code that wants the cost paid at a known point.
func InitTables() {
	tablesOnce.Do(func() {
		initLeaperTables()
		initRays()
		initSliderTables()
		initZobrist()
	})
}

func init() {
	InitTables()
}

func initLeaperTables() {
	knightOffsets := [8][2]int{
		{2, 1}, {2, -1}, {-2, 1}, {-2, -1},
		{1, 2}, {1, -2}, {-1, 2}, {-1, -2},
	}
	kingOffsets := [8][2]int{
		{1, 0}, {-1, 0}, {0, 1}, {0, -1},
		{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
	}
	for sq := A1; sq <= H8; sq++ {
		knightAttacks[sq] = offsetMask(sq, knightOffsets[:])
		kingAttacks[sq] = offsetMask(sq, kingOffsets[:])
	}
}

// offsetMask collects the on-board targets of (rank, file) offsets from sq.
func offsetMask(sq Square, offsets [][2]int) Bitboard {
	var mask Bitboard
	for _, off := range offsets {
		r := sq.Rank() + off[0]
		f := sq.File() + off[1]
		if r >= 0 && r < 8 && f >= 0 && f < 8 {
			mask |= NewSquare(f, r).Bitboard()
		}
	}
	return mask
}

func initRays() {
	steps := [8][2]int{
		dirN: {1, 0}, dirS: {-1, 0}, dirE: {0, 1}, dirW: {0, -1},
		dirNE: {1, 1}, dirNW: {1, -1}, dirSE: {-1, 1}, dirSW: {-1, -1},
	}
	for sq := A1; sq <= H8; sq++ {
		for d, st := range steps {
			var ray Bitboard
			for r, f := sq.Rank()+st[0], sq.File()+st[1]; r >= 0 && r < 8 && f >= 0 && f < 8; r, f = r+st[0], f+st[1] {
				ray |= NewSquare(f, r).Bitboard()
			}
			rays[sq][d] = ray
		}
	}
	for a := A1; a <= H8; a++ {
		for d := 0; d < 8; d++ {
			full := rays[a][d] | rays[a][opposite[d]] | a.Bitboard()
			for t := rays[a][d]; t != 0; {
				b := popLSB(&t)
				between[a][b] = rays[a][d] &^ rays[b][d] &^ b.Bitboard()
				line[a][b] = full
			}
		}
	}
}

// slidingAttacks ray-casts from sq along the given directions, stopping at
// (and including) the first occupied square.
func slidingAttacks(sq Square, occ Bitboard, dirs []int) Bitboard {
	var attacks Bitboard
	for _, d := range dirs {
		ray := rays[sq][d]
		if blockers := ray & occ; blockers != 0 {
			var first Square
			if positiveDir[d] {
				first = blockers.LSB()
			} else {
				first = blockers.MSB()
			}
			ray &^= rays[first][d]
		}
		attacks |= ray
	}
	return attacks
}

var (
	rookDirs   = []int{dirN, dirS, dirE, dirW}
	bishopDirs = []int{dirNE, dirNW, dirSE, dirSW}
)

// KnightAttacks returns the knight jumps from sq.
func KnightAttacks(sq Square) Bitboard { return knightAttacks[sq] }

// KingAttacks returns the squares adjacent to sq.
func KingAttacks(sq Square) Bitboard { return kingAttacks[sq] }

// PawnAttacks returns the squares attacked by pawns of side c standing on pawns.
func PawnAttacks(c Color, pawns Bitboard) Bitboard {
	if c == White {
		up := pawns.North()
		return up.East() | up.West()
	}
	down := pawns.South()
	return down.East() | down.West()
}

// pawnPush returns the single-step destinations of pawns of side c.
func pawnPush(c Color, pawns Bitboard) Bitboard {
	if c == White {
		return pawns.North()
	}
	return pawns.South()
}

// BishopAttacks returns diagonal attacks from sq given the occupancy.
func BishopAttacks(sq Square, occ Bitboard) Bitboard {
	m := &bishopMagic[sq]
	return bishopTable[m.index(occ)]
}

// RookAttacks returns orthogonal attacks from sq given the occupancy.
func RookAttacks(sq Square, occ Bitboard) Bitboard {
	m := &rookMagic[sq]
	return rookTable[m.index(occ)]
}

// QueenAttacks is the union of bishop and rook attacks.
func QueenAttacks(sq Square, occ Bitboard) Bitboard {
	return BishopAttacks(sq, occ) | RookAttacks(sq, occ)
}

// Between returns the squares strictly between a and b when they share a
// rank, file or diagonal, and the empty set otherwise.
func Between(a, b Square) Bitboard { return between[a][b] }

// Line returns the whole board line through a and b when they are aligned,
// and the empty set otherwise.
func Line(a, b Square) Bitboard { return line[a][b] }
