package chessmg

import (
	"fmt"
	"math/bits"
	"math/rand"
)

// magic holds the fancy-magic lookup parameters of one square.
type magic struct {
	mask   Bitboard // relevant occupancy, board edges excluded
	magic  uint64
	shift  uint8
	offset int // start of this square's slice in the shared table
}

func (m *magic) index(occ Bitboard) int {
	return m.offset + int((uint64(occ&m.mask)*m.magic)>>m.shift)
}

var (
	bishopMagic [64]magic
	rookMagic   [64]magic

	bishopTable []Bitboard
	rookTable   []Bitboard
)

// Precomputed multipliers. Each is collision-free for shift 64-popcount(mask);
// initSliderTables proves that again at build time.
var bishopMagics = [64]uint64{
	0x0002020202020200, 0x0002020202020000, 0x0004010202000000, 0x0004040080000000,
	0x0001104000000000, 0x0000821040000000, 0x0000410410400000, 0x0000104104104000,
	0x0000040404040400, 0x0000020202020200, 0x0000040102020000, 0x0000040400800000,
	0x0000011040000000, 0x0000008210400000, 0x0000004104104000, 0x0000002082082000,
	0x0004000808080800, 0x0002000404040400, 0x0001000202020200, 0x0000800802004000,
	0x0000800400a00000, 0x0000200100884000, 0x0000400082082000, 0x0000200041041000,
	0x0002080010101000, 0x0001040008080800, 0x0000208004010400, 0x0000404004010200,
	0x0000840000802000, 0x0000404002011000, 0x0000808001041000, 0x0000404000820800,
	0x0001041000202000, 0x0000820800101000, 0x0000104400080800, 0x0000020080080080,
	0x0000404040040100, 0x0000808100020100, 0x0001010100020800, 0x0000808080010400,
	0x0000820820004000, 0x0000410410002000, 0x0000082088001000, 0x0000002011000800,
	0x0000080100400400, 0x0001010101000200, 0x0002020202000400, 0x0001010101000200,
	0x0000410410400000, 0x0000208208200000, 0x0000002084100000, 0x0000000020880000,
	0x0000001002020000, 0x0000040408020000, 0x0004040404040000, 0x0002020202020000,
	0x0000104104104000, 0x0000002082082000, 0x0000000020841000, 0x0000000000208800,
	0x0000000010020200, 0x0000000404080200, 0x0000040404040400, 0x0002020202020200,
}

var rookMagics = [64]uint64{
	0x0080001020400080, 0x0040001000200040, 0x0080081000200080, 0x0080040800100080,
	0x0080020400080080, 0x0080010200040080, 0x0080008001000200, 0x0080002040800100,
	0x0000800020400080, 0x0000400020005000, 0x0000801000200080, 0x0000800800100080,
	0x0000800400080080, 0x0000800200040080, 0x0000800100020080, 0x0000800040800100,
	0x0000208000400080, 0x0000404000201000, 0x0000808010002000, 0x0000808008001000,
	0x0000808004000800, 0x0000808002000400, 0x0000010100020004, 0x0000020000408104,
	0x0000208080004000, 0x0000200040005000, 0x0000100080200080, 0x0000080080100080,
	0x0000040080080080, 0x0000020080040080, 0x0000010080800200, 0x0000800080004100,
	0x0000204000800080, 0x0000200040401000, 0x0000100080802000, 0x0000080080801000,
	0x0000040080800800, 0x0000020080800400, 0x0000020001010004, 0x0000800040800100,
	0x0000204000808000, 0x0000200040008080, 0x0000100020008080, 0x0000080010008080,
	0x0000040008008080, 0x0000020004008080, 0x0000010002008080, 0x0000004081020004,
	0x0000204000800080, 0x0000200040008080, 0x0000100020008080, 0x0000080010008080,
	0x0000040008008080, 0x0000020004008080, 0x0000800100020080, 0x0000800041000080,
	0x00fffcddfced714a, 0x007ffcddfced714a, 0x003fffcdffd88096, 0x0000040810002101,
	0x0001000204080011, 0x0001000204000801, 0x0001000082000401, 0x0001fffaabfad1a2,
}

const edges = FileA | FileH | Rank1 | Rank8

// rookMask keeps the edge squares of the rook's own rank and file out.
func rookMask(sq Square) Bitboard {
	var m Bitboard
	m |= rays[sq][dirN] &^ Rank8
	m |= rays[sq][dirS] &^ Rank1
	m |= rays[sq][dirE] &^ FileH
	m |= rays[sq][dirW] &^ FileA
	return m
}

func bishopMask(sq Square) Bitboard {
	return slidingAttacks(sq, 0, bishopDirs) &^ edges
}

func initSliderTables() {
	rng := rand.New(rand.NewSource(0x5EED))
	bishopTable = buildSliderTable(&bishopMagic, &bishopMagics, bishopMask, bishopDirs, rng)
	rookTable = buildSliderTable(&rookMagic, &rookMagics, rookMask, rookDirs, rng)
}

// buildSliderTable lays out one flat table sized to the sum of 1<<popcount(mask)
// and fills it by enumerating every occupancy subset of every mask. A square
// whose multiplier maps two different attack sets to one slot gets a freshly
// searched multiplier instead.
func buildSliderTable(entries *[64]magic, magics *[64]uint64, maskFn func(Square) Bitboard, dirs []int, rng *rand.Rand) []Bitboard {
	size := 0
	for sq := A1; sq <= H8; sq++ {
		entries[sq].mask = maskFn(sq)
		size += 1 << entries[sq].mask.PopCount()
	}
	table := make([]Bitboard, size)
	offset := 0
	for sq := A1; sq <= H8; sq++ {
		m := &entries[sq]
		n := m.mask.PopCount()
		m.shift = uint8(64 - n)
		m.offset = offset
		m.magic = magics[sq]
		slots := table[offset : offset+1<<n]
		if !fillMagic(slots, sq, m.mask, m.magic, m.shift, dirs) {
			m.magic = findMagic(sq, m.mask, dirs, rng)
			fillMagic(slots, sq, m.mask, m.magic, m.shift, dirs)
		}
		offset += 1 << n
	}
	return table
}

// fillMagic writes the attack set of every subset of mask into slots. Two
// subsets may share a slot only if their attack sets agree; a slider attacks
// at least one square, so a zero slot is unused.
func fillMagic(slots []Bitboard, sq Square, mask Bitboard, mul uint64, shift uint8, dirs []int) bool {
	for i := range slots {
		slots[i] = 0
	}
	n := mask.PopCount()
	for idx := 0; idx < 1<<n; idx++ {
		occ := pdep(uint64(idx), mask)
		att := slidingAttacks(sq, occ, dirs)
		slot := (uint64(occ) * mul) >> shift
		switch slots[slot] {
		case 0:
			slots[slot] = att
		case att:
		default:
			return false
		}
	}
	return true
}

// findMagic searches sparse random multipliers until one maps every subset of
// mask without a destructive collision.
func findMagic(sq Square, mask Bitboard, dirs []int, rng *rand.Rand) uint64 {
	n := mask.PopCount()
	slots := make([]Bitboard, 1<<n)
	shift := uint8(64 - n)
	for try := 0; try < 100_000_000; try++ {
		mul := rng.Uint64() & rng.Uint64() & rng.Uint64()
		if bits.OnesCount64((uint64(mask)*mul)&0xFF00000000000000) < 6 {
			continue
		}
		if fillMagic(slots, sq, mask, mul, shift, dirs) {
			return mul
		}
	}
	panic(fmt.Sprintf("chessmg: no magic found for %v", sq))
}

// software pdep: deposit low bits of x into positions of mask
func pdep(x uint64, mask Bitboard) Bitboard {
	var res Bitboard
	m := mask
	for idx := uint(0); m != 0; idx++ {
		sq := popLSB(&m)
		if (x>>idx)&1 != 0 {
			res |= sq.Bitboard()
		}
	}
	return res
}
