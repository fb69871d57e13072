package chessmg

import (
	"math/bits"
	"strings"
)

// Bitboard is a set of squares, bit i set when square i is a member.
type Bitboard uint64

const (
	Empty    Bitboard = 0
	Universe Bitboard = ^Bitboard(0)

	FileA Bitboard = 0x0101010101010101
	FileB Bitboard = FileA << 1
	FileC Bitboard = FileA << 2
	FileD Bitboard = FileA << 3
	FileE Bitboard = FileA << 4
	FileF Bitboard = FileA << 5
	FileG Bitboard = FileA << 6
	FileH Bitboard = FileA << 7

	Rank1 Bitboard = 0xFF
	Rank2 Bitboard = Rank1 << 8
	Rank3 Bitboard = Rank1 << 16
	Rank4 Bitboard = Rank1 << 24
	Rank5 Bitboard = Rank1 << 32
	Rank6 Bitboard = Rank1 << 40
	Rank7 Bitboard = Rank1 << 48
	Rank8 Bitboard = Rank1 << 56
)

// Files and Ranks index the masks above by number.
var (
	Files = [8]Bitboard{FileA, FileB, FileC, FileD, FileE, FileF, FileG, FileH}
	Ranks = [8]Bitboard{Rank1, Rank2, Rank3, Rank4, Rank5, Rank6, Rank7, Rank8}
)

// North shifts every member one rank up; squares on rank 8 fall off.
func (b Bitboard) North() Bitboard { return b << 8 }

// South shifts every member one rank down.
func (b Bitboard) South() Bitboard { return b >> 8 }

// East shifts one file towards h, dropping squares that would wrap to the a-file.
func (b Bitboard) East() Bitboard { return (b << 1) &^ FileA }

// West shifts one file towards a, dropping squares that would wrap to the h-file.
func (b Bitboard) West() Bitboard { return (b >> 1) &^ FileH }

// PopCount returns the number of members.
func (b Bitboard) PopCount() int { return bits.OnesCount64(uint64(b)) }

// LSB returns the lowest-indexed member, or NoSquare for an empty set.
func (b Bitboard) LSB() Square {
	if b == 0 {
		return NoSquare
	}
	return Square(bits.TrailingZeros64(uint64(b)))
}

// MSB returns the highest-indexed member, or NoSquare for an empty set.
func (b Bitboard) MSB() Square {
	if b == 0 {
		return NoSquare
	}
	return Square(63 - bits.LeadingZeros64(uint64(b)))
}

// Has reports whether sq is a member.
func (b Bitboard) Has(sq Square) bool { return b&sq.Bitboard() != 0 }

// More reports whether the set has two or more members.
func (b Bitboard) More() bool { return b&(b-1) != 0 }

// Squares lists the members in ascending order.
func (b Bitboard) Squares() []Square {
	out := make([]Square, 0, b.PopCount())
	for b != 0 {
		out = append(out, popLSB(&b))
	}
	return out
}

// String renders the set as an 8x8 grid, rank 8 first.
func (b Bitboard) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		for file := 0; file < 8; file++ {
			if b.Has(NewSquare(file, rank)) {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// popLSB removes and returns the lowest member of a non-empty set.
func popLSB(b *Bitboard) Square {
	sq := Square(bits.TrailingZeros64(uint64(*b)))
	*b &= *b - 1
	return sq
}
