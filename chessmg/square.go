package chessmg

import "fmt"

// Square represents a board position (0-63), encoded as rank*8+file.
type Square int

// NoSquare is the off-board sentinel (for example "no en passant target").
const NoSquare Square = -1

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
)

// NewSquare builds a square from zero-based file and rank.
func NewSquare(file, rank int) Square { return Square(rank*8 + file) }

// File returns the zero-based file (0 = a).
func (s Square) File() int { return int(s) & 7 }

// Rank returns the zero-based rank (0 = rank 1).
func (s Square) Rank() int { return int(s) >> 3 }

// Valid reports whether s is on the board.
func (s Square) Valid() bool { return s >= A1 && s <= H8 }

// Flip mirrors the square vertically (a1 <-> a8).
func (s Square) Flip() Square { return s ^ 56 }

// Bitboard returns the single-square set {s}.
func (s Square) Bitboard() Bitboard { return Bitboard(1) << uint(s) }

// String returns the algebraic name ("e4"), or "-" for NoSquare.
func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return string([]byte{'a' + byte(s.File()), '1' + byte(s.Rank())})
}

// relativeRank returns the rank as seen from c's side of the board.
func relativeRank(c Color, s Square) int {
	if c == White {
		return s.Rank()
	}
	return 7 - s.Rank()
}

// ParseSquare converts algebraic notation ("e4") to a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	file, rank := s[0], s[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	return NewSquare(int(file-'a'), int(rank-'1')), nil
}
