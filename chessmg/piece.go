package chessmg

// Color is the side owning a piece or to move.
type Color uint8

const (
	White Color = 0
	Black Color = 1
)

// Other returns the opposing side.
func (c Color) Other() Color { return c ^ 1 }

func (c Color) String() string {
	if c == White {
		return "w"
	}
	return "b"
}

// PieceType is a colorless piece kind.
type PieceType uint8

const (
	NoPieceType PieceType = 0
	Pawn        PieceType = 1
	Knight      PieceType = 2
	Bishop      PieceType = 3
	Rook        PieceType = 4
	Queen       PieceType = 5
	King        PieceType = 6
)

// promotionTypes lists promotion targets, strongest first.
var promotionTypes = [4]PieceType{Queen, Rook, Bishop, Knight}

// Char returns the lowercase letter used in FEN and move text.
func (pt PieceType) Char() byte {
	return " pnbrqk"[pt]
}

// Piece packs a type in the low three bits and the color in bit 3.
type Piece uint8

const NoPiece Piece = 0

// NewPiece combines a side and a type.
func NewPiece(c Color, pt PieceType) Piece {
	if pt == NoPieceType {
		return NoPiece
	}
	return Piece(pt) | Piece(c)<<3
}

// Type returns the colorless type of the piece.
func (p Piece) Type() PieceType { return PieceType(p & 7) }

// Color returns the side that owns the piece. NoPiece reports White.
func (p Piece) Color() Color { return Color(p >> 3) }

// Char returns the FEN letter, uppercase for White.
func (p Piece) Char() byte {
	if p == NoPiece {
		return '.'
	}
	ch := p.Type().Char()
	if p.Color() == White {
		ch -= 'a' - 'A'
	}
	return ch
}

func pieceFromChar(ch byte) Piece {
	c := White
	if ch >= 'a' && ch <= 'z' {
		c = Black
		ch -= 'a' - 'A'
	}
	switch ch {
	case 'P':
		return NewPiece(c, Pawn)
	case 'N':
		return NewPiece(c, Knight)
	case 'B':
		return NewPiece(c, Bishop)
	case 'R':
		return NewPiece(c, Rook)
	case 'Q':
		return NewPiece(c, Queen)
	case 'K':
		return NewPiece(c, King)
	}
	return NoPiece
}

// CastlingRights is a set of castling flags.
type CastlingRights uint8

const (
	WhiteKingside CastlingRights = 1 << iota
	WhiteQueenside
	BlackKingside
	BlackQueenside

	NoCastling  CastlingRights = 0
	AllCastling                = WhiteKingside | WhiteQueenside | BlackKingside | BlackQueenside
)

// castlingRight returns the single flag for a side and wing.
func castlingRight(c Color, kingside bool) CastlingRights {
	r := WhiteKingside
	if !kingside {
		r = WhiteQueenside
	}
	if c == Black {
		r <<= 2
	}
	return r
}

// index returns 0..3 for a single flag, matching Position.castleRook.
func (cr CastlingRights) index() int {
	switch cr {
	case WhiteKingside:
		return 0
	case WhiteQueenside:
		return 1
	case BlackKingside:
		return 2
	}
	return 3
}
