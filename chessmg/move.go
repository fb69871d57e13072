package chessmg

// Move encodes a chess move in a 32-bit value.
//
// Castling moves are stored as the king capturing its own rook: To() is the
// rook's origin square. MakeMove translates that into the real king and rook
// destinations, which keeps Chess960 castling unambiguous.
type Move uint32

// NoMove is the zero Move. It also marks null moves on the history.
const NoMove Move = 0

// Bitfield layout within Move (from LSB to MSB)
const (
	moveFromShift    = 0  // 6 bits
	moveToShift      = 6  // 6 bits
	movePieceShift   = 12 // 3 bits
	moveCaptureShift = 15 // 3 bits
	movePromoteShift = 18 // 3 bits
	moveKindShift    = 21 // 3 bits
)

// MoveKind tags the special handling a move needs.
type MoveKind uint8

const (
	Quiet MoveKind = iota
	Capture
	DoublePush
	EnPassant
	KingsideCastle
	QueensideCastle
	Promotion
	PromotionCapture
)

var moveKindNames = [...]string{"quiet", "capture", "double", "enpassant", "ksc", "qsc", "promo", "promo-capture"}

func (k MoveKind) String() string { return moveKindNames[k&7] }

// NewMove constructs a Move value from components.
func NewMove(from, to Square, piece, captured, promotion PieceType, kind MoveKind) Move {
	return Move(uint32(from&0x3F)<<moveFromShift |
		uint32(to&0x3F)<<moveToShift |
		uint32(piece&7)<<movePieceShift |
		uint32(captured&7)<<moveCaptureShift |
		uint32(promotion&7)<<movePromoteShift |
		uint32(kind&7)<<moveKindShift)
}

// From returns the source square of the move.
func (m Move) From() Square { return Square((uint32(m) >> moveFromShift) & 0x3F) }

// To returns the destination square; the rook's square for castling.
func (m Move) To() Square { return Square((uint32(m) >> moveToShift) & 0x3F) }

// Piece returns the type of the moving piece.
func (m Move) Piece() PieceType { return PieceType((uint32(m) >> movePieceShift) & 7) }

// Captured returns the captured type, or NoPieceType.
func (m Move) Captured() PieceType { return PieceType((uint32(m) >> moveCaptureShift) & 7) }

// Promotion returns the promotion type, or NoPieceType.
func (m Move) Promotion() PieceType { return PieceType((uint32(m) >> movePromoteShift) & 7) }

// Kind returns the move kind tag.
func (m Move) Kind() MoveKind { return MoveKind((uint32(m) >> moveKindShift) & 7) }

// IsCapture reports captures, en passant and capturing promotions.
func (m Move) IsCapture() bool {
	k := m.Kind()
	return k == Capture || k == EnPassant || k == PromotionCapture
}

// IsCastle reports either castling kind.
func (m Move) IsCastle() bool {
	k := m.Kind()
	return k == KingsideCastle || k == QueensideCastle
}

// IsPromotion reports both promotion kinds.
func (m Move) IsPromotion() bool {
	k := m.Kind()
	return k == Promotion || k == PromotionCapture
}

// String returns the raw coordinate form ("e2e4", "e7e8q"). Castling prints
// as king-takes-rook ("e1h1"); see Position.MoveString for display text.
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	return coordString(m.From(), m.To(), m.Promotion())
}

func coordString(from, to Square, promo PieceType) string {
	buf := make([]byte, 0, 5)
	buf = append(buf, from.String()...)
	buf = append(buf, to.String()...)
	if promo != NoPieceType {
		buf = append(buf, promo.Char())
	}
	return string(buf)
}

// castleSquares returns where king and rook land for a castling move by c.
func castleSquares(c Color, kind MoveKind) (kingTo, rookTo Square) {
	if kind == KingsideCastle {
		kingTo, rookTo = G1, F1
	} else {
		kingTo, rookTo = C1, D1
	}
	if c == Black {
		kingTo, rookTo = kingTo.Flip(), rookTo.Flip()
	}
	return kingTo, rookTo
}
