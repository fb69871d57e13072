package chessmg

import (
	"errors"
	"fmt"
)

// undoRecord holds what MakeMove/MakeNull overwrite. A null move stores NoMove.
type undoRecord struct {
	move      Move
	hash      uint64
	enPassant Square
	halfmove  int
	castling  CastlingRights
}

// Position is a mutable chess position with an undo history.
//
// A Position must not be mutated from several goroutines at once; give each
// worker its own Clone.
type Position struct {
	colours [2]Bitboard
	pieces  [6]Bitboard // indexed by PieceType-1
	board   [64]Piece

	sideToMove     Color
	castling       CastlingRights
	castleRook     [4]Square         // rook origin per right, see CastlingRights.index
	castleMask     [64]CastlingRights // rights lost when a square is left or captured on
	enPassant      Square
	halfmoveClock  int
	fullmoveNumber int

	hash    uint64
	history []undoRecord

	chess960    bool // castling move text as king-takes-rook
	shredderFEN bool // castling field written as rook files
}

// NewPosition returns the standard starting position.
func NewPosition() *Position {
	p, err := ParseFEN(StartFEN)
	if err != nil {
		panic(err)
	}
	return p
}

// Clone returns a deep copy, history included.
func (p *Position) Clone() *Position {
	c := *p
	c.history = append(make([]undoRecord, 0, cap(p.history)), p.history...)
	return &c
}

// SideToMove reports which side is to play.
func (p *Position) SideToMove() Color { return p.sideToMove }

// Hash returns the incrementally maintained position hash.
func (p *Position) Hash() uint64 { return p.hash }

// HalfmoveClock counts half-moves since the last capture or pawn move.
func (p *Position) HalfmoveClock() int { return p.halfmoveClock }

// FullmoveNumber starts at 1 and increments after each Black move.
func (p *Position) FullmoveNumber() int { return p.fullmoveNumber }

// EnPassantSquare returns the en passant target or NoSquare.
func (p *Position) EnPassantSquare() Square { return p.enPassant }

// CastlingRights returns the castling flags still held.
func (p *Position) CastlingRights() CastlingRights { return p.castling }

// CastlingRook returns the origin square of the rook for a single right,
// or NoSquare when the right is not held.
func (p *Position) CastlingRook(right CastlingRights) Square {
	if p.castling&right == 0 {
		return NoSquare
	}
	return p.castleRook[right.index()]
}

// CanCastle reports whether the right for side c and wing is still held.
// It says nothing about whether castling is legal right now.
func (p *Position) CanCastle(c Color, kingside bool) bool {
	return p.castling&castlingRight(c, kingside) != 0
}

// Chess960 reports whether castling moves are written king-takes-rook.
func (p *Position) Chess960() bool { return p.chess960 }

// SetChess960 selects the castling move text: king-takes-rook when on,
// king destination otherwise. It stays on while a castling right belongs to
// a king or rook off its standard square, where the king-destination text
// would read as an ordinary king step.
func (p *Position) SetChess960(on bool) { p.chess960 = on || p.needsRookCaptureText() }

func (p *Position) needsRookCaptureText() bool {
	for i, rsq := range p.castleRook {
		if p.castling&CastlingRights(1<<i) == 0 {
			continue
		}
		ksq := p.KingSquare(Color(i / 2))
		if ksq.File() != 4 || (rsq.File() != 0 && rsq.File() != 7) {
			return true
		}
	}
	return false
}

// Ply returns the number of moves (null moves included) on the history.
func (p *Position) Ply() int { return len(p.history) }

// LastMove returns the most recent move made, or NoMove.
func (p *Position) LastMove() Move {
	if len(p.history) == 0 {
		return NoMove
	}
	return p.history[len(p.history)-1].move
}

// PieceAt returns the piece on sq, or NoPiece.
func (p *Position) PieceAt(sq Square) Piece { return p.board[sq] }

// Pieces returns the pieces of type pt owned by c.
func (p *Position) Pieces(c Color, pt PieceType) Bitboard {
	return p.pieces[pt-1] & p.colours[c]
}

// PiecesOfType returns the pieces of type pt for both sides.
func (p *Position) PiecesOfType(pt PieceType) Bitboard { return p.pieces[pt-1] }

// Occupancy returns the squares occupied by c.
func (p *Position) Occupancy(c Color) Bitboard { return p.colours[c] }

// Occupied returns every occupied square.
func (p *Position) Occupied() Bitboard { return p.colours[White] | p.colours[Black] }

// KingSquare returns the square of c's king.
func (p *Position) KingSquare(c Color) Square {
	return (p.pieces[King-1] & p.colours[c]).LSB()
}

func (p *Position) putPiece(sq Square, pc Piece) {
	bb := sq.Bitboard()
	p.board[sq] = pc
	p.colours[pc.Color()] |= bb
	p.pieces[pc.Type()-1] |= bb
	p.hash ^= zobristPiece[pc][sq]
}

func (p *Position) removePiece(sq Square) Piece {
	pc := p.board[sq]
	bb := sq.Bitboard()
	p.board[sq] = NoPiece
	p.colours[pc.Color()] &^= bb
	p.pieces[pc.Type()-1] &^= bb
	p.hash ^= zobristPiece[pc][sq]
	return pc
}

func (p *Position) movePiece(from, to Square) {
	p.putPiece(to, p.removePiece(from))
}

// IsFiftyMoves reports the fifty-move rule: the half-move clock is 100 or more.
func (p *Position) IsFiftyMoves() bool { return p.halfmoveClock >= 100 }

// repetitions counts earlier positions with the current hash, stopping once
// limit is reached. Only positions an even number of plies back, inside the
// reversible window and after the latest null move, are considered.
func (p *Position) repetitions(limit int) int {
	n := len(p.history)
	window := p.halfmoveClock
	if window > n {
		window = n
	}
	count := 0
	for k := 1; k <= window; k++ {
		rec := p.history[n-k]
		if rec.move == NoMove {
			break
		}
		if k%2 == 0 && rec.hash == p.hash {
			count++
			if count >= limit {
				break
			}
		}
	}
	return count
}

// IsRepetition reports whether the current position occurred before.
func (p *Position) IsRepetition() bool { return p.repetitions(1) >= 1 }

// IsThreefold reports whether the current position occurred twice before.
func (p *Position) IsThreefold() bool { return p.repetitions(2) >= 2 }

// IsCheckmate reports whether the side to move is in check with no legal moves.
func (p *Position) IsCheckmate() bool { return p.InCheck() && !p.HasLegalMoves() }

// IsStalemate reports whether the side to move has no legal moves and is not in check.
func (p *Position) IsStalemate() bool { return !p.InCheck() && !p.HasLegalMoves() }

// Validate checks the structural invariants of the position and returns the
// first violation found.
func (p *Position) Validate() error {
	var union Bitboard
	for i, bb := range p.pieces {
		if union&bb != 0 {
			return fmt.Errorf("piece mask %d overlaps another type", i+1)
		}
		union |= bb
	}
	if p.colours[White]&p.colours[Black] != 0 {
		return errors.New("side masks overlap")
	}
	if p.colours[White]|p.colours[Black] != union {
		return errors.New("side masks differ from piece masks")
	}
	for sq := A1; sq <= H8; sq++ {
		pc := p.board[sq]
		if pc == NoPiece {
			if union.Has(sq) {
				return fmt.Errorf("mailbox empty on occupied %v", sq)
			}
			continue
		}
		if !p.pieces[pc.Type()-1].Has(sq) || !p.colours[pc.Color()].Has(sq) {
			return fmt.Errorf("mailbox disagrees with bitboards on %v", sq)
		}
	}
	for c := White; c <= Black; c++ {
		if n := p.Pieces(c, King).PopCount(); n != 1 {
			return fmt.Errorf("side %v has %d kings", c, n)
		}
	}
	if p.pieces[Pawn-1]&(Rank1|Rank8) != 0 {
		return errors.New("pawn on first or last rank")
	}
	if p.enPassant != NoSquare {
		if relativeRank(p.sideToMove, p.enPassant) != 5 {
			return fmt.Errorf("en passant square %v on wrong rank", p.enPassant)
		}
		if p.board[p.enPassant] != NoPiece {
			return fmt.Errorf("en passant square %v occupied", p.enPassant)
		}
	}
	for i, right := range [4]CastlingRights{WhiteKingside, WhiteQueenside, BlackKingside, BlackQueenside} {
		if p.castling&right == 0 {
			continue
		}
		c := White
		if i >= 2 {
			c = Black
		}
		rsq := p.castleRook[i]
		if !rsq.Valid() || p.board[rsq] != NewPiece(c, Rook) {
			return fmt.Errorf("castling rook for right %d missing", i)
		}
		if relativeRank(c, p.KingSquare(c)) != 0 || relativeRank(c, rsq) != 0 {
			return fmt.Errorf("castling right %d without back-rank king and rook", i)
		}
	}
	them := p.sideToMove.Other()
	if p.SquareAttacked(p.KingSquare(them), p.sideToMove) {
		return errors.New("side not to move is in check")
	}
	if h := p.ComputeHash(); h != p.hash {
		return fmt.Errorf("hash %016x differs from recomputed %016x", p.hash, h)
	}
	return nil
}

// mustBeValid panics on an invariant violation. Only debug builds call it.
func (p *Position) mustBeValid(op string) {
	if err := p.Validate(); err != nil {
		panic(fmt.Sprintf("chessmg: %s left invalid position %q: %v", op, p.FEN(), err))
	}
}
