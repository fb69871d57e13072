package chessmg

// generation modes; captures and non-captures partition the full legal set
const (
	genAll = iota
	genCaptures
	genNoncaptures
)

// attackersTo returns the pieces of side by that attack sq, with sliders
// looking through the given occupancy instead of the board's.
func (p *Position) attackersTo(sq Square, by Color, occ Bitboard) Bitboard {
	bq := p.pieces[Bishop-1] | p.pieces[Queen-1]
	rq := p.pieces[Rook-1] | p.pieces[Queen-1]
	return (PawnAttacks(by.Other(), sq.Bitboard())&p.pieces[Pawn-1] |
		knightAttacks[sq]&p.pieces[Knight-1] |
		kingAttacks[sq]&p.pieces[King-1] |
		BishopAttacks(sq, occ)&bq |
		RookAttacks(sq, occ)&rq) & p.colours[by]
}

// Attackers returns the pieces of side by attacking sq.
func (p *Position) Attackers(sq Square, by Color) Bitboard {
	return p.attackersTo(sq, by, p.Occupied())
}

// SquareAttacked reports whether side by attacks sq.
func (p *Position) SquareAttacked(sq Square, by Color) bool {
	return p.attackersTo(sq, by, p.Occupied()) != 0
}

// attacksFrom returns what a piece of type pt and side c on sq attacks.
func attacksFrom(c Color, pt PieceType, sq Square, occ Bitboard) Bitboard {
	switch pt {
	case Pawn:
		return PawnAttacks(c, sq.Bitboard())
	case Knight:
		return knightAttacks[sq]
	case Bishop:
		return BishopAttacks(sq, occ)
	case Rook:
		return RookAttacks(sq, occ)
	case Queen:
		return QueenAttacks(sq, occ)
	case King:
		return kingAttacks[sq]
	}
	return 0
}

// SquaresAttacked returns every square attacked by side c, own pieces included.
func (p *Position) SquaresAttacked(c Color) Bitboard {
	occ := p.Occupied()
	att := PawnAttacks(c, p.Pieces(c, Pawn))
	for pt := Knight; pt <= King; pt++ {
		for b := p.Pieces(c, pt); b != 0; {
			att |= attacksFrom(c, pt, popLSB(&b), occ)
		}
	}
	return att
}

// Checkers returns the enemy pieces giving check to the side to move.
func (p *Position) Checkers() Bitboard {
	us := p.sideToMove
	return p.attackersTo(p.KingSquare(us), us.Other(), p.Occupied())
}

// InCheck reports whether the side to move is in check.
func (p *Position) InCheck() bool { return p.Checkers() != 0 }

// Pinned returns the pieces of the side to move pinned to their king.
func (p *Position) Pinned() Bitboard {
	us := p.sideToMove
	return p.pinnedPieces(us, p.KingSquare(us), p.Occupied())
}

// pinnedPieces finds friendly pieces that are the only blocker between the
// king and an enemy slider moving along that line.
func (p *Position) pinnedPieces(us Color, ksq Square, occ Bitboard) Bitboard {
	them := us.Other()
	snipers := RookAttacks(ksq, 0)&(p.Pieces(them, Rook)|p.Pieces(them, Queen)) |
		BishopAttacks(ksq, 0)&(p.Pieces(them, Bishop)|p.Pieces(them, Queen))
	var pinned Bitboard
	for snipers != 0 {
		s := popLSB(&snipers)
		b := between[ksq][s] & occ
		if b != 0 && !b.More() && b&p.colours[us] != 0 {
			pinned |= b
		}
	}
	return pinned
}

// LegalMoves returns every legal move for the side to move.
// It allocates a new slice; prefer LegalMovesInto to reuse buffers in hot paths.
func (p *Position) LegalMoves() []Move { return p.generate(make([]Move, 0, 128), genAll) }

// LegalCaptures returns the legal captures, en passant and capturing promotions included.
func (p *Position) LegalCaptures() []Move { return p.generate(make([]Move, 0, 64), genCaptures) }

// LegalNoncaptures returns the legal non-capturing moves, quiet promotions and castling included.
func (p *Position) LegalNoncaptures() []Move { return p.generate(make([]Move, 0, 128), genNoncaptures) }

// LegalMovesInto truncates dst, appends every legal move and returns it.
func (p *Position) LegalMovesInto(dst []Move) []Move { return p.generate(dst, genAll) }

// LegalCapturesInto is the allocation-free form of LegalCaptures.
func (p *Position) LegalCapturesInto(dst []Move) []Move { return p.generate(dst, genCaptures) }

// LegalNoncapturesInto is the allocation-free form of LegalNoncaptures.
func (p *Position) LegalNoncapturesInto(dst []Move) []Move { return p.generate(dst, genNoncaptures) }

// CountMoves returns the number of legal moves.
func (p *Position) CountMoves() int {
	var buf [256]Move
	return len(p.generate(buf[:0], genAll))
}

// HasLegalMoves reports whether the side to move has any legal move.
func (p *Position) HasLegalMoves() bool { return p.CountMoves() > 0 }

// IsLegal reports whether m is one of the legal moves of the position.
func (p *Position) IsLegal(m Move) bool {
	var buf [256]Move
	for _, lm := range p.generate(buf[:0], genAll) {
		if lm == m {
			return true
		}
	}
	return false
}

// generate is the core generator. Every move it emits is legal: pins, checks,
// king safety and en passant discoveries are resolved here, so MakeMove never
// has to reject anything.
func (p *Position) generate(dst []Move, mode int) []Move {
	moves := dst[:0]
	us := p.sideToMove
	them := us.Other()
	own := p.colours[us]
	enemy := p.colours[them]
	occ := own | enemy
	ksq := p.KingSquare(us)

	var targets Bitboard
	switch mode {
	case genCaptures:
		targets = enemy
	case genNoncaptures:
		targets = ^occ
	default:
		targets = ^own
	}

	checkers := p.attackersTo(ksq, them, occ)

	// King steps, judged with the king lifted so sliders see through its square.
	occNoKing := occ &^ ksq.Bitboard()
	for t := kingAttacks[ksq] & targets; t != 0; {
		to := popLSB(&t)
		if p.attackersTo(to, them, occNoKing) == 0 {
			moves = append(moves, p.newMove(ksq, to, King))
		}
	}
	if checkers.More() {
		return moves
	}

	// Non-king moves must capture the checker or block its line.
	allowed := Universe
	if checkers != 0 {
		allowed = checkers | between[ksq][checkers.LSB()]
	}
	pinned := p.pinnedPieces(us, ksq, occ)

	// A pinned knight can never stay on its pin line.
	for b := p.Pieces(us, Knight) &^ pinned; b != 0; {
		from := popLSB(&b)
		for t := knightAttacks[from] & targets & allowed; t != 0; {
			moves = append(moves, p.newMove(from, popLSB(&t), Knight))
		}
	}

	for pt := Bishop; pt <= Queen; pt++ {
		for b := p.Pieces(us, pt); b != 0; {
			from := popLSB(&b)
			t := attacksFrom(us, pt, from, occ) & targets & allowed
			if pinned.Has(from) {
				t &= line[ksq][from]
			}
			for t != 0 {
				moves = append(moves, p.newMove(from, popLSB(&t), pt))
			}
		}
	}

	moves = p.genPawnMoves(moves, mode, ksq, allowed, pinned)

	if mode != genCaptures && checkers == 0 {
		moves = p.genCastling(moves, ksq)
	}
	return moves
}

// newMove tags a plain piece move as capture or quiet from the target square.
func (p *Position) newMove(from, to Square, pt PieceType) Move {
	if cap := p.board[to].Type(); cap != NoPieceType {
		return NewMove(from, to, pt, cap, NoPieceType, Capture)
	}
	return NewMove(from, to, pt, NoPieceType, NoPieceType, Quiet)
}

func appendPromotions(moves []Move, from, to Square, cap PieceType) []Move {
	kind := Promotion
	if cap != NoPieceType {
		kind = PromotionCapture
	}
	for _, promo := range promotionTypes {
		moves = append(moves, NewMove(from, to, Pawn, cap, promo, kind))
	}
	return moves
}

func (p *Position) genPawnMoves(moves []Move, mode int, ksq Square, allowed, pinned Bitboard) []Move {
	us := p.sideToMove
	them := us.Other()
	enemy := p.colours[them]
	occ := p.Occupied()
	lastRank := Rank8
	if us == Black {
		lastRank = Rank1
	}

	for b := p.Pieces(us, Pawn); b != 0; {
		from := popLSB(&b)
		fromBB := from.Bitboard()
		restrict := allowed
		if pinned.Has(from) {
			restrict &= line[ksq][from]
		}

		if mode != genNoncaptures {
			for t := PawnAttacks(us, fromBB) & enemy & restrict; t != 0; {
				to := popLSB(&t)
				cap := p.board[to].Type()
				if lastRank.Has(to) {
					moves = appendPromotions(moves, from, to, cap)
				} else {
					moves = append(moves, NewMove(from, to, Pawn, cap, NoPieceType, Capture))
				}
			}
		}

		if mode != genCaptures {
			one := pawnPush(us, fromBB) &^ occ
			if one&restrict != 0 {
				to := one.LSB()
				if lastRank.Has(to) {
					moves = appendPromotions(moves, from, to, NoPieceType)
				} else {
					moves = append(moves, NewMove(from, to, Pawn, NoPieceType, NoPieceType, Quiet))
				}
			}
			if one != 0 && relativeRank(us, from) == 1 {
				if two := pawnPush(us, one) &^ occ & restrict; two != 0 {
					moves = append(moves, NewMove(from, two.LSB(), Pawn, NoPieceType, NoPieceType, DoublePush))
				}
			}
		}
	}

	if p.enPassant != NoSquare && mode != genNoncaptures {
		moves = p.genEnPassant(moves, ksq, allowed, pinned)
	}
	return moves
}

// genEnPassant emits en passant captures. The capture clears two squares on
// one rank, which pin detection cannot see, so each candidate is re-checked
// against enemy sliders with both pawns lifted.
func (p *Position) genEnPassant(moves []Move, ksq Square, allowed, pinned Bitboard) []Move {
	us := p.sideToMove
	them := us.Other()
	ep := p.enPassant
	epBB := ep.Bitboard()
	occ := p.Occupied()
	rq := p.Pieces(them, Rook) | p.Pieces(them, Queen)
	bq := p.Pieces(them, Bishop) | p.Pieces(them, Queen)

	for b := PawnAttacks(them, epBB) & p.Pieces(us, Pawn); b != 0; {
		from := popLSB(&b)
		capSq := NewSquare(ep.File(), from.Rank())
		capBB := capSq.Bitboard()
		if allowed&(epBB|capBB) == 0 {
			continue
		}
		if pinned.Has(from) && !line[ksq][from].Has(ep) {
			continue
		}
		after := occ&^(from.Bitboard()|capBB) | epBB
		if RookAttacks(ksq, after)&rq != 0 || BishopAttacks(ksq, after)&bq != 0 {
			continue
		}
		moves = append(moves, NewMove(from, ep, Pawn, Pawn, NoPieceType, EnPassant))
	}
	return moves
}

// genCastling emits castling moves as king-takes-rook. The caller guarantees
// the king is not in check.
func (p *Position) genCastling(moves []Move, ksq Square) []Move {
	us := p.sideToMove
	them := us.Other()
	occ := p.Occupied()
	for _, kind := range [2]MoveKind{KingsideCastle, QueensideCastle} {
		right := castlingRight(us, kind == KingsideCastle)
		if p.castling&right == 0 {
			continue
		}
		rsq := p.castleRook[right.index()]
		kingTo, rookTo := castleSquares(us, kind)
		rest := occ &^ (ksq.Bitboard() | rsq.Bitboard())

		kingPath := between[ksq][kingTo] | kingTo.Bitboard()
		mustBeEmpty := kingPath | between[ksq][rsq] | between[rsq][rookTo] | rookTo.Bitboard()
		if rest&mustBeEmpty != 0 {
			continue
		}
		safe := true
		for s := kingPath; s != 0; {
			if p.attackersTo(popLSB(&s), them, rest) != 0 {
				safe = false
				break
			}
		}
		if safe {
			moves = append(moves, NewMove(ksq, rsq, King, NoPieceType, NoPieceType, kind))
		}
	}
	return moves
}

// GivesCheck reports whether the legal move m checks the opponent. It works
// on local copies and does not mutate the position.
func (p *Position) GivesCheck(m Move) bool {
	us := p.sideToMove
	ksq := p.KingSquare(us.Other())
	from, to := m.From(), m.To()
	occ := p.Occupied() &^ from.Bitboard()

	pt, dest := m.Piece(), to
	rookFrom, rookTo := NoSquare, NoSquare
	switch m.Kind() {
	case EnPassant:
		occ &^= NewSquare(to.File(), from.Rank()).Bitboard()
	case KingsideCastle, QueensideCastle:
		rookFrom = to
		dest, rookTo = castleSquares(us, m.Kind())
		occ = occ&^rookFrom.Bitboard() | rookTo.Bitboard()
	case Promotion, PromotionCapture:
		pt = m.Promotion()
	}
	occ |= dest.Bitboard()

	if attacksFrom(us, pt, dest, occ).Has(ksq) {
		return true
	}
	if rookFrom != NoSquare && RookAttacks(rookTo, occ).Has(ksq) {
		return true
	}

	// Discovered checks from sliders that stayed put.
	moved := from.Bitboard()
	if rookFrom != NoSquare {
		moved |= rookFrom.Bitboard()
	}
	rq := (p.Pieces(us, Rook) | p.Pieces(us, Queen)) &^ moved
	bq := (p.Pieces(us, Bishop) | p.Pieces(us, Queen)) &^ moved
	return RookAttacks(ksq, occ)&rq != 0 || BishopAttacks(ksq, occ)&bq != 0
}
