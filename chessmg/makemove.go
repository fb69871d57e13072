package chessmg

// MakeMove applies a legal move. The move must come from this position's
// generator (or ParseMove); anything else corrupts the position.
func (p *Position) MakeMove(m Move) {
	p.history = append(p.history, undoRecord{
		move:      m,
		hash:      p.hash,
		enPassant: p.enPassant,
		halfmove:  p.halfmoveClock,
		castling:  p.castling,
	})

	us := p.sideToMove
	them := us.Other()
	from, to := m.From(), m.To()

	if p.enPassant != NoSquare {
		p.hash ^= zobristEnPassant[p.enPassant.File()]
		p.enPassant = NoSquare
	}

	switch m.Kind() {
	case Quiet:
		p.movePiece(from, to)
	case DoublePush:
		p.movePiece(from, to)
		p.enPassant = Square((int(from) + int(to)) / 2)
		p.hash ^= zobristEnPassant[p.enPassant.File()]
	case Capture:
		p.removePiece(to)
		p.movePiece(from, to)
	case EnPassant:
		p.removePiece(NewSquare(to.File(), from.Rank()))
		p.movePiece(from, to)
	case Promotion:
		p.removePiece(from)
		p.putPiece(to, NewPiece(us, m.Promotion()))
	case PromotionCapture:
		p.removePiece(to)
		p.removePiece(from)
		p.putPiece(to, NewPiece(us, m.Promotion()))
	case KingsideCastle, QueensideCastle:
		kingTo, rookTo := castleSquares(us, m.Kind())
		// Lift both first: in Chess960 the destinations may overlap the origins.
		p.removePiece(from)
		p.removePiece(to)
		p.putPiece(kingTo, NewPiece(us, King))
		p.putPiece(rookTo, NewPiece(us, Rook))
	}

	if lost := p.castling & (p.castleMask[from] | p.castleMask[to]); lost != 0 {
		p.hash ^= zobristCastle[p.castling]
		p.castling &^= lost
		p.hash ^= zobristCastle[p.castling]
	}

	if m.Piece() == Pawn || m.IsCapture() {
		p.halfmoveClock = 0
	} else {
		p.halfmoveClock++
	}
	if us == Black {
		p.fullmoveNumber++
	}
	p.sideToMove = them
	p.hash ^= zobristSide

	if debugChecks {
		p.mustBeValid("MakeMove " + m.String())
	}
}

// UndoMove retracts the last move made with MakeMove. It panics when the
// history is empty or its top is a null move.
func (p *Position) UndoMove() {
	n := len(p.history)
	if n == 0 {
		panic("chessmg: UndoMove with empty history")
	}
	rec := p.history[n-1]
	if rec.move == NoMove {
		panic("chessmg: UndoMove on a null move")
	}
	p.history = p.history[:n-1]

	m := rec.move
	them := p.sideToMove
	us := them.Other()
	from, to := m.From(), m.To()

	switch m.Kind() {
	case Quiet, DoublePush:
		p.movePiece(to, from)
	case Capture:
		p.movePiece(to, from)
		p.putPiece(to, NewPiece(them, m.Captured()))
	case EnPassant:
		p.movePiece(to, from)
		p.putPiece(NewSquare(to.File(), from.Rank()), NewPiece(them, Pawn))
	case Promotion:
		p.removePiece(to)
		p.putPiece(from, NewPiece(us, Pawn))
	case PromotionCapture:
		p.removePiece(to)
		p.putPiece(to, NewPiece(them, m.Captured()))
		p.putPiece(from, NewPiece(us, Pawn))
	case KingsideCastle, QueensideCastle:
		kingTo, rookTo := castleSquares(us, m.Kind())
		p.removePiece(kingTo)
		p.removePiece(rookTo)
		p.putPiece(from, NewPiece(us, King))
		p.putPiece(to, NewPiece(us, Rook))
	}

	p.sideToMove = us
	if us == Black {
		p.fullmoveNumber--
	}
	p.enPassant = rec.enPassant
	p.halfmoveClock = rec.halfmove
	p.castling = rec.castling
	// Restored, not re-derived, so the hash cannot drift.
	p.hash = rec.hash

	if debugChecks {
		p.mustBeValid("UndoMove " + m.String())
	}
}

// MakeNull passes the turn without moving. It panics when the side to move
// is in check.
func (p *Position) MakeNull() {
	if p.InCheck() {
		panic("chessmg: MakeNull while in check")
	}
	p.history = append(p.history, undoRecord{
		move:      NoMove,
		hash:      p.hash,
		enPassant: p.enPassant,
		halfmove:  p.halfmoveClock,
		castling:  p.castling,
	})
	if p.enPassant != NoSquare {
		p.hash ^= zobristEnPassant[p.enPassant.File()]
		p.enPassant = NoSquare
	}
	p.halfmoveClock++
	if p.sideToMove == Black {
		p.fullmoveNumber++
	}
	p.sideToMove = p.sideToMove.Other()
	p.hash ^= zobristSide

	if debugChecks {
		p.mustBeValid("MakeNull")
	}
}

// UndoNull retracts the last MakeNull. It panics when the top of the history
// is not a null move.
func (p *Position) UndoNull() {
	n := len(p.history)
	if n == 0 || p.history[n-1].move != NoMove {
		panic("chessmg: UndoNull without a null move on the history")
	}
	rec := p.history[n-1]
	p.history = p.history[:n-1]

	p.sideToMove = p.sideToMove.Other()
	if p.sideToMove == Black {
		p.fullmoveNumber--
	}
	p.enPassant = rec.enPassant
	p.halfmoveClock = rec.halfmove
	p.castling = rec.castling
	p.hash = rec.hash
}

// PredictHash returns the hash MakeMove(m) would produce, without touching
// the position.
func (p *Position) PredictHash(m Move) uint64 {
	us := p.sideToMove
	them := us.Other()
	from, to := m.From(), m.To()
	key := p.hash ^ zobristSide

	if p.enPassant != NoSquare {
		key ^= zobristEnPassant[p.enPassant.File()]
	}

	mover := NewPiece(us, m.Piece())
	switch m.Kind() {
	case Quiet:
		key ^= zobristPiece[mover][from] ^ zobristPiece[mover][to]
	case DoublePush:
		key ^= zobristPiece[mover][from] ^ zobristPiece[mover][to]
		key ^= zobristEnPassant[to.File()]
	case Capture:
		key ^= zobristPiece[mover][from] ^ zobristPiece[mover][to]
		key ^= zobristPiece[NewPiece(them, m.Captured())][to]
	case EnPassant:
		key ^= zobristPiece[mover][from] ^ zobristPiece[mover][to]
		key ^= zobristPiece[NewPiece(them, Pawn)][NewSquare(to.File(), from.Rank())]
	case Promotion:
		key ^= zobristPiece[mover][from] ^ zobristPiece[NewPiece(us, m.Promotion())][to]
	case PromotionCapture:
		key ^= zobristPiece[mover][from] ^ zobristPiece[NewPiece(us, m.Promotion())][to]
		key ^= zobristPiece[NewPiece(them, m.Captured())][to]
	case KingsideCastle, QueensideCastle:
		kingTo, rookTo := castleSquares(us, m.Kind())
		rook := NewPiece(us, Rook)
		key ^= zobristPiece[mover][from] ^ zobristPiece[mover][kingTo]
		key ^= zobristPiece[rook][to] ^ zobristPiece[rook][rookTo]
	}

	if lost := p.castling & (p.castleMask[from] | p.castleMask[to]); lost != 0 {
		key ^= zobristCastle[p.castling] ^ zobristCastle[p.castling&^lost]
	}
	return key
}
