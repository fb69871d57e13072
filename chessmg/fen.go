package chessmg

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the standard initial chess position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

func fenError(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidFEN}, args...)...)
}

// ParseFEN parses a FEN string and returns a new Position set up to that
// position. "startpos" is accepted as an alias for StartFEN, and the two
// clock fields may be omitted.
//
// The castling field accepts KQkq (the outermost rook on each wing, X-FEN),
// Shredder rook-file letters such as HAha, or "-". Shredder letters, or KQkq
// on a board whose king or rooks are off their standard squares, switch the
// position to Chess960 move text.
func ParseFEN(fen string) (*Position, error) {
	fen = strings.TrimSpace(fen)
	if fen == "startpos" {
		fen = StartFEN
	}
	fields := strings.Fields(fen)
	if len(fields) < 4 || len(fields) > 6 {
		return nil, fenError("want 4 to 6 fields, got %d", len(fields))
	}

	p := &Position{enPassant: NoSquare, fullmoveNumber: 1}

	// 1. Piece placement
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, fenError("want 8 ranks, got %d", len(ranks))
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for j := 0; j < len(rankStr); j++ {
			ch := rankStr[j]
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			pc := pieceFromChar(ch)
			if pc == NoPiece {
				return nil, fenError("unrecognized piece character %q", ch)
			}
			if file >= 8 {
				return nil, fenError("rank %d has more than 8 files", rank+1)
			}
			p.putPiece(NewSquare(file, rank), pc)
			file++
		}
		if file != 8 {
			return nil, fenError("rank %d does not have 8 files", rank+1)
		}
	}
	for c := White; c <= Black; c++ {
		if n := p.Pieces(c, King).PopCount(); n != 1 {
			return nil, fenError("side %v has %d kings", c, n)
		}
	}
	if p.pieces[Pawn-1]&(Rank1|Rank8) != 0 {
		return nil, fenError("pawn on first or last rank")
	}

	// 2. Side to move
	switch fields[1] {
	case "w":
		p.sideToMove = White
	case "b":
		p.sideToMove = Black
	default:
		return nil, fenError("side to move must be 'w' or 'b', got %q", fields[1])
	}

	// 3. Castling rights
	if err := p.parseCastling(fields[2]); err != nil {
		return nil, err
	}

	// 4. En passant target square
	if fields[3] != "-" {
		ep, err := ParseSquare(fields[3])
		if err != nil {
			return nil, fenError("en passant square %q", fields[3])
		}
		// the pushed pawn stands one rank past the target, seen from its owner
		them := p.sideToMove.Other()
		pawnSq := NewSquare(ep.File(), ep.Rank()+1)
		if them == Black {
			pawnSq = NewSquare(ep.File(), ep.Rank()-1)
		}
		if relativeRank(p.sideToMove, ep) != 5 || p.board[ep] != NoPiece || p.board[pawnSq] != NewPiece(them, Pawn) {
			return nil, fenError("en passant square %v does not follow a double push", ep)
		}
		p.enPassant = ep
	}

	// 5./6. Clocks
	if len(fields) > 4 {
		n, err := strconv.Atoi(fields[4])
		if err != nil || n < 0 {
			return nil, fenError("halfmove clock %q", fields[4])
		}
		p.halfmoveClock = n
	}
	if len(fields) > 5 {
		n, err := strconv.Atoi(fields[5])
		if err != nil || n < 1 {
			return nil, fenError("fullmove number %q", fields[5])
		}
		p.fullmoveNumber = n
	}

	if p.SquareAttacked(p.KingSquare(p.sideToMove.Other()), p.sideToMove) {
		return nil, fenError("side not to move is in check")
	}

	p.hash = p.ComputeHash()
	return p, nil
}

func (p *Position) parseCastling(field string) error {
	for i := range p.castleRook {
		p.castleRook[i] = NoSquare
	}
	if field == "-" {
		return nil
	}
	sawKQ, sawFile := false, false
	for i := 0; i < len(field); i++ {
		ch := field[i]
		c := White
		if ch >= 'a' && ch <= 'z' {
			c = Black
			ch -= 'a' - 'A'
		}
		ksq := p.KingSquare(c)
		backRank := Ranks[0]
		if c == Black {
			backRank = Ranks[7]
		}
		if relativeRank(c, ksq) != 0 {
			return fenError("castling right %q without king on back rank", field[i])
		}
		rooks := p.Pieces(c, Rook) & backRank

		var rsq Square
		switch {
		case ch == 'K':
			rsq = p.outerRook(c, true)
			sawKQ = true
		case ch == 'Q':
			rsq = p.outerRook(c, false)
			sawKQ = true
		case ch >= 'A' && ch <= 'H':
			rsq = NewSquare(int(ch-'A'), ksq.Rank())
			if !rooks.Has(rsq) {
				rsq = NoSquare
			}
			sawFile = true
			p.chess960 = true
		default:
			return fenError("castling character %q", field[i])
		}
		if rsq == NoSquare || rsq == ksq {
			return fenError("no rook for castling right %q", field[i])
		}

		right := castlingRight(c, rsq > ksq)
		if p.castling&right != 0 {
			return fenError("castling right %q given twice", field[i])
		}
		p.castling |= right
		p.castleRook[right.index()] = rsq
		p.castleMask[rsq] |= right
		p.castleMask[ksq] |= castlingRight(c, true) | castlingRight(c, false)

		if ksq.File() != 4 || (rsq.File() != 0 && rsq.File() != 7) {
			p.chess960 = true
		}
	}
	// A field mixing KQkq with file letters is X-FEN.
	p.shredderFEN = sawFile && !sawKQ
	return nil
}

// outerRook returns the back-rank rook of c furthest from its king on the
// given wing, or NoSquare.
func (p *Position) outerRook(c Color, kingside bool) Square {
	ksq := p.KingSquare(c)
	backRank := Rank1
	if c == Black {
		backRank = Rank8
	}
	rooks := p.Pieces(c, Rook) & backRank
	if kingside {
		return (rooks & ^(ksq.Bitboard()<<1 - 1)).MSB()
	}
	return (rooks & (ksq.Bitboard() - 1)).LSB()
}

// FEN produces the FEN string of the current position, writing castling
// rights in the same style they were parsed in.
func (p *Position) FEN() string {
	var sb strings.Builder

	// 1. Piece placement
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			pc := p.board[NewSquare(file, rank)]
			if pc == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte('0' + byte(empty))
				empty = 0
			}
			sb.WriteByte(pc.Char())
		}
		if empty > 0 {
			sb.WriteByte('0' + byte(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	// 2. Side to move
	sb.WriteByte(' ')
	sb.WriteString(p.sideToMove.String())

	// 3. Castling rights
	sb.WriteByte(' ')
	sb.WriteString(p.castlingString())

	// 4. En passant square
	sb.WriteByte(' ')
	sb.WriteString(p.enPassant.String())

	// 5./6. Clocks
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.halfmoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.fullmoveNumber))
	return sb.String()
}

func (p *Position) castlingString() string {
	if p.castling == NoCastling {
		return "-"
	}
	var buf []byte
	for i, right := range [4]CastlingRights{WhiteKingside, WhiteQueenside, BlackKingside, BlackQueenside} {
		if p.castling&right == 0 {
			continue
		}
		// X-FEN names the rook file when an inner rook holds the right
		ch := "KQKQ"[i]
		if c := Color(i / 2); p.shredderFEN || p.castleRook[i] != p.outerRook(c, i%2 == 0) {
			ch = 'A' + byte(p.castleRook[i].File())
		}
		if i >= 2 {
			ch += 'a' - 'A'
		}
		buf = append(buf, ch)
	}
	return string(buf)
}
