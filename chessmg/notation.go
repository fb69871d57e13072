package chessmg

import (
	"fmt"
	"strings"
)

// MoveString formats m in coordinate notation for this position. Castling is
// written as the king's destination ("e1g1") in standard chess and as
// king-takes-rook ("e1h1") in Chess960 mode.
func (p *Position) MoveString(m Move) string {
	if m.IsCastle() && !p.chess960 {
		kingTo, _ := castleSquares(p.sideToMove, m.Kind())
		return coordString(m.From(), kingTo, NoPieceType)
	}
	return m.String()
}

// ParseMove converts coordinate notation ("e2e4", "e7e8q") into the matching
// legal move. Castling is also accepted in king-takes-rook form in either
// mode. The position is not modified.
func (p *Position) ParseMove(text string) (Move, error) {
	s := strings.ToLower(strings.TrimSpace(text))
	if len(s) != 4 && len(s) != 5 {
		return NoMove, fmt.Errorf("%w: %q", ErrInvalidMove, text)
	}
	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, fmt.Errorf("%w: %q", ErrInvalidMove, text)
	}
	if _, err := ParseSquare(s[2:4]); err != nil {
		return NoMove, fmt.Errorf("%w: %q", ErrInvalidMove, text)
	}
	if len(s) == 5 && strings.IndexByte("nbrq", s[4]) < 0 {
		return NoMove, fmt.Errorf("%w: bad promotion in %q", ErrInvalidMove, text)
	}

	var buf [256]Move
	for _, m := range p.generate(buf[:0], genAll) {
		if m.From() != from {
			continue
		}
		if m.String() == s || p.MoveString(m) == s {
			return m, nil
		}
	}
	return NoMove, fmt.Errorf("%w: %s in %s", ErrIllegalMove, s, p.FEN())
}

// MakeMoveString parses text with ParseMove and makes the move.
func (p *Position) MakeMoveString(text string) error {
	m, err := p.ParseMove(text)
	if err != nil {
		return err
	}
	p.MakeMove(m)
	return nil
}
