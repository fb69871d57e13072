package chessmg_test

import (
	"testing"

	"golang.org/x/exp/slices"

	"chesscore/chessmg"
)

var movegenFENs = []string{
	chessmg.StartFEN,
	kiwipeteFEN,
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	"8/8/8/k2pP2Q/8/8/8/4K3 w - d6 0 1",
	"5k2/8/8/8/8/8/8/4K2R w K - 0 1",
	"bqnb1rkr/pp3ppp/3ppn2/2p5/5P2/P2P4/NPP1P1PP/BQ1BNRKR w HFhf - 2 9",
}

// forEachNode calls f at every position reachable within depth plies.
func forEachNode(p *chessmg.Position, depth int, f func(*chessmg.Position)) {
	f(p)
	if depth == 0 {
		return
	}
	for _, m := range p.LegalMoves() {
		p.MakeMove(m)
		forEachNode(p, depth-1, f)
		p.UndoMove()
	}
}

func sorted(moves []chessmg.Move) []chessmg.Move {
	out := slices.Clone(moves)
	slices.Sort(out)
	return out
}

func TestCapturesAndNoncapturesPartitionLegalMoves(t *testing.T) {
	for _, fen := range movegenFENs {
		forEachNode(mustParse(t, fen), 2, func(p *chessmg.Position) {
			all := p.LegalMoves()
			caps := p.LegalCaptures()
			quiets := p.LegalNoncaptures()
			for _, m := range caps {
				if !m.IsCapture() {
					t.Fatalf("%s: %s in captures is not a capture", p.FEN(), m)
				}
			}
			for _, m := range quiets {
				if m.IsCapture() {
					t.Fatalf("%s: %s in non-captures is a capture", p.FEN(), m)
				}
			}
			union := sorted(append(slices.Clone(caps), quiets...))
			if !slices.Equal(union, sorted(all)) {
				t.Fatalf("%s: captures+non-captures %v != all %v", p.FEN(), union, sorted(all))
			}
			if p.CountMoves() != len(all) || p.HasLegalMoves() != (len(all) > 0) {
				t.Fatalf("%s: CountMoves %d, len %d", p.FEN(), p.CountMoves(), len(all))
			}
		})
	}
}

func TestGivesCheckAgreesWithMakeMove(t *testing.T) {
	for _, fen := range movegenFENs {
		forEachNode(mustParse(t, fen), 2, func(p *chessmg.Position) {
			for _, m := range p.LegalMoves() {
				predicted := p.GivesCheck(m)
				p.MakeMove(m)
				actual := p.InCheck()
				p.UndoMove()
				if predicted != actual {
					t.Fatalf("%s %s: GivesCheck %v, InCheck after move %v", p.FEN(), m, predicted, actual)
				}
			}
		})
	}
}

func TestGivesCheckSpecialMoves(t *testing.T) {
	tests := []struct {
		fen  string
		move string
		want bool
	}{
		{"8/8/8/k2pP2Q/8/8/8/4K3 w - d6 0 1", "e5d6", true},
		{"5k2/8/8/8/8/8/8/4K2R w K - 0 1", "e1g1", true},
		{"4k3/1P6/8/8/8/8/8/4K3 w - - 0 1", "b7b8q", true},
		{"4k3/1P6/8/8/8/8/8/4K3 w - - 0 1", "b7b8n", false},
		{"3k4/1P6/8/8/8/8/8/4K3 w - - 0 1", "b7b8r", true},
		{chessmg.StartFEN, "e2e4", false},
	}
	for _, tt := range tests {
		p := mustParse(t, tt.fen)
		m, err := p.ParseMove(tt.move)
		if err != nil {
			t.Fatalf("%s %s: %v", tt.fen, tt.move, err)
		}
		if got := p.GivesCheck(m); got != tt.want {
			t.Errorf("%s %s: GivesCheck %v want %v", tt.fen, tt.move, got, tt.want)
		}
	}
}

func TestSquaresAttackedStart(t *testing.T) {
	p := chessmg.NewPosition()
	if got := p.SquaresAttacked(chessmg.White); got != 0xffff7e {
		t.Fatalf("white attacks: got %#x want 0xffff7e", uint64(got))
	}
	if got := p.SquaresAttacked(chessmg.Black); got != 0x7effff0000000000 {
		t.Fatalf("black attacks: got %#x want 0x7effff0000000000", uint64(got))
	}
}

func TestCheckersAndPinned(t *testing.T) {
	p := mustParse(t, "4k3/4r3/8/8/8/8/3p4/4K3 w - - 0 2")
	want := chessmg.D2.Bitboard() | chessmg.E7.Bitboard()
	if got := p.Checkers(); got != want {
		t.Fatalf("checkers: got\n%v\nwant\n%v", got, want)
	}
	if !p.InCheck() {
		t.Fatalf("InCheck false under double check")
	}

	p = mustParse(t, "4k3/4r3/8/8/7b/8/4PB2/4K3 w - - 0 1")
	if got, want := p.Pinned(), chessmg.E2.Bitboard()|chessmg.F2.Bitboard(); got != want {
		t.Fatalf("pinned: got\n%v\nwant\n%v", got, want)
	}
	if p.InCheck() {
		t.Fatalf("InCheck with blockers on both lines")
	}
	// the pinned pawn may still push along the file
	for _, text := range []string{"e2e3", "e2e4"} {
		if _, err := p.ParseMove(text); err != nil {
			t.Errorf("%s: %v", text, err)
		}
	}
}

func TestAttackersAndSquareAttacked(t *testing.T) {
	p := mustParse(t, kiwipeteFEN)
	// d5 pawn is hit by the e6 pawn, the b6 knight and the f6 knight
	want := chessmg.E6.Bitboard() | chessmg.B6.Bitboard() | chessmg.F6.Bitboard()
	if got := p.Attackers(chessmg.D5, chessmg.Black); got != want {
		t.Fatalf("attackers of d5:\n%v\nwant\n%v", got, want)
	}
	if !p.SquareAttacked(chessmg.D5, chessmg.Black) {
		t.Fatalf("d5 should be attacked by black")
	}
	if p.SquareAttacked(chessmg.A1, chessmg.Black) {
		t.Fatalf("a1 should not be attacked by black")
	}
}

func TestIsLegal(t *testing.T) {
	p := mustParse(t, "4k3/4r3/8/8/8/8/4P3/4K3 w - - 0 1")
	legal := chessmg.NewMove(chessmg.E2, chessmg.E4, chessmg.Pawn, chessmg.NoPieceType, chessmg.NoPieceType, chessmg.DoublePush)
	if !p.IsLegal(legal) {
		t.Fatalf("e2e4 should be legal")
	}
	kingIntoFile := chessmg.NewMove(chessmg.E1, chessmg.E2, chessmg.King, chessmg.NoPieceType, chessmg.NoPieceType, chessmg.Quiet)
	if p.IsLegal(kingIntoFile) {
		t.Fatalf("king onto an occupied square should not be legal")
	}
	if p.IsLegal(chessmg.NoMove) {
		t.Fatalf("NoMove should not be legal")
	}
}

func TestNoLegalMovesEndsGeneration(t *testing.T) {
	p := mustParse(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	if moves := p.LegalMoves(); len(moves) != 0 {
		t.Fatalf("stalemate position has moves %v", moves)
	}
	buf := make([]chessmg.Move, 3, 8)
	if got := p.LegalMovesInto(buf); len(got) != 0 {
		t.Fatalf("LegalMovesInto kept stale entries: %v", got)
	}
}

func TestMoveEncoding(t *testing.T) {
	m := chessmg.NewMove(chessmg.B7, chessmg.A8, chessmg.Pawn, chessmg.Rook, chessmg.Queen, chessmg.PromotionCapture)
	if m.From() != chessmg.B7 || m.To() != chessmg.A8 {
		t.Fatalf("squares: %v %v", m.From(), m.To())
	}
	if m.Piece() != chessmg.Pawn || m.Captured() != chessmg.Rook || m.Promotion() != chessmg.Queen {
		t.Fatalf("pieces: %v %v %v", m.Piece(), m.Captured(), m.Promotion())
	}
	if !m.IsCapture() || !m.IsPromotion() || m.IsCastle() {
		t.Fatalf("flags of %s", m)
	}
	if m.String() != "b7a8q" {
		t.Fatalf("String: %q", m.String())
	}
	if chessmg.NoMove.String() != "0000" {
		t.Fatalf("NoMove String: %q", chessmg.NoMove.String())
	}
	if m.Kind().String() != "promo-capture" {
		t.Fatalf("kind name: %q", m.Kind().String())
	}
}
