package chessmg_test

import (
	"testing"

	"chesscore/chessmg"
	"chesscore/ttable"
)

const kiwipeteFEN = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

func mustParse(t testing.TB, fen string) *chessmg.Position {
	t.Helper()
	p, err := chessmg.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return p
}

type perftCase struct {
	name  string
	fen   string
	nodes []uint64 // nodes[d] is perft(d)
}

func runPerftCases(t *testing.T, cases []perftCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := mustParse(t, tc.fen)
			before := p.FEN()
			for d, want := range tc.nodes {
				if got := chessmg.Perft(p, d); got != want {
					t.Fatalf("%s perft(%d): got %d want %d", tc.fen, d, got, want)
				}
			}
			if after := p.FEN(); after != before {
				t.Fatalf("perft changed the position: %q -> %q", before, after)
			}
		})
	}
}

func TestPerftStandard(t *testing.T) {
	runPerftCases(t, []perftCase{
		{"initial", "startpos", []uint64{1, 20, 400, 8902}},
		{"kiwipete", kiwipeteFEN, []uint64{1, 48, 2039, 97862}},
		{"position3", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", []uint64{1, 14, 191, 2812}},
		{"position4", "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", []uint64{1, 6, 264, 9467}},
		{"position5", "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8", []uint64{1, 44, 1486, 62379}},
		{"position6", "r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10", []uint64{1, 46, 2079, 89890}},
	})
}

func TestPerftDeep(t *testing.T) {
	if testing.Short() {
		t.Skip("deep perft skipped in -short mode")
	}
	tests := []struct {
		fen   string
		depth int
		nodes uint64
	}{
		{chessmg.StartFEN, 4, 197281},
		{chessmg.StartFEN, 5, 4865609},
		{kiwipeteFEN, 4, 4085603},
		{"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 5, 674624},
		{"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", 4, 422333},
	}
	for _, tt := range tests {
		if got := chessmg.PerftParallel(mustParse(t, tt.fen), tt.depth, 4); got != tt.nodes {
			t.Errorf("%s perft(%d): got %d want %d", tt.fen, tt.depth, got, tt.nodes)
		}
	}
}

func TestPerftSimplePositions(t *testing.T) {
	runPerftCases(t, []perftCase{
		{"kings", "8/4k3/8/8/8/8/4K3/8 w - - 0 1", []uint64{1, 8}},
		{"bishop", "7k/8/8/8/8/4B3/8/7K w - - 0 1", []uint64{1, 14}},
		{"knight", "7k/8/8/8/8/4N3/8/7K w - - 0 1", []uint64{1, 11}},
		{"pinned pawn", "4k3/4r3/8/8/8/3p4/4P3/4K3 w - - 0 1", []uint64{1, 6}},
		{"double check", "4k3/4r3/8/8/8/8/3p4/4K3 w - - 0 2", []uint64{1, 4}},
		{"bishop and rook", "4k3/8/8/8/8/8/1r4K1/5b2 w - - 0 2", []uint64{1, 5}},
		{"queens and bishops", "4k3/2b3q1/3P1P2/4K3/3P1P2/2b3q1/8/8 w - - 0 1", []uint64{1, 6}},
	})
}

func TestPerftEnPassant(t *testing.T) {
	runPerftCases(t, []perftCase{
		// diagonal pin through the capturing pawn
		{"diag1", "4k3/b7/8/2Pp4/8/8/8/6K1 w - d6 0 2", []uint64{1, 5}},
		{"diag2", "4k3/7b/8/4pP2/8/8/8/1K6 w - e6 0 2", []uint64{1, 5}},
		{"diag3", "6k1/8/8/8/2pP4/8/B7/3K4 b - d3 0 2", []uint64{1, 5}},
		{"diag4", "1k6/8/8/8/4Pp2/8/7B/4K3 b - e3 0 2", []uint64{1, 5}},
		{"diag5", "4k3/b7/8/1pP5/8/8/8/6K1 w - b6 0 2", []uint64{1, 6}},
		{"diag6", "4k3/7b/8/5Pp1/8/8/8/1K6 w - g6 0 2", []uint64{1, 6}},
		{"diag7", "6k1/8/8/8/1Pp5/8/B7/4K3 b - b3 0 2", []uint64{1, 6}},
		{"diag8", "1k6/8/8/8/5pP1/8/7B/4K3 b - g3 0 2", []uint64{1, 6}},
		{"diag9", "4k3/K7/8/1pP5/8/8/8/6b1 w - b6 0 2", []uint64{1, 6}},
		{"diag10", "4k3/7K/8/5Pp1/8/8/8/1b6 w - g6 0 2", []uint64{1, 6}},
		{"diag11", "6B1/8/8/8/1Pp5/8/k7/4K3 b - b3 0 2", []uint64{1, 6}},
		{"diag12", "1B6/8/8/8/5pP1/8/7k/4K3 b - g3 0 2", []uint64{1, 6}},
		// both pawns leave the rank
		{"horizontal1", "4k3/8/8/K2pP2r/8/8/8/8 w - d6 0 1", []uint64{1, 6}},
		{"horizontal2", "4k3/8/8/r2pP2K/8/8/8/8 w - d6 0 1", []uint64{1, 6}},
		{"horizontal3", "8/8/8/8/1k1Pp2R/8/8/4K3 b - d3 0 1", []uint64{1, 8}},
		{"horizontal4", "8/8/8/8/1R1Pp2k/8/8/4K3 b - d3 0 1", []uint64{1, 6}},
		{"vertical1", "k7/8/4r3/3pP3/8/8/8/4K3 w - d6 0 1", []uint64{1, 5}},
		{"vertical2", "k3K3/8/8/3pP3/8/8/8/4r3 w - d6 0 1", []uint64{1, 6}},
		{"file pin four fields", "4k3/8/4r3/3pP3/8/8/8/4K3 w - d6", []uint64{1, 5}},
		{"legal1", "8/8/8/8/1k1PpN1R/8/8/4K3 b - d3 0 1", []uint64{1, 9, 193, 1322}},
		{"legal2", "8/8/8/8/1k1Ppn1R/8/8/4K3 b - d3 0 1", []uint64{1, 17, 220, 3001}},
		{"legal3", "4k3/8/8/2PpP3/8/8/8/4K3 w - d6 0 1", []uint64{1, 9, 47, 376}},
		{"legal4", "4k3/8/8/8/2pPp3/8/8/4K3 b - d3 0 1", []uint64{1, 9, 47, 376}},
		{"capture checker1", "4k3/8/8/4pP2/3K4/8/8/8 w - e6 0 2", []uint64{1, 9}},
		{"capture checker2", "8/8/8/4k3/5Pp1/8/8/3K4 b - f3 0 1", []uint64{1, 9}},
		{"block check", "4k3/8/K6r/3pP3/8/8/8/8 w - d6 0 1", []uint64{1, 6}},
	})
}

func TestPerftChess960(t *testing.T) {
	runPerftCases(t, []perftCase{
		{"dfrc1", "bqnb1rkr/pp3ppp/3ppn2/2p5/5P2/P2P4/NPP1P1PP/BQ1BNRKR w HFhf - 2 9", []uint64{1, 21, 528, 12189}},
		{"dfrc2", "2nnrbkr/p1qppppp/8/1ppb4/6PP/3PP3/PPP2P2/BQNNRBKR w HEhe - 1 9", []uint64{1, 21, 807, 18002}},
		{"dfrc3", "b1q1rrkb/pppppppp/3nn3/8/P7/1PPP4/4PPPP/BQNNRKRB w GE - 1 9", []uint64{1, 20, 479, 10471}},
	})
}

func TestPerftDivideSumsToPerft(t *testing.T) {
	p := mustParse(t, kiwipeteFEN)
	div := chessmg.PerftDivide(p, 3)
	if len(div) != 48 {
		t.Fatalf("divide roots: got %d want 48", len(div))
	}
	var sum uint64
	for _, n := range div {
		sum += n
	}
	if sum != 97862 {
		t.Fatalf("divide sum: got %d want 97862", sum)
	}
	if len(chessmg.PerftDivide(p, 0)) != 0 {
		t.Fatalf("divide at depth 0 should be empty")
	}
}

func TestPerftHashedMatchesPerft(t *testing.T) {
	table := ttable.New(1)
	for _, fen := range []string{chessmg.StartFEN, kiwipeteFEN, "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"} {
		p := mustParse(t, fen)
		want := chessmg.Perft(p, 3)
		table.Clear()
		if got := chessmg.PerftHashed(p, 3, table); got != want {
			t.Fatalf("%s: hashed %d, plain %d", fen, got, want)
		}
		// second run is served from the table
		if got := chessmg.PerftHashed(p, 3, table); got != want {
			t.Fatalf("%s: warm hashed %d, plain %d", fen, got, want)
		}
	}
}

func TestPerftParallelMatchesPerft(t *testing.T) {
	p := mustParse(t, kiwipeteFEN)
	before := p.FEN()
	if got := chessmg.PerftParallel(p, 3, 4); got != 97862 {
		t.Fatalf("parallel perft: got %d want 97862", got)
	}
	if got := chessmg.PerftParallel(p, 2, 1); got != 2039 {
		t.Fatalf("single worker: got %d want 2039", got)
	}
	if p.FEN() != before {
		t.Fatalf("PerftParallel changed the position")
	}
}
