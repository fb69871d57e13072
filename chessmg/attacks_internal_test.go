package chessmg

import (
	"math/rand"
	"testing"
)

func TestSliderTableSizes(t *testing.T) {
	if len(bishopTable) != 5248 {
		t.Fatalf("bishop table: got %d entries want 5248", len(bishopTable))
	}
	if len(rookTable) != 102400 {
		t.Fatalf("rook table: got %d entries want 102400", len(rookTable))
	}
	for sq := A1; sq <= H8; sq++ {
		if bishopMagic[sq].magic != bishopMagics[sq] {
			t.Errorf("bishop %v: built-in multiplier was replaced", sq)
		}
		if rookMagic[sq].magic != rookMagics[sq] {
			t.Errorf("rook %v: built-in multiplier was replaced", sq)
		}
	}
}

func TestMagicLookupMatchesRayCasting(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20000; i++ {
		// sparse and dense boards both
		occ := Bitboard(rng.Uint64() & rng.Uint64())
		if i%2 == 1 {
			occ = Bitboard(rng.Uint64() | rng.Uint64())
		}
		sq := Square(rng.Intn(64))
		if got, want := RookAttacks(sq, occ), slidingAttacks(sq, occ, rookDirs); got != want {
			t.Fatalf("rook %v occ %#x:\n%v\nwant\n%v", sq, uint64(occ), got, want)
		}
		if got, want := BishopAttacks(sq, occ), slidingAttacks(sq, occ, bishopDirs); got != want {
			t.Fatalf("bishop %v occ %#x:\n%v\nwant\n%v", sq, uint64(occ), got, want)
		}
		if QueenAttacks(sq, occ) != RookAttacks(sq, occ)|BishopAttacks(sq, occ) {
			t.Fatalf("queen %v occ %#x is not rook|bishop", sq, uint64(occ))
		}
	}
}

func TestMagicEveryMaskSubset(t *testing.T) {
	for sq := A1; sq <= H8; sq++ {
		for _, tc := range []struct {
			m     *magic
			table []Bitboard
			dirs  []int
		}{
			{&rookMagic[sq], rookTable, rookDirs},
			{&bishopMagic[sq], bishopTable, bishopDirs},
		} {
			n := tc.m.mask.PopCount()
			for idx := 0; idx < 1<<n; idx++ {
				occ := pdep(uint64(idx), tc.m.mask)
				if got, want := tc.table[tc.m.index(occ)], slidingAttacks(sq, occ, tc.dirs); got != want {
					t.Fatalf("%v subset %d: got %#x want %#x", sq, idx, uint64(got), uint64(want))
				}
			}
		}
	}
}

func TestFindMagic(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, sq := range []Square{A1, D4, H8} {
		for _, tc := range []struct {
			mask Bitboard
			dirs []int
		}{
			{rookMask(sq), rookDirs},
			{bishopMask(sq), bishopDirs},
		} {
			mul := findMagic(sq, tc.mask, tc.dirs, rng)
			slots := make([]Bitboard, 1<<tc.mask.PopCount())
			if !fillMagic(slots, sq, tc.mask, mul, uint8(64-tc.mask.PopCount()), tc.dirs) {
				t.Fatalf("%v: findMagic returned a colliding multiplier %#x", sq, mul)
			}
		}
	}
}

func TestRelevantMasks(t *testing.T) {
	if got := rookMask(A1); got != 0x000101010101017e {
		t.Fatalf("rook mask a1: %#x", uint64(got))
	}
	if got := bishopMask(D4); got != 0x0040221400142200 {
		t.Fatalf("bishop mask d4: %#x", uint64(got))
	}
	if got := rookMask(D4).PopCount(); got != 10 {
		t.Fatalf("rook mask d4 popcount %d", got)
	}
}

func TestPdep(t *testing.T) {
	mask := Bitboard(0b1011_0000)
	if got := pdep(0b101, mask); got != 0b1001_0000 {
		t.Fatalf("pdep: got %b", uint64(got))
	}
	if got := pdep(0b111, mask); got != mask {
		t.Fatalf("pdep all: got %b", uint64(got))
	}
}

func TestBetweenAndLine(t *testing.T) {
	if got := between[A1][H8]; got != 0x0040201008040200 {
		t.Fatalf("between a1 h8: %#x", uint64(got))
	}
	if got := line[B2][C3]; got != 0x8040201008040201 {
		t.Fatalf("line b2 c3: %#x", uint64(got))
	}
	if between[A1][B3] != 0 || line[A1][B3] != 0 {
		t.Fatalf("unaligned squares have a line")
	}
	if between[E1][E2] != 0 {
		t.Fatalf("adjacent squares have squares between")
	}
	if Between(E1, E8) != between[E8][E1] || Line(E1, E8) != FileE {
		t.Fatalf("file e: between %#x line %#x", uint64(Between(E1, E8)), uint64(Line(E1, E8)))
	}
}
