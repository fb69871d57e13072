package chessmg

import "math/rand"

// Zobrist hashing tables for pieces, castling, en passant, and side to move.
var (
	zobristPiece     [15][64]uint64 // indexed by Piece code
	zobristCastle    [16]uint64     // one key per castling-rights state
	zobristEnPassant [8]uint64      // en passant file
	zobristSide      uint64         // black to move
)

func initZobrist() {
	// Fixed seed keeps hashes stable across runs and processes.
	rnd := rand.New(rand.NewSource(0xC0DE))

	for p := range zobristPiece {
		for sq := range zobristPiece[p] {
			zobristPiece[p][sq] = rnd.Uint64()
		}
	}
	for cr := range zobristCastle {
		zobristCastle[cr] = rnd.Uint64()
	}
	for f := range zobristEnPassant {
		zobristEnPassant[f] = rnd.Uint64()
	}
	zobristSide = rnd.Uint64()
}

// ComputeHash calculates the position hash from scratch. The incrementally
// maintained Hash must always equal it.
func (p *Position) ComputeHash() uint64 {
	var key uint64
	for sq, pc := range p.board {
		if pc != NoPiece {
			key ^= zobristPiece[pc][sq]
		}
	}
	if p.sideToMove == Black {
		key ^= zobristSide
	}
	key ^= zobristCastle[p.castling]
	if p.enPassant != NoSquare {
		key ^= zobristEnPassant[p.enPassant.File()]
	}
	return key
}
