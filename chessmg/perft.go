package chessmg

import "sync"

// Perft counts leaf nodes (move sequences) from the position for a given depth.
// Per-depth buffers are reused, so a run allocates only once per ply.
func Perft(p *Position, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	pc := perftCtx{bufs: make([][]Move, depth+1)}
	return perftRec(p, depth, &pc)
}

type perftCtx struct {
	bufs [][]Move
}

func (pc *perftCtx) bufFor(depth int) []Move {
	if pc.bufs[depth] == nil {
		pc.bufs[depth] = make([]Move, 0, 256)
	}
	return pc.bufs[depth][:0]
}

func perftRec(p *Position, depth int, pc *perftCtx) uint64 {
	moves := p.LegalMovesInto(pc.bufFor(depth))
	pc.bufs[depth] = moves
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		p.MakeMove(m)
		nodes += perftRec(p, depth-1, pc)
		p.UndoMove()
	}
	return nodes
}

// PerftDivide returns a map from each legal root move to the number of leaf nodes
// reachable from that move at the given depth. Useful for debugging.
func PerftDivide(p *Position, depth int) map[Move]uint64 {
	result := make(map[Move]uint64)
	if depth <= 0 {
		return result
	}
	for _, m := range p.LegalMoves() {
		p.MakeMove(m)
		result[m] = Perft(p, depth-1)
		p.UndoMove()
	}
	return result
}

// PerftCache stores subtree node counts keyed by position hash and depth.
type PerftCache interface {
	Probe(hash uint64, depth int) (nodes uint64, ok bool)
	Store(hash uint64, depth int, nodes uint64)
}

// PerftHashed is Perft with subtree counts memoised in cache. Hash
// collisions can make the result wrong, so it is a speed tool, not an oracle.
func PerftHashed(p *Position, depth int, cache PerftCache) uint64 {
	if depth <= 0 {
		return 1
	}
	pc := perftCtx{bufs: make([][]Move, depth+1)}
	return perftHashedRec(p, depth, &pc, cache)
}

func perftHashedRec(p *Position, depth int, pc *perftCtx, cache PerftCache) uint64 {
	moves := p.LegalMovesInto(pc.bufFor(depth))
	pc.bufs[depth] = moves
	if depth == 1 {
		return uint64(len(moves))
	}
	if n, ok := cache.Probe(p.hash, depth); ok {
		return n
	}
	var nodes uint64
	for _, m := range moves {
		p.MakeMove(m)
		nodes += perftHashedRec(p, depth-1, pc, cache)
		p.UndoMove()
	}
	cache.Store(p.hash, depth, nodes)
	return nodes
}

// PerftParallel splits the root moves over workers goroutines, each walking
// its own clone of p. p itself is not modified.
func PerftParallel(p *Position, depth, workers int) uint64 {
	if depth <= 1 || workers <= 1 {
		return Perft(p, depth)
	}
	roots := p.LegalMoves()
	jobs := make(chan Move)
	counts := make(chan uint64, len(roots))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(pos *Position) {
			defer wg.Done()
			for m := range jobs {
				pos.MakeMove(m)
				counts <- Perft(pos, depth-1)
				pos.UndoMove()
			}
		}(p.Clone())
	}
	for _, m := range roots {
		jobs <- m
	}
	close(jobs)
	wg.Wait()
	close(counts)

	var total uint64
	for n := range counts {
		total += n
	}
	return total
}
