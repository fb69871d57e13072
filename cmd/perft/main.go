package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"github.com/dylhunn/dragontoothmg"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	eng "chesscore/chessmg"
	"chesscore/ttable"
)

func main() {
	fen := flag.String("fen", eng.StartFEN, "FEN string (defaults to initial position)")
	depth := flag.Int("depth", 0, "Perft depth (required)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	repeat := flag.Int("repeat", 1, "Repeat perft N times and report aggregate (for steadier timings)")
	label := flag.String("label", "", "Optional label prefix for one-line output")
	cpuProf := flag.String("cpuprofile", "", "Write CPU profile to file during run")
	memProf := flag.String("memprofile", "", "Write heap profile to file after run")
	hashMB := flag.Int("hash", 0, "Cache subtree counts in a table of this many MB (single worker only)")
	workers := flag.Int("workers", 1, "Split root moves across this many goroutines")
	chess960 := flag.Bool("chess960", false, "Print castling as king-takes-rook")
	verify := flag.Bool("verify", false, "With -divide, cross-check every root move against dragontoothmg (which misses en passant by a pawn pinned along the capture diagonal)")
	suite := flag.String("suite", "", "Check a perft suite file (\"<fen> ;D1 20 ;D2 400\" per line) up to -depth")
	flag.Parse()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	if *suite != "" {
		os.Exit(runSuite(*suite, *depth, *workers))
	}

	pos, err := eng.ParseFEN(*fen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ParseFEN error: %v\n", err)
		os.Exit(2)
	}
	if *chess960 {
		pos.SetChess960(true)
	}

	if *divide {
		os.Exit(runDivide(pos, *depth, *verify))
	}

	if *cpuProf != "" {
		f, err := os.Create(*cpuProf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating cpuprofile: %v\n", err)
			os.Exit(2)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "start cpu profile: %v\n", err)
			os.Exit(2)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	var table *ttable.Table
	if *hashMB > 0 {
		table = ttable.New(*hashMB)
	}

	var totalNodes uint64
	start := time.Now()
	for i := 0; i < *repeat; i++ {
		switch {
		case table != nil:
			table.Clear()
			totalNodes += eng.PerftHashed(pos, *depth, table)
		case *workers > 1:
			totalNodes += eng.PerftParallel(pos, *depth, *workers)
		default:
			totalNodes += eng.Perft(pos, *depth)
		}
	}
	elapsed := time.Since(start)
	nps := float64(totalNodes) / elapsed.Seconds()

	// Single line: Label Depth Nodes Time NPS
	fmt.Printf("%s \t%d \t\t%d \t\t%s \t%.0f\n", *label, *depth, totalNodes, elapsed, nps)
	if table != nil {
		fmt.Fprintf(os.Stderr, "hashfull %d\n", table.Hashfull())
	}

	if *memProf != "" {
		f, err := os.Create(*memProf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating memprofile: %v\n", err)
			os.Exit(2)
		}
		if err := pprof.WriteHeapProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "write heap profile: %v\n", err)
			os.Exit(2)
		}
		_ = f.Close()
	}
}

// runDivide prints per-move counts sorted by move text and returns the exit code.
func runDivide(pos *eng.Position, depth int, verify bool) int {
	div := eng.PerftDivide(pos, depth)
	byText := make(map[string]uint64, len(div))
	var sum uint64
	for m, n := range div {
		byText[pos.MoveString(m)] = n
		sum += n
	}
	keys := maps.Keys(byText)
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Printf("%s: %d\n", k, byText[k])
	}
	fmt.Printf("Total: %d\n", sum)

	if !verify {
		return 0
	}
	if pos.Chess960() {
		fmt.Fprintln(os.Stderr, "-verify does not support Chess960 positions")
		return 2
	}
	ref := referenceDivide(pos.FEN(), depth)
	mismatches := 0
	for _, k := range keys {
		if want, ok := ref[k]; !ok || want != byText[k] {
			fmt.Printf("MISMATCH %s: got %d, dragontoothmg %d\n", k, byText[k], want)
			mismatches++
		}
		delete(ref, k)
	}
	missing := maps.Keys(ref)
	slices.Sort(missing)
	for _, k := range missing {
		fmt.Printf("MISSING %s: dragontoothmg %d\n", k, ref[k])
		mismatches++
	}
	if mismatches > 0 {
		return 1
	}
	fmt.Println("verified against dragontoothmg")
	return 0
}

func referenceDivide(fen string, depth int) map[string]uint64 {
	board := dragontoothmg.ParseFen(fen)
	out := make(map[string]uint64)
	for _, m := range board.GenerateLegalMoves() {
		undo := board.Apply(m)
		out[m.String()] = referencePerft(&board, depth-1)
		undo()
	}
	return out
}

func referencePerft(b *dragontoothmg.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := b.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		undo := b.Apply(m)
		nodes += referencePerft(b, depth-1)
		undo()
	}
	return nodes
}
