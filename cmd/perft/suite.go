package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	eng "chesscore/chessmg"
)

// suiteEntry is one line of a perft suite: "<fen> ;D1 20 ;D2 400 ...".
type suiteEntry struct {
	line   int
	fen    string
	counts map[int]uint64
}

func parseSuiteLine(text string) (fen string, counts map[int]uint64, err error) {
	parts := strings.Split(text, ";")
	fen = strings.TrimSpace(parts[0])
	counts = make(map[int]uint64)
	for _, part := range parts[1:] {
		fields := strings.Fields(part)
		if len(fields) != 2 || len(fields[0]) < 2 || fields[0][0] != 'D' {
			return "", nil, fmt.Errorf("bad depth field %q", strings.TrimSpace(part))
		}
		depth, err := strconv.Atoi(fields[0][1:])
		if err != nil || depth < 1 {
			return "", nil, fmt.Errorf("bad depth %q", fields[0])
		}
		nodes, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return "", nil, fmt.Errorf("bad node count %q", fields[1])
		}
		counts[depth] = nodes
	}
	return fen, counts, nil
}

func readSuite(path string) ([]suiteEntry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var entries []suiteEntry
	sc := bufio.NewScanner(file)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fen, counts, err := parseSuiteLine(line)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
		entries = append(entries, suiteEntry{line: lineNo, fen: fen, counts: counts})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// runSuite checks every listed count up to maxDepth and returns the exit code.
func runSuite(path string, maxDepth, workers int) int {
	entries, err := readSuite(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading suite: %v\n", err)
		return 2
	}
	failed := 0
	for _, e := range entries {
		pos, err := eng.ParseFEN(e.fen)
		if err != nil {
			fmt.Printf("line %d: %v\n", e.line, err)
			failed++
			continue
		}
		for depth := 1; depth <= maxDepth; depth++ {
			want, ok := e.counts[depth]
			if !ok {
				continue
			}
			got := eng.PerftParallel(pos, depth, workers)
			if got != want {
				fmt.Printf("FAIL line %d depth %d: got %d want %d (%s)\n", e.line, depth, got, want, e.fen)
				failed++
			}
		}
	}
	fmt.Printf("%d positions, %d failures\n", len(entries), failed)
	if failed > 0 {
		return 1
	}
	return 0
}
