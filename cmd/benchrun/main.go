package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// run executes a command and prints its combined output. Returns exit code.
func run(name string, args ...string) int {
	cmd := exec.Command(name, args...)
	cmd.Env = os.Environ()
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	fmt.Print(out.String())
	if err == nil {
		return 0
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return ee.ExitCode()
	}
	fmt.Fprintf(os.Stderr, "error running %s: %v\n", name, err)
	return 1
}

type perftRun struct {
	label string
	fen   string
	depth string
	extra []string
}

var perftRuns = []perftRun{
	{"Initial", "startpos", "4", nil},
	{"Initial", "startpos", "5", nil},
	{"Initial-x4", "startpos", "5", []string{"-workers", "4"}},
	{"Initial-hash", "startpos", "5", []string{"-hash", "64"}},
	{"Kiwipete", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", "4", nil},
	{"EnPassant", "8/8/8/8/1k1PpN1R/8/8/4K3 b - d3 0 1", "6", nil},
	{"Chess960", "bqnb1rkr/pp3ppp/3ppn2/2p5/5P2/P2P4/NPP1P1PP/BQ1BNRKR w HFhf - 2 9", "4", nil},
}

func main() {
	// Usage: go run ./cmd/benchrun
	// Format: BenchmarkName  Iterations  ns/op  B/op  allocs/op
	fmt.Println("Columns: BENCHMARK  N  ns/op  B/op  allocs/op")
	code := run("go", "test", "./bench", "-run", "^$", "-bench", ".", "-benchmem", "-benchtime=1s")
	if code != 0 {
		os.Exit(code)
	}

	fmt.Println("\nPerft Performance:")
	fmt.Println("TEST \t\tDepth \t\tNodes \t\tTime \tNPS")
	for _, r := range perftRuns {
		args := append([]string{"run", "./cmd/perft", "-fen", r.fen, "-depth", r.depth, "-label", r.label}, r.extra...)
		run("go", args...)
	}
	os.Exit(0)
}
