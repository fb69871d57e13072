// Package ttable is a fixed-size hash table of perft subtree counts keyed by
// position hash and depth. It implements chessmg.PerftCache.
package ttable

import "unsafe"

const clusterSize = 4

// Entry is one cached subtree count.
type Entry struct {
	Hash  uint64
	Nodes uint64
	Depth int8
}

// Table groups entries in clusters of four; a hash maps to one cluster.
// It is not safe for concurrent use.
type Table struct {
	entries      []Entry
	clusterCount uint64
}

// New allocates a table of roughly sizeMB megabytes (at least one cluster).
func New(sizeMB int) *Table {
	t := &Table{}
	t.Resize(sizeMB)
	return t
}

// Resize reallocates the table, dropping every entry.
func (t *Table) Resize(sizeMB int) {
	entrySize := uint64(unsafe.Sizeof(Entry{}))
	if sizeMB < 0 {
		sizeMB = 0
	}
	clusterCount := uint64(sizeMB) * 1024 * 1024 / (entrySize * clusterSize)
	if clusterCount == 0 {
		clusterCount = 1
	}
	t.clusterCount = clusterCount
	t.entries = make([]Entry, clusterCount*clusterSize)
}

// Clear empties the table without reallocating.
func (t *Table) Clear() {
	for i := range t.entries {
		t.entries[i] = Entry{}
	}
}

// Len returns the number of slots.
func (t *Table) Len() int { return len(t.entries) }

func (t *Table) cluster(hash uint64) []Entry {
	base := (hash % t.clusterCount) * clusterSize
	return t.entries[base : base+clusterSize]
}

// Probe returns the stored count for hash at exactly depth.
func (t *Table) Probe(hash uint64, depth int) (uint64, bool) {
	for _, e := range t.cluster(hash) {
		if e.Hash == hash && int(e.Depth) == depth && e.Depth != 0 {
			return e.Nodes, true
		}
	}
	return 0, false
}

// Store records a count. It prefers the slot already holding hash and depth,
// then an empty slot, and otherwise replaces the shallowest entry in the cluster.
func (t *Table) Store(hash uint64, depth int, nodes uint64) {
	cl := t.cluster(hash)
	target := -1

	for i := range cl {
		if cl[i].Hash == hash && int(cl[i].Depth) == depth {
			target = i
			break
		}
	}
	if target == -1 {
		for i := range cl {
			if cl[i].Depth == 0 {
				target = i
				break
			}
		}
	}
	if target == -1 {
		target = 0
		for i := 1; i < len(cl); i++ {
			if cl[i].Depth < cl[target].Depth {
				target = i
			}
		}
	}
	cl[target] = Entry{Hash: hash, Nodes: nodes, Depth: int8(depth)}
}

// Hashfull returns the permille of used slots among the first thousand.
func (t *Table) Hashfull() int {
	n := len(t.entries)
	if n > 1000 {
		n = 1000
	}
	used := 0
	for i := 0; i < n; i++ {
		if t.entries[i].Depth != 0 {
			used++
		}
	}
	return used * 1000 / n
}
