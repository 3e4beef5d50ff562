// Copyright (c) 2024 The vellumdd Authors
//
// MIT License

package dd

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// unique is the node table together with its hash-consing index. It
// generalizes the map-based unique table this package is grounded on
// (keying on a byte-packed (level, low, high) triple) by hashing the triple
// with xxhash instead of relying on a Go map, and by keeping an explicit
// chained hash table (bucket heads plus a next-index per node) the way the
// array-based unique table in the library this is adapted from does, so that
// resizing never has to rehash through Go's map implementation.
type unique struct {
	nodes   []node  // slot 0 unused, slot 1 is the single stored terminal
	buckets []int32 // buckets[h] is the index of the first node hashing to h, -1 if none
	freepos int32
	freenum int32
	produced int64

	accesses int64
	hits     int64
	misses   int64
}

func tripleKey(level int32, low, high Node) uint64 {
	var buf [12]byte
	binary.LittleEndian.PutUint32(buf[0:4], uint32(level))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(low))
	binary.LittleEndian.PutUint32(buf[8:12], uint32(high))
	return xxhash.Sum64(buf[:])
}

func (u *unique) init(size int) {
	size = primeGte(size)
	u.nodes = make([]node, size)
	u.buckets = make([]int32, size)
	for i := range u.buckets {
		u.buckets[i] = -1
	}
	for i := range u.nodes {
		u.nodes[i] = node{low: NodeNil, high: Node(i + 1), next: -1}
	}
	u.nodes[size-1].high = 1 // slot 1 (the terminal) closes the freelist
	u.freepos = 2
	u.freenum = int32(size - 2)
}

func (u *unique) bucket(h uint64) int32 { return int32(h % uint64(len(u.buckets))) }

// find returns the index of the canonical node for (level, low, high), or -1
// if none exists yet.
func (u *unique) find(level int32, low, high Node) int32 {
	u.accesses++
	b := u.bucket(tripleKey(level, low, high))
	for idx := u.buckets[b]; idx != -1; idx = u.nodes[idx].next {
		n := &u.nodes[idx]
		if n.level == level && n.low == low && n.high == high {
			u.hits++
			return idx
		}
	}
	u.misses++
	return -1
}

func (u *unique) insert(level int32, low, high Node, idx int32) {
	b := u.bucket(tripleKey(level, low, high))
	u.nodes[idx] = node{level: level, low: low, high: high, next: u.buckets[b]}
	u.buckets[b] = idx
	u.produced++
}

// lookup finds (or creates) the canonical node for (level, low, high) and
// returns its raw index; canonicalization of the complement tag on low/high
// is the caller's responsibility (see makenode).
func (m *Manager) lookup(level int32, low, high Node) (int32, error) {
	u := &m.table
	if idx := u.find(level, low, high); idx != -1 {
		return idx, nil
	}
	idx, err := m.alloc()
	if err != nil {
		return 0, err
	}
	u.insert(level, low, high, idx)
	return idx, nil
}

// alloc returns a free node slot, running garbage collection and, if that is
// still not enough, resizing the table.
func (m *Manager) alloc() (int32, error) {
	u := &m.table
	if u.freenum == 0 {
		m.gc()
		if u.freenum == 0 {
			if err := m.resizeTable(); err != nil {
				return 0, err
			}
		}
	}
	idx := u.freepos
	u.freepos = int32(u.nodes[idx].high)
	u.freenum--
	return idx, nil
}
