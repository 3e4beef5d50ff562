// Copyright (c) 2024 The vellumdd Authors
//
// MIT License

package dd

import (
	"fmt"
	"unsafe"
)

// managerStats holds the saturating counters read through the Read* tuning
// methods below. Per this package's resolution of the spec's open question
// on counter overflow, every increment here saturates instead of wrapping.
type managerStats struct {
	reorderings  uint64
	swaps        uint64
	gcRuns       uint64
}

func addSat(counter *uint64, delta uint64) {
	if *counter > ^uint64(0)-delta {
		*counter = ^uint64(0)
		return
	}
	*counter += delta
}

// ReadNodeCount returns the number of node-table slots currently in use:
// live nodes plus dead ones that garbage collection has not yet reclaimed
// (the same count as ReadKeys).
func (m *Manager) ReadNodeCount() int {
	return len(m.table.nodes) - int(m.table.freenum)
}

// ReadPeakNodeCount returns the node table's current size in slots. The
// table only grows, so this is never below the largest node count it has
// held.
func (m *Manager) ReadPeakNodeCount() int { return len(m.table.nodes) }

// ReadMemoryInUse estimates the manager's memory footprint in bytes.
func (m *Manager) ReadMemoryInUse() int64 {
	n := int64(len(m.table.nodes)) * int64(unsafe.Sizeof(node{}))
	for _, t := range m.caches.allTables() {
		n += int64(len(t.slots)) * int64(unsafe.Sizeof(entry{}))
	}
	return n
}

// ReadReorderings returns how many times ReduceHeap has run.
func (m *Manager) ReadReorderings() uint64 { return m.stats.reorderings }

// ReadSwapCount returns how many adjacent variable swaps reordering has
// performed in total.
func (m *Manager) ReadSwapCount() uint64 { return m.stats.swaps }

// ReadGCCount returns how many garbage collections have run.
func (m *Manager) ReadGCCount() uint64 { return uint64(len(m.gcstat.history)) }

// ReadGarbageCollections is an alias for ReadGCCount, matching the CUDD
// vocabulary this API surface follows.
func (m *Manager) ReadGarbageCollections() uint64 { return m.ReadGCCount() }

// ReadKeys returns the number of entries currently hash-consed in the node
// table, live or dead (every slot that still has a valid (level, low, high)
// triple, as opposed to a free slot on the allocator's free list).
func (m *Manager) ReadKeys() int {
	return len(m.table.nodes) - int(m.table.freenum)
}

// ReadDead returns the number of nodes that are hash-consed but have a zero
// reference count of their own. Those reachable from a referenced node or
// the refstack survive the next garbage collection; the rest are reclaimed
// by it and stay resurrectable by hash-cons lookup until then.
func (m *Manager) ReadDead() int {
	dead := 0
	for idx := int32(2); idx < int32(len(m.table.nodes)); idx++ {
		n := &m.table.nodes[idx]
		if n.low == NodeNil {
			if _, isAdd := m.addconsts.value[idx]; !isAdd {
				continue // free slot
			}
		}
		if n.refcount() == 0 {
			dead++
		}
	}
	return dead
}

// ReadCacheHits returns the total number of operation-cache hits across
// every cache family combined.
func (m *Manager) ReadCacheHits() int64 {
	var total int64
	for _, t := range m.caches.allTables() {
		total += t.hits
	}
	return total
}

// ReadCacheLookUps returns the total number of operation-cache probes
// (hits plus misses) across every cache family combined.
func (m *Manager) ReadCacheLookUps() int64 {
	var total int64
	for _, t := range m.caches.allTables() {
		total += t.hits + t.misses
	}
	return total
}

// DagSize returns the number of distinct nodes in the sub-DAG rooted at n,
// counting the shared Boolean terminal once when the sub-DAG reaches it.
func (m *Manager) DagSize(n Node) int {
	count := 0
	m.markCount(n.index(), &count)
	m.unmarkall()
	return count
}

func (m *Manager) markCount(idx int32, count *int) {
	if idx < 1 {
		return
	}
	nd := &m.table.nodes[idx]
	if nd.marked() {
		return
	}
	nd.mark()
	*count++
	if idx > 1 {
		m.markCount(nd.low.index(), count)
		m.markCount(nd.high.index(), count)
	}
}

// Stats returns a human-readable summary of the manager's node table,
// caches, and garbage-collection history; kept, unlike the Dot/BLIF printers
// of the library this package is grounded on, because statistics reporting
// is part of the core surface while diagram dumping is not.
func (m *Manager) Stats() string {
	res := fmt.Sprintf("Variables:  %d\n", m.numVars)
	res += fmt.Sprintf("Allocated:  %d (%s)\n", len(m.table.nodes), humanSize(len(m.table.nodes), unsafe.Sizeof(node{})))
	res += fmt.Sprintf("Live:       %d\n", m.ReadNodeCount())
	res += fmt.Sprintf("Free:       %d\n", m.table.freenum)
	res += fmt.Sprintf("Produced:   %d\n", m.table.produced)
	res += fmt.Sprintf("Unique hit: %.1f%% (%d/%d)\n", ratio(m.table.hits, m.table.accesses), m.table.hits, m.table.accesses)
	res += "==============\n"
	res += fmt.Sprintf("# of GC:        %d\n", len(m.gcstat.history))
	res += fmt.Sprintf("# of reorders:  %d\n", m.stats.reorderings)
	res += fmt.Sprintf("# of swaps:     %d\n", m.stats.swaps)
	res += "==============\n"
	for _, t := range m.caches.allTables() {
		res += t.String() + "\n"
	}
	return res
}

func ratio(hit, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(hit) * 100 / float64(total)
}

func humanSize(count int, elemSize uintptr) string {
	bytes := float64(count) * float64(elemSize)
	units := []string{"B", "KiB", "MiB", "GiB"}
	i := 0
	for bytes >= 1024 && i < len(units)-1 {
		bytes /= 1024
		i++
	}
	return fmt.Sprintf("%.1f %s", bytes, units[i])
}
