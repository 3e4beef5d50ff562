// Copyright (c) 2024 The vellumdd Authors
//
// MIT License

package dd

import "github.com/bits-and-blooms/bitset"

// varGroup names a set of variables that must stay in contiguous, adjacent
// levels and move together during group-aware reordering, the same
// constraint CUDD's Cudd_MakeTreeNode groups enforce for interacting
// variable clusters (the bits of one array index, say) that sifting would
// otherwise be free to scatter.
type varGroup struct {
	vars []int
}

// MakeGroup declares that vars must be kept contiguous by subsequent
// GroupSift/ReduceHeap(ReorderGroupSift) calls. The group persists across
// reorderings until the manager is reinitialized; it does not affect Sift,
// Window, Annealing, or Genetic reordering, which remain free to interleave
// any variables.
func (m *Manager) MakeGroup(vars []int) {
	cp := append([]int(nil), vars...)
	m.groups = append(m.groups, varGroup{vars: cp})
}

// groupSift is ReduceHeap(ReorderGroupSift): it first collapses every
// declared group to a contiguous block wherever its members currently sit,
// then sifts each ungrouped variable normally, and finally sifts each
// group's block as a single unit.
func (m *Manager) groupSift() {
	grouped := bitset.New(uint(m.numVars))
	for _, g := range m.groups {
		m.collapseGroup(g)
		for _, v := range g.vars {
			grouped.Set(uint(v))
		}
	}
	var singles []int
	for v := 0; v < int(m.numVars); v++ {
		if !grouped.Test(uint(v)) {
			singles = append(singles, v)
		}
	}
	m.siftPass(singles)
	for _, g := range m.groups {
		m.siftGroup(g)
	}
}

// collapseGroup moves every variable in g to be adjacent to the group's
// first member, in the order given, without trying any other arrangement.
func (m *Manager) collapseGroup(g varGroup) {
	if len(g.vars) < 2 {
		return
	}
	for i := 1; i < len(g.vars); i++ {
		target := m.ReadPerm(g.vars[0]) + i
		cur := m.ReadPerm(g.vars[i])
		if cur < target {
			// moving down shifts the members already placed up by one level
			target--
		}
		m.moveVariable(cur, target)
	}
}

// siftGroup treats the contiguous block occupied by g's variables as a
// single unit and slides the whole block across the order, keeping whatever
// position minimizes the live node count, mirroring siftVariable but
// operating on a multi-level window instead of one level.
func (m *Manager) siftGroup(g varGroup) {
	size := len(g.vars)
	if size == 0 {
		return
	}
	start := m.ReadPerm(g.vars[0])
	best := start
	bestSize := m.ReadNodeCount()

	lvl := start
	for lvl > 0 {
		m.swapBlock(lvl, size, -1)
		lvl--
		if s := m.ReadNodeCount(); s < bestSize {
			bestSize, best = s, lvl
		}
	}
	for lvl+size < int(m.numVars) {
		m.swapBlock(lvl, size, 1)
		lvl++
		if s := m.ReadNodeCount(); s < bestSize {
			bestSize, best = s, lvl
		}
	}
	for lvl != best {
		if lvl < best {
			m.swapBlock(lvl, size, 1)
			lvl++
		} else {
			m.swapBlock(lvl, size, -1)
			lvl--
		}
	}
}

// swapBlock moves a contiguous block of `size` levels starting at `at` one
// position in the given direction (+1 down, -1 up) via adjacent swaps,
// preserving the relative order of the block's own members.
func (m *Manager) swapBlock(at, size, direction int) {
	if direction > 0 {
		for lvl := at + size - 1; lvl >= at; lvl-- {
			m.swapAdjacent(int32(lvl))
		}
	} else {
		for lvl := at - 1; lvl <= at+size-2; lvl++ {
			m.swapAdjacent(int32(lvl))
		}
	}
}
