// Copyright (c) 2024 The vellumdd Authors
//
// MIT License

package dd

// ReorderMethod selects the heuristic ReduceHeap uses to find a better
// variable order, mirroring CUDD's Cudd_ReorderingType enum.
type ReorderMethod int

const (
	ReorderSift ReorderMethod = iota
	ReorderSiftConverge
	ReorderSymmetricSift
	ReorderWindow2
	ReorderWindow3
	ReorderWindow4
	ReorderWindow2Converge
	ReorderWindow3Converge
	ReorderWindow4Converge
	ReorderAnnealing
	ReorderGenetic
	ReorderGroupSift
	ReorderExact
)

// ReduceHeap runs one reordering pass using method and returns the resulting
// ReadNodeCount. It is the manual counterpart of AutodynEnable: call it
// directly to reorder on demand instead of waiting for automatic triggering.
func (m *Manager) ReduceHeap(method ReorderMethod) int {
	if m.numVars < 2 {
		return m.ReadNodeCount()
	}
	m.runHooksPreReorder()
	switch method {
	case ReorderWindow2, ReorderWindow2Converge:
		m.windowReorder(2, method == ReorderWindow2Converge)
	case ReorderWindow3, ReorderWindow3Converge:
		m.windowReorder(3, method == ReorderWindow3Converge)
	case ReorderWindow4, ReorderWindow4Converge:
		m.windowReorder(4, method == ReorderWindow4Converge)
	case ReorderAnnealing:
		m.annealingReorder()
	case ReorderGenetic:
		m.geneticReorder()
	case ReorderGroupSift:
		m.groupSift()
	case ReorderExact:
		m.exactReorder()
	case ReorderSiftConverge:
		m.sift(true)
	case ReorderSymmetricSift:
		m.symmetricSift()
	default:
		m.sift(false)
	}
	addSat(&m.stats.reorderings, 1)
	m.runHooksPostReorder()
	live := m.ReadNodeCount()
	if m.log != nil {
		m.log.Debugw("reordered", "method", method, "live", live)
	}
	return live
}

// AutodynEnableNow turns on automatic reordering with method, checked by
// maybeAutoReorder at the entry of top-level operations (and by resizeTable
// before it gives up on a growth over the memory cap); unlike the
// AutodynEnable constructor Option this can be toggled at runtime.
func (m *Manager) AutodynEnableNow(method ReorderMethod) {
	m.reorderEnabled = true
	m.reorderMethod = method
}

// AutodynDisable turns off automatic reordering.
func (m *Manager) AutodynDisable() { m.reorderEnabled = false }

// ReorderingEnabled reports whether automatic reordering is active.
func (m *Manager) ReorderingEnabled() bool { return m.reorderEnabled }

// ShuffleHeap forces the variable order to exactly the given permutation
// (permutation[level] = variable), by sifting each variable to its target
// level directly instead of searching for a better one.
func (m *Manager) ShuffleHeap(permutation []int) error {
	if len(permutation) != int(m.numVars) {
		m.seterror(InvalidArg, "permutation length (%d) does not match varnum (%d)", len(permutation), m.numVars)
		return m.err
	}
	for lvl := 0; lvl < len(permutation); lvl++ {
		v := permutation[lvl]
		cur := m.ReadPerm(v)
		m.moveVariable(cur, lvl)
	}
	return nil
}

// moveVariable repositions the variable currently at level `from` to level
// `to` via a sequence of adjacent swaps, the primitive every reordering
// heuristic in this package ultimately bottoms out in.
func (m *Manager) moveVariable(from, to int) {
	for from < to {
		m.swapAdjacent(int32(from))
		from++
	}
	for from > to {
		from--
		m.swapAdjacent(int32(from))
	}
}

// swapAdjacent exchanges the variables at levels lvl and lvl+1, rewriting
// every node whose top variable is the one currently at lvl so that it now
// branches on the variable moving up to lvl, while preserving the pointer
// identity of every node untouched by the swap (including the other
// variable's own nodes, which only need their level field relabeled).
func (m *Manager) swapAdjacent(lvl int32) {
	type snapshot struct {
		idx              int32
		f00, f01, f10, f11 Node
	}
	var xNodes []snapshot
	var yNodes []int32
	for idx := int32(2); idx < int32(len(m.table.nodes)); idx++ {
		n := &m.table.nodes[idx]
		if n.low == NodeNil {
			continue // free slot
		}
		switch n.level {
		case lvl:
			f0 := m.low(newEdge(idx, false))
			f1 := m.high(newEdge(idx, false))
			var f00, f01, f10, f11 Node
			if m.level(f0) == lvl+1 {
				f00, f01 = m.low(f0), m.high(f0)
			} else {
				f00, f01 = f0, f0
			}
			if m.level(f1) == lvl+1 {
				f10, f11 = m.low(f1), m.high(f1)
			} else {
				f10, f11 = f1, f1
			}
			xNodes = append(xNodes, snapshot{idx, f00, f01, f10, f11})
		case lvl + 1:
			yNodes = append(yNodes, idx)
		}
	}
	for _, idx := range yNodes {
		m.table.nodes[idx].level = lvl
	}
	// an x node whose children do not branch on the variable moving up keeps
	// its index and children and only moves down one level
	for _, s := range xNodes {
		if s.f00 == s.f01 && s.f10 == s.f11 {
			m.table.nodes[s.idx].level = lvl + 1
		}
	}
	m.rehashAll()
	redirect := make(map[int32]Node)
	for _, s := range xNodes {
		if m.table.nodes[s.idx].level != lvl {
			continue
		}
		newLow, err := m.makenode(lvl+1, s.f00, s.f10)
		if err != nil {
			continue
		}
		newHigh, err := m.makenode(lvl+1, s.f01, s.f11)
		if err != nil {
			continue
		}
		if newLow.IsComplement() {
			newLow, newHigh = newLow.Not(), newHigh.Not()
		}
		if newLow == newHigh {
			redirect[s.idx] = newLow
			continue
		}
		m.table.nodes[s.idx] = node{level: lvl, low: newLow, high: newHigh, refcou: m.table.nodes[s.idx].refcou}
	}
	if len(redirect) > 0 {
		m.applyRedirect(redirect)
	}
	m.perm[lvl], m.perm[lvl+1] = m.perm[lvl+1], m.perm[lvl]
	m.invperm[m.perm[lvl]] = lvl
	m.invperm[m.perm[lvl+1]] = lvl + 1
	m.rehashAll()
	addSat(&m.stats.swaps, 1)
}

func resolveRedirect(n Node, redirect map[int32]Node) Node {
	for i := 0; i < len(redirect)+1; i++ {
		tgt, ok := redirect[n.index()]
		if !ok {
			return n
		}
		if n.IsComplement() {
			n = tgt.Not()
		} else {
			n = tgt
		}
	}
	return n
}

func (m *Manager) applyRedirect(redirect map[int32]Node) {
	for idx := int32(2); idx < int32(len(m.table.nodes)); idx++ {
		n := &m.table.nodes[idx]
		if n.low == NodeNil {
			continue
		}
		n.low = resolveRedirect(n.low, redirect)
		n.high = resolveRedirect(n.high, redirect)
	}
	for i, v := range m.varnodes {
		m.varnodes[i][0] = resolveRedirect(v[0], redirect)
		m.varnodes[i][1] = resolveRedirect(v[1], redirect)
	}
	for i, r := range m.refstack {
		m.refstack[i] = resolveRedirect(r, redirect)
	}
}
