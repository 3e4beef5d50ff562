// Copyright (c) 2024 The vellumdd Authors
//
// MIT License

package dd

import "github.com/bits-and-blooms/bitset"

// This file implements the approximation family: operators that replace
// small-weight subtrees of f with a constant to shrink it, while preserving
// a sub/superset relationship with the original function. Each node's
// "weight" is approximated by its minterm-count signature (computed once,
// bottom-up, and cached per node id in a *bitset.BitSet-backed visited set
// so every node is scored exactly once regardless of how many parents share
// it) rather than the DagSize of its subtree, matching the CUDD approx
// family's own notion of "how much of the function's mass lives here".

// approxState threads the bottom-up minterm-weight pass and the visited set
// through one call to the family below.
type approxState struct {
	m        *Manager
	visited  *bitset.BitSet
	weight   map[int32]float64
	maxNodes int
	count    int
	over     bool // true for OverApprox-direction replacement (toward 1), false toward 0
	safe     bool // forbid replacements that would violate the sub/superset relation
}

// UnderApprox returns a function g with g <= f (every minterm of g is a
// minterm of f), built by replacing subtrees of f with the constant 0 in
// one top-down walk, as replaceLowWeight describes. The walk stops replacing
// once it has visited numNodes nodes, so the result is not bounded by
// numNodes.
func (m *Manager) UnderApprox(f Node, numNodes int, safe bool) Node {
	return m.approx(f, numNodes, false, safe)
}

// OverApprox returns a function g with f <= g, built the same way as
// UnderApprox but replacing subtrees with the constant 1; its size is not
// bounded by numNodes either.
func (m *Manager) OverApprox(f Node, numNodes int, safe bool) Node {
	return m.approx(f, numNodes, true, safe)
}

// RemapUnderApprox is UnderApprox's CUDD "remap" variant: instead of always
// collapsing to 0, a subtree is remapped to whichever constant its own
// majority cofactor already agrees with, which typically removes fewer true
// minterms per node dropped.
func (m *Manager) RemapUnderApprox(f Node, numNodes int) Node {
	return m.remapApprox(f, numNodes, false)
}

// RemapOverApprox is the OverApprox counterpart of RemapUnderApprox.
func (m *Manager) RemapOverApprox(f Node, numNodes int) Node {
	return m.remapApprox(f, numNodes, true)
}

// BiasedUnderApprox is UnderApprox run after biasWeight has re-weighted f's
// nodes against a bias set: a node whose function intersects bias keeps its
// weight, and every other node's weight w becomes 1-w.
func (m *Manager) BiasedUnderApprox(f, bias Node, numNodes int, safe bool) Node {
	return m.biasedApprox(f, bias, numNodes, false, safe)
}

// BiasedOverApprox is the OverApprox counterpart of BiasedUnderApprox.
func (m *Manager) BiasedOverApprox(f, bias Node, numNodes int, safe bool) Node {
	return m.biasedApprox(f, bias, numNodes, true, safe)
}

func (m *Manager) approx(f Node, numNodes int, over, safe bool) Node {
	if m.err != nil {
		return NodeNil
	}
	if numNodes <= 0 || m.DagSize(f) <= numNodes {
		return f
	}
	st := &approxState{m: m, over: over, safe: safe, maxNodes: numNodes}
	st.visited = bitset.New(uint(len(m.table.nodes)))
	st.weight = make(map[int32]float64)
	m.weigh(f, st)
	res := m.replaceLowWeight(f, st)
	m.unmarkall()
	return res
}

// weigh computes each node's minterm-weight signature bottom-up, memoizing
// on a bitset so shared subtrees are scored exactly once.
func (m *Manager) weigh(n Node, st *approxState) float64 {
	idx := uint(n.index())
	if st.visited.Test(idx) {
		return st.weight[n.index()]
	}
	st.visited.Set(idx)
	if n.index() <= 1 {
		w := 0.0
		if n == trueConst {
			w = 1.0
		}
		st.weight[n.index()] = w
		return w
	}
	lo := m.weigh(m.low(n), st)
	hi := m.weigh(m.high(n), st)
	w := (lo + hi) / 2
	st.weight[n.index()] = w
	return w
}

// replaceLowWeight walks f top-down, counting every node it visits against
// the budget. A subtree whose weight equals the direction's boundary weight
// (exactly 0 for UnderApprox, exactly 1 for OverApprox) is replaced with the
// direction's constant; when safe is false, so is any subtree whose DagSize
// exceeds the budget still left. Once the count reaches the budget, every
// subtree not yet visited is returned unchanged.
func (m *Manager) replaceLowWeight(n Node, st *approxState) Node {
	if st.count >= st.maxNodes {
		return n
	}
	if n.index() <= 1 {
		st.count++
		return n
	}
	w := st.weight[n.index()]
	target := falseConst
	boundaryWeight := 0.0
	if st.over {
		target = trueConst
		boundaryWeight = 1.0
	}
	if w == boundaryWeight || (!st.safe && m.DagSize(n) > (st.maxNodes-st.count)) {
		st.count++
		return target
	}
	st.count++
	lo := m.pushref(m.replaceLowWeight(m.low(n), st))
	hi := m.pushref(m.replaceLowWeight(m.high(n), st))
	res, err := m.makenode(m.level(n), lo, hi)
	m.popref(2)
	if err != nil {
		return NodeNil
	}
	return res
}

// remapApprox behaves like approx but replaces a collapsed subtree with
// whichever constant its low/high cofactors agree on more often (a simple
// majority vote over the two weights) rather than unconditionally 0 or 1,
// reducing how many of the retained minterms get clipped.
func (m *Manager) remapApprox(f Node, numNodes int, over bool) Node {
	if m.err != nil {
		return NodeNil
	}
	if numNodes <= 0 || m.DagSize(f) <= numNodes {
		return f
	}
	st := &approxState{m: m, over: over, maxNodes: numNodes}
	st.visited = bitset.New(uint(len(m.table.nodes)))
	st.weight = make(map[int32]float64)
	m.weigh(f, st)
	res := m.replaceRemap(f, st)
	m.unmarkall()
	return res
}

func (m *Manager) replaceRemap(n Node, st *approxState) Node {
	if st.count >= st.maxNodes {
		return n
	}
	if n.index() <= 1 {
		st.count++
		return n
	}
	st.count++
	w := st.weight[n.index()]
	if m.DagSize(n) > (st.maxNodes - st.count) {
		if w >= 0.5 {
			return trueConst
		}
		return falseConst
	}
	lo := m.pushref(m.replaceRemap(m.low(n), st))
	hi := m.pushref(m.replaceRemap(m.high(n), st))
	res, err := m.makenode(m.level(n), lo, hi)
	m.popref(2)
	if err != nil {
		return NodeNil
	}
	return res
}

// biasedApprox behaves like approx but re-weights f's nodes against bias
// with biasWeight before the replacement walk; the walk itself visits f in
// the same top-down order as approx.
func (m *Manager) biasedApprox(f, bias Node, numNodes int, over, safe bool) Node {
	if m.err != nil {
		return NodeNil
	}
	if numNodes <= 0 || m.DagSize(f) <= numNodes {
		return f
	}
	st := &approxState{m: m, over: over, safe: safe, maxNodes: numNodes}
	st.visited = bitset.New(uint(len(m.table.nodes)))
	st.weight = make(map[int32]float64)
	m.weigh(f, st)
	biasedWeight := make(map[int32]float64, len(st.weight))
	m.biasWeight(f, bias, st, biasedWeight)
	for k, v := range biasedWeight {
		st.weight[k] = v
	}
	res := m.replaceLowWeight(f, st)
	m.unmarkall()
	return res
}

// biasWeight records, for every internal node reachable from n, its weight
// unchanged if the node's function intersects bias and 1 minus its weight
// otherwise.
func (m *Manager) biasWeight(n, bias Node, st *approxState, out map[int32]float64) {
	if n.index() <= 1 {
		return
	}
	if _, done := out[n.index()]; done {
		return
	}
	if m.Intersect(n, bias) {
		out[n.index()] = st.weight[n.index()]
	} else {
		out[n.index()] = 1 - st.weight[n.index()]
	}
	m.biasWeight(m.low(n), bias, st, out)
	m.biasWeight(m.high(n), bias, st, out)
}
