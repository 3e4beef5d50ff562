// Copyright (c) 2024 The vellumdd Authors
//
// MIT License

package dd

// This file implements the generalized-cofactor family: operations that
// simplify f with respect to a care set c. Cofactor, Restrict and Constrain
// are separate recursions over the apply/ite cofactor skeleton of engine.go,
// each with its own rule for what to do when c forces a choice between f's
// two cofactors. Minimize is an alias of Constrain, Squeeze and LICompaction
// are built on Restrict, and Interpolate on Exist.

// Cofactor returns the cofactor of f with respect to the cube c (a
// conjunction of literals): the restriction of f under the partial
// assignment c makes to the variables it mentions.
func (m *Manager) Cofactor(f, c Node) Node {
	if m.err != nil {
		return NodeNil
	}
	res := m.cofactor(f, c)
	m.unmarkall()
	return res
}

func (m *Manager) cofactor(f, c Node) Node {
	if f.index() <= 1 || c.index() <= 1 {
		return f
	}
	if v, ok := m.caches.cofactor.get(int32(f), int32(c), 0); ok {
		return v
	}
	clvl := m.level(c)
	flvl := m.level(f)
	if flvl > clvl {
		if m.high(c) == falseConst {
			return m.cofactor(f, m.low(c))
		}
		return m.cofactor(f, m.high(c))
	}
	if flvl < clvl {
		lo := m.pushref(m.cofactor(m.low(f), c))
		hi := m.pushref(m.cofactor(m.high(f), c))
		res, err := m.makenode(flvl, lo, hi)
		m.popref(2)
		if err != nil {
			return NodeNil
		}
		return m.caches.cofactor.put(int32(f), int32(c), 0, res)
	}
	if m.high(c) == falseConst {
		return m.cofactor(m.low(f), m.low(c))
	}
	return m.cofactor(m.high(f), m.high(c))
}

// Restrict simplifies f by replacing sub-diagrams that agree with c's don't-
// care structure, using Coudert and Madre's generalized cofactor: cheaper
// than Constrain but not guaranteed minimal.
func (m *Manager) Restrict(f, c Node) Node {
	if m.err != nil {
		return NodeNil
	}
	res := m.restrict(f, c)
	m.unmarkall()
	return res
}

func (m *Manager) restrict(f, c Node) Node {
	if c == trueConst {
		return f
	}
	if c == falseConst {
		m.seterror(InvalidArg, "restrict with an empty care set")
		return NodeNil
	}
	if f.index() <= 1 {
		return f
	}
	flvl, clvl := m.level(f), m.level(c)
	if clvl < flvl {
		return m.restrict(f, m.generalizedCofactor(c, flvl))
	}
	lo, hi := m.cofactors(f, flvl)
	clo, chi := m.cofactors(c, flvl)
	switch {
	case clo == falseConst:
		return m.restrict(hi, chi)
	case chi == falseConst:
		return m.restrict(lo, clo)
	}
	rlo := m.pushref(m.restrict(lo, clo))
	rhi := m.pushref(m.restrict(hi, chi))
	res, err := m.makenode(flvl, rlo, rhi)
	m.popref(2)
	if err != nil {
		return NodeNil
	}
	return res
}

// generalizedCofactor quantifies c's top variables away, replacing c by the
// disjunction of its two cofactors until c's top variable sits at or below
// lvl; used when c's top variable sits above the variable we need to
// restrict against.
func (m *Manager) generalizedCofactor(c Node, lvl int32) Node {
	for m.level(c) < lvl && c.index() > 1 {
		c = m.Or(m.low(c), m.high(c))
	}
	return c
}

// Constrain is Restrict's more expensive, guaranteed-minimal-support sibling:
// it always produces a function whose BDD depends only on variables that
// still matter under c.
func (m *Manager) Constrain(f, c Node) Node {
	if m.err != nil {
		return NodeNil
	}
	res := m.constrain(f, c)
	m.unmarkall()
	return res
}

func (m *Manager) constrain(f, c Node) Node {
	if c == falseConst {
		m.seterror(InvalidArg, "constrain with an empty care set")
		return NodeNil
	}
	if c == trueConst || f.index() <= 1 {
		return f
	}
	lvl := min32(m.level(f), m.level(c))
	flo, fhi := m.cofactors(f, lvl)
	clo, chi := m.cofactors(c, lvl)
	switch {
	case clo == falseConst:
		return m.constrain(fhi, chi)
	case chi == falseConst:
		return m.constrain(flo, clo)
	}
	lo := m.pushref(m.constrain(flo, clo))
	hi := m.pushref(m.constrain(fhi, chi))
	res, err := m.makenode(lvl, lo, hi)
	m.popref(2)
	if err != nil {
		return NodeNil
	}
	return res
}

// LICompaction ("Linear Image Compaction") restricts f against c with
// Restrict and then rebuilds the result bottom-up, merging a node into its
// child only where both of its rebuilt children are identical. c is not
// consulted in that second pass, so a level whose two cofactors differ but
// agree wherever c holds is not collapsed.
func (m *Manager) LICompaction(f, c Node) Node {
	res := m.Restrict(f, c)
	if m.err != nil {
		return NodeNil
	}
	return m.minimizeSupport(res, c)
}

func (m *Manager) minimizeSupport(f, c Node) Node {
	if f.index() <= 1 {
		return f
	}
	lvl := m.level(f)
	lo := m.pushref(m.minimizeSupport(m.low(f), c))
	hi := m.pushref(m.minimizeSupport(m.high(f), c))
	if lo == hi {
		m.popref(2)
		return lo
	}
	res, err := m.makenode(lvl, lo, hi)
	m.popref(2)
	if err != nil {
		return NodeNil
	}
	return res
}

// Minimize is an alias for Constrain, matching the Cudd_bddMinimize name some
// CUDD call sites use for the same operation.
func (m *Manager) Minimize(f, c Node) Node { return m.Constrain(f, c) }

// Squeeze returns a function between the lower bound lo and the upper bound
// hi (lo <= result <= hi in the Boolean lattice) that is as small as
// Restrict can make it against hi's don't-care structure; used to find a
// compact representative of an interval of acceptable functions.
func (m *Manager) Squeeze(lo, hi Node) Node {
	if !m.Leq(lo, hi) {
		m.seterror(InvalidArg, "squeeze requires lo <= hi")
		return NodeNil
	}
	care := m.Or(lo, m.Not(hi))
	return m.Restrict(lo, care)
}

// Interpolate computes a Craig interpolant for the pair (a, b) with a => b:
// a function i such that a => i and i => b, expressed purely in terms of the
// variables common to a and b. We compute it as the existential
// quantification of a over every variable not listed in common; b is only
// used to check that a implies b.
func (m *Manager) Interpolate(a, b Node, common []int) Node {
	if m.IteConstant(a, b, trueConst) != trueConst {
		m.seterror(InvalidArg, "interpolate requires a implies b")
		return NodeNil
	}
	mask := make([]bool, m.Varnum())
	for _, v := range common {
		mask[v] = true
	}
	var private []int
	for v := 0; v < m.Varnum(); v++ {
		if !mask[v] {
			private = append(private, v)
		}
	}
	cube := m.Makeset(private)
	return m.Exist(a, cube)
}

// ClippingAnd computes an approximation of a & b that never exceeds limit
// nodes: once the running node-table size reaches the budget, any remaining
// sub-conjunction is replaced by whichever of its two operands has the
// topmost variable (a when both sit at the same level), which contains their
// exact conjunction. The
// result is always a valid superset of a & b, distinct from the hard-failing
// AndLimit, which aborts instead of approximating.
func (m *Manager) ClippingAnd(a, b Node, limit int) Node {
	if m.err != nil {
		return NodeNil
	}
	before := len(m.table.nodes) - int(m.table.freenum)
	budget := limit
	if budget <= 0 {
		return m.And(a, b)
	}
	res := m.clippingAnd(a, b, before+budget)
	m.unmarkall()
	return res
}

func (m *Manager) clippingAnd(a, b Node, budget int) Node {
	if a.index() <= 1 && b.index() <= 1 {
		return m.From(opres[OPand][bit(a)][bit(b)] == 1)
	}
	if len(m.table.nodes)-int(m.table.freenum) >= budget {
		// over the budget: approximate by returning whichever operand cubes
		// a superset, guaranteeing the result still contains a & b.
		if m.level(a) <= m.level(b) {
			return a
		}
		return b
	}
	lvl := min32(m.level(a), m.level(b))
	alo, ahi := m.cofactors(a, lvl)
	blo, bhi := m.cofactors(b, lvl)
	lo := m.pushref(m.clippingAnd(alo, blo, budget))
	hi := m.pushref(m.clippingAnd(ahi, bhi, budget))
	res, err := m.makenode(lvl, lo, hi)
	m.popref(2)
	if err != nil {
		return NodeNil
	}
	return res
}
