// Copyright (c) 2024 The vellumdd Authors
//
// MIT License

package dd

// This file collects the named Boolean combinators built on top of Apply and
// Ite, the way set.go/bdd.go in the library this is adapted from layer
// convenience methods over the same two primitives.

func (m *Manager) And(n ...Node) Node  { return m.fold(OPand, n) }
func (m *Manager) Or(n ...Node) Node   { return m.fold(OPor, n) }
func (m *Manager) Xor(n ...Node) Node  { return m.fold(OPxor, n) }
func (m *Manager) Nand(a, b Node) Node { return m.Apply(a, b, OPnand) }
func (m *Manager) Nor(a, b Node) Node  { return m.Apply(a, b, OPnor) }
func (m *Manager) Xnor(a, b Node) Node { return m.Apply(a, b, OPbiimp) }
func (m *Manager) Imp(a, b Node) Node  { return m.Apply(a, b, OPimp) }
func (m *Manager) Biimp(a, b Node) Node { return m.Apply(a, b, OPbiimp) }

func (m *Manager) fold(op Operator, n []Node) Node {
	switch len(n) {
	case 0:
		if op == OPand {
			return trueConst
		}
		return falseConst
	case 1:
		return n[0]
	default:
		return m.Apply(n[0], m.fold(op, n[1:]), op)
	}
}

// Intersect reports whether two functions share at least one satisfying
// assignment, without building the (possibly large) conjunction: it's
// equivalent to `And(a, b) != False` but stops as soon as the answer is
// known.
func (m *Manager) Intersect(a, b Node) bool {
	return m.intersect(a, b)
}

func (m *Manager) intersect(a, b Node) bool {
	if a == falseConst || b == falseConst {
		return false
	}
	if a == trueConst || b == trueConst || a == b {
		return true
	}
	lvl := min32(m.level(a), m.level(b))
	alo, ahi := m.cofactors(a, lvl)
	blo, bhi := m.cofactors(b, lvl)
	return m.intersect(alo, blo) || m.intersect(ahi, bhi)
}

// Leq reports whether a implies b (a <= b in the Boolean lattice).
func (m *Manager) Leq(a, b Node) bool {
	return m.IteConstant(a, b, trueConst) == trueConst
}

// AndLimit is And bounded by a node-table budget: it returns NodeNil with a
// TooManyNodes error instead of growing the table past limit additional
// nodes, without discarding whatever partial work has already been cached.
func (m *Manager) AndLimit(a, b Node, limit int) Node {
	return m.applyLimit(a, b, OPand, limit)
}

// OrLimit is the Or counterpart of AndLimit.
func (m *Manager) OrLimit(a, b Node, limit int) Node {
	return m.applyLimit(a, b, OPor, limit)
}

func (m *Manager) applyLimit(a, b Node, op Operator, limit int) Node {
	before := len(m.table.nodes) - int(m.table.freenum)
	saved := m.maxnodesize
	if limit > 0 {
		m.maxnodesize = before + limit
	}
	res := m.Apply(a, b, op)
	m.maxnodesize = saved
	return res
}
