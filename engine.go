// Copyright (c) 2024 The vellumdd Authors
//
// MIT License

package dd

import "time"

// This file holds the generic recursive engine: the Shannon-expansion
// skeleton every higher-level operator (apply, ite, quantification,
// composition, approximation) recurses through. The shape — terminal-case
// shortcut, canonical-order cache probe, cofactor on the top variable,
// recurse, rebuild with makenode, cache insert — is the one this package's
// operations.go/hoperations.go is grounded on; only the complement-edge
// bookkeeping and the xxhash-backed cache are new.

// checkDeadline aborts the current recursion with a TimeoutExpired error if
// the manager's configured deadline has passed, and reports a Termination
// error if a user-registered termination callback asked to stop.
func (m *Manager) checkDeadline() bool {
	if !m.deadline.IsZero() && time.Now().After(m.deadline) {
		m.seterror(TimeoutExpired, "operation deadline exceeded")
		if m.timeoutHandler != nil {
			fn := m.timeoutHandler
			m.timeoutHandler = nil
			fn()
		}
		return true
	}
	if m.term != nil && m.term.shouldStop() {
		m.seterror(Termination, "terminated by callback")
		return true
	}
	return false
}

// Not returns the negation of n. This never touches the cache: it is a tag
// flip, the entire point of using complement edges.
func (m *Manager) Not(n Node) Node { return n.Not() }

// Apply computes the result of the binary operator op on left and right.
func (m *Manager) Apply(left, right Node, op Operator) Node {
	if m.err != nil {
		return NodeNil
	}
	m.maybeAutoReorder()
	res := m.apply(left, right, op)
	m.unmarkall()
	return res
}

func (m *Manager) apply(left, right Node, op Operator) Node {
	if m.checkDeadline() {
		return NodeNil
	}
	if li, ri := left.index(), right.index(); li <= 1 && ri <= 1 {
		a := opres[op][bit(left)][bit(right)]
		return m.From(a == 1)
	}
	// canonical operand order lets commutative operators reuse a single
	// cache slot for (a, b) and (b, a).
	if op == OPand || op == OPxor || op == OPor || op == OPbiimp {
		if left > right {
			left, right = right, left
		}
	}
	if v, ok := m.caches.apply.get(int32(left), int32(right), int32(op)); ok {
		return v
	}
	lvl := min32(m.level(left), m.level(right))
	flo, fhi := m.cofactors(left, lvl)
	glo, ghi := m.cofactors(right, lvl)
	lo := m.pushref(m.apply(flo, glo, op))
	hi := m.pushref(m.apply(fhi, ghi, op))
	res, err := m.makenode(lvl, lo, hi)
	m.popref(2)
	if err != nil {
		return NodeNil
	}
	return m.caches.apply.put(int32(left), int32(right), int32(op), res)
}

// cofactors returns the (low, high) cofactor of n with respect to the
// variable at lvl: n unchanged on both branches if n's own top variable sits
// below lvl (n does not depend on that variable yet).
func (m *Manager) cofactors(n Node, lvl int32) (Node, Node) {
	if m.level(n) != lvl {
		return n, n
	}
	return m.low(n), m.high(n)
}

func bit(n Node) int {
	if n == trueConst {
		return 1
	}
	return 0
}

func min32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

// Ite computes ite(f, g, h) = (f & g) | (!f & h) directly, more efficiently
// than three Apply calls.
func (m *Manager) Ite(f, g, h Node) Node {
	if m.err != nil {
		return NodeNil
	}
	m.maybeAutoReorder()
	res := m.ite(f, g, h)
	m.unmarkall()
	return res
}

func (m *Manager) ite(f, g, h Node) Node {
	if m.checkDeadline() {
		return NodeNil
	}
	switch {
	case f == trueConst:
		return g
	case f == falseConst:
		return h
	case g == h:
		return g
	case g == trueConst && h == falseConst:
		return f
	case g == falseConst && h == trueConst:
		return f.Not()
	}
	// normalize so that equivalent calls share one cache entry: a complemented
	// g is cleared with ite(f,g,h) = !ite(f,!g,!h), and a complemented f with
	// ite(f,g,h) = ite(!f,h,g).
	comp := false
	if g.IsComplement() {
		g, h = g.Not(), h.Not()
		comp = true
	}
	if f.IsComplement() {
		f = f.Not()
		g, h = h, g
	}
	if v, ok := m.caches.ite.get(int32(f), int32(g), int32(h)); ok {
		if comp {
			return v.Not()
		}
		return v
	}
	lvl := min32(m.level(f), min32(m.level(g), m.level(h)))
	flo, fhi := m.cofactors(f, lvl)
	glo, ghi := m.cofactors(g, lvl)
	hlo, hhi := m.cofactors(h, lvl)
	lo := m.pushref(m.ite(flo, glo, hlo))
	hi := m.pushref(m.ite(fhi, ghi, hhi))
	res, err := m.makenode(lvl, lo, hi)
	m.popref(2)
	if err != nil {
		return NodeNil
	}
	m.caches.ite.put(int32(f), int32(g), int32(h), res)
	if comp {
		return res.Not()
	}
	return res
}

// IteConstant computes Ite(f,g,h) and returns it only if it is one of the
// two Boolean constants, returning NodeNil otherwise; useful to test
// implication/equivalence. It builds the full result with Ite, so new nodes
// can be created even when it returns NodeNil.
func (m *Manager) IteConstant(f, g, h Node) Node {
	res := m.Ite(f, g, h)
	if m.IsConstant(res) {
		return res
	}
	return NodeNil
}
