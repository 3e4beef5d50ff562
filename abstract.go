// Copyright (c) 2024 The vellumdd Authors
//
// MIT License

package dd

// Makeset returns the node for the conjunction (cube) of the variables in
// varset, in positive polarity; it is the dual of Scanset.
func (m *Manager) Makeset(varset []int) Node {
	res := trueConst
	for i := len(varset) - 1; i >= 0; i-- {
		v := m.Ithvar(varset[i])
		if v == NodeNil {
			return NodeNil
		}
		res = m.pushref(m.And(v, res))
	}
	if len(varset) > 0 {
		m.popref(len(varset))
	}
	return res
}

// Scanset returns the variables found along the high branch of the cube n.
func (m *Manager) Scanset(n Node) []int {
	var res []int
	for cur := n; cur.index() > 1; cur = m.high(cur) {
		res = append(res, int(m.perm[m.level(cur)]))
	}
	return res
}

// Exist returns the existential quantification of n over the variables in
// varset (a cube built with Makeset).
func (m *Manager) Exist(n, varset Node) Node {
	if m.err != nil {
		return NodeNil
	}
	m.maybeAutoReorder()
	if err := m.quantset2cache(varset); err != nil {
		return NodeNil
	}
	res := m.quant(n, quantExist)
	m.unmarkall()
	return res
}

// Univ returns the universal quantification of n over varset.
func (m *Manager) Univ(n, varset Node) Node {
	if m.err != nil {
		return NodeNil
	}
	m.maybeAutoReorder()
	if err := m.quantset2cache(varset); err != nil {
		return NodeNil
	}
	res := m.quant(n, quantUniv)
	m.unmarkall()
	return res
}

type quantKind int32

const (
	quantExist quantKind = iota
	quantUniv
)

func (m *Manager) quant(n Node, kind quantKind) Node {
	if m.checkDeadline() {
		return NodeNil
	}
	if n.index() <= 1 {
		return n
	}
	lvl := m.level(n)
	if lvl > m.caches.quantlast {
		return n
	}
	if v, ok := m.caches.quant.get(int32(n), m.caches.quantsetID, int32(kind)); ok {
		return v
	}
	lo := m.pushref(m.quant(m.low(n), kind))
	hi := m.pushref(m.quant(m.high(n), kind))
	var res Node
	var err error
	if m.quantified(lvl) {
		if kind == quantExist {
			res = m.pushref(m.Or(lo, hi))
		} else {
			res = m.pushref(m.And(lo, hi))
		}
		m.popref(1)
	} else {
		res, err = m.makenode(lvl, lo, hi)
	}
	m.popref(2)
	if err != nil {
		return NodeNil
	}
	return m.caches.quant.put(int32(n), m.caches.quantsetID, int32(kind), res)
}

// AndExist returns the relational composition Exist(varset, a & b), computed
// without building the (possibly much larger) intermediate conjunction a & b.
func (m *Manager) AndExist(varset, a, b Node) Node {
	return m.AppEx(a, b, OPand, varset)
}

// AppEx applies op to left and right then existentially quantifies the
// result over varset, in one recursive pass.
func (m *Manager) AppEx(left, right Node, op Operator, varset Node) Node {
	if m.err != nil {
		return NodeNil
	}
	m.maybeAutoReorder()
	if op != OPand && op != OPor && op != OPxor && op != OPnand {
		m.seterror(InvalidArg, "operator %s not supported in AppEx", op)
		return NodeNil
	}
	if err := m.quantset2cache(varset); err != nil {
		return NodeNil
	}
	res := m.appex(left, right, op)
	m.unmarkall()
	return res
}

func (m *Manager) appex(left, right Node, op Operator) Node {
	if m.checkDeadline() {
		return NodeNil
	}
	if left.index() <= 1 && right.index() <= 1 {
		return m.From(opres[op][bit(left)][bit(right)] == 1)
	}
	if left == right && op == OPand {
		return m.quant(left, quantExist)
	}
	lvl := min32(m.level(left), m.level(right))
	if lvl > m.caches.quantlast {
		return m.apply(left, right, op)
	}
	tag := m.caches.quantsetID<<2 | int32(op)
	if v, ok := m.caches.appex.get(int32(left), int32(right), tag); ok {
		return v
	}
	flo, fhi := m.cofactors(left, lvl)
	glo, ghi := m.cofactors(right, lvl)
	lo := m.pushref(m.appex(flo, glo, op))
	var hi Node
	var res Node
	var err error
	if m.quantified(lvl) && lo == trueConst && op == OPand {
		res = trueConst
	} else {
		hi = m.pushref(m.appex(fhi, ghi, op))
		if m.quantified(lvl) {
			res = m.pushref(m.Or(lo, hi))
			m.popref(1)
		} else {
			res, err = m.makenode(lvl, lo, hi)
		}
		m.popref(1)
	}
	m.popref(1)
	if err != nil {
		return NodeNil
	}
	return m.caches.appex.put(int32(left), int32(right), tag, res)
}

// AndAbstract is AndExist under the CUDD name.
func (m *Manager) AndAbstract(a, b, varset Node) Node { return m.AndExist(varset, a, b) }

// XorExistAbstract returns Exist(varset, a xor b).
func (m *Manager) XorExistAbstract(a, b, varset Node) Node {
	return m.AppEx(a, b, OPxor, varset)
}

// ExistAbstractLimit is Exist bounded by a node-table budget.
func (m *Manager) ExistAbstractLimit(n, varset Node, limit int) Node {
	before := len(m.table.nodes) - int(m.table.freenum)
	saved := m.maxnodesize
	if limit > 0 {
		m.maxnodesize = before + limit
	}
	res := m.Exist(n, varset)
	m.maxnodesize = saved
	return res
}
