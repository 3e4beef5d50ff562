// Copyright (c) 2024 The vellumdd Authors
//
// MIT License

package dd

import "github.com/pkg/errors"

// makenode returns the canonical edge for the function
// ite(variable-at-level, high, low), creating a new table entry only if one
// does not already exist. It enforces the complement-edge invariant that the
// low (else) branch of every stored node is never itself complemented: if it
// is, both branches are flipped before the lookup and the resulting edge is
// complemented on the way out. This is what lets Not be a zero-allocation tag
// flip instead of a recursive operation.
func (m *Manager) makenode(level int32, low, high Node) (Node, error) {
	if low == high {
		return low, nil
	}
	comp := false
	if low.IsComplement() {
		low, high = low.Not(), high.Not()
		comp = true
	}
	idx, err := m.lookup(level, low, high)
	if err != nil {
		return NodeNil, err
	}
	return newEdge(idx, comp), nil
}

// SetVarnum sets the number of declared variables. It may only be called to
// increase the number, matching the semantics of the varnum extension this is
// grounded on.
func (m *Manager) SetVarnum(num int) error {
	old := m.numVars
	n := int32(num)
	if n < 1 || n > _MAXVAR {
		m.seterror(InvalidArg, "bad number of variables (%d)", n)
		return m.err
	}
	if n < m.numVars {
		m.seterror(InvalidArg, "cannot decrease varnum from %d to %d", m.numVars, n)
		return m.err
	}
	if n == m.numVars {
		return nil
	}
	m.varnodes = append(m.varnodes, make([][2]Node, n-m.numVars)...)
	m.perm = append(m.perm, make([]int32, n-m.numVars)...)
	m.invperm = append(m.invperm, make([]int32, n-m.numVars)...)
	m.numVars = n
	m.table.nodes[1].level = n // the terminal always sits below every variable
	for v := old; v < n; v++ {
		m.perm[v] = v
		m.invperm[v] = v
		lo, err := m.makenode(v, falseConst, trueConst)
		if err != nil {
			m.numVars = old
			m.seterror(InternalError, "cannot allocate variable %d: %s", v, err)
			return m.err
		}
		m.pushref(lo)
		hi, err := m.makenode(v, trueConst, falseConst)
		if err != nil {
			m.numVars = old
			m.seterror(InternalError, "cannot allocate variable %d: %s", v, err)
			return m.err
		}
		m.popref(1)
		m.varnodes[v] = [2]Node{lo, hi}
		m.table.nodes[lo.index()].refcou = _MAXREFCOUNT
		m.table.nodes[hi.index()].refcou = _MAXREFCOUNT
	}
	m.caches.onVarnumChanged(int(n))
	if m.log != nil {
		m.log.Debugw("set varnum", "varnum", n)
	}
	return nil
}

// ExtVarnum extends the number of declared variables by num.
func (m *Manager) ExtVarnum(num int) error {
	if num < 0 {
		return errors.Errorf("bad extension size (%d)", num)
	}
	return m.SetVarnum(int(m.numVars) + num)
}

// NewVarAtLevel declares a fresh variable and moves it to level, shifting
// every variable already at or below that level down by one. The variable
// is first appended in the usual way (at the bottom of the order) and then
// walked up to level with the same adjacent-swap primitive ReduceHeap uses,
// so reserving a level costs exactly as many swaps as the distance it has
// to travel.
func (m *Manager) NewVarAtLevel(level int) (Node, error) {
	if err := m.SetVarnum(int(m.numVars) + 1); err != nil {
		return NodeNil, err
	}
	v := int(m.numVars) - 1
	if level < 0 || level > v {
		m.seterror(InvalidArg, "level out of range (%d)", level)
		return NodeNil, m.err
	}
	m.moveVariable(m.ReadPerm(v), level)
	return m.Ithvar(v), nil
}

// Ithvar returns the Node for the i'th declared variable, in its positive
// polarity.
func (m *Manager) Ithvar(i int) Node {
	if i < 0 || i >= int(m.numVars) {
		return m.seterror(InvalidArg, "variable index out of range (%d)", i)
	}
	return m.varnodes[i][0]
}

// NIthvar returns the Node for the negation of the i'th declared variable.
func (m *Manager) NIthvar(i int) Node {
	if i < 0 || i >= int(m.numVars) {
		return m.seterror(InvalidArg, "variable index out of range (%d)", i)
	}
	return m.varnodes[i][1]
}

// IsVar reports whether n is exactly the positive or negative literal of some
// declared variable.
func (m *Manager) IsVar(n Node) bool {
	for _, vv := range m.varnodes {
		if n == vv[0] || n == vv[1] {
			return true
		}
	}
	return false
}

// ReadSize returns the number of declared variables, the same value as
// Varnum; kept under both names to match the CUDD vocabulary this API
// surface follows.
func (m *Manager) ReadSize() int { return int(m.numVars) }

// ReadPerm returns the level currently holding variable index i, matching
// Cudd_ReadPerm.
func (m *Manager) ReadPerm(i int) int {
	if i < 0 || i >= len(m.invperm) {
		return -1
	}
	return int(m.invperm[i])
}

// ReadInvPerm returns the variable index currently sitting at level,
// matching Cudd_ReadInvPerm.
func (m *Manager) ReadInvPerm(level int) int {
	if level < 0 || level >= len(m.perm) {
		return -1
	}
	return int(m.perm[level])
}

// level returns the current level of edge n, whether terminal or internal.
func (m *Manager) level(n Node) int32 {
	return m.table.nodes[n.index()].level
}

func (m *Manager) low(n Node) Node {
	lo := m.table.nodes[n.index()].low
	if n.IsComplement() {
		return lo.Not()
	}
	return lo
}

func (m *Manager) high(n Node) Node {
	hi := m.table.nodes[n.index()].high
	if n.IsComplement() {
		return hi.Not()
	}
	return hi
}
