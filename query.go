// Copyright (c) 2024 The vellumdd Authors
//
// MIT License

package dd

import "math/big"

// Satcount returns the number of satisfying assignments of n over all
// declared variables, using arbitrary-precision arithmetic since this grows
// exponentially with Varnum. Grounded on the teacher's satcount, adapted for
// complement edges: each level skipped between a node and its parent
// contributes a factor of 2 per don't-care variable.
func (m *Manager) Satcount(n Node) *big.Int {
	if m.err != nil {
		return big.NewInt(0)
	}
	res := m.satcount(n)
	skipped := m.level(n)
	res.Lsh(res, uint(skipped))
	return res
}

func (m *Manager) satcount(n Node) *big.Int {
	if n == falseConst {
		return big.NewInt(0)
	}
	if n == trueConst {
		two := big.NewInt(2)
		return two.Exp(two, big.NewInt(int64(m.numVars)-int64(m.level(n))), nil)
	}
	lo, hi := m.low(n), m.high(n)
	loCount := m.satcount(lo)
	loCount.Lsh(loCount, uint(m.level(lo)-m.level(n)-1))
	hiCount := m.satcount(hi)
	hiCount.Lsh(hiCount, uint(m.level(hi)-m.level(n)-1))
	return loCount.Add(loCount, hiCount)
}

// Allsat iterates over every satisfying assignment of n, calling f with a
// slice of length Varnum where each entry is 0 (false), 1 (true), or -1
// (don't care, the assignment is satisfying regardless of this variable's
// value). Iteration stops, returning f's error, the first time f returns a
// non-nil error.
func (m *Manager) Allsat(n Node, f func([]int) error) error {
	assignment := make([]int, m.numVars)
	for i := range assignment {
		assignment[i] = -1
	}
	return m.allsat(n, assignment, f)
}

func (m *Manager) allsat(n Node, assignment []int, f func([]int) error) error {
	if n == falseConst {
		return nil
	}
	if n == trueConst {
		return f(assignment)
	}
	lvl := m.level(n)
	lo, hi := m.low(n), m.high(n)
	assignment[m.perm[lvl]] = 0
	if lo != falseConst {
		if err := m.allsat(lo, assignment, f); err != nil {
			return err
		}
	}
	assignment[m.perm[lvl]] = 1
	if hi != falseConst {
		if err := m.allsat(hi, assignment, f); err != nil {
			return err
		}
	}
	assignment[m.perm[lvl]] = -1
	return nil
}

// Allnodes iterates over every node reachable from n (or, if n is omitted,
// every live node in the manager), calling f with the node's id and level and
// the ids of its low/high successors. The two constants always report id 1.
func (m *Manager) Allnodes(f func(id, level, low, high int) error, n ...Node) error {
	if len(n) == 0 {
		for idx := int32(1); idx < int32(len(m.table.nodes)); idx++ {
			nd := &m.table.nodes[idx]
			if idx > 1 && nd.low == NodeNil {
				continue
			}
			if err := f(int(idx), int(nd.level), int(nd.low.Regular().index()), int(nd.high.Regular().index())); err != nil {
				return err
			}
		}
		return nil
	}
	for _, r := range n {
		m.markrec(r.index())
	}
	defer m.unmarkall()
	for idx := int32(1); idx < int32(len(m.table.nodes)); idx++ {
		nd := &m.table.nodes[idx]
		if !nd.marked() && idx != 1 {
			continue
		}
		if err := f(int(idx), int(nd.level), int(nd.low.Regular().index()), int(nd.high.Regular().index())); err != nil {
			return err
		}
	}
	return nil
}
