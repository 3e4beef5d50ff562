// Copyright (c) 2024 The vellumdd Authors
//
// MIT License

package dd

import "github.com/pkg/errors"

var replacerSeq int32 = 1

// Replacer renames variables in a node, mapping the level of an old variable
// to the level of its replacement. It is grounded on the association-list
// Replacer of the library this package is adapted from, generalized so a
// single id also serves Permute and SwapVariables.
type Replacer struct {
	id    int32
	image []int32 // image[level] = new level, level itself if unchanged
	last  int32
}

// NewReplacer returns a Replacer substituting oldvars[k] with newvars[k] for
// each k. oldvars and newvars must have the same length, and no variable may
// appear twice in either slice.
func (m *Manager) NewReplacer(oldvars, newvars []int) (*Replacer, error) {
	if len(oldvars) != len(newvars) {
		return nil, errors.New("mismatched slice lengths in NewReplacer")
	}
	r := &Replacer{id: replacerSeq}
	replacerSeq++
	varnum := m.Varnum()
	seen := make([]bool, varnum)
	r.image = make([]int32, varnum)
	for k := range r.image {
		r.image[k] = int32(k)
	}
	for k, v := range oldvars {
		if v < 0 || v >= varnum {
			return nil, errors.Errorf("invalid variable %d in oldvars", v)
		}
		if seen[v] {
			return nil, errors.Errorf("duplicate variable %d in oldvars", v)
		}
		if newvars[k] < 0 || newvars[k] >= varnum {
			return nil, errors.Errorf("invalid variable %d in newvars", newvars[k])
		}
		seen[v] = true
		lvl := int32(m.invperm[v])
		r.image[lvl] = int32(m.invperm[newvars[k]])
		if lvl > r.last {
			r.last = lvl
		}
	}
	return r, nil
}

// Replace substitutes variables in n according to r.
func (m *Manager) Replace(n Node, r *Replacer) Node {
	if m.err != nil {
		return NodeNil
	}
	m.maybeAutoReorder()
	res := m.replace(n, r)
	m.unmarkall()
	return res
}

func (m *Manager) replace(n Node, r *Replacer) Node {
	if m.checkDeadline() {
		return NodeNil
	}
	if n.index() <= 1 {
		return n
	}
	lvl := m.level(n)
	if lvl > r.last {
		return n
	}
	if v, ok := m.caches.replace.get(int32(n), r.id, 0); ok {
		return v
	}
	lo := m.pushref(m.replace(m.low(n), r))
	hi := m.pushref(m.replace(m.high(n), r))
	res := m.correctify(r.image[lvl], lo, hi)
	m.popref(2)
	return m.caches.replace.put(int32(n), r.id, 0, res)
}

// correctify rebuilds a node at the given level after a substitution, fixing
// up the case where lo/hi's own top level is no longer below level (the
// substitution can move a variable past one it used to sit above).
func (m *Manager) correctify(level int32, lo, hi Node) Node {
	if level < m.level(lo) && level < m.level(hi) {
		res, err := m.makenode(level, lo, hi)
		if err != nil {
			return NodeNil
		}
		return res
	}
	if level == m.level(lo) || level == m.level(hi) {
		m.seterror(InternalError, "replacement variable collides with an existing level")
		return NodeNil
	}
	llvl := min32(m.level(lo), m.level(hi))
	llo, lhi := m.cofactors(lo, llvl)
	hlo, hhi := m.cofactors(hi, llvl)
	rlo := m.pushref(m.correctify(level, llo, hlo))
	rhi := m.pushref(m.correctify(level, lhi, hhi))
	res, err := m.makenode(llvl, rlo, rhi)
	m.popref(2)
	if err != nil {
		return NodeNil
	}
	return res
}

// Permute applies a full variable permutation to n: permutation[v] names the
// new variable replacing v. It behaves like Replace but does not require the
// substitution to be constrained to a disjoint set of "new" variables.
func (m *Manager) Permute(n Node, permutation []int) Node {
	old := make([]int, len(permutation))
	for i := range old {
		old[i] = i
	}
	r, err := m.NewReplacer(old, permutation)
	if err != nil {
		m.seterror(InvalidArg, "%s", err)
		return NodeNil
	}
	return m.Replace(n, r)
}

// SwapVariables exchanges variables x and y everywhere in n.
func (m *Manager) SwapVariables(n Node, x, y int) Node {
	r, err := m.NewReplacer([]int{x, y}, []int{y, x})
	if err != nil {
		m.seterror(InvalidArg, "%s", err)
		return NodeNil
	}
	return m.Replace(n, r)
}

// Compose substitutes variable `v` in f by g.
func (m *Manager) Compose(f Node, v int, g Node) Node {
	return m.VectorCompose(f, map[int]Node{v: g})
}

// VectorCompose simultaneously substitutes each variable named in subst by
// its mapped Node.
func (m *Manager) VectorCompose(f Node, subst map[int]Node) Node {
	if m.err != nil {
		return NodeNil
	}
	m.maybeAutoReorder()
	vec := make([]Node, m.Varnum())
	for v := range vec {
		vec[v] = m.Ithvar(v)
	}
	for v, g := range subst {
		if v < 0 || v >= m.Varnum() {
			m.seterror(InvalidArg, "invalid variable %d in VectorCompose", v)
			return NodeNil
		}
		vec[v] = g
	}
	res := m.vectorCompose(f, vec)
	m.unmarkall()
	return res
}

func (m *Manager) vectorCompose(f Node, vec []Node) Node {
	if m.checkDeadline() {
		return NodeNil
	}
	if f.index() <= 1 {
		return f
	}
	lvl := m.level(f)
	lo := m.pushref(m.vectorCompose(m.low(f), vec))
	hi := m.pushref(m.vectorCompose(m.high(f), vec))
	res := m.pushref(m.Ite(vec[m.perm[lvl]], hi, lo))
	m.popref(3)
	return res
}

// BooleanDiff returns the Boolean difference of f with respect to variable v:
// the function that is true exactly where f's value changes when v flips,
// equal to Exist(v, f xor Cofactor(f, v=0) ... ) computed as f's cofactors
// XORed together.
func (m *Manager) BooleanDiff(f Node, v int) Node {
	if m.err != nil {
		return NodeNil
	}
	lvl := int32(m.invperm[v])
	lo := m.restrictToLevel(f, lvl, false)
	hi := m.restrictToLevel(f, lvl, true)
	return m.Xor(lo, hi)
}

// restrictToLevel substitutes the variable at lvl with the constant `value`
// in n, used internally by BooleanDiff.
func (m *Manager) restrictToLevel(n Node, lvl int32, value bool) Node {
	if n.index() <= 1 || m.level(n) > lvl {
		return n
	}
	if m.level(n) == lvl {
		if value {
			return m.high(n)
		}
		return m.low(n)
	}
	lo := m.pushref(m.restrictToLevel(m.low(n), lvl, value))
	hi := m.pushref(m.restrictToLevel(m.high(n), lvl, value))
	res, err := m.makenode(m.level(n), lo, hi)
	m.popref(2)
	if err != nil {
		return NodeNil
	}
	return res
}
