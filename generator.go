// Copyright (c) 2024 The vellumdd Authors
//
// MIT License

package dd

// Generator is an explicit, stoppable iterator over the cubes or nodes of a
// function, modeled after CUDD's DdGen/Cudd_ForeachCube family: unlike
// Allsat/Allnodes's callback form, a Generator lets the caller interleave
// iteration with other work and must be released with Free (or fully
// drained) when done. Cubes are computed eagerly at construction time
// (Allsat already pays the same recursive cost) and then served one at a
// time, which keeps the per-path variable bookkeeping a plain recursive
// accumulation instead of a hand-threaded explicit stack.
type Generator struct {
	cubes [][]int
	pos   int
}

// FirstCube starts a cube generator over n, following CUDD's convention of
// reporting one cube per path to a true leaf, with -1 marking don't-care
// variables.
func (m *Manager) FirstCube(n Node) *Generator {
	g := &Generator{}
	assignment := make([]int, m.numVars)
	for i := range assignment {
		assignment[i] = -1
	}
	m.collectCubes(n, assignment, &g.cubes)
	return g
}

func (m *Manager) collectCubes(n Node, assignment []int, out *[][]int) {
	if n == falseConst {
		return
	}
	if n == trueConst {
		cube := make([]int, len(assignment))
		copy(cube, assignment)
		*out = append(*out, cube)
		return
	}
	lvl := m.level(n)
	v := m.perm[lvl]
	assignment[v] = 0
	m.collectCubes(m.low(n), assignment, out)
	assignment[v] = 1
	m.collectCubes(m.high(n), assignment, out)
	assignment[v] = -1
}

// Done reports whether the generator has no more cubes to report.
func (g *Generator) Done() bool { return g.pos >= len(g.cubes) }

// Cube returns the current cube as a slice of length Varnum (0, 1, or -1 per
// variable), valid until the next call to Next.
func (g *Generator) Cube() []int {
	if g.Done() {
		return nil
	}
	return g.cubes[g.pos]
}

// Next advances the generator to the following cube.
func (g *Generator) Next() {
	if !g.Done() {
		g.pos++
	}
}

// Free releases the generator early.
func (g *Generator) Free() {
	g.cubes = nil
	g.pos = 0
}

// NodeGenerator iterates over every distinct node reachable from a set of
// roots, each reported exactly once.
type NodeGenerator struct {
	m    *Manager
	ids  []int32
	pos  int
}

// FirstNode starts a node generator over the sub-DAGs rooted at roots.
func (m *Manager) FirstNode(roots ...Node) *NodeGenerator {
	for _, r := range roots {
		m.markrec(r.index())
	}
	var seen []int32
	for idx := int32(1); idx < int32(len(m.table.nodes)); idx++ {
		if m.table.nodes[idx].marked() || (idx == 1 && len(roots) > 0) {
			seen = append(seen, idx)
		}
	}
	m.unmarkall()
	return &NodeGenerator{m: m, ids: seen}
}

// Next advances the generator and reports whether a further node is
// available.
func (g *NodeGenerator) Next() bool {
	g.pos++
	return g.pos <= len(g.ids)
}

// Node returns the id, level, and low/high successor ids of the current
// node.
func (g *NodeGenerator) Node() (id, level, low, high int) {
	idx := g.ids[g.pos-1]
	nd := &g.m.table.nodes[idx]
	return int(idx), int(nd.level), int(nd.low.Regular().index()), int(nd.high.Regular().index())
}

// Free releases the generator.
func (g *NodeGenerator) Free() { g.ids = nil }
