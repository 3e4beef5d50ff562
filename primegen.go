// Copyright (c) 2024 The vellumdd Authors
//
// MIT License

package dd

// PrimeGenerator enumerates the prime implicants of a function specified by
// a lower and upper bound (the same node for a completely specified
// function): every cube it reports implies upper, their disjunction covers
// lower, and none can be further generalized (dropping any remaining
// literal would stop implying upper). It follows the same eager,
// snapshot-at-construction idiom as Generator and NodeGenerator above
// rather than lazily walking the DAG, which keeps the per-path literal
// bookkeeping a plain recursive accumulation.
type PrimeGenerator struct {
	cubes [][]int
	pos   int
}

// FirstPrime starts a prime generator for the function bounded below by
// lower and above by upper (pass the same node for both to generate the
// primes of a completely specified function). Each seed cube is taken from
// a depth-first traversal of lower to the true leaf (the same cubes
// FirstCube would report) and then greedily generalized, literal by
// literal, as long as the result still implies upper.
func (m *Manager) FirstPrime(lower, upper Node) *PrimeGenerator {
	assignment := make([]int, m.numVars)
	for i := range assignment {
		assignment[i] = -1
	}
	var raw [][]int
	m.collectCubes(lower, assignment, &raw)
	g := &PrimeGenerator{cubes: make([][]int, 0, len(raw))}
	for _, c := range raw {
		g.cubes = append(g.cubes, m.generalizeCube(c, upper))
	}
	return g
}

// generalizeCube returns the largest cube reachable from cube by repeatedly
// dropping a fixed literal, one at a time, whenever doing so still implies
// upper.
func (m *Manager) generalizeCube(cube []int, upper Node) []int {
	out := append([]int(nil), cube...)
	for v := range out {
		if out[v] == -1 {
			continue
		}
		saved := out[v]
		out[v] = -1
		if !m.cubeImplies(out, upper) {
			out[v] = saved
		}
	}
	return out
}

// cubeImplies reports whether the conjunction of literals named by cube
// (-1 entries skipped as don't-cares) implies upper.
func (m *Manager) cubeImplies(cube []int, upper Node) bool {
	n, count := m.cubeToNode(cube)
	ok := m.Leq(n, upper)
	m.popref(count)
	return ok
}

// cubeToNode builds the BDD for the conjunction of literals named by cube,
// returning it together with the number of entries it pushed onto the
// refstack (all of which the caller must pop once done with the result).
func (m *Manager) cubeToNode(cube []int) (Node, int) {
	res := trueConst
	count := 0
	for v, lit := range cube {
		if lit == -1 {
			continue
		}
		var x Node
		if lit == 1 {
			x = m.Ithvar(v)
		} else {
			x = m.NIthvar(v)
		}
		res = m.pushref(m.And(x, res))
		count++
	}
	return res, count
}

// Done reports whether the generator has reported every prime.
func (g *PrimeGenerator) Done() bool { return g.pos >= len(g.cubes) }

// Cube returns the current prime as a cube of length Varnum (0, 1, or -1
// per variable), valid until the next call to Next.
func (g *PrimeGenerator) Cube() []int {
	if g.Done() {
		return nil
	}
	return g.cubes[g.pos]
}

// Next advances the generator to the following prime.
func (g *PrimeGenerator) Next() {
	if !g.Done() {
		g.pos++
	}
}

// Free releases the generator early.
func (g *PrimeGenerator) Free() {
	g.cubes = nil
	g.pos = 0
}
