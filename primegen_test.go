// Copyright (c) 2024 The vellumdd Authors
//
// MIT License

package dd

import "testing"

func TestFirstPrimeCubesImplyUpper(t *testing.T) {
	m := newTestManager(t)
	x0, x1, x2 := m.Ithvar(0), m.Ithvar(1), m.Ithvar(2)
	f := m.Or(m.And(x0, x1), x2)

	for g := m.FirstPrime(f, f); !g.Done(); g.Next() {
		cube, count := m.cubeToNode(g.Cube())
		if !m.Leq(cube, f) {
			t.Errorf("prime cube %v does not imply f", g.Cube())
		}
		m.popref(count)
	}
}

func TestFirstPrimeCoversLowerBound(t *testing.T) {
	m := newTestManager(t)
	x0, x1 := m.Ithvar(0), m.Ithvar(1)
	f := m.And(x0, x1)

	cover := m.False()
	for g := m.FirstPrime(f, f); !g.Done(); g.Next() {
		cube, count := m.cubeToNode(g.Cube())
		cover = m.Or(cover, cube)
		m.popref(count)
	}
	if cover != f {
		t.Errorf("disjunction of primes = %v, want f = %v", cover, f)
	}
}

func TestFirstPrimeIsMaximal(t *testing.T) {
	m := newTestManager(t)
	x0, x1, x2 := m.Ithvar(0), m.Ithvar(1), m.Ithvar(2)
	f := m.Or(m.And(x0, x1), m.And(x0, x2))

	for g := m.FirstPrime(f, f); !g.Done(); g.Next() {
		cube := g.Cube()
		for v, lit := range cube {
			if lit == -1 {
				continue
			}
			relaxed := append([]int(nil), cube...)
			relaxed[v] = -1
			n, count := m.cubeToNode(relaxed)
			if m.Leq(n, f) {
				t.Errorf("prime %v can still be generalized by dropping variable %d", cube, v)
			}
			m.popref(count)
		}
	}
}
