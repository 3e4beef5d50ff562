// Copyright (c) 2024 The vellumdd Authors
//
// MIT License

package dd

import (
	"math/big"
	"testing"
)

// newTestManager builds a fresh 4-variable manager matching the
// "4 BDD variables, 0 ZDD variables, default slots, 0 max memory" setup
// every scenario below starts from.
func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := Init(4)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	return m
}

func TestAndOrSanity(t *testing.T) {
	m := newTestManager(t)
	x0, x1, x2, x3 := m.Ithvar(0), m.Ithvar(1), m.Ithvar(2), m.Ithvar(3)

	f := m.And(x0, x1)
	g := m.Or(x2, x3)

	if got := m.DagSize(f); got != 3 {
		t.Errorf("DagSize(f) = %d, want 3", got)
	}
	if got := m.DagSize(g); got != 3 {
		t.Errorf("DagSize(g) = %d, want 3", got)
	}

	fg := m.And(f, g)
	if got := m.DagSize(fg); got != 5 {
		t.Errorf("DagSize(And(f,g)) = %d, want 5", got)
	}

	count := m.Satcount(fg)
	if count.Cmp(big.NewInt(3)) != 0 {
		t.Errorf("Satcount(And(f,g)) = %v, want 3", count)
	}
}

func TestAbstractionExistAbstract(t *testing.T) {
	m := newTestManager(t)
	x0, x1 := m.Ithvar(0), m.Ithvar(1)

	f := m.And(x0, x1)
	cube := m.Makeset([]int{0})

	if got := m.Exist(f, cube); got != x1 {
		t.Errorf("Exist(And(x0,x1), x0) = %v, want x1 (%v)", got, x1)
	}
}

func TestComplementIdentity(t *testing.T) {
	m := newTestManager(t)
	x0 := m.Ithvar(0)

	if got := m.Xor(x0, m.Not(x0)); got != m.ReadOne() {
		t.Errorf("Xor(x0, Not(x0)) = %v, want ReadOne()", got)
	}
}

func TestReorderingIdempotenceOnOptimal(t *testing.T) {
	m := newTestManager(t)
	x0, x1, x2, x3 := m.Ithvar(0), m.Ithvar(1), m.Ithvar(2), m.Ithvar(3)

	f := m.Xor(m.Xor(x0, x1), m.Xor(x2, x3))
	m.Ref(f)

	before := m.DagSize(f)
	m.ReduceHeap(ReorderSift)
	after := m.DagSize(f)

	if after > before {
		t.Fatalf("DagSize grew after ReduceHeap: before=%d after=%d", before, after)
	}

	m.ReduceHeap(ReorderSift)
	again := m.DagSize(f)
	if again != after {
		t.Fatalf("second ReduceHeap changed the diagram size: after=%d again=%d", after, again)
	}
}

func TestIteTerminalCases(t *testing.T) {
	m := newTestManager(t)
	x0, x1 := m.Ithvar(0), m.Ithvar(1)

	if got := m.Ite(m.ReadOne(), x0, x1); got != x0 {
		t.Errorf("Ite(1, x0, x1) = %v, want x0", got)
	}
	if got := m.Ite(m.Not(m.ReadOne()), x0, x1); got != x1 {
		t.Errorf("Ite(!1, x0, x1) = %v, want x1", got)
	}
	if got := m.Ite(x0, m.ReadOne(), m.Not(m.ReadOne())); got != x0 {
		t.Errorf("Ite(x0, 1, !1) = %v, want x0", got)
	}
	if got := m.Ite(x0, x1, x1); got != x1 {
		t.Errorf("Ite(x0, x1, x1) = %v, want x1", got)
	}
}

func TestLimitHonoured(t *testing.T) {
	m, err := Init(20)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}

	xorChain := func(start int) Node {
		n := m.Ithvar(start)
		for i := start + 1; i < start+10; i++ {
			n = m.Xor(n, m.Ithvar(i))
		}
		return n
	}

	f := xorChain(0)
	g := xorChain(10)
	m.Ref(f)
	m.Ref(g)

	if got := m.AndLimit(f, g, 2); got != NodeNil {
		t.Fatalf("AndLimit(f, g, 2) = %v, want NodeNil", got)
	}
	if m.ErrorKind() != TooManyNodes {
		t.Errorf("ErrorKind() = %v, want TooManyNodes", m.ErrorKind())
	}
}

func TestCanonicityAcrossCallOrder(t *testing.T) {
	m := newTestManager(t)
	x, y := m.Ithvar(0), m.Ithvar(1)

	if m.And(x, y) != m.And(y, x) {
		t.Errorf("And is not commutative at the pointer level")
	}

	h := m.Ithvar(2)
	if m.Ite(x, y, h) != m.Ite(x, y, h) {
		t.Errorf("Ite(f,g,h) is not stable across identical calls")
	}
}

func TestComplementEdgeAlgebra(t *testing.T) {
	m := newTestManager(t)
	f := m.Ithvar(0)

	if got := m.Not(m.Not(f)); got != f {
		t.Errorf("Not(Not(f)) = %v, want f (%v)", got, f)
	}
	if got := m.Or(f, m.Not(f)); got != m.ReadOne() {
		t.Errorf("Or(f, Not(f)) = %v, want ReadOne()", got)
	}
	if got := m.And(f, m.Not(f)); got != m.Not(m.ReadOne()) {
		t.Errorf("And(f, Not(f)) = %v, want Not(ReadOne())", got)
	}
}

func TestShannonExpansion(t *testing.T) {
	m := newTestManager(t)
	x0, x1, x2 := m.Ithvar(0), m.Ithvar(1), m.Ithvar(2)
	f := m.Or(m.And(x0, x1), m.And(m.Not(x0), x2))

	hi := m.Cofactor(f, x0)
	lo := m.Cofactor(f, m.Not(x0))

	if got := m.Ite(x0, hi, lo); got != f {
		t.Errorf("Ite(x0, Cofactor(f,x0), Cofactor(f,!x0)) = %v, want f (%v)", got, f)
	}
}

func TestUnivAbstractIsDeMorganOfExist(t *testing.T) {
	m := newTestManager(t)
	x0, x1, x2 := m.Ithvar(0), m.Ithvar(1), m.Ithvar(2)
	f := m.Or(m.And(x0, x1), x2)
	cube := m.Makeset([]int{0})

	want := m.Not(m.Exist(m.Not(f), cube))
	if got := m.Univ(f, cube); got != want {
		t.Errorf("Univ(f, cube) = %v, want Not(Exist(Not(f), cube)) = %v", got, want)
	}
}

func TestRefcountDiscipline(t *testing.T) {
	m := newTestManager(t)
	x0, x1 := m.Ithvar(0), m.Ithvar(1)
	f := m.And(x0, x1)

	r := m.Ref(f)
	m.RecursiveDeref(r)

	if got := m.CheckZeroRef(); got != 0 {
		t.Errorf("CheckZeroRef() = %d, want 0 after releasing all references", got)
	}
}
