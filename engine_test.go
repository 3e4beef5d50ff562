// Copyright (c) 2024 The vellumdd Authors
//
// MIT License

package dd

import "testing"

func TestIteCanonicalizesEquivalentCalls(t *testing.T) {
	m := newTestManager(t)
	x0, x1, x2 := m.Ithvar(0), m.Ithvar(1), m.Ithvar(2)

	// Ite(f,g,h) == Ite(!f,h,g): both spellings of the same function must
	// produce the identical pointer.
	a := m.Ite(x0, x1, x2)
	b := m.Ite(m.Not(x0), x2, x1)
	if a != b {
		t.Errorf("Ite(f,g,h) != Ite(!f,h,g): %v != %v", a, b)
	}
}

func TestIteWithConstantThenBranchIsOr(t *testing.T) {
	m := newTestManager(t)
	x0, x1 := m.Ithvar(0), m.Ithvar(1)

	if got, want := m.Ite(x0, m.True(), x1), m.Or(x0, x1); got != want {
		t.Errorf("Ite(f,1,h) = %v, want Or(f,h) = %v", got, want)
	}
}

func TestApplyIsCommutative(t *testing.T) {
	m := newTestManager(t)
	x0, x1 := m.Ithvar(0), m.Ithvar(1)

	for _, op := range []Operator{OPand, OPor, OPxor, OPbiimp} {
		if got, want := m.Apply(x0, x1, op), m.Apply(x1, x0, op); got != want {
			t.Errorf("Apply(x0,x1,%v) = %v, Apply(x1,x0,%v) = %v, want equal", op, got, op, want)
		}
	}
}

func TestCofactorsMatchLowHighAfterComplementPropagation(t *testing.T) {
	m := newTestManager(t)
	x0, x1 := m.Ithvar(0), m.Ithvar(1)
	f := m.Not(m.And(x0, x1)) // a complemented edge into an internal node

	lvl := m.level(f)
	lo, hi := m.cofactors(f, lvl)
	if lo != m.Not(m.low(f.Regular())) {
		t.Errorf("cofactor low branch did not propagate the complement tag")
	}
	if hi != m.Not(m.high(f.Regular())) {
		t.Errorf("cofactor high branch did not propagate the complement tag")
	}
}

func TestIteConstantDetectsConstantResult(t *testing.T) {
	m := newTestManager(t)
	x0 := m.Ithvar(0)

	if got := m.IteConstant(x0, m.True(), m.True()); got != m.True() {
		t.Errorf("IteConstant(f, 1, 1) = %v, want True (the ITE is constantly true)", got)
	}
	if got := m.IteConstant(x0, m.True(), m.False()); got != NodeNil {
		t.Errorf("IteConstant(x0, 1, 0) = %v, want NodeNil (the ITE depends on x0)", got)
	}
}
