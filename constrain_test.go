// Copyright (c) 2024 The vellumdd Authors
//
// MIT License

package dd

import "testing"

func TestCofactorMatchesGenericCofactor(t *testing.T) {
	m := newTestManager(t)
	x0, x1, x2 := m.Ithvar(0), m.Ithvar(1), m.Ithvar(2)
	f := m.Or(m.And(x0, x1), x2)

	if got := m.Cofactor(f, x0); got != m.cofactor(f, x0) {
		t.Errorf("Cofactor(f, x0) = %v, want %v", got, m.cofactor(f, x0))
	}
}

func TestRestrictPreservesValueOnCareSet(t *testing.T) {
	m := newTestManager(t)
	x0, x1 := m.Ithvar(0), m.Ithvar(1)
	f := m.And(x0, x1)
	care := m.Or(x0, x1)

	r := m.Restrict(f, care)
	// On the care set, r must agree with f: f implies r and r implies f
	// whenever restricted to care.
	if !m.Leq(m.And(f, care), r) {
		t.Errorf("Restrict(f, care) does not agree with f on the care set")
	}
}

func TestConstrainEmptyCareSetErrors(t *testing.T) {
	m := newTestManager(t)
	x0 := m.Ithvar(0)

	if got := m.Constrain(x0, m.False()); got != NodeNil {
		t.Errorf("Constrain(f, False) = %v, want NodeNil", got)
	}
	if m.ErrorKind() != InvalidArg {
		t.Errorf("ErrorKind() = %v, want InvalidArg", m.ErrorKind())
	}
}

func TestSqueezeStaysInInterval(t *testing.T) {
	m := newTestManager(t)
	x0, x1 := m.Ithvar(0), m.Ithvar(1)
	lo := m.And(x0, x1)
	hi := m.Or(x0, x1)

	res := m.Squeeze(lo, hi)
	if !m.Leq(lo, res) || !m.Leq(res, hi) {
		t.Errorf("Squeeze(lo, hi) = %v is not within [lo, hi]", res)
	}
}

func TestInterpolateImpliesUpperBound(t *testing.T) {
	m := newTestManager(t)
	x0, x1, x2 := m.Ithvar(0), m.Ithvar(1), m.Ithvar(2)
	a := m.And(x0, x1, x2)
	b := m.Or(x0, x1)

	interp := m.Interpolate(a, b, []int{0, 1})
	if !m.Leq(a, interp) {
		t.Errorf("Interpolate: a does not imply the interpolant")
	}
	if !m.Leq(interp, b) {
		t.Errorf("Interpolate: interpolant does not imply b")
	}
}

func TestClippingAndIsSupersetOfAnd(t *testing.T) {
	m, err := Init(12)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	a := m.Ithvar(0)
	for i := 1; i < 6; i++ {
		a = m.Xor(a, m.Ithvar(i))
	}
	b := m.Ithvar(6)
	for i := 7; i < 12; i++ {
		b = m.Xor(b, m.Ithvar(i))
	}

	exact := m.And(a, b)
	clipped := m.ClippingAnd(a, b, 2)
	if !m.Leq(exact, clipped) {
		t.Errorf("ClippingAnd result does not contain the exact conjunction")
	}
}
