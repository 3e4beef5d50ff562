// Copyright (c) 2024 The vellumdd Authors
//
// MIT License

package dd

import (
	"math"
	"testing"
)

func TestAddApplyArithmetic(t *testing.T) {
	m := newTestManager(t)
	x0 := m.addIthVar(0)
	two := m.Const(2)

	sum := m.AddApply(x0, two, AddPlus)
	// x0 is 1 on its high branch, 0 on its low branch: sum's high cofactor
	// must be 1+2=3, its low cofactor 0+2=2.
	lo, hi := m.low(sum), m.high(sum)
	if v, ok := m.V(hi); !ok || v != 3 {
		t.Errorf("AddApply(x0, 2, Plus) high cofactor = %v, want 3", v)
	}
	if v, ok := m.V(lo); !ok || v != 2 {
		t.Errorf("AddApply(x0, 2, Plus) low cofactor = %v, want 2", v)
	}
}

func TestAddApplyTimesByZeroIsZero(t *testing.T) {
	m := newTestManager(t)
	x0 := m.addIthVar(0)
	zero := m.Const(0)

	res := m.AddApply(x0, zero, AddTimes)
	if v, ok := m.V(res); !ok || v != 0 {
		t.Errorf("AddApply(x0, 0, Times) = %v, want constant 0", res)
	}
}

func TestEqualSupNormWithinTolerance(t *testing.T) {
	m := newTestManager(t)
	a := m.Const(1.0)
	b := m.Const(1.05)

	if !m.EqualSupNorm(a, b, 0.1) {
		t.Errorf("EqualSupNorm(1.0, 1.05, 0.1) = false, want true")
	}
	if m.EqualSupNorm(a, b, 0.01) {
		t.Errorf("EqualSupNorm(1.0, 1.05, 0.01) = true, want false")
	}
}

func TestAddBddThresholdRecoversTheVariable(t *testing.T) {
	m := newTestManager(t)
	x0 := m.addIthVar(0)

	// x0's ADD values are exactly {0, 1}, so thresholding at >= 1 must
	// recover the Boolean variable itself.
	thresh := m.AddBddThreshold(x0, 1)
	if thresh != m.Ithvar(0) {
		t.Errorf("AddBddThreshold(x0, 1) = %v, want Ithvar(0) = %v", thresh, m.Ithvar(0))
	}
}

func TestConstIsMemoized(t *testing.T) {
	m := newTestManager(t)
	a := m.Const(3.5)
	b := m.Const(3.5)
	if a != b {
		t.Errorf("Const(3.5) called twice gave distinct terminals: %v != %v", a, b)
	}
}

func TestReadInfinities(t *testing.T) {
	m := newTestManager(t)
	if v, ok := m.V(m.ReadPlusInfinity()); !ok || !math.IsInf(v, 1) {
		t.Errorf("ReadPlusInfinity value = %v, ok=%v, want +Inf", v, ok)
	}
	if v, ok := m.V(m.ReadMinusInfinity()); !ok || !math.IsInf(v, -1) {
		t.Errorf("ReadMinusInfinity value = %v, ok=%v, want -Inf", v, ok)
	}
}
