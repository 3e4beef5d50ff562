// Copyright (c) 2024 The vellumdd Authors
//
// MIT License

package dd

import "testing"

func TestSwapVariablesIsInvolution(t *testing.T) {
	m := newTestManager(t)
	x0, x1, x2 := m.Ithvar(0), m.Ithvar(1), m.Ithvar(2)
	f := m.Or(m.And(x0, x1), x2)

	swapped := m.SwapVariables(f, 0, 1)
	back := m.SwapVariables(swapped, 0, 1)
	if back != f {
		t.Errorf("SwapVariables applied twice did not return the original function")
	}
}

func TestPermuteIdentityIsNoOp(t *testing.T) {
	m := newTestManager(t)
	x0, x1 := m.Ithvar(0), m.Ithvar(1)
	f := m.And(x0, x1)

	identity := []int{0, 1, 2, 3}
	if got := m.Permute(f, identity); got != f {
		t.Errorf("Permute with the identity permutation changed f: got %v, want %v", got, f)
	}
}

func TestComposeSubstitutesVariable(t *testing.T) {
	m := newTestManager(t)
	x0, x1 := m.Ithvar(0), m.Ithvar(1)
	f := m.And(x0, x1)

	// Substituting x0 with True must be equivalent to cofactoring f at x0=1.
	got := m.Compose(f, 0, m.True())
	want := m.Cofactor(f, x0)
	if got != want {
		t.Errorf("Compose(f, 0, True) = %v, want Cofactor(f, x0) = %v", got, want)
	}
}

func TestVectorComposeSimultaneousSubstitution(t *testing.T) {
	m := newTestManager(t)
	x0, x1, x2 := m.Ithvar(0), m.Ithvar(1), m.Ithvar(2)
	f := m.Xor(x0, x1)

	// Swapping x0 and x1 simultaneously via VectorCompose must match
	// SwapVariables.
	got := m.VectorCompose(f, map[int]Node{0: x1, 1: x0})
	want := m.SwapVariables(f, 0, 1)
	if got != want {
		t.Errorf("VectorCompose swap = %v, want SwapVariables = %v", got, want)
	}
	_ = x2
}

func TestBooleanDiffDetectsDependence(t *testing.T) {
	m := newTestManager(t)
	x0, x1 := m.Ithvar(0), m.Ithvar(1)
	f := m.And(x0, x1)

	// f genuinely depends on x0, so its Boolean difference w.r.t. x0 must be
	// satisfiable (not the constant False).
	if got := m.BooleanDiff(f, 0); got == m.False() {
		t.Errorf("BooleanDiff(f, 0) = False, want a node reflecting f's dependence on x0")
	}

	g := x1 // does not depend on x0
	if got := m.BooleanDiff(g, 0); got != m.False() {
		t.Errorf("BooleanDiff(g, 0) = %v, want False since g does not depend on x0", got)
	}
}

func TestNewReplacerRejectsMismatchedLengths(t *testing.T) {
	m := newTestManager(t)
	if _, err := m.NewReplacer([]int{0, 1}, []int{1}); err == nil {
		t.Errorf("NewReplacer accepted mismatched slice lengths")
	}
}
