// Copyright (c) 2024 The vellumdd Authors
//
// MIT License

package dd

import "testing"

func TestIthvarAndNIthvarAreComplements(t *testing.T) {
	m := newTestManager(t)
	if got, want := m.NIthvar(0), m.Not(m.Ithvar(0)); got != want {
		t.Errorf("NIthvar(0) = %v, want Not(Ithvar(0)) = %v", got, want)
	}
}

func TestIsVar(t *testing.T) {
	m := newTestManager(t)
	x0 := m.Ithvar(0)
	f := m.And(x0, m.Ithvar(1))

	if !m.IsVar(x0) {
		t.Errorf("IsVar(Ithvar(0)) = false, want true")
	}
	if m.IsVar(f) {
		t.Errorf("IsVar(And(x0,x1)) = true, want false")
	}
}

func TestNewVarAtLevelInsertsAtRequestedLevel(t *testing.T) {
	m, err := Init(3)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	v, err := m.NewVarAtLevel(1)
	if err != nil {
		t.Fatalf("NewVarAtLevel: %v", err)
	}
	newVarIndex := 3 // Init(3) declares 0,1,2; the new variable is index 3.
	if got := m.ReadInvPerm(1); got != newVarIndex {
		t.Errorf("ReadInvPerm(1) = %d, want the new variable %d", got, newVarIndex)
	}
	if got := m.ReadPerm(newVarIndex); got != 1 {
		t.Errorf("ReadPerm(%d) = %d, want level 1", newVarIndex, got)
	}
	_ = v
}

func TestExtVarnumGrowsSize(t *testing.T) {
	m := newTestManager(t)
	if err := m.ExtVarnum(2); err != nil {
		t.Fatalf("ExtVarnum: %v", err)
	}
	if got := m.ReadSize(); got != 6 {
		t.Errorf("ReadSize() after ExtVarnum(2) = %d, want 6", got)
	}
}

func TestSetVarnumRejectsDecrease(t *testing.T) {
	m := newTestManager(t)
	if err := m.SetVarnum(2); err == nil {
		t.Errorf("SetVarnum accepted a decrease in variable count")
	}
}
