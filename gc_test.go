// Copyright (c) 2024 The vellumdd Authors
//
// MIT License

package dd

import "testing"

func TestGCResurrection(t *testing.T) {
	m := newTestManager(t)
	x0, x1 := m.Ithvar(0), m.Ithvar(1)

	f := m.Ref(m.And(x0, x1))
	m.RecursiveDeref(f)

	// f is now dead but must still be resurrectable from the unique table:
	// building the same conjunction again must return the identical pointer.
	again := m.And(x0, x1)
	if again != f {
		t.Fatalf("And(x0,x1) after deref = %v, want resurrected %v", again, f)
	}

	m.gc()
	afterGC := m.And(x0, x1)
	if afterGC.Regular() != f.Regular() {
		t.Fatalf("And(x0,x1) after GC = %v, want same function as %v", afterGC, f)
	}
}

func TestUniqueTableHashCons(t *testing.T) {
	m := newTestManager(t)
	x0, x1 := m.Ithvar(0), m.Ithvar(1)

	a := m.And(x0, x1)
	b := m.And(x0, x1)
	if a != b {
		t.Errorf("And(x0,x1) built twice gave distinct pointers: %v != %v", a, b)
	}
}

func TestCheckZeroRefAfterGC(t *testing.T) {
	m := newTestManager(t)
	x0, x1, x2 := m.Ithvar(0), m.Ithvar(1), m.Ithvar(2)

	f := m.Ref(m.And(m.Or(x0, x1), x2))
	m.RecursiveDeref(f)
	m.gc()

	if got := m.CheckZeroRef(); got != 0 {
		t.Errorf("CheckZeroRef() = %d, want 0 after dereferencing every root", got)
	}
}
