// Copyright (c) 2024 The vellumdd Authors
//
// MIT License

package dd

import "testing"

// reorderPreservesFunction builds a handful of functions over a
// freshly-initialized manager, runs the named method, and checks that every
// Leq relationship among them (computed before reordering) still holds
// afterward. Reordering changes level positions and node identities but must
// never change the Boolean function a live pointer denotes.
func reorderPreservesFunction(t *testing.T, method ReorderMethod) {
	t.Helper()
	m, err := Init(6)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	vars := make([]Node, 6)
	for i := range vars {
		vars[i] = m.Ref(m.Ithvar(i))
	}

	f := m.Ref(m.And(vars[0], vars[1], vars[2]))
	g := m.Ref(m.Or(vars[2], vars[3], vars[4]))
	h := m.Ref(m.Xor(vars[0], vars[5]))

	fLeqG := m.Leq(f, g)
	gLeqH := m.Leq(g, h)

	m.ReduceHeap(method)

	if got := m.Leq(f, g); got != fLeqG {
		t.Errorf("%v: Leq(f,g) changed by reordering: before=%v after=%v", method, fLeqG, got)
	}
	if got := m.Leq(g, h); got != gLeqH {
		t.Errorf("%v: Leq(g,h) changed by reordering: before=%v after=%v", method, gLeqH, got)
	}

	// f itself must still satisfy the same minterm count.
	if got := m.Satcount(f); got.Int64() != 8 {
		t.Errorf("%v: Satcount(f) changed by reordering: got %v, want 8", method, got)
	}
}

func TestReduceHeapMethods(t *testing.T) {
	methods := []ReorderMethod{
		ReorderSift,
		ReorderSiftConverge,
		ReorderSymmetricSift,
		ReorderWindow2,
		ReorderWindow3,
		ReorderWindow2Converge,
		ReorderGroupSift,
		ReorderAnnealing,
		ReorderGenetic,
		ReorderExact,
	}
	for _, method := range methods {
		reorderPreservesFunction(t, method)
	}
}

func TestShuffleHeapAppliesRequestedPermutation(t *testing.T) {
	m, err := Init(4)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	f := m.Ref(m.And(m.Ithvar(0), m.Ithvar(1)))
	before := m.Satcount(f)

	// permutation[level] = variable; deliberately non-palindromic so ReadPerm
	// and ReadInvPerm can't be confused for one another by symmetry.
	if err := m.ShuffleHeap([]int{1, 3, 0, 2}); err != nil {
		t.Fatalf("ShuffleHeap: %v", err)
	}

	// ReadInvPerm(level) must return the variable sitting at that level.
	wantVarAtLevel := map[int]int{0: 1, 1: 3, 2: 0, 3: 2}
	for lvl, wantVar := range wantVarAtLevel {
		if got := m.ReadInvPerm(lvl); got != wantVar {
			t.Errorf("ReadInvPerm(%d) = %d, want %d", lvl, got, wantVar)
		}
	}

	// ReadPerm(index) must return the level holding that variable, the
	// inverse mapping of ReadInvPerm.
	wantLevelOfVar := map[int]int{1: 0, 3: 1, 0: 2, 2: 3}
	for v, wantLevel := range wantLevelOfVar {
		if got := m.ReadPerm(v); got != wantLevel {
			t.Errorf("ReadPerm(%d) = %d, want %d", v, got, wantLevel)
		}
	}

	after := m.Satcount(f)
	if before.Cmp(after) != 0 {
		t.Errorf("Satcount(f) changed by ShuffleHeap: before=%v after=%v", before, after)
	}
}

func TestAutodynEnableDisable(t *testing.T) {
	m := newTestManager(t)
	if m.ReorderingEnabled() {
		t.Fatalf("reordering enabled by default")
	}
	m.AutodynEnableNow(ReorderSift)
	if !m.ReorderingEnabled() {
		t.Errorf("ReorderingEnabled() = false after AutodynEnableNow")
	}
	m.AutodynDisable()
	if m.ReorderingEnabled() {
		t.Errorf("ReorderingEnabled() = true after AutodynDisable")
	}
}

func TestGroupSiftKeepsGroupContiguous(t *testing.T) {
	m, err := Init(6)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	m.MakeGroup([]int{1, 3})
	f := m.Ref(m.And(m.Ithvar(0), m.Ithvar(1), m.Ithvar(3), m.Ithvar(5)))
	m.ReduceHeap(ReorderGroupSift)

	l1 := m.ReadPerm(1)
	l3 := m.ReadPerm(3)
	diff := l1 - l3
	if diff != 1 && diff != -1 {
		t.Errorf("group {1,3} not contiguous after group sift: levels %d, %d", l1, l3)
	}
	_ = f
}
