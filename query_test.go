// Copyright (c) 2024 The vellumdd Authors
//
// MIT License

package dd

import "testing"

func TestAllsatCoversWithoutOverlap(t *testing.T) {
	m := newTestManager(t)
	x0, x1, x2, x3 := m.Ithvar(0), m.Ithvar(1), m.Ithvar(2), m.Ithvar(3)
	f := m.Or(m.And(x0, x1), m.And(x2, x3))

	sum := m.False()
	err := m.Allsat(f, func(assignment []int) error {
		cube := m.True()
		for v, lit := range assignment {
			switch lit {
			case 0:
				cube = m.And(cube, m.NIthvar(v))
			case 1:
				cube = m.And(cube, m.Ithvar(v))
			}
		}
		sum = m.Or(sum, cube)
		return nil
	})
	if err != nil {
		t.Fatalf("Allsat: %v", err)
	}
	if sum != f {
		t.Errorf("union of Allsat's cubes = %v, want f = %v", sum, f)
	}
}

func TestAllsatStopsOnCallbackError(t *testing.T) {
	m := newTestManager(t)
	x0 := m.Ithvar(0)

	calls := 0
	stopErr := errStop{}
	err := m.Allsat(x0, func(assignment []int) error {
		calls++
		return stopErr
	})
	if err != stopErr {
		t.Fatalf("Allsat returned %v, want the callback's error", err)
	}
	if calls != 1 {
		t.Errorf("Allsat called its callback %d times after an error, want 1", calls)
	}
}

type errStop struct{}

func (errStop) Error() string { return "stop" }

func TestAllnodesVisitsDagSizeNodes(t *testing.T) {
	m := newTestManager(t)
	x0, x1, x2 := m.Ithvar(0), m.Ithvar(1), m.Ithvar(2)
	f := m.And(x0, m.Or(x1, x2))

	count := 0
	err := m.Allnodes(func(id, level, low, high int) error {
		count++
		return nil
	}, f)
	if err != nil {
		t.Fatalf("Allnodes: %v", err)
	}
	if got := m.DagSize(f); count != got {
		t.Errorf("Allnodes visited %d nodes, DagSize reports %d", count, got)
	}
}
