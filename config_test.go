// Copyright (c) 2024 The vellumdd Authors
//
// MIT License

package dd

import "testing"

func TestMaxMemoryExceededRaisesError(t *testing.T) {
	m, err := Init(20)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	// Cap memory only after the manager (and its projection variables) have
	// already been built, so the cap bites on the first subsequent growth
	// instead of during Init itself.
	m.SetMaxMemory(1)

	var reported int
	m.RegisterOutOfMemoryCallback(func(requested int) { reported = requested })

	f := m.Ithvar(0)
	for i := 1; i < 20; i++ {
		f = m.Xor(f, m.Ithvar(i))
		if m.Errored() {
			break
		}
	}

	if m.ErrorKind() != MaxMemExceeded {
		t.Fatalf("ErrorKind() = %v, want MaxMemExceeded", m.ErrorKind())
	}
	if reported <= 0 {
		t.Errorf("OOM callback was not invoked with a positive requested size")
	}
}

func TestSetMaxMemoryTakesEffectOnNextAllocation(t *testing.T) {
	m, err := Init(20)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	m.SetMaxMemory(1)

	f := m.Ithvar(0)
	for i := 1; i < 20; i++ {
		f = m.Xor(f, m.Ithvar(i))
		if m.Errored() {
			break
		}
	}
	if m.ErrorKind() != MaxMemExceeded {
		t.Errorf("ErrorKind() = %v, want MaxMemExceeded after SetMaxMemory(1)", m.ErrorKind())
	}
}
