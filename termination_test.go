// Copyright (c) 2024 The vellumdd Authors
//
// MIT License

package dd

import (
	"testing"
	"time"
)

func TestTerminationCallbackAbortsOperation(t *testing.T) {
	m := newTestManager(t)
	x0, x1 := m.Ithvar(0), m.Ithvar(1)

	m.RegisterTerminationCallback(func() bool { return true })

	if got := m.And(x0, x1); got != NodeNil {
		t.Fatalf("And after termination request = %v, want NodeNil", got)
	}
	if m.ErrorKind() != Termination {
		t.Errorf("ErrorKind() = %v, want Termination", m.ErrorKind())
	}

	m.UnregisterTerminationCallback()
	m.ClearError()
	if got := m.And(x0, x1); got == NodeNil {
		t.Errorf("And after UnregisterTerminationCallback still returns NodeNil")
	}
}

func TestTimeoutExpiredAbortsOperation(t *testing.T) {
	m := newTestManager(t)
	x0, x1 := m.Ithvar(0), m.Ithvar(1)

	m.SetTimeout(time.Nanosecond)
	time.Sleep(time.Millisecond)

	if got := m.And(x0, x1); got != NodeNil {
		t.Fatalf("And after deadline expiry = %v, want NodeNil", got)
	}
	if m.ErrorKind() != TimeoutExpired {
		t.Errorf("ErrorKind() = %v, want TimeoutExpired", m.ErrorKind())
	}
}

func TestTimeoutHandlerInvokedOnce(t *testing.T) {
	m := newTestManager(t)
	x0, x1 := m.Ithvar(0), m.Ithvar(1)

	calls := 0
	m.RegisterTimeoutHandler(func() { calls++ })
	m.SetTimeout(time.Nanosecond)
	time.Sleep(time.Millisecond)

	m.And(x0, x1)
	m.ClearError()
	m.SetTimeout(time.Nanosecond)
	time.Sleep(time.Millisecond)
	m.And(x0, x1)

	if calls != 1 {
		t.Errorf("timeoutHandler invoked %d times, want 1 (cleared after first firing)", calls)
	}
}
