// Copyright (c) 2024 The vellumdd Authors
//
// MIT License

package dd

import "time"

// terminationState holds the user-registered predicate checked by
// checkDeadline on every recursive call, letting long-running operations be
// aborted from outside the current goroutine (a progress bar's cancel
// button, an enclosing context.Context, a SIGINT handler).
type terminationState struct {
	callback func() bool
}

func newTerminationState() *terminationState { return &terminationState{} }

func (t *terminationState) shouldStop() bool {
	return t.callback != nil && t.callback()
}

// RegisterTerminationCallback installs fn as the manager's termination
// predicate; the engine calls it at the top of every recursive step and
// aborts with a Termination error the first time it returns true.
func (m *Manager) RegisterTerminationCallback(fn func() bool) {
	m.term.callback = fn
}

// UnregisterTerminationCallback removes any termination predicate previously
// installed with RegisterTerminationCallback.
func (m *Manager) UnregisterTerminationCallback() {
	m.term.callback = nil
}

// SetTimeout installs a wall-clock deadline; operations started after it
// elapses immediately fail with a TimeoutExpired error, and operations in
// flight abort at their next recursive step. A duration of zero clears any
// previously set deadline.
func (m *Manager) SetTimeout(d time.Duration) {
	if d <= 0 {
		m.deadline = time.Time{}
		return
	}
	m.deadline = time.Now().Add(d)
}
