// Copyright (c) 2024 The vellumdd Authors
//
// MIT License

package dd

import "unsafe"

// allocator tracks the manager's page-based growth of the node table and
// holds the user-installable out-of-memory handler. It does not own the
// node slice directly (unique.resizeTable still does the actual make/copy,
// since the table and the allocator's bookkeeping must grow atomically) but
// it is consulted before every growth decision, the way the component table
// in §2 describes the allocator delegating to a user handler once the soft
// memory cap is hit.
type allocator struct {
	maxBytes int64 // soft cap in bytes, 0 means unbounded
	pages    int   // number of times the node table has grown past its initial size
	oom      func(requested int)
}

func (a *allocator) init(maxMemoryBytes int) {
	a.maxBytes = int64(maxMemoryBytes)
}

// RegisterOutOfMemoryCallback installs fn to be invoked with the size (in
// nodes) of an allocation that could not be satisfied after GC, reorder, and
// growth have all been tried.
func (m *Manager) RegisterOutOfMemoryCallback(fn func(requested int)) {
	m.mem.oom = fn
}

// UnregisterOutOfMemoryCallback removes any callback installed with
// RegisterOutOfMemoryCallback.
func (m *Manager) UnregisterOutOfMemoryCallback() {
	m.mem.oom = nil
}

// RegisterTimeoutHandler installs fn to be invoked exactly once, the first
// time a deadline set with SetTimeout or Timeout elapses.
func (m *Manager) RegisterTimeoutHandler(fn func()) {
	m.timeoutHandler = fn
}

// UnregisterTimeoutHandler removes any handler installed with
// RegisterTimeoutHandler.
func (m *Manager) UnregisterTimeoutHandler() {
	m.timeoutHandler = nil
}

// SetMaxMemory changes the manager's soft memory cap, in bytes; 0 disables
// the cap. It takes effect on the next allocation.
func (m *Manager) SetMaxMemory(bytes int) { m.mem.maxBytes = int64(bytes) }

// ReadMaxMemory returns the manager's configured soft memory cap, in bytes.
func (m *Manager) ReadMaxMemory() int { return int(m.mem.maxBytes) }

// overBudget reports whether growing the node table to newCount entries
// would exceed the configured memory cap.
func (a *allocator) overBudget(newCount int) bool {
	if a.maxBytes <= 0 {
		return false
	}
	return int64(newCount)*int64(unsafe.Sizeof(node{})) > a.maxBytes
}

// onPageGrown records that the node table grew; neither ReadPeakNodeCount
// nor Stats reads the resulting count.
func (a *allocator) onPageGrown() { a.pages++ }

// reportOutOfMemory invokes the registered OOM callback, if any, with the
// number of additional nodes that could not be allocated.
func (a *allocator) reportOutOfMemory(requested int) {
	if a.oom != nil {
		a.oom(requested)
	}
}
