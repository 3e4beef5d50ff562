// Copyright (c) 2024 The vellumdd Authors
//
// MIT License

package dd

import "runtime"

// gcstat records garbage-collection history, the way the library this is
// grounded on snapshots node/free counts at every collection.
type gcstat struct {
	setfinalizers    uint64
	calledfinalizers uint64
	history          []gcpoint
}

type gcpoint struct {
	nodes            int
	freenodes        int
	setfinalizers    int
	calledfinalizers int
}

// Ref is an external handle on a Node that keeps it alive across garbage
// collections until an explicit Deref call, or the finalizer once the Ref
// itself is unreachable, releases it. It packages the ref/deref pairing this
// package is grounded on as a value with a runtime finalizer so callers that
// simply let a Ref go out of scope still release their reference eventually.
type Ref struct {
	m *Manager
	n Node
}

// Ref increments n's reference count and returns n unchanged, the literal
// Cudd_Ref counterpart for callers that manage their own ref/deref pairing
// instead of using the finalizer-backed AddRef helper below.
func (m *Manager) Ref(n Node) Node {
	idx := n.index()
	if idx >= 1 && int(idx) < len(m.table.nodes) {
		nd := &m.table.nodes[idx]
		if nd.refcount() < _MAXREFCOUNT {
			nd.refcou++
		}
	}
	return n
}

// AddRef increases the external reference count on n and returns a Ref that
// decrements it again, either explicitly via Deref or automatically when the
// Ref is garbage collected. AddRef itself never fails, even for a node that
// is out of range or already collected.
func (m *Manager) AddRef(n Node) *Ref {
	idx := n.index()
	if idx >= 1 && int(idx) < len(m.table.nodes) {
		nd := &m.table.nodes[idx]
		if nd.refcount() < _MAXREFCOUNT {
			nd.refcou++
		}
	}
	m.gcstat.setfinalizers++
	r := &Ref{m: m, n: n}
	runtime.SetFinalizer(r, (*Ref).release)
	return r
}

// Node returns the Node this Ref protects.
func (r *Ref) Node() Node { return r.n }

// Deref releases the reference eagerly instead of waiting for the Go garbage
// collector to run the finalizer.
func (r *Ref) Deref() {
	runtime.SetFinalizer(r, nil)
	r.release()
}

func (r *Ref) release() {
	idx := r.n.index()
	if idx >= 1 && int(idx) < len(r.m.table.nodes) {
		nd := &r.m.table.nodes[idx]
		if nd.refcount() > 0 && nd.refcount() < _MAXREFCOUNT {
			nd.refcou--
		}
	}
	r.m.gcstat.calledfinalizers++
}

// RecursiveDeref decreases the reference count of n and, transitively, of
// every node reachable only through it — the bulk deref CUDD exposes for
// releasing a whole sub-DAG built up during one computation instead of one
// node at a time.
func (m *Manager) RecursiveDeref(n Node) {
	m.derefrec(n.index())
}

func (m *Manager) derefrec(idx int32) {
	if idx < 2 {
		return
	}
	nd := &m.table.nodes[idx]
	if nd.refcount() == 0 || nd.refcount() >= _MAXREFCOUNT {
		return
	}
	nd.refcou--
	if nd.refcount() == 0 {
		m.derefrec(nd.low.index())
		m.derefrec(nd.high.index())
	}
}

// IterDerefBdd dereferences n without recursing into its children; meant for
// use inside a generator loop where children are visited (and dereferenced)
// independently.
func (m *Manager) IterDerefBdd(n Node) {
	idx := n.index()
	if idx < 2 {
		return
	}
	nd := &m.table.nodes[idx]
	if nd.refcount() > 0 && nd.refcount() < _MAXREFCOUNT {
		nd.refcou--
	}
}

// DelayedDerefBdd pushes n onto the manager's refstack, which protects n from
// garbage collection without changing its stored reference count. Nothing in
// the package removes that entry again, so n stays protected for the rest of
// the manager's life; no decrement of n's count ever follows.
func (m *Manager) DelayedDerefBdd(n Node) {
	m.pushref(n)
}

// Deref decrements the reference count of n by one, the single-node
// counterpart of RecursiveDeref.
func (m *Manager) Deref(n Node) {
	idx := n.index()
	if idx < 2 {
		return
	}
	nd := &m.table.nodes[idx]
	if nd.refcount() > 0 && nd.refcount() < _MAXREFCOUNT {
		nd.refcou--
	}
}

// CheckZeroRef reports the number of non-constant nodes that still carry a
// positive reference count; a correctly balanced sequence of Ref/Deref (or
// AddRef/Deref) calls should leave this at zero once every user reference
// has been released. Nodes pinned at _MAXREFCOUNT (the variables' projection
// nodes and ADD terminals) are not counted.
func (m *Manager) CheckZeroRef() int {
	count := 0
	for idx := int32(2); idx < int32(len(m.table.nodes)); idx++ {
		n := &m.table.nodes[idx]
		if n.low == NodeNil {
			if _, isAdd := m.addconsts.value[idx]; !isAdd {
				continue // free slot
			}
		}
		if n.refcount() > 0 && n.refcount() < _MAXREFCOUNT {
			count++
		}
	}
	return count
}

func (m *Manager) pushref(n Node) Node {
	m.refstack = append(m.refstack, n)
	return n
}

func (m *Manager) popref(a int) {
	m.refstack = m.refstack[:len(m.refstack)-a]
}

// gc runs a mark/sweep collection: every node reachable from a positive
// refcount or the transient refstack is kept (and, if it had been logically
// dead but still hash-consed, resurrected); everything else is freed.
func (m *Manager) gc() {
	if m.log != nil {
		m.log.Debugw("starting gc", "nodes", len(m.table.nodes), "free", m.table.freenum)
	}
	m.gcstat.history = append(m.gcstat.history, gcpoint{
		nodes:            len(m.table.nodes),
		freenodes:        int(m.table.freenum),
		setfinalizers:    int(m.gcstat.setfinalizers),
		calledfinalizers: int(m.gcstat.calledfinalizers),
	})
	m.gcstat.setfinalizers = 0
	m.gcstat.calledfinalizers = 0

	m.runHooksPreGC()

	for _, r := range m.refstack {
		m.markrec(r.index())
	}
	for k := range m.table.nodes {
		if m.table.nodes[k].refcount() > 0 {
			m.markrec(int32(k))
		}
	}
	for i := range m.table.buckets {
		m.table.buckets[i] = -1
	}
	m.table.freepos = 0
	m.table.freenum = 0
	for idx := int32(len(m.table.nodes)) - 1; idx > 1; idx-- {
		n := &m.table.nodes[idx]
		if n.marked() {
			n.unmark()
			b := m.table.bucket(tripleKey(n.level, n.low, n.high))
			n.next = m.table.buckets[b]
			m.table.buckets[b] = idx
		} else {
			n.low = NodeNil
			n.next = 0
			n.high = Node(m.table.freepos)
			m.table.freepos = idx
			m.table.freenum++
		}
	}
	m.caches.reset()
	m.runHooksPostGC()
	if m.log != nil {
		m.log.Debugw("finished gc", "free", m.table.freenum)
	}
}

func (m *Manager) markrec(idx int32) {
	if idx < 2 {
		return
	}
	n := &m.table.nodes[idx]
	if n.marked() {
		return
	}
	n.mark()
	m.markrec(n.low.index())
	m.markrec(n.high.index())
}

func (m *Manager) unmarkall() {
	for k := range m.table.nodes {
		if k < 1 {
			continue
		}
		m.table.nodes[k].unmark()
	}
}

// resizeTable grows the node table, honoring Maxnodesize and
// Maxnodeincrease, and raises a TooManyNodes error instead of growing past
// Maxnodesize.
func (m *Manager) resizeTable() error {
	old := len(m.table.nodes)
	grow := old
	if m.maxnodeincrease > 0 && grow > m.maxnodeincrease {
		grow = m.maxnodeincrease
	}
	newsize := old + grow
	if m.maxnodesize > 0 && newsize > m.maxnodesize {
		newsize = m.maxnodesize
	}
	if newsize <= old {
		m.seterror(TooManyNodes, "node table limit reached (%d nodes)", old)
		return m.err
	}
	if m.mem.overBudget(newsize) {
		if m.reorderEnabled {
			m.ReduceHeap(m.reorderMethod)
		}
		if m.mem.overBudget(newsize) {
			m.mem.reportOutOfMemory(newsize - old)
			m.seterror(MaxMemExceeded, "manager memory cap exceeded (%d bytes)", m.mem.maxBytes)
			return m.err
		}
	}
	newsize = primeGte(newsize)
	grown := make([]node, newsize)
	copy(grown, m.table.nodes)
	for i := old; i < newsize; i++ {
		grown[i] = node{low: NodeNil, high: Node(i + 1), next: -1}
	}
	// resizeTable only runs when the free list was already exhausted, so the
	// new block becomes the entire free list; the last slot terminates it.
	grown[newsize-1].high = 0
	m.table.nodes = grown
	m.table.freepos = int32(old)
	m.table.freenum = int32(newsize - old)
	m.table.buckets = make([]int32, newsize)
	for i := range m.table.buckets {
		m.table.buckets[i] = -1
	}
	m.rehashAll()
	m.caches.resize(newsize)
	m.mem.onPageGrown()
	if m.log != nil {
		m.log.Debugw("resized node table", "from", old, "to", newsize)
	}
	return nil
}

// rehashAll rebuilds every bucket chain after a resize changed the bucket
// count. Free slots (low == NodeNil) are skipped.
func (m *Manager) rehashAll() {
	for i := range m.table.buckets {
		m.table.buckets[i] = -1
	}
	for idx := int32(2); idx < int32(len(m.table.nodes)); idx++ {
		n := &m.table.nodes[idx]
		if n.low == NodeNil {
			continue
		}
		b := m.table.bucket(tripleKey(n.level, n.low, n.high))
		n.next = m.table.buckets[b]
		m.table.buckets[b] = idx
	}
}
