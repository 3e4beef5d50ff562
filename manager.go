// Copyright (c) 2024 The vellumdd Authors
//
// MIT License

package dd

import (
	"runtime"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Manager owns a fixed universe of variables and every node built from them.
// It is the equivalent of a BuDDy/CUDD "manager": all nodes, reference
// counts, caches, hooks, and reorder state live here, and every Node value
// returned by its methods is only meaningful relative to the Manager that
// produced it.
//
// A Manager is not safe for concurrent use from multiple goroutines; callers
// that need concurrent access must serialize it themselves, the same
// restriction the library this is adapted from documents for its BDD type.
type Manager struct {
	configs

	numVars  int32        // number of declared variables
	perm     []int32      // perm[level] = variable index currently at that level
	invperm  []int32      // invperm[variable] = level currently holding that variable
	varnodes [][2]Node    // varnodes[variable] = {low edge for Ithvar, high edge for Ithvar}

	table   unique  // the node table and its per-level hash-consing structure
	caches  opcache // the operation caches

	refstack []Node // transient roots protected from GC mid-computation

	gcstat gcstat

	hooks hookTable

	stats managerStats

	groups []varGroup // variable groups that must move together during reordering

	term *terminationState

	err *managerError
	log *zap.SugaredLogger

	deadline time.Time

	addconsts  addTerminals // ADD numeric terminal table
	background Node         // sparse-matrix background value, lazily defaulted

	mem allocator // page growth bookkeeping and the OOM callback

	timeoutHandler func()

	tune tuning // live-adjustable Read/Set knobs from §6
}

// Init creates a new Manager with the given number of variables. Options
// configure table/cache sizing, memory and timeout limits, and automatic
// reordering; see Nodesize, Cachesize, Maxnodesize, Maxmemory, Timeout, and
// AutodynEnable.
func Init(varnum int, opts ...Option) (*Manager, error) {
	if varnum < 1 || int32(varnum) > _MAXVAR {
		return nil, errors.Errorf("bad number of variables (%d)", varnum)
	}
	c := makeconfigs(varnum)
	for _, o := range opts {
		o(c)
	}
	m := &Manager{configs: *c, log: newDefaultLogger()}
	m.refstack = make([]Node, 0, 2*varnum+4)
	m.table.init(c.nodesize)
	m.caches.init(c)
	m.hooks.init()
	m.term = newTerminationState()
	m.addconsts.init()
	m.mem.init(c.maxmemory)
	m.tune = newTuning()
	if c.timeout > 0 {
		m.deadline = time.Now().Add(c.timeout)
	}
	if err := m.SetVarnum(varnum); err != nil {
		return nil, err
	}
	return m, nil
}

// Quit releases the manager's resources. It is not required for correctness
// (the Go garbage collector reclaims a Manager like any other value) but
// makes the point at which a manager stops being used explicit, the same way
// CUDD requires a matching Cudd_Quit for every Cudd_Init.
func (m *Manager) Quit() {
	m.table.nodes = nil
	m.caches = opcache{}
	runtime.GC()
}

// Varnum returns the number of declared variables.
func (m *Manager) Varnum() int { return int(m.numVars) }
