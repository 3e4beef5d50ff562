// Copyright (c) 2024 The vellumdd Authors
//
// MIT License

package dd

// tuning bundles every runtime-adjustable knob from the Read/Set pairs of
// §6 that isn't already covered by a construction-time Option (config.go)
// or by the allocator's memory cap (allocator.go). Unlike configs, these
// can be changed at any point in a manager's lifetime, matching CUDD's
// Cudd_Set*/Cudd_Read* split between Init-time parameters and live tuning.
type tuning struct {
	minHit             int     // cache hit-ratio percentage; stored only, caches do not read it
	looseUpTo          int     // node-table size for cache growth; stored only, caches do not read it
	maxCache           int     // soft cap on cache slots; stored only, caches do not read it
	maxCacheHard       int     // hard cap on cache slots; stored only, caches do not read it
	siftMaxVar         int     // sift variable limit; stored only, sifting does not read it
	siftMaxSwap        int     // sift swap limit; stored only, sifting does not read it
	maxGrowth          float64 // sift growth ratio; stored only, siftVariable does not read it
	maxGrowthAlternate float64 // alternate growth ratio; stored only, sifting does not read it
	reorderingCycle    int     // if > 0, forces a reordering pass every this-many ReduceHeap calls regardless of nextDyn
	nextReordering     int     // node count threshold that triggers the next automatic reorder
	maxReorderings     int     // ceiling on the number of reorderings ever performed, 0 = unlimited
	epsilon            float64 // ADD tolerance; stored only, EqualSupNorm takes its own tolerance argument
	groupcheck         bool    // whether symmetric sifting checks group-aware symmetry
	maxLive            int     // live node cap; stored only, no allocation path reads it
}

func newTuning() tuning {
	return tuning{
		minHit:             30,
		looseUpTo:          0,
		maxCache:           0,
		maxCacheHard:       0,
		siftMaxVar:         0,
		siftMaxSwap:        0,
		maxGrowth:          1.2,
		maxGrowthAlternate: 1.2,
		reorderingCycle:    0,
		nextReordering:     0,
		maxReorderings:     0,
		epsilon:            1e-9,
		groupcheck:         true,
		maxLive:            0,
	}
}

// ReadMinHit returns the stored cache hit-ratio percentage. The value is
// only stored; the operation caches never consult it.
func (m *Manager) ReadMinHit() int { return m.tune.minHit }

// SetMinHit changes the threshold ReadMinHit reports.
func (m *Manager) SetMinHit(percent int) { m.tune.minHit = percent }

// ReadLooseUpTo returns the stored node-table size for cache growth. The
// value is only stored; the operation caches never consult it.
func (m *Manager) ReadLooseUpTo() int { return m.tune.looseUpTo }

// SetLooseUpTo changes the threshold ReadLooseUpTo reports.
func (m *Manager) SetLooseUpTo(size int) { m.tune.looseUpTo = size }

// ReadMaxCache returns the stored soft cap on operation-cache slots. The
// value is only stored; cache sizes are not limited by it.
func (m *Manager) ReadMaxCache() int { return m.tune.maxCache }

// SetMaxCache changes the soft cap ReadMaxCache reports.
func (m *Manager) SetMaxCache(slots int) { m.tune.maxCache = slots }

// ReadMaxCacheHard returns the stored hard cap on operation-cache slots.
// The value is only stored; cache sizes are not limited by it.
func (m *Manager) ReadMaxCacheHard() int { return m.tune.maxCacheHard }

// SetMaxCacheHard changes the hard cap ReadMaxCacheHard reports.
func (m *Manager) SetMaxCacheHard(slots int) { m.tune.maxCacheHard = slots }

// ReadSiftMaxVar returns the stored sift variable limit. The value is only
// stored; sifting always visits every variable.
func (m *Manager) ReadSiftMaxVar() int { return m.tune.siftMaxVar }

// SetSiftMaxVar changes the limit ReadSiftMaxVar reports.
func (m *Manager) SetSiftMaxVar(n int) { m.tune.siftMaxVar = n }

// ReadSiftMaxSwap returns the stored sift swap limit. The value is only
// stored; sifting does not count or limit its swaps.
func (m *Manager) ReadSiftMaxSwap() int { return m.tune.siftMaxSwap }

// SetSiftMaxSwap changes the limit ReadSiftMaxSwap reports.
func (m *Manager) SetSiftMaxSwap(n int) { m.tune.siftMaxSwap = n }

// ReadMaxGrowth returns the stored sift growth ratio. The value is only
// stored; siftVariable always moves a variable through every level.
func (m *Manager) ReadMaxGrowth() float64 { return m.tune.maxGrowth }

// SetMaxGrowth changes the ratio ReadMaxGrowth reports.
func (m *Manager) SetMaxGrowth(ratio float64) { m.tune.maxGrowth = ratio }

// ReadMaxGrowthAlternate returns the stored alternate growth ratio. The
// value is only stored; no ReduceHeap call applies it.
func (m *Manager) ReadMaxGrowthAlternate() float64 { return m.tune.maxGrowthAlternate }

// SetMaxGrowthAlternate changes the ratio ReadMaxGrowthAlternate reports.
func (m *Manager) SetMaxGrowthAlternate(ratio float64) { m.tune.maxGrowthAlternate = ratio }

// ReadReorderingCycle returns the forced reordering period, in ReduceHeap
// calls; 0 means reordering is only triggered by NextReordering.
func (m *Manager) ReadReorderingCycle() int { return m.tune.reorderingCycle }

// SetReorderingCycle changes the period ReadReorderingCycle reports.
func (m *Manager) SetReorderingCycle(n int) { m.tune.reorderingCycle = n }

// ReadNextReordering returns the live node count that triggers the manager's
// next automatic reordering pass.
func (m *Manager) ReadNextReordering() int { return m.tune.nextReordering }

// SetNextReordering changes the threshold ReadNextReordering reports.
func (m *Manager) SetNextReordering(n int) { m.tune.nextReordering = n }

// ReadMaxReorderings returns the ceiling on the total number of
// reorderings the manager will ever perform; 0 means unbounded.
func (m *Manager) ReadMaxReorderings() int { return m.tune.maxReorderings }

// SetMaxReorderings changes the ceiling ReadMaxReorderings reports.
func (m *Manager) SetMaxReorderings(n int) { m.tune.maxReorderings = n }

// ReadEpsilon returns the stored ADD numeric tolerance. The value is only
// stored; EqualSupNorm uses the tolerance passed to it instead.
func (m *Manager) ReadEpsilon() float64 { return m.tune.epsilon }

// SetEpsilon changes the tolerance ReadEpsilon reports.
func (m *Manager) SetEpsilon(e float64) { m.tune.epsilon = e }

// ReadGroupcheck reports whether symmetric sifting performs its group-aware
// symmetry check.
func (m *Manager) ReadGroupcheck() bool { return m.tune.groupcheck }

// SetGroupcheck toggles the check ReadGroupcheck reports.
func (m *Manager) SetGroupcheck(on bool) { m.tune.groupcheck = on }

// ReadMaxLive returns the stored cap on live node count. The value is only
// stored; the node count is not limited by it.
func (m *Manager) ReadMaxLive() int { return m.tune.maxLive }

// SetMaxLive changes the cap ReadMaxLive reports.
func (m *Manager) SetMaxLive(n int) { m.tune.maxLive = n }

// maybeAutoReorder triggers a reordering pass when automatic reordering is
// enabled and either the live node count has crossed ReadNextReordering or
// ReadReorderingCycle's forced period has elapsed, then raises
// ReadNextReordering per §4.4's trigger rule: nextDyn = max(2*live, min).
func (m *Manager) maybeAutoReorder() {
	if !m.reorderEnabled {
		return
	}
	if m.tune.maxReorderings > 0 && int(m.stats.reorderings) >= m.tune.maxReorderings {
		return
	}
	live := m.ReadNodeCount()
	due := m.tune.nextReordering > 0 && live > m.tune.nextReordering
	cyclic := m.tune.reorderingCycle > 0 && int(m.stats.reorderings) > 0 &&
		int(m.stats.reorderings)%m.tune.reorderingCycle == 0
	if !due && !cyclic {
		return
	}
	m.ReduceHeap(m.reorderMethod)
	next := 2 * live
	if next < m.tune.nextReordering {
		next = m.tune.nextReordering
	}
	m.tune.nextReordering = next
}
