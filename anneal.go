// Copyright (c) 2024 The vellumdd Authors
//
// MIT License

package dd

import (
	"math"
	"math/rand"
)

// annealingReorder searches for a good variable order with simulated
// annealing: repeatedly proposing a random adjacent swap, always accepting
// improvements, and accepting regressions with probability
// exp(-delta/temperature), cooling the temperature after each round.
func (m *Manager) annealingReorder() {
	if m.numVars < 2 {
		return
	}
	rng := rand.New(rand.NewSource(1))
	const rounds = 20
	temperature := float64(m.ReadNodeCount())
	const coolingRate = 0.85

	bestPerm := append([]int32(nil), m.perm...)
	bestSize := m.ReadNodeCount()

	for round := 0; round < rounds; round++ {
		for step := 0; step < int(m.numVars)*2; step++ {
			lvl := rng.Intn(int(m.numVars) - 1)
			before := m.ReadNodeCount()
			m.swapAdjacent(int32(lvl))
			after := m.ReadNodeCount()
			delta := float64(after - before)
			if delta > 0 && rng.Float64() >= math.Exp(-delta/temperature) {
				m.swapAdjacent(int32(lvl))
				continue
			}
			if size := m.ReadNodeCount(); size < bestSize {
				bestSize = size
				bestPerm = append([]int32(nil), m.perm...)
			}
		}
		temperature *= coolingRate
		if temperature < 1 {
			break
		}
	}
	m.restorePerm(bestPerm)
}

// restorePerm drives the manager's current variable order to match target
// via adjacent swaps.
func (m *Manager) restorePerm(target []int32) {
	want := make([]int, len(target))
	for lvl, v := range target {
		want[lvl] = int(v)
	}
	_ = m.ShuffleHeap(want)
}
