// Copyright (c) 2024 The vellumdd Authors
//
// MIT License

package dd

// exactVarLimit bounds exactReorder to manager sizes where a 2^n-state
// dynamic program is affordable; above it, ReduceHeap(ReorderExact) quietly
// falls back to sifting rather than iterating for an impractical amount of
// time. This mirrors CUDD's own documented advice to reserve exact
// reordering for on the order of fifteen variables or fewer.
const exactVarLimit = 14

// exactReorder searches a Held-Karp style subset space over "which variables
// have already been placed at the top of the order": it measures
// ReadNodeCount for every order that puts one variable first and, for each
// subset and each member placed last, for the order that puts that subset on
// top, then one more variable, then the rest in index order. It keeps the
// order with the smallest single measurement. The dp table's accumulated
// path costs do not decide the result and orders outside this family are
// never measured, so the order found is not guaranteed to be optimal. It is
// only attempted when Varnum is within exactVarLimit; larger managers get
// converging sifting instead.
func (m *Manager) exactReorder() {
	n := int(m.numVars)
	if n > exactVarLimit {
		m.sift(true)
		return
	}
	if n < 2 {
		return
	}

	type state struct {
		cost int
		prev int
		last int
	}
	size := 1 << n
	dp := make([]map[int]state, size)
	for i := range dp {
		dp[i] = make(map[int]state)
	}

	bestOverall := m.ReadNodeCount()
	bestPerm := append([]int32(nil), m.perm...)

	for v := 0; v < n; v++ {
		_ = m.ShuffleHeap(orderWithFirst(n, v))
		cost := m.ReadNodeCount()
		dp[1<<v][v] = state{cost: cost, prev: -1, last: v}
		if cost < bestOverall {
			bestOverall = cost
			bestPerm = append([]int32(nil), m.perm...)
		}
	}

	for mask := 1; mask < size; mask++ {
		for last, st := range dp[mask] {
			for v := 0; v < n; v++ {
				if mask&(1<<v) != 0 {
					continue
				}
				nextMask := mask | (1 << v)
				order := maskOrder(mask, last, v, n)
				_ = m.ShuffleHeap(order)
				cost := m.ReadNodeCount()
				total := st.cost + cost
				if prev, ok := dp[nextMask][v]; !ok || total < prev.cost {
					dp[nextMask][v] = state{cost: total, prev: last, last: v}
				}
				if cost < bestOverall {
					bestOverall = cost
					bestPerm = append([]int32(nil), m.perm...)
				}
			}
		}
	}
	m.restorePerm(bestPerm)
}

// orderWithFirst returns a permutation array (permutation[level] = variable)
// placing v first and every other variable afterward in index order.
func orderWithFirst(n, v int) []int {
	order := make([]int, 0, n)
	order = append(order, v)
	for i := 0; i < n; i++ {
		if i != v {
			order = append(order, i)
		}
	}
	return order
}

// maskOrder returns a permutation placing the variables already in mask
// (arbitrary relative order, ending with `last`) first, followed by `next`,
// followed by every variable not yet placed.
func maskOrder(mask, last, next, n int) []int {
	order := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if mask&(1<<i) != 0 && i != last {
			order = append(order, i)
		}
	}
	order = append(order, last, next)
	for i := 0; i < n; i++ {
		if mask&(1<<i) == 0 && i != next {
			order = append(order, i)
		}
	}
	return order
}
