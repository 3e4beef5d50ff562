// Copyright (c) 2024 The vellumdd Authors
//
// MIT License

package dd

// windowReorder tries every permutation of each window of `size` adjacent
// levels, sliding the window across the whole order, and keeps whichever
// permutation minimizes the live node count at each position. When
// converge is true the whole sweep repeats until a pass makes no change.
func (m *Manager) windowReorder(size int, converge bool) {
	for {
		changed := false
		for base := 0; base+size <= int(m.numVars); base++ {
			if m.windowAt(base, size) {
				changed = true
			}
		}
		if !converge || !changed {
			return
		}
	}
}

// windowAt tries every permutation of the `size` levels starting at base and
// leaves the window in whichever order had the smallest live node count,
// returning whether that differs from the order it started in.
func (m *Manager) windowAt(base, size int) bool {
	original := make([]int, size)
	for i := range original {
		original[i] = m.ReadInvPerm(base + i)
	}

	bestSize := m.ReadNodeCount()
	bestPerm := append([]int(nil), original...)

	perms := permutations(size)
	cur := append([]int(nil), original...)
	for _, p := range perms {
		target := make([]int, size)
		for i, srcPos := range p {
			target[i] = original[srcPos]
		}
		m.applyWindowOrder(base, cur, target)
		cur = target
		if s := m.ReadNodeCount(); s < bestSize {
			bestSize = s
			bestPerm = append([]int(nil), target...)
		}
	}
	m.applyWindowOrder(base, cur, bestPerm)
	for i := range bestPerm {
		if bestPerm[i] != original[i] {
			return true
		}
	}
	return false
}

// applyWindowOrder rearranges the `size` levels starting at base from the
// variable order `from` into the variable order `to` via adjacent swaps.
func (m *Manager) applyWindowOrder(base int, from, to []int) {
	cur := append([]int(nil), from...)
	for i, v := range to {
		j := i
		for cur[j] != v {
			j++
		}
		for j > i {
			m.swapAdjacent(int32(base + j - 1))
			cur[j], cur[j-1] = cur[j-1], cur[j]
			j--
		}
	}
}

// permutations returns the indices of every permutation of n elements.
func permutations(n int) [][]int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	var out [][]int
	var rec func(k int)
	rec = func(k int) {
		if k == n {
			out = append(out, append([]int(nil), idx...))
			return
		}
		for i := k; i < n; i++ {
			idx[k], idx[i] = idx[i], idx[k]
			rec(k + 1)
			idx[k], idx[i] = idx[i], idx[k]
		}
	}
	rec(0)
	return out
}
