// Copyright (c) 2024 The vellumdd Authors
//
// MIT License

package dd

import "math/rand"

// geneticReorder searches for a good variable order with a small genetic
// algorithm, modeled after CUDD's GA reordering: a population of random
// permutations is scored by the live node count it produces, bred with
// order-preserving crossover, and perturbed with occasional swap mutations,
// for a fixed number of generations.
func (m *Manager) geneticReorder() {
	n := int(m.numVars)
	if n < 2 {
		return
	}
	rng := rand.New(rand.NewSource(1))
	const popSize = 8
	const generations = 15

	population := make([][]int, popSize)
	population[0] = append([]int(nil), intSlice(n)...)
	for i := 1; i < popSize; i++ {
		population[i] = shuffled(n, rng)
	}

	bestPerm := m.scorePermutation(population[0])
	bestSize := m.applyAndMeasure(population[0])

	scores := make([]int, popSize)
	for i, p := range population {
		scores[i] = m.applyAndMeasure(p)
		if scores[i] < bestSize {
			bestSize = scores[i]
			bestPerm = append([]int(nil), p...)
		}
	}

	for gen := 0; gen < generations; gen++ {
		next := make([][]int, 0, popSize)
		next = append(next, append([]int(nil), bestPerm...))
		for len(next) < popSize {
			a := tournament(population, scores, rng)
			b := tournament(population, scores, rng)
			child := orderCrossover(a, b, rng)
			if rng.Float64() < 0.2 {
				mutate(child, rng)
			}
			next = append(next, child)
		}
		population = next
		for i, p := range population {
			scores[i] = m.applyAndMeasure(p)
			if scores[i] < bestSize {
				bestSize = scores[i]
				bestPerm = append([]int(nil), p...)
			}
		}
	}
	m.applyAndMeasure(bestPerm)
}

// applyAndMeasure shuffles the manager into permutation order and returns
// the resulting live node count.
func (m *Manager) applyAndMeasure(permutation []int) int {
	_ = m.ShuffleHeap(permutation)
	return m.ReadNodeCount()
}

// scorePermutation is a defensive copy helper used to seed the running best.
func (m *Manager) scorePermutation(p []int) []int { return append([]int(nil), p...) }

func intSlice(n int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = i
	}
	return s
}

func shuffled(n int, rng *rand.Rand) []int {
	s := intSlice(n)
	rng.Shuffle(n, func(i, j int) { s[i], s[j] = s[j], s[i] })
	return s
}

func tournament(population [][]int, scores []int, rng *rand.Rand) []int {
	a := rng.Intn(len(population))
	b := rng.Intn(len(population))
	if scores[a] <= scores[b] {
		return population[a]
	}
	return population[b]
}

// orderCrossover implements order-1 crossover: a contiguous slice of parent
// a is kept verbatim, and the remaining positions are filled from parent b
// in b's order, skipping anything already present.
func orderCrossover(a, b []int, rng *rand.Rand) []int {
	n := len(a)
	start := rng.Intn(n)
	end := start + rng.Intn(n-start)
	child := make([]int, n)
	taken := make([]bool, n)
	for i := start; i <= end; i++ {
		child[i] = a[i]
		taken[a[i]] = true
	}
	pos := (end + 1) % n
	for _, v := range b {
		if taken[v] {
			continue
		}
		child[pos] = v
		taken[v] = true
		pos = (pos + 1) % n
	}
	return child
}

func mutate(p []int, rng *rand.Rand) {
	i := rng.Intn(len(p))
	j := rng.Intn(len(p))
	p[i], p[j] = p[j], p[i]
}
