// Copyright (c) 2024 The vellumdd Authors
//
// MIT License

package dd

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// entry is one slot of a direct-mapped operation cache: up to three operand
// words plus a tag (operator, quantification id, or replacer id depending on
// which cache owns the slot) and the cached result. A lossy cache overwrites
// whichever entry currently occupies the hashed slot; there is no chaining
// and no explicit eviction policy beyond "the newest collision wins", the
// same trade this package's direct-mapped cache is grounded on makes in
// exchange for O(1), allocation-free probes.
type entry struct {
	a, b, c int32
	res     Node
	valid   bool
}

func cacheKey(a, b, c int32, size int) uint64 {
	var buf [12]byte
	binary.LittleEndian.PutUint32(buf[0:4], uint32(a))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(b))
	binary.LittleEndian.PutUint32(buf[8:12], uint32(c))
	return xxhash.Sum64(buf[:]) % uint64(size)
}

// table is a single direct-mapped, lossy cache keyed on up to three int32
// words.
type table struct {
	name   string
	ratio  int
	hits   int64
	misses int64
	slots  []entry
}

func (t *table) init(name string, size, ratio int) {
	t.name = name
	t.ratio = ratio
	t.slots = make([]entry, primeGte(size))
}

func (t *table) resize(nodesize int) {
	if t.ratio <= 0 {
		return
	}
	size := primeGte((nodesize * t.ratio) / 100)
	t.slots = make([]entry, size)
}

func (t *table) reset() {
	for i := range t.slots {
		t.slots[i].valid = false
	}
}

func (t *table) get(a, b, c int32) (Node, bool) {
	k := cacheKey(a, b, c, len(t.slots))
	e := &t.slots[k]
	if e.valid && e.a == a && e.b == b && e.c == c {
		t.hits++
		return e.res, true
	}
	t.misses++
	return NodeNil, false
}

func (t *table) put(a, b, c int32, res Node) Node {
	k := cacheKey(a, b, c, len(t.slots))
	t.slots[k] = entry{a: a, b: b, c: c, res: res, valid: true}
	return res
}

func (t *table) hitRatio() float64 {
	total := t.hits + t.misses
	if total == 0 {
		return 0
	}
	return float64(t.hits) * 100 / float64(total)
}

func (t *table) String() string {
	return fmt.Sprintf("%-10s %8d slots, hits %d (%.1f%%), misses %d", t.name, len(t.slots), t.hits, t.hitRatio(), t.misses)
}

// opcache bundles every operation cache a Manager keeps: one per recursive
// algorithm family, the same split this package's cache.go is grounded on
// (apply/ite/quant/appex/replace), each addressed with its own tag so they
// never alias each other's entries.
type opcache struct {
	apply   table // keyed on (left, right, operator)
	ite     table // keyed on (f, g, h)
	quant   table // keyed on (n, varset, quantid)
	appex   table // keyed on (left, right, varset<<2|op)
	replace table // keyed on (n, replacerID, 0)
	cofactor table // keyed on (n, var, polarity)

	quantset   []int32
	quantsetID int32
	quantlast  int32
}

func (c *opcache) init(cfg *configs) {
	size := 10000
	if cfg.cachesize != 0 {
		size = cfg.cachesize
	}
	c.apply.init("apply", size, cfg.cacheratio)
	c.ite.init("ite", size, cfg.cacheratio)
	c.quant.init("quant", size, cfg.cacheratio)
	c.appex.init("appex", size, cfg.cacheratio)
	c.replace.init("replace", size, cfg.cacheratio)
	c.cofactor.init("cofactor", size, cfg.cacheratio)
	c.quantset = make([]int32, cfg.varnum)
}

func (c *opcache) reset() {
	c.apply.reset()
	c.ite.reset()
	c.quant.reset()
	c.appex.reset()
	c.replace.reset()
	c.cofactor.reset()
}

func (c *opcache) resize(nodesize int) {
	c.apply.resize(nodesize)
	c.ite.resize(nodesize)
	c.quant.resize(nodesize)
	c.appex.resize(nodesize)
	c.replace.resize(nodesize)
	c.cofactor.resize(nodesize)
}

func (c *opcache) onVarnumChanged(varnum int) {
	if varnum > len(c.quantset) {
		grown := make([]int32, varnum)
		copy(grown, c.quantset)
		c.quantset = grown
	}
}

func (c *opcache) allTables() []*table {
	return []*table{&c.apply, &c.ite, &c.quant, &c.appex, &c.replace, &c.cofactor}
}

// quantset2cache marks every variable in the cube rooted at n (built with
// Makeset) as quantified under a fresh id, so quant/appex cache lookups can
// tell two different quantification sets apart without hashing the whole
// cube.
func (m *Manager) quantset2cache(n Node) error {
	if n.index() < 2 {
		m.seterror(InvalidArg, "illegal variable set in quantification")
		return m.err
	}
	c := &m.caches
	c.quantsetID++
	if c.quantsetID == 1<<30 {
		c.quantset = make([]int32, m.numVars)
		c.quantsetID = 1
	}
	for cur := n; cur.index() > 1; cur = m.high(cur) {
		c.quantset[m.level(cur)] = c.quantsetID
		c.quantlast = m.level(cur)
	}
	return nil
}

func (m *Manager) quantified(level int32) bool {
	return m.caches.quantset[level] == m.caches.quantsetID
}
