// Copyright (c) 2024 The vellumdd Authors
//
// MIT License

package dd

import "github.com/pkg/errors"

// number of bytes used to build the hash key of a (level, low, high) triple
// fed to xxhash; adapted from huddsize in the map-based unique table this
// package is grounded on.
const tripleKeySize = 12

// _MINFREENODES is the minimal percentage of free nodes that has to be left
// after a garbage collection, below which we trigger a resize.
const _MINFREENODES int = 20

// _MAXVAR is the maximal number of levels in a manager. We reserve the low bit
// of every Node for the complement tag, so indices only need 31 bits; we stay
// well under that to leave room for mark bits during GC and reordering.
const _MAXVAR int32 = 0x1FFFFF

// _MAXREFCOUNT is the maximal value of the saturating reference counter, also
// used to pin nodes (constants, variables) permanently in the table.
const _MAXREFCOUNT int32 = 0x3FF

// _DEFAULTMAXNODEINC is the default cap on the number of nodes added to the
// table in a single resize (approximately one million nodes).
const _DEFAULTMAXNODEINC int = 1 << 20

var errMemory = errors.New("unable to free memory or resize manager")
var errResize = errors.New("operation cache should be resized")
var errReset = errors.New("operation cache should be reset")
