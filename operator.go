// Copyright (c) 2024 The vellumdd Authors
//
// MIT License

package dd

// Operator enumerates the binary Boolean operators Apply and AppEx accept.
// Only And, Xor, Or, and Nand are valid as the op argument to AndAbstract and
// XorExistAbstract, matching CUDD's restriction on Cudd_bddAndAbstract-style
// combinators.
type Operator int32

const (
	OPand Operator = iota
	OPxor
	OPor
	OPnand
	OPnor
	OPimp
	OPbiimp
	OPdiff
	OPless
	OPinvimp
	opnot // unary; never a valid Apply argument
)

var opnames = [...]string{
	OPand: "and", OPxor: "xor", OPor: "or", OPnand: "nand", OPnor: "nor",
	OPimp: "imp", OPbiimp: "biimp", OPdiff: "diff", OPless: "less",
	OPinvimp: "invimp", opnot: "not",
}

func (op Operator) String() string { return opnames[op] }

// opres[op][a][b] is the truth table for op applied to terminal operands a, b.
var opres = [...][2][2]int{
	OPand:    {0: [2]int{0: 0, 1: 0}, 1: [2]int{0: 0, 1: 1}},
	OPxor:    {0: [2]int{0: 0, 1: 1}, 1: [2]int{0: 1, 1: 0}},
	OPor:     {0: [2]int{0: 0, 1: 1}, 1: [2]int{0: 1, 1: 1}},
	OPnand:   {0: [2]int{0: 1, 1: 1}, 1: [2]int{0: 1, 1: 0}},
	OPnor:    {0: [2]int{0: 1, 1: 0}, 1: [2]int{0: 0, 1: 0}},
	OPimp:    {0: [2]int{0: 1, 1: 1}, 1: [2]int{0: 0, 1: 1}},
	OPbiimp:  {0: [2]int{0: 1, 1: 0}, 1: [2]int{0: 0, 1: 1}},
	OPdiff:   {0: [2]int{0: 0, 1: 0}, 1: [2]int{0: 1, 1: 0}},
	OPless:   {0: [2]int{0: 0, 1: 1}, 1: [2]int{0: 0, 1: 0}},
	OPinvimp: {0: [2]int{0: 1, 1: 0}, 1: [2]int{0: 1, 1: 1}},
}
