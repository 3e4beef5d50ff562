// Copyright (c) 2024 The vellumdd Authors
//
// MIT License

/*
Package dd implements a decision diagram engine: a canonical, hash-consed DAG
representation of Boolean and pseudo-Boolean functions over a fixed, ordered
set of variables, together with the recursive apply/ite machinery, an
operation cache, reference-counted garbage collection, and dynamic variable
reordering needed to keep that representation compact under load.

Basics

A Manager owns a fixed set of variables, declared with Init (or grown later
with SetVarnum/ExtVarnum), and a pool of nodes that represent every Boolean
function built from them. A Node is a 32-bit tagged edge: its low bit marks
whether the edge is complemented, and the remaining bits index into the
manager's node table. Two functionally equivalent sub-diagrams always share
the same node, so pointer equality between two Nodes decides logical
equivalence (modulo the complement tag) without ever walking the diagram.

Complement edges

Unlike a plain reduced BDD, every non-terminal here is a tagged pointer rather
than a plain array index: Not(n) flips the tag instead of allocating a node,
and only a single Boolean terminal (the constant true) is ever stored in the
table.
This roughly halves node-table pressure for formulas that mix a function and
its negation, at the cost of needing the tag stripped before every table
lookup (see Regular).

Use of build tags

Compiling with the build tag `debug` makes the default logger zap's
development logger, which also emits debug-level messages, instead of its
production logger; it has no other effect.

Automatic memory management

The library is written in pure Go. The manager tracks reference counts for
nodes that are externally reachable and reclaims the rest during garbage
collection; a runtime finalizer attached to AddRef's return value lets normal
Go garbage collection release the reference for call sites that would
otherwise forget to call Deref explicitly.
*/
package dd
