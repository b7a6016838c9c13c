// Package graph provides a generic directed graph over ordered node
// identifiers and the algorithms the equation orderer needs: cycle detection,
// strongly connected components and a deterministic topological sort.
//
// # Edges
//
// An edge from -> to means `to` depends on `from`: `from` must come first.
// Self-loops are allowed and recorded, since a single equation reading the
// variable it defines is a cycle of size one.
//
// # Determinism
//
// Every query returns identifiers in ascending order and every traversal
// visits nodes in ascending order. Given the same nodes and edges, results are
// identical across runs regardless of insertion order. Callers that want
// declaration order simply use declaration indices as identifiers.
//
// The graph holds no domain knowledge: the analyser decides what nodes and
// edges mean, this package only answers structural questions.
package graph
