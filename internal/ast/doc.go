// Package ast holds the tree representation of model equations.
//
// Nodes live in an arena (Tree) and refer to each other by NodeID. A node is
// one of six shapes (CiNode, CnNode, ConstantNode, UnaryNode, BinaryNode,
// PiecewiseNode) and only carries the fields its shape needs. Sharing a
// subtree between two parents is done by repeating its index: the first
// parent to receive a node owns it, later references are aliases. Parent
// links always point at the owner.
//
// Qualified forms are ordinary binary nodes:
//
//	root(x, n)    Binary(Root, Unary(Degree, n), x)
//	log(x, b)     Binary(Log, Unary(Logbase, b), x)
//	d(x)/d(t)     Binary(Diff, Unary(Bvar, t), x)
//	x if c        Binary(Piece, x, c)
package ast
