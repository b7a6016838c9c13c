package ast

// Variable is the part of a model variable an equation tree refers to. The
// tree never owns the variable.
type Variable interface {
	Name() string
	Units() string
}

// NodeID indexes a node inside its Tree.
type NodeID int

// NoNode marks an absent child, parent or root.
const NoNode NodeID = -1

// Node is one of the node shapes below. A node only carries the fields its
// shape needs.
type Node interface {
	Kind() Kind
	node()
}

// CiNode references a model variable.
type CiNode struct {
	Variable Variable
}

// CnNode is a numeric literal. Literal is the source text, unmodified.
type CnNode struct {
	Literal string
	Units   string
}

// ConstantNode is one of the named constants (true, false, e, pi, inf, nan).
type ConstantNode struct {
	Of Kind
}

// UnaryNode covers operators, functions and qualifiers with one operand.
type UnaryNode struct {
	Of      Kind
	Operand NodeID
}

// BinaryNode covers operators with two operands, including assignments,
// pieces and the qualified forms of root, log and diff.
type BinaryNode struct {
	Of    Kind
	Left  NodeID
	Right NodeID
}

// PiecewiseNode is an ordered chain of Piece nodes with an optional
// Otherwise node.
type PiecewiseNode struct {
	Pieces    []NodeID
	Otherwise NodeID
}

func (CiNode) Kind() Kind { return Ci }
func (CnNode) Kind() Kind { return Cn }
func (n ConstantNode) Kind() Kind { return n.Of }
func (n UnaryNode) Kind() Kind { return n.Of }
func (n BinaryNode) Kind() Kind { return n.Of }
func (PiecewiseNode) Kind() Kind { return Piecewise }

func (CiNode) node() {}
func (CnNode) node() {}
func (ConstantNode) node() {}
func (UnaryNode) node() {}
func (BinaryNode) node() {}
func (PiecewiseNode) node() {}
