package ast

import "fmt"

// Tree is an arena holding the nodes of one equation, or of a forest of
// equations that share subtrees. A child index is either owned (the child's
// parent is the node holding it) or an alias (the child's parent is some
// other node); both resolve through the same arena.
type Tree struct {
	nodes   []Node
	parents []NodeID
	root    NodeID
}

// NewTree returns an empty tree without a root.
func NewTree() *Tree {
	return &Tree{root: NoNode}
}

// Len returns the number of nodes in the arena.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Root returns the node set with SetRoot. Without one, it is the most
// recently added node that has no owner, or NoNode for an empty tree.
func (t *Tree) Root() NodeID {
	if t.root != NoNode {
		return t.root
	}
	for i := len(t.nodes) - 1; i >= 0; i-- {
		if t.parents[i] == NoNode {
			return NodeID(i)
		}
	}
	return NoNode
}

// SetRoot changes the root node.
func (t *Tree) SetRoot(id NodeID) {
	if id != NoNode {
		t.check(id)
	}
	t.root = id
}

// Node returns the node stored at id.
func (t *Tree) Node(id NodeID) Node {
	t.check(id)
	return t.nodes[id]
}

// Kind returns the kind of the node at id.
func (t *Tree) Kind(id NodeID) Kind {
	return t.Node(id).Kind()
}

func (t *Tree) add(n Node) NodeID {
	t.nodes = append(t.nodes, n)
	t.parents = append(t.parents, NoNode)
	return NodeID(len(t.nodes) - 1)
}

func (t *Tree) check(id NodeID) {
	if id < 0 || int(id) >= len(t.nodes) {
		panic(fmt.Sprintf("ast: node %d out of range [0,%d)", id, len(t.nodes)))
	}
}

// adopt makes parent the owner of child unless child already has one.
func (t *Tree) adopt(parent, child NodeID) {
	if child == NoNode {
		return
	}
	t.check(child)
	if t.parents[child] == NoNode {
		t.parents[child] = parent
	}
}

// Ci adds a variable reference.
func (t *Tree) Ci(v Variable) NodeID {
	if v == nil {
		panic("ast: ci node needs a variable")
	}
	return t.add(CiNode{Variable: v})
}

// Cn adds a numeric literal. The text is kept as written.
func (t *Tree) Cn(literal, units string) NodeID {
	if literal == "" {
		panic("ast: cn node needs a literal")
	}
	return t.add(CnNode{Literal: literal, Units: units})
}

// Constant adds one of the named constants.
func (t *Tree) Constant(k Kind) NodeID {
	if !k.IsNamedConstant() {
		panic(fmt.Sprintf("ast: %s is not a named constant", k))
	}
	return t.add(ConstantNode{Of: k})
}

// Unary adds an operator, function or qualifier with one operand.
func (t *Tree) Unary(k Kind, operand NodeID) NodeID {
	if !isUnaryKind(k) {
		panic(fmt.Sprintf("ast: %s cannot be unary", k))
	}
	id := t.add(UnaryNode{Of: k, Operand: NoNode})
	t.SetLeft(id, operand)
	return id
}

// Binary adds an operator with two operands.
func (t *Tree) Binary(k Kind, left, right NodeID) NodeID {
	if !isBinaryKind(k) {
		panic(fmt.Sprintf("ast: %s cannot be binary", k))
	}
	id := t.add(BinaryNode{Of: k, Left: NoNode, Right: NoNode})
	t.SetLeft(id, left)
	t.SetRight(id, right)
	return id
}

// Assign adds an assignment of rhs to lhs.
func (t *Tree) Assign(lhs, rhs NodeID) NodeID {
	return t.Binary(Assignment, lhs, rhs)
}

// Piece adds a (value, condition) pair of a piecewise chain.
func (t *Tree) Piece(value, condition NodeID) NodeID {
	return t.Binary(Piece, value, condition)
}

// Otherwise adds the fallback value of a piecewise chain.
func (t *Tree) Otherwise(value NodeID) NodeID {
	return t.Unary(Otherwise, value)
}

// Piecewise adds a chain of pieces. otherwise may be NoNode.
func (t *Tree) Piecewise(pieces []NodeID, otherwise NodeID) NodeID {
	for _, p := range pieces {
		if t.Kind(p) != Piece {
			panic(fmt.Sprintf("ast: piecewise expects piece nodes, got %s", t.Kind(p)))
		}
	}
	if otherwise != NoNode && t.Kind(otherwise) != Otherwise {
		panic(fmt.Sprintf("ast: piecewise expects an otherwise node, got %s", t.Kind(otherwise)))
	}
	id := t.add(PiecewiseNode{Pieces: append([]NodeID(nil), pieces...), Otherwise: otherwise})
	for _, p := range pieces {
		t.adopt(id, p)
	}
	t.adopt(id, otherwise)
	return id
}

// SetLeft attaches child as the left operand of id (the operand of a unary
// node). The node adopts child if it has no owner yet; otherwise the link is
// an alias.
func (t *Tree) SetLeft(id, child NodeID) {
	switch n := t.Node(id).(type) {
	case UnaryNode:
		n.Operand = child
		t.nodes[id] = n
	case BinaryNode:
		n.Left = child
		t.nodes[id] = n
	default:
		panic(fmt.Sprintf("ast: %s has no left child", n.Kind()))
	}
	t.adopt(id, child)
}

// SetRight attaches child as the right operand of a binary node.
func (t *Tree) SetRight(id, child NodeID) {
	n, ok := t.Node(id).(BinaryNode)
	if !ok {
		panic(fmt.Sprintf("ast: %s has no right child", t.Kind(id)))
	}
	n.Right = child
	t.nodes[id] = n
	t.adopt(id, child)
}

// Left returns the left operand (or the only operand of a unary node).
func (t *Tree) Left(id NodeID) NodeID {
	switch n := t.Node(id).(type) {
	case UnaryNode:
		return n.Operand
	case BinaryNode:
		return n.Left
	}
	return NoNode
}

// Right returns the right operand of a binary node.
func (t *Tree) Right(id NodeID) NodeID {
	if n, ok := t.Node(id).(BinaryNode); ok {
		return n.Right
	}
	return NoNode
}

// Parent returns the owner of id, or NoNode.
func (t *Tree) Parent(id NodeID) NodeID {
	t.check(id)
	return t.parents[id]
}

// SetParent overrides the upward link of id.
func (t *Tree) SetParent(id, parent NodeID) {
	t.check(id)
	if parent != NoNode {
		t.check(parent)
	}
	t.parents[id] = parent
}

// Children returns the direct children of id in source order.
func (t *Tree) Children(id NodeID) []NodeID {
	switch n := t.Node(id).(type) {
	case UnaryNode:
		if n.Operand != NoNode {
			return []NodeID{n.Operand}
		}
	case BinaryNode:
		var out []NodeID
		if n.Left != NoNode {
			out = append(out, n.Left)
		}
		if n.Right != NoNode {
			out = append(out, n.Right)
		}
		return out
	case PiecewiseNode:
		out := append([]NodeID(nil), n.Pieces...)
		if n.Otherwise != NoNode {
			out = append(out, n.Otherwise)
		}
		return out
	}
	return nil
}

// Walk visits from and its descendants in pre-order. Returning false from fn
// skips the children of the node just visited. Aliased subtrees are visited
// every time they are reached.
func (t *Tree) Walk(from NodeID, fn func(NodeID) bool) {
	if from == NoNode {
		return
	}
	if !fn(from) {
		return
	}
	for _, c := range t.Children(from) {
		t.Walk(c, fn)
	}
}

// Variables returns the variables referenced below from, in the order they
// are first met. Qualifiers are included.
func (t *Tree) Variables(from NodeID) []Variable {
	var out []Variable
	seen := make(map[Variable]bool)
	t.Walk(from, func(id NodeID) bool {
		if ci, ok := t.nodes[id].(CiNode); ok && !seen[ci.Variable] {
			seen[ci.Variable] = true
			out = append(out, ci.Variable)
		}
		return true
	})
	return out
}

// InPiecewise returns the closest enclosing piecewise node of id, following
// owner links upwards, or NoNode.
func (t *Tree) InPiecewise(id NodeID) NodeID {
	for p := t.Parent(id); p != NoNode; p = t.parents[p] {
		if t.nodes[p].Kind() == Piecewise {
			return p
		}
	}
	return NoNode
}

// Clone returns a deep copy of the arena. Node ids stay valid in the copy.
func (t *Tree) Clone() *Tree {
	c := &Tree{
		nodes:   make([]Node, len(t.nodes)),
		parents: append([]NodeID(nil), t.parents...),
		root:    t.root,
	}
	for i, n := range t.nodes {
		if pw, ok := n.(PiecewiseNode); ok {
			pw.Pieces = append([]NodeID(nil), pw.Pieces...)
			n = pw
		}
		c.nodes[i] = n
	}
	return c
}
