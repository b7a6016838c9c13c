package ast

import "strings"

var infixSymbols = map[Kind]string{
	Assignment: " = ",
	Eq:         " == ",
	Neq:        " != ",
	Lt:         " < ",
	Leq:        " <= ",
	Gt:         " > ",
	Geq:        " >= ",
	And:        " && ",
	Or:         " || ",
	Plus:       " + ",
	Minus:      " - ",
	Times:      "*",
	Divide:     "/",
	Power:      "^",
}

// String renders the tree in a fully parenthesised infix form. It is meant
// for logs and test failures, not for code generation.
func (t *Tree) String() string {
	root := t.Root()
	if root == NoNode {
		return ""
	}
	var sb strings.Builder
	t.format(&sb, root)
	return sb.String()
}

// Format renders the subtree at id like String does.
func (t *Tree) Format(id NodeID) string {
	var sb strings.Builder
	t.format(&sb, id)
	return sb.String()
}

func (t *Tree) format(sb *strings.Builder, id NodeID) {
	if id == NoNode {
		sb.WriteString("?")
		return
	}
	switch n := t.Node(id).(type) {
	case CiNode:
		sb.WriteString(n.Variable.Name())
	case CnNode:
		sb.WriteString(n.Literal)
	case ConstantNode:
		sb.WriteString(n.Of.String())
	case UnaryNode:
		if n.Of == Minus || n.Of == Not {
			if n.Of == Minus {
				sb.WriteString("-")
			} else {
				sb.WriteString("!")
			}
			sb.WriteString("(")
			t.format(sb, n.Operand)
			sb.WriteString(")")
			return
		}
		sb.WriteString(n.Of.String())
		sb.WriteString("(")
		t.format(sb, n.Operand)
		sb.WriteString(")")
	case BinaryNode:
		if sym, ok := infixSymbols[n.Of]; ok {
			if n.Of != Assignment {
				sb.WriteString("(")
			}
			t.format(sb, n.Left)
			sb.WriteString(sym)
			t.format(sb, n.Right)
			if n.Of != Assignment {
				sb.WriteString(")")
			}
			return
		}
		sb.WriteString(n.Of.String())
		sb.WriteString("(")
		t.format(sb, n.Left)
		sb.WriteString(", ")
		t.format(sb, n.Right)
		sb.WriteString(")")
	case PiecewiseNode:
		sb.WriteString("piecewise(")
		for i, p := range n.Pieces {
			if i > 0 {
				sb.WriteString(", ")
			}
			t.format(sb, p)
		}
		if n.Otherwise != NoNode {
			if len(n.Pieces) > 0 {
				sb.WriteString(", ")
			}
			t.format(sb, n.Otherwise)
		}
		sb.WriteString(")")
	}
}
