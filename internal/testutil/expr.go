package testutil

import (
	"github.com/specialistvlad/eqgen/internal/ast"
	"github.com/specialistvlad/eqgen/internal/model"
)

// Expr adds a subexpression to a tree and returns its root.
type Expr func(t *ast.Tree) ast.NodeID

// V references a variable.
func V(v *model.Variable) Expr {
	return func(t *ast.Tree) ast.NodeID { return t.Ci(v) }
}

// N is a dimensionless literal.
func N(literal string) Expr {
	return func(t *ast.Tree) ast.NodeID { return t.Cn(literal, "dimensionless") }
}

// K is a named constant such as ast.Pi.
func K(k ast.Kind) Expr {
	return func(t *ast.Tree) ast.NodeID { return t.Constant(k) }
}

// Op applies a binary operator.
func Op(k ast.Kind, left, right Expr) Expr {
	return func(t *ast.Tree) ast.NodeID { return t.Binary(k, left(t), right(t)) }
}

// Fn applies a unary operator or function.
func Fn(k ast.Kind, operand Expr) Expr {
	return func(t *ast.Tree) ast.NodeID { return t.Unary(k, operand(t)) }
}

// Neg is unary minus.
func Neg(operand Expr) Expr {
	return Fn(ast.Minus, operand)
}

// Ode is the derivative of x with respect to voi.
func Ode(x, voi *model.Variable) Expr {
	return func(t *ast.Tree) ast.NodeID {
		return t.Binary(ast.Diff, t.Unary(ast.Bvar, t.Ci(voi)), t.Ci(x))
	}
}

// Piece is one `value if condition` branch of Piecewise.
type Piece struct {
	Value, Condition Expr
}

// Piecewise builds a piecewise expression; otherwise may be nil.
func Piecewise(otherwise Expr, pieces ...Piece) Expr {
	return func(t *ast.Tree) ast.NodeID {
		ids := make([]ast.NodeID, len(pieces))
		for i, p := range pieces {
			ids[i] = t.Piece(p.Value(t), p.Condition(t))
		}
		other := ast.NoNode
		if otherwise != nil {
			other = t.Otherwise(otherwise(t))
		}
		return t.Piecewise(ids, other)
	}
}

// Eq adds the equation `lhs = rhs` to c.
func Eq(c *model.Component, lhs, rhs Expr) *model.Equation {
	t := ast.NewTree()
	root := t.Assign(lhs(t), rhs(t))
	t.SetRoot(root)
	return c.AddEquation(t)
}
