package hclmodel

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/eqgen/internal/ast"
	"github.com/specialistvlad/eqgen/internal/model"
	"github.com/zclconf/go-cty/cty"
)

// unaryFunctions are the one-argument functions of the expression language.
var unaryFunctions = map[string]ast.Kind{
	"sqrt": ast.Root, "abs": ast.Abs, "exp": ast.Exp, "ln": ast.Ln,
	"ceil": ast.Ceiling, "ceiling": ast.Ceiling, "floor": ast.Floor,
	"sin": ast.Sin, "cos": ast.Cos, "tan": ast.Tan,
	"sec": ast.Sec, "csc": ast.Csc, "cot": ast.Cot,
	"sinh": ast.Sinh, "cosh": ast.Cosh, "tanh": ast.Tanh,
	"sech": ast.Sech, "csch": ast.Csch, "coth": ast.Coth,
	"asin": ast.Asin, "acos": ast.Acos, "atan": ast.Atan,
	"asec": ast.Asec, "acsc": ast.Acsc, "acot": ast.Acot,
	"asinh": ast.Asinh, "acosh": ast.Acosh, "atanh": ast.Atanh,
	"asech": ast.Asech, "acsch": ast.Acsch, "acoth": ast.Acoth,
}

// binaryFunctions take two arguments; min and max accept more and fold to
// the left.
var binaryFunctions = map[string]ast.Kind{
	"pow": ast.Power, "rem": ast.Rem, "xor": ast.Xor, "min": ast.Min, "max": ast.Max,
}

var namedConstants = map[string]ast.Kind{
	"pi": ast.Pi, "e": ast.E, "inf": ast.Inf, "nan": ast.NaN,
}

// lowerer builds the tree of one equation from its HCL syntax.
type lowerer struct {
	src   []byte
	c     *model.Component
	tree  *ast.Tree
	diags hcl.Diagnostics
}

func newLowerer(src []byte, c *model.Component) *lowerer {
	return &lowerer{src: src, c: c, tree: ast.NewTree()}
}

func (l *lowerer) errorf(rng hcl.Range, summary, format string, args ...any) ast.NodeID {
	l.diags = append(l.diags, &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  summary,
		Detail:   fmt.Sprintf(format, args...),
		Subject:  rng.Ptr(),
	})
	return ast.NoNode
}

// lower returns the node for expr, or ast.NoNode after recording a
// diagnostic.
func (l *lowerer) lower(expr hcl.Expression) ast.NodeID {
	syntax, ok := expr.(hclsyntax.Expression)
	if !ok {
		return l.errorf(expr.Range(), "Unsupported expression", "Equations must use the native HCL syntax.")
	}

	switch e := syntax.(type) {
	case *hclsyntax.ParenthesesExpr:
		return l.lower(e.Expression)
	case *hclsyntax.LiteralValueExpr:
		return l.literal(e)
	case *hclsyntax.ScopeTraversalExpr:
		return l.name(e)
	case *hclsyntax.UnaryOpExpr:
		operand := l.lower(e.Val)
		if operand == ast.NoNode {
			return ast.NoNode
		}
		if e.Op == hclsyntax.OpLogicalNot {
			return l.tree.Unary(ast.Not, operand)
		}
		return l.tree.Unary(ast.Minus, operand)
	case *hclsyntax.BinaryOpExpr:
		return l.binary(e)
	case *hclsyntax.ConditionalExpr:
		return l.conditional(e)
	case *hclsyntax.FunctionCallExpr:
		return l.call(e)
	}
	return l.errorf(syntax.Range(), "Unsupported expression",
		"Only numbers, names, operators, conditionals and function calls may appear in an equation.")
}

func (l *lowerer) literal(e *hclsyntax.LiteralValueExpr) ast.NodeID {
	switch e.Val.Type() {
	case cty.Number:
		return l.tree.Cn(sourceText(l.src, e.SrcRange), "dimensionless")
	case cty.Bool:
		if e.Val.True() {
			return l.tree.Constant(ast.True)
		}
		return l.tree.Constant(ast.False)
	}
	return l.errorf(e.SrcRange, "Unsupported literal", "Only numbers, true and false may appear in an equation.")
}

// name resolves a bare name to a variable of the component, then to a named
// constant.
func (l *lowerer) name(e *hclsyntax.ScopeTraversalExpr) ast.NodeID {
	if len(e.Traversal) != 1 {
		return l.errorf(e.SrcRange, "Unsupported reference",
			"Equations refer to variables of their own component by name only.")
	}
	name := e.Traversal.RootName()
	if v := l.c.Variable(name); v != nil {
		return l.tree.Ci(v)
	}
	if k, ok := namedConstants[name]; ok {
		return l.tree.Constant(k)
	}
	return l.errorf(e.SrcRange, "Unknown variable", "Component %q has no variable %q.", l.c.Name, name)
}

func (l *lowerer) variable(expr hclsyntax.Expression, role string) *model.Variable {
	if p, ok := expr.(*hclsyntax.ParenthesesExpr); ok {
		return l.variable(p.Expression, role)
	}
	e, ok := expr.(*hclsyntax.ScopeTraversalExpr)
	if !ok || len(e.Traversal) != 1 {
		l.errorf(expr.Range(), "Invalid derivative", "The %s of ode must be a variable name.", role)
		return nil
	}
	v := l.c.Variable(e.Traversal.RootName())
	if v == nil {
		l.errorf(e.SrcRange, "Unknown variable", "Component %q has no variable %q.", l.c.Name, e.Traversal.RootName())
	}
	return v
}

var binaryOperators = map[*hclsyntax.Operation]ast.Kind{
	hclsyntax.OpLogicalOr:          ast.Or,
	hclsyntax.OpLogicalAnd:         ast.And,
	hclsyntax.OpEqual:              ast.Eq,
	hclsyntax.OpNotEqual:           ast.Neq,
	hclsyntax.OpGreaterThan:        ast.Gt,
	hclsyntax.OpGreaterThanOrEqual: ast.Geq,
	hclsyntax.OpLessThan:           ast.Lt,
	hclsyntax.OpLessThanOrEqual:    ast.Leq,
	hclsyntax.OpAdd:                ast.Plus,
	hclsyntax.OpSubtract:           ast.Minus,
	hclsyntax.OpMultiply:           ast.Times,
	hclsyntax.OpDivide:             ast.Divide,
	hclsyntax.OpModulo:             ast.Rem,
}

func (l *lowerer) binary(e *hclsyntax.BinaryOpExpr) ast.NodeID {
	k, ok := binaryOperators[e.Op]
	if !ok {
		return l.errorf(e.SrcRange, "Unsupported operator", "The operator is not supported in equations.")
	}
	left, right := l.lower(e.LHS), l.lower(e.RHS)
	if left == ast.NoNode || right == ast.NoNode {
		return ast.NoNode
	}
	return l.tree.Binary(k, left, right)
}

// conditional turns `c1 ? v1 : c2 ? v2 : v3` into one piecewise node with a
// piece per condition.
func (l *lowerer) conditional(e *hclsyntax.ConditionalExpr) ast.NodeID {
	var pieces []ast.NodeID
	failed := false
	var rest hclsyntax.Expression = e
	for {
		if p, ok := rest.(*hclsyntax.ParenthesesExpr); ok {
			rest = p.Expression
			continue
		}
		cond, ok := rest.(*hclsyntax.ConditionalExpr)
		if !ok {
			break
		}
		value, condition := l.lower(cond.TrueResult), l.lower(cond.Condition)
		if value == ast.NoNode || condition == ast.NoNode {
			failed = true
		} else {
			pieces = append(pieces, l.tree.Piece(value, condition))
		}
		rest = cond.FalseResult
	}
	otherwise := l.lower(rest)
	if failed || otherwise == ast.NoNode {
		return ast.NoNode
	}
	return l.tree.Piecewise(pieces, l.tree.Otherwise(otherwise))
}

func (l *lowerer) call(e *hclsyntax.FunctionCallExpr) ast.NodeID {
	if e.ExpandFinal {
		return l.errorf(e.Range(), "Unsupported expansion", "Function arguments cannot be expanded with '...'.")
	}
	switch e.Name {
	case "ode":
		return l.ode(e)
	case "piecewise":
		return l.piecewise(e)
	case "root":
		return l.qualified(e, ast.Root, ast.Degree, "root(x, degree)")
	case "log":
		if len(e.Args) == 1 {
			return l.unary(e, ast.Log)
		}
		return l.qualified(e, ast.Log, ast.Logbase, "log(x) or log(x, base)")
	}
	if k, ok := unaryFunctions[e.Name]; ok {
		return l.unary(e, k)
	}
	if k, ok := binaryFunctions[e.Name]; ok {
		return l.fold(e, k)
	}
	return l.errorf(e.NameRange, "Unknown function", "There is no function named %q.", e.Name)
}

func (l *lowerer) args(e *hclsyntax.FunctionCallExpr) []ast.NodeID {
	ids := make([]ast.NodeID, len(e.Args))
	ok := true
	for i, arg := range e.Args {
		ids[i] = l.lower(arg)
		ok = ok && ids[i] != ast.NoNode
	}
	if !ok {
		return nil
	}
	return ids
}

func (l *lowerer) arity(e *hclsyntax.FunctionCallExpr, usage string) ast.NodeID {
	return l.errorf(e.Range(), "Wrong number of arguments", "Call %s as %s.", e.Name, usage)
}

func (l *lowerer) unary(e *hclsyntax.FunctionCallExpr, k ast.Kind) ast.NodeID {
	if len(e.Args) != 1 {
		return l.arity(e, e.Name+"(x)")
	}
	args := l.args(e)
	if args == nil {
		return ast.NoNode
	}
	return l.tree.Unary(k, args[0])
}

func (l *lowerer) fold(e *hclsyntax.FunctionCallExpr, k ast.Kind) ast.NodeID {
	variadic := k == ast.Min || k == ast.Max
	if len(e.Args) != 2 && !(variadic && len(e.Args) > 2) {
		if variadic {
			return l.arity(e, e.Name+"(x, y, ...)")
		}
		return l.arity(e, e.Name+"(x, y)")
	}
	args := l.args(e)
	if args == nil {
		return ast.NoNode
	}
	id := args[0]
	for _, arg := range args[1:] {
		id = l.tree.Binary(k, id, arg)
	}
	return id
}

// qualified lowers root(x, n) and log(x, b): the qualifier is the left
// operand and x the right one.
func (l *lowerer) qualified(e *hclsyntax.FunctionCallExpr, k, qualifier ast.Kind, usage string) ast.NodeID {
	if len(e.Args) != 2 {
		return l.arity(e, usage)
	}
	args := l.args(e)
	if args == nil {
		return ast.NoNode
	}
	return l.tree.Binary(k, l.tree.Unary(qualifier, args[1]), args[0])
}

// ode lowers ode(x, t), the derivative of x with respect to t.
func (l *lowerer) ode(e *hclsyntax.FunctionCallExpr) ast.NodeID {
	if len(e.Args) != 2 {
		return l.arity(e, "ode(x, t)")
	}
	x, t := l.variable(e.Args[0], "first argument"), l.variable(e.Args[1], "second argument")
	if x == nil || t == nil {
		return ast.NoNode
	}
	return l.tree.Binary(ast.Diff, l.tree.Unary(ast.Bvar, l.tree.Ci(t)), l.tree.Ci(x))
}

// piecewise lowers piecewise([value, condition], ..., otherwise). The
// otherwise value is optional.
func (l *lowerer) piecewise(e *hclsyntax.FunctionCallExpr) ast.NodeID {
	var pieces []ast.NodeID
	otherwise := ast.NoNode
	failed := false
	for i, arg := range e.Args {
		tuple, ok := arg.(*hclsyntax.TupleConsExpr)
		if !ok {
			if i != len(e.Args)-1 {
				return l.errorf(arg.Range(), "Invalid piece",
					"Every argument of piecewise but the last must be a [value, condition] pair.")
			}
			if otherwise = l.lower(arg); otherwise == ast.NoNode {
				failed = true
			}
			break
		}
		if len(tuple.Exprs) != 2 {
			return l.errorf(tuple.SrcRange, "Invalid piece", "A piece is a [value, condition] pair.")
		}
		value, condition := l.lower(tuple.Exprs[0]), l.lower(tuple.Exprs[1])
		if value == ast.NoNode || condition == ast.NoNode {
			failed = true
			continue
		}
		pieces = append(pieces, l.tree.Piece(value, condition))
	}
	if failed {
		return ast.NoNode
	}
	if len(pieces) == 0 {
		return l.errorf(e.Range(), "Invalid piecewise", "piecewise needs at least one [value, condition] pair.")
	}
	if otherwise != ast.NoNode {
		otherwise = l.tree.Otherwise(otherwise)
	}
	return l.tree.Piecewise(pieces, otherwise)
}
