package generator

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/specialistvlad/eqgen/internal/ast"
	"github.com/specialistvlad/eqgen/internal/model"
)

// precedence orders operators from loosest to tightest binding.
type precedence int

const (
	precPiecewise precedence = iota
	precAssignment
	precOr
	precAnd
	precRelational
	precAdditive
	precMultiplicative
	precPower
	precUnary
	precAtom
)

// code is a rendered expression with the precedence of its outermost
// operator.
type code struct {
	text string
	prec precedence
}

func atom(text string) code {
	return code{text: text, prec: precAtom}
}

func (c code) parens() string {
	return "(" + c.text + ")"
}

func startsWithSign(s string) bool {
	return strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+")
}

func endsWithSign(s string) bool {
	return strings.HasSuffix(s, "-") || strings.HasSuffix(s, "+")
}

// isWordOperator reports whether op is spelled with letters, like Python's
// `not `, which binds looser than a comparison.
func isWordOperator(op string) bool {
	op = strings.TrimSpace(op)
	return op != "" && unicode.IsLetter(rune(op[0]))
}

// expr renders the subtree at id.
func (g *generator) expr(t *ast.Tree, id ast.NodeID) code {
	switch n := t.Node(id).(type) {
	case ast.CiNode:
		return g.reference(n.Variable)
	case ast.CnNode:
		return g.literal(n.Literal)
	case ast.ConstantNode:
		return atom(g.constant(n.Of))
	case ast.UnaryNode:
		return g.unary(t, n)
	case ast.BinaryNode:
		return g.binary(t, n)
	case ast.PiecewiseNode:
		return g.piecewise(t, n)
	}
	panic(fmt.Sprintf("generator: unexpected %s node", t.Kind(id)))
}

// reference renders a variable read, scaled into the units of the model
// variable the equation refers to.
func (g *generator) reference(v ast.Variable) code {
	mv := g.modelVariable(v)
	av := g.m.Variable(mv)
	text := g.plain(av)
	if f := av.Scaling(mv); f != 1 {
		return code{text: text + g.p.Times + g.factor(f), prec: precMultiplicative}
	}
	return atom(text)
}

func (g *generator) modelVariable(v ast.Variable) *model.Variable {
	mv, ok := v.(*model.Variable)
	if !ok || g.m.Variable(mv) == nil {
		panic(fmt.Sprintf("generator: '%s' is not a variable of the analysed model", v.Name()))
	}
	return mv
}

var plainDecimal = regexp.MustCompile(`^(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

// literal keeps a plain decimal as written and normalises anything else to
// the shortest text that reads back to the same value.
func (g *generator) literal(text string) code {
	if plainDecimal.MatchString(text) {
		if !strings.ContainsAny(text, ".eE") {
			text += ".0"
		}
		return atom(text)
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		// The model validates literals, so this is a programmer error.
		panic(fmt.Sprintf("generator: invalid literal '%s'", text))
	}
	c := atom(g.factor(f))
	if startsWithSign(c.text) {
		c.prec = precUnary
	}
	return c
}

// factor renders a float as a literal of the target.
func (g *generator) factor(f float64) string {
	switch {
	case math.IsNaN(f):
		return g.p.NaN
	case math.IsInf(f, 1):
		return g.p.Inf
	case math.IsInf(f, -1):
		return strings.TrimSpace(g.p.Minus) + g.p.Inf
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

func (g *generator) constant(k ast.Kind) string {
	switch k {
	case ast.True:
		return g.p.True
	case ast.False:
		return g.p.False
	case ast.E:
		return g.p.E
	case ast.Pi:
		return g.p.Pi
	case ast.Inf:
		return g.p.Inf
	case ast.NaN:
		return g.p.NaN
	}
	panic(fmt.Sprintf("generator: %s is not a named constant", k))
}

func (g *generator) unary(t *ast.Tree, n ast.UnaryNode) code {
	operand := g.expr(t, n.Operand)
	switch n.Of {
	case ast.Plus, ast.Otherwise, ast.Degree, ast.Logbase, ast.Bvar:
		return operand
	case ast.Minus:
		return prefix(strings.TrimSpace(g.p.Minus), precUnary, operand)
	case ast.Not:
		prec := precUnary
		if isWordOperator(g.p.Not) {
			prec = precAnd
		}
		return prefix(g.p.Not, prec, operand)
	}
	return g.call(n.Of, operand)
}

func prefix(op string, prec precedence, operand code) code {
	text := operand.text
	if operand.prec < prec || (endsWithSign(op) && startsWithSign(text)) {
		text = operand.parens()
	}
	return code{text: op + text, prec: prec}
}

func (g *generator) binary(t *ast.Tree, n ast.BinaryNode) code {
	if n.Of == ast.Diff {
		return atom(g.rate(t, n.Right))
	}

	l, r := g.expr(t, n.Left), g.expr(t, n.Right)
	switch n.Of {
	case ast.Assignment:
		return infix(g.p.Assignment, precAssignment, l, r, false)
	case ast.Eq:
		return infix(g.p.Eq, precRelational, l, r, true)
	case ast.Neq:
		return infix(g.p.Neq, precRelational, l, r, true)
	case ast.Lt:
		return infix(g.p.Lt, precRelational, l, r, true)
	case ast.Leq:
		return infix(g.p.Leq, precRelational, l, r, true)
	case ast.Gt:
		return infix(g.p.Gt, precRelational, l, r, true)
	case ast.Geq:
		return infix(g.p.Geq, precRelational, l, r, true)
	case ast.And:
		return infix(g.p.And, precAnd, l, r, false)
	case ast.Or:
		return infix(g.p.Or, precOr, l, r, false)
	case ast.Xor:
		if g.p.HasXorOperator {
			return infix(g.p.Xor, precOr, l, r, false)
		}
		return g.call(ast.Xor, l, r)
	case ast.Plus:
		return infix(g.p.Plus, precAdditive, l, r, false)
	case ast.Minus:
		return infix(g.p.Minus, precAdditive, l, r, false)
	case ast.Times:
		return infix(g.p.Times, precMultiplicative, l, r, false)
	case ast.Divide:
		return infix(g.p.Divide, precMultiplicative, l, r, false)
	case ast.Power:
		return g.power(l, r)
	case ast.Root:
		// root(x, n) is x^(1/n); l is the degree.
		inverse := code{text: "1.0" + g.p.Divide, prec: precMultiplicative}
		if l.prec <= precMultiplicative {
			inverse.text += l.parens()
		} else {
			inverse.text += l.text
		}
		return g.power(r, inverse)
	case ast.Log:
		if isTen(t, t.Left(n.Left)) {
			return g.call(ast.Log, r)
		}
		return infix(g.p.Divide, precMultiplicative, g.call(ast.Ln, r), g.call(ast.Ln, l), false)
	case ast.Min, ast.Max, ast.Rem:
		return g.call(n.Of, l, r)
	}
	panic(fmt.Sprintf("generator: unexpected binary %s", n.Of))
}

// infix joins two operands. Right operands at the same precedence are
// parenthesised, and so are both operands of a comparison.
func infix(op string, prec precedence, l, r code, relational bool) code {
	lt := l.text
	if l.prec < prec || (relational && l.prec == prec) {
		lt = l.parens()
	}
	rt := r.text
	if r.prec <= prec || (endsWithSign(op) && startsWithSign(rt)) {
		rt = r.parens()
	}
	return code{text: lt + op + rt, prec: prec}
}

func (g *generator) power(base, exponent code) code {
	if !g.p.HasPowerOperator {
		return g.call(ast.Power, base, exponent)
	}
	// Anything but an atom is wrapped: a power groups to the right and binds
	// tighter than a leading sign.
	bt := base.text
	if base.prec < precAtom {
		bt = base.parens()
	}
	et := exponent.text
	if exponent.prec <= precPower {
		et = exponent.parens()
	}
	return code{text: bt + g.p.Power + et, prec: precPower}
}

// call renders a function call and records the helpers it needs.
func (g *generator) call(k ast.Kind, args ...code) code {
	name := g.functionName(k)
	if helperTemplate(g.p, k) != "" {
		g.helpers[k] = true
	}
	texts := make([]string, len(args))
	for i, a := range args {
		texts[i] = a.text
	}
	return atom(name + "(" + strings.Join(texts, ", ") + ")")
}

func (g *generator) piecewise(t *ast.Tree, n ast.PiecewiseNode) code {
	rest := atom(g.p.NaN)
	if n.Otherwise != ast.NoNode {
		rest = g.expr(t, t.Left(n.Otherwise))
	}
	for i := len(n.Pieces) - 1; i >= 0; i-- {
		piece := n.Pieces[i]
		rest = g.conditional(g.expr(t, t.Right(piece)), g.expr(t, t.Left(piece)), rest)
	}
	return rest
}

// conditional renders `value if condition else rest`. Chains nest to the
// right, so rest never needs parentheses.
func (g *generator) conditional(condition, value, rest code) code {
	ifTmpl, elseTmpl := g.p.PiecewiseIf, g.p.PiecewiseElse
	if g.p.HasConditionalOperator {
		ifTmpl, elseTmpl = g.p.ConditionalOperatorIf, g.p.ConditionalOperatorElse
	}
	ct, vt := condition.text, value.text
	if condition.prec <= precPiecewise {
		ct = condition.parens()
	}
	if value.prec <= precPiecewise {
		vt = value.parens()
	}
	text := fill(ifTmpl, "[CONDITION]", ct, "[IF_STATEMENT]", vt) +
		fill(elseTmpl, "[ELSE_STATEMENT]", rest.text)
	return code{text: text, prec: precPiecewise}
}

func isTen(t *ast.Tree, id ast.NodeID) bool {
	cn, ok := t.Node(id).(ast.CnNode)
	if !ok {
		return false
	}
	f, err := strconv.ParseFloat(cn.Literal, 64)
	return err == nil && f == 10
}

func (g *generator) functionName(k ast.Kind) string {
	p := g.p
	switch k {
	case ast.Root:
		return p.SquareRoot
	case ast.Power:
		return p.Power
	case ast.Xor:
		return p.Xor
	case ast.Abs:
		return p.Abs
	case ast.Exp:
		return p.Exp
	case ast.Ln:
		return p.Ln
	case ast.Log:
		return p.Log
	case ast.Ceiling:
		return p.Ceiling
	case ast.Floor:
		return p.Floor
	case ast.Min:
		return p.Min
	case ast.Max:
		return p.Max
	case ast.Rem:
		return p.Rem
	case ast.Sin:
		return p.Sin
	case ast.Cos:
		return p.Cos
	case ast.Tan:
		return p.Tan
	case ast.Sec:
		return p.Sec
	case ast.Csc:
		return p.Csc
	case ast.Cot:
		return p.Cot
	case ast.Sinh:
		return p.Sinh
	case ast.Cosh:
		return p.Cosh
	case ast.Tanh:
		return p.Tanh
	case ast.Sech:
		return p.Sech
	case ast.Csch:
		return p.Csch
	case ast.Coth:
		return p.Coth
	case ast.Asin:
		return p.Asin
	case ast.Acos:
		return p.Acos
	case ast.Atan:
		return p.Atan
	case ast.Asec:
		return p.Asec
	case ast.Acsc:
		return p.Acsc
	case ast.Acot:
		return p.Acot
	case ast.Asinh:
		return p.Asinh
	case ast.Acosh:
		return p.Acosh
	case ast.Atanh:
		return p.Atanh
	case ast.Asech:
		return p.Asech
	case ast.Acsch:
		return p.Acsch
	case ast.Acoth:
		return p.Acoth
	}
	panic(fmt.Sprintf("generator: %s is not a function", k))
}
