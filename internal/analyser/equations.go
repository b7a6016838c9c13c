package analyser

import (
	"slices"

	"github.com/specialistvlad/eqgen/internal/ast"
	"github.com/specialistvlad/eqgen/internal/model"
)

// eqForm is how an equation relates to the variable it computes.
type eqForm int

const (
	// formIsolated: `x = expr`.
	formIsolated eqForm = iota
	// formReversed: `expr = x`.
	formReversed
	// formRate: `d(x)/d(t) = expr`.
	formRate
	// formImplicit: neither side is a lone variable.
	formImplicit
)

// eqInfo is what the analyser learns about one model equation.
type eqInfo struct {
	src *model.Equation
	pos int
	form eqForm

	// target is the model variable assigned, bvar the variable of integration
	// of a rate equation.
	target *model.Variable
	bvar   *model.Variable
	// defined is the analyser variable of target.
	defined *Variable
	// expr is the side computing the value; NoNode for implicit equations.
	expr ast.NodeID
	// reads lists the variables expr reads (the whole equation for implicit
	// ones), first encountered first.
	reads []*Variable

	dropped bool
}

// inspectEquations finds out what every equation computes.
func (a *analysis) inspectEquations() {
	for pos, eq := range a.src.Equations() {
		info := &eqInfo{src: eq, pos: pos, expr: ast.NoNode}
		a.eqs = append(a.eqs, info)

		t := eq.Tree
		lhs, rhs := t.Left(eq.Root), t.Right(eq.Root)
		switch {
		case t.Kind(lhs) == ast.Ci:
			info.form, info.target, info.expr = formIsolated, ciVariable(t, lhs), rhs
		case t.Kind(lhs) == ast.Diff:
			state, bvar, ok := derivative(t, lhs)
			if !ok {
				a.drop(info, Unsupported, "equation %s: only first order derivatives of a variable with respect to a variable are supported", eq)
				continue
			}
			info.form, info.target, info.bvar, info.expr = formRate, state, bvar, rhs
		case t.Kind(rhs) == ast.Ci:
			info.form, info.target, info.expr = formReversed, ciVariable(t, rhs), lhs
		default:
			info.form = formImplicit
		}

		scan := info.expr
		if info.form == formImplicit {
			scan = eq.Root
		}
		if containsKind(t, scan, ast.Diff) {
			a.drop(info, Unsupported, "equation %s: a derivative may only appear alone on the left-hand side", eq)
			continue
		}
		if info.form != formImplicit {
			info.defined = a.byModel[info.target]
		}
		info.reads = a.readSet(t, scan)

		if info.form == formRate {
			voi := a.byModel[info.bvar]
			switch {
			case voi == info.defined:
				a.drop(info, Unsupported, "equation %s: a variable cannot be integrated with respect to itself", eq)
			case a.voi == nil:
				a.voi = voi
			case a.voi != voi:
				a.drop(info, Unsupported, "equation %s: '%s' is a second variable of integration, '%s' is already one",
					eq, info.bvar.QualifiedName(), a.voi)
			}
		}
	}
}

// settleForms turns `x = expr` and `expr = x` into implicit equations when x
// is already fixed (the variable of integration, a state, initialised or
// external) and expr still mentions a free variable: the equation then
// constrains the free variables instead of computing x.
func (a *analysis) settleForms() {
	states := make(map[*Variable]bool)
	for _, info := range a.eqs {
		if !info.dropped && info.form == formRate {
			states[info.defined] = true
		}
	}
	fixed := func(v *Variable) bool {
		return v == a.voi || states[v] || a.external[v] || v.Variable.HasInitialValue()
	}

	for _, info := range a.eqs {
		if info.dropped || (info.form != formIsolated && info.form != formReversed) || info.defined == nil || !fixed(info.defined) {
			continue
		}
		reads := a.readSet(info.src.Tree, info.src.Root)
		if !slices.ContainsFunc(reads, func(v *Variable) bool { return !fixed(v) }) {
			continue
		}
		a.logger.Debug("Equation treated as implicit.", "equation", info.src.String(), "fixed", info.defined.String())
		info.form, info.target, info.defined, info.expr = formImplicit, nil, nil, ast.NoNode
		info.reads = reads
	}
}

// checkDefinitions finds the variables computed more than once.
func (a *analysis) checkDefinitions() {
	a.definer = make(map[*Variable]*eqInfo)
	a.stateOf = make(map[*Variable]*eqInfo)

	for _, info := range a.eqs {
		if info.dropped {
			continue
		}
		switch info.form {
		case formRate:
			if prev := a.stateOf[info.defined]; prev != nil {
				a.drop(info, Overconstrained, "equation %s: the rate of '%s' is already computed by %s",
					info.src, info.defined, prev.src)
				continue
			}
			a.stateOf[info.defined] = info
		case formIsolated, formReversed:
			if prev := a.definer[info.defined]; prev != nil {
				a.drop(info, Overconstrained, "equation %s: '%s' is already computed by %s",
					info.src, info.defined, prev.src)
				continue
			}
			a.definer[info.defined] = info
		}
	}

	for _, v := range a.vars {
		def := a.definer[v]
		switch {
		case v == a.voi:
			if def != nil {
				a.drop(def, Overconstrained, "equation %s: '%s' is the variable of integration and cannot be computed", def.src, v)
				delete(a.definer, v)
			}
			if v.Variable.HasInitialValue() {
				a.issue(Overconstrained, Error, v.Variable, nil,
					"variable '%s' is the variable of integration and cannot be initialised", v)
			}
		case def != nil && a.stateOf[v] != nil:
			a.drop(def, Overconstrained, "equation %s: '%s' is a state and cannot also be computed algebraically", def.src, v)
			delete(a.definer, v)
		case def != nil && v.Variable.HasInitialValue():
			a.drop(def, Overconstrained, "equation %s: '%s' is computed and also has an initial value", def.src, v)
			delete(a.definer, v)
		case def != nil && a.external[v]:
			a.issue(Unsupported, Warning, v.Variable, def.src,
				"variable '%s' is external but computed by %s; it is not treated as external", v, def.src)
			delete(a.external, v)
		}
	}
}

// drop removes an equation from the analysis and records why.
func (a *analysis) drop(info *eqInfo, kind IssueKind, format string, args ...any) {
	info.dropped = true
	a.issue(kind, Error, info.target, info.src, format, args...)
}

// readSet maps the variables below id to analyser variables, first
// encountered first.
func (a *analysis) readSet(t *ast.Tree, id ast.NodeID) []*Variable {
	var out []*Variable
	seen := make(map[*Variable]bool)
	for _, ref := range t.Variables(id) {
		v := a.byModel[ref.(*model.Variable)]
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

func ciVariable(t *ast.Tree, id ast.NodeID) *model.Variable {
	return t.Node(id).(ast.CiNode).Variable.(*model.Variable)
}

// derivative unpacks Binary(Diff, Unary(Bvar, Ci t), Ci x).
func derivative(t *ast.Tree, id ast.NodeID) (state, bvar *model.Variable, ok bool) {
	b, x := t.Left(id), t.Right(id)
	if b == ast.NoNode || x == ast.NoNode || t.Kind(b) != ast.Bvar || t.Kind(x) != ast.Ci {
		return nil, nil, false
	}
	tv := t.Left(b)
	if tv == ast.NoNode || t.Kind(tv) != ast.Ci {
		return nil, nil, false
	}
	return ciVariable(t, x), ciVariable(t, tv), true
}

func containsKind(t *ast.Tree, id ast.NodeID, k ast.Kind) bool {
	found := false
	t.Walk(id, func(n ast.NodeID) bool {
		if t.Kind(n) == k {
			found = true
		}
		return !found
	})
	return found
}
