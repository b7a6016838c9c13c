package analyser

import (
	"errors"
	"slices"

	"github.com/specialistvlad/eqgen/internal/ast"
	"github.com/specialistvlad/eqgen/internal/graph"
	"github.com/specialistvlad/eqgen/internal/model"
	"github.com/specialistvlad/eqgen/internal/units"
)

// ordering is the evaluation order of the analysed equations.
type ordering struct {
	all    []*Equation
	phases map[Phase][]*Equation
}

// buildEquations turns the classified model into analysed equations, sorts
// them and splits them into phases.
func (a *analysis) buildEquations() *ordering {
	var eqs []*Equation
	add := func(e *Equation) *Equation {
		e.ID = len(eqs)
		e.Phase = e.Type.homePhase()
		if e.Scaling == 0 {
			e.Scaling = 1
		}
		eqs = append(eqs, e)
		return e
	}

	for _, v := range a.vars {
		if lit, ok := v.Variable.InitialLiteral(); ok && v.Kind == Constant {
			add(a.literalInit(ConstantInit, v, lit))
		}
	}
	for _, v := range a.vars {
		if v.Kind == State {
			if e := a.stateInit(v); e != nil {
				add(e)
			}
		}
	}
	for _, set := range a.nlaSets {
		for _, v := range a.setUnknowns(set) {
			lit, ok := v.Variable.InitialLiteral()
			if !ok {
				lit = "0.0"
			}
			add(a.literalInit(InitialGuess, v, lit))
		}
	}
	for _, v := range a.vars {
		if v.Kind == External {
			t := ast.NewTree()
			t.SetRoot(t.Ci(v.Variable))
			add(&Equation{Type: ExternalFetch, Tree: t, Root: t.Root(), Defined: v})
		}
	}

	residualOf := make(map[*eqInfo]*Equation)
	for _, info := range a.eqs {
		if info.dropped {
			continue
		}
		if set := a.nlaOf[info]; set != nil {
			residualOf[info] = add(a.residual(info))
			continue
		}
		if info.form == formImplicit {
			continue
		}
		add(a.explicit(info))
	}

	for _, set := range a.nlaSets {
		g := &Group{Unknowns: a.setUnknowns(set)}
		for _, info := range set.eqs {
			e := residualOf[info]
			e.Group = g
			g.Equations = append(g.Equations, e)
		}
	}

	return a.order(eqs)
}

// literalInit builds `v = literal`.
func (a *analysis) literalInit(typ EquationType, v *Variable, literal string) *Equation {
	t := ast.NewTree()
	root := t.Assign(t.Ci(v.Variable), t.Cn(literal, v.Units()))
	t.SetRoot(root)
	return &Equation{Type: typ, Tree: t, Root: root, Defined: v}
}

// stateInit builds the initialisation of a state, from a literal or from
// another variable with the scaling between their units.
func (a *analysis) stateInit(v *Variable) *Equation {
	if lit, ok := v.Variable.InitialLiteral(); ok {
		return a.literalInit(StateInit, v, lit)
	}
	mv := v.Variable.InitialVariable()
	if mv == nil {
		// Already reported.
		return nil
	}
	ref := a.byModel[mv]
	if ref.Kind != Constant && ref.Kind != ComputedConstant {
		a.issue(Unsuitable, Error, v.Variable, nil,
			"state '%s' is initialised from '%s', which is a %s variable; only constants and computed constants can initialise a state",
			v, mv.QualifiedName(), ref.Kind)
		return nil
	}
	f, err := a.cat.Factor(ref.Units(), v.Units())
	if err != nil {
		a.issue(UnitsMismatch, Error, v.Variable, nil,
			"state '%s' is initialised from '%s' but their units cannot be converted: %v", v, ref, err)
		return nil
	}
	if _, ok := units.PowerOfTen(f); !ok {
		a.issue(UnitsMismatch, Warning, v.Variable, nil,
			"state '%s' is initialised from '%s' with a scaling factor of %g, which is not a power of ten", v, ref, f)
	}

	t := ast.NewTree()
	root := t.Assign(t.Ci(v.Variable), t.Ci(ref.Variable))
	t.SetRoot(root)
	return &Equation{
		Type:         StateInit,
		Tree:         t,
		Root:         root,
		Defined:      v,
		Dependencies: []*Variable{ref},
		Scaling:      f,
	}
}

// explicit builds the analysed form of a rate or of an equation computing one
// variable. Reversed equations are rewritten as `x = expr`.
func (a *analysis) explicit(info *eqInfo) *Equation {
	t := info.src.Tree.Clone()
	root := info.src.Root
	e := &Equation{
		Tree:         t,
		Defined:      info.defined,
		Dependencies: info.reads,
		Source:       info.src,
	}

	switch info.form {
	case formRate:
		e.Type = RateEquation
		e.Scaling = a.voi.Scaling(info.bvar) / info.defined.Scaling(info.target)
	case formReversed:
		root = t.Assign(t.Ci(info.target), info.expr)
		fallthrough
	default:
		e.Type = AlgebraicEquation
		if info.defined.Kind == ComputedConstant {
			e.Type = ComputedConstantEquation
		}
		e.Scaling = 1 / info.defined.Scaling(info.target)
	}
	t.SetRoot(root)
	e.Root = root
	return e
}

// residual builds `lhs - rhs` for a member of an NLA group. Both operands
// alias the sides of the original equation.
func (a *analysis) residual(info *eqInfo) *Equation {
	t := info.src.Tree.Clone()
	src := info.src.Root
	root := t.Binary(ast.Minus, t.Left(src), t.Right(src))
	t.SetRoot(root)
	return &Equation{
		Type:         NLAResidual,
		Tree:         t,
		Root:         root,
		Dependencies: a.readSet(t, root),
		Source:       info.src,
	}
}

// setUnknowns orders the unknowns of an NLA set by first encounter over its
// equations in declaration order.
func (a *analysis) setUnknowns(set *nlaSet) []*Variable {
	var out []*Variable
	seen := make(map[*Variable]bool)
	for _, info := range set.eqs {
		for _, v := range a.readSet(info.src.Tree, info.src.Root) {
			if set.unknowns[v] && !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	}
	return out
}

// order sorts the equations so that every equation follows those computing
// what it reads, with the members of an NLA group kept together, and derives
// the ordering of each phase.
func (a *analysis) order(eqs []*Equation) *ordering {
	// rep maps an equation to the node standing for it: its own id, or the
	// id of the first member of its group.
	rep := make(map[int]int, len(eqs))
	members := make(map[int][]*Equation, len(eqs))
	for _, e := range eqs {
		id := e.ID
		if e.Group != nil {
			id = e.Group.Equations[0].ID
		}
		rep[e.ID] = id
		members[id] = append(members[id], e)
	}

	definer := make(map[*Variable]int)
	for _, e := range eqs {
		switch {
		case e.Type == InitialGuess || e.Type == RateEquation:
		case e.Group != nil:
			for _, u := range e.Group.Unknowns {
				definer[u] = rep[e.ID]
			}
		case e.Defined != nil:
			definer[e.Defined] = e.ID
		}
	}

	g := graph.New[int]()
	for _, e := range eqs {
		g.AddNode(rep[e.ID])
	}
	for _, e := range eqs {
		to := rep[e.ID]
		for _, d := range e.Dependencies {
			from, ok := definer[d]
			if !ok || from == to {
				continue
			}
			_ = g.AddEdge(from, to)
		}
	}

	a.logger.Debug("Ordering equations.", "nodes", g.Len())
	sorted, err := g.TopologicalSort()
	if err != nil {
		var src *model.Equation
		var cycleErr *graph.CycleError[int]
		if errors.As(err, &cycleErr) {
			src = members[cycleErr.Node][0].Source
		}
		a.issue(Unsuitable, Error, nil, src, "the equations cannot be ordered: %v", err)
		sorted = g.Nodes()
	}

	out := &ordering{phases: make(map[Phase][]*Equation)}
	for _, id := range sorted {
		out.all = append(out.all, members[id]...)
	}
	a.groups = nil
	for _, e := range out.all {
		if e.Group != nil && e.Group.Equations[0] == e {
			e.Group.ID = len(a.groups)
			a.groups = append(a.groups, e.Group)
		}
	}

	byID := make(map[int]*Equation, len(eqs))
	for _, e := range eqs {
		byID[e.ID] = e
	}
	isInit := func(id int) bool {
		switch byID[id].Type {
		case ConstantInit, StateInit, InitialGuess:
			return true
		}
		return false
	}
	notInit := func(id int) bool { return !isInit(id) }
	ofType := func(types ...EquationType) []int {
		var ids []int
		for _, e := range eqs {
			if slices.Contains(types, e.Type) {
				ids = append(ids, rep[e.ID])
			}
		}
		return ids
	}

	include := make(map[Phase]map[int]bool, len(Phases))
	mark := func(p Phase, ids ...int) {
		if include[p] == nil {
			include[p] = make(map[int]bool)
		}
		for _, id := range ids {
			include[p][id] = true
		}
	}

	// Initialise: the initial values, plus the computed constants a state is
	// initialised from.
	inits := ofType(ConstantInit, StateInit, InitialGuess)
	mark(Initialise, inits...)
	for _, id := range g.Ancestors(ofType(StateInit)...) {
		if byID[id].Type == ComputedConstantEquation {
			mark(Initialise, id)
		}
	}

	mark(ComputeComputedConstants, ofType(ComputedConstantEquation)...)

	rates := ofType(RateEquation)
	mark(ComputeRates, rates...)
	mark(ComputeRates, g.AncestorsWhere(notInit, rates...)...)

	variables := ofType(AlgebraicEquation, NLAResidual, ExternalFetch)
	for id := range include[ComputeRates] {
		if byID[id].Type != RateEquation {
			variables = append(variables, id)
		}
	}
	mark(ComputeVariables, variables...)
	mark(ComputeVariables, g.AncestorsWhere(notInit, variables...)...)

	for _, p := range Phases {
		for _, id := range sorted {
			if include[p][id] {
				out.phases[p] = append(out.phases[p], members[id]...)
			}
		}
	}
	return out
}
