package analyser

import (
	"slices"

	"github.com/specialistvlad/eqgen/internal/model"
	"github.com/specialistvlad/eqgen/internal/units"
	"github.com/specialistvlad/eqgen/internal/varid"
)

// buildEquivalences merges connected variables into analyser variables and
// computes the scaling of every equivalent relative to the primary.
func (a *analysis) buildEquivalences() {
	all := a.src.Variables()
	decl := make(map[*model.Variable]int, len(all))
	for i, v := range all {
		decl[v] = i
	}

	parent := make([]int, len(all))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		if parent[i] != i {
			parent[i] = find(parent[i])
		}
		return parent[i]
	}
	for _, c := range a.src.Connections {
		r1, r2 := find(decl[c.First]), find(decl[c.Second])
		if r1 != r2 {
			parent[max(r1, r2)] = min(r1, r2)
		}
	}

	var roots []int
	buckets := make(map[int][]*model.Variable)
	for i, v := range all {
		r := find(i)
		if _, ok := buckets[r]; !ok {
			roots = append(roots, r)
		}
		buckets[r] = append(buckets[r], v)
	}

	for _, r := range roots {
		members := buckets[r]
		primary := members[0]
		var initialised []*model.Variable
		for _, mv := range members {
			if mv.HasInitialValue() {
				initialised = append(initialised, mv)
			}
		}
		if len(initialised) > 0 {
			primary = initialised[0]
		}
		for _, extra := range initialised[min(1, len(initialised)):] {
			a.issue(Overconstrained, Error, extra, nil,
				"variable '%s' has an initial value but is equivalent to '%s', which also has one",
				extra.QualifiedName(), primary.QualifiedName())
		}

		v := &Variable{
			Variable:     primary,
			Equivalents:  members,
			InitialValue: primary.InitialValue(),
			Initialiser:  primary.InitialVariable(),
			scaling:      make(map[*model.Variable]float64),
			decl:         decl[primary],
		}
		for _, mv := range members {
			a.byModel[mv] = v
			if _, err := a.cat.Lookup(mv.Units()); err != nil {
				a.issue(UnitsMismatch, Error, mv, nil, "variable '%s': %v", mv.QualifiedName(), err)
				continue
			}
			if mv == primary {
				continue
			}
			f, err := a.cat.Factor(primary.Units(), mv.Units())
			if err != nil {
				a.issue(UnitsMismatch, Error, mv, nil,
					"variable '%s' is equivalent to '%s' but their units cannot be converted: %v",
					mv.QualifiedName(), primary.QualifiedName(), err)
				continue
			}
			if _, ok := units.PowerOfTen(f); !ok {
				a.issue(UnitsMismatch, Warning, mv, nil,
					"variable '%s' is equivalent to '%s' with a scaling factor of %g, which is not a power of ten",
					mv.QualifiedName(), primary.QualifiedName(), f)
			}
			if !units.IsUnity(f) {
				v.scaling[mv] = f
			}
		}
		a.vars = append(a.vars, v)
	}

	slices.SortFunc(a.vars, func(x, y *Variable) int { return x.decl - y.decl })
}

// applyExternalOptions records which variables the host application supplies.
func (a *analysis) applyExternalOptions() {
	a.external = make(map[*Variable]bool)
	for _, v := range a.vars {
		for _, mv := range v.Equivalents {
			if mv.External() {
				a.external[v] = true
			}
		}
	}
	for _, name := range a.opts.Externals {
		addr, err := varid.Parse(name)
		if err != nil {
			a.issue(Unsupported, Warning, nil, nil, "external '%s' ignored: %v", name, err)
			continue
		}
		c := a.src.Component(addr.Component)
		var mv *model.Variable
		if c != nil {
			mv = c.Variable(addr.Variable)
		}
		if mv == nil {
			a.issue(Unsupported, Warning, nil, nil, "external '%s' ignored: no such variable", name)
			continue
		}
		a.external[a.byModel[mv]] = true
	}
}

// classifyUndefined settles the variables no equation computes, along with the
// variable of integration and the states.
func (a *analysis) classifyUndefined() {
	for _, v := range a.vars {
		mv := v.Variable
		switch {
		case v == a.voi:
			a.kinds[v] = VOI
			if a.external[v] {
				a.issue(Unsupported, Warning, mv, nil,
					"variable '%s' is the variable of integration and cannot be external", mv.QualifiedName())
			}
		case a.stateOf[v] != nil:
			a.kinds[v] = State
			if a.external[v] {
				a.issue(Unsupported, Warning, mv, nil,
					"variable '%s' is a state and cannot be external", mv.QualifiedName())
			}
			if !mv.HasInitialValue() {
				a.issue(Underconstrained, Error, mv, nil,
					"state '%s' has no initial value", mv.QualifiedName())
			}
		case a.definer[v] != nil || a.clusterOf[v] != nil:
			// Computed; the kind depends on the ordering.
		case mv.InitialVariable() != nil:
			a.kinds[v] = Constant
			a.issue(Unsupported, Error, mv, nil,
				"variable '%s' is initialised from '%s' but only states may be initialised from another variable",
				mv.QualifiedName(), mv.InitialVariable().QualifiedName())
		case mv.HasInitialValue():
			a.kinds[v] = Constant
			if a.external[v] {
				a.issue(Unsupported, Warning, mv, nil,
					"variable '%s' is external but has an initial value; it is treated as a constant", mv.QualifiedName())
			}
		case a.external[v]:
			a.kinds[v] = External
		default:
			a.kinds[v] = Algebraic
			a.issue(Underconstrained, Error, mv, nil,
				"variable '%s' is not computed, not initialised and not external", mv.QualifiedName())
		}
	}
}

// isTimeVarying reports whether the value of v may change with the variable
// of integration, as far as it is already known.
func (a *analysis) isTimeVarying(v *Variable) bool {
	k, ok := a.kinds[v]
	if !ok {
		return false
	}
	switch k {
	case VOI, State, External, Algebraic:
		return true
	}
	return false
}
