package analyser

import (
	"slices"

	"github.com/specialistvlad/eqgen/internal/graph"
)

// unit is what gets scheduled before equations are expanded: one explicit
// equation or one cluster of implicit equations.
type unit struct {
	id      int
	eqs     []*eqInfo
	defines []*Variable
	reads   []*Variable
	cluster bool
}

// nlaSet is a set of equations that becomes one NLA group.
type nlaSet struct {
	eqs      []*eqInfo
	unknowns map[*Variable]bool
}

// buildUnits turns explicit equations and clusters into schedulable units.
func (a *analysis) buildUnits() {
	a.definedBy = make(map[*Variable]*unit)

	for _, cl := range a.clusters {
		u := &unit{id: cl.eqs[0].pos, eqs: cl.eqs, defines: cl.unknowns, cluster: true}
		seen := make(map[*Variable]bool)
		for _, info := range cl.eqs {
			for _, r := range info.reads {
				if !seen[r] {
					seen[r] = true
					u.reads = append(u.reads, r)
				}
			}
		}
		a.units = append(a.units, u)
	}
	for _, info := range a.eqs {
		if info.dropped || (info.form != formIsolated && info.form != formReversed) {
			continue
		}
		if a.definer[info.defined] != info {
			continue
		}
		a.units = append(a.units, &unit{
			id:      info.pos,
			eqs:     []*eqInfo{info},
			defines: []*Variable{info.defined},
			reads:   info.reads,
		})
	}
	slices.SortFunc(a.units, func(x, y *unit) int { return x.id - y.id })

	for _, u := range a.units {
		for _, d := range u.defines {
			a.definedBy[d] = u
		}
	}
}

// classifyComputed finds the cycles between units, turns them into NLA groups
// where the solver can handle them, and decides whether each computed
// variable is a computed constant or an algebraic variable.
func (a *analysis) classifyComputed() {
	g := graph.New[int]()
	byID := make(map[int]*unit, len(a.units))
	for _, u := range a.units {
		g.AddNode(u.id)
		byID[u.id] = u
	}
	for _, u := range a.units {
		for _, r := range u.reads {
			if d := a.definedBy[r]; d != nil {
				_ = g.AddEdge(d.id, u.id)
			}
		}
	}

	sccs := g.StronglyConnectedComponents()
	component := make(map[int]int, len(a.units))
	condensed := graph.New[int]()
	for i, scc := range sccs {
		condensed.AddNode(i)
		for _, id := range scc {
			component[id] = i
		}
	}
	for _, u := range a.units {
		deps, _ := g.Dependencies(u.id)
		for _, d := range deps {
			if component[d] != component[u.id] {
				_ = condensed.AddEdge(component[d], component[u.id])
			}
		}
	}
	order, err := condensed.TopologicalSort()
	if err != nil {
		// The condensation of a graph is acyclic.
		panic(err)
	}

	for _, ci := range order {
		members := make([]*unit, len(sccs[ci]))
		inside := make(map[*Variable]bool)
		hasCluster := false
		for i, id := range sccs[ci] {
			members[i] = byID[id]
			hasCluster = hasCluster || members[i].cluster
			for _, d := range members[i].defines {
				inside[d] = true
			}
		}
		timeVarying := hasCluster
		for _, u := range members {
			for _, r := range u.reads {
				if !inside[r] && a.isTimeVarying(r) {
					timeVarying = true
				}
			}
		}

		switch {
		case hasCluster || (g.IsCyclic(sccs[ci]) && timeVarying):
			set := &nlaSet{unknowns: make(map[*Variable]bool)}
			for _, u := range members {
				set.eqs = append(set.eqs, u.eqs...)
				for _, d := range u.defines {
					set.unknowns[d] = true
					a.kinds[d] = Algebraic
				}
			}
			slices.SortFunc(set.eqs, func(x, y *eqInfo) int { return x.pos - y.pos })
			for _, info := range set.eqs {
				a.nlaOf[info] = set
			}
			a.nlaSets = append(a.nlaSets, set)
		case g.IsCyclic(sccs[ci]):
			var eqs []*eqInfo
			for _, u := range members {
				eqs = append(eqs, u.eqs...)
			}
			slices.SortFunc(eqs, func(x, y *eqInfo) int { return x.pos - y.pos })
			a.issue(Unsuitable, Error, nil, eqs[0].src,
				"equations %s form a cycle that only involves constants and cannot be solved", describeEquations(eqs))
			for _, u := range members {
				for _, d := range u.defines {
					a.kinds[d] = ComputedConstant
				}
				for _, info := range u.eqs {
					info.dropped = true
				}
			}
		default:
			kind := ComputedConstant
			if timeVarying {
				kind = Algebraic
			}
			for _, d := range members[0].defines {
				a.kinds[d] = kind
			}
		}
	}

	slices.SortFunc(a.nlaSets, func(x, y *nlaSet) int { return x.eqs[0].pos - y.eqs[0].pos })
	a.assignIndices()
}

// assignIndices copies the kinds onto the variables and numbers each kind in
// declaration order.
func (a *analysis) assignIndices() {
	counts := make(map[VariableKind]int)
	for _, v := range a.vars {
		k, ok := a.kinds[v]
		if !ok {
			k = Algebraic
		}
		v.Kind = k
		v.Index = counts[v.Kind]
		counts[v.Kind]++
	}
}
