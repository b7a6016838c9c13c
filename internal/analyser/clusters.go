package analyser

import (
	"slices"
	"strings"
)

// cluster is a set of implicit equations solved together for as many
// unknowns.
type cluster struct {
	eqs      []*eqInfo
	unknowns []*Variable
}

// clusterImplicitEquations pairs the implicit equations with the variables
// nothing else computes. Equations sharing such a variable end up in the same
// cluster. Variables without an initial value are preferred; when a cluster
// has more equations than unknowns, initial-valued variables are promoted in
// declaration order and their initial value becomes the solver's first guess.
func (a *analysis) clusterImplicitEquations() {
	a.clusterOf = make(map[*Variable]*cluster)

	var implicit []*eqInfo
	for _, info := range a.eqs {
		if !info.dropped && info.form == formImplicit {
			implicit = append(implicit, info)
		}
	}
	if len(implicit) == 0 {
		return
	}

	candidates := make([][]*Variable, len(implicit))
	for i, info := range implicit {
		for _, v := range info.reads {
			if v != a.voi && a.definer[v] == nil && a.stateOf[v] == nil && !a.external[v] && v.Variable.InitialVariable() == nil {
				candidates[i] = append(candidates[i], v)
			}
		}
	}
	active := func(v *Variable) bool {
		return !v.Variable.HasInitialValue() || a.promoted[v]
	}

	var clusters []*cluster
	for {
		clusters = a.groupImplicit(implicit, candidates, active)
		promotedOne := false
		for _, cl := range clusters {
			if len(cl.eqs) <= len(cl.unknowns) {
				continue
			}
			var next *Variable
			for _, info := range cl.eqs {
				for _, v := range candidates[slices.Index(implicit, info)] {
					if !active(v) && (next == nil || v.decl < next.decl) {
						next = v
					}
				}
			}
			if next != nil {
				a.promoted[next] = true
				promotedOne = true
				break
			}
		}
		if !promotedOne {
			break
		}
	}

	for _, cl := range clusters {
		switch {
		case len(cl.eqs) == len(cl.unknowns):
			for _, u := range cl.unknowns {
				a.clusterOf[u] = cl
			}
			a.clusters = append(a.clusters, cl)
			continue
		case len(cl.eqs) > len(cl.unknowns):
			a.issue(Overconstrained, Error, nil, cl.eqs[0].src,
				"equations %s have %d unknown(s) for %d equation(s)", describeEquations(cl.eqs), len(cl.unknowns), len(cl.eqs))
		default:
			a.issue(Underconstrained, Error, nil, cl.eqs[0].src,
				"equations %s have %d unknown(s) for %d equation(s)", describeEquations(cl.eqs), len(cl.unknowns), len(cl.eqs))
		}
		for _, info := range cl.eqs {
			info.dropped = true
		}
		for _, u := range cl.unknowns {
			delete(a.promoted, u)
		}
	}
}

// groupImplicit unions implicit equations sharing an active candidate.
func (a *analysis) groupImplicit(implicit []*eqInfo, candidates [][]*Variable, active func(*Variable) bool) []*cluster {
	parent := make([]int, len(implicit))
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

	owner := make(map[*Variable]int)
	for i := range implicit {
		for _, v := range candidates[i] {
			if !active(v) {
				continue
			}
			if j, ok := owner[v]; ok {
				r1, r2 := find(i), find(j)
				parent[max(r1, r2)] = min(r1, r2)
			} else {
				owner[v] = i
			}
		}
	}

	byRoot := make(map[int]*cluster)
	var out []*cluster
	for i, info := range implicit {
		r := find(i)
		cl, ok := byRoot[r]
		if !ok {
			cl = &cluster{}
			byRoot[r] = cl
			out = append(out, cl)
		}
		cl.eqs = append(cl.eqs, info)
	}
	for _, cl := range out {
		seen := make(map[*Variable]bool)
		for _, info := range cl.eqs {
			for _, v := range candidates[slices.Index(implicit, info)] {
				if active(v) && !seen[v] {
					seen[v] = true
					cl.unknowns = append(cl.unknowns, v)
				}
			}
		}
	}
	return out
}

func describeEquations(eqs []*eqInfo) string {
	parts := make([]string, len(eqs))
	for i, info := range eqs {
		parts[i] = "'" + info.src.String() + "'"
	}
	return strings.Join(parts, ", ")
}
