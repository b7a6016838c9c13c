package analyser

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/specialistvlad/eqgen/internal/ctxlog"
	"github.com/specialistvlad/eqgen/internal/model"
	"github.com/specialistvlad/eqgen/internal/units"
)

// Options tune an analysis.
type Options struct {
	// Externals names variables (`component.variable`) supplied by the host
	// application, in addition to those flagged in the model.
	Externals []string
}

// analysis carries the state of one Analyse call between passes.
type analysis struct {
	logger *slog.Logger
	src    *model.Model
	opts   Options
	cat    *units.Catalogue

	vars    []*Variable
	byModel map[*model.Variable]*Variable
	voi     *Variable

	external map[*Variable]bool

	eqs []*eqInfo
	// definer maps a variable to the explicit equation computing it, stateOf
	// a state to its rate equation.
	definer map[*Variable]*eqInfo
	stateOf map[*Variable]*eqInfo

	clusters  []*cluster
	clusterOf map[*Variable]*cluster
	// promoted holds the initial-valued variables turned into NLA unknowns.
	promoted map[*Variable]bool

	units []*unit
	// definedBy maps a variable to the unit computing it.
	definedBy map[*Variable]*unit
	kinds     map[*Variable]VariableKind
	nlaSets   []*nlaSet
	nlaOf     map[*eqInfo]*nlaSet
	groups    []*Group

	issues []Issue
}

// Analyse classifies the variables of m, orders its equations and isolates
// the nonlinear systems. Problems are reported as issues on the result, which
// is returned even when it has errors. A nil model panics.
func Analyse(ctx context.Context, m *model.Model, opts Options) *Model {
	if m == nil {
		panic("analyser: nil model")
	}
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Analysis started.", "model", m.Name)

	a := &analysis{
		logger:    logger,
		src:       m,
		opts:      opts,
		cat:       units.New(),
		byModel:   make(map[*model.Variable]*Variable),
		definedBy: make(map[*Variable]*unit),
		kinds:     make(map[*Variable]VariableKind),
		promoted:  make(map[*Variable]bool),
		nlaOf:     make(map[*eqInfo]*nlaSet),
		external:  make(map[*Variable]bool),
		definer:   make(map[*Variable]*eqInfo),
		stateOf:   make(map[*Variable]*eqInfo),
		clusterOf: make(map[*Variable]*cluster),
	}

	if err := m.Validate(); err != nil {
		a.issue(Unsupported, Error, nil, nil, "%v", err)
		return a.result(nil)
	}
	if err := a.cat.Define(m.Units...); err != nil {
		a.issue(Unsupported, Error, nil, nil, "units: %v", err)
	}

	passes := []struct {
		name string
		run  func()
	}{
		{"equivalences", a.buildEquivalences},
		{"externals", a.applyExternalOptions},
		{"equations", a.inspectEquations},
		{"forms", a.settleForms},
		{"definitions", a.checkDefinitions},
		{"clusters", a.clusterImplicitEquations},
		{"variables", a.classifyUndefined},
		{"units", a.buildUnits},
		{"ordering", a.classifyComputed},
	}
	for _, p := range passes {
		p.run()
		logger.Debug("Analysis pass finished.", "pass", p.name, "issues", len(a.issues))
	}

	result := a.result(a.buildEquations())
	logger.Info("Analysis finished.",
		"model", m.Name,
		"variables", len(result.Variables),
		"equations", len(result.Equations),
		"nla_groups", len(result.Groups),
		"issues", len(result.Issues),
	)
	for _, i := range result.Issues {
		logger.Warn("Analysis issue.", "kind", i.Kind.String(), "severity", i.Severity.String(), "message", i.Message)
	}
	return result
}

func (a *analysis) issue(kind IssueKind, sev Severity, v *model.Variable, eq *model.Equation, format string, args ...any) {
	a.issues = append(a.issues, Issue{
		Kind:     kind,
		Severity: sev,
		Message:  fmt.Sprintf(format, args...),
		Variable: v,
		Equation: eq,
	})
}

func (a *analysis) result(eqs *ordering) *Model {
	res := &Model{
		Source:    a.src,
		Issues:    a.issues,
		Groups:    a.groups,
		byModel:   a.byModel,
		orderings: make(map[Phase][]*Equation),
		Variables: a.vars,
	}
	for _, v := range a.vars {
		switch v.Kind {
		case VOI:
			res.VOI = v
		case State:
			res.States = append(res.States, v)
		case Constant:
			res.Constants = append(res.Constants, v)
		case ComputedConstant:
			res.ComputedConstants = append(res.ComputedConstants, v)
		case Algebraic:
			res.Algebraic = append(res.Algebraic, v)
		case External:
			res.Externals = append(res.Externals, v)
		}
	}
	if eqs != nil {
		res.Equations = eqs.all
		res.orderings = eqs.phases
	}
	return res
}
