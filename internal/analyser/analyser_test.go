package analyser

import (
	"errors"
	"testing"

	"github.com/specialistvlad/eqgen/internal/ast"
	"github.com/specialistvlad/eqgen/internal/model"
	. "github.com/specialistvlad/eqgen/internal/testutil"
	"github.com/specialistvlad/eqgen/internal/units"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func analyse(t *testing.T, m *model.Model, opts ...Options) *Model {
	t.Helper()
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}
	res := Analyse(Context(t), m, o)
	require.NotNil(t, res)
	return res
}

func requireClean(t *testing.T, res *Model) {
	t.Helper()
	require.NoError(t, res.Err())
	require.Empty(t, res.Warnings())
}

func variable(t *testing.T, res *Model, component, name string) *Variable {
	t.Helper()
	c := res.Source.Component(component)
	require.NotNil(t, c, "component %s", component)
	v := res.Variable(c.MustVariable(name))
	require.NotNil(t, v)
	return v
}

func names(eqs []*Equation) []string {
	out := make([]string, len(eqs))
	for i, e := range eqs {
		out[i] = e.String()
	}
	return out
}

func TestAnalyse_ScenarioA(t *testing.T) {
	// --- Arrange ---
	m := ScenarioA()

	// --- Act ---
	res := analyse(t, m)

	// --- Assert ---
	requireClean(t, res)
	a := variable(t, res, "main", "a")
	x := variable(t, res, "main", "x")
	assert.Equal(t, Constant, a.Kind)
	assert.Equal(t, 0, a.Index)
	assert.Equal(t, ComputedConstant, x.Kind)
	assert.Equal(t, 0, x.Index)
	assert.Nil(t, res.VOI)
	assert.False(t, res.HasStates())

	init := res.Ordering(Initialise)
	require.Len(t, init, 1)
	assert.Equal(t, ConstantInit, init[0].Type)
	assert.Same(t, a, init[0].Defined)

	ccs := res.Ordering(ComputeComputedConstants)
	require.Len(t, ccs, 1)
	assert.Equal(t, ComputedConstantEquation, ccs[0].Type)
	assert.Same(t, x, ccs[0].Defined)
	assert.Equal(t, []*Variable{a}, ccs[0].Dependencies)
	assert.Equal(t, 1.0, ccs[0].Scaling)
	assert.Equal(t, "x = a", ccs[0].Tree.Format(ccs[0].Root))

	assert.Empty(t, res.Ordering(ComputeRates))
	assert.Empty(t, res.Ordering(ComputeVariables))
}

func TestAnalyse_ScenarioB(t *testing.T) {
	// --- Arrange ---
	m := ScenarioB()

	// --- Act ---
	res := analyse(t, m)

	// --- Assert ---
	requireClean(t, res)
	require.Len(t, res.Groups, 1)
	g := res.Groups[0]
	assert.Equal(t, 0, g.ID)
	require.Len(t, g.Equations, 3)
	for _, e := range g.Equations {
		assert.Equal(t, NLAResidual, e.Type)
		assert.Nil(t, e.Defined)
		assert.Same(t, g, e.Group)
		assert.Equal(t, ast.Minus, e.Tree.Kind(e.Root))
	}
	// First encounter over the first equation: 2z + y - 2x.
	require.Len(t, g.Unknowns, 3)
	assert.Equal(t, "z", g.Unknowns[0].Name())
	assert.Equal(t, "y", g.Unknowns[1].Name())
	assert.Equal(t, "x", g.Unknowns[2].Name())

	for _, name := range []string{"x", "y", "z"} {
		assert.Equal(t, Algebraic, variable(t, res, "main", name).Kind, name)
	}

	guesses := res.Ordering(Initialise)
	require.Len(t, guesses, 3)
	for _, e := range guesses {
		assert.Equal(t, InitialGuess, e.Type)
		assert.Equal(t, "0.0", e.Tree.Node(e.Tree.Right(e.Root)).(ast.CnNode).Literal)
	}
	assert.Equal(t, g.Equations, res.Ordering(ComputeVariables))
}

func TestAnalyse_ScenarioC(t *testing.T) {
	// --- Arrange ---
	m := ScenarioC()

	// --- Act ---
	res := analyse(t, m)

	// --- Assert ---
	requireClean(t, res)
	i := variable(t, res, "main", "i")
	assert.Equal(t, External, i.Kind)
	assert.True(t, res.HasExternals())
	assert.Equal(t, VOI, variable(t, res, "main", "t").Kind)
	assert.Equal(t, State, variable(t, res, "main", "v").Kind)

	for _, e := range res.Equations {
		if e.Defined == i {
			assert.Equal(t, ExternalFetch, e.Type, "only the fetch may compute %s", i)
		}
	}

	for _, p := range []Phase{ComputeRates, ComputeVariables} {
		eqs := res.Ordering(p)
		require.NotEmpty(t, eqs, p.String())
		assert.Equal(t, ExternalFetch, eqs[0].Type, "%s fetches first", p)
	}
	rates := res.Ordering(ComputeRates)
	require.Len(t, rates, 2)
	assert.Equal(t, RateEquation, rates[1].Type)
}

func TestAnalyse_ScenarioD(t *testing.T) {
	// --- Arrange ---
	m := ScenarioD()

	// --- Act ---
	res := analyse(t, m)

	// --- Assert ---
	requireClean(t, res)
	k := variable(t, res, "main", "k")
	v := variable(t, res, "main", "v")
	assert.Equal(t, Constant, k.Kind)
	assert.Equal(t, State, v.Kind)

	var stateInit *Equation
	for _, e := range res.Ordering(Initialise) {
		if e.Type == StateInit {
			stateInit = e
		}
	}
	require.NotNil(t, stateInit)
	assert.Equal(t, "v = k", stateInit.Tree.Format(stateInit.Root))
	assert.Equal(t, 1000.0, stateInit.Scaling)
	assert.Equal(t, []*Variable{k}, stateInit.Dependencies)
	// The reference is to the primary, so no second factor applies.
	assert.Equal(t, 1.0, k.Scaling(k.Variable))
}

func TestAnalyse_ScenarioE(t *testing.T) {
	// --- Arrange ---
	m := ScenarioE()

	// --- Act ---
	res := analyse(t, m)

	// --- Assert ---
	requireClean(t, res)
	x := variable(t, res, "main", "x")
	require.Equal(t, ComputedConstant, x.Kind)

	definesX := func(eqs []*Equation) bool {
		for _, e := range eqs {
			if e.Defined == x {
				return true
			}
		}
		return false
	}
	assert.True(t, definesX(res.Ordering(ComputeComputedConstants)))
	assert.True(t, definesX(res.Ordering(ComputeRates)))
	assert.True(t, definesX(res.Ordering(ComputeVariables)))
	assert.False(t, definesX(res.Ordering(Initialise)))

	rates := res.Ordering(ComputeRates)
	require.Len(t, rates, 2)
	assert.Same(t, x, rates[0].Defined)
	assert.Equal(t, RateEquation, rates[1].Type)
}

func TestAnalyse_Membrane(t *testing.T) {
	// --- Arrange ---
	m := Membrane()

	// --- Act ---
	res := analyse(t, m)

	// --- Assert ---
	requireClean(t, res)

	kinds := map[string]VariableKind{
		"membrane.t": VOI, "membrane.V": State, "gate.n": State,
		"membrane.Cm": Constant, "membrane.E_R": Constant, "membrane.g_L": Constant,
		"membrane.E_L": ComputedConstant,
		"membrane.i_L": Algebraic, "membrane.i_Stim": Algebraic,
		"gate.alpha_n": Algebraic, "gate.beta_n": Algebraic,
		"system.p": Algebraic, "system.q": Algebraic,
	}
	require.Len(t, res.Variables, len(kinds))
	for _, v := range res.Variables {
		assert.Equal(t, kinds[v.String()], v.Kind, v.String())
	}
	assert.Len(t, res.States, 2)
	assert.Len(t, res.Constants, 3)
	assert.Len(t, res.Algebraic, 6)

	gv := res.Source.Component("gate").MustVariable("V")
	vm := res.Variable(gv)
	assert.Equal(t, "membrane.V", vm.String())
	assert.Equal(t, 1000.0, vm.Scaling(gv))
	assert.Len(t, vm.Equivalents, 2)

	require.Len(t, res.Groups, 1)
	assert.Equal(t, []string{"p", "q"}, []string{res.Groups[0].Unknowns[0].Name(), res.Groups[0].Unknowns[1].Name()})

	assert.Equal(t, []EquationType{ConstantInit, ConstantInit, ConstantInit, StateInit, StateInit, InitialGuess, InitialGuess},
		types(res.Ordering(Initialise)))
	assert.Equal(t, []EquationType{ComputedConstantEquation}, types(res.Ordering(ComputeComputedConstants)))
	assert.Equal(t, []EquationType{
		ComputedConstantEquation, AlgebraicEquation, AlgebraicEquation, RateEquation,
		AlgebraicEquation, AlgebraicEquation, RateEquation,
	}, types(res.Ordering(ComputeRates)))
	assert.Equal(t, []EquationType{
		ComputedConstantEquation, AlgebraicEquation, AlgebraicEquation,
		AlgebraicEquation, AlgebraicEquation, NLAResidual, NLAResidual,
	}, types(res.Ordering(ComputeVariables)))
}

func types(eqs []*Equation) []EquationType {
	out := make([]EquationType, len(eqs))
	for i, e := range eqs {
		out[i] = e.Type
	}
	return out
}

func TestAnalyse_ClassificationTotality(t *testing.T) {
	fixtures := map[string]func() *model.Model{
		"A": ScenarioA, "B": ScenarioB, "C": ScenarioC, "D": ScenarioD, "E": ScenarioE, "membrane": Membrane,
	}
	for name, build := range fixtures {
		t.Run(name, func(t *testing.T) {
			res := analyse(t, build())

			counts := map[VariableKind]int{}
			for _, v := range res.Variables {
				counts[v.Kind]++
				assert.Same(t, v, res.VariablesOfKind(v.Kind)[v.Index], v.String())
			}
			total := 0
			for _, k := range []VariableKind{VOI, State, Constant, ComputedConstant, Algebraic, External} {
				assert.Len(t, res.VariablesOfKind(k), counts[k], k.String())
				total += counts[k]
			}
			assert.Equal(t, len(res.Variables), total)
		})
	}
}

func TestAnalyse_TopologicalCorrectness(t *testing.T) {
	res := analyse(t, Membrane())
	requireClean(t, res)

	pos := make(map[*Equation]int)
	definer := make(map[*Variable]*Equation)
	for i, e := range res.Equations {
		pos[e] = i
		switch {
		case e.Type == InitialGuess || e.Type == RateEquation:
		case e.Group != nil:
			for _, u := range e.Group.Unknowns {
				definer[u] = e.Group.Equations[0]
			}
		case e.Defined != nil:
			definer[e.Defined] = e
		}
	}

	for _, e := range res.Equations {
		for _, d := range e.Dependencies {
			def, ok := definer[d]
			if !ok || (e.Group != nil && def.Group == e.Group) {
				continue
			}
			assert.Less(t, pos[def], pos[e], "%s must come after %s", e, def)
		}
	}

	// Members of a group are contiguous and belong to a single group.
	for _, g := range res.Groups {
		first := pos[g.Equations[0]]
		for i, e := range g.Equations {
			assert.Equal(t, first+i, pos[e])
		}
	}
}

func TestAnalyse_Deterministic(t *testing.T) {
	m := Membrane()

	first := analyse(t, m)
	second := analyse(t, m)

	assert.Equal(t, names(first.Equations), names(second.Equations))
	for _, p := range Phases {
		assert.Equal(t, names(first.Ordering(p)), names(second.Ordering(p)), p.String())
	}
}

func TestAnalyse_Issues(t *testing.T) {
	testCases := []struct {
		name     string
		build    func() *model.Model
		opts     Options
		kind     IssueKind
		severity Severity
		contains string
	}{
		{
			name: "variable computed twice",
			build: func() *model.Model {
				m := model.New("m")
				c := m.AddComponent("main")
				a := c.AddVariable("a", "").SetInitialLiteral("1.0")
				x := c.AddVariable("x", "")
				Eq(c, V(x), V(a))
				Eq(c, V(x), Op(ast.Plus, V(a), N("1.0")))
				return m
			},
			kind:     Overconstrained,
			severity: Error,
			contains: "already computed",
		},
		{
			name: "variable read but never computed",
			build: func() *model.Model {
				m := model.New("m")
				c := m.AddComponent("main")
				x := c.AddVariable("x", "")
				y := c.AddVariable("y", "")
				Eq(c, V(x), V(y))
				return m
			},
			kind:     Underconstrained,
			severity: Error,
			contains: "'main.y' is not computed",
		},
		{
			name: "cycle between constants",
			build: func() *model.Model {
				m := model.New("m")
				c := m.AddComponent("main")
				x := c.AddVariable("x", "")
				y := c.AddVariable("y", "")
				Eq(c, V(x), Op(ast.Plus, V(y), N("1.0")))
				Eq(c, V(y), Op(ast.Times, V(x), N("2.0")))
				return m
			},
			kind:     Unsuitable,
			severity: Error,
			contains: "only involves constants",
		},
		{
			name: "units that cannot be converted",
			build: func() *model.Model {
				m := model.New("m")
				c1 := m.AddComponent("c1")
				c2 := m.AddComponent("c2")
				a := c1.AddVariable("a", "volt").SetInitialLiteral("1.0")
				b := c2.AddVariable("b", "second")
				m.Connect(a, b)
				return m
			},
			kind:     UnitsMismatch,
			severity: Error,
			contains: "cannot be converted",
		},
		{
			name: "scaling that is not a power of ten",
			build: func() *model.Model {
				m := model.New("m")
				c1 := m.AddComponent("c1")
				c2 := m.AddComponent("c2")
				a := c1.AddVariable("a", "metre").SetInitialLiteral("1.0")
				b := c2.AddVariable("b", "foot")
				m.AddUnits(units3Feet())
				m.Connect(a, b)
				return m
			},
			kind:     UnitsMismatch,
			severity: Warning,
			contains: "not a power of ten",
		},
		{
			name: "two variables of integration",
			build: func() *model.Model {
				m := model.New("m")
				c := m.AddComponent("main")
				t1 := c.AddVariable("t", "second")
				s := c.AddVariable("s", "second")
				v := c.AddVariable("v", "").SetInitialLiteral("0.0")
				w := c.AddVariable("w", "").SetInitialLiteral("0.0")
				Eq(c, Ode(v, t1), N("1.0"))
				Eq(c, Ode(w, s), N("1.0"))
				return m
			},
			kind:     Unsupported,
			severity: Error,
			contains: "second variable of integration",
		},
		{
			name: "derivative on a right-hand side",
			build: func() *model.Model {
				m := model.New("m")
				c := m.AddComponent("main")
				t1 := c.AddVariable("t", "second")
				v := c.AddVariable("v", "").SetInitialLiteral("0.0")
				x := c.AddVariable("x", "")
				Eq(c, V(x), Ode(v, t1))
				return m
			},
			kind:     Unsupported,
			severity: Error,
			contains: "derivative may only appear",
		},
		{
			name: "state without an initial value",
			build: func() *model.Model {
				m := model.New("m")
				c := m.AddComponent("main")
				t1 := c.AddVariable("t", "second")
				v := c.AddVariable("v", "")
				Eq(c, Ode(v, t1), N("1.0"))
				return m
			},
			kind:     Underconstrained,
			severity: Error,
			contains: "has no initial value",
		},
		{
			name:     "unknown external option",
			build:    ScenarioA,
			opts:     Options{Externals: []string{"main.nope"}},
			kind:     Unsupported,
			severity: Warning,
			contains: "no such variable",
		},
		{
			name: "invalid model",
			build: func() *model.Model {
				m := model.New("m")
				m.AddComponent("main")
				m.AddComponent("main")
				return m
			},
			kind:     Unsupported,
			severity: Error,
			contains: "declared more than once",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// --- Act ---
			res := analyse(t, tc.build(), tc.opts)

			// --- Assert ---
			var found *Issue
			for i := range res.Issues {
				if res.Issues[i].Kind == tc.kind && res.Issues[i].Severity == tc.severity {
					found = &res.Issues[i]
				}
			}
			require.NotNil(t, found, "issues: %v", res.Issues)
			assert.Contains(t, found.Message, tc.contains)
			if tc.severity == Error {
				assert.True(t, res.HasErrors())
				assert.True(t, errors.Is(res.Err(), tc.kind.sentinel()))
			}
		})
	}
}

func units3Feet() units.Definition {
	return units.Definition{Name: "foot", Parts: []units.Part{{Units: "metre", Multiplier: 0.3048}}}
}

func TestAnalyse_ExternalFromOptions(t *testing.T) {
	// --- Arrange ---
	m := model.New("m")
	c := m.AddComponent("main")
	i := c.AddVariable("i", "")
	y := c.AddVariable("y", "")
	Eq(c, V(y), Op(ast.Times, N("2.0"), V(i)))

	// --- Act ---
	res := analyse(t, m, Options{Externals: []string{"main.i"}})

	// --- Assert ---
	requireClean(t, res)
	assert.Equal(t, External, variable(t, res, "main", "i").Kind)
	assert.Equal(t, Algebraic, variable(t, res, "main", "y").Kind)
	assert.Equal(t, []EquationType{ExternalFetch, AlgebraicEquation}, types(res.Ordering(ComputeVariables)))
}

func TestAnalyse_PromotesInitialisedVariableInImplicitEquation(t *testing.T) {
	// --- Arrange ---
	m := model.New("m")
	c := m.AddComponent("main")
	a := c.AddVariable("a", "").SetInitialLiteral("1.0")
	b := c.AddVariable("b", "").SetInitialLiteral("2.0")
	Eq(c, Op(ast.Plus, Op(ast.Times, V(a), V(a)), V(b)), N("10.0"))

	// --- Act ---
	res := analyse(t, m)

	// --- Assert ---
	requireClean(t, res)
	av := variable(t, res, "main", "a")
	assert.Equal(t, Algebraic, av.Kind)
	assert.Equal(t, Constant, variable(t, res, "main", "b").Kind)
	require.Len(t, res.Groups, 1)
	assert.Equal(t, []*Variable{av}, res.Groups[0].Unknowns)

	init := res.Ordering(Initialise)
	var guess *Equation
	for _, e := range init {
		if e.Type == InitialGuess {
			guess = e
		}
	}
	require.NotNil(t, guess)
	assert.Same(t, av, guess.Defined)
	assert.Equal(t, "a = 1.0", guess.Tree.Format(guess.Root))
}

func TestAnalyse_ReversedEquation(t *testing.T) {
	// --- Arrange ---
	m := model.New("m")
	c := m.AddComponent("main")
	a := c.AddVariable("a", "").SetInitialLiteral("3.0")
	x := c.AddVariable("x", "")
	Eq(c, Op(ast.Times, N("2.0"), V(a)), V(x))

	// --- Act ---
	res := analyse(t, m)

	// --- Assert ---
	requireClean(t, res)
	eqs := res.Ordering(ComputeComputedConstants)
	require.Len(t, eqs, 1)
	assert.Equal(t, "x = (2.0*a)", eqs[0].Tree.Format(eqs[0].Root))
	// The source tree is untouched.
	assert.Equal(t, "(2.0*a) = x", eqs[0].Source.Tree.Format(eqs[0].Source.Root))
}

func TestAnalyse_FixedLoneVariableMakesEquationImplicit(t *testing.T) {
	testCases := []struct {
		name  string
		first func(c *model.Component, cv, x, y *model.Variable)
	}{
		{
			name: "reversed",
			first: func(c *model.Component, cv, x, y *model.Variable) {
				Eq(c, Op(ast.Plus, V(x), V(y)), V(cv))
			},
		},
		{
			name: "isolated",
			first: func(c *model.Component, cv, x, y *model.Variable) {
				Eq(c, V(cv), Op(ast.Plus, V(x), V(y)))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// --- Arrange ---
			m := model.New("m")
			c := m.AddComponent("main")
			cv := c.AddVariable("c", "").SetInitialLiteral("3.0")
			x := c.AddVariable("x", "")
			y := c.AddVariable("y", "")
			tc.first(c, cv, x, y)
			Eq(c, Op(ast.Minus, V(x), V(y)), N("1.0"))

			// --- Act ---
			res := analyse(t, m)

			// --- Assert ---
			requireClean(t, res)
			assert.Equal(t, Constant, variable(t, res, "main", "c").Kind)
			require.Len(t, res.Groups, 1)
			g := res.Groups[0]
			assert.Len(t, g.Equations, 2)
			assert.Equal(t, []*Variable{variable(t, res, "main", "x"), variable(t, res, "main", "y")}, g.Unknowns)
		})
	}
}

func TestAnalyse_AlgebraicLoopBecomesGroup(t *testing.T) {
	// --- Arrange ---
	m := model.New("m")
	c := m.AddComponent("main")
	tv := c.AddVariable("t", "second")
	v := c.AddVariable("v", "").SetInitialLiteral("1.0")
	x := c.AddVariable("x", "")
	y := c.AddVariable("y", "")
	Eq(c, V(x), Op(ast.Plus, V(y), V(v)))
	Eq(c, V(y), Op(ast.Times, V(x), N("0.5")))
	Eq(c, Ode(v, tv), V(x))

	// --- Act ---
	res := analyse(t, m)

	// --- Assert ---
	requireClean(t, res)
	require.Len(t, res.Groups, 1)
	g := res.Groups[0]
	assert.Len(t, g.Equations, 2)
	assert.Equal(t, "x", g.Unknowns[0].Name())
	assert.Equal(t, "y", g.Unknowns[1].Name())

	rates := res.Ordering(ComputeRates)
	assert.Equal(t, []EquationType{NLAResidual, NLAResidual, RateEquation}, types(rates))
}

func TestAnalyse_NilModelPanics(t *testing.T) {
	assert.Panics(t, func() { Analyse(Context(t), nil, Options{}) })
}
