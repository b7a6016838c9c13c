package testutil

import (
	"github.com/specialistvlad/eqgen/internal/ast"
	"github.com/specialistvlad/eqgen/internal/model"
	"github.com/specialistvlad/eqgen/internal/units"
)

// MillivoltUnits defines `millivolt` for models that need it.
var MillivoltUnits = units.Definition{
	Name:  "millivolt",
	Parts: []units.Part{{Units: "volt", Prefix: "milli"}},
}

// ScenarioA is `x = a` with a constant `a = 1.0`.
func ScenarioA() *model.Model {
	m := model.New("scenario_a")
	c := m.AddComponent("main")
	a := c.AddVariable("a", "dimensionless").SetInitialLiteral("1.0")
	x := c.AddVariable("x", "dimensionless")
	Eq(c, V(x), V(a))
	return m
}

// ScenarioB is a linear system of three equations over three unknowns that
// none of the equations isolates.
func ScenarioB() *model.Model {
	m := model.New("scenario_b")
	c := m.AddComponent("main")
	x := c.AddVariable("x", "dimensionless")
	y := c.AddVariable("y", "dimensionless")
	z := c.AddVariable("z", "dimensionless")

	// 2z+y-2x = -1
	Eq(c,
		Op(ast.Minus, Op(ast.Plus, Op(ast.Times, N("2.0"), V(z)), V(y)), Op(ast.Times, N("2.0"), V(x))),
		Neg(N("1.0")))
	// 3z-3y-x = 5
	Eq(c,
		Op(ast.Minus, Op(ast.Minus, Op(ast.Times, N("3.0"), V(z)), Op(ast.Times, N("3.0"), V(y))), V(x)),
		N("5.0"))
	// z-2y+3x = 6
	Eq(c,
		Op(ast.Plus, Op(ast.Minus, V(z), Op(ast.Times, N("2.0"), V(y))), Op(ast.Times, N("3.0"), V(x))),
		N("6.0"))
	return m
}

// ScenarioC integrates a state whose rate is an external variable, which an
// algebraic variable also reads.
func ScenarioC() *model.Model {
	m := model.New("scenario_c")
	c := m.AddComponent("main")
	t := c.AddVariable("t", "second")
	v := c.AddVariable("v", "dimensionless").SetInitialLiteral("0.0")
	i := c.AddVariable("i", "dimensionless").SetExternal(true)
	y := c.AddVariable("y", "dimensionless")
	Eq(c, Ode(v, t), V(i))
	Eq(c, V(y), Op(ast.Times, N("2.0"), V(i)))
	return m
}

// ScenarioD initialises a state in millivolt from a constant in volt.
func ScenarioD() *model.Model {
	m := model.New("scenario_d")
	m.AddUnits(MillivoltUnits)
	c := m.AddComponent("main")
	t := c.AddVariable("t", "second")
	k := c.AddVariable("k", "volt").SetInitialLiteral("1.5")
	v := c.AddVariable("v", "millivolt").SetInitialVariable(k)
	Eq(c, Ode(v, t), N("0.0"))
	return m
}

// ScenarioE has a computed constant only read by a rate equation.
func ScenarioE() *model.Model {
	m := model.New("scenario_e")
	c := m.AddComponent("main")
	t := c.AddVariable("t", "second")
	v := c.AddVariable("v", "dimensionless").SetInitialLiteral("0.0")
	a := c.AddVariable("a", "dimensionless").SetInitialLiteral("2.0")
	x := c.AddVariable("x", "dimensionless")
	Eq(c, V(x), Op(ast.Times, V(a), N("3.0")))
	Eq(c, Ode(v, t), V(x))
	return m
}

// Membrane is a small two-component cell model with a stimulus, a gate read
// through a connection in other units and a pair of implicit equations.
func Membrane() *model.Model {
	m := model.New("membrane")
	m.AddUnits(MillivoltUnits)

	mem := m.AddComponent("membrane")
	t := mem.AddVariable("t", "second")
	vm := mem.AddVariable("V", "volt").SetInitialLiteral("-0.075")
	cm := mem.AddVariable("Cm", "dimensionless").SetInitialLiteral("1.0")
	eR := mem.AddVariable("E_R", "volt").SetInitialLiteral("-0.075")
	eL := mem.AddVariable("E_L", "volt")
	gL := mem.AddVariable("g_L", "dimensionless").SetInitialLiteral("0.3")
	iL := mem.AddVariable("i_L", "volt")
	iStim := mem.AddVariable("i_Stim", "volt")

	Eq(mem, V(eL), Op(ast.Plus, V(eR), N("0.0106")))
	Eq(mem, V(iL), Op(ast.Times, V(gL), Op(ast.Minus, V(vm), V(eL))))
	Eq(mem, V(iStim), Piecewise(N("0.0"),
		Piece{Value: N("20.0"), Condition: Op(ast.And, Op(ast.Geq, V(t), N("10.0")), Op(ast.Leq, V(t), N("10.5")))},
	))
	Eq(mem, Ode(vm, t), Op(ast.Divide, Neg(Op(ast.Plus, V(iStim), V(iL))), V(cm)))

	gate := m.AddComponent("gate")
	gt := gate.AddVariable("t", "second")
	gv := gate.AddVariable("V", "millivolt")
	n := gate.AddVariable("n", "dimensionless").SetInitialLiteral("0.325")
	alpha := gate.AddVariable("alpha_n", "dimensionless")
	beta := gate.AddVariable("beta_n", "dimensionless")

	vPlus10 := Op(ast.Plus, V(gv), N("10.0"))
	Eq(gate, V(alpha), Op(ast.Divide,
		Op(ast.Times, N("0.01"), vPlus10),
		Op(ast.Minus, Fn(ast.Exp, Op(ast.Divide, vPlus10, N("10.0"))), N("1.0"))))
	Eq(gate, V(beta), Op(ast.Times, N("0.125"), Fn(ast.Exp, Op(ast.Divide, V(gv), N("80.0")))))
	Eq(gate, Ode(n, gt), Op(ast.Minus,
		Op(ast.Times, V(alpha), Op(ast.Minus, N("1.0"), V(n))),
		Op(ast.Times, V(beta), V(n))))

	sys := m.AddComponent("system")
	st := sys.AddVariable("t", "second")
	sn := sys.AddVariable("n", "dimensionless")
	p := sys.AddVariable("p", "dimensionless")
	q := sys.AddVariable("q", "dimensionless")
	Eq(sys, Op(ast.Plus, V(p), V(q)), Op(ast.Times, N("2.0"), V(sn)))
	Eq(sys, Op(ast.Minus, V(p), V(q)), Op(ast.Times, N("0.5"), V(st)))

	m.Connect(t, gt)
	m.Connect(vm, gv)
	m.Connect(t, st)
	m.Connect(n, sn)
	return m
}
