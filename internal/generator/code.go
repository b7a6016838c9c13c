package generator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/specialistvlad/eqgen/internal/analyser"
	"github.com/specialistvlad/eqgen/internal/ast"
	"github.com/specialistvlad/eqgen/internal/profile"
)

// param is a parameter of a generated function.
type param struct {
	name  string
	array bool
}

func (g *generator) parameter(p param) string {
	tmpl := g.p.DoubleParameter
	if p.array {
		tmpl = g.p.ArrayParameter
	}
	return fill(tmpl, "[NAME]", p.name)
}

func (g *generator) parameters(ps []param, callback bool) string {
	out := make([]string, 0, len(ps)+1)
	for _, p := range ps {
		out = append(out, g.parameter(p))
	}
	if callback {
		out = append(out, g.p.CallbackParameter)
	}
	return strings.Join(out, ", ")
}

func arguments(ps []param) string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.name
	}
	return strings.Join(out, ", ")
}

// dataParams are the values any equation may read.
func (g *generator) dataParams() []param {
	var ps []param
	if g.m.HasStates() {
		ps = append(ps,
			param{name: g.p.VOI},
			param{name: g.p.StatesArray, array: true},
			param{name: g.p.RatesArray, array: true})
	}
	ps = append(ps,
		param{name: g.p.ConstantsArray, array: true},
		param{name: g.p.ComputedConstantsArray, array: true},
		param{name: g.p.AlgebraicArray, array: true})
	if g.m.HasExternals() {
		ps = append(ps, param{name: g.p.ExternalsArray, array: true})
	}
	return ps
}

func (g *generator) initialiseParams() []param {
	var ps []param
	if g.m.HasStates() {
		ps = append(ps,
			param{name: g.p.StatesArray, array: true},
			param{name: g.p.RatesArray, array: true})
	}
	return append(ps,
		param{name: g.p.ConstantsArray, array: true},
		param{name: g.p.ComputedConstantsArray, array: true},
		param{name: g.p.AlgebraicArray, array: true})
}

func (g *generator) computedConstantsParams() []param {
	return []param{
		{name: g.p.ConstantsArray, array: true},
		{name: g.p.ComputedConstantsArray, array: true},
	}
}

func index(array string, i int) string {
	return array + "[" + strconv.Itoa(i) + "]"
}

// plain renders where a variable is stored, without any scaling.
func (g *generator) plain(v *analyser.Variable) string {
	switch v.Kind {
	case analyser.VOI:
		return g.p.VOI
	case analyser.State:
		return index(g.p.StatesArray, v.Index)
	case analyser.Constant:
		return index(g.p.ConstantsArray, v.Index)
	case analyser.ComputedConstant:
		return index(g.p.ComputedConstantsArray, v.Index)
	case analyser.Algebraic:
		return index(g.p.AlgebraicArray, v.Index)
	case analyser.External:
		return index(g.p.ExternalsArray, v.Index)
	}
	panic(fmt.Sprintf("generator: unexpected variable kind %s", v.Kind))
}

// rate renders the rate of the state referenced at id.
func (g *generator) rate(t *ast.Tree, id ast.NodeID) string {
	ci, ok := t.Node(id).(ast.CiNode)
	if !ok {
		panic(fmt.Sprintf("generator: derivative of a %s node", t.Kind(id)))
	}
	return index(g.p.RatesArray, g.m.Variable(g.modelVariable(ci.Variable)).Index)
}

// target renders the left-hand side of an assignment.
func (g *generator) target(t *ast.Tree, id ast.NodeID) string {
	switch n := t.Node(id).(type) {
	case ast.CiNode:
		return g.plain(g.m.Variable(g.modelVariable(n.Variable)))
	case ast.BinaryNode:
		if n.Of == ast.Diff {
			return g.rate(t, n.Right)
		}
	}
	panic(fmt.Sprintf("generator: cannot assign to a %s node", t.Kind(id)))
}

// rhs renders the right-hand side of an equation with its scaling.
func (g *generator) rhs(e *analyser.Equation) string {
	c := g.expr(e.Tree, e.Tree.Right(e.Root))
	if e.Scaling == 1 || e.Scaling == 0 {
		return c.text
	}
	text := c.text
	if c.prec < precMultiplicative {
		text = c.parens()
	}
	return text + g.p.Times + g.factor(e.Scaling)
}

// statement renders one equation of a phase. Only the first member of an NLA
// group produces a statement: the call to the group's driver.
func (g *generator) statement(e *analyser.Equation) (string, bool) {
	switch {
	case e.Type == analyser.ExternalFetch:
		call := fill(g.p.ExternalVariableCallback,
			"[ARGUMENTS]", arguments(g.dataParams()),
			"[INDEX]", strconv.Itoa(e.Defined.Index))
		return g.plain(e.Defined) + g.p.Assignment + call, true
	case e.Group != nil:
		if e.Group.Equations[0] != e {
			return "", false
		}
		return fill(g.p.FindRootCall,
			"[INDEX]", strconv.Itoa(e.Group.ID),
			"[ARGUMENTS]", arguments(g.dataParams())), true
	}
	return g.target(e.Tree, e.Tree.Left(e.Root)) + g.p.Assignment + g.rhs(e), true
}

func (g *generator) phaseCode(p analyser.Phase) string {
	var stmts []string
	for _, e := range g.m.Ordering(p) {
		if s, ok := g.statement(e); ok {
			stmts = append(stmts, s)
		}
	}
	return g.statements(stmts...)
}

// entryPoint is one of the generated functions the host calls.
type entryPoint struct {
	name   string
	params string
	phase  analyser.Phase
}

func (g *generator) entryPoints() []entryPoint {
	data := g.parameters(g.dataParams(), g.m.HasExternals())
	eps := []entryPoint{
		{name: g.p.InitialiseVariables, params: g.parameters(g.initialiseParams(), false), phase: analyser.Initialise},
		{name: g.p.ComputeComputedConstants, params: g.parameters(g.computedConstantsParams(), false), phase: analyser.ComputeComputedConstants},
	}
	if g.m.HasStates() {
		eps = append(eps, entryPoint{name: g.p.ComputeRates, params: data, phase: analyser.ComputeRates})
	}
	return append(eps, entryPoint{name: g.p.ComputeVariables, params: data, phase: analyser.ComputeVariables})
}

// table is one category of variables with its count, metadata table and
// array constructor.
type table struct {
	info   string
	count  string
	create string
	vars   []*analyser.Variable
}

func (g *generator) tables() []table {
	var ts []table
	if g.m.HasStates() {
		ts = append(ts, table{"STATE_INFO", "STATE_COUNT", g.p.CreateStatesArray, g.m.States})
	}
	ts = append(ts,
		table{"CONSTANT_INFO", "CONSTANT_COUNT", g.p.CreateConstantsArray, g.m.Constants},
		table{"COMPUTED_CONSTANT_INFO", "COMPUTED_CONSTANT_COUNT", g.p.CreateComputedConstantsArray, g.m.ComputedConstants},
		table{"ALGEBRAIC_INFO", "ALGEBRAIC_COUNT", g.p.CreateAlgebraicArray, g.m.Algebraic})
	if g.m.HasExternals() {
		ts = append(ts, table{"EXTERNAL_INFO", "EXTERNAL_COUNT", g.p.CreateExternalsArray, g.m.Externals})
	}
	return ts
}

func (g *generator) entry(v *analyser.Variable) string {
	return fill(g.p.VariableInfoEntry, "[NAME]", v.Name(), "[UNITS]", v.Units(), "[COMPONENT]", v.Component())
}

// variableInfoType sizes the metadata record to the longest strings.
func (g *generator) variableInfoType() string {
	var vars []*analyser.Variable
	if g.m.VOI != nil {
		vars = append(vars, g.m.VOI)
	}
	for _, t := range g.tables() {
		vars = append(vars, t.vars...)
	}
	if len(vars) == 0 {
		return ""
	}
	name, units, component := 0, 0, 0
	for _, v := range vars {
		name = max(name, len(v.Name()))
		units = max(units, len(v.Units()))
		component = max(component, len(v.Component()))
	}
	return fill(g.p.VariableInfoType,
		"[NAME_SIZE]", strconv.Itoa(name+1),
		"[UNITS_SIZE]", strconv.Itoa(units+1),
		"[COMPONENT_SIZE]", strconv.Itoa(component+1))
}

func (g *generator) externalVariableType() string {
	if !g.m.HasExternals() {
		return ""
	}
	return fill(g.p.ExternalVariableType, "[PARAMETERS]", g.parameters(g.dataParams(), false))
}

func (g *generator) interfaceCode() string {
	p := g.p
	var counts, infos, arrays, decls strings.Builder
	if g.m.VOI != nil {
		infos.WriteString(p.InterfaceVoiInfo)
	}
	for _, t := range g.tables() {
		counts.WriteString(fill(p.InterfaceCount, "[NAME]", t.count))
		if len(t.vars) > 0 {
			infos.WriteString(fill(p.InterfaceVariableInfo, "[NAME]", t.info))
		}
		arrays.WriteString(fill(p.InterfaceCreateArray, "[NAME]", t.create))
	}
	for _, ep := range g.entryPoints() {
		decls.WriteString(fill(p.FunctionDeclaration, "[NAME]", ep.name, "[PARAMETERS]", ep.params))
	}

	return sections(
		g.comment(),
		p.InterfaceHeader,
		fill(p.InterfaceVersion, "[VERSION]", g.version),
		counts.String(),
		g.variableInfoType(),
		infos.String(),
		g.externalVariableType(),
		arrays.String(),
		p.InterfaceDeleteArray,
		decls.String(),
	)
}

func (g *generator) implementationCode(interfaceFile string) string {
	p := g.p

	// Render the equations first: they decide which helpers are needed.
	nla := g.nlaCode()
	var functions []string
	for _, ep := range g.entryPoints() {
		functions = append(functions, fill(p.FunctionDefinition,
			"[NAME]", ep.name,
			"[PARAMETERS]", ep.params,
			"[CODE]", g.body(g.phaseCode(ep.phase))))
	}

	parts := []string{
		g.comment(),
		fill(p.ImplementationHeader, "[INTERFACE_FILE_NAME]", interfaceFile),
	}
	if len(g.m.Groups) > 0 {
		parts = append(parts, p.NLASolverDeclaration)
	}
	parts = append(parts, fill(p.ImplementationVersion, "[VERSION]", g.version))

	var counts strings.Builder
	for _, t := range g.tables() {
		counts.WriteString(fill(p.ImplementationCount, "[NAME]", t.count, "[VALUE]", strconv.Itoa(len(t.vars))))
	}
	parts = append(parts, counts.String())

	if !p.HasInterface {
		parts = append(parts, g.variableInfoType(), g.externalVariableType())
	}

	if g.m.VOI != nil {
		parts = append(parts, fill(p.ImplementationVoiInfo, "[CODE]", g.entry(g.m.VOI)))
	}
	for _, t := range g.tables() {
		if len(t.vars) == 0 {
			continue
		}
		var entries strings.Builder
		for i, v := range t.vars {
			sep := p.ArrayItemSeparator
			if i == len(t.vars)-1 {
				sep = ""
			}
			entries.WriteString(p.Indent + g.entry(v) + sep + "\n")
		}
		parts = append(parts, fill(p.ImplementationVariableInfo, "[NAME]", t.info, "[CODE]", entries.String()))
	}

	for _, k := range helperOrder {
		if g.helpers[k] {
			parts = append(parts, helperTemplate(p, k))
		}
	}

	for _, t := range g.tables() {
		parts = append(parts, fill(p.ImplementationCreateArray, "[NAME]", t.create, "[COUNT]", t.count))
	}
	parts = append(parts, p.ImplementationDeleteArray, nla)
	parts = append(parts, functions...)

	return sections(parts...)
}

// nlaCode renders the objective function and the driver of every NLA group.
func (g *generator) nlaCode() string {
	if len(g.m.Groups) == 0 {
		return ""
	}
	p := g.p
	data := g.dataParams()

	var parts []string
	if p.RootFindingInfoType != "" {
		var fields strings.Builder
		for _, d := range data {
			fields.WriteString(fill(p.RootFindingInfoField, "[PARAMETER]", g.parameter(d)))
		}
		parts = append(parts, fill(p.RootFindingInfoType, "[CODE]", fields.String()))
	}
	for _, grp := range g.m.Groups {
		parts = append(parts, g.objectiveFunction(grp, data), g.findRoot(grp, data))
	}
	return sections(parts...)
}

// objectiveFunction writes the unknowns proposed by the solver into their
// arrays and evaluates every residual.
func (g *generator) objectiveFunction(grp *analyser.Group, data []param) string {
	p := g.p
	var unpack, unknowns, residuals []string
	if p.ObjectiveUnpack != "" {
		for i, d := range data {
			unpack = append(unpack, fill(p.ObjectiveUnpack,
				"[PARAMETER]", g.parameter(d),
				"[NAME]", d.name,
				"[INDEX]", strconv.Itoa(i)))
		}
	}
	for i, u := range grp.Unknowns {
		unknowns = append(unknowns, g.plain(u)+p.Assignment+index(p.UnknownsArray, i))
	}
	for i, e := range grp.Equations {
		residuals = append(residuals, index(p.ResidualsArray, i)+p.Assignment+g.expr(e.Tree, e.Root).text)
	}
	return fill(p.ObjectiveFunction,
		"[INDEX]", strconv.Itoa(grp.ID),
		"[CODE]", g.body(g.statements(unpack...), g.statements(unknowns...), g.statements(residuals...)))
}

// findRoot seeds the solver with the current values of the unknowns and
// stores its solution back.
func (g *generator) findRoot(grp *analyser.Group, data []param) string {
	p := g.p
	id := strconv.Itoa(grp.ID)
	size := strconv.Itoa(len(grp.Unknowns))
	args := arguments(data)

	var setup, in, out []string
	if p.FindRootData != "" {
		setup = append(setup, fill(p.FindRootData, "[ARGUMENTS]", args))
	}
	if p.FindRootUnknowns != "" {
		setup = append(setup, fill(p.FindRootUnknowns, "[SIZE]", size))
	}
	for i, u := range grp.Unknowns {
		in = append(in, index(p.UnknownsArray, i)+p.Assignment+g.plain(u))
		out = append(out, g.plain(u)+p.Assignment+index(p.UnknownsArray, i))
	}
	solve := fill(p.NLASolveCall, "[INDEX]", id, "[SIZE]", size, "[ARGUMENTS]", args)

	return fill(p.FindRoot,
		"[INDEX]", id,
		"[PARAMETERS]", g.parameters(data, false),
		"[CODE]", g.body(g.statements(setup...), g.statements(in...), g.statements(solve), g.statements(out...)))
}

// helperOrder is the order helpers are written in.
var helperOrder = []ast.Kind{
	ast.Xor, ast.Sec, ast.Csc, ast.Cot, ast.Sech, ast.Csch, ast.Coth,
	ast.Asec, ast.Acsc, ast.Acot, ast.Asech, ast.Acsch, ast.Acoth,
}

// helperTemplate returns the implementation of a function the target lacks,
// or "" when it is built in.
func helperTemplate(p profile.Profile, k ast.Kind) string {
	switch k {
	case ast.Xor:
		return p.XorFunction
	case ast.Sec:
		return p.SecFunction
	case ast.Csc:
		return p.CscFunction
	case ast.Cot:
		return p.CotFunction
	case ast.Sech:
		return p.SechFunction
	case ast.Csch:
		return p.CschFunction
	case ast.Coth:
		return p.CothFunction
	case ast.Asec:
		return p.AsecFunction
	case ast.Acsc:
		return p.AcscFunction
	case ast.Acot:
		return p.AcotFunction
	case ast.Asech:
		return p.AsechFunction
	case ast.Acsch:
		return p.AcschFunction
	case ast.Acoth:
		return p.AcothFunction
	}
	return ""
}
