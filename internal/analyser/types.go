package analyser

import (
	"fmt"

	"github.com/specialistvlad/eqgen/internal/ast"
	"github.com/specialistvlad/eqgen/internal/model"
)

// VariableKind is the role a variable plays in the generated code.
type VariableKind int

const (
	VOI VariableKind = iota
	State
	Constant
	ComputedConstant
	Algebraic
	External
)

func (k VariableKind) String() string {
	switch k {
	case VOI:
		return "voi"
	case State:
		return "state"
	case Constant:
		return "constant"
	case ComputedConstant:
		return "computed_constant"
	case Algebraic:
		return "algebraic"
	case External:
		return "external"
	}
	return fmt.Sprintf("variable_kind(%d)", int(k))
}

// Phase is one of the generated entry points.
type Phase int

const (
	Initialise Phase = iota
	ComputeComputedConstants
	ComputeRates
	ComputeVariables
)

// Phases lists every phase in generation order.
var Phases = []Phase{Initialise, ComputeComputedConstants, ComputeRates, ComputeVariables}

func (p Phase) String() string {
	switch p {
	case Initialise:
		return "initialise"
	case ComputeComputedConstants:
		return "compute_computed_constants"
	case ComputeRates:
		return "compute_rates"
	case ComputeVariables:
		return "compute_variables"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// EquationType tells what an analysed equation computes.
type EquationType int

const (
	ConstantInit EquationType = iota
	StateInit
	InitialGuess
	ExternalFetch
	ComputedConstantEquation
	RateEquation
	AlgebraicEquation
	NLAResidual
)

func (t EquationType) String() string {
	switch t {
	case ConstantInit:
		return "constant"
	case StateInit:
		return "state_initialisation"
	case InitialGuess:
		return "initial_guess"
	case ExternalFetch:
		return "external"
	case ComputedConstantEquation:
		return "computed_constant"
	case RateEquation:
		return "rate"
	case AlgebraicEquation:
		return "algebraic"
	case NLAResidual:
		return "nla_residual"
	}
	return fmt.Sprintf("equation_type(%d)", int(t))
}

// homePhase returns the phase an equation type belongs to.
func (t EquationType) homePhase() Phase {
	switch t {
	case ConstantInit, StateInit, InitialGuess:
		return Initialise
	case ComputedConstantEquation:
		return ComputeComputedConstants
	case RateEquation:
		return ComputeRates
	}
	return ComputeVariables
}

// Variable is one equivalence set of model variables.
type Variable struct {
	Kind  VariableKind
	Index int

	// Variable is the primary model variable: the one carrying the initial
	// value, or the first declared.
	Variable *model.Variable
	// Equivalents lists every member of the set in declaration order,
	// primary included.
	Equivalents []*model.Variable

	// InitialValue is the initial value of the primary as written.
	InitialValue string
	// Initialiser is the variable a state is initialised from, or nil.
	Initialiser *model.Variable

	scaling map[*model.Variable]float64
	decl    int
}

// Scaling returns the factor converting the primary's value into the units of
// v. It is 1 for the primary itself and for variables outside the set.
func (v *Variable) Scaling(mv *model.Variable) float64 {
	if f, ok := v.scaling[mv]; ok {
		return f
	}
	return 1
}

// Name returns the primary's name.
func (v *Variable) Name() string {
	return v.Variable.Name()
}

// Units returns the primary's units.
func (v *Variable) Units() string {
	return v.Variable.Units()
}

// Component returns the primary's component name.
func (v *Variable) Component() string {
	return v.Variable.Component().Name
}

func (v *Variable) String() string {
	return v.Variable.QualifiedName()
}

// Equation is an equation after analysis.
type Equation struct {
	ID   int
	Type EquationType
	// Phase is the phase the equation belongs to. The equation may also be
	// repeated in the orderings of other phases.
	Phase Phase

	// Tree is owned by the analyser. For NLA residuals Root is `lhs - rhs`
	// whose operands alias the original sides.
	Tree *ast.Tree
	Root ast.NodeID

	// Defined is the variable the equation assigns; nil for NLA residuals.
	Defined *Variable
	// Dependencies lists the variables read, first encountered first.
	Dependencies []*Variable
	// Group is the NLA group of a residual, nil otherwise.
	Group *Group
	// Scaling multiplies the whole right-hand side.
	Scaling float64

	// Source is the model equation, nil for generated equations.
	Source *model.Equation
}

func (e *Equation) String() string {
	if e.Source != nil {
		return e.Source.String()
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Tree.Format(e.Root))
}

// Group is a set of equations solved together by the nonlinear solver.
type Group struct {
	ID        int
	Equations []*Equation
	Unknowns  []*Variable
}

// Model is the result of one analysis. It is never changed after Analyse
// returns.
type Model struct {
	Source *model.Model

	VOI               *Variable
	States            []*Variable
	Constants         []*Variable
	ComputedConstants []*Variable
	Algebraic         []*Variable
	Externals         []*Variable
	// Variables holds every variable, primaries in declaration order.
	Variables []*Variable

	// Equations is the evaluation order.
	Equations []*Equation
	Groups    []*Group
	Issues    []Issue

	orderings map[Phase][]*Equation
	byModel   map[*model.Variable]*Variable
}

// Ordering returns the equations evaluated by a phase, in order. Members of
// an NLA group are contiguous.
func (m *Model) Ordering(p Phase) []*Equation {
	return m.orderings[p]
}

// Variable returns the analysed variable a model variable belongs to.
func (m *Model) Variable(mv *model.Variable) *Variable {
	return m.byModel[mv]
}

// HasStates reports whether the model integrates anything.
func (m *Model) HasStates() bool {
	return len(m.States) > 0
}

// HasExternals reports whether the host application supplies variables.
func (m *Model) HasExternals() bool {
	return len(m.Externals) > 0
}

// VariablesOfKind returns the variables of one kind in index order.
func (m *Model) VariablesOfKind(k VariableKind) []*Variable {
	switch k {
	case VOI:
		if m.VOI == nil {
			return nil
		}
		return []*Variable{m.VOI}
	case State:
		return m.States
	case Constant:
		return m.Constants
	case ComputedConstant:
		return m.ComputedConstants
	case Algebraic:
		return m.Algebraic
	case External:
		return m.Externals
	}
	return nil
}
