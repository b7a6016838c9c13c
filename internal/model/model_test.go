package model

import (
	"testing"

	"github.com/specialistvlad/eqgen/internal/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModel_BuildAndValidate(t *testing.T) {
	// --- Arrange ---
	m := New("scenario_a")
	main := m.AddComponent("main")
	a := main.AddVariable("a", "dimensionless").SetInitialLiteral("1.0")
	x := main.AddVariable("x", "dimensionless")

	tree := ast.NewTree()
	tree.Assign(tree.Ci(x), tree.Ci(a))
	eq := main.AddEquation(tree)

	// --- Act ---
	err := m.Validate()

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, "main#0: x = a", eq.String())
	assert.Equal(t, []*Variable{a, x}, m.Variables())
	assert.Equal(t, []*Equation{eq}, m.Equations())
	assert.Same(t, main, m.Component("main"))
	assert.Same(t, m, main.Model())
	lit, ok := a.InitialLiteral()
	assert.True(t, ok)
	assert.Equal(t, "1.0", lit)
	assert.False(t, x.HasInitialValue())
}

func TestVariable_InitialValueForms(t *testing.T) {
	m := New("m")
	c := m.AddComponent("c")
	k := c.AddVariable("k", "volt").SetInitialLiteral("1.5")
	v := c.AddVariable("v", "millivolt").SetInitialVariable(k)

	assert.Equal(t, "k", v.InitialValue())
	assert.Same(t, k, v.InitialVariable())
	_, ok := v.InitialLiteral()
	assert.False(t, ok)

	v.SetInitialLiteral("3")
	assert.Nil(t, v.InitialVariable())
	assert.Equal(t, "3", v.InitialValue())
	assert.Equal(t, "c.v", v.String())
}

func TestModel_ValidateCollectsProblems(t *testing.T) {
	m := New("broken")
	c1 := m.AddComponent("c1")
	c2 := m.AddComponent("c2")
	m.AddComponent("c1")

	a := c1.AddVariable("a", "")
	c1.AddVariable("a", "")
	b := c2.AddVariable("b", "")
	b.SetInitialVariable(a)

	tree := ast.NewTree()
	tree.Assign(tree.Ci(a), tree.Ci(b))
	c1.AddEquation(tree)

	notAssignment := ast.NewTree()
	notAssignment.Cn("1", "")
	c2.AddEquation(notAssignment)

	m.Connect(a, a)

	err := m.Validate()
	require.ErrorIs(t, err, ErrInvalidModel)
	msg := err.Error()
	assert.Contains(t, msg, "component 'c1' is declared more than once")
	assert.Contains(t, msg, "variable 'c1.a' is declared more than once")
	assert.Contains(t, msg, "variable 'c2.b' is initialised from 'c1.a' of another component")
	assert.Contains(t, msg, "refers to 'b' outside its component")
	assert.Contains(t, msg, "is not an assignment")
	assert.Contains(t, msg, "variable 'c1.a' is connected to itself")
}

func TestModel_Merge(t *testing.T) {
	first := New("first")
	first.AddComponent("a")
	second := New("second")
	b := second.AddComponent("b")

	first.Merge(second)

	require.Len(t, first.Components, 2)
	assert.Same(t, first, b.Model())
}
