package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testVar struct {
	name  string
	units string
}

func (v *testVar) Name() string  { return v.name }
func (v *testVar) Units() string { return v.units }

func TestTree_BuildAssignment(t *testing.T) {
	// --- Arrange ---
	x := &testVar{name: "x", units: "second"}
	a := &testVar{name: "a", units: "second"}
	tree := NewTree()

	// --- Act ---
	lhs := tree.Ci(x)
	rhs := tree.Binary(Plus, tree.Ci(a), tree.Cn("1.0", "second"))
	root := tree.Assign(lhs, rhs)

	// --- Assert ---
	require.Equal(t, root, tree.Root())
	assert.Equal(t, Assignment, tree.Kind(root))
	assert.Equal(t, lhs, tree.Left(root))
	assert.Equal(t, rhs, tree.Right(root))
	assert.Equal(t, root, tree.Parent(lhs))
	assert.Equal(t, root, tree.Parent(rhs))
	assert.Equal(t, NoNode, tree.Parent(root))
	assert.Equal(t, "x = (a + 1.0)", tree.String())
}

func TestTree_SharedChildIsAlias(t *testing.T) {
	a := &testVar{name: "a"}
	tree := NewTree()

	shared := tree.Ci(a)
	first := tree.Unary(Minus, shared)
	second := tree.Unary(Abs, shared)

	assert.Equal(t, first, tree.Parent(shared), "first parent owns the node")
	assert.Equal(t, shared, tree.Left(second), "alias resolves to the same node")
	assert.Equal(t, first, tree.Parent(shared), "alias does not change the owner")
}

func TestTree_SetLeftReplacesChild(t *testing.T) {
	a := &testVar{name: "a"}
	b := &testVar{name: "b"}
	tree := NewTree()

	ca := tree.Ci(a)
	cb := tree.Ci(b)
	sin := tree.Unary(Sin, ca)
	tree.SetLeft(sin, cb)

	assert.Equal(t, cb, tree.Left(sin))
	assert.Equal(t, sin, tree.Parent(cb))
	assert.Equal(t, NoNode, tree.Right(sin))
}

func TestTree_ConstructorsRejectWrongShape(t *testing.T) {
	tree := NewTree()
	one := tree.Cn("1", "")

	assert.Panics(t, func() { tree.Unary(Times, one) })
	assert.Panics(t, func() { tree.Binary(Sin, one, one) })
	assert.Panics(t, func() { tree.Constant(Plus) })
	assert.Panics(t, func() { tree.Ci(nil) })
	assert.Panics(t, func() { tree.SetRight(tree.Unary(Abs, one), one) })
	assert.Panics(t, func() { tree.Piecewise([]NodeID{one}, NoNode) })
	assert.Panics(t, func() { tree.Node(NodeID(99)) })
}

func TestTree_VariablesFirstEncounterIncludesQualifiers(t *testing.T) {
	x := &testVar{name: "x"}
	y := &testVar{name: "y"}
	tm := &testVar{name: "t"}
	tree := NewTree()

	diff := tree.Binary(Diff, tree.Unary(Bvar, tree.Ci(tm)), tree.Ci(x))
	rhs := tree.Binary(Times, tree.Ci(y), tree.Binary(Plus, tree.Ci(x), tree.Ci(y)))
	tree.Assign(diff, rhs)

	names := []string{}
	for _, v := range tree.Variables(tree.Root()) {
		names = append(names, v.Name())
	}
	assert.Equal(t, []string{"t", "x", "y"}, names)
	assert.Equal(t, "diff(bvar(t), x) = (y*(x + y))", tree.String())
}

func TestTree_InPiecewise(t *testing.T) {
	x := &testVar{name: "x"}
	tree := NewTree()

	cond := tree.Binary(Lt, tree.Ci(x), tree.Cn("0", ""))
	value := tree.Unary(Minus, tree.Ci(x))
	piece := tree.Piece(value, cond)
	otherwise := tree.Otherwise(tree.Ci(x))
	pw := tree.Piecewise([]NodeID{piece}, otherwise)
	outside := tree.Cn("2", "")
	tree.Assign(tree.Ci(x), tree.Binary(Times, outside, pw))

	assert.Equal(t, pw, tree.InPiecewise(value))
	assert.Equal(t, pw, tree.InPiecewise(cond))
	assert.Equal(t, NoNode, tree.InPiecewise(outside))
	assert.Equal(t, []NodeID{piece, otherwise}, tree.Children(pw))
}

func TestTree_CloneIsIndependent(t *testing.T) {
	x := &testVar{name: "x"}
	tree := NewTree()
	c1 := tree.Cn("1", "")
	c2 := tree.Cn("2", "")
	plus := tree.Binary(Plus, c1, c2)
	root := tree.Assign(tree.Ci(x), plus)

	clone := tree.Clone()
	clone.SetRight(plus, clone.Cn("3", ""))
	residual := clone.Binary(Minus, clone.Left(root), clone.Right(root))
	clone.SetRoot(residual)

	assert.Equal(t, "x = (1 + 2)", tree.String())
	assert.Equal(t, "(x - (1 + 3))", clone.String())
	assert.Equal(t, root, clone.Parent(clone.Left(root)), "residual sides stay owned by the assignment")
	assert.Equal(t, tree.Len()+2, clone.Len())
}

func TestTree_Walk(t *testing.T) {
	x := &testVar{name: "x"}
	tree := NewTree()
	inner := tree.Unary(Cos, tree.Ci(x))
	tree.Binary(Plus, inner, tree.Constant(Pi))

	var kinds []Kind
	tree.Walk(tree.Root(), func(id NodeID) bool {
		kinds = append(kinds, tree.Kind(id))
		return tree.Kind(id) != Cos
	})
	assert.Equal(t, []Kind{Plus, Cos, Pi}, kinds)
}

func TestKind_String(t *testing.T) {
	testCases := []struct {
		kind     Kind
		expected string
	}{
		{Assignment, "assignment"},
		{Acoth, "acoth"},
		{NaN, "nan"},
		{Kind(200), "kind(200)"},
	}
	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.kind.String())
		})
	}
	assert.Equal(t, 65, int(NaN)+1)
	assert.True(t, Asech.IsTrigonometric())
	assert.True(t, Geq.IsRelational())
	assert.False(t, And.IsRelational())
}
