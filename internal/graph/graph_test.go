package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGraph(t *testing.T, n int, edges ...[2]int) *Graph[int] {
	t.Helper()
	g := New[int]()
	for i := 0; i < n; i++ {
		g.AddNode(i)
	}
	for _, e := range edges {
		require.NoError(t, g.AddEdge(e[0], e[1]))
	}
	return g
}

func TestNew(t *testing.T) {
	g := New[string]()
	require.NotNil(t, g)
	assert.NotNil(t, g.nodes)
	assert.Zero(t, g.Len())
}

func TestAddNode(t *testing.T) {
	g := New[string]()

	g.AddNode("a")
	assert.Equal(t, 1, g.Len())
	g.AddNode("a") // idempotent
	assert.Equal(t, 1, g.Len())
	g.AddNode("b")
	assert.Equal(t, 2, g.Len())
	assert.Equal(t, []string{"a", "b"}, g.Nodes())
}

func TestAddEdge(t *testing.T) {
	t.Run("success case", func(t *testing.T) {
		g := New[string]()
		g.AddNode("a")
		g.AddNode("b")

		require.NoError(t, g.AddEdge("a", "b")) // b depends on a

		deps, err := g.Dependencies("b")
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, deps)
		deps, err = g.Dependencies("a")
		require.NoError(t, err)
		assert.Empty(t, deps)
	})

	t.Run("self loop is recorded", func(t *testing.T) {
		g := New[string]()
		g.AddNode("a")
		require.NoError(t, g.AddEdge("a", "a"))
		assert.True(t, g.HasSelfLoop("a"))
		assert.False(t, g.HasSelfLoop("missing"))
	})

	t.Run("error cases", func(t *testing.T) {
		g := New[string]()
		g.AddNode("a")

		assert.ErrorContains(t, g.AddEdge("dne", "a"), "source node not found")
		assert.ErrorContains(t, g.AddEdge("a", "dne"), "destination node not found")
		_, err := g.Dependencies("dne")
		assert.ErrorContains(t, err, "node not found")
	})
}

func TestDetectCycles(t *testing.T) {
	t.Run("empty graph has no cycles", func(t *testing.T) {
		assert.NoError(t, New[int]().DetectCycles())
	})

	t.Run("chain has no cycles", func(t *testing.T) {
		g := newTestGraph(t, 3, [2]int{0, 1}, [2]int{1, 2})
		assert.NoError(t, g.DetectCycles())
	})

	testCases := []struct {
		name     string
		n        int
		edges    [][2]int
		wantNode int
	}{
		{name: "loop is found", n: 3, edges: [][2]int{{0, 1}, {1, 2}, {2, 1}}, wantNode: 1},
		{name: "self loop is found", n: 1, edges: [][2]int{{0, 0}}, wantNode: 0},
		{name: "node downstream of a loop is not named", n: 4, edges: [][2]int{{2, 3}, {3, 2}, {2, 1}}, wantNode: 2},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// --- Arrange ---
			g := newTestGraph(t, tc.n, tc.edges...)

			// --- Act ---
			err := g.DetectCycles()

			// --- Assert ---
			require.ErrorIs(t, err, ErrCycle)
			var cycleErr *CycleError[int]
			require.ErrorAs(t, err, &cycleErr)
			assert.Equal(t, tc.wantNode, cycleErr.Node)
		})
	}
}

func TestStronglyConnectedComponents(t *testing.T) {
	// 0 -> 1 -> 2 -> 1, 2 -> 3, 4 -> 4, 5 alone
	g := newTestGraph(t, 6,
		[2]int{0, 1}, [2]int{1, 2}, [2]int{2, 1}, [2]int{2, 3}, [2]int{4, 4},
	)

	sccs := g.StronglyConnectedComponents()

	assert.Equal(t, [][]int{{0}, {1, 2}, {3}, {4}, {5}}, sccs)
	assert.False(t, g.IsCyclic(sccs[0]))
	assert.True(t, g.IsCyclic(sccs[1]))
	assert.True(t, g.IsCyclic(sccs[3]))
	assert.False(t, g.IsCyclic(sccs[4]))
}

func TestTopologicalSort(t *testing.T) {
	t.Run("smallest ready node first", func(t *testing.T) {
		// 3 -> 0, 2 -> 1; nodes 0 and 1 wait, 2 and 3 are ready.
		g := newTestGraph(t, 4, [2]int{3, 0}, [2]int{2, 1})

		order, err := g.TopologicalSort()

		require.NoError(t, err)
		assert.Equal(t, []int{2, 1, 3, 0}, order)
	})

	t.Run("dependencies always come first", func(t *testing.T) {
		edges := [][2]int{{5, 0}, {4, 0}, {4, 1}, {3, 1}, {2, 3}, {5, 2}}
		g := newTestGraph(t, 6, edges...)

		order, err := g.TopologicalSort()
		require.NoError(t, err)

		pos := make(map[int]int)
		for i, id := range order {
			pos[id] = i
		}
		for _, e := range edges {
			assert.Less(t, pos[e[0]], pos[e[1]], "edge %v", e)
		}

		again, err := g.TopologicalSort()
		require.NoError(t, err)
		assert.Equal(t, order, again)
	})

	t.Run("cycle fails", func(t *testing.T) {
		g := newTestGraph(t, 2, [2]int{0, 1}, [2]int{1, 0})
		_, err := g.TopologicalSort()
		assert.ErrorIs(t, err, ErrCycle)
	})

	t.Run("cycle error names a node on the cycle", func(t *testing.T) {
		// 2 <-> 3, and 1 waits on 2 without being part of the loop.
		g := newTestGraph(t, 4, [2]int{2, 3}, [2]int{3, 2}, [2]int{2, 1})

		_, err := g.TopologicalSort()

		var cycleErr *CycleError[int]
		require.ErrorAs(t, err, &cycleErr)
		assert.Equal(t, 2, cycleErr.Node)
		assert.EqualError(t, err, "cycle detected involving node '2'")
	})
}

func TestAncestors(t *testing.T) {
	g := newTestGraph(t, 5, [2]int{0, 1}, [2]int{1, 2}, [2]int{3, 2}, [2]int{4, 4})

	assert.Equal(t, []int{0, 1, 3}, g.Ancestors(2))
	assert.Equal(t, []int{0}, g.Ancestors(1))
	assert.Equal(t, []int{4}, g.Ancestors(4))
	assert.Empty(t, g.Ancestors(0))
}

func TestAncestorsWhere(t *testing.T) {
	// 0 -> 1 -> 3, 2 -> 3; walking stops at 1.
	g := newTestGraph(t, 4, [2]int{0, 1}, [2]int{1, 3}, [2]int{2, 3})

	got := g.AncestorsWhere(func(id int) bool { return id != 1 }, 3)

	assert.Equal(t, []int{2}, got)
}
