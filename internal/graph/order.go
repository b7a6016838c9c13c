package graph

import (
	"cmp"
	"container/heap"
	"slices"
)

// StronglyConnectedComponents returns the strongly connected components of
// the graph using Tarjan's algorithm. Members of a component are in ascending
// order and components are ordered by their smallest member.
func (g *Graph[K]) StronglyConnectedComponents() [][]K {
	index := 0
	indices := make(map[K]int, len(g.nodes))
	lowlink := make(map[K]int, len(g.nodes))
	onStack := make(map[K]bool, len(g.nodes))
	var stack []K
	var components [][]K

	var strongConnect func(id K)
	strongConnect = func(id K) {
		indices[id] = index
		lowlink[id] = index
		index++
		stack = append(stack, id)
		onStack[id] = true

		for _, next := range sortedKeys(g.nodes[id].dependents) {
			if _, visited := indices[next]; !visited {
				strongConnect(next)
				lowlink[id] = min(lowlink[id], lowlink[next])
			} else if onStack[next] {
				lowlink[id] = min(lowlink[id], indices[next])
			}
		}

		if lowlink[id] == indices[id] {
			var component []K
			for {
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[top] = false
				component = append(component, top)
				if top == id {
					break
				}
			}
			slices.Sort(component)
			components = append(components, component)
		}
	}

	for _, id := range g.Nodes() {
		if _, visited := indices[id]; !visited {
			strongConnect(id)
		}
	}

	slices.SortFunc(components, func(a, b []K) int {
		return cmp.Compare(a[0], b[0])
	})
	return components
}

// IsCyclic reports whether a component returned by
// StronglyConnectedComponents is a cycle: more than one member, or a single
// member with a self-loop.
func (g *Graph[K]) IsCyclic(component []K) bool {
	return len(component) > 1 || (len(component) == 1 && g.HasSelfLoop(component[0]))
}

// TopologicalSort orders the nodes so that every node comes after all of its
// dependencies. Among nodes that are ready at the same time the smallest
// comes first, so the order only depends on the graph. Self-loops and larger
// cycles make the sort fail with a *CycleError naming a node on the cycle.
func (g *Graph[K]) TopologicalSort() ([]K, error) {
	inDegree := make(map[K]int, len(g.nodes))
	ready := &minHeap[K]{}
	for _, id := range g.Nodes() {
		inDegree[id] = len(g.nodes[id].deps)
		if inDegree[id] == 0 {
			heap.Push(ready, id)
		}
	}

	order := make([]K, 0, len(g.nodes))
	for ready.Len() > 0 {
		id := heap.Pop(ready).(K)
		order = append(order, id)
		for _, next := range sortedKeys(g.nodes[id].dependents) {
			inDegree[next]--
			if inDegree[next] == 0 {
				heap.Push(ready, next)
			}
		}
	}

	if len(order) != len(g.nodes) {
		// Nodes left over are on a cycle or downstream of one.
		if err := g.DetectCycles(); err != nil {
			return nil, err
		}
		return nil, ErrCycle
	}
	return order, nil
}

type minHeap[K cmp.Ordered] []K

func (h minHeap[K]) Len() int           { return len(h) }
func (h minHeap[K]) Less(i, j int) bool { return h[i] < h[j] }
func (h minHeap[K]) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *minHeap[K]) Push(x any)        { *h = append(*h, x.(K)) }
func (h *minHeap[K]) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
