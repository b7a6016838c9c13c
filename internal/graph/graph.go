package graph

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
)

// ErrCycle is returned when an operation needs an acyclic graph.
var ErrCycle = errors.New("cycle detected")

// CycleError names a node that lies on a cycle. It matches ErrCycle.
type CycleError[K cmp.Ordered] struct {
	Node K
}

func (e *CycleError[K]) Error() string {
	return fmt.Sprintf("%v involving node '%v'", ErrCycle, e.Node)
}

func (e *CycleError[K]) Unwrap() error { return ErrCycle }

// Graph is a directed graph keyed by K. It is not safe for concurrent
// mutation.
type Graph[K cmp.Ordered] struct {
	nodes map[K]*node[K]
}

// node is un-exported to enforce interaction through the Graph API.
type node[K cmp.Ordered] struct {
	id K
	// deps holds the nodes this node depends on (predecessors).
	deps map[K]struct{}
	// dependents holds the nodes depending on this node (successors).
	dependents map[K]struct{}
}

// New creates and returns an initialized, empty Graph.
func New[K cmp.Ordered]() *Graph[K] {
	return &Graph[K]{
		nodes: make(map[K]*node[K]),
	}
}

// AddNode adds a node. Adding an existing node does nothing.
func (g *Graph[K]) AddNode(id K) {
	if _, ok := g.nodes[id]; ok {
		return
	}
	g.nodes[id] = &node[K]{
		id:         id,
		deps:       make(map[K]struct{}),
		dependents: make(map[K]struct{}),
	}
}

// Len returns the number of nodes.
func (g *Graph[K]) Len() int {
	return len(g.nodes)
}

// AddEdge creates a directed edge from `fromID` to `toID`, meaning `toID`
// depends on `fromID`. Both nodes must exist.
func (g *Graph[K]) AddEdge(fromID, toID K) error {
	fromNode, ok := g.nodes[fromID]
	if !ok {
		return fmt.Errorf("source node not found: %v", fromID)
	}
	toNode, ok := g.nodes[toID]
	if !ok {
		return fmt.Errorf("destination node not found: %v", toID)
	}
	toNode.deps[fromID] = struct{}{}
	fromNode.dependents[toID] = struct{}{}
	return nil
}

// HasSelfLoop reports whether id depends on itself.
func (g *Graph[K]) HasSelfLoop(id K) bool {
	n, ok := g.nodes[id]
	if !ok {
		return false
	}
	_, loop := n.deps[id]
	return loop
}

// Nodes returns every node in ascending order.
func (g *Graph[K]) Nodes() []K {
	out := make([]K, 0, len(g.nodes))
	for id := range g.nodes {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// Dependencies returns the nodes id depends on, in ascending order.
func (g *Graph[K]) Dependencies(id K) ([]K, error) {
	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %v", id)
	}
	return sortedKeys(n.deps), nil
}

func sortedKeys[K cmp.Ordered](m map[K]struct{}) []K {
	out := make([]K, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// DetectCycles returns a *CycleError naming the first node found on a cycle,
// or nil when the graph is acyclic. Self-loops count as cycles.
func (g *Graph[K]) DetectCycles() error {
	// Classic depth-first search with three sets of nodes:
	// permanent: fully visited and not part of a cycle.
	// temporary: on the recursion stack of the current traversal.
	// unvisited: all other nodes.
	permanent := make(map[K]bool)
	temporary := make(map[K]bool)

	var visit func(id K) error
	visit = func(id K) error {
		if permanent[id] {
			return nil
		}
		if temporary[id] {
			return &CycleError[K]{Node: id}
		}
		temporary[id] = true
		for _, dependent := range sortedKeys(g.nodes[id].dependents) {
			if err := visit(dependent); err != nil {
				return err
			}
		}
		delete(temporary, id)
		permanent[id] = true
		return nil
	}

	for _, id := range g.Nodes() {
		if err := visit(id); err != nil {
			return err
		}
	}
	return nil
}

// Ancestors returns every node from which one of ids can be reached, ids
// excluded unless they lie on a cycle through themselves. The result is in
// ascending order.
func (g *Graph[K]) Ancestors(ids ...K) []K {
	return g.AncestorsWhere(func(K) bool { return true }, ids...)
}

// AncestorsWhere is like Ancestors but neither returns nor walks through the
// nodes for which keep is false.
func (g *Graph[K]) AncestorsWhere(keep func(K) bool, ids ...K) []K {
	seen := make(map[K]struct{})
	stack := append([]K(nil), ids...)
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n, ok := g.nodes[id]
		if !ok {
			continue
		}
		for dep := range n.deps {
			if _, done := seen[dep]; done || !keep(dep) {
				continue
			}
			seen[dep] = struct{}{}
			stack = append(stack, dep)
		}
	}
	return sortedKeys(seen)
}
