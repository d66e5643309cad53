package dag

import (
	"fmt"
	"maps"
	"slices"
)

// New creates and returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*node),
	}
}

// AddNode adds a new node with the given code to the graph. If a node with
// the same code already exists, the function does nothing.
func (g *Graph) AddNode(id string) {
	if _, ok := g.nodes[id]; ok {
		return
	}

	g.nodes[id] = &node{
		id:         id,
		deps:       make(map[string]*node),
		dependents: make(map[string]*node),
	}
}

// AddEdge creates a directed edge from the `fromID` node to the `toID` node.
// This signifies that `toID` has a dependency on `fromID`. Adding an edge
// that already exists is a no-op. A self-edge is accepted and forms a cycle
// of length one. An error is returned if either node does not exist.
func (g *Graph) AddEdge(fromID, toID string) error {
	fromNode, ok := g.nodes[fromID]
	if !ok {
		return fmt.Errorf("source node not found: %s", fromID)
	}

	toNode, ok := g.nodes[toID]
	if !ok {
		return fmt.Errorf("destination node not found: %s", toID)
	}

	if _, exists := toNode.deps[fromID]; exists {
		return nil
	}

	toNode.deps[fromID] = fromNode
	fromNode.dependents[toID] = toNode
	g.edges++

	return nil
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// EdgeCount returns the number of distinct edges.
func (g *Graph) EdgeCount() int {
	return g.edges
}

// Has reports whether id is a node of the graph.
func (g *Graph) Has(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// Codes returns every node in ascending order.
func (g *Graph) Codes() []string {
	return slices.Sorted(maps.Keys(g.nodes))
}

// Dependents returns, in ascending order, the codes that depend on the
// given node.
func (g *Graph) Dependents(id string) ([]string, error) {
	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}
	return slices.Sorted(maps.Keys(n.dependents)), nil
}

// InDegrees returns a fresh map from every code to the number of distinct
// prerequisites it has in the graph. Callers may mutate the result.
func (g *Graph) InDegrees() map[string]int {
	degrees := make(map[string]int, len(g.nodes))
	for id, n := range g.nodes {
		degrees[id] = len(n.deps)
	}
	return degrees
}

// FindCycle returns one cycle among the nodes in within, as the codes along
// the loop starting from its first node, or nil if the subgraph induced by
// within is acyclic. A nil within searches the whole graph. The search
// visits roots and dependents in ascending order, so the result is
// deterministic.
func (g *Graph) FindCycle(within []string) []string {
	allowed := func(string) bool { return true }
	roots := g.Codes()
	if within != nil {
		set := make(map[string]bool, len(within))
		for _, id := range within {
			set[id] = true
		}
		allowed = func(id string) bool { return set[id] }
		roots = slices.Sorted(maps.Keys(set))
	}

	// Classic depth-first search with three sets of nodes:
	// permanent: fully visited and not on any cycle reachable from here.
	// temporary: on the current recursion stack.
	// unvisited: everything else.
	permanent := make(map[string]bool)
	temporary := make(map[string]bool)
	var stack []string

	var visit func(id string) []string
	visit = func(id string) []string {
		if permanent[id] {
			return nil
		}
		if temporary[id] {
			start := slices.Index(stack, id)
			return slices.Clone(stack[start:])
		}

		temporary[id] = true
		stack = append(stack, id)

		n := g.nodes[id]
		for _, next := range slices.Sorted(maps.Keys(n.dependents)) {
			if !allowed(next) {
				continue
			}
			if cycle := visit(next); cycle != nil {
				return cycle
			}
		}

		stack = stack[:len(stack)-1]
		delete(temporary, id)
		permanent[id] = true

		return nil
	}

	for _, id := range roots {
		if _, ok := g.nodes[id]; !ok || permanent[id] {
			continue
		}
		if cycle := visit(id); cycle != nil {
			return cycle
		}
	}

	return nil
}
