package dag

// Graph is a directed graph of course codes. An edge from -> to means that
// to lists from as a prerequisite. A Graph is not safe for concurrent
// mutation; it is built once by a single caller and then only read.
type Graph struct {
	// nodes stores all nodes in the graph, keyed by course code.
	nodes map[string]*node
	// edges counts distinct edges, self-edges included.
	edges int
}

// node represents a single vertex in the graph. It is un-exported to
// enforce interaction with the graph via the public API (using codes),
// not by direct struct manipulation.
type node struct {
	// id is the course code.
	id string
	// deps holds the set of nodes that this node depends on (predecessors).
	deps map[string]*node
	// dependents holds the set of nodes that depend on this node (successors).
	dependents map[string]*node
}
