package graph

// Edge is one weighted directed connection to a neighboring node.
// Weights must be non-negative; the finder assumes Dijkstra's
// precondition holds.
type Edge struct {
	To     int     `json:"to"`
	Weight float64 `json:"weight"`
}

// Graph is an immutable weighted digraph over integer node ids. It is
// supplied by the caller per request and never mutated by the
// coordinator; topology changes simply mean passing a different graph.
type Graph struct {
	adjacency map[int][]Edge
}

// New builds a graph from an adjacency mapping. The mapping is copied
// so later mutation by the caller cannot affect the graph.
func New(adjacency map[int][]Edge) *Graph {
	adj := make(map[int][]Edge, len(adjacency))
	for node, edges := range adjacency {
		adj[node] = append([]Edge(nil), edges...)
	}
	return &Graph{adjacency: adj}
}

// Neighbors returns the outgoing edges of node, or nil when the node
// has none or is absent.
func (g *Graph) Neighbors(node int) []Edge {
	return g.adjacency[node]
}

// HasNode reports whether node appears in the adjacency mapping.
func (g *Graph) HasNode(node int) bool {
	_, ok := g.adjacency[node]
	return ok
}

// Len returns the number of nodes with adjacency entries.
func (g *Graph) Len() int {
	return len(g.adjacency)
}
