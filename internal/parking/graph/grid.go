package graph

// EntranceNode is the distinguished arrival node of the default grid
// topology. Slot nodes are numbered 1..rows*cols in row-major order.
const EntranceNode = 0

// NewGrid builds the default lot topology: a rows×cols grid of slot
// nodes with unit-weight 4-neighbor adjacency, plus bidirectional
// unit-weight edges between the entrance and every node of row 0.
func NewGrid(rows, cols int) *Graph {
	adj := make(map[int][]Edge)
	node := func(r, c int) int { return r*cols + c + 1 }

	for c := 0; c < cols; c++ {
		adj[EntranceNode] = append(adj[EntranceNode], Edge{To: node(0, c), Weight: 1})
	}

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			n := node(r, c)
			var edges []Edge
			for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
				nr, nc := r+d[0], c+d[1]
				if nr >= 0 && nr < rows && nc >= 0 && nc < cols {
					edges = append(edges, Edge{To: node(nr, nc), Weight: 1})
				}
			}
			if r == 0 {
				edges = append(edges, Edge{To: EntranceNode, Weight: 1})
			}
			adj[n] = edges
		}
	}

	return New(adj)
}
