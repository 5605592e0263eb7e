package graph

import "testing"

func TestNew_CopiesAdjacency(t *testing.T) {
	adj := map[int][]Edge{
		0: {{To: 1, Weight: 1}},
		1: nil,
	}
	g := New(adj)

	adj[0][0].To = 99

	if edges := g.Neighbors(0); edges[0].To != 1 {
		t.Error("mutating the source adjacency must not affect the graph")
	}
}

func TestHasNode(t *testing.T) {
	g := New(map[int][]Edge{0: {{To: 1, Weight: 1}}, 1: nil})

	if !g.HasNode(0) || !g.HasNode(1) {
		t.Error("expected nodes 0 and 1 present")
	}
	if g.HasNode(2) {
		t.Error("expected node 2 absent")
	}
}

func TestNewGrid_Shape(t *testing.T) {
	g := NewGrid(2, 3)

	// Entrance plus 6 slot nodes
	if g.Len() != 7 {
		t.Fatalf("expected 7 nodes, got %d", g.Len())
	}

	entranceEdges := g.Neighbors(EntranceNode)
	if len(entranceEdges) != 3 {
		t.Fatalf("expected 3 entrance edges, got %d", len(entranceEdges))
	}
	for i, e := range entranceEdges {
		if e.To != i+1 {
			t.Errorf("expected entrance edge to node %d, got %d", i+1, e.To)
		}
		if e.Weight != 1 {
			t.Errorf("expected unit weight, got %v", e.Weight)
		}
	}
}

func TestNewGrid_Neighbors(t *testing.T) {
	// 2x3 grid, row-major:
	//   1 2 3
	//   4 5 6
	g := NewGrid(2, 3)

	neighborSet := func(node int) map[int]bool {
		set := make(map[int]bool)
		for _, e := range g.Neighbors(node) {
			set[e.To] = true
		}
		return set
	}

	// Corner of row 0: right, down, entrance
	n1 := neighborSet(1)
	if len(n1) != 3 || !n1[2] || !n1[4] || !n1[EntranceNode] {
		t.Errorf("unexpected neighbors of node 1: %v", n1)
	}

	// Middle of row 0: left, right, down, entrance
	n2 := neighborSet(2)
	if len(n2) != 4 || !n2[1] || !n2[3] || !n2[5] || !n2[EntranceNode] {
		t.Errorf("unexpected neighbors of node 2: %v", n2)
	}

	// Middle of bottom row: up, left, right
	n5 := neighborSet(5)
	if len(n5) != 3 || !n5[2] || !n5[4] || !n5[6] {
		t.Errorf("unexpected neighbors of node 5: %v", n5)
	}
	if n5[EntranceNode] {
		t.Error("bottom row must not connect to the entrance directly")
	}
}
