package finder

import (
	"testing"

	"parkd/internal/parking/graph"
)

func TestNearestFree_PicksClosest(t *testing.T) {
	g := graph.New(map[int][]graph.Edge{
		0: {{To: 1, Weight: 3}, {To: 2, Weight: 1}},
		1: nil,
		2: nil,
	})
	free := map[int]int{1: 10, 2: 20}

	slotID, found := NearestFree(g, 0, free)
	if !found {
		t.Fatal("expected a slot")
	}
	if slotID != 20 {
		t.Errorf("expected slot 20 at the closer node, got %d", slotID)
	}
}

func TestNearestFree_TieBreaksOnNodeID(t *testing.T) {
	// Nodes 3 and 7 are equidistant; the lower node id must win no
	// matter the map iteration order.
	g := graph.New(map[int][]graph.Edge{
		0: {{To: 7, Weight: 2}, {To: 3, Weight: 2}},
		3: nil,
		7: nil,
	})
	free := map[int]int{3: 30, 7: 70}

	for i := 0; i < 50; i++ {
		slotID, found := NearestFree(g, 0, free)
		if !found {
			t.Fatal("expected a slot")
		}
		if slotID != 30 {
			t.Fatalf("iteration %d: expected slot 30 via node 3, got %d", i, slotID)
		}
	}
}

func TestNearestFree_RelaxesThroughCheaperPath(t *testing.T) {
	// Direct edge to node 1 costs 5; the detour through node 2 costs 2.
	// Node 9 sits at distance 3 behind node 1, so node 1 must still be
	// found first through relaxation.
	g := graph.New(map[int][]graph.Edge{
		0: {{To: 1, Weight: 5}, {To: 2, Weight: 1}},
		1: {{To: 9, Weight: 1}},
		2: {{To: 1, Weight: 1}},
		9: nil,
	})
	free := map[int]int{1: 11, 9: 99}

	slotID, found := NearestFree(g, 0, free)
	if !found {
		t.Fatal("expected a slot")
	}
	if slotID != 11 {
		t.Errorf("expected slot 11, got %d", slotID)
	}
}

func TestNearestFree_SkipsOccupiedNodes(t *testing.T) {
	g := graph.New(map[int][]graph.Edge{
		0: {{To: 1, Weight: 1}},
		1: {{To: 2, Weight: 1}},
		2: nil,
	})
	// Node 1 is closer but its slot is taken, only node 2 is free.
	free := map[int]int{2: 20}

	slotID, found := NearestFree(g, 0, free)
	if !found {
		t.Fatal("expected a slot")
	}
	if slotID != 20 {
		t.Errorf("expected slot 20, got %d", slotID)
	}
}

func TestNearestFree_EmptyFreeSet(t *testing.T) {
	g := graph.NewGrid(2, 2)

	if _, found := NearestFree(g, graph.EntranceNode, map[int]int{}); found {
		t.Error("expected no slot for an empty free set")
	}
}

func TestNearestFree_EntranceNotInGraph(t *testing.T) {
	g := graph.New(map[int][]graph.Edge{1: nil})

	if _, found := NearestFree(g, 0, map[int]int{1: 10}); found {
		t.Error("expected no slot when the entrance is absent")
	}
}

func TestNearestFree_UnreachableSlot(t *testing.T) {
	// Node 5 is disconnected from the entrance component.
	g := graph.New(map[int][]graph.Edge{
		0: {{To: 1, Weight: 1}},
		1: nil,
		5: nil,
	})

	if _, found := NearestFree(g, 0, map[int]int{5: 50}); found {
		t.Error("expected no slot when the only free slot is unreachable")
	}
}

func TestNearestFree_GridProximityOrder(t *testing.T) {
	// On a 2x2 grid the row-0 nodes 1 and 2 precede the row-1 nodes 3
	// and 4, ties resolving to the lower node id.
	g := graph.NewGrid(2, 2)
	free := map[int]int{1: 1, 2: 2, 3: 3, 4: 4}

	expected := []int{1, 2, 3, 4}
	for _, want := range expected {
		slotID, found := NearestFree(g, graph.EntranceNode, free)
		if !found {
			t.Fatalf("expected slot %d, found none", want)
		}
		if slotID != want {
			t.Fatalf("expected slot %d, got %d", want, slotID)
		}
		delete(free, slotID)
	}
}
