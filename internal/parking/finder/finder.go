// Package finder locates the free slot nearest to the entrance by
// shortest-path distance over the lot graph.
package finder

import (
	"container/heap"

	"parkd/internal/parking/graph"
)

type item struct {
	node int
	dist float64
}

// distHeap is a min-heap keyed by accumulated distance. Equal
// distances are ordered by ascending node id so that the choice among
// equidistant free slots is reproducible.
type distHeap []item

func (h distHeap) Len() int { return len(h) }
func (h distHeap) Less(i, j int) bool {
	if h[i].dist != h[j].dist {
		return h[i].dist < h[j].dist
	}
	return h[i].node < h[j].node
}
func (h distHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *distHeap) Push(x any)   { *h = append(*h, x.(item)) }
func (h *distHeap) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]
	return it
}

// NearestFree runs single-source Dijkstra from entrance and returns
// the slot id bound to the closest node present in freeByNode. The
// search stops the moment a popped node is bound to a free slot; full
// distances are never computed.
//
// An empty free set returns immediately, and an entrance absent from
// the graph means no slot is reachable. Both cases report found ==
// false; neither is an error.
func NearestFree(g *graph.Graph, entrance int, freeByNode map[int]int) (slotID int, found bool) {
	if len(freeByNode) == 0 {
		return 0, false
	}
	if !g.HasNode(entrance) {
		return 0, false
	}

	dist := map[int]float64{entrance: 0}
	visited := make(map[int]bool)

	h := &distHeap{{node: entrance, dist: 0}}
	heap.Init(h)

	for h.Len() > 0 {
		cur := heap.Pop(h).(item)
		if visited[cur.node] {
			continue
		}
		visited[cur.node] = true

		if id, ok := freeByNode[cur.node]; ok {
			return id, true
		}

		for _, e := range g.Neighbors(cur.node) {
			next := cur.dist + e.Weight
			if d, seen := dist[e.To]; !seen || next < d {
				dist[e.To] = next
				heap.Push(h, item{node: e.To, dist: next})
			}
		}
	}

	return 0, false
}
