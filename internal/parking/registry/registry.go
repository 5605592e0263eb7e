// Package registry keeps the in-memory mirror of persisted slot
// records. The store remains the durable source of truth; the registry
// is a read-optimizing cache rebuilt at startup and kept in sync on
// every mutation the coordinator performs.
package registry

import (
	"sort"

	"parkd/pkg/model"
)

// Registry indexes slots by slot id and by graph node. It is mutated
// only by the coordinator under its lock and is not safe for
// concurrent use on its own.
type Registry struct {
	slots      map[int]*model.Slot
	nodeToSlot map[int]int
}

func New() *Registry {
	return &Registry{
		slots:      make(map[int]*model.Slot),
		nodeToSlot: make(map[int]int),
	}
}

// Load replaces the registry contents with the given slot records.
func (r *Registry) Load(slots []*model.Slot) {
	r.slots = make(map[int]*model.Slot, len(slots))
	r.nodeToSlot = make(map[int]int, len(slots))
	for _, s := range slots {
		copied := *s
		r.slots[copied.SlotID] = &copied
		r.nodeToSlot[copied.NodeID] = copied.SlotID
	}
}

// Occupy marks a slot taken by plate.
func (r *Registry) Occupy(slotID int, plate string) {
	if s, ok := r.slots[slotID]; ok {
		s.Occupied = true
		s.Plate = plate
	}
}

// Free marks a slot vacant.
func (r *Registry) Free(slotID int) {
	if s, ok := r.slots[slotID]; ok {
		s.Occupied = false
		s.Plate = ""
	}
}

// Get returns a copy of the slot record.
func (r *Registry) Get(slotID int) (model.Slot, bool) {
	s, ok := r.slots[slotID]
	if !ok {
		return model.Slot{}, false
	}
	return *s, true
}

// FreeByNode maps every free slot's graph node to its slot id. The
// finder consumes this to know which popped nodes terminate the
// search.
func (r *Registry) FreeByNode() map[int]int {
	free := make(map[int]int)
	for _, s := range r.slots {
		if !s.Occupied {
			free[s.NodeID] = s.SlotID
		}
	}
	return free
}

// Counts returns (occupied, total).
func (r *Registry) Counts() (int, int) {
	occupied := 0
	for _, s := range r.slots {
		if s.Occupied {
			occupied++
		}
	}
	return occupied, len(r.slots)
}

// Views returns slot views ordered by slot id for stable snapshots.
func (r *Registry) Views() []model.SlotView {
	views := make([]model.SlotView, 0, len(r.slots))
	for _, s := range r.slots {
		views = append(views, model.SlotView{
			SlotID:   s.SlotID,
			NodeID:   s.NodeID,
			Occupied: s.Occupied,
			Plate:    s.Plate,
		})
	}
	sort.Slice(views, func(i, j int) bool { return views[i].SlotID < views[j].SlotID })
	return views
}
