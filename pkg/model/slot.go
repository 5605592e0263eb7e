package model

// Slot is one physical parking space bound to a node of the lot graph.
// Occupied is true exactly when Plate is non-empty; NodeID maps to at
// most one slot across the registry.
type Slot struct {
	SlotID   int    `json:"slot_id" bson:"slot_id" validate:"min=0"`
	NodeID   int    `json:"node_id" bson:"node_id" validate:"min=0"`
	Occupied bool   `json:"occupied" bson:"occupied"`
	Plate    string `json:"plate,omitempty" bson:"plate,omitempty"`
}
