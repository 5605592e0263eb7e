package model

// GraphEdge is one weighted directed edge of a caller-supplied lot
// topology, expressed with plain integers only.
type GraphEdge struct {
	From   int     `json:"from" validate:"min=0"`
	To     int     `json:"to" validate:"min=0"`
	Weight float64 `json:"weight" validate:"min=0"`
}

// EntryRequest asks for admission of one vehicle. Graph is optional;
// when absent the configured default grid topology is used.
type EntryRequest struct {
	Plate string      `json:"plate" validate:"required"`
	Graph []GraphEdge `json:"graph,omitempty" validate:"omitempty,dive"`
}

// ExitRequest asks for release of one vehicle.
type ExitRequest struct {
	Plate string      `json:"plate" validate:"required"`
	Graph []GraphEdge `json:"graph,omitempty" validate:"omitempty,dive"`
}
