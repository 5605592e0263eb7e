package model

// SlotView is the external representation of one slot inside a state
// snapshot. It carries only plain values; store-internal identifiers
// never appear here.
type SlotView struct {
	SlotID   int    `json:"slot_id"`
	NodeID   int    `json:"node_id"`
	Occupied bool   `json:"occupied"`
	Plate    string `json:"plate,omitempty"`
}

// StateView is the full lot snapshot pushed to subscribers after every
// state-changing event and returned by the snapshot endpoint. Two
// snapshots taken with no intervening admission or release are equal.
type StateView struct {
	Slots          []SlotView `json:"slots"`
	QueueLength    int        `json:"queue_length"`
	RatePerMinute  float64    `json:"rate_per_minute"`
	Revenue        float64    `json:"revenue"`
	Occupied       int        `json:"occupied"`
	Total          int        `json:"total"`
	AvgWaitSeconds *float64   `json:"avg_wait_seconds,omitempty"`
}
