package model

import "time"

// OccupancyRecord is the durable record of one stay. It is open while
// ExitTime is nil and closed afterwards; closed records are retained
// for stats and audit, never deleted or reopened.
//
// At most one open record may exist per plate at any time; the store
// enforces this with a partial unique index on plate filtered to
// exit_time == null.
type OccupancyRecord struct {
	ID            string     `json:"id,omitempty" bson:"_id,omitempty"`
	Plate         string     `json:"plate" bson:"plate" validate:"required,plate"`
	SlotID        int        `json:"slot_id" bson:"slot_id"`
	EntryTime     time.Time  `json:"entry_time" bson:"entry_time"`
	ExitTime      *time.Time `json:"exit_time,omitempty" bson:"exit_time"`
	Charge        *float64   `json:"charge,omitempty" bson:"charge"`
	RatePerMinute *float64   `json:"rate_per_minute,omitempty" bson:"rate_per_minute"`
}

// Open reports whether the record is still active.
func (r *OccupancyRecord) Open() bool {
	return r.ExitTime == nil
}
