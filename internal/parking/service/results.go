package service

import "time"

// AdmissionStatus tags the outcome of an admission request. Expected
// outcomes are values, not errors; only store failures surface as
// errors.
type AdmissionStatus string

const (
	// StatusAdmitted means a slot was assigned.
	StatusAdmitted AdmissionStatus = "admitted"
	// StatusQueued means the lot was full and the vehicle joined the
	// wait queue (or was already waiting).
	StatusQueued AdmissionStatus = "queued"
	// StatusAlreadyParked means an open occupancy record already
	// exists for the plate.
	StatusAlreadyParked AdmissionStatus = "already_parked"
	// StatusConflict means a concurrent admission for the same plate
	// won the uniqueness race; the slot claim was rolled back and the
	// caller may retry.
	StatusConflict AdmissionStatus = "conflict"
)

type AdmissionResult struct {
	Status        AdmissionStatus `json:"status"`
	SlotID        int             `json:"slot_id,omitempty"`
	RatePerMinute float64         `json:"rate_per_minute,omitempty"`
}

// ReleaseStatus tags the outcome of a release request.
type ReleaseStatus string

const (
	StatusReleased ReleaseStatus = "released"
	// StatusNotFound means the plate has no open occupancy record:
	// never parked, already released, or waiting in the queue.
	StatusNotFound ReleaseStatus = "not_found"
)

type ReleaseResult struct {
	Status ReleaseStatus `json:"status"`
	Charge float64       `json:"charge,omitempty"`
}

// VehicleStatus describes where a single vehicle currently is.
type VehicleStatus struct {
	Plate         string     `json:"plate"`
	State         string     `json:"state"`
	SlotID        int        `json:"slot_id,omitempty"`
	EntryTime     *time.Time `json:"entry_time,omitempty"`
	QueuePosition int        `json:"queue_position,omitempty"`
}

const (
	VehicleParked = "parked"
	VehicleQueued = "queued"
)
