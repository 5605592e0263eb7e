package errors

import "errors"

var (
	// ErrRecordNotFound is returned when no open occupancy record
	// exists for a plate.
	ErrRecordNotFound = errors.New("open occupancy record not found")

	// ErrDuplicatePlate is the tagged outcome of an occupancy insert
	// that lost the uniqueness race: another open record for the same
	// plate already exists. Handled as a normal branch, never as a
	// panic or masked failure.
	ErrDuplicatePlate = errors.New("open occupancy record already exists for plate")

	// ErrSlotNotFound is returned when a slot id is absent from the
	// slots collection.
	ErrSlotNotFound = errors.New("slot not found")

	// ErrStatsNotFound is returned when the stats singleton has not
	// been seeded.
	ErrStatsNotFound = errors.New("stats document not found")
)
