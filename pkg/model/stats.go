package model

// Stats is the singleton aggregate of lifetime lot activity. Counters
// are monotonic; they are reset only when the stats document is first
// seeded.
type Stats struct {
	Revenue          float64 `json:"revenue" bson:"revenue"`
	TotalParked      int64   `json:"total_parked" bson:"total_parked"`
	TotalExited      int64   `json:"total_exited" bson:"total_exited"`
	TotalWaitSeconds float64 `json:"total_wait_seconds" bson:"total_wait_seconds"`
}

// StatsDelta is one atomic increment applied to the stats document.
type StatsDelta struct {
	Revenue          float64
	TotalParked      int64
	TotalExited      int64
	TotalWaitSeconds float64
}
