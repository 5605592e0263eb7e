// Package pricing derives the demand-sensitive per-minute rate and the
// closing charge for a stay.
package pricing

import (
	"math"
	"time"
)

// Calculator computes rates from instantaneous occupancy. The rate is
// a continuous function of the occupancy ratio, monotonically
// non-decreasing and bounded in [base, 2*base].
type Calculator struct {
	base float64
}

func NewCalculator(baseRatePerMinute float64) *Calculator {
	return &Calculator{base: baseRatePerMinute}
}

// Rate returns base * (1 + occupied/total) rounded to 2 decimals. An
// empty lot (total == 0) prices at the base rate.
func (c *Calculator) Rate(occupied, total int) float64 {
	if total == 0 {
		return round2(c.base)
	}
	ratio := float64(occupied) / float64(total)
	return round2(c.base * (1 + ratio))
}

// Charge converts an elapsed stay into money at the given per-minute
// rate, rounded to 2 decimals.
func (c *Calculator) Charge(elapsed time.Duration, ratePerMinute float64) float64 {
	minutes := elapsed.Seconds() / 60.0
	return round2(minutes * ratePerMinute)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
