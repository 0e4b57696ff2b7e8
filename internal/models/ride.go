package models

import (
	"time"
)

// Ride is a driver's offer to travel from a departure city to a concert's
// venue city on a given date, at a quoted per-passenger price. Rides are
// immutable once created except for deletion.
type Ride struct {
	ID        string         `json:"id"`
	Departure string         `json:"departure" validate:"required"`
	Concert   Concert        `json:"concert" validate:"required"`
	Price     int            `json:"price"`    // whole currency units, derived at creation
	Distance  int            `json:"distance"` // kilometers, derived at creation
	Driver    DriverSnapshot `json:"driver" validate:"required"`
	ExpiresAt time.Time      `json:"expiry_date"`
	CreatedAt time.Time      `json:"created_at"`
}

// concert dates arrive either as plain calendar dates or as full timestamps
var concertDateLayouts = []string{"2006-01-02", time.RFC3339}

// ExpiryFromConcertDate derives a ride's expiry instant from its concert
// date. A malformed or missing date yields the zero time, which IsActive
// treats as already expired.
func ExpiryFromConcertDate(date string) time.Time {
	for _, layout := range concertDateLayouts {
		if t, err := time.Parse(layout, date); err == nil {
			return t
		}
	}
	return time.Time{}
}

// IsActive reports whether the ride's concert date has not yet passed.
// Shared by the lazy filter-on-read path and the periodic sweep so both
// enforce identical semantics.
func (r *Ride) IsActive(now time.Time) bool {
	return r.ExpiresAt.After(now)
}
