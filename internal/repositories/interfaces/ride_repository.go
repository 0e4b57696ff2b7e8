package interfaces

import (
	"context"
	"errors"

	"jamride/internal/models"
)

// ErrNotRideOwner is returned when a delete targets a ride the caller does
// not own.
var ErrNotRideOwner = errors.New("ride is not owned by this user")

// RideRepository persists ride listings in the durable key-value area.
//
// Every active ride owned by a user lives in exactly two places: the global
// active-ride pool and the owner's personal index. The two copies are always
// identical in content; implementations must never write one without the
// other. Expiry is lazy: listing calls drop entries whose concert date has
// passed and rewrite the stored collection.
type RideRepository interface {
	// Create derives the expiry from the concert date, assigns a
	// timestamp-derived id when the caller did not, and appends the ride to
	// both the global pool and the owner's index. The ride is updated in
	// place with the stored record.
	Create(ctx context.Context, ride *models.Ride) error

	// ListActive returns all unexpired rides from the global pool in
	// insertion order, evicting expired entries as a side effect.
	ListActive(ctx context.Context) ([]*models.Ride, error)

	// ListActiveForOwner is ListActive scoped to one owner's index.
	ListActiveForOwner(ctx context.Context, ownerID string) ([]*models.Ride, error)

	// Delete removes the ride from both the global pool and the owner's
	// index. Absent entries are a no-op, not an error; a ride owned by
	// someone else returns ErrNotRideOwner and is left untouched.
	Delete(ctx context.Context, rideID, ownerID string) error

	// SweepExpired evicts expired rides from the global pool and every
	// owner index, returning how many entries were dropped. Safe to run
	// concurrently with foreground reads and writes.
	SweepExpired(ctx context.Context) (int, error)
}
