package keyvalue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"jamride/internal/models"
	"jamride/internal/repositories/interfaces"
	"jamride/internal/utils"
	"jamride/pkg/keyvalue"
)

const (
	availableRidesKey = "availableRides"
	userRidesPrefix   = "userRides_"
)

func userRidesKey(ownerID string) string {
	return userRidesPrefix + ownerID
}

type rideRepository struct {
	store keyvalue.Store
}

func NewRideRepository(store keyvalue.Store) interfaces.RideRepository {
	return &rideRepository{store: store}
}

func (r *rideRepository) Create(ctx context.Context, ride *models.Ride) error {
	if ride.ID == "" {
		ride.ID = utils.NewTimestampID()
	}
	ride.ExpiresAt = models.ExpiryFromConcertDate(ride.Concert.Date)
	if ride.CreatedAt.IsZero() {
		ride.CreatedAt = time.Now()
	}

	// Both copies or neither: append to the global pool first, then the
	// owner's index immediately after. If the second write fails the first
	// is rolled back so the duplication invariant holds.
	previous, err := r.appendRide(ctx, availableRidesKey, ride)
	if err != nil {
		return fmt.Errorf("failed to store ride in global pool: %w", err)
	}

	if _, err := r.appendRide(ctx, userRidesKey(ride.Driver.ID), ride); err != nil {
		if rollbackErr := r.restore(ctx, availableRidesKey, previous); rollbackErr != nil {
			return fmt.Errorf("failed to store ride in owner index (rollback also failed: %v): %w", rollbackErr, err)
		}
		return fmt.Errorf("failed to store ride in owner index: %w", err)
	}

	return nil
}

func (r *rideRepository) ListActive(ctx context.Context) ([]*models.Ride, error) {
	return r.listActiveAt(ctx, availableRidesKey, time.Now())
}

func (r *rideRepository) ListActiveForOwner(ctx context.Context, ownerID string) ([]*models.Ride, error) {
	return r.listActiveAt(ctx, userRidesKey(ownerID), time.Now())
}

func (r *rideRepository) Delete(ctx context.Context, rideID, ownerID string) error {
	// Only the owner may withdraw a listing. Checking the global pool copy
	// keeps a non-owner from stripping the ride out of availableRides while
	// it stays in the real owner's index.
	rides, err := r.readRides(ctx, availableRidesKey)
	if err != nil {
		return fmt.Errorf("failed to read global pool: %w", err)
	}
	for _, ride := range rides {
		if ride.ID == rideID && ride.Driver.ID != ownerID {
			return interfaces.ErrNotRideOwner
		}
	}

	if err := r.removeRide(ctx, availableRidesKey, rideID); err != nil {
		return fmt.Errorf("failed to remove ride from global pool: %w", err)
	}
	if err := r.removeRide(ctx, userRidesKey(ownerID), rideID); err != nil {
		return fmt.Errorf("failed to remove ride from owner index: %w", err)
	}
	return nil
}

func (r *rideRepository) SweepExpired(ctx context.Context) (int, error) {
	now := time.Now()

	evicted, err := r.evictExpired(ctx, availableRidesKey, now)
	if err != nil {
		return 0, fmt.Errorf("failed to sweep global pool: %w", err)
	}

	keys, err := r.store.Keys(ctx, userRidesPrefix+"*")
	if err != nil {
		return evicted, fmt.Errorf("failed to enumerate owner indexes: %w", err)
	}
	for _, key := range keys {
		n, err := r.evictExpired(ctx, key, now)
		if err != nil {
			return evicted, fmt.Errorf("failed to sweep %s: %w", key, err)
		}
		evicted += n
	}

	return evicted, nil
}

// listActiveAt filters the collection by expiry and rewrites it when any
// entries were dropped, so every read doubles as a lazy eviction pass.
func (r *rideRepository) listActiveAt(ctx context.Context, key string, now time.Time) ([]*models.Ride, error) {
	rides, err := r.readRides(ctx, key)
	if err != nil {
		return nil, err
	}

	active := make([]models.Ride, 0, len(rides))
	for _, ride := range rides {
		if ride.IsActive(now) {
			active = append(active, ride)
		}
	}

	if len(active) != len(rides) {
		if err := r.writeRides(ctx, key, active); err != nil {
			return nil, fmt.Errorf("failed to evict expired rides: %w", err)
		}
	}

	out := make([]*models.Ride, len(active))
	for i := range active {
		out[i] = &active[i]
	}
	return out, nil
}

func (r *rideRepository) evictExpired(ctx context.Context, key string, now time.Time) (int, error) {
	// Always re-read right before writing; the sweep may race a foreground
	// read-modify-write on the same key.
	rides, err := r.readRides(ctx, key)
	if err != nil {
		return 0, err
	}

	active := rides[:0]
	for _, ride := range rides {
		if ride.IsActive(now) {
			active = append(active, ride)
		}
	}

	dropped := len(rides) - len(active)
	if dropped == 0 {
		return 0, nil
	}
	if err := r.writeRides(ctx, key, active); err != nil {
		return 0, err
	}
	return dropped, nil
}

// appendRide returns the raw value that was stored under the key before the
// write, for rollback on a failed mirror.
func (r *rideRepository) appendRide(ctx context.Context, key string, ride *models.Ride) (string, error) {
	previous, err := r.store.Get(ctx, key)
	if err != nil && !errors.Is(err, keyvalue.ErrNotFound) {
		return "", err
	}

	rides, err := decodeRides(previous)
	if err != nil {
		return "", err
	}

	rides = append(rides, *ride)
	if err := r.writeRides(ctx, key, rides); err != nil {
		return "", err
	}
	return previous, nil
}

// restore puts a key back the way it was before a failed mirror write. An
// empty snapshot means the key did not exist, so restoring deletes it.
func (r *rideRepository) restore(ctx context.Context, key, raw string) error {
	if raw == "" {
		return r.store.Delete(ctx, key)
	}
	return r.store.Set(ctx, key, raw)
}

func (r *rideRepository) removeRide(ctx context.Context, key, rideID string) error {
	rides, err := r.readRides(ctx, key)
	if err != nil {
		return err
	}

	kept := rides[:0]
	for _, ride := range rides {
		if ride.ID != rideID {
			kept = append(kept, ride)
		}
	}

	if len(kept) == len(rides) {
		return nil
	}
	return r.writeRides(ctx, key, kept)
}

func (r *rideRepository) readRides(ctx context.Context, key string) ([]models.Ride, error) {
	raw, err := r.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, keyvalue.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return decodeRides(raw)
}

func (r *rideRepository) writeRides(ctx context.Context, key string, rides []models.Ride) error {
	if rides == nil {
		rides = []models.Ride{}
	}
	data, err := json.Marshal(rides)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, key, string(data))
}

func decodeRides(raw string) ([]models.Ride, error) {
	if raw == "" {
		return nil, nil
	}
	var rides []models.Ride
	if err := json.Unmarshal([]byte(raw), &rides); err != nil {
		return nil, fmt.Errorf("corrupt ride collection: %w", err)
	}
	return rides, nil
}
