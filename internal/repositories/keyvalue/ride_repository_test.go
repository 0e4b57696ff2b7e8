package keyvalue

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"jamride/internal/models"
	"jamride/internal/repositories/interfaces"
	"jamride/pkg/keyvalue"
)

// failingStore passes everything through to a memory store except Set on one
// chosen key, to make the second write of a mirrored pair fail.
type failingStore struct {
	keyvalue.Store
	failKey string
}

func (s *failingStore) Set(ctx context.Context, key, value string) error {
	if key != "" && key == s.failKey {
		return errors.New("store unavailable")
	}
	return s.Store.Set(ctx, key, value)
}

func testRide(ownerID, artist, date string) *models.Ride {
	return &models.Ride{
		Departure: "Roma",
		Concert: models.Concert{
			ID:     "ev-" + artist,
			Artist: artist,
			City:   "Milano",
			Date:   date,
		},
		Price:    18,
		Distance: 150,
		Driver: models.DriverSnapshot{
			ID:   ownerID,
			Name: "Marco",
		},
	}
}

func TestCreateStoresBothCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewRideRepository(keyvalue.NewMemoryStore())

	ride := testRide("u1", "Radiohead", "2099-06-01")
	if err := repo.Create(ctx, ride); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if ride.ID == "" {
		t.Fatal("Create did not assign an id")
	}
	if ride.ExpiresAt.IsZero() {
		t.Fatal("Create did not derive an expiry")
	}

	global, err := repo.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	personal, err := repo.ListActiveForOwner(ctx, "u1")
	if err != nil {
		t.Fatalf("ListActiveForOwner: %v", err)
	}

	if len(global) != 1 || len(personal) != 1 {
		t.Fatalf("expected 1 ride in each collection, got %d global, %d personal", len(global), len(personal))
	}
	if global[0].ID != ride.ID || personal[0].ID != ride.ID {
		t.Errorf("id mismatch: global %q, personal %q, want %q", global[0].ID, personal[0].ID, ride.ID)
	}
	if !reflect.DeepEqual(global[0], personal[0]) {
		t.Errorf("the two stored copies differ:\nglobal:   %+v\npersonal: %+v", global[0], personal[0])
	}
}

func TestListingEvictsExpiredRides(t *testing.T) {
	ctx := context.Background()
	store := keyvalue.NewMemoryStore()
	repo := NewRideRepository(store)

	expired := testRide("u1", "Pink Floyd", "2001-01-01")
	active := testRide("u1", "Radiohead", "2099-06-01")
	for _, ride := range []*models.Ride{expired, active} {
		if err := repo.Create(ctx, ride); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	global, err := repo.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if len(global) != 1 || global[0].ID != active.ID {
		t.Fatalf("expected only the active ride, got %d rides", len(global))
	}

	// The listing call rewrote the stored collection, not just its view.
	raw, err := store.Get(ctx, "availableRides")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if strings.Contains(raw, `"id":"`+expired.ID+`"`) {
		t.Error("expired ride still present in the stored global collection")
	}

	personal, err := repo.ListActiveForOwner(ctx, "u1")
	if err != nil {
		t.Fatalf("ListActiveForOwner: %v", err)
	}
	if len(personal) != 1 || personal[0].ID != active.ID {
		t.Fatalf("expected only the active ride in the owner index, got %d rides", len(personal))
	}
}

func TestMalformedConcertDateIsTreatedAsExpired(t *testing.T) {
	ctx := context.Background()
	repo := NewRideRepository(keyvalue.NewMemoryStore())

	ride := testRide("u1", "Muse", "not-a-date")
	if err := repo.Create(ctx, ride); err != nil {
		t.Fatalf("Create: %v", err)
	}

	rides, err := repo.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if len(rides) != 0 {
		t.Fatalf("expected a ride with a malformed date to be excluded, got %d rides", len(rides))
	}
}

func TestDeleteRemovesBothCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewRideRepository(keyvalue.NewMemoryStore())

	ride := testRide("u1", "Radiohead", "2099-06-01")
	if err := repo.Create(ctx, ride); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Delete(ctx, ride.ID, "u1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	global, _ := repo.ListActive(ctx)
	personal, _ := repo.ListActiveForOwner(ctx, "u1")
	if len(global) != 0 || len(personal) != 0 {
		t.Errorf("expected both collections empty, got %d global, %d personal", len(global), len(personal))
	}
}

func TestDeleteByNonOwnerIsRejected(t *testing.T) {
	ctx := context.Background()
	repo := NewRideRepository(keyvalue.NewMemoryStore())

	ride := testRide("u1", "Radiohead", "2099-06-01")
	if err := repo.Create(ctx, ride); err != nil {
		t.Fatalf("Create: %v", err)
	}

	err := repo.Delete(ctx, ride.ID, "mallory")
	if !errors.Is(err, interfaces.ErrNotRideOwner) {
		t.Fatalf("Delete by a non-owner returned %v, want ErrNotRideOwner", err)
	}

	// Both copies survive untouched.
	global, _ := repo.ListActive(ctx)
	personal, _ := repo.ListActiveForOwner(ctx, "u1")
	if len(global) != 1 || len(personal) != 1 {
		t.Errorf("expected both copies intact, got %d global, %d personal", len(global), len(personal))
	}
}

func TestCreateRollsBackGlobalPoolOnMirrorFailure(t *testing.T) {
	ctx := context.Background()
	store := &failingStore{Store: keyvalue.NewMemoryStore()}
	repo := NewRideRepository(store)

	first := testRide("u1", "Radiohead", "2099-06-01")
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("Create: %v", err)
	}

	store.failKey = "userRides_u1"
	if err := repo.Create(ctx, testRide("u1", "Muse", "2099-07-01")); err == nil {
		t.Fatal("Create should fail when the owner index write fails")
	}

	store.failKey = ""
	global, err := repo.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if len(global) != 1 || global[0].ID != first.ID {
		t.Fatalf("global pool should be rolled back to the first ride only, got %d rides", len(global))
	}
	personal, _ := repo.ListActiveForOwner(ctx, "u1")
	if len(personal) != 1 || personal[0].ID != first.ID {
		t.Fatalf("owner index should hold only the first ride, got %d rides", len(personal))
	}
}

func TestCreateRollbackRemovesFreshGlobalPool(t *testing.T) {
	ctx := context.Background()
	store := &failingStore{Store: keyvalue.NewMemoryStore(), failKey: "userRides_u1"}
	repo := NewRideRepository(store)

	if err := repo.Create(ctx, testRide("u1", "Radiohead", "2099-06-01")); err == nil {
		t.Fatal("Create should fail when the owner index write fails")
	}

	// The pool did not exist before the failed pair, so rolling back deletes
	// the key instead of writing an empty value.
	if _, err := store.Get(ctx, "availableRides"); !errors.Is(err, keyvalue.ErrNotFound) {
		t.Errorf("never-written global pool should be absent after rollback, Get returned %v", err)
	}
}

func TestDeleteAbsentRideIsNoOp(t *testing.T) {
	ctx := context.Background()
	repo := NewRideRepository(keyvalue.NewMemoryStore())

	if err := repo.Delete(ctx, "missing", "u1"); err != nil {
		t.Fatalf("Delete of an absent ride should be a no-op, got %v", err)
	}
}

func TestSweepExpiredCoversAllOwnerIndexes(t *testing.T) {
	ctx := context.Background()
	repo := NewRideRepository(keyvalue.NewMemoryStore())

	for _, ride := range []*models.Ride{
		testRide("u1", "Pink Floyd", "2001-01-01"),
		testRide("u2", "Queen", "2002-01-01"),
		testRide("u2", "Radiohead", "2099-06-01"),
	} {
		if err := repo.Create(ctx, ride); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	// Two expired rides live in the global pool and once more in their
	// owners' indexes.
	dropped, err := repo.SweepExpired(ctx)
	if err != nil {
		t.Fatalf("SweepExpired: %v", err)
	}
	if dropped != 4 {
		t.Errorf("SweepExpired dropped %d entries, want 4", dropped)
	}

	u2, err := repo.ListActiveForOwner(ctx, "u2")
	if err != nil {
		t.Fatalf("ListActiveForOwner: %v", err)
	}
	if len(u2) != 1 {
		t.Errorf("expected u2 to keep one active ride, got %d", len(u2))
	}

	// A second sweep finds nothing left to drop.
	dropped, err = repo.SweepExpired(ctx)
	if err != nil {
		t.Fatalf("SweepExpired: %v", err)
	}
	if dropped != 0 {
		t.Errorf("second sweep dropped %d entries, want 0", dropped)
	}
}
