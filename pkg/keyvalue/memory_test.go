package keyvalue

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"
)

func TestMemoryStoreGetSet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get on a missing key returned %v, want ErrNotFound", err)
	}

	if err := store.Set(ctx, "k", "v"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	value, err := store.Get(ctx, "k")
	if err != nil || value != "v" {
		t.Errorf("Get = %q, %v", value, err)
	}

	if err := store.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after Delete returned %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreTTLExpiresLazily(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if err := store.SetTTL(ctx, "k", "v", 10*time.Millisecond); err != nil {
		t.Fatalf("SetTTL: %v", err)
	}
	if _, err := store.Get(ctx, "k"); err != nil {
		t.Fatalf("Get before expiry: %v", err)
	}

	time.Sleep(20 * time.Millisecond)
	if _, err := store.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after expiry returned %v, want ErrNotFound", err)
	}

	// A plain Set clears any previous deadline.
	if err := store.SetTTL(ctx, "p", "v", 10*time.Millisecond); err != nil {
		t.Fatalf("SetTTL: %v", err)
	}
	if err := store.Set(ctx, "p", "v2"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(20 * time.Millisecond)
	if value, err := store.Get(ctx, "p"); err != nil || value != "v2" {
		t.Errorf("Get = %q, %v; Set should have made the key persistent", value, err)
	}
}

func TestMemoryStoreKeysPattern(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	for _, key := range []string{"userRides_a", "userRides_b", "chats_a", "availableRides"} {
		if err := store.Set(ctx, key, "[]"); err != nil {
			t.Fatalf("Set: %v", err)
		}
	}

	keys, err := store.Keys(ctx, "userRides_*")
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	sort.Strings(keys)
	want := []string{"userRides_a", "userRides_b"}
	if len(keys) != len(want) || keys[0] != want[0] || keys[1] != want[1] {
		t.Errorf("Keys = %v, want %v", keys, want)
	}
}
