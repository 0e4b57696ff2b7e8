package keyvalue

import (
	"context"
	"errors"
	"testing"

	"jamride/internal/models"
	"jamride/internal/repositories/interfaces"
	"jamride/pkg/keyvalue"
)

var (
	passenger = models.Identity{ID: "anna", Name: "Anna"}
	driver    = models.Identity{ID: "marco", Name: "Marco"}
)

func driverRide(date string) *models.Ride {
	return &models.Ride{
		ID:        "ride-1",
		Departure: "Roma",
		Concert: models.Concert{
			ID:     "ev-1",
			Artist: "Radiohead",
			City:   "Milano",
			Date:   date,
		},
		Driver: models.DriverSnapshot{
			ID:   driver.ID,
			Name: driver.Name,
		},
	}
}

func TestStartThreadMirrorsBothSides(t *testing.T) {
	ctx := context.Background()
	repo := NewChatRepository(keyvalue.NewMemoryStore())

	thread, err := repo.StartThread(ctx, passenger, driverRide("2099-06-01"))
	if err != nil {
		t.Fatalf("StartThread: %v", err)
	}

	if thread.User.ID != driver.ID {
		t.Errorf("requester thread user = %q, want the driver %q", thread.User.ID, driver.ID)
	}
	if thread.Unread != 0 {
		t.Errorf("requester thread unread = %d, want 0", thread.Unread)
	}
	if thread.Ride.Status != models.RequestStatusPending {
		t.Errorf("requester thread status = %q, want pending", thread.Ride.Status)
	}
	if len(thread.Messages) != 1 || thread.Messages[0].Type != models.MessageTypeRequest {
		t.Fatalf("requester thread should hold exactly the request message, got %+v", thread.Messages)
	}
	if thread.Messages[0].Sender != models.SenderMe {
		t.Errorf("requester sees the request as %q, want %q", thread.Messages[0].Sender, models.SenderMe)
	}

	driverThreads, err := repo.ListThreads(ctx, driver.ID)
	if err != nil {
		t.Fatalf("ListThreads: %v", err)
	}
	if len(driverThreads) != 1 {
		t.Fatalf("driver has %d threads, want 1", len(driverThreads))
	}

	mirror := driverThreads[0]
	if mirror.User.ID != passenger.ID {
		t.Errorf("driver thread user = %q, want the requester %q", mirror.User.ID, passenger.ID)
	}
	if mirror.Unread != 1 {
		t.Errorf("driver thread unread = %d, want 1", mirror.Unread)
	}
	if mirror.Messages[0].Sender != models.SenderOther {
		t.Errorf("driver sees the request as %q, want %q", mirror.Messages[0].Sender, models.SenderOther)
	}
}

func TestStartThreadIsIdempotentPerRide(t *testing.T) {
	ctx := context.Background()
	repo := NewChatRepository(keyvalue.NewMemoryStore())

	ride := driverRide("2099-06-01")
	if _, err := repo.StartThread(ctx, passenger, ride); err != nil {
		t.Fatalf("StartThread: %v", err)
	}
	if _, err := repo.StartThread(ctx, passenger, ride); !errors.Is(err, interfaces.ErrThreadExists) {
		t.Fatalf("second StartThread returned %v, want ErrThreadExists", err)
	}

	threads, err := repo.ListThreads(ctx, passenger.ID)
	if err != nil {
		t.Fatalf("ListThreads: %v", err)
	}
	if len(threads) != 1 {
		t.Errorf("requester has %d threads, want 1", len(threads))
	}
}

func TestStartThreadRollsBackOnMirrorFailure(t *testing.T) {
	ctx := context.Background()
	store := &failingStore{Store: keyvalue.NewMemoryStore(), failKey: "chats_" + driver.ID}
	repo := NewChatRepository(store)

	if _, err := repo.StartThread(ctx, passenger, driverRide("2099-06-01")); err == nil {
		t.Fatal("StartThread should fail when the driver-side write fails")
	}

	// The requester-side write is rolled back; the key did not exist before,
	// so it must be absent again rather than hold an empty collection.
	if _, err := store.Get(ctx, "chats_"+passenger.ID); !errors.Is(err, keyvalue.ErrNotFound) {
		t.Errorf("requester key should be absent after rollback, Get returned %v", err)
	}
	threads, err := repo.ListThreads(ctx, passenger.ID)
	if err != nil {
		t.Fatalf("ListThreads: %v", err)
	}
	if len(threads) != 0 {
		t.Errorf("requester has %d threads after a failed start, want 0", len(threads))
	}
}

func TestAppendMessageRollsBackOnMirrorFailure(t *testing.T) {
	ctx := context.Background()
	store := &failingStore{Store: keyvalue.NewMemoryStore()}
	repo := NewChatRepository(store)

	thread, err := repo.StartThread(ctx, passenger, driverRide("2099-06-01"))
	if err != nil {
		t.Fatalf("StartThread: %v", err)
	}

	store.failKey = "chats_" + driver.ID
	if _, err := repo.AppendMessage(ctx, thread.ID, passenger, "ci sei?"); err == nil {
		t.Fatal("AppendMessage should fail when the mirror write fails")
	}

	store.failKey = ""
	mine, err := repo.GetThread(ctx, passenger.ID, thread.ID)
	if err != nil {
		t.Fatalf("GetThread: %v", err)
	}
	if len(mine.Messages) != 1 || mine.Messages[0].Type != models.MessageTypeRequest {
		t.Errorf("sender's copy should be rolled back to the request only, got %d messages", len(mine.Messages))
	}
}

func TestAppendMessageFlipsSenderOnMirror(t *testing.T) {
	ctx := context.Background()
	repo := NewChatRepository(keyvalue.NewMemoryStore())

	thread, err := repo.StartThread(ctx, passenger, driverRide("2099-06-01"))
	if err != nil {
		t.Fatalf("StartThread: %v", err)
	}

	if _, err := repo.AppendMessage(ctx, thread.ID, passenger, "hi"); err != nil {
		t.Fatalf("AppendMessage: %v", err)
	}

	mine, err := repo.GetThread(ctx, passenger.ID, thread.ID)
	if err != nil {
		t.Fatalf("GetThread: %v", err)
	}
	last := mine.LastMessage()
	if last == nil || last.Text != "hi" || last.Sender != models.SenderMe {
		t.Errorf("sender's copy last message = %+v, want text 'hi' from 'me'", last)
	}

	driverThreads, err := repo.ListThreads(ctx, driver.ID)
	if err != nil {
		t.Fatalf("ListThreads: %v", err)
	}
	if len(driverThreads) != 1 {
		t.Fatalf("driver has %d threads, want 1", len(driverThreads))
	}
	mirror := driverThreads[0]
	if mirror.User.ID != passenger.ID {
		t.Errorf("driver thread user = %q, want %q", mirror.User.ID, passenger.ID)
	}
	mirrorLast := mirror.LastMessage()
	if mirrorLast == nil || mirrorLast.Text != "hi" || mirrorLast.Sender != models.SenderOther {
		t.Errorf("mirror last message = %+v, want text 'hi' from 'other'", mirrorLast)
	}
	if mirror.Unread != 2 {
		t.Errorf("driver unread = %d, want 2 (request plus message)", mirror.Unread)
	}
}

func TestRespondToRequestResolvesBothSides(t *testing.T) {
	ctx := context.Background()
	repo := NewChatRepository(keyvalue.NewMemoryStore())

	thread, err := repo.StartThread(ctx, passenger, driverRide("2099-06-01"))
	if err != nil {
		t.Fatalf("StartThread: %v", err)
	}

	driverThreads, _ := repo.ListThreads(ctx, driver.ID)
	if _, err := repo.RespondToRequest(ctx, driverThreads[0].ID, driver, true); err != nil {
		t.Fatalf("RespondToRequest: %v", err)
	}

	for _, side := range []struct {
		owner    string
		threadID string
	}{
		{passenger.ID, thread.ID},
		{driver.ID, driverThreads[0].ID},
	} {
		got, err := repo.GetThread(ctx, side.owner, side.threadID)
		if err != nil {
			t.Fatalf("GetThread(%s): %v", side.owner, err)
		}
		if got.Ride.Status != models.RequestStatusAccepted {
			t.Errorf("%s sees status %q, want accepted", side.owner, got.Ride.Status)
		}
		for _, m := range got.Messages {
			if m.Type == models.MessageTypeRequest {
				t.Errorf("%s still has a request-typed message after resolution", side.owner)
			}
		}
		last := got.LastMessage()
		if last == nil || last.Type != models.MessageTypeSystem {
			t.Errorf("%s last message = %+v, want a system message", side.owner, last)
		}
	}
}

func TestDeleteThreadIsLocalOnly(t *testing.T) {
	ctx := context.Background()
	repo := NewChatRepository(keyvalue.NewMemoryStore())

	thread, err := repo.StartThread(ctx, passenger, driverRide("2099-06-01"))
	if err != nil {
		t.Fatalf("StartThread: %v", err)
	}

	if err := repo.DeleteThread(ctx, thread.ID, passenger.ID); err != nil {
		t.Fatalf("DeleteThread: %v", err)
	}

	mine, _ := repo.ListThreads(ctx, passenger.ID)
	if len(mine) != 0 {
		t.Errorf("requester still has %d threads after delete", len(mine))
	}

	theirs, _ := repo.ListThreads(ctx, driver.ID)
	if len(theirs) != 1 {
		t.Errorf("driver's copy was touched by the requester's delete: %d threads", len(theirs))
	}
}

func TestMessagingToleratesDeletedCounterpart(t *testing.T) {
	ctx := context.Background()
	repo := NewChatRepository(keyvalue.NewMemoryStore())

	thread, err := repo.StartThread(ctx, passenger, driverRide("2099-06-01"))
	if err != nil {
		t.Fatalf("StartThread: %v", err)
	}

	driverThreads, _ := repo.ListThreads(ctx, driver.ID)
	if err := repo.DeleteThread(ctx, driverThreads[0].ID, driver.ID); err != nil {
		t.Fatalf("DeleteThread: %v", err)
	}

	// The passenger can still write into their own copy.
	updated, err := repo.AppendMessage(ctx, thread.ID, passenger, "sei ancora li?")
	if err != nil {
		t.Fatalf("AppendMessage after counterpart delete: %v", err)
	}
	if updated.LastMessage().Text != "sei ancora li?" {
		t.Errorf("message not appended to the surviving copy")
	}
}

func TestMarkThreadRead(t *testing.T) {
	ctx := context.Background()
	repo := NewChatRepository(keyvalue.NewMemoryStore())

	if _, err := repo.StartThread(ctx, passenger, driverRide("2099-06-01")); err != nil {
		t.Fatalf("StartThread: %v", err)
	}

	driverThreads, _ := repo.ListThreads(ctx, driver.ID)
	if driverThreads[0].Unread != 1 {
		t.Fatalf("driver unread = %d, want 1", driverThreads[0].Unread)
	}

	if err := repo.MarkThreadRead(ctx, driverThreads[0].ID, driver.ID); err != nil {
		t.Fatalf("MarkThreadRead: %v", err)
	}

	driverThreads, _ = repo.ListThreads(ctx, driver.ID)
	if driverThreads[0].Unread != 0 {
		t.Errorf("driver unread = %d after MarkThreadRead, want 0", driverThreads[0].Unread)
	}

	if err := repo.MarkThreadRead(ctx, "missing", driver.ID); !errors.Is(err, interfaces.ErrThreadNotFound) {
		t.Errorf("MarkThreadRead on a missing thread returned %v, want ErrThreadNotFound", err)
	}
}
