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

const chatsPrefix = "chats_"

func chatsKey(ownerID string) string {
	return chatsPrefix + ownerID
}

type chatRepository struct {
	store keyvalue.Store
}

func NewChatRepository(store keyvalue.Store) interfaces.ChatRepository {
	return &chatRepository{store: store}
}

func (r *chatRepository) StartThread(ctx context.Context, requester models.Identity, ride *models.Ride) (*models.Thread, error) {
	requesterThreads, requesterRaw, err := r.readThreads(ctx, chatsKey(requester.ID))
	if err != nil {
		return nil, err
	}

	for _, t := range requesterThreads {
		if t.Ride.ID == ride.ID {
			return nil, interfaces.ErrThreadExists
		}
	}

	now := time.Now()
	request := models.Message{
		ID:     utils.NewTimestampID(),
		Sender: models.SenderMe,
		Text:   fmt.Sprintf("Ciao! Mi piacerebbe unirmi al tuo viaggio per il concerto di %s", ride.Concert.Artist),
		Time:   utils.FormatClock(now),
		Type:   models.MessageTypeRequest,
	}

	thread := models.Thread{
		ID:   utils.NewTimestampID(),
		User: models.UserSnapshot{ID: ride.Driver.ID, Name: ride.Driver.Name, Avatar: ride.Driver.Avatar},
		Ride: models.ThreadRide{
			ID:      ride.ID,
			Concert: ride.Concert.Artist,
			Date:    ride.Concert.Date,
			Status:  models.RequestStatusPending,
		},
		Messages: []models.Message{request},
		Unread:   0,
	}

	// The driver's mirror shares the thread id but sees the requester as
	// the other participant, the request flipped to "other", and one
	// unread entry.
	driverRequest := request
	driverRequest.Sender = request.Sender.Flip()
	driverThread := thread
	driverThread.User = requester.Snapshot()
	driverThread.Messages = []models.Message{driverRequest}
	driverThread.Unread = 1

	if err := r.writeThreads(ctx, chatsKey(requester.ID), append(requesterThreads, thread)); err != nil {
		return nil, fmt.Errorf("failed to store requester thread: %w", err)
	}

	driverThreads, _, err := r.readThreads(ctx, chatsKey(ride.Driver.ID))
	if err == nil {
		err = r.writeThreads(ctx, chatsKey(ride.Driver.ID), append(driverThreads, driverThread))
	}
	if err != nil {
		if rollbackErr := r.restore(ctx, chatsKey(requester.ID), requesterRaw); rollbackErr != nil {
			return nil, fmt.Errorf("failed to store driver thread (rollback also failed: %v): %w", rollbackErr, err)
		}
		return nil, fmt.Errorf("failed to store driver thread: %w", err)
	}

	return &thread, nil
}

func (r *chatRepository) ListThreads(ctx context.Context, ownerID string) ([]*models.Thread, error) {
	threads, _, err := r.readThreads(ctx, chatsKey(ownerID))
	if err != nil {
		return nil, err
	}

	out := make([]*models.Thread, len(threads))
	for i := range threads {
		out[i] = &threads[i]
	}
	return out, nil
}

func (r *chatRepository) GetThread(ctx context.Context, ownerID, threadID string) (*models.Thread, error) {
	threads, _, err := r.readThreads(ctx, chatsKey(ownerID))
	if err != nil {
		return nil, err
	}
	for i := range threads {
		if threads[i].ID == threadID {
			return &threads[i], nil
		}
	}
	return nil, interfaces.ErrThreadNotFound
}

func (r *chatRepository) AppendMessage(ctx context.Context, threadID string, sender models.Identity, text string) (*models.Thread, error) {
	message := models.Message{
		ID:     utils.NewTimestampID(),
		Sender: models.SenderMe,
		Text:   text,
		Time:   utils.FormatClock(time.Now()),
		Type:   models.MessageTypeText,
	}

	updated, err := r.applyMirrored(ctx, threadID, sender.ID,
		func(t *models.Thread) {
			t.Messages = append(t.Messages, message)
		},
		func(t *models.Thread) {
			mirrored := message
			mirrored.Sender = message.Sender.Flip()
			t.Messages = append(t.Messages, mirrored)
			t.Unread++
		})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *chatRepository) RespondToRequest(ctx context.Context, threadID string, responder models.Identity, accepted bool) (*models.Thread, error) {
	status := models.RequestStatusRejected
	text := "Richiesta rifiutata"
	if accepted {
		status = models.RequestStatusAccepted
		text = "Richiesta accettata"
	}

	outcome := models.Message{
		ID:     utils.NewTimestampID(),
		Sender: models.SenderSystem,
		Text:   text,
		Time:   utils.FormatClock(time.Now()),
		Type:   models.MessageTypeSystem,
	}

	resolve := func(t *models.Thread) {
		kept := t.Messages[:0]
		for _, m := range t.Messages {
			if m.Type != models.MessageTypeRequest {
				kept = append(kept, m)
			}
		}
		t.Messages = append(kept, outcome)
		t.Ride.Status = status
	}

	return r.applyMirrored(ctx, threadID, responder.ID, resolve, resolve)
}

func (r *chatRepository) DeleteThread(ctx context.Context, threadID, ownerID string) error {
	threads, _, err := r.readThreads(ctx, chatsKey(ownerID))
	if err != nil {
		return err
	}

	kept := threads[:0]
	for _, t := range threads {
		if t.ID != threadID {
			kept = append(kept, t)
		}
	}

	if len(kept) == len(threads) {
		return nil
	}
	// Deletion is local: the counterpart keeps their copy untouched.
	return r.writeThreads(ctx, chatsKey(ownerID), kept)
}

func (r *chatRepository) MarkThreadRead(ctx context.Context, threadID, ownerID string) error {
	threads, _, err := r.readThreads(ctx, chatsKey(ownerID))
	if err != nil {
		return err
	}
	for i := range threads {
		if threads[i].ID == threadID {
			if threads[i].Unread == 0 {
				return nil
			}
			threads[i].Unread = 0
			return r.writeThreads(ctx, chatsKey(ownerID), threads)
		}
	}
	return interfaces.ErrThreadNotFound
}

// applyMirrored performs one state change on both copies of a conversation:
// localFn on the acting side's thread (found by id under the actor's key),
// mirrorFn on the counterpart's thread (found by user.id matching the actor).
// The two writes happen back-to-back with nothing in between; if the mirror
// write fails, the local write is rolled back.
func (r *chatRepository) applyMirrored(ctx context.Context, threadID, actorID string, localFn, mirrorFn func(*models.Thread)) (*models.Thread, error) {
	localKey := chatsKey(actorID)
	threads, localRaw, err := r.readThreads(ctx, localKey)
	if err != nil {
		return nil, err
	}

	var local *models.Thread
	for i := range threads {
		if threads[i].ID == threadID {
			local = &threads[i]
			break
		}
	}
	if local == nil {
		return nil, interfaces.ErrThreadNotFound
	}

	counterpartID := local.User.ID
	localFn(local)
	updated := *local

	if err := r.writeThreads(ctx, localKey, threads); err != nil {
		return nil, fmt.Errorf("failed to write local thread: %w", err)
	}

	mirrorKey := chatsKey(counterpartID)
	mirrorThreads, _, err := r.readThreads(ctx, mirrorKey)
	if err == nil {
		applied := false
		for i := range mirrorThreads {
			if mirrorThreads[i].User.ID == actorID && mirrorThreads[i].Ride.ID == updated.Ride.ID {
				mirrorFn(&mirrorThreads[i])
				applied = true
				break
			}
		}
		// The counterpart may have deleted their copy; that is their
		// prerogative and not a mirroring failure.
		if applied {
			err = r.writeThreads(ctx, mirrorKey, mirrorThreads)
		}
	}
	if err != nil {
		if rollbackErr := r.restore(ctx, localKey, localRaw); rollbackErr != nil {
			return nil, fmt.Errorf("failed to write mirror thread (rollback also failed: %v): %w", rollbackErr, err)
		}
		return nil, fmt.Errorf("failed to write mirror thread: %w", err)
	}

	return &updated, nil
}

func (r *chatRepository) restore(ctx context.Context, key, raw string) error {
	if raw == "" {
		return r.store.Delete(ctx, key)
	}
	return r.store.Set(ctx, key, raw)
}

func (r *chatRepository) readThreads(ctx context.Context, key string) ([]models.Thread, string, error) {
	raw, err := r.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, keyvalue.ErrNotFound) {
			return nil, "", nil
		}
		return nil, "", err
	}

	var threads []models.Thread
	if err := json.Unmarshal([]byte(raw), &threads); err != nil {
		return nil, "", fmt.Errorf("corrupt thread collection: %w", err)
	}
	return threads, raw, nil
}

func (r *chatRepository) writeThreads(ctx context.Context, key string, threads []models.Thread) error {
	if threads == nil {
		threads = []models.Thread{}
	}
	data, err := json.Marshal(threads)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, key, string(data))
}
