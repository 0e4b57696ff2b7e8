package services

import (
	"context"
	"errors"
	"time"

	"jamride/internal/models"
	"jamride/internal/observability"
	"jamride/internal/repositories/interfaces"
	"jamride/pkg/logger"
	ws "jamride/pkg/websocket"
)

var ErrOwnRide = errors.New("cannot request a seat on your own ride")

type ChatService interface {
	// RequestToJoin opens a conversation with a ride's driver, seeding it
	// with a pending join request. Requesting a seat on one's own ride or
	// requesting the same ride twice is rejected.
	RequestToJoin(ctx context.Context, requester models.Identity, rideID string) (*models.Thread, error)

	// ListThreads returns the caller's conversations.
	ListThreads(ctx context.Context, ownerID string) ([]*models.Thread, error)

	// GetThread returns one of the caller's conversations.
	GetThread(ctx context.Context, ownerID, threadID string) (*models.Thread, error)

	// SendMessage appends a text message to both sides of a conversation.
	SendMessage(ctx context.Context, sender models.Identity, threadID, text string) (*models.Thread, error)

	// RespondToRequest lets the driver accept or reject the pending join
	// request, recording the outcome on both sides.
	RespondToRequest(ctx context.Context, responder models.Identity, threadID string, accepted bool) (*models.Thread, error)

	// DeleteThread removes the caller's copy of a conversation; the other
	// participant keeps theirs.
	DeleteThread(ctx context.Context, ownerID, threadID string) error

	// MarkRead clears the caller's unread counter on a thread.
	MarkRead(ctx context.Context, ownerID, threadID string) error
}

type chatService struct {
	chatRepo interfaces.ChatRepository
	rideRepo interfaces.RideRepository
	hub      *ws.Hub
	logger   *logger.Logger
}

func NewChatService(chatRepo interfaces.ChatRepository, rideRepo interfaces.RideRepository, hub *ws.Hub, log *logger.Logger) ChatService {
	return &chatService{
		chatRepo: chatRepo,
		rideRepo: rideRepo,
		hub:      hub,
		logger:   log,
	}
}

func (s *chatService) RequestToJoin(ctx context.Context, requester models.Identity, rideID string) (*models.Thread, error) {
	rides, err := s.rideRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	var ride *models.Ride
	for _, r := range rides {
		if r.ID == rideID {
			ride = r
			break
		}
	}
	if ride == nil {
		return nil, ErrRideNotFound
	}
	if ride.Driver.ID == requester.ID {
		return nil, ErrOwnRide
	}

	thread, err := s.chatRepo.StartThread(ctx, requester, ride)
	if err != nil {
		return nil, err
	}

	observability.ThreadsStarted.Inc()
	s.logger.WithThreadID(thread.ID).WithRideID(rideID).WithUserID(requester.ID).Info("Join request sent")
	s.notify(ride.Driver.ID, "chat_request", map[string]interface{}{
		"thread_id": thread.ID,
		"ride_id":   rideID,
		"from":      requester.Name,
	})
	return thread, nil
}

func (s *chatService) ListThreads(ctx context.Context, ownerID string) ([]*models.Thread, error) {
	return s.chatRepo.ListThreads(ctx, ownerID)
}

func (s *chatService) GetThread(ctx context.Context, ownerID, threadID string) (*models.Thread, error) {
	return s.chatRepo.GetThread(ctx, ownerID, threadID)
}

func (s *chatService) SendMessage(ctx context.Context, sender models.Identity, threadID, text string) (*models.Thread, error) {
	thread, err := s.chatRepo.AppendMessage(ctx, threadID, sender, text)
	if err != nil {
		return nil, err
	}

	observability.MessagesSent.Inc()
	s.notify(thread.User.ID, "chat_message", map[string]interface{}{
		"thread_id": thread.ID,
		"from":      sender.Name,
		"preview":   text,
	})
	return thread, nil
}

func (s *chatService) RespondToRequest(ctx context.Context, responder models.Identity, threadID string, accepted bool) (*models.Thread, error) {
	thread, err := s.chatRepo.RespondToRequest(ctx, threadID, responder, accepted)
	if err != nil {
		return nil, err
	}

	outcome := "rejected"
	if accepted {
		outcome = "accepted"
	}
	s.logger.WithThreadID(threadID).WithUserID(responder.ID).
		WithField("outcome", outcome).Info("Join request resolved")

	s.notify(thread.User.ID, "request_resolved", map[string]interface{}{
		"thread_id": thread.ID,
		"ride_id":   thread.Ride.ID,
		"outcome":   outcome,
	})
	return thread, nil
}

func (s *chatService) DeleteThread(ctx context.Context, ownerID, threadID string) error {
	return s.chatRepo.DeleteThread(ctx, threadID, ownerID)
}

func (s *chatService) MarkRead(ctx context.Context, ownerID, threadID string) error {
	return s.chatRepo.MarkThreadRead(ctx, threadID, ownerID)
}

// notify pushes a best-effort live event to the counterpart's open
// connections. The stored thread is the source of truth; a user with no
// connection simply sees the change on their next read.
func (s *chatService) notify(userID, eventType string, data map[string]interface{}) {
	if s.hub == nil {
		return
	}
	s.hub.SendToUser(userID, ws.Message{
		Type:      eventType,
		UserID:    userID,
		Timestamp: time.Now().Unix(),
		Data:      data,
	})
}
