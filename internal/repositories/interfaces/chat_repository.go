package interfaces

import (
	"context"
	"errors"

	"jamride/internal/models"
)

var (
	// ErrThreadExists signals that the requester already has a thread for
	// the ride; StartThread never creates a duplicate.
	ErrThreadExists = errors.New("thread already exists for this ride")

	// ErrThreadNotFound is returned when a thread id is absent from the
	// owner's list.
	ErrThreadNotFound = errors.New("thread not found")
)

// ChatRepository persists two-sided conversation threads. A conversation
// between A and B is stored as two independent records, one per participant,
// with perspective-relative fields (the message sender and the top-level user
// descriptor) recomputed for whichever side owns the copy being written.
// State-changing operations apply to both records or fail as a whole.
type ChatRepository interface {
	// StartThread creates the requester's thread for the ride (status
	// pending, one request-typed message to the driver) and the mirrored
	// driver-side thread (unread = 1, sender flipped). Returns
	// ErrThreadExists if the requester already has a thread for ride.ID.
	StartThread(ctx context.Context, requester models.Identity, ride *models.Ride) (*models.Thread, error)

	// ListThreads returns the owner's threads in insertion order.
	ListThreads(ctx context.Context, ownerID string) ([]*models.Thread, error)

	// GetThread returns one thread from the owner's list.
	GetThread(ctx context.Context, ownerID, threadID string) (*models.Thread, error)

	// AppendMessage appends a message-typed entry to the sender's copy and
	// the flipped mirror to the counterpart's copy, bumping the
	// counterpart's unread counter. Returns the sender's updated thread.
	AppendMessage(ctx context.Context, threadID string, sender models.Identity, text string) (*models.Thread, error)

	// RespondToRequest removes all request-typed messages from both copies,
	// appends a system message with the outcome, and sets the ride status
	// on both sides. Returns the responder's updated thread.
	RespondToRequest(ctx context.Context, threadID string, responder models.Identity, accepted bool) (*models.Thread, error)

	// DeleteThread removes only the owner's copy of the conversation.
	DeleteThread(ctx context.Context, threadID, ownerID string) error

	// MarkThreadRead resets the owner's unread counter to zero.
	MarkThreadRead(ctx context.Context, threadID, ownerID string) error
}
