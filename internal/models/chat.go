package models

type MessageSender string
type MessageType string
type RequestStatus string

const (
	SenderMe     MessageSender = "me"
	SenderOther  MessageSender = "other"
	SenderSystem MessageSender = "system"

	MessageTypeText    MessageType = "message"
	MessageTypeRequest MessageType = "request"
	MessageTypeSystem  MessageType = "system"

	RequestStatusPending  RequestStatus = "pending"
	RequestStatusAccepted RequestStatus = "accepted"
	RequestStatusRejected RequestStatus = "rejected"
)

// Message is one entry in a thread. Immutable once appended; request-typed
// messages are filtered out when the join request is resolved.
type Message struct {
	ID     string        `json:"id"`
	Sender MessageSender `json:"sender"`
	Text   string        `json:"text"`
	Time   string        `json:"time"` // display-formatted HH:MM
	Type   MessageType   `json:"type"`
}

// ThreadRide is the slice of the ride a thread is about, including the join
// request status the two participants negotiate.
type ThreadRide struct {
	ID      string        `json:"id"`
	Concert string        `json:"concert"` // artist label
	Date    string        `json:"date"`
	Status  RequestStatus `json:"status"`
}

// Thread is one side of a two-party conversation. A single logical
// conversation between A and B exists as two independent Thread records, one
// per participant, with User and message senders expressed relative to the
// owner. Every state-changing operation must be applied to both records.
type Thread struct {
	ID       string       `json:"id"`
	User     UserSnapshot `json:"user"` // the other participant
	Ride     ThreadRide   `json:"ride"`
	Messages []Message    `json:"messages"`
	Unread   int          `json:"unread"`
}

// LastMessage returns the most recent entry, or nil for an empty thread.
func (t *Thread) LastMessage() *Message {
	if len(t.Messages) == 0 {
		return nil
	}
	return &t.Messages[len(t.Messages)-1]
}

// Flip returns the mirrored perspective of a sender: what "me" wrote reads
// as "other" on the counterpart's copy. System entries are perspective-free.
func (s MessageSender) Flip() MessageSender {
	switch s {
	case SenderMe:
		return SenderOther
	case SenderOther:
		return SenderMe
	default:
		return s
	}
}
