package domain

import (
	"slices"
	"time"
)

// NotificationKind classifies a notification.
type NotificationKind string

const (
	// NotificationSolutionMarked is sent to a post's author when someone else
	// marks that post as the topic's solution.
	NotificationSolutionMarked NotificationKind = "solution_marked"

	// NotificationMention is published by the content service when a post
	// mentions a user.
	NotificationMention NotificationKind = "mention"

	// NotificationReply is published by the content service when someone
	// replies in a topic the user started.
	NotificationReply NotificationKind = "reply"
)

// notificationKinds lists every kind the bus accepts.
var notificationKinds = []NotificationKind{
	NotificationSolutionMarked,
	NotificationMention,
	NotificationReply,
}

// Valid reports whether k is a known notification kind.
func (k NotificationKind) Valid() bool {
	return slices.Contains(notificationKinds, k)
}

// Notification is one entry in a recipient's durable log.
// Seq is assigned by the store, strictly increasing per recipient, and is the
// cursor for pull retrieval. Rows are append-only except the Read flag.
type Notification struct {
	ID          string           `json:"id"`
	RecipientID string           `json:"recipient_id"`
	Seq         int64            `json:"seq"`
	Kind        NotificationKind `json:"kind"`
	TopicID     string           `json:"topic_id,omitempty"`
	PostID      string           `json:"post_id,omitempty"`
	ActorID     string           `json:"actor_id,omitempty"`
	Body        string           `json:"body"`
	Read        bool             `json:"read"`
	CreatedAt   time.Time        `json:"created_at"`
}

// NotificationPage is one page of a recipient's log, newest first.
type NotificationPage struct {
	Items       []*Notification `json:"items"`
	UnreadCount int             `json:"unread_count"`
	// NextCursor is the Seq to pass to fetch the next (older) page,
	// 0 when the log is exhausted.
	NextCursor int64 `json:"next_cursor"`
}
