// Package sse implements Server-Sent Events for real-time notification
// delivery: the subscription registry, the broadcast loop, and the stream
// endpoint.
package sse

import (
	"time"

	"github.com/parleyapp/parley-server/internal/domain"
)

// EventType represents the type of SSE Event.
type EventType string

const (
	// EventNotificationCreated carries a freshly appended notification to
	// its recipient's live connections.
	EventNotificationCreated EventType = "notification.created"

	// EventHeartbeat represents a connection keepalive event.
	EventHeartbeat EventType = "heartbeat"

	// EventConnected is the first event on a new stream and carries the
	// subscription handle.
	EventConnected EventType = "connected"
)

// Event represents an SSE event to be sent to clients.
// The Data field contains the event payload as a JSON object for direct
// deserialization.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
	Type      EventType `json:"type"`

	// UserID filters delivery to one user's connections. Empty means
	// broadcast to all (heartbeats). Not sent to clients.
	UserID string `json:"-"`
}

// NotificationEventData is the data payload for notification events. The
// payload matches what pull retrieval returns, so a client may consume
// either channel interchangeably.
type NotificationEventData struct {
	Notification *domain.Notification `json:"notification"`
	UnreadCount  int                  `json:"unread_count"`
}

// HeartbeatEventData is the data payload for heartbeat events.
type HeartbeatEventData struct {
	ServerTime time.Time `json:"server_time"`
}

// ConnectedEventData is the data payload for the initial connected event.
type ConnectedEventData struct {
	ClientID string `json:"client_id"`
	Message  string `json:"message"`
}

// NewNotificationEvent builds the push event for a notification, addressed
// to its recipient.
func NewNotificationEvent(n *domain.Notification, unreadCount int) Event {
	return Event{
		Timestamp: time.Now(),
		Type:      EventNotificationCreated,
		UserID:    n.RecipientID,
		Data: NotificationEventData{
			Notification: n,
			UnreadCount:  unreadCount,
		},
	}
}

// NewHeartbeatEvent creates a heartbeat event.
func NewHeartbeatEvent() Event {
	return Event{
		Timestamp: time.Now(),
		Type:      EventHeartbeat,
		Data:      HeartbeatEventData{ServerTime: time.Now()},
	}
}
