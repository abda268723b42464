package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/parleyapp/parley-server/internal/domain"
	"github.com/parleyapp/parley-server/internal/service"
)

func (s *Server) registerNotificationRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listNotifications",
		Method:      http.MethodGet,
		Path:        "/api/v1/notifications",
		Summary:     "List notifications",
		Description: "Returns one page of the user's notification log, newest first, with the total unread count.",
		Tags:        []string{"Notifications"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListNotifications)

	huma.Register(s.api, huma.Operation{
		OperationID:   "publishNotification",
		Method:        http.MethodPost,
		Path:          "/api/v1/notifications",
		Summary:       "Publish a notification",
		Description:   "Appends a notification to the recipient's log and pushes it to their live connections. Used by collaborator services for mention and reply events.",
		Tags:          []string{"Notifications"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusCreated,
	}, s.handlePublishNotification)

	huma.Register(s.api, huma.Operation{
		OperationID: "markNotificationRead",
		Method:      http.MethodPost,
		Path:        "/api/v1/notifications/{notificationID}/read",
		Summary:     "Mark a notification read",
		Tags:        []string{"Notifications"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleMarkNotificationRead)

	huma.Register(s.api, huma.Operation{
		OperationID: "markAllNotificationsRead",
		Method:      http.MethodPost,
		Path:        "/api/v1/notifications/read-all",
		Summary:     "Mark all notifications read",
		Tags:        []string{"Notifications"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleMarkAllNotificationsRead)
}

// === DTOs ===

// ListNotificationsInput contains paging parameters for the log.
type ListNotificationsInput struct {
	Cursor int64 `query:"cursor" doc:"Return entries older than this sequence number; 0 starts at the latest"`
	Limit  int   `query:"limit" doc:"Max entries per page (default 20, max 100)"`
}

// NotificationResponse is one entry of the user's log.
type NotificationResponse struct {
	ID        string    `json:"id" doc:"Notification ID"`
	Seq       int64     `json:"seq" doc:"Per-recipient sequence number"`
	Kind      string    `json:"kind" doc:"Notification kind"`
	TopicID   string    `json:"topic_id,omitempty" doc:"Related topic"`
	PostID    string    `json:"post_id,omitempty" doc:"Related post"`
	ActorID   string    `json:"actor_id,omitempty" doc:"Who triggered it"`
	Body      string    `json:"body" doc:"Display text"`
	Read      bool      `json:"read" doc:"Whether the user has read it"`
	CreatedAt time.Time `json:"created_at" doc:"When it was created"`
}

// NotificationPageResponse is one page of the log.
type NotificationPageResponse struct {
	Items       []NotificationResponse `json:"items" doc:"Entries, newest first"`
	UnreadCount int                    `json:"unread_count" doc:"Total unread entries"`
	NextCursor  int64                  `json:"next_cursor" doc:"Cursor for the next older page, 0 when exhausted"`
}

// NotificationPageOutput wraps the page response for huma.
type NotificationPageOutput struct {
	Body NotificationPageResponse
}

// PublishNotificationInput is a collaborator-published event.
type PublishNotificationInput struct {
	Body struct {
		RecipientID string `json:"recipient_id" doc:"User receiving the notification"`
		Kind        string `json:"kind" doc:"Notification kind (mention, reply, solution_marked)"`
		TopicID     string `json:"topic_id,omitempty" doc:"Related topic"`
		PostID      string `json:"post_id,omitempty" doc:"Related post"`
		ActorID     string `json:"actor_id,omitempty" doc:"Who triggered it; defaults to the caller"`
		Body        string `json:"body" doc:"Display text"`
	}
}

// NotificationOutput wraps a single notification for huma.
type NotificationOutput struct {
	Body NotificationResponse
}

// MarkReadInput identifies the notification being marked.
type MarkReadInput struct {
	NotificationID string `path:"notificationID" doc:"Notification ID"`
}

// MarkAllReadResponse reports how many entries were marked.
type MarkAllReadResponse struct {
	Marked int `json:"marked" doc:"Number of entries newly marked read"`
}

// MarkAllReadOutput wraps the mark-all response for huma.
type MarkAllReadOutput struct {
	Body MarkAllReadResponse
}

// === Handlers ===

func (s *Server) handleListNotifications(ctx context.Context, input *ListNotificationsInput) (*NotificationPageOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	page, err := s.services.Notifications.List(ctx, userID, input.Cursor, input.Limit)
	if err != nil {
		return nil, err
	}

	items := make([]NotificationResponse, len(page.Items))
	for i, n := range page.Items {
		items[i] = toNotificationResponse(n)
	}

	return &NotificationPageOutput{Body: NotificationPageResponse{
		Items:       items,
		UnreadCount: page.UnreadCount,
		NextCursor:  page.NextCursor,
	}}, nil
}

func (s *Server) handlePublishNotification(ctx context.Context, input *PublishNotificationInput) (*NotificationOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	actorID := input.Body.ActorID
	if actorID == "" {
		actorID = userID
	}

	n, err := s.services.Notifications.Publish(ctx, &service.PublishInput{
		RecipientID: input.Body.RecipientID,
		Kind:        domain.NotificationKind(input.Body.Kind),
		TopicID:     input.Body.TopicID,
		PostID:      input.Body.PostID,
		ActorID:     actorID,
		Body:        input.Body.Body,
	})
	if err != nil {
		return nil, err
	}

	return &NotificationOutput{Body: toNotificationResponse(n)}, nil
}

func (s *Server) handleMarkNotificationRead(ctx context.Context, input *MarkReadInput) (*struct{}, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Notifications.MarkRead(ctx, userID, input.NotificationID); err != nil {
		return nil, err
	}
	return &struct{}{}, nil
}

func (s *Server) handleMarkAllNotificationsRead(ctx context.Context, _ *struct{}) (*MarkAllReadOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	marked, err := s.services.Notifications.MarkAllRead(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &MarkAllReadOutput{Body: MarkAllReadResponse{Marked: marked}}, nil
}

func toNotificationResponse(n *domain.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Seq:       n.Seq,
		Kind:      string(n.Kind),
		TopicID:   n.TopicID,
		PostID:    n.PostID,
		ActorID:   n.ActorID,
		Body:      n.Body,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}
