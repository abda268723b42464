package service

import (
	"context"
	"log/slog"

	"github.com/parleyapp/parley-server/internal/domain"
	domainerrors "github.com/parleyapp/parley-server/internal/errors"
	"github.com/parleyapp/parley-server/internal/id"
	"github.com/parleyapp/parley-server/internal/sse"
	"github.com/parleyapp/parley-server/internal/store"
	"github.com/parleyapp/parley-server/internal/validation"
)

// PublishInput is one event handed to the notification bus, either by the
// engine's own services or by collaborator services over HTTP.
type PublishInput struct {
	RecipientID string                  `json:"recipient_id" validate:"required"`
	Kind        domain.NotificationKind `json:"kind" validate:"required"`
	TopicID     string                  `json:"topic_id,omitempty"`
	PostID      string                  `json:"post_id,omitempty"`
	ActorID     string                  `json:"actor_id,omitempty"`
	Body        string                  `json:"body" validate:"max=500"`
}

// NotificationService is the notification bus: durable append-only log per
// recipient plus best-effort push to live subscriptions.
type NotificationService struct {
	store    store.Store
	emitter  store.EventEmitter
	validate *validation.Validator
	logger   *slog.Logger
}

// NewNotificationService creates a new notification service.
func NewNotificationService(st store.Store, emitter store.EventEmitter, validate *validation.Validator, logger *slog.Logger) *NotificationService {
	return &NotificationService{
		store:    st,
		emitter:  emitter,
		validate: validate,
		logger:   logger,
	}
}

// Publish validates the event, appends it durably to the recipient's log,
// and pushes it to the recipient's live subscriptions. The push is
// fire-and-forget; no subscriber and a dropped event look the same to the
// caller, and the durable append has already committed either way.
func (s *NotificationService) Publish(ctx context.Context, in *PublishInput) (*domain.Notification, error) {
	if err := s.validate.Validate(in); err != nil {
		return nil, err
	}
	if !in.Kind.Valid() {
		return nil, domainerrors.Validationf("unknown notification kind %q", in.Kind)
	}

	ntfID, err := id.Generate("ntf")
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "generate notification id")
	}

	n := &domain.Notification{
		ID:          ntfID,
		RecipientID: in.RecipientID,
		Kind:        in.Kind,
		TopicID:     in.TopicID,
		PostID:      in.PostID,
		ActorID:     in.ActorID,
		Body:        in.Body,
	}

	err = withWriteRetry(ctx, s.logger, "append notification", func() error {
		return s.store.AppendNotification(ctx, n)
	})
	if err != nil {
		return nil, mapStoreErr(err, "recipient not found")
	}

	s.push(ctx, n)

	s.logger.Info("notification published",
		slog.String("notification_id", n.ID),
		slog.String("recipient_id", n.RecipientID),
		slog.String("kind", string(n.Kind)),
		slog.Int64("seq", n.Seq))
	return n, nil
}

// push hands the event to the SSE manager. Failures are logged, never
// returned; the durable log is the source of truth.
func (s *NotificationService) push(ctx context.Context, n *domain.Notification) {
	unread, err := s.store.CountUnread(ctx, n.RecipientID)
	if err != nil {
		s.logger.Warn("unread count unavailable for push",
			slog.String("recipient_id", n.RecipientID),
			slog.String("error", err.Error()))
	}
	s.emitter.Emit(sse.NewNotificationEvent(n, unread))
}

// List returns one page of the user's log, newest first. beforeSeq 0 starts
// at the latest entry. Pages are replayable: the same cursor returns the
// same page until new entries arrive.
func (s *NotificationService) List(ctx context.Context, userID string, beforeSeq int64, limit int) (*domain.NotificationPage, error) {
	page, err := s.store.ListNotifications(ctx, userID, beforeSeq, limit)
	if err != nil {
		return nil, mapStoreErr(err, "notifications not found")
	}
	return page, nil
}

// MarkRead flips one entry's read flag. Recipients can only touch their own
// entries; anyone else's id reads as not found.
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID string) error {
	err := withWriteRetry(ctx, s.logger, "mark notification read", func() error {
		return s.store.MarkNotificationRead(ctx, userID, notificationID)
	})
	if err != nil {
		return mapStoreErr(err, "notification not found")
	}
	return nil
}

// MarkAllRead flips every unread entry for the user and reports how many.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (int, error) {
	var marked int
	err := withWriteRetry(ctx, s.logger, "mark all notifications read", func() error {
		var err error
		marked, err = s.store.MarkAllNotificationsRead(ctx, userID)
		return err
	})
	if err != nil {
		return 0, mapStoreErr(err, "notifications not found")
	}
	return marked, nil
}
