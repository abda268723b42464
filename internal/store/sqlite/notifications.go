package sqlite

import (
	"context"
	"time"

	"github.com/parleyapp/parley-server/internal/domain"
	"github.com/parleyapp/parley-server/internal/store"
)

const (
	defaultNotificationPage = 20
	maxNotificationPage     = 100
)

// AppendNotification writes one entry to the recipient's log. The entry's
// Seq is assigned here, inside the append transaction, so concurrent appends
// for the same recipient serialize on the (recipient_id, seq) primary key
// and per-recipient order equals append order.
func (s *Store) AppendNotification(ctx context.Context, n *domain.Notification) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapErr("begin append notification", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	var last int64
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(seq), 0) FROM notifications WHERE recipient_id = ?`,
		n.RecipientID).Scan(&last)
	if err != nil {
		return wrapErr("read last seq", err)
	}
	n.Seq = last + 1

	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO notifications
		   (recipient_id, seq, id, kind, topic_id, post_id, actor_id, body, read, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, 0, ?)`,
		n.RecipientID, n.Seq, n.ID, string(n.Kind),
		n.TopicID, n.PostID, n.ActorID, n.Body, formatTime(n.CreatedAt))
	if err != nil {
		return wrapErr("insert notification", err)
	}

	if err := tx.Commit(); err != nil {
		return wrapErr("commit append notification", err)
	}
	return nil
}

// ListNotifications returns one page of the recipient's log, seq-descending.
// beforeSeq 0 starts at the latest entry; otherwise only entries with
// seq < beforeSeq are returned. The page carries the recipient's total
// unread count and the cursor for the next (older) page.
func (s *Store) ListNotifications(ctx context.Context, recipientID string, beforeSeq int64, limit int) (*domain.NotificationPage, error) {
	if limit <= 0 {
		limit = defaultNotificationPage
	}
	if limit > maxNotificationPage {
		limit = maxNotificationPage
	}

	// Fetch one extra row to know whether an older page exists.
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, recipient_id, seq, kind, topic_id, post_id, actor_id, body, read, created_at
		 FROM notifications
		 WHERE recipient_id = ? AND (? = 0 OR seq < ?)
		 ORDER BY seq DESC
		 LIMIT ?`,
		recipientID, beforeSeq, beforeSeq, limit+1)
	if err != nil {
		return nil, wrapErr("list notifications", err)
	}
	defer rows.Close() //nolint:errcheck // read-only cursor

	var items []*domain.Notification
	for rows.Next() {
		var (
			n         domain.Notification
			kind      string
			read      int
			createdAt string
		)
		if err := rows.Scan(&n.ID, &n.RecipientID, &n.Seq, &kind,
			&n.TopicID, &n.PostID, &n.ActorID, &n.Body, &read, &createdAt); err != nil {
			return nil, wrapErr("scan notification", err)
		}
		n.Kind = domain.NotificationKind(kind)
		n.Read = read != 0
		if n.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, wrapErr("parse notification created_at", err)
		}
		items = append(items, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("list notifications", err)
	}

	var nextCursor int64
	if len(items) > limit {
		items = items[:limit]
		nextCursor = items[len(items)-1].Seq
	}

	unread, err := s.CountUnread(ctx, recipientID)
	if err != nil {
		return nil, err
	}

	return &domain.NotificationPage{
		Items:       items,
		UnreadCount: unread,
		NextCursor:  nextCursor,
	}, nil
}

// CountUnread returns the recipient's total unread count.
func (s *Store) CountUnread(ctx context.Context, recipientID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notifications WHERE recipient_id = ? AND read = 0`,
		recipientID).Scan(&count)
	if err != nil {
		return 0, wrapErr("count unread", err)
	}
	return count, nil
}

// MarkNotificationRead flips the read flag on one of the recipient's
// entries. Marking an already-read entry is a no-op; an id the recipient
// does not own is indistinguishable from one that does not exist.
func (s *Store) MarkNotificationRead(ctx context.Context, recipientID, notificationID string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE notifications SET read = 1 WHERE recipient_id = ? AND id = ?`,
		recipientID, notificationID)
	if err != nil {
		return wrapErr("mark notification read", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return wrapErr("mark notification read", err)
	}
	if rows == 0 {
		return store.ErrNotFound
	}
	return nil
}

// MarkAllNotificationsRead flips every unread entry for the recipient and
// returns how many were flipped.
func (s *Store) MarkAllNotificationsRead(ctx context.Context, recipientID string) (int, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE notifications SET read = 1 WHERE recipient_id = ? AND read = 0`,
		recipientID)
	if err != nil {
		return 0, wrapErr("mark all notifications read", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return 0, wrapErr("mark all notifications read", err)
	}
	return int(rows), nil
}
