package sqlite

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parleyapp/parley-server/internal/domain"
	"github.com/parleyapp/parley-server/internal/store"
)

func appendNotification(t *testing.T, s *Store, recipientID, id string) *domain.Notification {
	t.Helper()

	n := &domain.Notification{
		ID:          id,
		RecipientID: recipientID,
		Kind:        domain.NotificationReply,
		TopicID:     "topic-1",
		Body:        "someone replied",
	}
	require.NoError(t, s.AppendNotification(context.Background(), n))
	return n
}

func TestAppendNotification_SeqPerRecipient(t *testing.T) {
	s := newTestStore(t)

	a1 := appendNotification(t, s, "user-a", "ntf-a1")
	a2 := appendNotification(t, s, "user-a", "ntf-a2")
	b1 := appendNotification(t, s, "user-b", "ntf-b1")
	a3 := appendNotification(t, s, "user-a", "ntf-a3")

	assert.Equal(t, int64(1), a1.Seq)
	assert.Equal(t, int64(2), a2.Seq)
	assert.Equal(t, int64(3), a3.Seq)
	// Another recipient's log starts at 1 regardless of other appends.
	assert.Equal(t, int64(1), b1.Seq)
	assert.False(t, a1.CreatedAt.IsZero())
}

func TestListNotifications_NewestFirstWithCursor(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		appendNotification(t, s, "user-a", fmt.Sprintf("ntf-%d", i))
	}

	page, err := s.ListNotifications(ctx, "user-a", 0, 2)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, int64(5), page.Items[0].Seq)
	assert.Equal(t, int64(4), page.Items[1].Seq)
	assert.Equal(t, 5, page.UnreadCount)
	assert.Equal(t, int64(4), page.NextCursor)

	// Replaying the same cursor returns the same page.
	again, err := s.ListNotifications(ctx, "user-a", 0, 2)
	require.NoError(t, err)
	assert.Equal(t, page.Items[0].ID, again.Items[0].ID)
	assert.Equal(t, page.Items[1].ID, again.Items[1].ID)

	// Follow the cursor down to the end of the log.
	page, err = s.ListNotifications(ctx, "user-a", page.NextCursor, 2)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, int64(3), page.Items[0].Seq)
	assert.Equal(t, int64(2), page.NextCursor)

	page, err = s.ListNotifications(ctx, "user-a", page.NextCursor, 2)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, int64(1), page.Items[0].Seq)
	assert.Equal(t, int64(0), page.NextCursor)
}

func TestListNotifications_EmptyLog(t *testing.T) {
	s := newTestStore(t)

	page, err := s.ListNotifications(context.Background(), "user-missing", 0, 10)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.UnreadCount)
	assert.Equal(t, int64(0), page.NextCursor)
}

func TestMarkNotificationRead(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	appendNotification(t, s, "user-a", "ntf-1")
	appendNotification(t, s, "user-a", "ntf-2")

	require.NoError(t, s.MarkNotificationRead(ctx, "user-a", "ntf-1"))

	unread, err := s.CountUnread(ctx, "user-a")
	require.NoError(t, err)
	assert.Equal(t, 1, unread)

	// Marking again is a no-op, not an error.
	require.NoError(t, s.MarkNotificationRead(ctx, "user-a", "ntf-1"))

	// Unknown id, and another recipient's id, both read as not found.
	err = s.MarkNotificationRead(ctx, "user-a", "ntf-missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
	err = s.MarkNotificationRead(ctx, "user-b", "ntf-2")
	assert.ErrorIs(t, err, store.ErrNotFound)

	unread, err = s.CountUnread(ctx, "user-a")
	require.NoError(t, err)
	assert.Equal(t, 1, unread)
}

func TestMarkAllNotificationsRead(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	appendNotification(t, s, "user-a", "ntf-1")
	appendNotification(t, s, "user-a", "ntf-2")
	appendNotification(t, s, "user-b", "ntf-3")

	marked, err := s.MarkAllNotificationsRead(ctx, "user-a")
	require.NoError(t, err)
	assert.Equal(t, 2, marked)

	unread, err := s.CountUnread(ctx, "user-a")
	require.NoError(t, err)
	assert.Equal(t, 0, unread)

	// Other recipients untouched; second run has nothing left to mark.
	unread, err = s.CountUnread(ctx, "user-b")
	require.NoError(t, err)
	assert.Equal(t, 1, unread)

	marked, err = s.MarkAllNotificationsRead(ctx, "user-a")
	require.NoError(t, err)
	assert.Equal(t, 0, marked)
}
