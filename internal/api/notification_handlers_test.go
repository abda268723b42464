package api

import (
	"encoding/json/v2"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishNotification(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/notifications",
		map[string]any{
			"recipient_id": "user-b",
			"kind":         "mention",
			"topic_id":     "topic-1",
			"post_id":      "post-1",
			"body":         "user-a mentioned you",
		},
		ts.bearer(t, "user-a"))
	require.Equal(t, http.StatusCreated, resp.Code)

	var n NotificationResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &n))
	assert.True(t, strings.HasPrefix(n.ID, "ntf-"))
	assert.Equal(t, int64(1), n.Seq)
	assert.Equal(t, "mention", n.Kind)
	// The actor defaults to the caller when omitted.
	assert.Equal(t, "user-a", n.ActorID)
	assert.False(t, n.Read)
}

func TestPublishNotification_InvalidKind(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/notifications",
		map[string]any{
			"recipient_id": "user-b",
			"kind":         "poke",
			"body":         "hi",
		},
		ts.bearer(t, "user-a"))
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestListNotifications_Paging(t *testing.T) {
	ts := setupTestServer(t)
	sender := ts.bearer(t, "user-a")

	for i := 1; i <= 3; i++ {
		resp := ts.api.Post("/api/v1/notifications",
			map[string]any{
				"recipient_id": "user-b",
				"kind":         "reply",
				"body":         fmt.Sprintf("reply %d", i),
			},
			sender)
		require.Equal(t, http.StatusCreated, resp.Code)
	}

	recipient := ts.bearer(t, "user-b")

	resp := ts.api.Get("/api/v1/notifications?limit=2", recipient)
	require.Equal(t, http.StatusOK, resp.Code)

	var page NotificationPageResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &page))
	require.Len(t, page.Items, 2)
	assert.Equal(t, int64(3), page.Items[0].Seq)
	assert.Equal(t, int64(2), page.Items[1].Seq)
	assert.Equal(t, 3, page.UnreadCount)
	require.NotZero(t, page.NextCursor)

	resp = ts.api.Get(fmt.Sprintf("/api/v1/notifications?limit=2&cursor=%d", page.NextCursor), recipient)
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &page))
	require.Len(t, page.Items, 1)
	assert.Equal(t, int64(1), page.Items[0].Seq)
	assert.Zero(t, page.NextCursor)
}

func TestMarkNotificationRead(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/notifications",
		map[string]any{
			"recipient_id": "user-b",
			"kind":         "mention",
			"body":         "hello",
		},
		ts.bearer(t, "user-a"))
	require.Equal(t, http.StatusCreated, resp.Code)

	var n NotificationResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &n))

	recipient := ts.bearer(t, "user-b")

	resp = ts.api.Post("/api/v1/notifications/"+n.ID+"/read", recipient)
	require.Equal(t, http.StatusNoContent, resp.Code)

	resp = ts.api.Get("/api/v1/notifications", recipient)
	require.Equal(t, http.StatusOK, resp.Code)

	var page NotificationPageResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &page))
	require.Len(t, page.Items, 1)
	assert.True(t, page.Items[0].Read)
	assert.Zero(t, page.UnreadCount)
}

func TestMarkNotificationRead_NotOwned(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/notifications",
		map[string]any{
			"recipient_id": "user-b",
			"kind":         "mention",
			"body":         "hello",
		},
		ts.bearer(t, "user-a"))
	require.Equal(t, http.StatusCreated, resp.Code)

	var n NotificationResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &n))

	// Only the recipient can mark it.
	resp = ts.api.Post("/api/v1/notifications/"+n.ID+"/read", ts.bearer(t, "user-c"))
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestMarkAllNotificationsRead(t *testing.T) {
	ts := setupTestServer(t)
	sender := ts.bearer(t, "user-a")

	for range 2 {
		resp := ts.api.Post("/api/v1/notifications",
			map[string]any{
				"recipient_id": "user-b",
				"kind":         "reply",
				"body":         "hello",
			},
			sender)
		require.Equal(t, http.StatusCreated, resp.Code)
	}

	recipient := ts.bearer(t, "user-b")

	resp := ts.api.Post("/api/v1/notifications/read-all", recipient)
	require.Equal(t, http.StatusOK, resp.Code)

	var marked MarkAllReadResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &marked))
	assert.Equal(t, 2, marked.Marked)

	// Idempotent.
	resp = ts.api.Post("/api/v1/notifications/read-all", recipient)
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &marked))
	assert.Zero(t, marked.Marked)
}
