package sse

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parleyapp/parley-server/internal/domain"
)

func newTestManager(t *testing.T) (*Manager, context.CancelFunc) {
	t.Helper()

	m := NewManager(slog.Default())
	ctx, cancel := context.WithCancel(context.Background())
	go m.Start(ctx)
	t.Cleanup(cancel)
	return m, cancel
}

func waitForEvent(t *testing.T, c *Client) Event {
	t.Helper()

	select {
	case event := <-c.EventChan:
		return event
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestEmitToUser_FiltersByUser(t *testing.T) {
	m, _ := newTestManager(t)

	alice, err := m.Connect("user-alice")
	require.NoError(t, err)
	bob, err := m.Connect("user-bob")
	require.NoError(t, err)
	assert.Equal(t, 2, m.ClientCount())

	n := &domain.Notification{
		ID:          "ntf-1",
		RecipientID: "user-alice",
		Kind:        domain.NotificationSolutionMarked,
	}
	m.EmitToUser("user-alice", NewNotificationEvent(n, 1))

	event := waitForEvent(t, alice)
	assert.Equal(t, EventNotificationCreated, event.Type)
	data, ok := event.Data.(NotificationEventData)
	require.True(t, ok)
	assert.Equal(t, "ntf-1", data.Notification.ID)
	assert.Equal(t, 1, data.UnreadCount)

	// Bob's channel stays empty (heartbeats aside, none due yet).
	select {
	case event := <-bob.EventChan:
		t.Fatalf("unexpected event for bob: %v", event.Type)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestEmitToUser_MultipleConnectionsSameUser(t *testing.T) {
	m, _ := newTestManager(t)

	tab1, err := m.Connect("user-alice")
	require.NoError(t, err)
	tab2, err := m.Connect("user-alice")
	require.NoError(t, err)

	m.EmitToUser("user-alice", NewNotificationEvent(&domain.Notification{
		ID:          "ntf-1",
		RecipientID: "user-alice",
	}, 1))

	assert.Equal(t, EventNotificationCreated, waitForEvent(t, tab1).Type)
	assert.Equal(t, EventNotificationCreated, waitForEvent(t, tab2).Type)
}

func TestDisconnect_ClosesClient(t *testing.T) {
	m, _ := newTestManager(t)

	client, err := m.Connect("user-alice")
	require.NoError(t, err)

	m.Disconnect(client.ID)
	assert.Equal(t, 0, m.ClientCount())

	select {
	case <-client.Done:
	case <-time.After(time.Second):
		t.Fatal("Done channel not closed")
	}

	// Disconnecting twice is safe.
	assert.NotPanics(t, func() { m.Disconnect(client.ID) })
}

func TestEmit_NoSubscribersIsNoop(t *testing.T) {
	m, _ := newTestManager(t)

	// Nothing to deliver to; must not block or panic.
	m.EmitToUser("user-nobody", NewHeartbeatEvent())
}

func TestEmit_IgnoresForeignTypes(t *testing.T) {
	m, _ := newTestManager(t)
	assert.NotPanics(t, func() { m.Emit("not an event") })
}

func TestShutdown_DropsLateEmits(t *testing.T) {
	m := NewManager(slog.Default())
	ctx, cancel := context.WithCancel(context.Background())
	go m.Start(ctx)
	defer cancel()

	client, err := m.Connect("user-alice")
	require.NoError(t, err)

	// Stop the broadcast loop first, as cmd/api does, then drain.
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Second)
	defer shutdownCancel()
	require.NoError(t, m.Shutdown(shutdownCtx))

	// Emits after shutdown are silently dropped.
	assert.NotPanics(t, func() {
		m.EmitToUser("user-alice", NewHeartbeatEvent())
	})
	_ = client
}
