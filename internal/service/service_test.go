package service

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/parleyapp/parley-server/internal/domain"
	"github.com/parleyapp/parley-server/internal/store/sqlite"
	"github.com/parleyapp/parley-server/internal/validation"
)

// capturingEmitter records emitted events for assertions.
type capturingEmitter struct {
	mu     sync.Mutex
	events []any
}

func (e *capturingEmitter) Emit(event any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, event)
}

func (e *capturingEmitter) all() []any {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]any(nil), e.events...)
}

// testEnv wires the services against a real SQLite store, which doubles as
// the directory.
type testEnv struct {
	store         *sqlite.Store
	emitter       *capturingEmitter
	votes         *VoteService
	solutions     *SolutionService
	bookmarks     *BookmarkService
	notifications *NotificationService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
	})

	logger := slog.Default()
	emitter := &capturingEmitter{}
	notifications := NewNotificationService(st, emitter, validation.New(), logger)

	return &testEnv{
		store:         st,
		emitter:       emitter,
		votes:         NewVoteService(st, st, logger),
		solutions:     NewSolutionService(st, st, notifications, logger),
		bookmarks:     NewBookmarkService(st, st, logger),
		notifications: notifications,
	}
}

func (e *testEnv) seedPost(t *testing.T, topicID, postID, authorID string) {
	t.Helper()

	ctx := context.Background()
	require.NoError(t, e.store.UpsertTopic(ctx, topicID))
	require.NoError(t, e.store.UpsertPost(ctx, &domain.PostIdentity{
		ID:       postID,
		TopicID:  topicID,
		AuthorID: authorID,
	}))
}
