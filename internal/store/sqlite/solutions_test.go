package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parleyapp/parley-server/internal/store"
)

func TestToggleSolution_MarkAndUnmark(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedPost(t, s, "topic-1", "post-1", "user-author")

	res, err := s.ToggleSolution(ctx, "topic-1", "post-1", "user-op")
	require.NoError(t, err)
	assert.True(t, res.IsSolution)

	sol, err := s.GetSolution(ctx, "topic-1")
	require.NoError(t, err)
	assert.Equal(t, "post-1", sol.PostID)
	assert.Equal(t, "user-op", sol.MarkedBy)
	assert.False(t, sol.MarkedAt.IsZero())

	// Toggling the same post unsets the flag.
	res, err = s.ToggleSolution(ctx, "topic-1", "post-1", "user-op")
	require.NoError(t, err)
	assert.False(t, res.IsSolution)

	_, err = s.GetSolution(ctx, "topic-1")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestToggleSolution_MovesFlagBetweenPosts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedPost(t, s, "topic-1", "post-2", "user-b")
	seedPost(t, s, "topic-1", "post-3", "user-c")

	_, err := s.ToggleSolution(ctx, "topic-1", "post-2", "user-op")
	require.NoError(t, err)

	res, err := s.ToggleSolution(ctx, "topic-1", "post-3", "user-op")
	require.NoError(t, err)
	assert.True(t, res.IsSolution)

	// Exactly one solution row, and it points at post-3.
	sol, err := s.GetSolution(ctx, "topic-1")
	require.NoError(t, err)
	assert.Equal(t, "post-3", sol.PostID)

	var count int
	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM topic_solutions WHERE topic_id = ?`, "topic-1").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
