package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleBookmark_Involution(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.UpsertTopic(ctx, "topic-1"))

	res, err := s.ToggleBookmark(ctx, "user-a", "topic-1")
	require.NoError(t, err)
	assert.True(t, res.Bookmarked)

	ok, err := s.IsBookmarked(ctx, "user-a", "topic-1")
	require.NoError(t, err)
	assert.True(t, ok)

	// Second toggle removes it; net effect of the pair is nothing.
	res, err = s.ToggleBookmark(ctx, "user-a", "topic-1")
	require.NoError(t, err)
	assert.False(t, res.Bookmarked)

	ok, err = s.IsBookmarked(ctx, "user-a", "topic-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestToggleBookmark_PerUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.UpsertTopic(ctx, "topic-1"))

	_, err := s.ToggleBookmark(ctx, "user-a", "topic-1")
	require.NoError(t, err)

	ok, err := s.IsBookmarked(ctx, "user-b", "topic-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestListBookmarks(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	for _, id := range []string{"topic-1", "topic-2", "topic-3"} {
		require.NoError(t, s.UpsertTopic(ctx, id))
	}

	_, err := s.ToggleBookmark(ctx, "user-a", "topic-1")
	require.NoError(t, err)
	_, err = s.ToggleBookmark(ctx, "user-a", "topic-2")
	require.NoError(t, err)
	_, err = s.ToggleBookmark(ctx, "user-b", "topic-3")
	require.NoError(t, err)

	bookmarks, err := s.ListBookmarks(ctx, "user-a")
	require.NoError(t, err)
	require.Len(t, bookmarks, 2)
	for _, b := range bookmarks {
		assert.Equal(t, "user-a", b.UserID)
	}

	bookmarks, err = s.ListBookmarks(ctx, "user-missing")
	require.NoError(t, err)
	assert.Empty(t, bookmarks)
}
