package service

import (
	"context"
	"log/slog"

	"github.com/parleyapp/parley-server/internal/directory"
	"github.com/parleyapp/parley-server/internal/domain"
	"github.com/parleyapp/parley-server/internal/store"
)

// BookmarkService tracks which topics a user has saved.
type BookmarkService struct {
	store  store.Store
	dir    directory.Directory
	logger *slog.Logger
}

// NewBookmarkService creates a new bookmark service.
func NewBookmarkService(st store.Store, dir directory.Directory, logger *slog.Logger) *BookmarkService {
	return &BookmarkService{
		store:  st,
		dir:    dir,
		logger: logger,
	}
}

// Toggle adds the topic to the user's bookmarks, or removes it when already
// present. Two toggles cancel out.
func (s *BookmarkService) Toggle(ctx context.Context, userID, topicID string) (*domain.BookmarkResult, error) {
	if _, err := s.dir.GetTopicIdentity(ctx, topicID); err != nil {
		return nil, mapStoreErr(err, "topic not found")
	}

	var result *domain.BookmarkResult
	err := withWriteRetry(ctx, s.logger, "toggle bookmark", func() error {
		var err error
		result, err = s.store.ToggleBookmark(ctx, userID, topicID)
		return err
	})
	if err != nil {
		return nil, mapStoreErr(err, "topic not found")
	}

	s.logger.Debug("bookmark toggled",
		slog.String("user_id", userID),
		slog.String("topic_id", topicID),
		slog.Bool("bookmarked", result.Bookmarked))
	return result, nil
}

// IsBookmarked reports whether the user has saved the topic.
func (s *BookmarkService) IsBookmarked(ctx context.Context, userID, topicID string) (bool, error) {
	if _, err := s.dir.GetTopicIdentity(ctx, topicID); err != nil {
		return false, mapStoreErr(err, "topic not found")
	}

	ok, err := s.store.IsBookmarked(ctx, userID, topicID)
	if err != nil {
		return false, mapStoreErr(err, "topic not found")
	}
	return ok, nil
}

// List returns the user's bookmarks, newest first.
func (s *BookmarkService) List(ctx context.Context, userID string) ([]*domain.Bookmark, error) {
	bookmarks, err := s.store.ListBookmarks(ctx, userID)
	if err != nil {
		return nil, mapStoreErr(err, "bookmarks not found")
	}
	return bookmarks, nil
}
