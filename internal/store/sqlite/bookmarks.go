package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/parleyapp/parley-server/internal/domain"
)

// ToggleBookmark adds the topic to the user's bookmarks if absent, removes
// it if present. Delete-then-insert in one transaction keeps a double toggle
// a no-op overall.
func (s *Store) ToggleBookmark(ctx context.Context, userID, topicID string) (*domain.BookmarkResult, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, wrapErr("begin toggle bookmark", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	res, err := tx.ExecContext(ctx,
		`DELETE FROM bookmarks WHERE user_id = ? AND topic_id = ?`, userID, topicID)
	if err != nil {
		return nil, wrapErr("delete bookmark", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return nil, wrapErr("delete bookmark", err)
	}

	bookmarked := false
	if removed == 0 {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO bookmarks (user_id, topic_id, created_at) VALUES (?, ?, ?)`,
			userID, topicID, formatTime(time.Now()))
		if err != nil {
			return nil, wrapErr("insert bookmark", err)
		}
		bookmarked = true
	}

	if err := tx.Commit(); err != nil {
		return nil, wrapErr("commit toggle bookmark", err)
	}
	return &domain.BookmarkResult{Bookmarked: bookmarked}, nil
}

// IsBookmarked reports whether the user has bookmarked the topic.
func (s *Store) IsBookmarked(ctx context.Context, userID, topicID string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM bookmarks WHERE user_id = ? AND topic_id = ?`,
		userID, topicID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, wrapErr("is bookmarked", err)
	}
	return true, nil
}

// ListBookmarks returns the user's bookmarks, newest first.
func (s *Store) ListBookmarks(ctx context.Context, userID string) ([]*domain.Bookmark, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, topic_id, created_at FROM bookmarks
		 WHERE user_id = ? ORDER BY created_at DESC, topic_id`, userID)
	if err != nil {
		return nil, wrapErr("list bookmarks", err)
	}
	defer rows.Close() //nolint:errcheck // read-only cursor

	var bookmarks []*domain.Bookmark
	for rows.Next() {
		var (
			b         domain.Bookmark
			createdAt string
		)
		if err := rows.Scan(&b.UserID, &b.TopicID, &createdAt); err != nil {
			return nil, wrapErr("scan bookmark", err)
		}
		if b.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, wrapErr("parse bookmark created_at", err)
		}
		bookmarks = append(bookmarks, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("list bookmarks", err)
	}
	return bookmarks, nil
}
