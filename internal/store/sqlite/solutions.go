package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/parleyapp/parley-server/internal/domain"
	"github.com/parleyapp/parley-server/internal/store"
)

// ToggleSolution flips the topic's solution flag. When postID already holds
// the flag it is unset; otherwise the flag moves to postID in a single
// upsert, so the topic never observably has zero or two solutions while a
// replacement is in flight.
func (s *Store) ToggleSolution(ctx context.Context, topicID, postID, markedBy string) (*domain.SolutionResult, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, wrapErr("begin toggle solution", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	var current string
	err = tx.QueryRowContext(ctx,
		`SELECT post_id FROM topic_solutions WHERE topic_id = ?`, topicID).Scan(&current)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, wrapErr("read solution", err)
	}

	if current == postID {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM topic_solutions WHERE topic_id = ?`, topicID); err != nil {
			return nil, wrapErr("unset solution", err)
		}
		if err := tx.Commit(); err != nil {
			return nil, wrapErr("commit toggle solution", err)
		}
		return &domain.SolutionResult{IsSolution: false}, nil
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO topic_solutions (topic_id, post_id, marked_by, marked_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(topic_id) DO UPDATE SET
		   post_id = excluded.post_id,
		   marked_by = excluded.marked_by,
		   marked_at = excluded.marked_at`,
		topicID, postID, markedBy, formatTime(time.Now()))
	if err != nil {
		return nil, wrapErr("set solution", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, wrapErr("commit toggle solution", err)
	}
	return &domain.SolutionResult{IsSolution: true}, nil
}

// GetSolution returns the topic's current solution, ErrNotFound when the
// topic has none.
func (s *Store) GetSolution(ctx context.Context, topicID string) (*domain.Solution, error) {
	var (
		sol      domain.Solution
		markedAt string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT topic_id, post_id, marked_by, marked_at
		 FROM topic_solutions WHERE topic_id = ?`, topicID).
		Scan(&sol.TopicID, &sol.PostID, &sol.MarkedBy, &markedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, wrapErr("get solution", err)
	}
	if sol.MarkedAt, err = parseTime(markedAt); err != nil {
		return nil, wrapErr("parse solution marked_at", err)
	}
	return &sol, nil
}
