package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/parleyapp/parley-server/internal/domain"
	"github.com/parleyapp/parley-server/internal/id"
	"github.com/parleyapp/parley-server/internal/store"
)

// CastVote applies one cast of value by userID on postID and adjusts the
// post's running score, all in one transaction.
//
// State machine per (post, user): no prior vote inserts the row; an opposite
// prior vote flips it; repeating the prior vote deletes it (toggle-off).
func (s *Store) CastVote(ctx context.Context, postID, userID string, value int) (*domain.VoteResult, error) {
	if !domain.ValidVoteValue(value) {
		return nil, store.ErrInvalidInput
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, wrapErr("begin cast vote", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	var prior int
	err = tx.QueryRowContext(ctx,
		`SELECT value FROM votes WHERE post_id = ? AND user_id = ?`,
		postID, userID).Scan(&prior)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, wrapErr("read prior vote", err)
	}

	now := formatTime(time.Now())
	var delta, userVote int

	switch prior {
	case domain.VoteNone:
		voteID, err := id.Generate("vote")
		if err != nil {
			return nil, wrapErr("generate vote id", err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO votes (id, post_id, user_id, value, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			voteID, postID, userID, value, now, now)
		if err != nil {
			return nil, wrapErr("insert vote", err)
		}
		delta, userVote = value, value

	case value:
		_, err = tx.ExecContext(ctx,
			`DELETE FROM votes WHERE post_id = ? AND user_id = ?`, postID, userID)
		if err != nil {
			return nil, wrapErr("delete vote", err)
		}
		delta, userVote = -value, domain.VoteNone

	default:
		_, err = tx.ExecContext(ctx,
			`UPDATE votes SET value = ?, updated_at = ? WHERE post_id = ? AND user_id = ?`,
			value, now, postID, userID)
		if err != nil {
			return nil, wrapErr("flip vote", err)
		}
		delta, userVote = value-prior, value
	}

	var score int
	err = tx.QueryRowContext(ctx,
		`INSERT INTO post_scores (post_id, score) VALUES (?, ?)
		 ON CONFLICT(post_id) DO UPDATE SET score = score + excluded.score
		 RETURNING score`,
		postID, delta).Scan(&score)
	if err != nil {
		return nil, wrapErr("adjust score", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, wrapErr("commit cast vote", err)
	}
	return &domain.VoteResult{Score: score, UserVote: userVote}, nil
}

// GetVote returns the user's current vote on a post.
func (s *Store) GetVote(ctx context.Context, postID, userID string) (*domain.Vote, error) {
	var (
		v                    domain.Vote
		createdAt, updatedAt string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, post_id, user_id, value, created_at, updated_at
		 FROM votes WHERE post_id = ? AND user_id = ?`,
		postID, userID).
		Scan(&v.ID, &v.PostID, &v.UserID, &v.Value, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, wrapErr("get vote", err)
	}
	if v.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, wrapErr("parse vote created_at", err)
	}
	if v.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, wrapErr("parse vote updated_at", err)
	}
	return &v, nil
}

// GetScore returns the post's running score, 0 when no votes exist.
func (s *Store) GetScore(ctx context.Context, postID string) (int, error) {
	var score int
	err := s.db.QueryRowContext(ctx,
		`SELECT score FROM post_scores WHERE post_id = ?`, postID).Scan(&score)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, wrapErr("get score", err)
	}
	return score, nil
}

// RecountScore recomputes the score from vote rows and overwrites the
// running tally. Offline repair only.
func (s *Store) RecountScore(ctx context.Context, postID string) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, wrapErr("begin recount", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	var score int
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(value), 0) FROM votes WHERE post_id = ?`, postID).Scan(&score)
	if err != nil {
		return 0, wrapErr("sum votes", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO post_scores (post_id, score) VALUES (?, ?)
		 ON CONFLICT(post_id) DO UPDATE SET score = excluded.score`,
		postID, score)
	if err != nil {
		return 0, wrapErr("write recounted score", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, wrapErr("commit recount", err)
	}
	return score, nil
}
