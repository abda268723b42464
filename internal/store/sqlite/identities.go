package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/parleyapp/parley-server/internal/domain"
	"github.com/parleyapp/parley-server/internal/store"
)

// GetPostIdentity resolves a post ID against the content service's posts
// table. Implements directory.Directory.
func (s *Store) GetPostIdentity(ctx context.Context, postID string) (*domain.PostIdentity, error) {
	var p domain.PostIdentity
	err := s.db.QueryRowContext(ctx,
		`SELECT id, topic_id, author_id FROM posts WHERE id = ?`, postID).
		Scan(&p.ID, &p.TopicID, &p.AuthorID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, wrapErr("get post identity", err)
	}
	return &p, nil
}

// GetTopicIdentity resolves a topic ID against the content service's topics
// table. Implements directory.Directory.
func (s *Store) GetTopicIdentity(ctx context.Context, topicID string) (*domain.TopicIdentity, error) {
	var t domain.TopicIdentity
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM topics WHERE id = ?`, topicID).Scan(&t.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, wrapErr("get topic identity", err)
	}
	return &t, nil
}

// UpsertTopic writes a topic row. The content service owns these rows in
// production; this exists for cmd/seed and tests.
func (s *Store) UpsertTopic(ctx context.Context, topicID string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO topics (id) VALUES (?) ON CONFLICT(id) DO NOTHING`, topicID)
	if err != nil {
		return wrapErr("upsert topic", err)
	}
	return nil
}

// UpsertPost writes a post row. See UpsertTopic.
func (s *Store) UpsertPost(ctx context.Context, p *domain.PostIdentity) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO posts (id, topic_id, author_id) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET topic_id = excluded.topic_id, author_id = excluded.author_id`,
		p.ID, p.TopicID, p.AuthorID)
	if err != nil {
		return wrapErr("upsert post", err)
	}
	return nil
}
