// Package directory resolves post and topic IDs to the identity slices the
// engine needs. Content itself lives in the collaborator content service;
// in production the SQLite store reads its tables in the shared database
// and satisfies this interface directly.
package directory

import (
	"context"

	"github.com/parleyapp/parley-server/internal/domain"
	"github.com/parleyapp/parley-server/internal/store"
)

// Directory resolves content identities. Unknown IDs return
// store.ErrNotFound. Resolved identities are trusted as already validated.
type Directory interface {
	GetPostIdentity(ctx context.Context, postID string) (*domain.PostIdentity, error)
	GetTopicIdentity(ctx context.Context, topicID string) (*domain.TopicIdentity, error)
}

// Static is a fixed in-memory directory for tests.
type Static struct {
	Posts  map[string]*domain.PostIdentity
	Topics map[string]*domain.TopicIdentity
}

var _ Directory = (*Static)(nil)

// NewStatic builds a Static from post identities; topics are derived from
// the posts' topic IDs.
func NewStatic(posts ...*domain.PostIdentity) *Static {
	s := &Static{
		Posts:  make(map[string]*domain.PostIdentity),
		Topics: make(map[string]*domain.TopicIdentity),
	}
	for _, p := range posts {
		s.Posts[p.ID] = p
		s.Topics[p.TopicID] = &domain.TopicIdentity{ID: p.TopicID}
	}
	return s
}

// GetPostIdentity implements Directory.
func (s *Static) GetPostIdentity(_ context.Context, postID string) (*domain.PostIdentity, error) {
	p, ok := s.Posts[postID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return p, nil
}

// GetTopicIdentity implements Directory.
func (s *Static) GetTopicIdentity(_ context.Context, topicID string) (*domain.TopicIdentity, error) {
	t, ok := s.Topics[topicID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return t, nil
}
