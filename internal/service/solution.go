package service

import (
	"context"
	"log/slog"

	"github.com/parleyapp/parley-server/internal/directory"
	"github.com/parleyapp/parley-server/internal/domain"
	domainerrors "github.com/parleyapp/parley-server/internal/errors"
	"github.com/parleyapp/parley-server/internal/store"
)

// SolutionService marks and unmarks the post that answers a topic.
type SolutionService struct {
	store         store.Store
	dir           directory.Directory
	notifications *NotificationService
	logger        *slog.Logger
}

// NewSolutionService creates a new solution service.
func NewSolutionService(st store.Store, dir directory.Directory, notifications *NotificationService, logger *slog.Logger) *SolutionService {
	return &SolutionService{
		store:         st,
		dir:           dir,
		notifications: notifications,
		logger:        logger,
	}
}

// Toggle flips the topic's solution flag for the post. Marking a post that
// already holds the flag unsets it; marking another post moves the flag in
// one atomic replacement.
//
// Newly marking notifies the author of the marked post, unless the actor is
// marking their own post. The vote/solution state is authoritative even when
// notification delivery fails; those failures are logged only.
func (s *SolutionService) Toggle(ctx context.Context, actorID, topicID, postID string) (*domain.SolutionResult, error) {
	post, err := s.dir.GetPostIdentity(ctx, postID)
	if err != nil {
		return nil, mapStoreErr(err, "post not found")
	}
	if post.TopicID != topicID {
		return nil, domainerrors.Validation("post does not belong to this topic")
	}
	if _, err := s.dir.GetTopicIdentity(ctx, topicID); err != nil {
		return nil, mapStoreErr(err, "topic not found")
	}

	var result *domain.SolutionResult
	err = withWriteRetry(ctx, s.logger, "toggle solution", func() error {
		var err error
		result, err = s.store.ToggleSolution(ctx, topicID, postID, actorID)
		return err
	})
	if err != nil {
		return nil, mapStoreErr(err, "topic not found")
	}

	if result.IsSolution && post.AuthorID != actorID {
		_, err := s.notifications.Publish(ctx, &PublishInput{
			RecipientID: post.AuthorID,
			Kind:        domain.NotificationSolutionMarked,
			TopicID:     topicID,
			PostID:      postID,
			ActorID:     actorID,
			Body:        "Your post was marked as the solution",
		})
		if err != nil {
			s.logger.Error("solution notification failed",
				slog.String("post_id", postID),
				slog.String("recipient_id", post.AuthorID),
				slog.String("error", err.Error()))
		}
	}

	s.logger.Debug("solution toggled",
		slog.String("topic_id", topicID),
		slog.String("post_id", postID),
		slog.String("actor_id", actorID),
		slog.Bool("is_solution", result.IsSolution))
	return result, nil
}

// Get returns the topic's current solution, nil when it has none.
func (s *SolutionService) Get(ctx context.Context, topicID string) (*domain.Solution, error) {
	if _, err := s.dir.GetTopicIdentity(ctx, topicID); err != nil {
		return nil, mapStoreErr(err, "topic not found")
	}

	sol, err := s.store.GetSolution(ctx, topicID)
	if domainerrors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, mapStoreErr(err, "topic not found")
	}
	return sol, nil
}
