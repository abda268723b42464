package service

import (
	"context"
	"log/slog"

	"github.com/parleyapp/parley-server/internal/directory"
	"github.com/parleyapp/parley-server/internal/domain"
	domainerrors "github.com/parleyapp/parley-server/internal/errors"
	"github.com/parleyapp/parley-server/internal/store"
)

// VoteService is the vote ledger: one up or down vote per user per post,
// with a running score maintained transactionally by the store.
type VoteService struct {
	store  store.Store
	dir    directory.Directory
	logger *slog.Logger
}

// NewVoteService creates a new vote service.
func NewVoteService(store store.Store, dir directory.Directory, logger *slog.Logger) *VoteService {
	return &VoteService{
		store:  store,
		dir:    dir,
		logger: logger,
	}
}

// Cast applies one vote cast by userID on postID. Casting the value already
// held removes the vote; casting the opposite flips it.
func (s *VoteService) Cast(ctx context.Context, userID, postID string, value int) (*domain.VoteResult, error) {
	if !domain.ValidVoteValue(value) {
		return nil, domainerrors.Validationf("vote value must be %d or %d", domain.VoteUp, domain.VoteDown)
	}

	if _, err := s.dir.GetPostIdentity(ctx, postID); err != nil {
		return nil, mapStoreErr(err, "post not found")
	}

	var result *domain.VoteResult
	err := withWriteRetry(ctx, s.logger, "cast vote", func() error {
		var err error
		result, err = s.store.CastVote(ctx, postID, userID, value)
		return err
	})
	if err != nil {
		return nil, mapStoreErr(err, "post not found")
	}

	s.logger.Debug("vote cast",
		slog.String("post_id", postID),
		slog.String("user_id", userID),
		slog.Int("value", value),
		slog.Int("score", result.Score))
	return result, nil
}

// Get returns the post's score and the user's current vote on it.
func (s *VoteService) Get(ctx context.Context, userID, postID string) (*domain.VoteResult, error) {
	if _, err := s.dir.GetPostIdentity(ctx, postID); err != nil {
		return nil, mapStoreErr(err, "post not found")
	}

	score, err := s.store.GetScore(ctx, postID)
	if err != nil {
		return nil, mapStoreErr(err, "post not found")
	}

	userVote := domain.VoteNone
	vote, err := s.store.GetVote(ctx, postID, userID)
	switch {
	case err == nil:
		userVote = vote.Value
	case !domainerrors.Is(err, store.ErrNotFound):
		return nil, mapStoreErr(err, "post not found")
	}

	return &domain.VoteResult{Score: score, UserVote: userVote}, nil
}

// Recount rebuilds a post's score from its vote rows. Repair tool for
// operators, not exposed on the request path.
func (s *VoteService) Recount(ctx context.Context, postID string) (int, error) {
	if _, err := s.dir.GetPostIdentity(ctx, postID); err != nil {
		return 0, mapStoreErr(err, "post not found")
	}

	score, err := s.store.RecountScore(ctx, postID)
	if err != nil {
		return 0, mapStoreErr(err, "post not found")
	}

	s.logger.Info("score recounted",
		slog.String("post_id", postID),
		slog.Int("score", score))
	return score, nil
}
