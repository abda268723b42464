package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerVoteRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "castVote",
		Method:      http.MethodPost,
		Path:        "/api/v1/posts/{postID}/vote",
		Summary:     "Cast a vote",
		Description: "Casts an up or down vote on a post. Re-casting the same value removes the vote; casting the opposite flips it.",
		Tags:        []string{"Votes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCastVote)

	huma.Register(s.api, huma.Operation{
		OperationID: "getVote",
		Method:      http.MethodGet,
		Path:        "/api/v1/posts/{postID}/vote",
		Summary:     "Get a post's tally",
		Description: "Returns the post's score and the requesting user's current vote.",
		Tags:        []string{"Votes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetVote)
}

// === DTOs ===

// CastVoteInput contains parameters for casting a vote.
type CastVoteInput struct {
	PostID string `path:"postID" doc:"Post ID"`
	Body   struct {
		Value int `json:"value" doc:"1 for an upvote, -1 for a downvote"`
	}
}

// GetVoteInput contains parameters for reading a post's tally.
type GetVoteInput struct {
	PostID string `path:"postID" doc:"Post ID"`
}

// VoteResponse is the post's tally as seen by the requesting user.
type VoteResponse struct {
	Score    int `json:"score" doc:"Sum of all votes on the post"`
	UserVote int `json:"user_vote" doc:"The requesting user's vote: 1, -1, or 0"`
}

// VoteOutput wraps the vote response for huma.
type VoteOutput struct {
	Body VoteResponse
}

// === Handlers ===

func (s *Server) handleCastVote(ctx context.Context, input *CastVoteInput) (*VoteOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	result, err := s.services.Votes.Cast(ctx, userID, input.PostID, input.Body.Value)
	if err != nil {
		return nil, err
	}

	return &VoteOutput{Body: VoteResponse{
		Score:    result.Score,
		UserVote: result.UserVote,
	}}, nil
}

func (s *Server) handleGetVote(ctx context.Context, input *GetVoteInput) (*VoteOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	result, err := s.services.Votes.Get(ctx, userID, input.PostID)
	if err != nil {
		return nil, err
	}

	return &VoteOutput{Body: VoteResponse{
		Score:    result.Score,
		UserVote: result.UserVote,
	}}, nil
}
