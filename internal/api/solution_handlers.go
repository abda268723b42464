package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerSolutionRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "toggleSolution",
		Method:      http.MethodPost,
		Path:        "/api/v1/posts/{postID}/solution",
		Summary:     "Toggle a solution mark",
		Description: "Marks the post as its topic's solution, moving the mark from any other post. Toggling the current solution unmarks it.",
		Tags:        []string{"Solutions"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleToggleSolution)

	huma.Register(s.api, huma.Operation{
		OperationID: "getSolution",
		Method:      http.MethodGet,
		Path:        "/api/v1/topics/{topicID}/solution",
		Summary:     "Get a topic's solution",
		Tags:        []string{"Solutions"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetSolution)
}

// === DTOs ===

// ToggleSolutionInput contains parameters for toggling a solution mark.
type ToggleSolutionInput struct {
	PostID string `path:"postID" doc:"Post ID"`
	Body   struct {
		TopicID string `json:"topic_id" doc:"Topic the post belongs to"`
	}
}

// ToggleSolutionResponse reports the post's solution state after the toggle.
type ToggleSolutionResponse struct {
	IsSolution bool `json:"is_solution" doc:"Whether the post is now the topic's solution"`
}

// ToggleSolutionOutput wraps the toggle response for huma.
type ToggleSolutionOutput struct {
	Body ToggleSolutionResponse
}

// GetSolutionInput contains parameters for reading a topic's solution.
type GetSolutionInput struct {
	TopicID string `path:"topicID" doc:"Topic ID"`
}

// SolutionResponse describes a topic's solution, if any.
type SolutionResponse struct {
	Solved   bool       `json:"solved" doc:"Whether the topic has a solution"`
	PostID   string     `json:"post_id,omitempty" doc:"The solving post"`
	MarkedBy string     `json:"marked_by,omitempty" doc:"Who marked it"`
	MarkedAt *time.Time `json:"marked_at,omitempty" doc:"When it was marked"`
}

// SolutionOutput wraps the solution response for huma.
type SolutionOutput struct {
	Body SolutionResponse
}

// === Handlers ===

func (s *Server) handleToggleSolution(ctx context.Context, input *ToggleSolutionInput) (*ToggleSolutionOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	result, err := s.services.Solutions.Toggle(ctx, userID, input.Body.TopicID, input.PostID)
	if err != nil {
		return nil, err
	}

	return &ToggleSolutionOutput{Body: ToggleSolutionResponse{
		IsSolution: result.IsSolution,
	}}, nil
}

func (s *Server) handleGetSolution(ctx context.Context, input *GetSolutionInput) (*SolutionOutput, error) {
	if _, err := GetUserID(ctx); err != nil {
		return nil, err
	}

	sol, err := s.services.Solutions.Get(ctx, input.TopicID)
	if err != nil {
		return nil, err
	}
	if sol == nil {
		return &SolutionOutput{Body: SolutionResponse{Solved: false}}, nil
	}

	return &SolutionOutput{Body: SolutionResponse{
		Solved:   true,
		PostID:   sol.PostID,
		MarkedBy: sol.MarkedBy,
		MarkedAt: &sol.MarkedAt,
	}}, nil
}
