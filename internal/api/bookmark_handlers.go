package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerBookmarkRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "toggleBookmark",
		Method:      http.MethodPost,
		Path:        "/api/v1/topics/{topicID}/bookmark",
		Summary:     "Toggle a bookmark",
		Description: "Saves the topic to the user's bookmarks, or removes it when already saved.",
		Tags:        []string{"Bookmarks"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleToggleBookmark)

	huma.Register(s.api, huma.Operation{
		OperationID: "getBookmark",
		Method:      http.MethodGet,
		Path:        "/api/v1/topics/{topicID}/bookmark",
		Summary:     "Check a bookmark",
		Tags:        []string{"Bookmarks"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetBookmark)

	huma.Register(s.api, huma.Operation{
		OperationID: "listBookmarks",
		Method:      http.MethodGet,
		Path:        "/api/v1/bookmarks",
		Summary:     "List bookmarks",
		Description: "Returns the topics the user has bookmarked, newest first.",
		Tags:        []string{"Bookmarks"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListBookmarks)
}

// === DTOs ===

// BookmarkInput identifies the topic being bookmarked or checked.
type BookmarkInput struct {
	TopicID string `path:"topicID" doc:"Topic ID"`
}

// BookmarkResponse reports bookmark membership.
type BookmarkResponse struct {
	Bookmarked bool `json:"bookmarked" doc:"Whether the topic is in the user's bookmarks"`
}

// BookmarkOutput wraps the bookmark response for huma.
type BookmarkOutput struct {
	Body BookmarkResponse
}

// ListBookmarksResponse lists the user's bookmarked topics.
type ListBookmarksResponse struct {
	TopicIDs []string `json:"topic_ids" doc:"Bookmarked topic IDs, newest first"`
}

// ListBookmarksOutput wraps the list response for huma.
type ListBookmarksOutput struct {
	Body ListBookmarksResponse
}

// === Handlers ===

func (s *Server) handleToggleBookmark(ctx context.Context, input *BookmarkInput) (*BookmarkOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	result, err := s.services.Bookmarks.Toggle(ctx, userID, input.TopicID)
	if err != nil {
		return nil, err
	}

	return &BookmarkOutput{Body: BookmarkResponse{Bookmarked: result.Bookmarked}}, nil
}

func (s *Server) handleGetBookmark(ctx context.Context, input *BookmarkInput) (*BookmarkOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	bookmarked, err := s.services.Bookmarks.IsBookmarked(ctx, userID, input.TopicID)
	if err != nil {
		return nil, err
	}

	return &BookmarkOutput{Body: BookmarkResponse{Bookmarked: bookmarked}}, nil
}

func (s *Server) handleListBookmarks(ctx context.Context, _ *struct{}) (*ListBookmarksOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	bookmarks, err := s.services.Bookmarks.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	topicIDs := make([]string, len(bookmarks))
	for i, b := range bookmarks {
		topicIDs[i] = b.TopicID
	}

	return &ListBookmarksOutput{Body: ListBookmarksResponse{TopicIDs: topicIDs}}, nil
}
