package api

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parleyapp/parley-server/internal/auth"
	"github.com/parleyapp/parley-server/internal/domain"
	"github.com/parleyapp/parley-server/internal/ratelimit"
	"github.com/parleyapp/parley-server/internal/service"
	"github.com/parleyapp/parley-server/internal/sse"
	"github.com/parleyapp/parley-server/internal/store"
	"github.com/parleyapp/parley-server/internal/store/sqlite"
	"github.com/parleyapp/parley-server/internal/validation"
)

const testSigningKey = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

// testServer wraps the API server for handler testing.
type testServer struct {
	*Server
	api    humatest.TestAPI
	store  *sqlite.Store
	tokens *auth.TokenService
}

// setupTestServer creates a server backed by a real database in a temp dir.
// The rate limiter is generous so individual tests never trip it.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()
	return setupTestServerWithLimiter(t, ratelimit.New(1000, 1000))
}

func setupTestServerWithLimiter(t *testing.T, limiter *ratelimit.KeyedRateLimiter) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	st, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	t.Cleanup(limiter.Stop)

	tokens, err := auth.NewTokenService(testSigningKey, 15*time.Minute)
	require.NoError(t, err)

	notifications := service.NewNotificationService(st, store.NewNoopEmitter(), validation.New(), logger)
	services := &Services{
		Votes:         service.NewVoteService(st, st, logger),
		Solutions:     service.NewSolutionService(st, st, notifications, logger),
		Bookmarks:     service.NewBookmarkService(st, st, logger),
		Notifications: notifications,
	}

	router := chi.NewRouter()
	router.Use(authMiddleware(tokens))
	router.Use(rateLimitMiddleware(limiter, logger))

	humaConfig := huma.DefaultConfig("Parley Interaction API Test", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}

	api := humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s := &Server{
		services:   services,
		tokens:     tokens,
		sseHandler: sse.NewHandler(sse.NewManager(logger), tokens, logger),
		router:     router,
		api:        api,
		logger:     logger,
	}
	s.setupRoutes()

	return &testServer{
		Server: s,
		api:    humatest.Wrap(t, api),
		store:  st,
		tokens: tokens,
	}
}

// bearer mints an access token for userID and returns it as a header argument.
func (ts *testServer) bearer(t *testing.T, userID string) string {
	t.Helper()
	token, err := ts.tokens.GenerateAccessToken(userID)
	require.NoError(t, err)
	return "Authorization: Bearer " + token
}

// seedPost registers a topic and one post in it.
func (ts *testServer) seedPost(t *testing.T, topicID, postID, authorID string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, ts.store.UpsertTopic(ctx, topicID))
	require.NoError(t, ts.store.UpsertPost(ctx, &domain.PostIdentity{
		ID:       postID,
		TopicID:  topicID,
		AuthorID: authorID,
	}))
}

func TestHealthCheck(t *testing.T) {
	ts := setupTestServer(t)

	w := httptest.NewRecorder()
	ts.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestRateLimit_Mutations(t *testing.T) {
	// One token, essentially no refill: the second write must be rejected.
	ts := setupTestServerWithLimiter(t, ratelimit.New(0.001, 1))
	ts.seedPost(t, "topic-1", "post-1", "user-author")
	token := ts.bearer(t, "user-a")

	resp := ts.api.Post("/api/v1/posts/post-1/vote",
		map[string]any{"value": 1},
		token)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Post("/api/v1/posts/post-1/vote",
		map[string]any{"value": 1},
		token)
	assert.Equal(t, http.StatusTooManyRequests, resp.Code)

	// Reads are never limited.
	resp = ts.api.Get("/api/v1/posts/post-1/vote", token)
	assert.Equal(t, http.StatusOK, resp.Code)

	// Another user has their own bucket.
	resp = ts.api.Post("/api/v1/posts/post-1/vote",
		map[string]any{"value": -1},
		ts.bearer(t, "user-b"))
	assert.Equal(t, http.StatusOK, resp.Code)
}
