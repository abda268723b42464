// Package api provides the HTTP surface of the interaction engine: typed
// huma operations on a chi router, plus the plain health and SSE endpoints.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/parleyapp/parley-server/internal/auth"
	"github.com/parleyapp/parley-server/internal/http/response"
	"github.com/parleyapp/parley-server/internal/ratelimit"
	"github.com/parleyapp/parley-server/internal/service"
	"github.com/parleyapp/parley-server/internal/sse"
)

// Services groups the business logic services used by the API server.
type Services struct {
	Votes         *service.VoteService
	Solutions     *service.SolutionService
	Bookmarks     *service.BookmarkService
	Notifications *service.NotificationService
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	services   *Services
	tokens     *auth.TokenService
	sseHandler *sse.Handler
	router     *chi.Mux
	api        huma.API
	logger     *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(services *Services, tokens *auth.TokenService, sseHandler *sse.Handler, limiter *ratelimit.KeyedRateLimiter, logger *slog.Logger) *Server {
	s := &Server{
		services:   services,
		tokens:     tokens,
		sseHandler: sseHandler,
		router:     chi.NewRouter(),
		logger:     logger,
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	s.router.Use(authMiddleware(tokens))
	s.router.Use(rateLimitMiddleware(limiter, logger))

	humaConfig := huma.DefaultConfig("Parley Interaction API", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}
	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()

	s.setupRoutes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Health check and the SSE stream stay outside huma: one is trivial,
	// the other is a long-lived connection huma's model doesn't fit.
	s.router.Get("/health", s.handleHealthCheck)
	s.router.Get("/api/v1/notifications/stream", s.sseHandler.ServeHTTP)

	s.registerVoteRoutes()
	s.registerSolutionRoutes()
	s.registerBookmarkRoutes()
	s.registerNotificationRoutes()
}

// handleHealthCheck returns server health status.
func (s *Server) handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]string{
		"status": "healthy",
	}, s.logger)
}
