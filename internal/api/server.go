// Package api provides the HTTP API server and handlers for the kanban
// application.
package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	domainerrors "github.com/megsikon/kanban-server/internal/errors"
	"github.com/megsikon/kanban-server/internal/repo"
	"github.com/megsikon/kanban-server/internal/validation"
)

// Repositories bundles the entity repositories the handlers dispatch to.
type Repositories struct {
	Tags  *repo.TagRepository
	Users *repo.UserRepository
	Items *repo.WorkItemRepository
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	repos     *Repositories
	validator *validation.Validator
	router    *chi.Mux
	api       huma.API
	logger    *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(repos *Repositories, logger *slog.Logger) *Server {
	s := &Server{
		repos:     repos,
		validator: validation.New(),
		router:    chi.NewRouter(),
		logger:    logger,
	}

	s.setupMiddleware()

	humaConfig := huma.DefaultConfig("Kanban API", "1.0.0")
	s.api = humachi.New(s.router, humaConfig)

	s.registerHealthRoutes()
	s.registerTagRoutes()
	s.registerUserRoutes()
	s.registerWorkItemRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}

// registerHealthRoutes registers the health check endpoint.
func (s *Server) registerHealthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "healthCheck",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Tags:        []string{"Health"},
	}, func(_ context.Context, _ *struct{}) (*HealthOutput, error) {
		return &HealthOutput{Body: HealthResponse{Status: "ok"}}, nil
	})
}

// HealthResponse is the health check body.
type HealthResponse struct {
	Status string `json:"status" doc:"Service status"`
}

// HealthOutput wraps the health check response for Huma.
type HealthOutput struct {
	Body HealthResponse
}

// MutationResponse reports the outcome of a mutating repository operation.
// For creates, ID is populated on Conflict as well, pointing at the
// pre-existing entity.
type MutationResponse struct {
	Response repo.Response `json:"response" doc:"Operation outcome"`
	ID       int64         `json:"id,omitempty" doc:"Entity id, when applicable"`
}

// MutationOutput wraps a mutation response with its HTTP status for Huma.
type MutationOutput struct {
	Status int
	Body   MutationResponse
}

// statusFor maps a repository outcome to an HTTP status code.
func statusFor(res repo.Response) int {
	switch res {
	case repo.Created:
		return http.StatusCreated
	case repo.Updated, repo.Deleted:
		return http.StatusOK
	case repo.Conflict:
		return http.StatusConflict
	case repo.NotFound:
		return http.StatusNotFound
	case repo.BadRequest:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// mutationOutput builds the response envelope for a repository outcome.
func mutationOutput(res repo.Response, id int64) *MutationOutput {
	return &MutationOutput{
		Status: statusFor(res),
		Body:   MutationResponse{Response: res, ID: id},
	}
}

// apiError converts validation and internal errors into Huma errors.
func (s *Server) apiError(op string, err error) error {
	var dErr *domainerrors.Error
	if domainerrors.As(err, &dErr) {
		return huma.NewError(dErr.HTTPStatus(), dErr.Message)
	}
	s.logger.Error(op+" failed", "error", err)
	return huma.Error500InternalServerError("internal error")
}
