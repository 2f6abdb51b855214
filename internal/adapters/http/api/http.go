// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/okian/boruto/internal/domain/types"
	"github.com/okian/boruto/pkg/logger"
	"github.com/rs/cors"
)

// Bodies of responses to unrouted requests.
const (
	pageNotFoundMessage     = "Page not Found."
	methodNotAllowedMessage = "Method not Allowed."
)

// Dependencies required by HTTP handlers.
type Dependencies interface {
	RootDependencies
	HeroesDependencies
	StatsProvider
}

// Server wires HTTP routes for the hero API.
type Server struct {
	logger      logger.Logger
	corsOrigins []string

	rootHandler   *RootHandler
	heroesHandler *HeroesHandler
	statsHandler  *StatsHandler
	healthHandler *HealthHandler
}

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithLogger sets the logger used for access logs and write failures.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCORSOrigins sets the origins allowed by CORS. Use "*" for any.
func WithCORSOrigins(origins []string) Option {
	return func(s *Server) {
		s.corsOrigins = origins
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...Option) *Server {
	s := &Server{
		corsOrigins: []string{"*"},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.rootHandler = NewRootHandler(deps, s.logger)
	s.heroesHandler = NewHeroesHandler(deps, s.logger)
	s.statsHandler = NewStatsHandler(deps, s.logger)
	s.healthHandler = NewHealthHandler(s.logger)
	return s
}

// Register attaches all API routes and the metrics middleware to router.
func (s *Server) Register(_ context.Context, router *mux.Router) {
	if router == nil {
		panic("router is nil")
	}

	router.Use(MetricsMiddleware)

	router.HandleFunc("/", s.rootHandler.HandleRoot).Methods(http.MethodGet).Name("root")
	router.HandleFunc("/boruto/heroes", s.heroesHandler.HandleList).Methods(http.MethodGet).Name("heroes")
	router.HandleFunc("/boruto/heroes/search", s.heroesHandler.HandleSearch).Methods(http.MethodGet).Name("heroes_search")
	router.HandleFunc("/stats", s.statsHandler.HandleStats).Methods(http.MethodGet).Name("stats")
	router.HandleFunc("/healthz", s.healthHandler.HandleHealth).Methods(http.MethodGet).Name("healthz")
	router.Handle("/metrics", MetricsHandler()).Methods(http.MethodGet).Name("metrics")

	router.NotFoundHandler = recordRoute("not_found", http.HandlerFunc(s.HandleNotFound))
	router.MethodNotAllowedHandler = recordRoute("method_not_allowed", http.HandlerFunc(s.handleMethodNotAllowed))
}

// Wrap applies the outer middleware chain: CORS, request id, access log.
func (s *Server) Wrap(next http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: s.corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", HeaderRequestID},
		ExposedHeaders: []string{HeaderRequestID},
	})
	return RequestIDMiddleware(c.Handler(LoggingMiddleware(s.logger)(next)))
}

// Handler returns a fully wired handler with only the API routes.
func (s *Server) Handler(ctx context.Context) http.Handler {
	router := mux.NewRouter()
	s.Register(ctx, router)
	return s.Wrap(router)
}

// HandleNotFound writes the 404 body shared by every unknown path. It records
// no metrics itself.
func (s *Server) HandleNotFound(w http.ResponseWriter, r *http.Request) {
	if err := writeJSON(w, http.StatusNotFound, pageNotFoundMessage); err != nil {
		s.logger.Error(r.Context(), "write not found response", logger.Error(err))
	}
}

func (s *Server) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	if err := writeJSON(w, http.StatusMethodNotAllowed, methodNotAllowedMessage); err != nil {
		s.logger.Error(r.Context(), "write method not allowed response", logger.Error(err))
	}
}

// statusFor maps a query outcome to its HTTP status.
func statusFor(o types.Outcome) int {
	switch o {
	case types.OutcomeOK:
		return http.StatusOK
	case types.OutcomeBadRequest:
		return http.StatusBadRequest
	case types.OutcomeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeJSON encodes v without a trailing newline so scalar bodies such as
// the welcome string are byte-exact.
func writeJSON(w http.ResponseWriter, status int, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return nil
}
