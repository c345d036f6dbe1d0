// Package core provides the API chassis for the orderline service. It
// creates the chi router and enforces cross-cutting concerns -- panic
// recovery, request correlation, logging, and error handling -- before
// requests reach the webhook handler.
package core

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"orderline/internal/config"
)

// Server encapsulates the dependencies of the HTTP surface, allowing for
// easy injection during testing.
type Server struct {
	Config *config.Config
	Logger *slog.Logger

	// RouteRegistrars are populated by the application entry point before
	// MountRoutes is called. This indirection avoids import cycles between
	// core and handler packages.
	RouteRegistrars []func(chi.Router)

	router *chi.Mux
}

// NewServer initializes the server chassis. The caller is responsible for
// appending RouteRegistrars and calling MountRoutes afterwards; the
// separation lets tests customize route registration.
func NewServer(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}

	return &Server{
		Config: cfg,
		Logger: logger,
		router: chi.NewRouter(),
	}, nil
}

// Handler returns the http.Handler interface for the router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Router returns the underlying chi.Mux for route registration in tests.
func (s *Server) Router() *chi.Mux {
	return s.router
}
