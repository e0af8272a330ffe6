package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Handlers groups everything NewRouter mounts
type Handlers struct {
	Health       *HealthHandler
	Customers    *CustomerHandler
	Search       *SearchHandler
	SearchSocket *SearchSocketHandler
	Opportunity  *OpportunityHandler
}

// NewRouter builds the API router
func NewRouter(h Handlers, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(RecoveryMiddleware(logger))
	r.Use(LoggingMiddleware(logger))
	r.Use(CORSMiddleware)

	r.Get("/health", h.Health.Health)

	r.Route("/customers", func(r chi.Router) {
		r.Get("/search", h.Search.Search)
		r.Post("/search/select", h.Search.Select)
		h.Customers.Routes(r)
	})

	r.Route("/opportunities", func(r chi.Router) {
		r.Get("/", h.Opportunity.Dashboard)
		r.Get("/{id}", h.Opportunity.GetProgram)
	})

	r.Get("/ws/search", h.SearchSocket.Serve)

	return r
}
