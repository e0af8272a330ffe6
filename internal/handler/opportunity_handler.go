package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Raymond9734/customer360-backend/internal/service"
)

// OpportunityHandler serves the programs dashboard
type OpportunityHandler struct {
	opportunityService service.OpportunityService
	logger             *slog.Logger
}

// NewOpportunityHandler creates a new opportunity handler
func NewOpportunityHandler(opportunityService service.OpportunityService, logger *slog.Logger) *OpportunityHandler {
	return &OpportunityHandler{
		opportunityService: opportunityService,
		logger:             logger,
	}
}

// Dashboard handles GET /opportunities
func (h *OpportunityHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	programs, err := h.opportunityService.Dashboard(r.Context())
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondList(w, programs)
}

// GetProgram handles GET /opportunities/{id}
func (h *OpportunityHandler) GetProgram(w http.ResponseWriter, r *http.Request) {
	program, err := h.opportunityService.GetProgram(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondSuccess(w, program)
}
