package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Raymond9734/customer360-backend/internal/service"
)

// SearchHandler handles the global customer search box
type SearchHandler struct {
	searchService    service.SearchService
	selectionService service.SelectionService
	logger           *slog.Logger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(
	searchService service.SearchService,
	selectionService service.SelectionService,
	logger *slog.Logger,
) *SearchHandler {
	return &SearchHandler{
		searchService:    searchService,
		selectionService: selectionService,
		logger:           logger,
	}
}

// Search handles GET /customers/search?q=
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	result, err := h.searchService.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondSuccess(w, result)
}

// Select handles POST /customers/search/select
func (h *SearchHandler) Select(w http.ResponseWriter, r *http.Request) {
	var req service.SelectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON format")
		return
	}

	result, err := h.selectionService.Select(r.Context(), &req)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondSuccess(w, result)
}
