package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Raymond9734/customer360-backend/internal/models"
	"github.com/Raymond9734/customer360-backend/internal/service"
)

// CustomerHandler handles the customer directory and 360 view requests
type CustomerHandler struct {
	customerService    service.CustomerService
	opportunityService service.OpportunityService
	logger             *slog.Logger
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(
	customerService service.CustomerService,
	opportunityService service.OpportunityService,
	logger *slog.Logger,
) *CustomerHandler {
	return &CustomerHandler{
		customerService:    customerService,
		opportunityService: opportunityService,
		logger:             logger,
	}
}

// Routes mounts the customer endpoints under the current router
func (h *CustomerHandler) Routes(r chi.Router) {
	r.Get("/", h.ListCustomers)
	r.Get("/bp/{bpID}", h.GetCustomerByBusinessPartner)
	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.GetCustomer)
		r.Get("/overview", h.GetOverview)
		r.Get("/bills", h.ListBills)
		r.Get("/payments", h.ListPayments)
		r.Get("/rates", h.ListRates)
		r.Get("/meters", h.ListMeters)
		r.Get("/interactions", h.ListInteractions)
		r.Get("/cases", h.ListCases)
		r.Get("/opportunities", h.ListOpportunities)
	})
}

// ListCustomers handles GET /customers
func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, _ := strconv.Atoi(query.Get("page"))
	pageSize, _ := strconv.Atoi(query.Get("page_size"))

	filter := models.CustomerFilter{
		Segment:  query.Get("segment"),
		Status:   query.Get("status"),
		Page:     page,
		PageSize: pageSize,
	}

	result, err := h.customerService.List(r.Context(), filter)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondSuccess(w, result)
}

// GetCustomer handles GET /customers/{id}
func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	customer, err := h.customerService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondSuccess(w, customer)
}

// GetCustomerByBusinessPartner handles GET /customers/bp/{bpID}
func (h *CustomerHandler) GetCustomerByBusinessPartner(w http.ResponseWriter, r *http.Request) {
	customer, err := h.customerService.GetByBusinessPartnerID(r.Context(), chi.URLParam(r, "bpID"))
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondSuccess(w, customer)
}

// GetOverview handles GET /customers/{id}/overview
func (h *CustomerHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.customerService.GetOverview(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondSuccess(w, overview)
}

// ListBills handles GET /customers/{id}/bills
func (h *CustomerHandler) ListBills(w http.ResponseWriter, r *http.Request) {
	bills, err := h.customerService.Bills(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondList(w, bills)
}

// ListPayments handles GET /customers/{id}/payments
func (h *CustomerHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.customerService.Payments(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondList(w, payments)
}

// ListRates handles GET /customers/{id}/rates
func (h *CustomerHandler) ListRates(w http.ResponseWriter, r *http.Request) {
	rates, err := h.customerService.Rates(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondList(w, rates)
}

// ListMeters handles GET /customers/{id}/meters
func (h *CustomerHandler) ListMeters(w http.ResponseWriter, r *http.Request) {
	meters, err := h.customerService.Meters(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondList(w, meters)
}

// ListInteractions handles GET /customers/{id}/interactions
func (h *CustomerHandler) ListInteractions(w http.ResponseWriter, r *http.Request) {
	interactions, err := h.customerService.Interactions(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondList(w, interactions)
}

// ListCases handles GET /customers/{id}/cases
func (h *CustomerHandler) ListCases(w http.ResponseWriter, r *http.Request) {
	cases, err := h.customerService.Cases(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondList(w, cases)
}

// ListOpportunities handles GET /customers/{id}/opportunities
func (h *CustomerHandler) ListOpportunities(w http.ResponseWriter, r *http.Request) {
	opportunities, err := h.opportunityService.ForCustomer(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondList(w, opportunities)
}
