package service

import (
	"time"

	"github.com/Raymond9734/customer360-backend/internal/models"
)

// CustomerSummary is the compact customer card used in suggestion lists and the directory
type CustomerSummary struct {
	ID                string                `json:"id"`
	BusinessPartnerID string                `json:"business_partner_id"`
	Name              string                `json:"name"`
	Email             string                `json:"email"`
	Phone             string                `json:"phone"`
	Segment           models.Segment        `json:"segment"`
	Status            models.CustomerStatus `json:"status"`
	StatusBadge       models.BadgeVariant   `json:"status_badge"`
	AccountNumbers    []string              `json:"account_numbers"`
	PrimaryAddress    string                `json:"primary_address,omitempty"`
}

// NewCustomerSummary builds a summary card from a customer
func NewCustomerSummary(c *models.Customer) CustomerSummary {
	summary := CustomerSummary{
		ID:                c.ID,
		BusinessPartnerID: c.BusinessPartnerID,
		Name:              c.FullName(),
		Email:             c.Email,
		Phone:             c.Phone,
		Segment:           c.Segment,
		Status:            c.Status,
		StatusBadge:       c.Status.Badge(),
		AccountNumbers:    c.AccountNumbers(),
	}
	if len(c.Premises) > 0 {
		p := c.Premises[0]
		summary.PrimaryAddress = p.Address + ", " + p.City + ", " + p.State
	}
	return summary
}

// SearchResult represents the suggestions for one query
type SearchResult struct {
	Query   string            `json:"query"`
	Active  bool              `json:"active"`
	Count   int               `json:"count"`
	Results []CustomerSummary `json:"results"`
}

// SelectRequest represents an agent picking a customer from the suggestions
type SelectRequest struct {
	Query      string `json:"query"`
	CustomerID string `json:"customer_id"`
	AgentID    string `json:"agent_id"`
}

// Validate performs validation on the select request
func (r *SelectRequest) Validate() error {
	if r.CustomerID == "" {
		return models.ErrInvalidInput("customer_id is required")
	}
	if r.AgentID == "" {
		return models.ErrInvalidInput("agent_id is required")
	}
	return nil
}

// SelectResult represents the outcome of a selection
type SelectResult struct {
	Label    string           `json:"label"`
	State    SessionState     `json:"state"`
	Customer *models.Customer `json:"customer"`
}

// CustomerListResult represents a page of the customer directory
type CustomerListResult struct {
	Data       []CustomerSummary       `json:"data"`
	Pagination models.PaginationResult `json:"pagination"`
}

// CustomerOverview is the header of the 360 view
type CustomerOverview struct {
	Customer          *models.Customer    `json:"customer"`
	StatusBadge       models.BadgeVariant `json:"status_badge"`
	OutstandingCents  int64               `json:"outstanding_cents"`
	OverdueBills      int                 `json:"overdue_bills"`
	OpenCases         int                 `json:"open_cases"`
	Interactions      int                 `json:"interactions"`
	LastInteractionAt *time.Time          `json:"last_interaction_at,omitempty"`
	EligiblePrograms  int                 `json:"eligible_programs"`
}

// BillView is a bill with its display badge
type BillView struct {
	models.Bill
	Badge models.BadgeVariant `json:"badge"`
}

// PaymentView is a payment with its display badge
type PaymentView struct {
	models.Payment
	Badge models.BadgeVariant `json:"badge"`
}

// CaseView is a case with its display badge
type CaseView struct {
	models.Case
	Badge models.BadgeVariant `json:"badge"`
}

// MeterView groups a service point with its readings
type MeterView struct {
	PremiseID    string                `json:"premise_id"`
	Address      string                `json:"address"`
	ServicePoint models.ServicePoint   `json:"service_point"`
	Readings     []models.MeterReading `json:"readings"`
}

// ProgramSummary is one card on the opportunities dashboard
type ProgramSummary struct {
	models.Program
	Badge    models.BadgeVariant `json:"badge"`
	Eligible int                 `json:"eligible"`
	Enrolled int                 `json:"enrolled"`
	Declined int                 `json:"declined"`
}

// ProgramDetail lists the customers attached to a program
type ProgramDetail struct {
	ProgramSummary
	Customers []ProgramCustomer `json:"customers"`
}

// ProgramCustomer is a customer's standing in a program
type ProgramCustomer struct {
	Customer CustomerSummary          `json:"customer"`
	Status   models.EligibilityStatus `json:"status"`
	Badge    models.BadgeVariant      `json:"badge"`
	Reason   string                   `json:"reason"`
}

// CustomerOpportunity is a program as seen from one customer
type CustomerOpportunity struct {
	Program models.Program           `json:"program"`
	Status  models.EligibilityStatus `json:"status"`
	Badge   models.BadgeVariant      `json:"badge"`
	Reason  string                   `json:"reason"`
}
