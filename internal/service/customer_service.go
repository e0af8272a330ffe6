package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Raymond9734/customer360-backend/internal/models"
	"github.com/Raymond9734/customer360-backend/internal/repository"
)

// CustomerService handles the customer directory and the 360 view tabs
type CustomerService interface {
	List(ctx context.Context, filter models.CustomerFilter) (*CustomerListResult, error)
	GetByID(ctx context.Context, id string) (*models.Customer, error)
	GetByBusinessPartnerID(ctx context.Context, bpID string) (*models.Customer, error)
	GetOverview(ctx context.Context, id string) (*CustomerOverview, error)
	Bills(ctx context.Context, id string) ([]BillView, error)
	Payments(ctx context.Context, id string) ([]PaymentView, error)
	Rates(ctx context.Context, id string) ([]models.Rate, error)
	Meters(ctx context.Context, id string) ([]MeterView, error)
	Interactions(ctx context.Context, id string) ([]models.Interaction, error)
	Cases(ctx context.Context, id string) ([]CaseView, error)
}

type customerService struct {
	customerRepo repository.CustomerRepository
	accountRepo  repository.AccountRepository
	programRepo  repository.ProgramRepository
	logger       *slog.Logger
}

// NewCustomerService creates a new customer service
func NewCustomerService(
	customerRepo repository.CustomerRepository,
	accountRepo repository.AccountRepository,
	programRepo repository.ProgramRepository,
	logger *slog.Logger,
) CustomerService {
	return &customerService{
		customerRepo: customerRepo,
		accountRepo:  accountRepo,
		programRepo:  programRepo,
		logger:       logger,
	}
}

// List retrieves a page of the customer directory
func (s *customerService) List(ctx context.Context, filter models.CustomerFilter) (*CustomerListResult, error) {
	if filter.Segment != "" && !models.IsValidSegment(models.Segment(filter.Segment)) {
		return nil, models.ErrInvalidInput(fmt.Sprintf("invalid segment: %s", filter.Segment))
	}
	if filter.Status != "" && !models.IsValidCustomerStatus(models.CustomerStatus(filter.Status)) {
		return nil, models.ErrInvalidInput(fmt.Sprintf("invalid status: %s", filter.Status))
	}

	customers, totalCount, err := s.customerRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	models.ValidateAndSetDefaults(&filter.Page, &filter.PageSize)

	data := make([]CustomerSummary, 0, len(customers))
	for i := range customers {
		data = append(data, NewCustomerSummary(&customers[i]))
	}

	return &CustomerListResult{
		Data:       data,
		Pagination: models.NewPaginationResult(filter.Page, filter.PageSize, totalCount),
	}, nil
}

// GetByID retrieves a customer by ID
func (s *customerService) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	return s.customerRepo.GetByID(ctx, id)
}

// GetByBusinessPartnerID retrieves a customer by the business partner ID the billing system uses
func (s *customerService) GetByBusinessPartnerID(ctx context.Context, bpID string) (*models.Customer, error) {
	return s.customerRepo.GetByBusinessPartnerID(ctx, bpID)
}

// GetOverview aggregates the header figures of the 360 view
func (s *customerService) GetOverview(ctx context.Context, id string) (*CustomerOverview, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	overview := &CustomerOverview{
		Customer:    customer,
		StatusBadge: customer.Status.Badge(),
	}

	for _, number := range customer.AccountNumbers() {
		bills, err := s.accountRepo.BillsByAccount(ctx, number)
		if err != nil {
			return nil, fmt.Errorf("failed to load bills for account %s: %w", number, err)
		}
		for _, b := range bills {
			if b.IsOutstanding() {
				overview.OutstandingCents += b.AmountCents
			}
			if b.Status == models.BillStatusOverdue {
				overview.OverdueBills++
			}
		}
	}

	cases, err := s.accountRepo.CasesByCustomer(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load cases: %w", err)
	}
	for _, c := range cases {
		if c.IsOpen() {
			overview.OpenCases++
		}
	}

	interactions, err := s.accountRepo.InteractionsByCustomer(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load interactions: %w", err)
	}
	overview.Interactions = len(interactions)
	for i := range interactions {
		at := interactions[i].OccurredAt
		if overview.LastInteractionAt == nil || at.After(*overview.LastInteractionAt) {
			overview.LastInteractionAt = &at
		}
	}

	eligibility, err := s.programRepo.EligibilityByCustomer(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load eligibility: %w", err)
	}
	for _, e := range eligibility {
		if e.Status == models.EligibilityEligible {
			overview.EligiblePrograms++
		}
	}

	s.logger.Debug("customer overview built",
		slog.String("customer_id", id),
		slog.Int64("outstanding_cents", overview.OutstandingCents),
		slog.Int("open_cases", overview.OpenCases),
	)

	return overview, nil
}

// Bills returns the bills of every contract account, account by account
func (s *customerService) Bills(ctx context.Context, id string) ([]BillView, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	views := []BillView{}
	for _, number := range customer.AccountNumbers() {
		bills, err := s.accountRepo.BillsByAccount(ctx, number)
		if err != nil {
			return nil, fmt.Errorf("failed to load bills for account %s: %w", number, err)
		}
		for _, b := range bills {
			views = append(views, BillView{Bill: b, Badge: b.Status.Badge()})
		}
	}
	return views, nil
}

// Payments returns the payments of every contract account
func (s *customerService) Payments(ctx context.Context, id string) ([]PaymentView, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	views := []PaymentView{}
	for _, number := range customer.AccountNumbers() {
		payments, err := s.accountRepo.PaymentsByAccount(ctx, number)
		if err != nil {
			return nil, fmt.Errorf("failed to load payments for account %s: %w", number, err)
		}
		for _, p := range payments {
			views = append(views, PaymentView{Payment: p, Badge: p.Status.Badge()})
		}
	}
	return views, nil
}

// Rates returns the tariffs applied to every contract account
func (s *customerService) Rates(ctx context.Context, id string) ([]models.Rate, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	rates := []models.Rate{}
	for _, number := range customer.AccountNumbers() {
		r, err := s.accountRepo.RatesByAccount(ctx, number)
		if err != nil {
			return nil, fmt.Errorf("failed to load rates for account %s: %w", number, err)
		}
		rates = append(rates, r...)
	}
	return rates, nil
}

// Meters returns each service point of each premise with its readings
func (s *customerService) Meters(ctx context.Context, id string) ([]MeterView, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	views := []MeterView{}
	for _, p := range customer.Premises {
		for _, sp := range p.ServicePoints {
			readings, err := s.accountRepo.ReadingsByServicePoint(ctx, sp.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to load readings for service point %s: %w", sp.ID, err)
			}
			views = append(views, MeterView{
				PremiseID:    p.ID,
				Address:      p.Address,
				ServicePoint: sp,
				Readings:     readings,
			})
		}
	}
	return views, nil
}

// Interactions returns the customer's logged contacts
func (s *customerService) Interactions(ctx context.Context, id string) ([]models.Interaction, error) {
	if _, err := s.customerRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.accountRepo.InteractionsByCustomer(ctx, id)
}

// Cases returns the customer's service cases
func (s *customerService) Cases(ctx context.Context, id string) ([]CaseView, error) {
	if _, err := s.customerRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	cases, err := s.accountRepo.CasesByCustomer(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load cases: %w", err)
	}

	views := make([]CaseView, 0, len(cases))
	for _, c := range cases {
		views = append(views, CaseView{Case: c, Badge: c.Status.Badge()})
	}
	return views, nil
}
