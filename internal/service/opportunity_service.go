package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Raymond9734/customer360-backend/internal/models"
	"github.com/Raymond9734/customer360-backend/internal/repository"
)

// OpportunityService backs the opportunities/programs dashboard
type OpportunityService interface {
	Dashboard(ctx context.Context) ([]ProgramSummary, error)
	GetProgram(ctx context.Context, id string) (*ProgramDetail, error)
	ForCustomer(ctx context.Context, customerID string) ([]CustomerOpportunity, error)
}

type opportunityService struct {
	programRepo  repository.ProgramRepository
	customerRepo repository.CustomerRepository
	logger       *slog.Logger
}

// NewOpportunityService creates a new opportunity service
func NewOpportunityService(
	programRepo repository.ProgramRepository,
	customerRepo repository.CustomerRepository,
	logger *slog.Logger,
) OpportunityService {
	return &opportunityService{
		programRepo:  programRepo,
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// Dashboard returns every program with its eligibility tallies
func (s *opportunityService) Dashboard(ctx context.Context) ([]ProgramSummary, error) {
	programs, err := s.programRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list programs: %w", err)
	}

	summaries := make([]ProgramSummary, 0, len(programs))
	for _, p := range programs {
		summary, _, err := s.summarize(ctx, p)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// GetProgram returns a program with the customers attached to it
func (s *opportunityService) GetProgram(ctx context.Context, id string) (*ProgramDetail, error) {
	program, err := s.programRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	summary, entries, err := s.summarize(ctx, *program)
	if err != nil {
		return nil, err
	}

	detail := &ProgramDetail{
		ProgramSummary: summary,
		Customers:      make([]ProgramCustomer, 0, len(entries)),
	}
	for _, e := range entries {
		customer, err := s.customerRepo.GetByID(ctx, e.CustomerID)
		if err != nil {
			s.logger.Warn("eligibility references missing customer, skipping",
				slog.String("program_id", id),
				slog.String("customer_id", e.CustomerID),
			)
			continue
		}
		detail.Customers = append(detail.Customers, ProgramCustomer{
			Customer: NewCustomerSummary(customer),
			Status:   e.Status,
			Badge:    e.Status.Badge(),
			Reason:   e.Reason,
		})
	}
	return detail, nil
}

// ForCustomer lists the programs a customer is attached to
func (s *opportunityService) ForCustomer(ctx context.Context, customerID string) ([]CustomerOpportunity, error) {
	if _, err := s.customerRepo.GetByID(ctx, customerID); err != nil {
		return nil, err
	}

	entries, err := s.programRepo.EligibilityByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load eligibility: %w", err)
	}

	opportunities := make([]CustomerOpportunity, 0, len(entries))
	for _, e := range entries {
		program, err := s.programRepo.GetByID(ctx, e.ProgramID)
		if err != nil {
			return nil, err
		}
		opportunities = append(opportunities, CustomerOpportunity{
			Program: *program,
			Status:  e.Status,
			Badge:   e.Status.Badge(),
			Reason:  e.Reason,
		})
	}
	return opportunities, nil
}

func (s *opportunityService) summarize(ctx context.Context, p models.Program) (ProgramSummary, []models.Eligibility, error) {
	entries, err := s.programRepo.EligibilityByProgram(ctx, p.ID)
	if err != nil {
		return ProgramSummary{}, nil, fmt.Errorf("failed to load eligibility for program %s: %w", p.ID, err)
	}

	summary := ProgramSummary{Program: p, Badge: p.Status.Badge()}
	for _, e := range entries {
		switch e.Status {
		case models.EligibilityEligible:
			summary.Eligible++
		case models.EligibilityEnrolled:
			summary.Enrolled++
		case models.EligibilityDeclined:
			summary.Declined++
		}
	}
	return summary, entries, nil
}
