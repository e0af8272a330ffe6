package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Raymond9734/customer360-backend/internal/models"
	"github.com/Raymond9734/customer360-backend/internal/queue"
	"github.com/Raymond9734/customer360-backend/internal/repository"
)

// SelectionService turns a search selection into a published SelectionEvent
type SelectionService interface {
	Select(ctx context.Context, req *SelectRequest) (*SelectResult, error)
	Callback(agentID string) SelectionFunc
	NewSession(ctx context.Context, agentID string) (*SearchSession, error)
}

type selectionService struct {
	customerRepo repository.CustomerRepository
	labels       LabelService
	queueClient  queue.Client
	logger       *slog.Logger
	now          func() time.Time
}

// NewSelectionService creates a new selection service
func NewSelectionService(
	customerRepo repository.CustomerRepository,
	labels LabelService,
	queueClient queue.Client,
	logger *slog.Logger,
) SelectionService {
	return &selectionService{
		customerRepo: customerRepo,
		labels:       labels,
		queueClient:  queueClient,
		logger:       logger,
		now:          time.Now,
	}
}

// NewSession starts a search session whose selections are published for agentID
func (s *selectionService) NewSession(ctx context.Context, agentID string) (*SearchSession, error) {
	customers, err := s.customerRepo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load customers: %w", err)
	}
	return NewSearchSession(customers, s.labels, s.Callback(agentID)), nil
}

// Select replays the agent's query and picks the customer from its
// suggestions. A failure to publish the event does not undo the selection.
func (s *selectionService) Select(ctx context.Context, req *SelectRequest) (*SelectResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	session, err := s.NewSession(ctx, req.AgentID)
	if err != nil {
		return nil, err
	}

	session.Type(req.Query)
	if session.State() != SessionTyping {
		return nil, models.ErrInvalidInput(
			fmt.Sprintf("query must be at least %d characters", MinQueryLength),
		)
	}

	customer, err := session.Select(ctx, req.CustomerID)
	if err != nil {
		if customer == nil {
			return nil, err
		}
		s.logger.Warn("selection event not published",
			slog.String("customer_id", customer.ID),
			slog.String("agent_id", req.AgentID),
			slog.String("error", err.Error()),
		)
	}

	return &SelectResult{
		Label:    session.Query(),
		State:    session.State(),
		Customer: customer,
	}, nil
}

// Callback returns a SelectionFunc that publishes a SelectionEvent for agentID
func (s *selectionService) Callback(agentID string) SelectionFunc {
	return func(ctx context.Context, customer *models.Customer, label string) error {
		event := &models.SelectionEvent{
			ID:                uuid.NewString(),
			CustomerID:        customer.ID,
			BusinessPartnerID: customer.BusinessPartnerID,
			AgentID:           agentID,
			Label:             label,
			SelectedAt:        s.now().UTC(),
		}

		if err := s.queueClient.Publish(ctx, event); err != nil {
			return fmt.Errorf("failed to publish selection event: %w", err)
		}

		s.logger.Info("customer selected",
			slog.String("event_id", event.ID),
			slog.String("customer_id", customer.ID),
			slog.String("agent_id", agentID),
		)
		return nil
	}
}
