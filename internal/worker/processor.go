package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Raymond9734/customer360-backend/internal/models"
	"github.com/Raymond9734/customer360-backend/internal/service"
)

// SelectionProcessor handles selection events from the queue by resolving
// the selected customer and writing an audit record of the hand-off
type SelectionProcessor struct {
	customerService service.CustomerService
	logger          *slog.Logger
	now             func() time.Time
}

// NewSelectionProcessor creates a new selection processor
func NewSelectionProcessor(customerService service.CustomerService, logger *slog.Logger) *SelectionProcessor {
	return &SelectionProcessor{
		customerService: customerService,
		logger:          logger,
		now:             time.Now,
	}
}

// Process handles a single selection event. Events for customers that are
// not in the dataset are logged and dropped; they will never resolve.
func (p *SelectionProcessor) Process(ctx context.Context, event *models.SelectionEvent) error {
	overview, err := p.customerService.GetOverview(ctx, event.CustomerID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			p.logger.Warn("selection for unknown customer dropped",
				slog.String("event_id", event.ID),
				slog.String("customer_id", event.CustomerID),
			)
			return nil
		}
		return fmt.Errorf("failed to build overview for customer %s: %w", event.CustomerID, err)
	}

	if overview.Customer.BusinessPartnerID != event.BusinessPartnerID {
		p.logger.Warn("selection business partner ID mismatch",
			slog.String("event_id", event.ID),
			slog.String("event_bp_id", event.BusinessPartnerID),
			slog.String("customer_bp_id", overview.Customer.BusinessPartnerID),
		)
	}

	p.logger.Info("customer selection audited",
		slog.String("event_id", event.ID),
		slog.String("agent_id", event.AgentID),
		slog.String("customer_id", event.CustomerID),
		slog.String("label", event.Label),
		slog.Duration("latency", p.now().Sub(event.SelectedAt)),
		slog.Int64("outstanding_cents", overview.OutstandingCents),
		slog.Int("overdue_bills", overview.OverdueBills),
		slog.Int("open_cases", overview.OpenCases),
		slog.Int("eligible_programs", overview.EligiblePrograms),
	)

	return nil
}
