package queue

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Raymond9734/customer360-backend/internal/models"
)

// ErrQueueDisabled is returned by Consume when no queue is configured
var ErrQueueDisabled = errors.New("queue is disabled")

// noopClient drops events; used when QUEUE_ENABLED is false
type noopClient struct {
	logger *slog.Logger
}

// NewNoopClient creates a client that logs and discards published events
func NewNoopClient(logger *slog.Logger) Client {
	return &noopClient{logger: logger}
}

func (c *noopClient) Publish(ctx context.Context, event *models.SelectionEvent) error {
	c.logger.Debug("queue disabled, dropping selection event",
		slog.String("event_id", event.ID),
		slog.String("customer_id", event.CustomerID),
	)
	return nil
}

func (c *noopClient) Consume(ctx context.Context, handler EventHandler, concurrency int) error {
	return ErrQueueDisabled
}

func (c *noopClient) Close() error {
	return nil
}

func (c *noopClient) Health(ctx context.Context) error {
	return nil
}
