package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Raymond9734/customer360-backend/internal/models"
)

// maxConcurrency caps the number of events handled at once
const maxConcurrency = 5

// redisClient implements Client using a Redis list
type redisClient struct {
	client    *redis.Client
	queueName string
	logger    *slog.Logger
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL       string
	QueueName string
}

// NewRedisClient creates a new Redis queue client
func NewRedisClient(cfg RedisConfig, logger *slog.Logger) (Client, error) {
	// Parse Redis URL
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("connected to Redis",
		slog.String("addr", opts.Addr),
		slog.String("queue", cfg.QueueName),
	)

	return &redisClient{
		client:    client,
		queueName: cfg.QueueName,
		logger:    logger,
	}, nil
}

// Publish pushes a selection event onto the queue
func (c *redisClient) Publish(ctx context.Context, event *models.SelectionEvent) error {
	// Serialize event to JSON
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	// LPUSH + BRPOP gives FIFO order
	if err := c.client.LPush(ctx, c.queueName, data).Err(); err != nil {
		return fmt.Errorf("failed to push event to queue: %w", err)
	}

	c.logger.Debug("selection event published",
		slog.String("event_id", event.ID),
		slog.String("customer_id", event.CustomerID),
	)

	return nil
}

// Consume pops events and runs handler on up to concurrency of them at once.
// It returns when ctx is done, after in-flight events have finished.
func (c *redisClient) Consume(ctx context.Context, handler EventHandler, concurrency int) error {
	// Validate concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	if concurrency > maxConcurrency {
		concurrency = maxConcurrency
	}

	c.logger.Info("starting queue consumer",
		slog.String("queue", c.queueName),
		slog.Int("concurrency", concurrency),
	)

	// Semaphore to limit concurrent processing. Filling every slot waits
	// for in-flight events to finish.
	semaphore := make(chan struct{}, concurrency)
	drain := func() {
		for i := 0; i < concurrency; i++ {
			semaphore <- struct{}{}
		}
	}

	for {
		if ctx.Err() != nil {
			c.logger.Info("consumer stopped by context, waiting for in-flight events")
			drain()
			return ctx.Err()
		}

		// Blocking pop, waits up to a second when the list is empty
		result, err := c.client.BRPop(ctx, time.Second, c.queueName).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				// Timeout, nothing queued
				continue
			}
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				c.logger.Info("consumer stopped by context")
				drain()
				return err
			}
			c.logger.Error("failed to pop from queue", slog.String("error", err.Error()))
			// Back off so a persistent error does not spin
			time.Sleep(time.Second)
			continue
		}

		// BRPOP returns [queueName, value]
		if len(result) < 2 {
			c.logger.Error("unexpected BRPOP result format")
			continue
		}

		var event models.SelectionEvent
		if err := json.Unmarshal([]byte(result[1]), &event); err != nil {
			c.logger.Error("failed to unmarshal event",
				slog.String("error", err.Error()),
				slog.String("data", result[1]),
			)
			continue
		}

		// Acquire a slot (blocks while all are busy)
		semaphore <- struct{}{}

		go func(event models.SelectionEvent) {
			defer func() { <-semaphore }()

			// The event is already off the list; a failed handler does not requeue it
			if err := handler(ctx, &event); err != nil {
				c.logger.Error("handler failed to process event",
					slog.String("event_id", event.ID),
					slog.String("error", err.Error()),
				)
			}
		}(event)
	}
}

// Close closes the Redis connection
func (c *redisClient) Close() error {
	c.logger.Info("closing Redis connection")
	return c.client.Close()
}

// Health checks if Redis is healthy
func (c *redisClient) Health(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis health check failed: %w", err)
	}
	return nil
}
