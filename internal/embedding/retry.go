package embedding

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/ats-scorer/internal/utils"
)

const (
	defaultRetryDelay = 500 * time.Millisecond
	maxRetryDelay     = 8 * time.Second
)

var wait = utils.WaitFor

// Retrying repeats transient provider failures with exponential backoff.
// It is meant to be wired by callers; embedders themselves never retry.
type Retrying struct {
	next        Embedder
	maxAttempts int
	delay       time.Duration
	logger      *zap.Logger
}

// NewRetrying wraps next. maxAttempts below one is treated as one attempt.
func NewRetrying(next Embedder, maxAttempts int, logger *zap.Logger) *Retrying {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Retrying{
		next:        next,
		maxAttempts: maxAttempts,
		delay:       defaultRetryDelay,
		logger:      logger,
	}
}

func (r *Retrying) Embed(ctx context.Context, text string) (Vector, error) {
	var lastErr error

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		vector, err := r.next.Embed(ctx, text)
		if err == nil {
			return vector, nil
		}
		lastErr = err

		if !IsRetryable(err) || attempt == r.maxAttempts {
			break
		}

		delay := r.backoff(attempt)
		r.logger.Warn("embedding request failed, retrying",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", r.maxAttempts),
			zap.Duration("delay", delay),
			zap.Error(err),
		)

		if err := wait(ctx, delay); err != nil {
			return nil, err
		}
	}

	return nil, lastErr
}

func (r *Retrying) Provider() string {
	provider, _ := Describe(r.next)
	return provider
}

func (r *Retrying) Model() string {
	_, model := Describe(r.next)
	return model
}

func (r *Retrying) Dimension() int {
	return DimensionOf(r.next)
}

func (r *Retrying) backoff(attempt int) time.Duration {
	delay := r.delay << (attempt - 1)
	if delay <= 0 || delay > maxRetryDelay {
		return maxRetryDelay
	}
	return delay
}
