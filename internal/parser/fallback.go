package parser

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"carte/internal/port"
)

// circuitState tracks rate-limit backoff for a single model.
type circuitState struct {
	mu      sync.RWMutex
	resetAt time.Time // zero value = closed (healthy)
}

func (c *circuitState) isOpenWithReset(now time.Time) (time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.resetAt, !c.resetAt.IsZero() && now.Before(c.resetAt)
}

func (c *circuitState) open(resetAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetAt = resetAt
}

// FallbackModel tries models in order, skipping those with open circuits.
// A rate-limited model is skipped until its Retry-After elapses.
type FallbackModel struct {
	models   []port.LanguageModel
	circuits []*circuitState
	logger   *zap.Logger
	now      func() time.Time
}

// NewFallbackModel creates a FallbackModel from an ordered list of models.
func NewFallbackModel(models []port.LanguageModel, logger *zap.Logger) *FallbackModel {
	circuits := make([]*circuitState, len(models))
	for i := range circuits {
		circuits[i] = &circuitState{}
	}
	return &FallbackModel{
		models:   models,
		circuits: circuits,
		logger:   logger,
		now:      time.Now,
	}
}

// Name joins the chain's model names.
func (f *FallbackModel) Name() string {
	names := make([]string, len(f.models))
	for i, m := range f.models {
		names[i] = m.Name()
	}
	return strings.Join(names, ">")
}

func (f *FallbackModel) Generate(ctx context.Context, input port.GenerateInput) (*port.GenerateOutput, error) {
	now := f.now()
	var lastErr error
	allRateLimited := true
	var earliestReset time.Time

	for i, m := range f.models {
		if resetAt, open := f.circuits[i].isOpenWithReset(now); open {
			f.logger.Info("skipping model with open circuit",
				zap.String("model", m.Name()),
				zap.Time("reset_at", resetAt),
			)
			if earliestReset.IsZero() || resetAt.Before(earliestReset) {
				earliestReset = resetAt
			}
			continue
		}

		out, err := m.Generate(ctx, input)
		if err == nil {
			return out, nil
		}
		// A cancelled request will not be rescued by another model.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, err
		}

		f.logger.Warn("model failed, trying next", zap.String("model", m.Name()), zap.Error(err))
		lastErr = err

		if rlErr, ok := IsRateLimited(err); ok {
			resetAt := now.Add(rlErr.RetryAfter)
			f.circuits[i].open(resetAt)
			if earliestReset.IsZero() || resetAt.Before(earliestReset) {
				earliestReset = resetAt
			}
		} else {
			allRateLimited = false
		}
	}

	if lastErr == nil || allRateLimited {
		retryAfter := earliestReset.Sub(f.now())
		if retryAfter < time.Second {
			retryAfter = time.Second
		}
		return nil, NewRateLimitError("all", fmt.Errorf("all models rate limited"), int(retryAfter.Seconds()))
	}

	return nil, fmt.Errorf("all models failed: %w", lastErr)
}
