package resolver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/iconidentify/xfetch/internal/domain"
)

// Chain tries providers in order and returns the first success.
type Chain struct {
	providers []Provider
	logger    *slog.Logger
}

// NewChain creates a chain over providers, tried in the given order.
func NewChain(logger *slog.Logger, providers ...Provider) *Chain {
	if logger == nil {
		logger = slog.Default()
	}
	return &Chain{
		providers: providers,
		logger:    logger,
	}
}

// Providers returns the providers in priority order.
func (c *Chain) Providers() []Provider {
	out := make([]Provider, len(c.providers))
	copy(out, c.providers)
	return out
}

// Resolve runs the enabled providers sequentially. A provider failure is
// recorded as "<name>: <message>" and the next provider is tried. When every
// attempted provider fails the returned error is a *domain.ResolveError with
// one entry per attempt.
func (c *Chain) Resolve(ctx context.Context, postURL string) (*domain.VideoInfo, error) {
	logger := c.logger.With("resolution_id", uuid.NewString())
	details := make([]string, 0, len(c.providers))

	for _, p := range c.providers {
		if !p.Enabled() {
			logger.Debug("provider disabled", "provider", p.Name())
			continue
		}
		logger.Info("trying provider", "provider", p.Name(), "url", postURL)
		start := time.Now()

		info, err := c.attempt(ctx, p, postURL)
		if err != nil {
			details = append(details, fmt.Sprintf("%s: %v", p.Name(), err))
			logger.Warn("provider failed",
				"provider", p.Name(),
				"error", err,
				"duration", time.Since(start),
			)
			continue
		}

		logger.Info("provider succeeded",
			"provider", p.Name(),
			"duration", time.Since(start),
		)
		return info, nil
	}

	logger.Error("all providers failed", "url", postURL, "details", details)
	return nil, domain.NewResolveError(details)
}

// attempt runs one provider and rejects results without a playable URL.
// A panicking provider is reported as a failure.
func (c *Chain) attempt(ctx context.Context, p Provider, postURL string) (info *domain.VideoInfo, err error) {
	defer func() {
		if r := recover(); r != nil {
			info = nil
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	info, err = p.Resolve(ctx, postURL)
	if err != nil {
		return nil, err
	}
	if info == nil || info.VideoURL == "" {
		return nil, errors.New("returned empty video URL")
	}
	info.Success = true
	return info, nil
}
