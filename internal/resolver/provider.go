// Package resolver turns a post URL into a downloadable video by trying a
// fixed sequence of upstream providers.
package resolver

import (
	"context"

	"github.com/iconidentify/xfetch/internal/domain"
)

// Provider is one strategy for resolving a post URL.
type Provider interface {
	// Name identifies the provider in diagnostics.
	Name() string

	// Enabled reports whether the provider has what it needs to run.
	// Disabled providers are skipped without recording a failure.
	Enabled() bool

	// Resolve returns the normalized video info for postURL.
	Resolve(ctx context.Context, postURL string) (*domain.VideoInfo, error)
}

// always is embedded by providers that need no credentials.
type always struct{}

func (always) Enabled() bool { return true }
