package resolver

import (
	"context"
	"errors"
	"log/slog"

	"github.com/iconidentify/xfetch/internal/domain"
	"github.com/iconidentify/xfetch/pkg/freeapi"
)

var errFreeAPIsFailed = errors.New("all free API methods failed")

// FreeAPIProvider chains two keyless public services: a JSON info endpoint
// and, when that fails, an HTML page scanned for CDN links.
type FreeAPIProvider struct {
	always
	client *freeapi.Client
	logger *slog.Logger
}

// NewFreeAPIProvider creates a provider over the public services.
func NewFreeAPIProvider(client *freeapi.Client, logger *slog.Logger) *FreeAPIProvider {
	if logger == nil {
		logger = slog.Default()
	}
	return &FreeAPIProvider{client: client, logger: logger}
}

func (p *FreeAPIProvider) Name() string { return "Free APIs" }

func (p *FreeAPIProvider) Resolve(ctx context.Context, postURL string) (*domain.VideoInfo, error) {
	info, err := p.client.Info(ctx, postURL)
	if err == nil {
		return &domain.VideoInfo{
			Success:   true,
			Title:     domain.TitleOr(info.Title),
			Thumbnail: info.Thumbnail,
			Duration:  domain.Seconds(info.Duration),
			Formats:   domain.SameForAll(info.URL),
			VideoURL:  info.URL,
		}, nil
	}
	p.logger.Debug("info endpoint failed", "error", err)

	videoURL, err := p.client.ScrapeVideoURL(ctx, postURL)
	if err != nil {
		p.logger.Info("downloader page failed", "error", err)
		return nil, errFreeAPIsFailed
	}

	return &domain.VideoInfo{
		Success:  true,
		Title:    domain.DefaultTitle,
		Formats:  domain.SameForAll(videoURL),
		VideoURL: videoURL,
	}, nil
}
