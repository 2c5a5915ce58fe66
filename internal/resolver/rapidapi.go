package resolver

import (
	"context"

	"github.com/iconidentify/xfetch/internal/domain"
	"github.com/iconidentify/xfetch/pkg/rapidapi"
)

// RapidAPIProvider resolves posts through the keyed RapidAPI aggregator. It
// only runs when an API key is configured.
type RapidAPIProvider struct {
	client  *rapidapi.Client
	enabled bool
}

// NewRapidAPIProvider creates an aggregator-backed provider.
func NewRapidAPIProvider(client *rapidapi.Client, enabled bool) *RapidAPIProvider {
	return &RapidAPIProvider{client: client, enabled: enabled}
}

func (p *RapidAPIProvider) Name() string { return "RapidAPI" }

func (p *RapidAPIProvider) Enabled() bool { return p.enabled }

func (p *RapidAPIProvider) Resolve(ctx context.Context, postURL string) (*domain.VideoInfo, error) {
	status, err := p.client.GetStatus(ctx, postURL)
	if err != nil {
		return nil, err
	}
	if len(status.Media) == 0 {
		return nil, domain.ErrNoMedia
	}

	video := status.FirstVideo()
	if video == nil {
		return nil, domain.ErrNoVideo
	}
	urls := video.VideoURLs()
	if len(urls) == 0 {
		return nil, domain.ErrNoVideo
	}

	thumbnail := video.Thumbnail
	if thumbnail == "" {
		thumbnail = status.Thumbnail
	}
	formats := RankedFormats(urls)

	return &domain.VideoInfo{
		Success:   true,
		Title:     domain.TitleOr(status.Text),
		Thumbnail: thumbnail,
		Duration:  domain.Seconds(video.Duration),
		Formats:   formats,
		VideoURL:  formats.High,
	}, nil
}
