package resolver

import (
	"context"

	"github.com/iconidentify/xfetch/internal/domain"
	"github.com/iconidentify/xfetch/pkg/twitter"
)

// TwitterAPIProvider resolves posts with the official X API v2. It only runs
// when a bearer token is configured.
type TwitterAPIProvider struct {
	client  *twitter.Client
	enabled bool
}

// NewTwitterAPIProvider creates an API-backed provider. enabled should be
// false when no bearer token is configured.
func NewTwitterAPIProvider(client *twitter.Client, enabled bool) *TwitterAPIProvider {
	return &TwitterAPIProvider{client: client, enabled: enabled}
}

func (p *TwitterAPIProvider) Name() string { return "Twitter API" }

func (p *TwitterAPIProvider) Enabled() bool { return p.enabled }

func (p *TwitterAPIProvider) Resolve(ctx context.Context, postURL string) (*domain.VideoInfo, error) {
	tweetID := twitter.ExtractTweetID(postURL)
	if tweetID == "" {
		return nil, domain.ErrInvalidTweetURL
	}

	tweet, err := p.client.LookupTweet(ctx, tweetID)
	if err != nil {
		return nil, err
	}
	if len(tweet.Media) == 0 || !tweet.Media[0].IsVideo() {
		return nil, domain.ErrNoVideo
	}

	media := tweet.Media[0]
	variants := media.MP4Variants()
	if len(variants) == 0 {
		return nil, domain.ErrNoVideo
	}

	urls := make([]string, len(variants))
	for i, v := range variants {
		urls[i] = v.URL
	}
	formats := RankedFormats(urls)

	return &domain.VideoInfo{
		Success:   true,
		Title:     domain.DefaultTitle,
		Thumbnail: media.PreviewImageURL,
		Duration:  domain.Seconds(float64(media.DurationMs) / 1000),
		Formats:   formats,
		VideoURL:  formats.High,
	}, nil
}

// RankedFormats assigns high, medium and low from URLs ordered best first:
// high is the first entry, medium the middle one (len/2), low the last.
func RankedFormats(urls []string) domain.Formats {
	if len(urls) == 0 {
		return domain.Formats{}
	}
	return domain.Formats{
		High:   urls[0],
		Medium: urls[len(urls)/2],
		Low:    urls[len(urls)-1],
	}
}
