package resolver

import (
	"log/slog"

	"github.com/iconidentify/xfetch/internal/config"
	"github.com/iconidentify/xfetch/pkg/freeapi"
	"github.com/iconidentify/xfetch/pkg/rapidapi"
	"github.com/iconidentify/xfetch/pkg/twitter"
	"github.com/iconidentify/xfetch/pkg/vxtwitter"
	"github.com/iconidentify/xfetch/pkg/ytdlp"
)

// NewDefaultChain builds the production chain:
// yt-dlp, VxTwitter, Twitter API, RapidAPI, then the free public services.
func NewDefaultChain(cfg *config.Config, logger *slog.Logger) *Chain {
	rc := cfg.Resolver

	return NewChain(logger,
		NewYtDlpProvider(ytdlp.NewExtractor(rc.YtDlpPath)),
		NewVxTwitterProvider(vxtwitter.NewClient(rc.VxTwitterBaseURL, rc.Timeout, rc.UserAgent)),
		NewTwitterAPIProvider(twitter.NewClient(twitter.ClientConfig{
			BaseURL:     cfg.Twitter.BaseURL,
			BearerToken: cfg.Twitter.BearerToken,
			Timeout:     rc.Timeout,
		}), cfg.Twitter.Enabled()),
		NewRapidAPIProvider(rapidapi.NewClient(rapidapi.ClientConfig{
			BaseURL: cfg.RapidAPI.Endpoint(),
			Host:    cfg.RapidAPI.Host,
			APIKey:  cfg.RapidAPI.Key,
			Timeout: rc.Timeout,
		}), cfg.RapidAPI.Enabled()),
		NewFreeAPIProvider(freeapi.NewClient(freeapi.ClientConfig{
			InfoBaseURL: rc.TwitSaveBaseURL,
			PageBaseURL: rc.SaveTweetVidURL,
			Timeout:     rc.Timeout,
			UserAgent:   rc.UserAgent,
		}), logger),
	)
}
