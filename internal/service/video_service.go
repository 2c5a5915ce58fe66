package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/iconidentify/xfetch/internal/domain"
	"github.com/iconidentify/xfetch/internal/downloader"
)

// Resolver turns a post URL into video information.
type Resolver interface {
	Resolve(ctx context.Context, postURL string) (*domain.VideoInfo, error)
}

// VideoService resolves post URLs and opens media downloads.
type VideoService struct {
	resolver   Resolver
	downloader downloader.Downloader
	logger     *slog.Logger
}

// NewVideoService creates a new video service.
func NewVideoService(resolver Resolver, dl downloader.Downloader, logger *slog.Logger) *VideoService {
	return &VideoService{
		resolver:   resolver,
		downloader: dl,
		logger:     logger,
	}
}

// Download is an open media stream ready to relay to a client.
type Download struct {
	Body io.ReadCloser
	// Size is -1 when the upstream did not announce a length.
	Size int64
	// DetectedType is the sniffed MIME type, empty when unrecognized.
	DetectedType string
}

// Resolve validates postURL and runs it through the resolver. Invalid input
// never reaches a provider.
func (s *VideoService) Resolve(ctx context.Context, postURL string) (*domain.VideoInfo, error) {
	if err := domain.ValidatePostURL(postURL); err != nil {
		return nil, err
	}

	info, err := s.resolver.Resolve(ctx, postURL)
	if err != nil {
		return nil, err
	}

	s.logger.Info("video resolved",
		"url", postURL,
		"title", info.Title,
	)
	return info, nil
}

// OpenDownload starts streaming mediaURL. quality is accepted for
// compatibility with existing clients and only logged; the given URL is
// fetched as is.
func (s *VideoService) OpenDownload(ctx context.Context, mediaURL string, quality domain.Quality) (*Download, error) {
	if mediaURL == "" {
		return nil, domain.ErrMissingURL
	}

	s.logger.Info("opening download", "url", mediaURL, "quality", quality)

	body, size, err := s.downloader.Download(ctx, mediaURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDownloadFailed, err)
	}

	mime, isVideo, r := downloader.Sniff(body)
	if mime != "" && !isVideo {
		s.logger.Warn("download is not a video container", "url", mediaURL, "detected_type", mime)
	}

	return &Download{
		Body:         readCloser{Reader: r, Closer: body},
		Size:         size,
		DetectedType: mime,
	}, nil
}

type readCloser struct {
	io.Reader
	io.Closer
}
