package handler

import (
	"bytes"
	"context"
	"io"
	"log/slog"

	"github.com/iconidentify/xfetch/internal/domain"
	"github.com/iconidentify/xfetch/internal/service"
)

// testLogger returns a silent logger for tests.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockResolver is a test implementation of service.Resolver.
type mockResolver struct {
	info  *domain.VideoInfo
	err   error
	calls int
}

func (m *mockResolver) Resolve(ctx context.Context, postURL string) (*domain.VideoInfo, error) {
	m.calls++
	return m.info, m.err
}

// mockDownloader is a test implementation of downloader.Downloader.
type mockDownloader struct {
	body   []byte
	size   int64
	err    error
	gotURL string
	calls  int
}

func (m *mockDownloader) Download(ctx context.Context, url string) (io.ReadCloser, int64, error) {
	m.calls++
	m.gotURL = url
	if m.err != nil {
		return nil, 0, m.err
	}
	return io.NopCloser(bytes.NewReader(m.body)), m.size, nil
}

func newTestVideoHandler(res *mockResolver, dl *mockDownloader) *VideoHandler {
	svc := service.NewVideoService(res, dl, testLogger())
	return NewVideoHandler(svc, testLogger())
}
