package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/iconidentify/xfetch/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockResolver struct {
	info  *domain.VideoInfo
	err   error
	calls int
}

func (m *mockResolver) Resolve(ctx context.Context, postURL string) (*domain.VideoInfo, error) {
	m.calls++
	return m.info, m.err
}

type mockDownloader struct {
	body   []byte
	err    error
	gotURL string
	closed bool
}

func (m *mockDownloader) Download(ctx context.Context, url string) (io.ReadCloser, int64, error) {
	m.gotURL = url
	if m.err != nil {
		return nil, 0, m.err
	}
	return &trackingCloser{Reader: bytes.NewReader(m.body), closed: &m.closed}, int64(len(m.body)), nil
}

type trackingCloser struct {
	io.Reader
	closed *bool
}

func (t *trackingCloser) Close() error {
	*t.closed = true
	return nil
}

func TestVideoService_Resolve_InvalidURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr error
	}{
		{"empty", "", domain.ErrMissingURL},
		{"other site", "https://youtube.com/watch?v=1", domain.ErrUnsupportedURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := &mockResolver{}
			svc := NewVideoService(res, &mockDownloader{}, testLogger())

			_, err := svc.Resolve(context.Background(), tt.url)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if res.calls != 0 {
				t.Errorf("resolver calls = %d, want 0", res.calls)
			}
		})
	}
}

func TestVideoService_Resolve_Success(t *testing.T) {
	res := &mockResolver{info: &domain.VideoInfo{Success: true, Title: "clip", VideoURL: "https://video.twimg.com/a.mp4"}}
	svc := NewVideoService(res, &mockDownloader{}, testLogger())

	info, err := svc.Resolve(context.Background(), "https://x.com/u/status/1")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if info.VideoURL != "https://video.twimg.com/a.mp4" {
		t.Errorf("VideoURL = %q", info.VideoURL)
	}
	if res.calls != 1 {
		t.Errorf("resolver calls = %d, want 1", res.calls)
	}
}

func TestVideoService_Resolve_PropagatesChainError(t *testing.T) {
	chainErr := domain.NewResolveError([]string{"yt-dlp: boom"})
	svc := NewVideoService(&mockResolver{err: chainErr}, &mockDownloader{}, testLogger())

	_, err := svc.Resolve(context.Background(), "https://twitter.com/u/status/1")
	if !errors.Is(err, domain.ErrAllProvidersFailed) {
		t.Errorf("error = %v, want ErrAllProvidersFailed", err)
	}
	var re *domain.ResolveError
	if !errors.As(err, &re) || len(re.Details) != 1 {
		t.Errorf("expected ResolveError with 1 detail, got %v", err)
	}
}

func TestVideoService_OpenDownload_MissingURL(t *testing.T) {
	dl := &mockDownloader{}
	svc := NewVideoService(&mockResolver{}, dl, testLogger())

	_, err := svc.OpenDownload(context.Background(), "", domain.QualityHigh)
	if !errors.Is(err, domain.ErrMissingURL) {
		t.Errorf("error = %v, want ErrMissingURL", err)
	}
	if dl.gotURL != "" {
		t.Errorf("downloader called with %q", dl.gotURL)
	}
}

func TestVideoService_OpenDownload_QualityIgnored(t *testing.T) {
	dl := &mockDownloader{body: []byte("bytes")}
	svc := NewVideoService(&mockResolver{}, dl, testLogger())

	d, err := svc.OpenDownload(context.Background(), "https://video.twimg.com/v.mp4", domain.QualityLow)
	if err != nil {
		t.Fatalf("OpenDownload failed: %v", err)
	}
	defer d.Body.Close()

	if dl.gotURL != "https://video.twimg.com/v.mp4" {
		t.Errorf("downloaded URL = %q, want the requested URL unchanged", dl.gotURL)
	}
}

func TestVideoService_OpenDownload_StreamsVerbatim(t *testing.T) {
	payload := append([]byte{0x00, 0x00, 0x00, 0x18, 'f', 't', 'y', 'p', 'i', 's', 'o', 'm'}, []byte(strings.Repeat("x", 1024))...)
	dl := &mockDownloader{body: payload}
	svc := NewVideoService(&mockResolver{}, dl, testLogger())

	d, err := svc.OpenDownload(context.Background(), "https://video.twimg.com/v.mp4", domain.QualityHigh)
	if err != nil {
		t.Fatalf("OpenDownload failed: %v", err)
	}

	if d.DetectedType != "video/mp4" {
		t.Errorf("DetectedType = %q, want %q", d.DetectedType, "video/mp4")
	}
	if d.Size != int64(len(payload)) {
		t.Errorf("Size = %d, want %d", d.Size, len(payload))
	}

	got, err := io.ReadAll(d.Body)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Error("body differs from upstream bytes")
	}

	if err := d.Body.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
	if !dl.closed {
		t.Error("upstream body was not closed")
	}
}

func TestVideoService_OpenDownload_UpstreamError(t *testing.T) {
	dl := &mockDownloader{err: domain.ErrURLExpired}
	svc := NewVideoService(&mockResolver{}, dl, testLogger())

	_, err := svc.OpenDownload(context.Background(), "https://video.twimg.com/v.mp4", domain.QualityHigh)
	if !errors.Is(err, domain.ErrDownloadFailed) {
		t.Errorf("error = %v, want ErrDownloadFailed", err)
	}
	if !errors.Is(err, domain.ErrURLExpired) {
		t.Errorf("error = %v, want wrapped ErrURLExpired", err)
	}
}
