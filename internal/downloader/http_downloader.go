package downloader

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/h2non/filetype"

	"github.com/iconidentify/xfetch/internal/config"
	"github.com/iconidentify/xfetch/internal/domain"
)

// sniffLen is the number of leading bytes filetype needs to match a header.
const sniffLen = 262

// HTTPDownloader implements Downloader using HTTP requests.
type HTTPDownloader struct {
	// client has no overall timeout so long transfers are not cut off.
	client    *http.Client
	userAgent string
	logger    *slog.Logger
}

// NewHTTPDownloader creates a new HTTP-based media downloader.
func NewHTTPDownloader(cfg config.DownloadConfig, logger *slog.Logger) *HTTPDownloader {
	if logger == nil {
		logger = slog.Default()
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.ResponseHeaderTimeout = cfg.HeaderTimeout

	return &HTTPDownloader{
		client: &http.Client{
			Transport: transport,
		},
		userAgent: cfg.UserAgent,
		logger:    logger,
	}
}

// Download issues a single GET for url. There are no retries; a failure is
// returned to the caller as is.
func (d *HTTPDownloader) Download(ctx context.Context, url string) (io.ReadCloser, int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", d.userAgent)
	req.Header.Set("Accept", "video/mp4,video/*;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("Referer", "https://x.com/")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("send request: %w", err)
	}

	if resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		return nil, 0, domain.ErrURLExpired
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		resp.Body.Close()
		return nil, 0, domain.ErrRateLimited
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, 0, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return newProgressReader(resp.Body, resp.ContentLength, d.logger, url), resp.ContentLength, nil
}

// Sniff detects the media type of r from its leading bytes without consuming
// them. The returned reader yields the full, unmodified stream. mime is
// empty when the type is unknown.
func Sniff(r io.Reader) (mime string, isVideo bool, out io.Reader) {
	br := bufio.NewReaderSize(r, sniffLen)
	head, _ := br.Peek(sniffLen)
	if len(head) == 0 {
		return "", false, br
	}

	kind, err := filetype.Match(head)
	if err != nil || kind == filetype.Unknown {
		return "", false, br
	}
	return kind.MIME.Value, filetype.IsVideo(head), br
}

// progressReader wraps an io.ReadCloser to log transfer progress.
type progressReader struct {
	reader     io.ReadCloser
	total      int64
	downloaded int64
	started    time.Time
	lastLog    time.Time
	logger     *slog.Logger
	url        string
	mu         sync.Mutex
	closed     bool
}

func newProgressReader(r io.ReadCloser, total int64, logger *slog.Logger, url string) *progressReader {
	now := time.Now()
	return &progressReader{
		reader:  r,
		total:   total,
		started: now,
		lastLog: now,
		logger:  logger,
		url:     url,
	}
}

func (p *progressReader) Read(buf []byte) (int, error) {
	n, err := p.reader.Read(buf)

	p.mu.Lock()
	defer p.mu.Unlock()

	if n > 0 {
		p.downloaded += int64(n)

		// Log progress every 30 seconds on long transfers
		if time.Since(p.lastLog) > 30*time.Second {
			p.logProgress()
			p.lastLog = time.Now()
		}
	}

	return n, err
}

func (p *progressReader) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true

	if p.downloaded > 0 {
		p.logProgress()
	}
	p.mu.Unlock()

	return p.reader.Close()
}

// Downloaded returns the number of bytes read so far.
func (p *progressReader) Downloaded() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.downloaded
}

func (p *progressReader) logProgress() {
	attrs := []any{
		"url", p.url,
		"downloaded_bytes", p.downloaded,
		"elapsed", time.Since(p.started).Round(time.Millisecond),
	}
	if p.total > 0 {
		pct := float64(p.downloaded) / float64(p.total) * 100
		attrs = append(attrs, "total_bytes", p.total, "percent", fmt.Sprintf("%.1f%%", pct))
	}
	p.logger.Info("download progress", attrs...)
}
