// Package freeapi talks to the keyless public tweet downloader sites.
package freeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// maxPageSize bounds how much HTML is scanned for media links.
const maxPageSize = 5 << 20

var cdnVideoPattern = regexp.MustCompile(`https://video\.twimg\.com/[^"'\s]+`)

// InfoResponse is the JSON answer of the info endpoint.
type InfoResponse struct {
	URL       string  `json:"url"`
	Title     string  `json:"title"`
	Thumbnail string  `json:"thumbnail"`
	Duration  float64 `json:"duration"`
}

// Client queries the info endpoint and the HTML downloader page.
type Client struct {
	httpClient  *http.Client
	infoBaseURL string
	pageBaseURL string
	userAgent   string
}

// ClientConfig configures a Client.
type ClientConfig struct {
	InfoBaseURL string
	PageBaseURL string
	Timeout     time.Duration
	UserAgent   string
}

// NewClient creates a new Client.
func NewClient(cfg ClientConfig) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.InfoBaseURL == "" {
		cfg.InfoBaseURL = "https://twitsave.com"
	}
	if cfg.PageBaseURL == "" {
		cfg.PageBaseURL = "https://www.savetweetvid.com"
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "Mozilla/5.0"
	}
	return &Client{
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		infoBaseURL: strings.TrimRight(cfg.InfoBaseURL, "/"),
		pageBaseURL: strings.TrimRight(cfg.PageBaseURL, "/"),
		userAgent:   cfg.UserAgent,
	}
}

// Info posts the tweet URL to the info endpoint. A response without a media
// URL is an error.
func (c *Client) Info(ctx context.Context, postURL string) (*InfoResponse, error) {
	body, err := json.Marshal(map[string]string{"url": postURL})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.infoBaseURL+"/info", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("info endpoint returned status %d", resp.StatusCode)
	}

	var info InfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if info.URL == "" {
		return nil, fmt.Errorf("video not found")
	}
	return &info, nil
}

// ScrapeVideoURL loads the downloader page for postURL and returns the first
// embedded CDN video link.
func (c *Client) ScrapeVideoURL(ctx context.Context, postURL string) (string, error) {
	u, err := url.Parse(c.pageBaseURL + "/downloader")
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	q := u.Query()
	q.Set("url", postURL)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("downloader page returned status %d", resp.StatusCode)
	}

	page, err := io.ReadAll(io.LimitReader(resp.Body, maxPageSize))
	if err != nil {
		return "", fmt.Errorf("read page: %w", err)
	}

	match := FindVideoURL(string(page))
	if match == "" {
		return "", fmt.Errorf("no video link in page")
	}
	return match, nil
}

// FindVideoURL returns the first video.twimg.com link in html, or "".
func FindVideoURL(html string) string {
	return cdnVideoPattern.FindString(html)
}
