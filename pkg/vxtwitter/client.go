// Package vxtwitter is a client for the public vxtwitter mirror API.
package vxtwitter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// MediaItem is one entry of media_extended.
type MediaItem struct {
	Type         string  `json:"type"`
	URL          string  `json:"url"`
	ThumbnailURL string  `json:"thumbnail_url"`
	Duration     float64 `json:"duration"`
	DurationMs   float64 `json:"duration_millis"`
}

// Seconds returns the media duration in seconds.
func (m MediaItem) Seconds() float64 {
	if m.Duration > 0 {
		return m.Duration
	}
	return m.DurationMs / 1000
}

// Post is the mirror's description of a tweet.
type Post struct {
	Text          string      `json:"text"`
	UserName      string      `json:"user_name"`
	MediaExtended []MediaItem `json:"media_extended"`
}

// FirstVideo returns the first video-typed media entry, or nil.
func (p *Post) FirstVideo() *MediaItem {
	for i := range p.MediaExtended {
		if p.MediaExtended[i].Type == "video" {
			return &p.MediaExtended[i]
		}
	}
	return nil
}

// Client fetches posts from the mirror API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// NewClient creates a new mirror client. baseURL replaces the post's domain.
func NewClient(baseURL string, timeout time.Duration, userAgent string) *Client {
	if baseURL == "" {
		baseURL = "https://api.vxtwitter.com"
	}
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	if userAgent == "" {
		userAgent = "Mozilla/5.0"
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
	}
}

// MirrorURL rewrites a twitter.com or x.com post URL onto the mirror.
func (c *Client) MirrorURL(postURL string) string {
	for _, scheme := range []string{"https://", "http://"} {
		for _, prefix := range []string{"www.", "mobile.", ""} {
			for _, host := range []string{"twitter.com", "x.com"} {
				full := scheme + prefix + host
				if strings.HasPrefix(postURL, full) {
					return c.baseURL + strings.TrimPrefix(postURL, full)
				}
			}
		}
	}
	// Fall back to plain substitution for scheme-less or unusual inputs.
	target := strings.TrimPrefix(strings.TrimPrefix(c.baseURL, "https://"), "http://")
	out := strings.Replace(postURL, "twitter.com", target, 1)
	if out == postURL {
		out = strings.Replace(postURL, "x.com", target, 1)
	}
	return out
}

// FetchPost retrieves the mirror description of a post.
func (c *Client) FetchPost(ctx context.Context, postURL string) (*Post, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.MirrorURL(postURL), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("mirror error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var post Post
	if err := json.NewDecoder(resp.Body).Decode(&post); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &post, nil
}
