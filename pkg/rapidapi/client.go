// Package rapidapi is a client for the keyed Twitter downloader aggregator
// hosted on RapidAPI.
package rapidapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"
)

// Variant is one encoding offered by the aggregator.
type Variant struct {
	Bitrate     int    `json:"bitrate"`
	ContentType string `json:"content_type"`
	URL         string `json:"url"`
}

// Media is one attachment in the aggregator response.
type Media struct {
	Type      string    `json:"type"`
	URL       string    `json:"url"`
	Thumbnail string    `json:"thumbnail"`
	Duration  float64   `json:"duration"`
	Variants  []Variant `json:"variants"`
}

// Status is the aggregator's description of a post.
type Status struct {
	Text      string  `json:"text"`
	Thumbnail string  `json:"thumbnail"`
	Media     []Media `json:"media"`
}

// FirstVideo returns the first video-typed attachment, or nil.
func (s *Status) FirstVideo() *Media {
	for i := range s.Media {
		if s.Media[i].Type == "video" || s.Media[i].Type == "animated_gif" {
			return &s.Media[i]
		}
	}
	return nil
}

// VideoURLs returns playable URLs ordered from highest to lowest bitrate.
// A media entry without variants yields its own URL.
func (m *Media) VideoURLs() []string {
	variants := make([]Variant, 0, len(m.Variants))
	for _, v := range m.Variants {
		if v.URL == "" {
			continue
		}
		if v.ContentType != "" && v.ContentType != "video/mp4" {
			continue
		}
		variants = append(variants, v)
	}
	sort.SliceStable(variants, func(i, j int) bool {
		return variants[i].Bitrate > variants[j].Bitrate
	})

	urls := make([]string, 0, len(variants)+1)
	for _, v := range variants {
		urls = append(urls, v.URL)
	}
	if len(urls) == 0 && m.URL != "" {
		urls = append(urls, m.URL)
	}
	return urls
}

// Client queries the aggregator.
type Client struct {
	httpClient *http.Client
	baseURL    string
	host       string
	apiKey     string
}

// ClientConfig configures a Client.
type ClientConfig struct {
	BaseURL string
	Host    string
	APIKey  string
	Timeout time.Duration
}

// NewClient creates a new aggregator client.
func NewClient(cfg ClientConfig) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	base := cfg.BaseURL
	if base == "" {
		base = "https://" + cfg.Host
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(base, "/"),
		host:       cfg.Host,
		apiKey:     cfg.APIKey,
	}
}

// GetStatus asks the aggregator to describe the post at postURL.
func (c *Client) GetStatus(ctx context.Context, postURL string) (*Status, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	u, err := url.Parse(c.baseURL + "/status")
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}
	q := u.Query()
	q.Set("url", postURL)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-RapidAPI-Key", c.apiKey)
	req.Header.Set("X-RapidAPI-Host", c.host)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var status Status
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &status, nil
}
