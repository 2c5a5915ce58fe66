package twitter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// mediaFields are the media.fields requested alongside a tweet lookup.
const mediaFields = "variants,url,preview_image_url,duration_ms"

// RateLimitError indicates the request hit a rate limit and includes a reset time if known.
type RateLimitError struct {
	Reset time.Time
}

func (e *RateLimitError) Error() string {
	if !e.Reset.IsZero() {
		return fmt.Sprintf("rate limited until %s", e.Reset.Format(time.RFC3339))
	}
	return "rate limited"
}

// Client looks up tweets through X API v2.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	bearerToken string
	userAgent   string
}

// ClientConfig configures a Client.
type ClientConfig struct {
	BaseURL     string
	BearerToken string
	Timeout     time.Duration
	UserAgent   string
}

// NewClient creates a new X API v2 client.
func NewClient(cfg ClientConfig) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = "https://api.twitter.com"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = "xfetch/1.0"
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:     strings.TrimRight(base, "/"),
		bearerToken: cfg.BearerToken,
		userAgent:   ua,
	}
}

// Variant is one encoding of a video.
type Variant struct {
	BitRate     int    `json:"bit_rate"`
	ContentType string `json:"content_type"`
	URL         string `json:"url"`
}

// Media is an attachment expanded from a tweet.
type Media struct {
	MediaKey        string    `json:"media_key"`
	Type            string    `json:"type"`
	URL             string    `json:"url"`
	PreviewImageURL string    `json:"preview_image_url"`
	DurationMs      int       `json:"duration_ms"`
	Variants        []Variant `json:"variants"`
}

// IsVideo reports whether the attachment is a video.
func (m *Media) IsVideo() bool {
	return m.Type == "video"
}

// MP4Variants returns the video/mp4 variants sorted by bit rate, highest first.
func (m *Media) MP4Variants() []Variant {
	out := make([]Variant, 0, len(m.Variants))
	for _, v := range m.Variants {
		if v.ContentType == "video/mp4" {
			out = append(out, v)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].BitRate > out[j].BitRate
	})
	return out
}

// Tweet is the subset of a v2 tweet lookup used for media resolution.
type Tweet struct {
	ID    string  `json:"id"`
	Text  string  `json:"text"`
	Media []Media `json:"-"`
}

type lookupResponse struct {
	Data struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"data"`
	Includes struct {
		Media []Media `json:"media"`
	} `json:"includes"`
	Errors []struct {
		Title  string `json:"title"`
		Detail string `json:"detail"`
	} `json:"errors"`
}

// LookupTweet fetches a tweet with its media attachments expanded.
func (c *Client) LookupTweet(ctx context.Context, tweetID string) (*Tweet, error) {
	if tweetID == "" {
		return nil, fmt.Errorf("tweetID is required")
	}
	if c.bearerToken == "" {
		return nil, fmt.Errorf("bearer token is required")
	}

	u, err := url.Parse(c.baseURL + "/2/tweets/" + tweetID)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}
	q := u.Query()
	q.Set("expansions", "attachments.media_keys")
	q.Set("media.fields", mediaFields)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.bearerToken)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		rl := &RateLimitError{}
		if reset := resp.Header.Get("x-rate-limit-reset"); reset != "" {
			if sec, err := strconv.ParseInt(reset, 10, 64); err == nil {
				rl.Reset = time.Unix(sec, 0)
			}
		}
		return nil, rl
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if parsed.Data.ID == "" && len(parsed.Errors) > 0 {
		return nil, fmt.Errorf("API error: %s", parsed.Errors[0].Detail)
	}

	return &Tweet{
		ID:    parsed.Data.ID,
		Text:  parsed.Data.Text,
		Media: parsed.Includes.Media,
	}, nil
}

var tweetIDPattern = regexp.MustCompile(`status/(\d+)`)

// ExtractTweetID extracts the numeric post ID from URLs such as
// https://x.com/user/status/1234567890?s=20.
func ExtractTweetID(url string) string {
	matches := tweetIDPattern.FindStringSubmatch(url)
	if len(matches) > 1 {
		return matches[1]
	}
	return ""
}
