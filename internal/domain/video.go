package domain

import "strings"

// DefaultTitle is used when a provider cannot supply a display name.
const DefaultTitle = "Twitter Video"

// Quality selects one of the resolved format URLs.
type Quality string

const (
	QualityHigh   Quality = "high"
	QualityMedium Quality = "medium"
	QualityLow    Quality = "low"
)

// ParseQuality converts a query value to a Quality. Unknown or empty values
// fall back to QualityHigh.
func ParseQuality(s string) Quality {
	switch Quality(strings.ToLower(strings.TrimSpace(s))) {
	case QualityMedium:
		return QualityMedium
	case QualityLow:
		return QualityLow
	default:
		return QualityHigh
	}
}

// Formats holds direct media URLs of decreasing quality.
type Formats struct {
	High   string `json:"high,omitempty"`
	Medium string `json:"medium,omitempty"`
	Low    string `json:"low,omitempty"`
	Audio  string `json:"audio,omitempty"`
}

// URL returns the URL for the given quality.
func (f Formats) URL(q Quality) string {
	switch q {
	case QualityMedium:
		return f.Medium
	case QualityLow:
		return f.Low
	default:
		return f.High
	}
}

// SameForAll returns Formats with every video quality pointing at url.
func SameForAll(url string) Formats {
	return Formats{High: url, Medium: url, Low: url}
}

// VideoInfo is the normalized result every provider produces.
type VideoInfo struct {
	Success   bool     `json:"success"`
	Title     string   `json:"title"`
	Thumbnail string   `json:"thumbnail,omitempty"`
	Duration  *float64 `json:"duration,omitempty"`
	Formats   Formats  `json:"formats"`
	VideoURL  string   `json:"videoUrl"`
	AudioURL  string   `json:"audioUrl,omitempty"`
}

// Seconds returns a duration pointer, or nil for non-positive values.
func Seconds(v float64) *float64 {
	if v <= 0 {
		return nil
	}
	return &v
}

// TitleOr returns s, or DefaultTitle when s is blank.
func TitleOr(s string) string {
	if strings.TrimSpace(s) == "" {
		return DefaultTitle
	}
	return s
}

// acceptedHosts are the substrings a post URL must contain.
var acceptedHosts = []string{"twitter.com", "x.com"}

// ValidatePostURL checks that a post URL is present and points at X/Twitter.
func ValidatePostURL(url string) error {
	if strings.TrimSpace(url) == "" {
		return ErrMissingURL
	}
	for _, host := range acceptedHosts {
		if strings.Contains(url, host) {
			return nil
		}
	}
	return ErrUnsupportedURL
}
