package domain

import (
	"errors"
	"strings"
)

// Domain errors.
var (
	// ErrMissingURL is returned when a request carries no URL.
	ErrMissingURL = errors.New("url is required")

	// ErrUnsupportedURL is returned when the URL is not an X/Twitter post.
	ErrUnsupportedURL = errors.New("not a valid Twitter/X link")

	// ErrInvalidTweetURL is returned when no post ID can be extracted from the URL.
	ErrInvalidTweetURL = errors.New("invalid tweet URL")

	// ErrNoMedia is returned when an upstream response carries no media at all.
	ErrNoMedia = errors.New("no media found")

	// ErrNoVideo is returned when the post has media but none of it is video.
	ErrNoVideo = errors.New("no video found")

	// ErrAllProvidersFailed is returned when every enabled provider failed.
	ErrAllProvidersFailed = errors.New("video not found")

	// ErrDownloadFailed is returned when the media relay fails.
	ErrDownloadFailed = errors.New("video download failed")

	// ErrURLExpired is returned when the media URL is no longer accessible.
	ErrURLExpired = errors.New("video URL has expired")

	// ErrRateLimited is returned when rate limited by external services.
	ErrRateLimited = errors.New("rate limited")
)

// ResolveError reports a failed resolution along with one diagnostic entry
// per provider that was attempted.
type ResolveError struct {
	Details []string
}

func (e *ResolveError) Error() string {
	if len(e.Details) == 0 {
		return ErrAllProvidersFailed.Error()
	}
	return ErrAllProvidersFailed.Error() + ": " + strings.Join(e.Details, "; ")
}

func (e *ResolveError) Unwrap() error {
	return ErrAllProvidersFailed
}

// NewResolveError creates a new ResolveError.
func NewResolveError(details []string) *ResolveError {
	return &ResolveError{Details: details}
}
