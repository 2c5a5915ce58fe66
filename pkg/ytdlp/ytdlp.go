// Package ytdlp wraps the yt-dlp command line tool for metadata extraction.
package ytdlp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
)

// Format is one entry of the formats array in yt-dlp's JSON output.
type Format struct {
	FormatID string  `json:"format_id"`
	URL      string  `json:"url"`
	Ext      string  `json:"ext"`
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	VCodec   string  `json:"vcodec"`
	ACodec   string  `json:"acodec"`
	TBR      float64 `json:"tbr"`
}

// HasVideo reports whether the format carries a video stream.
func (f Format) HasVideo() bool {
	return f.VCodec != "none"
}

// HasAudio reports whether the format carries an audio stream.
func (f Format) HasAudio() bool {
	return f.ACodec != "none"
}

// Info is the subset of `yt-dlp -j` output used for resolution.
type Info struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Thumbnail string   `json:"thumbnail"`
	Duration  float64  `json:"duration"`
	Formats   []Format `json:"formats"`
}

// Extractor runs yt-dlp as a subprocess.
type Extractor struct {
	binary string
}

// NewExtractor creates an Extractor using the given executable.
func NewExtractor(binary string) *Extractor {
	if binary == "" {
		binary = "yt-dlp"
	}
	return &Extractor{binary: binary}
}

// Extract describes the media at url without downloading it.
func (e *Extractor) Extract(ctx context.Context, url string) (*Info, error) {
	cmd := exec.CommandContext(ctx, e.binary, "-j", "--no-warnings", url)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("yt-dlp failed: %w: %s", err, msg)
		}
		return nil, fmt.Errorf("yt-dlp failed: %w", err)
	}

	var info Info
	if err := json.Unmarshal(stdout.Bytes(), &info); err != nil {
		return nil, fmt.Errorf("parse yt-dlp output: %w", err)
	}
	return &info, nil
}
