package resolver

import (
	"context"

	"github.com/iconidentify/xfetch/internal/domain"
	"github.com/iconidentify/xfetch/pkg/ytdlp"
)

// Height thresholds used to bucket extractor formats.
const (
	highMinHeight   = 720
	mediumMinHeight = 480
)

// extractor is satisfied by *ytdlp.Extractor.
type extractor interface {
	Extract(ctx context.Context, url string) (*ytdlp.Info, error)
}

// YtDlpProvider resolves posts with the locally installed yt-dlp.
type YtDlpProvider struct {
	always
	extractor extractor
}

// NewYtDlpProvider creates a provider backed by the given extractor.
func NewYtDlpProvider(e extractor) *YtDlpProvider {
	return &YtDlpProvider{extractor: e}
}

func (p *YtDlpProvider) Name() string { return "yt-dlp" }

func (p *YtDlpProvider) Resolve(ctx context.Context, postURL string) (*domain.VideoInfo, error) {
	info, err := p.extractor.Extract(ctx, postURL)
	if err != nil {
		return nil, err
	}

	video, audio := PartitionFormats(info.Formats)
	if len(video) == 0 {
		return nil, domain.ErrNoVideo
	}

	formats := SelectFormats(video)
	if len(audio) > 0 {
		formats.Audio = audio[0].URL
	}

	return &domain.VideoInfo{
		Success:   true,
		Title:     domain.TitleOr(info.Title),
		Thumbnail: info.Thumbnail,
		Duration:  domain.Seconds(info.Duration),
		Formats:   formats,
		VideoURL:  formats.High,
		AudioURL:  formats.Audio,
	}, nil
}

// PartitionFormats splits formats into muxed video+audio entries and
// audio-only entries, preserving order. Video-only formats are dropped.
func PartitionFormats(formats []ytdlp.Format) (video, audio []ytdlp.Format) {
	for _, f := range formats {
		if !f.HasAudio() || f.URL == "" {
			continue
		}
		if f.HasVideo() {
			video = append(video, f)
		} else {
			audio = append(audio, f)
		}
	}
	return video, audio
}

// SelectFormats picks high (first with height >= 720), medium (first with
// 480 <= height < 720) and low (first below 480). Each falls back to the
// first format when nothing matches.
func SelectFormats(video []ytdlp.Format) domain.Formats {
	if len(video) == 0 {
		return domain.Formats{}
	}

	first := func(match func(h int) bool) string {
		for _, f := range video {
			if match(f.Height) {
				return f.URL
			}
		}
		return video[0].URL
	}

	return domain.Formats{
		High:   first(func(h int) bool { return h >= highMinHeight }),
		Medium: first(func(h int) bool { return h >= mediumMinHeight && h < highMinHeight }),
		Low:    first(func(h int) bool { return h < mediumMinHeight }),
	}
}
