package resolver

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iconidentify/xfetch/internal/domain"
	"github.com/iconidentify/xfetch/pkg/ytdlp"
)

type fakeExtractor struct {
	info *ytdlp.Info
	err  error
}

func (f *fakeExtractor) Extract(ctx context.Context, url string) (*ytdlp.Info, error) {
	return f.info, f.err
}

func muxed(height int, url string) ytdlp.Format {
	return ytdlp.Format{URL: url, Height: height, VCodec: "avc1", ACodec: "mp4a"}
}

func TestSelectFormats_Heights(t *testing.T) {
	formats := []ytdlp.Format{
		muxed(240, "240.mp4"),
		muxed(480, "480.mp4"),
		muxed(720, "720.mp4"),
		muxed(1080, "1080.mp4"),
	}

	got := SelectFormats(formats)
	assert.Equal(t, "720.mp4", got.High)
	assert.Equal(t, "480.mp4", got.Medium)
	assert.Equal(t, "240.mp4", got.Low)
}

func TestSelectFormats_FallbackToFirst(t *testing.T) {
	tests := []struct {
		name    string
		formats []ytdlp.Format
		want    domain.Formats
	}{
		{
			name:    "only high",
			formats: []ytdlp.Format{muxed(1080, "1080.mp4"), muxed(720, "720.mp4")},
			want:    domain.Formats{High: "1080.mp4", Medium: "1080.mp4", Low: "1080.mp4"},
		},
		{
			name:    "only low",
			formats: []ytdlp.Format{muxed(360, "360.mp4")},
			want:    domain.Formats{High: "360.mp4", Medium: "360.mp4", Low: "360.mp4"},
		},
		{
			name:    "unknown height counts as low",
			formats: []ytdlp.Format{muxed(720, "720.mp4"), muxed(0, "unknown.mp4")},
			want:    domain.Formats{High: "720.mp4", Medium: "720.mp4", Low: "unknown.mp4"},
		},
		{
			name:    "empty",
			formats: nil,
			want:    domain.Formats{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SelectFormats(tt.formats))
		})
	}
}

func TestPartitionFormats(t *testing.T) {
	formats := []ytdlp.Format{
		{URL: "audio.m4a", VCodec: "none", ACodec: "mp4a"},
		{URL: "video-only.mp4", VCodec: "avc1", ACodec: "none"},
		muxed(720, "720.mp4"),
		{URL: "", VCodec: "avc1", ACodec: "mp4a"},
		{URL: "audio2.m4a", VCodec: "none", ACodec: "opus"},
	}

	video, audio := PartitionFormats(formats)
	require.Len(t, video, 1)
	assert.Equal(t, "720.mp4", video[0].URL)
	require.Len(t, audio, 2)
	assert.Equal(t, "audio.m4a", audio[0].URL)
}

func TestYtDlpProvider_Resolve(t *testing.T) {
	p := NewYtDlpProvider(&fakeExtractor{info: &ytdlp.Info{
		Title:     "",
		Thumbnail: "https://pbs.twimg.com/t.jpg",
		Duration:  21.5,
		Formats: []ytdlp.Format{
			{URL: "audio.m4a", VCodec: "none", ACodec: "mp4a"},
			muxed(480, "480.mp4"),
			muxed(1080, "1080.mp4"),
		},
	}})

	assert.Equal(t, "yt-dlp", p.Name())
	assert.True(t, p.Enabled())

	info, err := p.Resolve(context.Background(), "https://x.com/u/status/1")
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultTitle, info.Title)
	assert.Equal(t, "https://pbs.twimg.com/t.jpg", info.Thumbnail)
	require.NotNil(t, info.Duration)
	assert.InDelta(t, 21.5, *info.Duration, 0.001)
	assert.Equal(t, "1080.mp4", info.Formats.High)
	assert.Equal(t, "480.mp4", info.Formats.Medium)
	assert.Equal(t, "480.mp4", info.Formats.Low)
	assert.Equal(t, "audio.m4a", info.Formats.Audio)
	assert.Equal(t, "audio.m4a", info.AudioURL)
	assert.Equal(t, info.Formats.High, info.VideoURL)
}

func TestYtDlpProvider_ExtractorError(t *testing.T) {
	p := NewYtDlpProvider(&fakeExtractor{err: errors.New("exec: \"yt-dlp\": executable file not found in $PATH")})

	_, err := p.Resolve(context.Background(), "https://x.com/u/status/1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "executable file not found")
}

func TestYtDlpProvider_NoVideoFormats(t *testing.T) {
	p := NewYtDlpProvider(&fakeExtractor{info: &ytdlp.Info{
		Formats: []ytdlp.Format{{URL: "audio.m4a", VCodec: "none", ACodec: "mp4a"}},
	}})

	_, err := p.Resolve(context.Background(), "https://x.com/u/status/1")
	assert.ErrorIs(t, err, domain.ErrNoVideo)
}
