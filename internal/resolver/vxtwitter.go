package resolver

import (
	"context"

	"github.com/iconidentify/xfetch/internal/domain"
	"github.com/iconidentify/xfetch/pkg/vxtwitter"
)

// VxTwitterProvider resolves posts through the public vxtwitter mirror.
type VxTwitterProvider struct {
	always
	client *vxtwitter.Client
}

// NewVxTwitterProvider creates a mirror-backed provider.
func NewVxTwitterProvider(client *vxtwitter.Client) *VxTwitterProvider {
	return &VxTwitterProvider{client: client}
}

func (p *VxTwitterProvider) Name() string { return "VxTwitter" }

func (p *VxTwitterProvider) Resolve(ctx context.Context, postURL string) (*domain.VideoInfo, error) {
	post, err := p.client.FetchPost(ctx, postURL)
	if err != nil {
		return nil, err
	}
	if len(post.MediaExtended) == 0 {
		return nil, domain.ErrNoMedia
	}

	video := post.FirstVideo()
	if video == nil {
		return nil, domain.ErrNoVideo
	}

	return &domain.VideoInfo{
		Success:   true,
		Title:     domain.TitleOr(post.Text),
		Thumbnail: video.ThumbnailURL,
		Duration:  domain.Seconds(video.Seconds()),
		Formats:   domain.SameForAll(video.URL),
		VideoURL:  video.URL,
	}, nil
}
