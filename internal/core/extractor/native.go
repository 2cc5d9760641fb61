package extractor

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/iambhvsh/ytdl/internal/core/youtube"
	kkyoutube "github.com/kkdai/youtube/v2"
)

// ErrUnsupportedURL is returned by Native for URLs it cannot probe, such as
// channel and handle pages.
var ErrUnsupportedURL = errors.New("unsupported URL")

// Native reads metadata straight from YouTube's web API with
// kkdai/youtube. It only probes; downloads always go through yt-dlp.
type Native struct {
	client *kkyoutube.Client
}

// NewNative creates a native prober
func NewNative() *Native {
	return &Native{client: &kkyoutube.Client{}}
}

func (n *Native) Name() string {
	return "native"
}

func (n *Native) Probe(ctx context.Context, url string) (*Info, error) {
	if youtube.PlaylistID(url) != "" {
		return n.probePlaylist(ctx, url)
	}
	if youtube.VideoID(url) == "" {
		return nil, fmt.Errorf("native probe %s: %w", url, ErrUnsupportedURL)
	}

	video, err := n.client.GetVideoContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("native probe: %w", err)
	}

	log.Printf("[native] probed %s: %q", url, video.Title)
	return &Info{
		ID:         video.ID,
		Title:      defaultString(video.Title, youtube.Unknown),
		Uploader:   defaultString(video.Author, youtube.Unknown),
		Duration:   video.Duration.Seconds(),
		ViewCount:  -1,
		WebpageURL: url,
		EntryCount: 1,
	}, nil
}

func (n *Native) probePlaylist(ctx context.Context, url string) (*Info, error) {
	playlist, err := n.client.GetPlaylistContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("native playlist probe: %w", err)
	}

	info := &Info{
		ID:         playlist.ID,
		Title:      defaultString(playlist.Title, youtube.Unknown),
		Uploader:   defaultString(playlist.Author, youtube.Unknown),
		ViewCount:  -1,
		WebpageURL: url,
	}
	for _, v := range playlist.Videos {
		if v == nil {
			continue
		}
		info.Entries = append(info.Entries, Entry{
			ID:       v.ID,
			Title:    v.Title,
			URL:      "https://www.youtube.com/watch?v=" + v.ID,
			Duration: v.Duration.Seconds(),
		})
	}
	info.EntryCount = len(info.Entries)

	log.Printf("[native] probed playlist %s: %q (%d entries)", url, info.Title, info.EntryCount)
	return info, nil
}
