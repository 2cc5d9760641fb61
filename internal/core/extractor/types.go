package extractor

import (
	"context"

	"github.com/iambhvsh/ytdl/internal/core/youtube"
)

// Prober retrieves metadata for a URL without downloading anything
type Prober interface {
	// Name returns the prober name (e.g., "yt-dlp", "native")
	Name() string

	// Probe resolves title, uploader and playlist entries for the URL
	Probe(ctx context.Context, url string) (*Info, error)
}

// Engine performs the actual download. Progress is reported through fn,
// which is called synchronously from the engine's download loop.
type Engine interface {
	Prober
	Download(ctx context.Context, req Request, fn ProgressFunc) (*Result, error)
}

// ProgressFunc receives progress events from the engine.
type ProgressFunc func(Event)

// Info contains extracted video or playlist metadata
type Info struct {
	ID         string
	Title      string
	Uploader   string
	Duration   float64 // seconds, 0 when unknown
	ViewCount  int64   // -1 when unknown
	WebpageURL string

	// Entries is non-empty for playlists and channels
	Entries    []Entry
	EntryCount int
}

// Entry is a single video listed in a playlist
type Entry struct {
	ID       string
	Title    string
	URL      string
	Duration float64
}

// IsPlaylist reports whether the probe saw more than one entry.
func (i *Info) IsPlaylist() bool {
	return i.EntryCount > 1 || len(i.Entries) > 1
}

// Kind classifies the probed URL.
func (i *Info) Kind() youtube.Kind {
	if i.IsPlaylist() {
		return youtube.KindPlaylist
	}
	return youtube.KindVideo
}

// Request describes one download run
type Request struct {
	URL       string
	Quality   youtube.Quality
	OutputDir string
	Playlist  bool

	// Filename names the output file of a single video, or the folder
	// holding a playlist's entries. Empty uses the title reported by yt-dlp.
	Filename string

	// AudioFormat/AudioQuality configure the extract-audio postprocessor
	AudioFormat  string
	AudioQuality string

	// MergeFormat is the container used when video and audio are merged
	MergeFormat string
}

// Status is the phase reported by a progress event
type Status string

const (
	StatusStarting       Status = "starting"
	StatusDownloading    Status = "downloading"
	StatusPostProcessing Status = "post_processing"
	StatusFinished       Status = "finished"
	StatusError          Status = "error"
)

// Event is one progress report from the engine
type Event struct {
	Status     Status
	VideoID    string
	Title      string
	Filename   string
	Downloaded int64
	Total      int64 // 0 when unknown

	// Fragment counters for segmented (DASH/HLS) downloads
	FragmentIndex int
	FragmentCount int
}

// Result summarizes a finished download
type Result struct {
	JobID string

	// Files produced, in completion order
	Files []string

	// Entries downloaded successfully and entries attempted
	Completed int
	Attempted int
}

// LastFile returns the most recent output file, or "".
func (r *Result) LastFile() string {
	if r == nil || len(r.Files) == 0 {
		return ""
	}
	return r.Files[len(r.Files)-1]
}
