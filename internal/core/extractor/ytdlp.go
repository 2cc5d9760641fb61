package extractor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/iambhvsh/ytdl/internal/core/youtube"
	"github.com/lrstanley/go-ytdlp"
)

// DefaultProgressInterval is how often yt-dlp progress is sampled.
const DefaultProgressInterval = 250 * time.Millisecond

// Output templates, relative to Request.OutputDir.
const (
	videoTemplate         = "%(title)s.%(ext)s"
	playlistFolder        = "%(playlist_title)s"
	playlistEntryTemplate = "%(playlist_index)03d - %(title)s.%(ext)s"
)

// Ytdlp drives the yt-dlp binary through go-ytdlp.
type Ytdlp struct {
	// Interval between progress callbacks; zero uses DefaultProgressInterval
	Interval time.Duration
}

// NewYtdlp creates a yt-dlp backed engine
func NewYtdlp() *Ytdlp {
	return &Ytdlp{Interval: DefaultProgressInterval}
}

func (y *Ytdlp) Name() string {
	return "yt-dlp"
}

// Probe runs a single flat extraction pass. Playlist entries are listed but
// not resolved individually.
func (y *Ytdlp) Probe(ctx context.Context, url string) (*Info, error) {
	start := time.Now()

	res, err := ytdlp.New().
		DumpSingleJSON().
		FlatPlaylist().
		SkipDownload().
		NoWarnings().
		Run(ctx, url)
	if err != nil {
		return nil, wrapRunError(ctx, "probe", url, res, err)
	}

	info, err := parseInfo([]byte(res.Stdout))
	if err != nil {
		return nil, &EngineError{Op: "probe", URL: url, Err: err}
	}

	log.Printf("[ytdlp] probed %s in %s: %q (%d entries)", url, time.Since(start).Round(time.Millisecond), info.Title, info.EntryCount)
	return info, nil
}

// Download runs yt-dlp for the request. fn is invoked from go-ytdlp's progress
// reader for every sampled update.
func (y *Ytdlp) Download(ctx context.Context, req Request, fn ProgressFunc) (*Result, error) {
	result := &Result{JobID: uuid.NewString()}
	acc := newResultAccumulator(req)

	interval := y.Interval
	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	cmd := buildCommand(req)
	cmd.ProgressFunc(interval, func(update ytdlp.ProgressUpdate) {
		ev := eventFromUpdate(update)
		acc.observe(ev)
		if fn != nil {
			fn(ev)
		}
	})

	log.Printf("[ytdlp] job %s: %s quality=%s playlist=%v dir=%s", result.JobID, req.URL, req.Quality, req.Playlist, req.OutputDir)
	start := time.Now()

	res, err := cmd.Run(ctx, req.URL)
	acc.fill(result)

	if err != nil {
		// Playlists run with --ignore-errors: a non-zero exit with at least
		// one finished entry is a partial success.
		if req.Playlist && ctx.Err() == nil && result.Completed > 0 {
			log.Printf("[ytdlp] job %s finished with errors: %v", result.JobID, err)
			return result, nil
		}
		return result, wrapRunError(ctx, "download", req.URL, res, err)
	}

	log.Printf("[ytdlp] job %s done in %s: %d/%d entries", result.JobID, time.Since(start).Round(time.Millisecond), result.Completed, result.Attempted)
	return result, nil
}

// outputTemplate builds the yt-dlp output template for req, relative to its
// output directory. Literal names have '%' escaped.
func outputTemplate(req Request) string {
	name := strings.ReplaceAll(req.Filename, "%", "%%")
	switch {
	case req.Playlist && name != "":
		return filepath.Join(name, playlistEntryTemplate)
	case req.Playlist:
		return filepath.Join(playlistFolder, playlistEntryTemplate)
	case name != "":
		return name + ".%(ext)s"
	}
	return videoTemplate
}

func buildCommand(req Request) *ytdlp.Command {
	cmd := ytdlp.New().
		Format(youtube.FormatSelector(req.Quality)).
		Output(filepath.Join(req.OutputDir, outputTemplate(req))).
		WindowsFilenames().
		NoWarnings()

	if req.Playlist {
		cmd = cmd.YesPlaylist().IgnoreErrors()
	} else {
		cmd = cmd.NoPlaylist()
	}

	if req.Quality.IsAudio() {
		cmd = cmd.ExtractAudio().
			AudioFormat(defaultString(req.AudioFormat, "mp3")).
			AudioQuality(defaultString(req.AudioQuality, "192"))
	} else {
		cmd = cmd.MergeOutputFormat(defaultString(req.MergeFormat, "mp4"))
	}

	return cmd
}

func eventFromUpdate(u ytdlp.ProgressUpdate) Event {
	ev := Event{
		Status:        Status(u.Status),
		Filename:      u.Filename,
		Downloaded:    int64(u.DownloadedBytes),
		Total:         int64(u.TotalBytes),
		FragmentIndex: u.FragmentIndex,
		FragmentCount: u.FragmentCount,
	}
	if u.Info != nil {
		ev.VideoID = u.Info.ID
		if u.Info.Title != nil {
			ev.Title = *u.Info.Title
		}
	}
	return ev
}

func wrapRunError(ctx context.Context, op, url string, res *ytdlp.Result, err error) error {
	if ctx.Err() != nil {
		return fmt.Errorf("%s %s: %w", op, url, ErrCancelled)
	}
	ee := &EngineError{Op: op, URL: url, Err: err}
	if res != nil {
		ee.Detail = errorDetail(res.Stderr)
	}
	log.Printf("[ytdlp] %s %s failed: %v", op, url, ee)
	return ee
}

// resultAccumulator collects finished files and entries from progress events.
// An entry may produce several "finished" events (separate video and audio
// streams); it is counted once, keyed by video ID.
type resultAccumulator struct {
	mu       sync.Mutex
	ext      string
	seen     map[string]bool
	finished map[string]bool
	files    []string
	fileSet  map[string]bool
}

func newResultAccumulator(req Request) *resultAccumulator {
	return &resultAccumulator{
		ext:      req.Quality.Ext(req.AudioFormat, req.MergeFormat),
		seen:     make(map[string]bool),
		finished: make(map[string]bool),
		fileSet:  make(map[string]bool),
	}
}

func (a *resultAccumulator) observe(ev Event) {
	a.mu.Lock()
	defer a.mu.Unlock()

	key := ev.VideoID
	if key == "" {
		key = ev.Filename
	}
	if key != "" {
		a.seen[key] = true
	}

	if ev.Status != StatusFinished {
		return
	}
	if key != "" {
		a.finished[key] = true
	}
	if ev.Filename != "" {
		path := FinalPath(ev.Filename, a.ext)
		if !a.fileSet[path] {
			a.fileSet[path] = true
			a.files = append(a.files, path)
		}
	}
}

func (a *resultAccumulator) fill(r *Result) {
	a.mu.Lock()
	defer a.mu.Unlock()
	r.Files = append([]string(nil), a.files...)
	r.Completed = len(a.finished)
	r.Attempted = len(a.seen)
}

var formatSuffixRe = regexp.MustCompile(`\.f[0-9]+(-[0-9]+)?$`)

// FinalPath derives the file left on disk after merging or audio extraction
// from the intermediate filename reported while downloading, e.g.
// "Title.f137.mp4" becomes "Title.mp4".
func FinalPath(filename, ext string) string {
	if filename == "" {
		return ""
	}
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	base = formatSuffixRe.ReplaceAllString(base, "")
	if ext == "" {
		return filename
	}
	return base + "." + ext
}

// rawInfo mirrors the subset of yt-dlp's --dump-single-json output used here.
type rawInfo struct {
	Type          string      `json:"_type"`
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	Uploader      string      `json:"uploader"`
	Channel       string      `json:"channel"`
	Duration      float64     `json:"duration"`
	ViewCount     *int64      `json:"view_count"`
	WebpageURL    string      `json:"webpage_url"`
	PlaylistCount int         `json:"playlist_count"`
	Entries       []*rawEntry `json:"entries"`
}

type rawEntry struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	URL      string  `json:"url"`
	Duration float64 `json:"duration"`
}

func parseInfo(data []byte) (*Info, error) {
	data = []byte(strings.TrimSpace(string(data)))
	if len(data) == 0 {
		return nil, errors.New("empty metadata output")
	}

	var raw rawInfo
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse metadata: %w", err)
	}

	info := &Info{
		ID:         raw.ID,
		Title:      defaultString(raw.Title, youtube.Unknown),
		Uploader:   defaultString(defaultString(raw.Uploader, raw.Channel), youtube.Unknown),
		Duration:   raw.Duration,
		ViewCount:  -1,
		WebpageURL: raw.WebpageURL,
	}
	if raw.ViewCount != nil {
		info.ViewCount = *raw.ViewCount
	}

	for _, e := range raw.Entries {
		if e == nil || (e.URL == "" && e.ID == "") {
			continue
		}
		entry := Entry{ID: e.ID, Title: e.Title, URL: e.URL, Duration: e.Duration}
		if entry.URL == "" {
			entry.URL = "https://www.youtube.com/watch?v=" + e.ID
		}
		info.Entries = append(info.Entries, entry)
	}

	info.EntryCount = len(info.Entries)
	if raw.PlaylistCount > info.EntryCount {
		info.EntryCount = raw.PlaylistCount
	}
	// A plain video has no entries; a playlist with a single entry is still
	// downloaded as a single video.
	if raw.Type != "playlist" && info.EntryCount == 0 {
		info.EntryCount = 1
	}

	return info, nil
}

func defaultString(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
