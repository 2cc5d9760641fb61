package downloader

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/iambhvsh/ytdl/internal/core/extractor"
	"github.com/iambhvsh/ytdl/internal/core/i18n"
	"github.com/mattn/go-runewidth"
)

// maxTitleWidth is the display width of the entry title in playlist labels.
const maxTitleWidth = 30

// processingPercent is shown once the download is finished and the engine is
// merging or converting.
const processingPercent = 0.95

type phase int

const (
	phaseAnalyzing phase = iota
	phaseDownloading
	phaseProcessing
	phaseComplete
	phaseFailed
)

// Snapshot is a consistent copy of the tracker state for rendering.
type Snapshot struct {
	Description string
	Current     int64
	Total       int64
	Percent     float64 // 0..1
	Speed       float64 // bytes per second of the current stream
	ETA         time.Duration
	Elapsed     time.Duration
	Completed   int
	Entries     int
	Playlist    bool
	Done        bool
	Err         error
}

// Tracker turns engine progress events into what the progress bar shows.
// Observe is called from the engine goroutine, Snapshot from the UI.
type Tracker struct {
	mu sync.RWMutex
	t  *i18n.Translations

	playlist bool
	entries  int

	phase    phase
	filename string
	title    string
	current  int64
	total    int64

	streamStart time.Time
	startTime   time.Time
	endTime     time.Time

	completed map[string]bool
	err       error
}

// NewTracker creates a tracker. entries is the playlist size reported by the
// probe and is ignored for single videos.
func NewTracker(playlist bool, entries int, lang string) *Tracker {
	if !playlist {
		entries = 1
	}
	now := time.Now()
	return &Tracker{
		t:           i18n.T(lang),
		playlist:    playlist,
		entries:     entries,
		startTime:   now,
		streamStart: now,
		completed:   make(map[string]bool),
	}
}

// Observe applies one engine event.
func (tr *Tracker) Observe(ev extractor.Event) {
	tr.mu.Lock()
	defer tr.mu.Unlock()

	if tr.phase == phaseComplete || tr.phase == phaseFailed {
		return
	}

	if ev.Filename != "" && ev.Filename != tr.filename {
		tr.filename = ev.Filename
		tr.streamStart = time.Now()
		tr.current = 0
		tr.total = 0
	}
	if ev.Title != "" {
		tr.title = ev.Title
	}

	switch ev.Status {
	case extractor.StatusStarting:
		if tr.phase == phaseAnalyzing {
			tr.phase = phaseDownloading
		}
	case extractor.StatusDownloading:
		tr.phase = phaseDownloading
		tr.current = ev.Downloaded
		tr.total = ev.Total
		if tr.total <= 0 && ev.FragmentCount > 0 {
			// Fragmented streams without a known size: fall back to
			// fragment counts, scaled so the bar still moves.
			tr.current = int64(ev.FragmentIndex)
			tr.total = int64(ev.FragmentCount)
		}
	case extractor.StatusFinished:
		if tr.total > 0 {
			tr.current = tr.total
		}
		tr.markCompleted(ev)
		if !tr.playlist {
			tr.phase = phaseProcessing
		}
	case extractor.StatusPostProcessing:
		if !tr.playlist {
			tr.phase = phaseProcessing
		}
	case extractor.StatusError:
		// Playlists keep going past failing entries.
		if !tr.playlist {
			tr.phase = phaseFailed
		}
	}
}

// markCompleted counts an entry once, no matter how many of its streams
// report finished. Caller holds the lock.
func (tr *Tracker) markCompleted(ev extractor.Event) {
	key := ev.VideoID
	if key == "" {
		// Streams of one entry share the path once the format suffix and
		// extension are dropped.
		key = extractor.FinalPath(ev.Filename, "entry")
	}
	if key == "" {
		return
	}
	tr.completed[key] = true
	if tr.playlist && len(tr.completed) > tr.entries {
		tr.entries = len(tr.completed)
	}
}

// Finish records the outcome of the engine run.
func (tr *Tracker) Finish(err error) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.endTime = time.Now()
	if err != nil {
		tr.err = err
		tr.phase = phaseFailed
		return
	}
	tr.phase = phaseComplete
}

// Snapshot returns the current state.
func (tr *Tracker) Snapshot() Snapshot {
	tr.mu.RLock()
	defer tr.mu.RUnlock()

	s := Snapshot{
		Current:   tr.current,
		Total:     tr.total,
		Completed: len(tr.completed),
		Entries:   tr.entries,
		Playlist:  tr.playlist,
		Done:      tr.phase == phaseComplete || tr.phase == phaseFailed,
		Err:       tr.err,
		ETA:       -1,
	}

	end := tr.endTime
	if end.IsZero() {
		end = time.Now()
	}
	s.Elapsed = end.Sub(tr.startTime)

	if secs := end.Sub(tr.streamStart).Seconds(); secs > 0 && tr.current > 0 && tr.total > tr.current {
		s.Speed = float64(tr.current) / secs
		s.ETA = time.Duration(float64(tr.total-tr.current)/s.Speed) * time.Second
	}

	s.Percent = tr.percent()
	s.Description = tr.describe(s)
	return s
}

// percent is the bar position. Caller holds the lock.
func (tr *Tracker) percent() float64 {
	var stream float64
	if tr.total > 0 {
		stream = float64(tr.current) / float64(tr.total)
		if stream > 1 {
			stream = 1
		}
	}

	if tr.playlist {
		if tr.phase == phaseComplete {
			return 1
		}
		if tr.entries <= 0 {
			return 0
		}
		done := len(tr.completed)
		p := float64(done) / float64(tr.entries)
		if done < tr.entries && tr.phase == phaseDownloading {
			p += stream / float64(tr.entries)
		}
		if p > 1 {
			p = 1
		}
		return p
	}

	switch tr.phase {
	case phaseComplete:
		return 1
	case phaseProcessing:
		return processingPercent
	case phaseDownloading:
		if stream > processingPercent {
			return processingPercent
		}
		return stream
	}
	return 0
}

// describe builds the label shown next to the spinner. Caller holds the lock.
func (tr *Tracker) describe(s Snapshot) string {
	if tr.playlist {
		title := runewidth.Truncate(tr.title, maxTitleWidth, "")
		return fmt.Sprintf("%s: %d/%d - %s", tr.t.Playlist.Progress, s.Completed, s.Entries, title)
	}

	switch tr.phase {
	case phaseDownloading:
		return fmt.Sprintf("%s: %s", tr.t.Download.Downloading, filepath.Base(tr.filename))
	case phaseProcessing:
		return tr.t.Download.Processing
	case phaseComplete:
		return tr.t.Download.Complete
	case phaseFailed:
		return tr.t.Download.Failed
	}
	return tr.t.Download.Analyzing
}
