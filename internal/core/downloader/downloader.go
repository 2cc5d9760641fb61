// Package downloader runs an engine download behind a terminal progress bar.
package downloader

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/iambhvsh/ytdl/internal/core/extractor"
	"golang.org/x/term"
)

// Options controls a single Run.
type Options struct {
	Lang string

	// Entries is the playlist size reported by the probe
	Entries int

	// Interrupt is called when ctrl+c is pressed in the progress view
	Interrupt func()

	// Plain skips the TUI and just waits for the engine. It is set
	// automatically when stdout is not a terminal.
	Plain bool
}

// isTerminal is swapped in tests
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Run downloads req with engine in a background goroutine while the progress
// bar runs in the foreground. Pressing q or ctrl+c cancels the download; the
// returned error then wraps extractor.ErrCancelled.
func Run(ctx context.Context, engine extractor.Engine, req extractor.Request, opts Options) (*extractor.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	tracker := NewTracker(req.Playlist, opts.Entries, opts.Lang)

	var (
		result *extractor.Result
		runErr error
	)
	done := make(chan struct{})
	go func() {
		defer close(done)
		result, runErr = engine.Download(ctx, req, tracker.Observe)
		tracker.Finish(runErr)
	}()

	if opts.Plain || !isTerminal() {
		<-done
		return result, runErr
	}

	model := newDownloadModel(tracker, cancel, opts.Interrupt, opts.Lang)
	p := tea.NewProgram(model)
	finalModel, err := p.Run()
	if err != nil {
		cancel()
		<-done
		return result, fmt.Errorf("progress display failed: %w", err)
	}

	if m, ok := finalModel.(downloadModel); ok && m.cancelled {
		log.Printf("[download] cancelled by user: %s", req.URL)
	}
	<-done

	if runErr != nil && ctx.Err() != nil {
		return result, fmt.Errorf("%s: %w", req.URL, extractor.ErrCancelled)
	}
	return result, runErr
}

func formatDuration(d time.Duration) string {
	if d < 0 {
		return "??:??"
	}
	d = d.Round(time.Second)
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
