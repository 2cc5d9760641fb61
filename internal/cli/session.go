package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/iambhvsh/ytdl/internal/core/config"
	"github.com/iambhvsh/ytdl/internal/core/deps"
	"github.com/iambhvsh/ytdl/internal/core/downloader"
	"github.com/iambhvsh/ytdl/internal/core/extractor"
	"github.com/iambhvsh/ytdl/internal/core/i18n"
	"github.com/iambhvsh/ytdl/internal/core/youtube"
	"golang.org/x/term"
)

// errQuit ends the session at the user's request.
var errQuit = errors.New("quit")

// errSkip abandons the current URL without asking to download another.
var errSkip = errors.New("skip")

var (
	titleStyle   = color.New(color.FgCyan, color.Bold)
	successStyle = color.New(color.FgGreen, color.Bold)
	warnStyle    = color.New(color.FgYellow)
	errorStyle   = color.New(color.FgRed)
	labelStyle   = color.New(color.Bold)
)

type (
	probeFunc    func(ctx context.Context, engine extractor.Prober, url, lang string, interrupt func()) (*extractor.Info, error)
	downloadFunc func(ctx context.Context, engine extractor.Engine, req extractor.Request, opts downloader.Options) (*extractor.Result, error)
)

type lineResult struct {
	text string
	err  error
}

// session is one run of the interactive loop.
type session struct {
	in  *bufio.Reader
	out io.Writer

	cfg  *config.Config
	dirs config.Dirs
	lang string
	t    *i18n.Translations

	engine   extractor.Engine
	probe    probeFunc
	download downloadFunc

	// interrupt ends the session; wired to the signal context
	interrupt func()

	// pending is a line read still in flight after a cancelled prompt
	pending chan lineResult
}

func newSession(cfg *config.Config, dirs config.Dirs, engine extractor.Engine, in io.Reader, out io.Writer) *session {
	return &session{
		in:       bufio.NewReader(in),
		out:      out,
		cfg:      cfg,
		dirs:     dirs,
		lang:     cfg.Language,
		t:        i18n.T(cfg.Language),
		engine:   engine,
		probe:    probeWithSpinner,
		download: downloader.Run,
	}
}

// runInteractive is the root command: banner, environment check, then the
// prompt loop until the user quits or interrupts.
func runInteractive(ctx context.Context, initialURL string) error {
	cfg := loadConfig()
	t := i18n.T(cfg.Language)

	ctx, interrupt := context.WithCancel(ctx)
	defer interrupt()

	printBanner(os.Stdout, t, terminalWidth())

	if _, err := deps.EnsureYtDlp(ctx, cfg.AutoInstall); err != nil {
		warnStyle.Fprintf(os.Stdout, "  %s\n", t.Session.YtdlpMissing)
		return err
	}
	if !deps.FFmpegAvailable() {
		warnStyle.Fprintf(os.Stdout, "  %s\n\n", t.Session.FFmpegMissing)
	}

	dirs, err := cfg.EnsureDirs()
	if err != nil {
		return err
	}

	s := newSession(cfg, dirs, extractor.Default(), os.Stdin, os.Stdout)
	s.interrupt = interrupt
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		s.probe = func(ctx context.Context, engine extractor.Prober, url, lang string, _ func()) (*extractor.Info, error) {
			return engine.Probe(ctx, url)
		}
	}

	err = s.run(ctx, initialURL)
	fmt.Fprintf(os.Stdout, "\n  %s\n", t.Session.Thanks)
	return err
}

// run loops over URLs until the user quits, input ends or ctx is cancelled.
func (s *session) run(ctx context.Context, initialURL string) error {
	url := strings.TrimSpace(initialURL)
	for {
		if url == "" {
			line, err := s.prompt(ctx, s.t.Session.EnterURL)
			if err != nil {
				return s.stop(err)
			}
			url = line
		}
		if url == "" {
			continue
		}

		err := s.handle(ctx, url)
		url = ""
		switch {
		case err == nil:
		case errors.Is(err, errSkip):
			continue
		case errors.Is(err, errQuit), ctx.Err() != nil:
			return s.stop(err)
		case errors.Is(err, extractor.ErrCancelled):
			warnStyle.Fprintf(s.out, "\n  %s\n", s.t.Session.Canceled)
		default:
			log.Printf("[session] %v", err)
			errorStyle.Fprintf(s.out, "\n  ✗ %s\n", friendlyError(s.t, err))
		}

		again, err := s.askAnother(ctx)
		if err != nil {
			return s.stop(err)
		}
		if !again {
			fmt.Fprintf(s.out, "\n  %s\n", s.t.Session.Goodbye)
			return nil
		}
	}
}

// stop reports how the session ended. Quitting and end of input are not
// errors.
func (s *session) stop(err error) error {
	switch {
	case errors.Is(err, errQuit):
		fmt.Fprintf(s.out, "\n  %s\n", s.t.Session.Goodbye)
	case errors.Is(err, context.Canceled), errors.Is(err, extractor.ErrCancelled):
		warnStyle.Fprintf(s.out, "\n  %s\n", s.t.Session.Canceled)
	case errors.Is(err, io.EOF):
	default:
		return err
	}
	return nil
}

// handle processes one URL: validate, probe, choose a preset, download.
func (s *session) handle(ctx context.Context, url string) error {
	if isQuit(url) {
		return errQuit
	}
	if !youtube.IsValidURL(url) {
		errorStyle.Fprintf(s.out, "  ✗ %s\n\n", s.t.Errors.InvalidURL)
		return errSkip
	}

	info, err := s.probe(ctx, s.engine, url, s.lang, s.interrupt)
	var kind youtube.Kind
	if err == nil {
		kind = info.Kind()
	} else {
		if errors.Is(err, extractor.ErrCancelled) || extractor.Classify(err) != extractor.ReasonUnknown {
			return err
		}
		// Unrecognised probe failure: fall back to the URL shape and let the
		// download report the real problem.
		log.Printf("[session] probe failed, guessing kind from URL: %v", err)
		info = &extractor.Info{Title: youtube.Unknown, Uploader: youtube.Unknown, ViewCount: -1}
		kind = youtube.GuessKind(url)
	}

	if kind == youtube.KindPlaylist {
		return s.handlePlaylist(ctx, url, info)
	}
	return s.handleVideo(ctx, url, info)
}

func (s *session) handleVideo(ctx context.Context, url string, info *extractor.Info) error {
	fmt.Fprintln(s.out)
	labelStyle.Fprintf(s.out, "  %s: ", s.t.Session.Title)
	titleStyle.Fprintln(s.out, info.Title)
	labelStyle.Fprintf(s.out, "  %s: ", s.t.Session.Channel)
	fmt.Fprintln(s.out, info.Uploader)
	labelStyle.Fprintf(s.out, "  %s: ", s.t.Session.Duration)
	fmt.Fprintln(s.out, youtube.FormatDuration(info.Duration))
	if info.ViewCount >= 0 {
		labelStyle.Fprintf(s.out, "  %s: ", s.t.Session.Views)
		fmt.Fprintln(s.out, youtube.FormatCount(info.ViewCount))
	}
	fmt.Fprintln(s.out)

	q, err := s.chooseQuality(ctx, []string{
		s.t.Session.BestQuality,
		s.t.Session.MediumQuality + " (720p)",
		s.t.Session.LowQuality + " (480p)",
		s.t.Session.AudioOnly,
	}, youtube.ParseQuality(s.cfg.Quality))
	if err != nil {
		return err
	}

	req := s.request(url, q)
	if q.IsAudio() {
		req.OutputDir = s.dirs.Audios
	} else {
		req.OutputDir = s.dirs.Videos
	}
	if info.Title != youtube.Unknown {
		req.Filename = youtube.SanitizeFilename(info.Title)
	}

	res, err := s.download(ctx, s.engine, req, s.downloadOptions(1))
	if err != nil {
		return err
	}
	log.Printf("[session] job %s saved %d file(s)", res.JobID, len(res.Files))

	successStyle.Fprintf(s.out, "\n  ✓ %s\n", s.t.Download.Completed)
	saved := res.LastFile()
	if saved == "" {
		saved = req.OutputDir
	}
	fmt.Fprintf(s.out, "  %s: %s\n", s.t.Download.SavedTo, absPath(saved))
	return nil
}

func (s *session) handlePlaylist(ctx context.Context, url string, info *extractor.Info) error {
	fmt.Fprintln(s.out)
	successStyle.Fprintf(s.out, "  %s\n", s.t.Playlist.Detected)
	if info.EntryCount > 0 {
		fmt.Fprintf(s.out, "  "+s.t.Playlist.Found+"\n", info.EntryCount, info.Title)
	}
	fmt.Fprintln(s.out)

	q, err := s.chooseQuality(ctx, []string{
		s.t.Playlist.BestVideos,
		s.t.Playlist.MediumVideos,
		s.t.Playlist.LowVideos,
		s.t.Playlist.AsAudio,
	}, youtube.ParseQuality(s.cfg.PlaylistQuality))
	if err != nil {
		return err
	}

	req := s.request(url, q)
	req.Playlist = true
	req.OutputDir = s.dirs.Playlists
	if info.Title != youtube.Unknown {
		req.Filename = youtube.SanitizeFilename(info.Title)
	}

	res, err := s.download(ctx, s.engine, req, s.downloadOptions(info.EntryCount))
	if err != nil {
		return err
	}
	log.Printf("[session] job %s finished %d/%d entries", res.JobID, res.Completed, res.Attempted)

	total := info.EntryCount
	if res.Attempted > total {
		total = res.Attempted
	}
	successStyle.Fprintf(s.out, "\n  ✓ "+s.t.Playlist.Complete+"\n", res.Completed, total)
	folder := req.OutputDir
	if req.Filename != "" {
		folder = filepath.Join(folder, req.Filename)
	}
	fmt.Fprintf(s.out, "  %s: %s\n", s.t.Download.SavedTo, absPath(folder))
	return nil
}

func (s *session) request(url string, q youtube.Quality) extractor.Request {
	return extractor.Request{
		URL:          url,
		Quality:      q,
		AudioFormat:  s.cfg.AudioFormat,
		AudioQuality: s.cfg.AudioQuality,
		MergeFormat:  s.cfg.MergeFormat,
	}
}

func (s *session) downloadOptions(entries int) downloader.Options {
	return downloader.Options{
		Lang:      s.lang,
		Entries:   entries,
		Interrupt: s.interrupt,
	}
}

// chooseQuality shows a numbered menu and re-prompts until a valid choice.
// An empty answer takes def.
func (s *session) chooseQuality(ctx context.Context, labels []string, def youtube.Quality) (youtube.Quality, error) {
	defChoice := youtube.ChoiceFor(def)
	for i, label := range labels {
		marker := "  "
		if fmt.Sprint(i+1) == defChoice {
			marker = "> "
		}
		fmt.Fprintf(s.out, "  %s%d. %s\n", marker, i+1, label)
	}
	fmt.Fprintln(s.out)

	for {
		answer, err := s.prompt(ctx, fmt.Sprintf("%s [%s]", s.t.Session.SelectOption, defChoice))
		if err != nil {
			return "", err
		}
		if isQuit(answer) {
			return "", errQuit
		}
		if answer == "" {
			answer = defChoice
		}
		if q, ok := youtube.QualityFromChoice(answer); ok {
			return q, nil
		}
		errorStyle.Fprintf(s.out, "  %s\n", s.t.Session.InvalidChoice)
	}
}

// askAnother asks whether to continue; an empty answer means yes and q
// surfaces as errQuit from prompt.
func (s *session) askAnother(ctx context.Context) (bool, error) {
	fmt.Fprintln(s.out)
	for {
		answer, err := s.prompt(ctx, s.t.Session.DownloadAnother+" [y]")
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "", "y", "yes":
			fmt.Fprintln(s.out)
			return true, nil
		case "n", "no":
			return false, nil
		}
	}
}

// prompt prints label and reads one trimmed line. Cancelling ctx abandons the
// read; the line is picked up by the next prompt, if any.
func (s *session) prompt(ctx context.Context, label string) (string, error) {
	fmt.Fprintf(s.out, "  %s: ", label)

	if s.pending == nil {
		ch := make(chan lineResult, 1)
		go func() {
			line, err := s.in.ReadString('\n')
			if err == io.EOF && line != "" {
				err = nil
			}
			ch <- lineResult{text: line, err: err}
		}()
		s.pending = ch
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-s.pending:
		s.pending = nil
		if r.err != nil {
			return "", r.err
		}
		text := strings.TrimSpace(r.text)
		if isQuit(text) {
			return "", errQuit
		}
		return text, nil
	}
}

func isQuit(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "q", "quit", "exit":
		return true
	}
	return false
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
