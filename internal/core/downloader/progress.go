package downloader

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/iambhvsh/ytdl/internal/core/i18n"
)

var (
	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	infoStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	doneStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// tickMsg triggers UI updates
type tickMsg time.Time

// downloadModel is the Bubble Tea model for download progress
type downloadModel struct {
	progress progress.Model
	spinner  spinner.Model
	t        *i18n.Translations

	tracker   *Tracker
	cancel    context.CancelFunc
	interrupt func()
	cancelled bool
}

func newDownloadModel(tracker *Tracker, cancel context.CancelFunc, interrupt func(), lang string) downloadModel {
	p := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(50),
	)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return downloadModel{
		progress:  p,
		spinner:   s,
		t:         i18n.T(lang),
		tracker:   tracker,
		cancel:    cancel,
		interrupt: interrupt,
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m downloadModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		tickCmd(),
	)
}

func (m downloadModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.cancelled = true
			if m.cancel != nil {
				m.cancel()
			}
			// The terminal is in raw mode, so ctrl+c never reaches the
			// signal handler.
			if msg.String() == "ctrl+c" && m.interrupt != nil {
				m.interrupt()
			}
			return m, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd

	case tickMsg:
		snap := m.tracker.Snapshot()
		if snap.Done {
			return m, tea.Quit
		}
		return m, tea.Batch(tickCmd(), m.progress.SetPercent(snap.Percent))
	}

	return m, nil
}

func (m downloadModel) View() string {
	snap := m.tracker.Snapshot()

	if snap.Err != nil || m.cancelled {
		return fmt.Sprintf("\n  %s %s\n\n", errStyle.Render("✗"), snap.Description)
	}

	if snap.Done {
		return fmt.Sprintf("\n  %s %s\n  %s\n  %s: %s\n\n",
			doneStyle.Render("✓"),
			snap.Description,
			m.progress.ViewAs(1),
			m.t.Download.Elapsed,
			formatDuration(snap.Elapsed),
		)
	}

	var s string
	s += "\n"
	s += fmt.Sprintf("  %s %s\n\n", m.spinner.View(), infoStyle.Render(snap.Description))
	s += fmt.Sprintf("  %s\n\n", m.progress.View())

	if snap.Total > 0 && snap.Speed > 0 {
		s += fmt.Sprintf("  %s: %.1f%%  |  %s/%s  |  %s: %s/s  |  %s: %s\n",
			m.t.Download.Progress,
			snap.Percent*100,
			humanize.IBytes(uint64(snap.Current)),
			humanize.IBytes(uint64(snap.Total)),
			m.t.Download.Speed,
			humanize.IBytes(uint64(snap.Speed)),
			m.t.Download.ETA,
			formatDuration(snap.ETA),
		)
	} else {
		s += fmt.Sprintf("  %s: %.1f%%  |  %s: %s\n",
			m.t.Download.Progress,
			snap.Percent*100,
			m.t.Download.Elapsed,
			formatDuration(snap.Elapsed),
		)
	}

	s += "\n"
	s += helpStyle.Render("  " + m.t.Download.CancelHint)
	s += "\n"

	return s
}
