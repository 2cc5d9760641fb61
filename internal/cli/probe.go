package cli

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/iambhvsh/ytdl/internal/core/extractor"
	"github.com/iambhvsh/ytdl/internal/core/i18n"
)

var (
	probeInfoStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	probeErrStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// probeState holds the result of a background probe
type probeState struct {
	mu   sync.RWMutex
	done bool
	err  error
	info *extractor.Info
}

func (s *probeState) finish(info *extractor.Info, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.done = true
	s.info = info
	s.err = err
}

func (s *probeState) get() (bool, *extractor.Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.done, s.info, s.err
}

type probeTickMsg time.Time

type probeModel struct {
	spinner   spinner.Model
	t         *i18n.Translations
	url       string
	state     *probeState
	cancel    context.CancelFunc
	interrupt func()
}

func newProbeModel(url, lang string, state *probeState, cancel context.CancelFunc, interrupt func()) probeModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return probeModel{
		spinner:   s,
		t:         i18n.T(lang),
		url:       url,
		state:     state,
		cancel:    cancel,
		interrupt: interrupt,
	}
}

func probeTickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return probeTickMsg(t)
	})
}

func (m probeModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, probeTickCmd())
}

func (m probeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.cancel()
			if msg.String() == "ctrl+c" && m.interrupt != nil {
				m.interrupt()
			}
			return m, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case probeTickMsg:
		if done, _, _ := m.state.get(); done {
			return m, tea.Quit
		}
		return m, probeTickCmd()
	}

	return m, nil
}

func (m probeModel) View() string {
	done, _, err := m.state.get()
	if done {
		if err != nil {
			return fmt.Sprintf("  %s %s\n", probeErrStyle.Render("✗"), m.t.Errors.ExtractionFailed)
		}
		return ""
	}
	return fmt.Sprintf("\n  %s %s %s\n\n  %s\n",
		m.spinner.View(),
		m.t.Download.Analyzing,
		probeInfoStyle.Render(m.url),
		probeInfoStyle.Render("q "+m.t.Help.Cancel),
	)
}

// probeWithSpinner runs engine.Probe in the background behind a spinner.
// q cancels the probe; ctrl+c also calls interrupt.
func probeWithSpinner(ctx context.Context, engine extractor.Prober, url, lang string, interrupt func()) (*extractor.Info, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	state := &probeState{}
	go func() {
		state.finish(engine.Probe(ctx, url))
	}()

	p := tea.NewProgram(newProbeModel(url, lang, state, cancel, interrupt))
	if _, err := p.Run(); err != nil {
		return nil, err
	}

	done, info, err := state.get()
	if !done || ctx.Err() != nil {
		return nil, fmt.Errorf("probe %s: %w", url, extractor.ErrCancelled)
	}
	return info, err
}
