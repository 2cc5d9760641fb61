package config

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func press(m wizardModel, keys ...tea.KeyMsg) wizardModel {
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(wizardModel)
	}
	return m
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func TestWizardWalkthrough(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OutputDir = "/data/ytdl"

	m := newWizardModel(cfg)
	m = press(m, keyEnter)          // language: keep English
	m = press(m, keyEnter)          // output dir: keep
	m = press(m, keyDown, keyEnter) // quality: medium
	m = press(m, keyDown, keyEnter) // audio: m4a
	m = press(m, keyEnter)          // confirm: yes

	if !m.confirmed {
		t.Fatal("wizard not confirmed")
	}
	if cfg.Language != "en" || cfg.OutputDir != "/data/ytdl" {
		t.Errorf("config = %+v", cfg)
	}
	if cfg.Quality != "medium" {
		t.Errorf("Quality = %q; want medium", cfg.Quality)
	}
	if cfg.AudioFormat != "m4a" {
		t.Errorf("AudioFormat = %q; want m4a", cfg.AudioFormat)
	}
}

func TestWizardOutputDirInput(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OutputDir = "/a"

	m := newWizardModel(cfg)
	m = press(m, keyEnter)
	if m.step != stepOutputDir || m.inputBuffer != "/a" {
		t.Fatalf("step = %d, input = %q", m.step, m.inputBuffer)
	}
	m = press(m,
		tea.KeyMsg{Type: tea.KeyBackspace},
		tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("b/c")},
		keyEnter,
	)
	if cfg.OutputDir != filepath.Clean("/b/c") && cfg.OutputDir != "/b/c" {
		t.Errorf("OutputDir = %q", cfg.OutputDir)
	}
}

func TestWizardBackKeepsValues(t *testing.T) {
	cfg := DefaultConfig()
	m := newWizardModel(cfg)
	m = press(m, keyDown, keyEnter) // zh
	if cfg.Language != "zh" {
		t.Fatalf("Language = %q", cfg.Language)
	}
	m = press(m, keyLeft)
	if m.step != stepLanguage || m.cursor != 1 {
		t.Errorf("step = %d, cursor = %d", m.step, m.cursor)
	}
}

func TestWizardCancel(t *testing.T) {
	m := press(newWizardModel(DefaultConfig()), keyEsc)
	if !m.cancelled || m.confirmed {
		t.Error("esc should cancel")
	}
}

func TestWizardDecline(t *testing.T) {
	m := newWizardModel(DefaultConfig())
	m.step = stepConfirm
	m.loadStep()
	m = press(m, keyDown, keyEnter)
	if m.confirmed || !m.cancelled {
		t.Error("choosing no should cancel")
	}
}
