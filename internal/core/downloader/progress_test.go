package downloader

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/iambhvsh/ytdl/internal/core/extractor"
)

func TestDownloadModelCancelKeys(t *testing.T) {
	tests := []struct {
		key           tea.KeyMsg
		wantInterrupt bool
	}{
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}, false},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, true},
	}
	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			var cancelled, interrupted bool
			m := newDownloadModel(NewTracker(false, 1, "en"),
				func() { cancelled = true },
				func() { interrupted = true },
				"en")

			next, cmd := m.Update(tt.key)
			if cmd == nil {
				t.Error("expected quit command")
			}
			if !next.(downloadModel).cancelled || !cancelled {
				t.Error("download not cancelled")
			}
			if interrupted != tt.wantInterrupt {
				t.Errorf("interrupted = %v; want %v", interrupted, tt.wantInterrupt)
			}
		})
	}
}

func TestDownloadModelView(t *testing.T) {
	tr := NewTracker(false, 1, "en")
	m := newDownloadModel(tr, nil, nil, "en")

	tr.Observe(extractor.Event{Status: extractor.StatusDownloading, Filename: "/x/Clip.mp4", Downloaded: 10, Total: 100})
	view := m.View()
	if !strings.Contains(view, "Downloading: Clip.mp4") {
		t.Errorf("view missing description:\n%s", view)
	}
	if !strings.Contains(view, "Press q to cancel") {
		t.Errorf("view missing cancel hint:\n%s", view)
	}

	tr.Finish(nil)
	if view := m.View(); !strings.Contains(view, "Complete") {
		t.Errorf("final view:\n%s", view)
	}
}
