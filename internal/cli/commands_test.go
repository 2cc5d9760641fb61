package cli

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/iambhvsh/ytdl/internal/core/config"
	"github.com/iambhvsh/ytdl/internal/core/deps"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("APPDATA", "")
	outputDir, language, debug = "", "", false
	doctorInstall = false

	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := runCommand(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "ytdl v") {
		t.Errorf("output = %q", out)
	}
}

func TestConfigPathCommand(t *testing.T) {
	out, err := runCommand(t, "config", "path")
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(".config", "ytdl", "config.yml")
	if !strings.HasSuffix(strings.TrimSpace(out), want) {
		t.Errorf("output = %q; want suffix %q", out, want)
	}
}

func TestConfigSetCommand(t *testing.T) {
	out, err := runCommand(t, "config", "set", "playlist_quality", "audio")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Set playlist_quality = audio") {
		t.Errorf("output = %q", out)
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config not saved: %v", err)
	}
	if cfg.PlaylistQuality != "audio" {
		t.Errorf("PlaylistQuality = %q", cfg.PlaylistQuality)
	}
}

func TestConfigSetUnknownKey(t *testing.T) {
	if _, err := runCommand(t, "config", "set", "format", "webm"); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestLoadConfigFlagOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	outputDir, language = "/srv/media", "zh"
	defer func() { outputDir, language = "", "" }()

	cfg := loadConfig()
	if cfg.OutputDir != "/srv/media" || cfg.Language != "zh" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestConfigShowWithoutFile(t *testing.T) {
	out, err := runCommand(t, "config", "show")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Config file not found", "Current configuration:", "Videos"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func stubDoctor(t *testing.T, check deps.Report, install func(context.Context) (deps.Report, error)) {
	t.Helper()
	color.NoColor = true
	origCheck, origInstall := checkDeps, installDeps
	t.Cleanup(func() {
		checkDeps, installDeps = origCheck, origInstall
	})
	checkDeps = func(context.Context) deps.Report { return check }
	installDeps = install
}

func TestDoctorCommand(t *testing.T) {
	ytdlpFound := deps.Tool{Name: "yt-dlp", Path: "/usr/bin/yt-dlp", Version: "2025.01.15", Found: true}
	ffmpegFound := deps.Tool{Name: "ffmpeg", Path: "/usr/bin/ffmpeg", Version: "6.1.1", Found: true}

	tests := []struct {
		name    string
		report  deps.Report
		wantErr bool
		want    []string
	}{
		{
			name:   "all present",
			report: deps.Report{YtDlp: ytdlpFound, FFmpeg: ffmpegFound},
			want:   []string{"✓ yt-dlp", "(2025.01.15)", "✓ ffmpeg", "(6.1.1)"},
		},
		{
			name:   "ffmpeg missing",
			report: deps.Report{YtDlp: ytdlpFound, FFmpeg: deps.Tool{Name: "ffmpeg"}},
			want:   []string{"✓ yt-dlp", "! ffmpeg   not found"},
		},
		{
			name:    "yt-dlp missing",
			report:  deps.Report{YtDlp: deps.Tool{Name: "yt-dlp"}, FFmpeg: deps.Tool{Name: "ffmpeg"}},
			wantErr: true,
			want:    []string{"✗ yt-dlp   not found"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubDoctor(t, tt.report, func(context.Context) (deps.Report, error) {
				t.Fatal("install should not run without --install")
				return deps.Report{}, nil
			})

			out, err := runCommand(t, "doctor")
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v; wantErr %v", err, tt.wantErr)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestDoctorInstallReportsManagedBinaries(t *testing.T) {
	installed := deps.Report{
		YtDlp:  deps.Tool{Name: "yt-dlp", Path: "/cache/go-ytdlp/yt-dlp", Version: "2025.02.19", Found: true, Managed: true},
		FFmpeg: deps.Tool{Name: "ffmpeg", Path: "/cache/go-ytdlp/ffmpeg", Version: "7.1", Found: true, Managed: true},
	}
	// Nothing on PATH: the result must come from the install itself.
	stubDoctor(t, deps.Report{YtDlp: deps.Tool{Name: "yt-dlp"}, FFmpeg: deps.Tool{Name: "ffmpeg"}},
		func(context.Context) (deps.Report, error) { return installed, nil })

	out, err := runCommand(t, "doctor", "--install")
	if err != nil {
		t.Fatalf("doctor --install error: %v\n%s", err, out)
	}
	for _, want := range []string{"Installing yt-dlp and ffmpeg", "✓ yt-dlp", "/cache/go-ytdlp/yt-dlp", "[managed]", "✓ ffmpeg"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "not found") {
		t.Errorf("installed tools reported missing:\n%s", out)
	}
}

func TestDoctorInstallFailure(t *testing.T) {
	stubDoctor(t, deps.Report{}, func(context.Context) (deps.Report, error) {
		return deps.Report{}, errors.New("failed to install yt-dlp: offline")
	})

	if _, err := runCommand(t, "doctor", "--install"); err == nil {
		t.Error("expected install error")
	}
}
