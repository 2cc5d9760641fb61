package deps

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/lrstanley/go-ytdlp"
)

func stubEnv(t *testing.T, present map[string]string) {
	t.Helper()
	origLook, origRun, origCache := lookPath, runOutput, cacheDir
	t.Cleanup(func() {
		lookPath, runOutput, cacheDir = origLook, origRun, origCache
	})

	emptyCache := t.TempDir()
	cacheDir = func() (string, error) { return emptyCache, nil }

	lookPath = func(name string) (string, error) {
		if _, ok := present[name]; ok {
			return "/usr/bin/" + name, nil
		}
		return "", exec.ErrNotFound
	}
	runOutput = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		for tool, out := range present {
			if name == "/usr/bin/"+tool {
				return []byte(out), nil
			}
		}
		return nil, errors.New("unexpected binary " + name)
	}
}

func TestCheckAllPresent(t *testing.T) {
	stubEnv(t, map[string]string{
		"yt-dlp": "2025.01.15\n",
		"ffmpeg": "ffmpeg version 6.1.1 Copyright (c) 2000-2023 the FFmpeg developers\nbuilt with gcc\n",
	})

	r := Check(context.Background())
	if !r.OK() {
		t.Fatal("report should be OK")
	}
	if r.YtDlp.Version != "2025.01.15" {
		t.Errorf("yt-dlp version = %q", r.YtDlp.Version)
	}
	if !r.FFmpeg.Found || r.FFmpeg.Version != "6.1.1" {
		t.Errorf("ffmpeg = %+v", r.FFmpeg)
	}
	if !FFmpegAvailable() {
		t.Error("FFmpegAvailable() = false")
	}
}

func TestCheckFFmpegMissing(t *testing.T) {
	stubEnv(t, map[string]string{"yt-dlp": "2025.01.15"})

	r := Check(context.Background())
	if !r.OK() {
		t.Error("missing ffmpeg must not block downloads")
	}
	if r.FFmpeg.Found {
		t.Error("ffmpeg reported as found")
	}
	if FFmpegAvailable() {
		t.Error("FFmpegAvailable() = true")
	}
}

func TestEnsureYtDlpWithoutAutoInstall(t *testing.T) {
	stubEnv(t, map[string]string{})

	_, err := EnsureYtDlp(context.Background(), false)
	if !errors.Is(err, ErrYtDlpMissing) {
		t.Errorf("err = %v; want ErrYtDlpMissing", err)
	}
}

func TestEnsureYtDlpOnPath(t *testing.T) {
	stubEnv(t, map[string]string{"yt-dlp": "2025.01.15"})

	tool, err := EnsureYtDlp(context.Background(), true)
	if err != nil {
		t.Fatal(err)
	}
	if tool.Managed || tool.Path != "/usr/bin/yt-dlp" {
		t.Errorf("tool = %+v", tool)
	}
}

// writeManaged places a fake binary in a temporary go-ytdlp cache.
func writeManaged(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		if runtime.GOOS == "windows" {
			name += ".exe"
		}
		if err := os.WriteFile(filepath.Join(dir, name), []byte("#!/bin/sh\n"), 0755); err != nil {
			t.Fatal(err)
		}
	}
	cacheDir = func() (string, error) { return dir, nil }
	return dir
}

func TestCheckFindsManagedBinaries(t *testing.T) {
	stubEnv(t, map[string]string{})
	dir := writeManaged(t, "yt-dlp", "ffmpeg")
	runOutput = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		switch filepath.Base(name) {
		case "yt-dlp", "yt-dlp.exe":
			return []byte("2025.02.19\n"), nil
		case "ffmpeg", "ffmpeg.exe":
			return []byte("ffmpeg version 7.1 Copyright (c) 2000-2024\n"), nil
		}
		return nil, errors.New("unexpected binary " + name)
	}

	r := Check(context.Background())
	if !r.OK() {
		t.Fatal("managed yt-dlp should satisfy the check")
	}
	if !r.YtDlp.Managed || filepath.Dir(r.YtDlp.Path) != dir || r.YtDlp.Version != "2025.02.19" {
		t.Errorf("yt-dlp = %+v", r.YtDlp)
	}
	if !r.FFmpeg.Managed || r.FFmpeg.Version != "7.1" {
		t.Errorf("ffmpeg = %+v", r.FFmpeg)
	}
	if !FFmpegAvailable() {
		t.Error("FFmpegAvailable() = false with a managed ffmpeg")
	}
}

func TestCheckPrefersPath(t *testing.T) {
	stubEnv(t, map[string]string{"yt-dlp": "2025.01.15"})
	writeManaged(t, "yt-dlp")

	r := Check(context.Background())
	if r.YtDlp.Managed || r.YtDlp.Path != "/usr/bin/yt-dlp" {
		t.Errorf("yt-dlp = %+v; want the PATH copy", r.YtDlp)
	}
}

func stubInstall(t *testing.T, fail string) {
	t.Helper()
	origY, origF, origP := installYtDlp, installFFmpeg, installFFprobe
	t.Cleanup(func() {
		installYtDlp, installFFmpeg, installFFprobe = origY, origF, origP
	})

	fake := func(name, version string) func(context.Context) (*ytdlp.ResolvedInstall, error) {
		return func(context.Context) (*ytdlp.ResolvedInstall, error) {
			if name == fail {
				return nil, errors.New("download failed")
			}
			return &ytdlp.ResolvedInstall{Executable: "/cache/go-ytdlp/" + name, Version: version}, nil
		}
	}
	installYtDlp = fake("yt-dlp", "2025.02.19")
	installFFmpeg = fake("ffmpeg", "ffmpeg version 7.1 Copyright (c) 2000-2024")
	installFFprobe = fake("ffprobe", "7.1")
}

func TestInstallAll(t *testing.T) {
	stubInstall(t, "")

	r, err := InstallAll(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !r.OK() || !r.YtDlp.Managed || r.YtDlp.Path != "/cache/go-ytdlp/yt-dlp" {
		t.Errorf("yt-dlp = %+v", r.YtDlp)
	}
	if !r.FFmpeg.Found || r.FFmpeg.Version != "7.1" {
		t.Errorf("ffmpeg = %+v", r.FFmpeg)
	}
}

func TestInstallAllFailure(t *testing.T) {
	stubInstall(t, "ffmpeg")

	if _, err := InstallAll(context.Background()); err == nil {
		t.Error("expected ffmpeg install error")
	}
}

func TestEnsureYtDlpInstallsManaged(t *testing.T) {
	stubEnv(t, map[string]string{})
	stubInstall(t, "")

	tool, err := EnsureYtDlp(context.Background(), true)
	if err != nil {
		t.Fatal(err)
	}
	if !tool.Managed || tool.Version != "2025.02.19" {
		t.Errorf("tool = %+v", tool)
	}
}

func TestFirstLine(t *testing.T) {
	if got := firstLine("  a\nb\n"); got != "a" {
		t.Errorf("firstLine = %q", got)
	}
	if got := firstLine(""); got != "" {
		t.Errorf("firstLine(empty) = %q", got)
	}
}
