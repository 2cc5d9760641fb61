// Package deps probes the external binaries ytdl relies on: yt-dlp for
// extraction and ffmpeg for merging and audio conversion. ffmpeg is only
// probed; yt-dlp invokes it through its postprocessors.
package deps

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/lrstanley/go-ytdlp"
)

// ErrYtDlpMissing is returned when yt-dlp is neither on PATH, in the managed
// cache, nor installable.
var ErrYtDlpMissing = errors.New("yt-dlp not found")

const versionTimeout = 5 * time.Second

// Tool describes one external binary
type Tool struct {
	Name    string
	Path    string
	Version string
	Found   bool
	Managed bool // installed into go-ytdlp's cache rather than found on PATH
}

// Report is the result of an environment check
type Report struct {
	YtDlp  Tool
	FFmpeg Tool
}

// OK reports whether downloads can run at all.
func (r Report) OK() bool {
	return r.YtDlp.Found
}

// swapped in tests
var (
	lookPath  = exec.LookPath
	runOutput = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return exec.CommandContext(ctx, name, args...).Output()
	}
	// cacheDir is where go-ytdlp keeps the binaries it installs
	cacheDir = func() (string, error) {
		dir, err := os.UserCacheDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "go-ytdlp"), nil
	}
)

// locate finds name on PATH, then among go-ytdlp's managed binaries.
func locate(name string) (path string, managed bool, err error) {
	if path, err := lookPath(name); err == nil {
		return path, false, nil
	}

	dir, err := cacheDir()
	if err != nil {
		return "", false, err
	}
	path = filepath.Join(dir, name)
	if runtime.GOOS == "windows" {
		path += ".exe"
	}
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return path, true, nil
	}
	return "", false, exec.ErrNotFound
}

func probe(ctx context.Context, name string, versionArgs ...string) Tool {
	t := Tool{Name: name}
	path, managed, err := locate(name)
	if err != nil {
		return t
	}
	t.Path = path
	t.Found = true
	t.Managed = managed

	ctx, cancel := context.WithTimeout(ctx, versionTimeout)
	defer cancel()
	out, err := runOutput(ctx, path, versionArgs...)
	if err != nil {
		log.Printf("[deps] %s version probe failed: %v", name, err)
		return t
	}
	t.Version = firstLine(string(out))
	return t
}

// FFmpeg probes ffmpeg on PATH or in the managed cache
func FFmpeg(ctx context.Context) Tool {
	t := probe(ctx, "ffmpeg", "-version")
	t.Version = ffmpegVersion(t.Version)
	return t
}

// "ffmpeg version 6.1.1 Copyright (c) ..." -> "6.1.1"
func ffmpegVersion(line string) string {
	if fields := strings.Fields(line); len(fields) >= 3 && fields[1] == "version" {
		return fields[2]
	}
	return line
}

// FFmpegAvailable checks if ffmpeg is on PATH or was installed by go-ytdlp
func FFmpegAvailable() bool {
	_, _, err := locate("ffmpeg")
	return err == nil
}

// YtDlp probes yt-dlp on PATH or in the managed cache
func YtDlp(ctx context.Context) Tool {
	return probe(ctx, "yt-dlp", "--version")
}

// Check probes every external binary
func Check(ctx context.Context) Report {
	return Report{
		YtDlp:  YtDlp(ctx),
		FFmpeg: FFmpeg(ctx),
	}
}

// EnsureYtDlp returns the yt-dlp on PATH or in the managed cache, or installs
// a managed copy when autoInstall is set.
func EnsureYtDlp(ctx context.Context, autoInstall bool) (Tool, error) {
	t := YtDlp(ctx)
	if t.Found {
		return t, nil
	}
	if !autoInstall {
		return t, ErrYtDlpMissing
	}

	log.Printf("[deps] yt-dlp not on PATH, installing managed copy")
	resolved, err := installYtDlp(ctx)
	if err != nil {
		return t, fmt.Errorf("failed to install yt-dlp: %w", err)
	}
	return managedTool("yt-dlp", resolved), nil
}

// swapped in tests
var (
	installYtDlp = func(ctx context.Context) (*ytdlp.ResolvedInstall, error) {
		return ytdlp.Install(ctx, nil)
	}
	installFFmpeg = func(ctx context.Context) (*ytdlp.ResolvedInstall, error) {
		return ytdlp.InstallFFmpeg(ctx, nil)
	}
	installFFprobe = func(ctx context.Context) (*ytdlp.ResolvedInstall, error) {
		return ytdlp.InstallFFprobe(ctx, nil)
	}
)

// InstallAll fetches managed copies of yt-dlp, ffmpeg and ffprobe and reports
// the installed binaries.
func InstallAll(ctx context.Context) (Report, error) {
	var r Report

	resolved, err := installYtDlp(ctx)
	if err != nil {
		return r, fmt.Errorf("failed to install yt-dlp: %w", err)
	}
	r.YtDlp = managedTool("yt-dlp", resolved)

	resolved, err = installFFmpeg(ctx)
	if err != nil {
		return r, fmt.Errorf("failed to install ffmpeg: %w", err)
	}
	r.FFmpeg = managedTool("ffmpeg", resolved)
	r.FFmpeg.Version = ffmpegVersion(r.FFmpeg.Version)

	if _, err := installFFprobe(ctx); err != nil {
		return r, fmt.Errorf("failed to install ffprobe: %w", err)
	}
	log.Printf("[deps] installed %s and %s", r.YtDlp.Path, r.FFmpeg.Path)
	return r, nil
}

func managedTool(name string, resolved *ytdlp.ResolvedInstall) Tool {
	t := Tool{Name: name, Found: true, Managed: true}
	if resolved != nil {
		t.Path = resolved.Executable
		t.Version = resolved.Version
	}
	return t
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
