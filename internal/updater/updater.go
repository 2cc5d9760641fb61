package updater

import (
	"context"
	"fmt"
	"log"
	"runtime"
	"strings"

	"github.com/creativeprojects/go-selfupdate"
	"github.com/iambhvsh/ytdl/internal/core/version"
)

const (
	repoOwner = "iambhvsh"
	repoName  = "ytdl"
)

func newUpdater() (*selfupdate.Updater, error) {
	source, err := selfupdate.NewGitHubSource(selfupdate.GitHubConfig{})
	if err != nil {
		return nil, err
	}
	return selfupdate.NewUpdater(selfupdate.Config{
		Source: source,
	})
}

// currentVersion is the running version without a leading "v".
func currentVersion() string {
	return strings.TrimPrefix(version.Version, "v")
}

// CheckUpdate reports the latest release and whether it is newer than the
// running binary.
func CheckUpdate(ctx context.Context) (*selfupdate.Release, bool, error) {
	updater, err := newUpdater()
	if err != nil {
		return nil, false, err
	}

	latest, found, err := updater.DetectLatest(ctx, selfupdate.NewRepositorySlug(repoOwner, repoName))
	if err != nil {
		return nil, false, fmt.Errorf("failed to check for updates: %w", err)
	}
	if !found {
		return nil, false, nil
	}

	return latest, !latest.LessOrEqual(currentVersion()), nil
}

// Update replaces the running binary with the latest release
func Update(ctx context.Context) error {
	updater, err := newUpdater()
	if err != nil {
		return err
	}

	latest, found, err := updater.DetectLatest(ctx, selfupdate.NewRepositorySlug(repoOwner, repoName))
	if err != nil {
		return fmt.Errorf("failed to check for updates: %w", err)
	}
	if !found {
		return fmt.Errorf("no releases found for %s/%s", repoOwner, repoName)
	}

	if latest.LessOrEqual(currentVersion()) {
		fmt.Printf("Already up to date (v%s)\n", currentVersion())
		return nil
	}

	fmt.Printf("Updating from v%s to %s...\n", currentVersion(), latest.Version())
	log.Printf("[update] %s -> %s (%s)", currentVersion(), latest.Version(), AssetName())

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return fmt.Errorf("failed to get executable path: %w", err)
	}
	if err := updater.UpdateTo(ctx, latest, exe); err != nil {
		return fmt.Errorf("failed to update: %w", err)
	}

	fmt.Printf("Successfully updated to %s\n", latest.Version())
	return nil
}

// AssetName returns the expected release asset name for the current platform
func AssetName() string {
	return fmt.Sprintf("ytdl_%s_%s", runtime.GOOS, runtime.GOARCH)
}
