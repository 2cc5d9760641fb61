package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fatih/color"
	"github.com/iambhvsh/ytdl/internal/core/config"
	"github.com/iambhvsh/ytdl/internal/core/version"
	"github.com/spf13/cobra"
)

var (
	outputDir string
	language  string
	debug     bool
)

var rootCmd = &cobra.Command{
	Use:   "ytdl [url]",
	Short: "Interactive YouTube video and playlist downloader",
	Long: `ytdl asks for a YouTube URL, shows what it found and offers a few
quality presets. Videos, audio and playlists are saved under separate
folders of the download directory.`,
	Version:       version.Version,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(debug)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		var url string
		if len(args) > 0 {
			url = args[0]
		}
		return runInteractive(cmd.Context(), url)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output", "o", "", "download directory (overrides output_dir)")
	rootCmd.PersistentFlags().StringVarP(&language, "lang", "l", "", "interface language (en, zh)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "write a debug log to the config directory")
}

// Execute runs the root command. Errors are printed here; the returned error
// only signals a non-zero exit.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
		return err
	}
	return nil
}

// loadConfig returns the stored config with command-line overrides applied.
func loadConfig() *config.Config {
	cfg := config.LoadOrDefault()
	if outputDir != "" {
		_ = cfg.Set("output_dir", outputDir)
	}
	if language != "" {
		cfg.Language = language
	}
	return cfg
}

// setupLogging keeps log output away from the terminal UI. With --debug it
// goes to ytdl.log in the config directory.
func setupLogging(enabled bool) error {
	if !enabled {
		log.SetOutput(io.Discard)
		return nil
	}

	path, err := config.LogPath()
	if err != nil {
		return fmt.Errorf("failed to resolve log path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	log.Printf("[ytdl] v%s debug log started", version.Version)
	return nil
}
