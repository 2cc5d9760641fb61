package cli

import (
	"fmt"

	"github.com/iambhvsh/ytdl/internal/core/config"
	"github.com/iambhvsh/ytdl/internal/core/i18n"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage ytdl configuration",
}

// ytdl config show
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		dirs := cfg.Dirs()
		w := cmd.OutOrStdout()

		if !config.Exists() {
			t := i18n.T(cfg.Language)
			fmt.Fprintf(w, "%s: %s (run 'ytdl init')\n\n", t.Errors.ConfigNotFound, config.SavePath())
		}
		fmt.Fprintln(w, "Current configuration:")
		fmt.Fprintf(w, "  Language:         %s (%s)\n", cfg.Language, i18n.LanguageName(cfg.Language))
		fmt.Fprintf(w, "  OutputDir:        %s\n", dirs.Base)
		fmt.Fprintf(w, "  Quality:          %s\n", cfg.Quality)
		fmt.Fprintf(w, "  PlaylistQuality:  %s\n", cfg.PlaylistQuality)
		fmt.Fprintf(w, "  AudioFormat:      %s (%s kbps)\n", cfg.AudioFormat, cfg.AudioQuality)
		fmt.Fprintf(w, "  MergeFormat:      %s\n", cfg.MergeFormat)
		fmt.Fprintf(w, "  AutoInstall:      %v\n", cfg.AutoInstall)
		fmt.Fprintf(w, "  Config:           %s\n", config.SavePath())

		fmt.Fprintln(w, "\nFolders:")
		fmt.Fprintf(w, "  %s\n  %s\n  %s\n", dirs.Videos, dirs.Audios, dirs.Playlists)
	},
}

// ytdl config path
var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show config file path",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), config.SavePath())
	},
}

// ytdl config set KEY VALUE
var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in config.yml.

Supported keys:
  language           Language code (en, zh)
  output_dir         Download directory
  quality            Default preset for videos (best, medium, low, audio)
  playlist_quality   Default preset for playlists
  audio_format       Audio codec for audio downloads (mp3, m4a, opus, flac)
  audio_quality      Audio bitrate in kbps (e.g. 192)
  merge_format       Container for merged video (mp4, mkv, webm)
  auto_install       Fetch yt-dlp automatically when missing (true, false)

Examples:
  ytdl config set language zh
  ytdl config set output_dir ~/Videos/ytdl
  ytdl config set playlist_quality audio`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		cfg := config.LoadOrDefault()
		if err := cfg.Set(key, value); err != nil {
			return err
		}
		if err := config.Save(cfg); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
