package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/iambhvsh/ytdl/internal/core/deps"
	"github.com/spf13/cobra"
)

var doctorInstall bool

// swapped in tests
var (
	checkDeps   = deps.Check
	installDeps = deps.InstallAll
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that yt-dlp and ffmpeg are available",
	Long: `Check the external programs ytdl relies on.

yt-dlp is required. ffmpeg is needed to merge video and audio streams and
to convert audio. With --install, managed copies of both are downloaded.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		w := cmd.OutOrStdout()

		var report deps.Report
		if doctorInstall {
			fmt.Fprintln(w, "Installing yt-dlp and ffmpeg...")
			installed, err := installDeps(ctx)
			if err != nil {
				return err
			}
			report = installed
		} else {
			report = checkDeps(ctx)
		}

		printTool(w, report.YtDlp, true)
		printTool(w, report.FFmpeg, false)

		if !report.OK() {
			return fmt.Errorf("yt-dlp is required; run 'ytdl doctor --install' or install it from https://github.com/yt-dlp/yt-dlp")
		}
		return nil
	},
}

func printTool(w io.Writer, tool deps.Tool, required bool) {
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	red := color.New(color.FgRed)

	if tool.Found {
		green.Fprintf(w, "  ✓ %-8s", tool.Name)
		fmt.Fprintf(w, " %s", tool.Path)
		if tool.Version != "" {
			fmt.Fprintf(w, " (%s)", tool.Version)
		}
		if tool.Managed {
			fmt.Fprint(w, " [managed]")
		}
		fmt.Fprintln(w)
		return
	}
	if required {
		red.Fprintf(w, "  ✗ %-8s not found\n", tool.Name)
		return
	}
	yellow.Fprintf(w, "  ! %-8s not found\n", tool.Name)
}

func init() {
	doctorCmd.Flags().BoolVar(&doctorInstall, "install", false, "download managed copies of yt-dlp and ffmpeg")
	rootCmd.AddCommand(doctorCmd)
}
