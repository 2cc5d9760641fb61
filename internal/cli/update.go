package cli

import (
	"fmt"

	"github.com/iambhvsh/ytdl/internal/updater"
	"github.com/spf13/cobra"
)

var checkOnly bool

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update ytdl to the latest release",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !checkOnly {
			return updater.Update(cmd.Context())
		}

		latest, newer, err := updater.CheckUpdate(cmd.Context())
		if err != nil {
			return err
		}
		if !newer {
			fmt.Fprintln(cmd.OutOrStdout(), "Already up to date")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "ytdl %s is available (%s)\n", latest.Version(), updater.AssetName())
		return nil
	},
}

func init() {
	updateCmd.Flags().BoolVar(&checkOnly, "check", false, "only check for a newer release")
	rootCmd.AddCommand(updateCmd)
}
