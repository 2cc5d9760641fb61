package cli

import (
	"errors"
	"fmt"

	"github.com/iambhvsh/ytdl/internal/core/config"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create ytdl config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Loads the existing config as defaults if present
		cfg, err := config.RunInitWizard()
		if errors.Is(err, config.ErrWizardCancelled) {
			fmt.Fprintln(cmd.OutOrStdout(), "Configuration not saved.")
			return nil
		}
		if err != nil {
			return err
		}

		if err := config.Save(cfg); err != nil {
			return err
		}
		if _, err := cfg.EnsureDirs(); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "\nSaved %s\n", config.SavePath())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
