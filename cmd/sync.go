package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/klareapp/progression/internal/app"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Push local progress to the remote backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.New(cmd.Context(), resolveDBPath(cmd))
		if err != nil {
			return err
		}
		defer a.Close()

		if a.Remote == nil {
			return fmt.Errorf("no remote configured: set remote_url in .klare.yaml or KLARE_REMOTE_URL")
		}

		if err := a.Progression.Save(cmd.Context()); err != nil {
			return fmt.Errorf("sync: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Synced")
		return nil
	},
}
