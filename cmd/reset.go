package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/klareapp/progression/internal/app"
)

var resetAll bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restart the program clock (or wipe all data with --all)",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.New(cmd.Context(), resolveDBPath(cmd))
		if err != nil {
			return err
		}
		defer a.Close()

		if resetAll {
			if err := a.Progression.Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "All progression data cleared")
			return nil
		}

		a.Progression.ResetJoinDate(cmd.Context())
		fmt.Fprintln(cmd.OutOrStdout(), "Program restarted: today is day 0")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVar(&resetAll, "all", false, "Also clear completed modules and local data")
}
