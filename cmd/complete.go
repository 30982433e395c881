package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/klareapp/progression/internal/app"
)

var completeCmd = &cobra.Command{
	Use:   "complete <module-id>",
	Short: "Mark a module as completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.New(cmd.Context(), resolveDBPath(cmd))
		if err != nil {
			return err
		}
		defer a.Close()

		moduleID := args[0]
		store := a.Progression

		if store.IsModuleCompleted(moduleID) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s is already completed\n", moduleID)
			return nil
		}
		if !store.IsModuleAvailable(moduleID) {
			if days, ok := store.DaysUntilUnlock(moduleID); ok && days > 0 {
				return fmt.Errorf("%s is still locked (unlocks in %d day(s))", moduleID, days)
			}
			return fmt.Errorf("%s is still locked (prerequisites missing)", moduleID)
		}

		if err := store.CompleteModule(cmd.Context(), moduleID); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Completed %s\n", moduleID)
		if stage, ok := store.CurrentStage(); ok {
			fmt.Fprintf(cmd.OutOrStdout(), "Current stage: %d\n", stage.ID)
		}
		return nil
	},
}
