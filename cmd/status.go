package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/klareapp/progression/internal/app"
	"github.com/klareapp/progression/internal/catalog"
	"github.com/klareapp/progression/internal/progression"
	"github.com/klareapp/progression/internal/ui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show program progress and unlocked modules",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStatus(cmd)
	},
}

func runStatus(cmd *cobra.Command) error {
	a, err := app.New(cmd.Context(), resolveDBPath(cmd))
	if err != nil {
		return err
	}
	defer a.Close()

	store := a.Progression
	var b strings.Builder

	b.WriteString(ui.Title.Render("KLARE program") + "\n\n")

	if _, ok := store.JoinDate(); !ok {
		b.WriteString(ui.Dim.Render("Not started yet. Run 'klare reset' to begin the program.") + "\n")
		fmt.Fprint(cmd.OutOrStdout(), b.String())
		return nil
	}

	b.WriteString(fmt.Sprintf("Day %d of the program\n", store.DaysInProgram()))

	if stage, ok := store.CurrentStage(); ok {
		b.WriteString(fmt.Sprintf("Current stage: %d (%s)\n", stage.ID, catalog.PhaseDisplayName(stage.Phase)))
	} else {
		b.WriteString("Current stage: none\n")
	}
	if next, ok := store.NextStage(); ok {
		b.WriteString(fmt.Sprintf("Next stage: %d, from day %d", next.ID, next.RequiredDays))
		if len(next.RequiredModules) > 0 {
			b.WriteString(ui.Dim.Render(fmt.Sprintf(" (requires %s)", strings.Join(next.RequiredModules, ", "))))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for _, phase := range catalog.AllPhases() {
		mods := catalog.ModulesForPhase(phase)
		done := 0
		for _, m := range mods {
			if store.IsModuleCompleted(m.ID) {
				done++
			}
		}
		b.WriteString(ui.NewPhaseBar(phase, done, len(mods)).View() + "\n")
	}
	b.WriteString("\n")

	b.WriteString(ui.Body.Render("Unlocked modules:") + "\n")
	for _, id := range store.AvailableModules() {
		if store.IsModuleCompleted(id) {
			b.WriteString("  " + ui.Done.Render("✓ "+id) + "\n")
		} else {
			b.WriteString("  " + ui.Body.Render("• "+id) + "\n")
		}
	}

	locked := lockedModulesWithCountdown(store)
	if len(locked) > 0 {
		b.WriteString("\n" + ui.Dim.Render("Coming up:") + "\n")
		for _, line := range locked {
			b.WriteString("  " + ui.Locked.Render(line) + "\n")
		}
	}

	fmt.Fprint(cmd.OutOrStdout(), b.String())
	return nil
}

// lockedModulesWithCountdown lists the next few locked modules with the
// days until their stage's day gate opens.
func lockedModulesWithCountdown(store *progression.Store) []string {
	var lines []string
	for _, m := range catalog.AllModules() {
		if store.IsModuleAvailable(m.ID) {
			continue
		}
		days, ok := store.DaysUntilUnlock(m.ID)
		if !ok {
			continue
		}
		if days == 0 {
			lines = append(lines, fmt.Sprintf("%s (waiting on prerequisites)", m.ID))
		} else {
			lines = append(lines, fmt.Sprintf("%s (in %d days)", m.ID, days))
		}
		if len(lines) == 5 {
			break
		}
	}
	return lines
}
