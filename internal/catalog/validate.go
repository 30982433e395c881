package catalog

import (
	"fmt"
	"strings"
)

// validateCatalog performs all structural checks on the seed tables.
// Returns a combined error describing all problems found, or nil if valid.
func validateCatalog(modules []Module, stages []Stage) error {
	var errs []string

	moduleSet := make(map[string]bool, len(modules))
	phaseSet := make(map[Phase]bool)

	// Check for duplicate module IDs and invalid phases
	for _, m := range modules {
		if moduleSet[m.ID] {
			errs = append(errs, fmt.Sprintf("duplicate module ID: %q", m.ID))
		}
		moduleSet[m.ID] = true
		if !ValidPhase(m.Phase) {
			errs = append(errs, fmt.Sprintf("module %q has invalid phase %q", m.ID, m.Phase))
		}
		phaseSet[m.Phase] = true
	}

	// Check all declared phases are populated
	for _, p := range AllPhases() {
		if !phaseSet[p] {
			errs = append(errs, fmt.Sprintf("phase %q has no modules", p))
		}
	}

	stageIDSet := make(map[int]bool, len(stages))
	unlockSource := make(map[string]int)
	unlockedSoFar := make(map[string]bool)
	prevDays := 0

	for i, s := range stages {
		// Check for duplicate stage IDs
		if stageIDSet[s.ID] {
			errs = append(errs, fmt.Sprintf("duplicate stage ID: %d", s.ID))
		}
		stageIDSet[s.ID] = true

		if s.Phase != "" && !ValidPhase(s.Phase) {
			errs = append(errs, fmt.Sprintf("stage %d has invalid phase %q", s.ID, s.Phase))
		}
		if s.RequiredDays < 0 {
			errs = append(errs, fmt.Sprintf("stage %d: RequiredDays must be >= 0, got %d", s.ID, s.RequiredDays))
		}

		// Pacing must be non-decreasing in declared order; the engine's
		// last-active-stage scan relies on it.
		if s.RequiredDays < prevDays {
			errs = append(errs, fmt.Sprintf(
				"stage %d: RequiredDays %d decreases from previous stage's %d", s.ID, s.RequiredDays, prevDays))
		}
		prevDays = s.RequiredDays

		// Check for dangling module references
		for _, moduleID := range s.RequiredModules {
			if !moduleSet[moduleID] {
				errs = append(errs, fmt.Sprintf("stage %d requires nonexistent module %q", s.ID, moduleID))
			}
			// A required module must be unlockable by some earlier stage,
			// otherwise the gate can never open.
			if !unlockedSoFar[moduleID] {
				errs = append(errs, fmt.Sprintf("stage %d requires module %q not unlocked by any earlier stage", s.ID, moduleID))
			}
		}
		for _, moduleID := range s.UnlocksModules {
			if !moduleSet[moduleID] {
				errs = append(errs, fmt.Sprintf("stage %d unlocks nonexistent module %q", s.ID, moduleID))
			}
			if prev, taken := unlockSource[moduleID]; taken {
				errs = append(errs, fmt.Sprintf(
					"module %q unlocked by both stage %d and stage %d (unlock source must be unique)", moduleID, prev, s.ID))
			} else {
				unlockSource[moduleID] = s.ID
			}
			unlockedSoFar[moduleID] = true
		}

		// The first stage must be a true entry point
		if i == 0 && (s.RequiredDays != 0 || len(s.RequiredModules) != 0) {
			errs = append(errs, fmt.Sprintf("stage %d: first stage must have no day gate and no prerequisites", s.ID))
		}
	}

	if len(stages) == 0 {
		errs = append(errs, "no stages defined")
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
