// Package engine derives the learner's unlock state from two inputs:
// whole days elapsed since program join and the set of completed modules.
// All functions are pure scans over the compiled-in catalog and are cheap
// enough to call on every read.
package engine

import (
	"time"

	"github.com/klareapp/progression/internal/catalog"
)

// stageActive reports whether a stage's gates are satisfied: the learner
// has been enrolled long enough and has completed every required module.
func stageActive(s catalog.Stage, elapsedDays int, completed map[string]bool) bool {
	if elapsedDays < s.RequiredDays {
		return false
	}
	for _, moduleID := range s.RequiredModules {
		if !completed[moduleID] {
			return false
		}
	}
	return true
}

// CurrentStage returns the most advanced active stage. Stages are cumulative
// checkpoints, so the last active stage in catalog order wins, even when a
// gap exists (an inactive stage followed by an active one).
// ok is false when no stage is active.
func CurrentStage(elapsedDays int, completed map[string]bool) (catalog.Stage, bool) {
	var current catalog.Stage
	found := false
	for _, s := range catalog.Stages() {
		if stageActive(s, elapsedDays, completed) {
			current = s
			found = true
		}
	}
	return current, found
}

// NextStage returns the stage immediately following the current one in
// catalog order. When no stage is active it returns the first stage;
// when the current stage is the last, ok is false.
func NextStage(elapsedDays int, completed map[string]bool) (catalog.Stage, bool) {
	stages := catalog.Stages()
	if len(stages) == 0 {
		return catalog.Stage{}, false
	}

	current, ok := CurrentStage(elapsedDays, completed)
	if !ok {
		return stages[0], true
	}
	for i, s := range stages {
		if s.ID == current.ID {
			if i+1 < len(stages) {
				return stages[i+1], true
			}
			return catalog.Stage{}, false
		}
	}
	return catalog.Stage{}, false
}

// AvailableModules returns the IDs of all modules unlocked by any active
// stage, deduplicated, in catalog order. Every active stage contributes its
// unlocks, not just the most advanced one.
func AvailableModules(elapsedDays int, completed map[string]bool) []string {
	var ids []string
	seen := make(map[string]bool)
	for _, s := range catalog.Stages() {
		if !stageActive(s, elapsedDays, completed) {
			continue
		}
		for _, moduleID := range s.UnlocksModules {
			if !seen[moduleID] {
				seen[moduleID] = true
				ids = append(ids, moduleID)
			}
		}
	}
	return ids
}

// AvailableSet returns the available modules as a membership set.
func AvailableSet(elapsedDays int, completed map[string]bool) map[string]bool {
	set := make(map[string]bool)
	for _, id := range AvailableModules(elapsedDays, completed) {
		set[id] = true
	}
	return set
}

// IsModuleAvailable reports whether a single module is currently unlocked.
func IsModuleAvailable(moduleID string, elapsedDays int, completed map[string]bool) bool {
	s, ok := catalog.UnlockingStage(moduleID)
	if !ok {
		return false
	}
	return stageActive(s, elapsedDays, completed)
}

// ModuleUnlockDate returns the earliest date the module's unlocking stage
// can activate: joinDate plus the stage's day gate. Prerequisite modules may
// delay the actual unlock past this date. ok is false when the module is not
// gated by any stage.
func ModuleUnlockDate(moduleID string, joinDate time.Time) (time.Time, bool) {
	days, ok := catalog.EarliestUnlockDay(moduleID)
	if !ok {
		return time.Time{}, false
	}
	return joinDate.AddDate(0, 0, days), true
}

// DaysUntilUnlock returns the whole days remaining until the module's
// earliest unlock date, 0 once the date has passed. ok is false when the
// module is not gated by any stage, distinct from an answer of 0.
func DaysUntilUnlock(moduleID string, joinDate, now time.Time) (int, bool) {
	unlockDate, ok := ModuleUnlockDate(moduleID, joinDate)
	if !ok {
		return 0, false
	}
	if !unlockDate.After(now) {
		return 0, true
	}
	diff := unlockDate.Sub(now)
	days := int(diff / (24 * time.Hour))
	if diff%(24*time.Hour) != 0 {
		days++
	}
	return days, true
}

// PhaseProgress returns the completed fraction of a phase's modules in
// [0, 1]. A phase with no modules (including an unknown phase) yields 0.
func PhaseProgress(phase catalog.Phase, completed map[string]bool) float64 {
	mods := catalog.ModulesForPhase(phase)
	if len(mods) == 0 {
		return 0
	}
	done := 0
	for _, m := range mods {
		if completed[m.ID] {
			done++
		}
	}
	return float64(done) / float64(len(mods))
}

// ElapsedDays returns the whole days between joinDate and now, clamped to 0.
func ElapsedDays(joinDate, now time.Time) int {
	if joinDate.IsZero() || now.Before(joinDate) {
		return 0
	}
	return int(now.Sub(joinDate) / (24 * time.Hour))
}
