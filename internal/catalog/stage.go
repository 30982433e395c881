package catalog

import (
	"fmt"
	"slices"
)

// Stage is a declarative checkpoint in the program pacing: once the learner
// has been enrolled for RequiredDays and completed every module in
// RequiredModules, the stage is active and its UnlocksModules become
// available. Stages are cumulative: activating a later stage never
// deactivates an earlier one.
type Stage struct {
	ID              int
	RequiredDays    int
	RequiredModules []string
	UnlocksModules  []string
	Phase           Phase
}

// catalog holds the compiled-in module and stage tables with indices.
type catalog struct {
	modules        []Module
	moduleByID     map[string]*Module
	modulesByPhase map[Phase][]Module

	stages        []Stage
	stageByID     map[int]*Stage
	stagesByPhase map[Phase][]Stage
	// unlockedBy maps a module ID to the stage that unlocks it.
	// The validator guarantees at most one unlock source per module.
	unlockedBy map[string]*Stage
}

// c is the package-level catalog, set by init() in seed.go.
var c *catalog

// buildCatalog constructs the indexed catalog from the seed tables.
func buildCatalog(modules []Module, stages []Stage) *catalog {
	ct := &catalog{
		modules:        modules,
		moduleByID:     make(map[string]*Module, len(modules)),
		modulesByPhase: make(map[Phase][]Module),
		stages:         stages,
		stageByID:      make(map[int]*Stage, len(stages)),
		stagesByPhase:  make(map[Phase][]Stage),
		unlockedBy:     make(map[string]*Stage),
	}

	ordinals := make(map[Phase]int)
	for i := range ct.modules {
		m := &ct.modules[i]
		m.Ordinal = ordinals[m.Phase]
		ordinals[m.Phase]++
		ct.moduleByID[m.ID] = m
		ct.modulesByPhase[m.Phase] = append(ct.modulesByPhase[m.Phase], *m)
	}

	for i := range ct.stages {
		s := &ct.stages[i]
		ct.stageByID[s.ID] = s
		ct.stagesByPhase[s.Phase] = append(ct.stagesByPhase[s.Phase], *s)
		for _, moduleID := range s.UnlocksModules {
			if _, taken := ct.unlockedBy[moduleID]; !taken {
				ct.unlockedBy[moduleID] = s
			}
		}
	}

	return ct
}

// Stages returns all stages in catalog (pacing) order.
func Stages() []Stage {
	return slices.Clone(c.stages)
}

// GetStage returns a stage by ID, or an error if not found.
func GetStage(id int) (Stage, error) {
	s, ok := c.stageByID[id]
	if !ok {
		return Stage{}, fmt.Errorf("stage not found: %d", id)
	}
	return *s, nil
}

// StagesForPhase returns the ordered stages tagged with the given phase.
// An unknown phase yields an empty list.
func StagesForPhase(p Phase) []Stage {
	return slices.Clone(c.stagesByPhase[p])
}

// EarliestUnlockDay returns the day offset at which the stage unlocking
// moduleID can first activate. ok is false when no stage unlocks the module.
func EarliestUnlockDay(moduleID string) (int, bool) {
	s, ok := c.unlockedBy[moduleID]
	if !ok {
		return 0, false
	}
	return s.RequiredDays, true
}

// UnlockingStage returns the stage whose UnlocksModules contains moduleID.
func UnlockingStage(moduleID string) (Stage, bool) {
	s, ok := c.unlockedBy[moduleID]
	if !ok {
		return Stage{}, false
	}
	return *s, true
}

// StageUnlocksModule reports whether the given stage unlocks the module.
func StageUnlocksModule(moduleID string, stageID int) bool {
	s, ok := c.stageByID[stageID]
	if !ok {
		return false
	}
	return slices.Contains(s.UnlocksModules, moduleID)
}

// Validate checks the seed catalog for structural issues.
func Validate() error {
	return validateCatalog(c.modules, c.stages)
}
