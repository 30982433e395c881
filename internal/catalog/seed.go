package catalog

import "fmt"

func init() {
	modules := seedModules()
	stages := seedStages()
	if err := validateCatalog(modules, stages); err != nil {
		panic(fmt.Sprintf("invalid catalog seed: %v", err))
	}
	c = buildCatalog(modules, stages)
}

// seedModules returns the full module catalog.
// Declaration order within a phase is the phase's canonical module order.
func seedModules() []Module {
	return []Module{
		// K: Klarheit
		{ID: "k-intro", Phase: PhaseK},
		{ID: "k-theory", Phase: PhaseK},
		{ID: "k-lifewheel", Phase: PhaseK},
		{ID: "k-reflection", Phase: PhaseK},
		{ID: "k-incongruence", Phase: PhaseK},
		{ID: "k-meta-model", Phase: PhaseK},
		{ID: "k-clarity", Phase: PhaseK},

		// L: Lebendigkeit
		{ID: "l-intro", Phase: PhaseL},
		{ID: "l-theory", Phase: PhaseL},
		{ID: "l-resource-finder", Phase: PhaseL},
		{ID: "l-vitality-moments", Phase: PhaseL},
		{ID: "l-energy-blockers", Phase: PhaseL},
		{ID: "l-embodiment", Phase: PhaseL},

		// A: Ausrichtung
		{ID: "a-intro", Phase: PhaseA},
		{ID: "a-theory", Phase: PhaseA},
		{ID: "a-values-hierarchy", Phase: PhaseA},
		{ID: "a-life-vision", Phase: PhaseA},
		{ID: "a-decision-alignment", Phase: PhaseA},
		{ID: "a-integration-check", Phase: PhaseA},

		// R: Realisierung
		{ID: "r-intro", Phase: PhaseR},
		{ID: "r-theory", Phase: PhaseR},
		{ID: "r-habit-builder", Phase: PhaseR},
		{ID: "r-micro-steps", Phase: PhaseR},
		{ID: "r-environment-design", Phase: PhaseR},
		{ID: "r-accountability", Phase: PhaseR},

		// E: Entfaltung
		{ID: "e-intro", Phase: PhaseE},
		{ID: "e-theory", Phase: PhaseE},
		{ID: "e-integration-practice", Phase: PhaseE},
		{ID: "e-effortless-manifestation", Phase: PhaseE},
		{ID: "e-congruence-check", Phase: PhaseE},
		{ID: "e-sharing-wisdom", Phase: PhaseE},
	}
}

// seedStages returns the stage table in pacing order.
// RequiredDays is non-decreasing across the table; the validator enforces it.
func seedStages() []Stage {
	return []Stage{
		{ID: 1, RequiredDays: 0, RequiredModules: nil,
			UnlocksModules: []string{"k-intro", "k-theory", "k-lifewheel"}, Phase: PhaseK},
		{ID: 2, RequiredDays: 5, RequiredModules: []string{"k-intro"},
			UnlocksModules: []string{"k-reflection", "k-incongruence"}, Phase: PhaseK},
		{ID: 3, RequiredDays: 12, RequiredModules: []string{"k-reflection"},
			UnlocksModules: []string{"k-meta-model", "k-clarity"}, Phase: PhaseK},

		{ID: 4, RequiredDays: 21, RequiredModules: []string{"k-meta-model", "k-clarity"},
			UnlocksModules: []string{"l-intro", "l-theory", "l-resource-finder"}, Phase: PhaseL},
		{ID: 5, RequiredDays: 28, RequiredModules: []string{"l-intro"},
			UnlocksModules: []string{"l-vitality-moments", "l-energy-blockers"}, Phase: PhaseL},
		{ID: 6, RequiredDays: 35, RequiredModules: []string{"l-resource-finder"},
			UnlocksModules: []string{"l-embodiment"}, Phase: PhaseL},

		{ID: 7, RequiredDays: 42, RequiredModules: []string{"l-embodiment"},
			UnlocksModules: []string{"a-intro", "a-theory", "a-values-hierarchy"}, Phase: PhaseA},
		{ID: 8, RequiredDays: 49, RequiredModules: []string{"a-values-hierarchy"},
			UnlocksModules: []string{"a-life-vision", "a-decision-alignment"}, Phase: PhaseA},
		{ID: 9, RequiredDays: 56, RequiredModules: []string{"a-life-vision"},
			UnlocksModules: []string{"a-integration-check"}, Phase: PhaseA},

		{ID: 10, RequiredDays: 63, RequiredModules: []string{"a-integration-check"},
			UnlocksModules: []string{"r-intro", "r-theory", "r-habit-builder"}, Phase: PhaseR},
		{ID: 11, RequiredDays: 70, RequiredModules: []string{"r-habit-builder"},
			UnlocksModules: []string{"r-micro-steps", "r-environment-design"}, Phase: PhaseR},
		{ID: 12, RequiredDays: 77, RequiredModules: []string{"r-micro-steps"},
			UnlocksModules: []string{"r-accountability"}, Phase: PhaseR},

		{ID: 13, RequiredDays: 84, RequiredModules: []string{"r-accountability"},
			UnlocksModules: []string{"e-intro", "e-theory", "e-integration-practice"}, Phase: PhaseE},
		{ID: 14, RequiredDays: 91, RequiredModules: []string{"e-integration-practice"},
			UnlocksModules: []string{"e-effortless-manifestation", "e-congruence-check"}, Phase: PhaseE},
		{ID: 15, RequiredDays: 98, RequiredModules: []string{"e-congruence-check"},
			UnlocksModules: []string{"e-sharing-wisdom"}, Phase: PhaseE},
	}
}
