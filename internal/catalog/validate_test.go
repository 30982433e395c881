package catalog

import (
	"strings"
	"testing"
)

func testModules() []Module {
	return []Module{
		{ID: "k-a", Phase: PhaseK},
		{ID: "k-b", Phase: PhaseK},
		{ID: "l-a", Phase: PhaseL},
		{ID: "a-a", Phase: PhaseA},
		{ID: "r-a", Phase: PhaseR},
		{ID: "e-a", Phase: PhaseE},
	}
}

func testStages() []Stage {
	return []Stage{
		{ID: 1, RequiredDays: 0, UnlocksModules: []string{"k-a"}, Phase: PhaseK},
		{ID: 2, RequiredDays: 7, RequiredModules: []string{"k-a"},
			UnlocksModules: []string{"k-b", "l-a", "a-a", "r-a", "e-a"}, Phase: PhaseL},
	}
}

func TestValidate_SeedCatalogPasses(t *testing.T) {
	if err := Validate(); err != nil {
		t.Fatalf("seed catalog validation failed: %v", err)
	}
}

func TestValidateCatalog_DetectsDuplicateModuleID(t *testing.T) {
	mods := append(testModules(), Module{ID: "k-a", Phase: PhaseK})
	err := validateCatalog(mods, testStages())
	if err == nil {
		t.Fatal("expected error for duplicate module ID, got nil")
	}
	if !strings.Contains(err.Error(), "duplicate module") {
		t.Errorf("error should mention duplicate module, got: %v", err)
	}
}

func TestValidateCatalog_DetectsDanglingUnlock(t *testing.T) {
	stages := testStages()
	stages[1].UnlocksModules = append(stages[1].UnlocksModules, "nonexistent")
	err := validateCatalog(testModules(), stages)
	if err == nil {
		t.Fatal("expected error for dangling unlock, got nil")
	}
	if !strings.Contains(err.Error(), "nonexistent") {
		t.Errorf("error should mention the missing ID, got: %v", err)
	}
}

func TestValidateCatalog_DetectsDecreasingDays(t *testing.T) {
	stages := []Stage{
		{ID: 1, RequiredDays: 0, UnlocksModules: []string{"k-a"}, Phase: PhaseK},
		{ID: 2, RequiredDays: 7, RequiredModules: []string{"k-a"},
			UnlocksModules: []string{"k-b", "l-a", "a-a", "r-a"}, Phase: PhaseL},
		{ID: 3, RequiredDays: 3, RequiredModules: []string{"k-b"},
			UnlocksModules: []string{"e-a"}, Phase: PhaseE},
	}
	err := validateCatalog(testModules(), stages)
	if err == nil {
		t.Fatal("expected error for decreasing RequiredDays, got nil")
	}
	if !strings.Contains(err.Error(), "decreases") {
		t.Errorf("error should mention decreasing days, got: %v", err)
	}
}

func TestValidateCatalog_DetectsDuplicateUnlockSource(t *testing.T) {
	stages := testStages()
	stages[1].UnlocksModules = append(stages[1].UnlocksModules, "k-a")
	err := validateCatalog(testModules(), stages)
	if err == nil {
		t.Fatal("expected error for duplicate unlock source, got nil")
	}
	if !strings.Contains(err.Error(), "unlock source") {
		t.Errorf("error should mention unlock source, got: %v", err)
	}
}

func TestValidateCatalog_RequiredModuleMustBeUnlockedEarlier(t *testing.T) {
	stages := testStages()
	stages[1].RequiredModules = []string{"k-b"} // k-b is only unlocked by stage 2 itself
	err := validateCatalog(testModules(), stages)
	if err == nil {
		t.Fatal("expected error for unreachable prerequisite, got nil")
	}
	if !strings.Contains(err.Error(), "not unlocked by any earlier stage") {
		t.Errorf("error should mention the unreachable gate, got: %v", err)
	}
}

func TestValidateCatalog_FirstStageMustBeOpen(t *testing.T) {
	stages := testStages()
	stages[0].RequiredDays = 3
	err := validateCatalog(testModules(), stages)
	if err == nil {
		t.Fatal("expected error for gated first stage, got nil")
	}
	if !strings.Contains(err.Error(), "first stage") {
		t.Errorf("error should mention first stage, got: %v", err)
	}
}

func TestValidateCatalog_AllPhasesPopulated(t *testing.T) {
	mods := testModules()[:2] // K only
	err := validateCatalog(mods, []Stage{
		{ID: 1, RequiredDays: 0, UnlocksModules: []string{"k-a", "k-b"}, Phase: PhaseK},
	})
	if err == nil {
		t.Fatal("expected error for missing phases, got nil")
	}
	if !strings.Contains(err.Error(), "has no modules") {
		t.Errorf("error should mention empty phase, got: %v", err)
	}
}
