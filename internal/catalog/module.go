package catalog

import (
	"fmt"
	"slices"
)

// Module is a single unit of program content. The engine only needs
// identifiers and phase membership; content lives elsewhere.
type Module struct {
	ID    string
	Phase Phase
	// Ordinal is the module's position within its phase, assigned from
	// declaration order at catalog construction.
	Ordinal int
}

// GetModule returns a module by ID, or an error if not found.
func GetModule(id string) (Module, error) {
	m, ok := c.moduleByID[id]
	if !ok {
		return Module{}, fmt.Errorf("module not found: %q", id)
	}
	return *m, nil
}

// AllModules returns all modules in catalog order.
func AllModules() []Module {
	return slices.Clone(c.modules)
}

// ModulesForPhase returns the ordered module list for a phase.
// An unknown phase yields an empty list.
func ModulesForPhase(p Phase) []Module {
	return slices.Clone(c.modulesByPhase[p])
}

// ModuleIDsForPhase returns just the module IDs for a phase, in order.
func ModuleIDsForPhase(p Phase) []string {
	mods := c.modulesByPhase[p]
	ids := make([]string, len(mods))
	for i, m := range mods {
		ids[i] = m.ID
	}
	return ids
}
