package catalog

// Phase represents one of the five KLARE program phases.
type Phase string

const (
	PhaseK Phase = "K" // Klarheit: clarity about the current situation
	PhaseL Phase = "L" // Lebendigkeit: reconnecting with natural vitality
	PhaseA Phase = "A" // Ausrichtung: alignment of values and life vision
	PhaseR Phase = "R" // Realisierung: realization through daily practice
	PhaseE Phase = "E" // Entfaltung: effortless expansion
)

// AllPhases returns all phases in program order.
func AllPhases() []Phase {
	return []Phase{PhaseK, PhaseL, PhaseA, PhaseR, PhaseE}
}

// PhaseDisplayName returns a human-readable name for a phase.
func PhaseDisplayName(p Phase) string {
	switch p {
	case PhaseK:
		return "Klarheit"
	case PhaseL:
		return "Lebendigkeit"
	case PhaseA:
		return "Ausrichtung"
	case PhaseR:
		return "Realisierung"
	case PhaseE:
		return "Entfaltung"
	default:
		return string(p)
	}
}

// ValidPhase reports whether p is one of the five program phases.
func ValidPhase(p Phase) bool {
	switch p {
	case PhaseK, PhaseL, PhaseA, PhaseR, PhaseE:
		return true
	}
	return false
}
