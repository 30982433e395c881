// Package ui renders the CLI's styled output: phase completion bars and
// the status summary.
package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/klareapp/progression/internal/catalog"
)

// Bar geometry. The label column fits the longest phase name
// ("Realisierung") with room to spare.
const (
	labelWidth = 14
	barWidth   = 28
)

// PhaseBar renders one phase's module completion as a labeled bar with a
// done/total count. The label is the phase's display name, so callers only
// supply the counts.
type PhaseBar struct {
	Phase catalog.Phase
	Done  int
	Total int
}

// NewPhaseBar builds a bar for the phase, clamping done into [0, total].
func NewPhaseBar(phase catalog.Phase, done, total int) PhaseBar {
	if done < 0 {
		done = 0
	}
	if done > total {
		done = total
	}
	return PhaseBar{Phase: phase, Done: done, Total: total}
}

// View renders the label, fill, and count as a single line.
func (b PhaseBar) View() string {
	label := catalog.PhaseDisplayName(b.Phase)
	if pad := labelWidth - lipgloss.Width(label); pad > 0 {
		label += strings.Repeat(" ", pad)
	}

	filled := 0
	if b.Total > 0 {
		filled = b.Done * barWidth / b.Total
		if b.Done > 0 && filled == 0 {
			// A started phase always shows at least one cell.
			filled = 1
		}
	}

	var sb strings.Builder
	sb.WriteString(Body.Render(label))
	sb.WriteString(Done.Render(strings.Repeat("█", filled)))
	sb.WriteString(Dim.Render(strings.Repeat("░", barWidth-filled)))
	sb.WriteString(Dim.Render(fmt.Sprintf("  %d/%d", b.Done, b.Total)))
	return sb.String()
}
