package ui

import (
	"fmt"

	"missile-demo/internal/core"
)

// StatusLines describes the scene state shown next to the menu. Entities
// that expose parameters get their values listed too.
func StatusLines(mode core.DragMode, kind core.EntityKind, zoom float64, e core.Entity) []string {
	lines := []string{
		fmt.Sprintf("drag: %s", mode),
		fmt.Sprintf("entity: %s", kind),
		fmt.Sprintf("zoom: %.2f", zoom),
	}
	if e == nil {
		return lines
	}
	lines = append(lines, fmt.Sprintf("command: %s", e.Command()))
	provider, ok := e.(core.ParameterProvider)
	if !ok {
		return lines
	}
	for _, group := range provider.Parameters().Groups {
		lines = append(lines, "", group.Name)
		for _, p := range group.Params {
			lines = append(lines, fmt.Sprintf("  %s: %s", p.Label, p.Value))
		}
	}
	return lines
}
