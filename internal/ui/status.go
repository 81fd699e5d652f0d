package ui

import (
	"fmt"

	"hashlife/internal/core"
)

type statusProvider interface {
	Status() string
}

// StatusLines describes the running simulation for the side panel.
func StatusLines(sim core.Sim, rate int, paused bool) []string {
	lines := []string{sim.Name()}
	if sp, ok := sim.(statusProvider); ok {
		lines = append(lines, sp.Status())
	}
	state := fmt.Sprintf("%d steps/s", rate)
	if paused {
		state = "paused"
	}
	return append(lines, state, "",
		"space  pause",
		"n      step",
		"+/-    speed",
		"r/s    reset/reseed",
		"h      hide panel",
		"q      quit",
	)
}
