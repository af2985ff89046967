package ui

import (
	"fmt"
	"math"
	"strconv"

	"splitstep/internal/core"
)

// Control is an adjustable float parameter shown in the HUD with -/+ buttons.
type Control struct {
	Key    string
	Label  string
	Step   float64
	Min    float64
	Max    float64
	HasMin bool
	HasMax bool
}

// DefaultControls are the knobs worth turning while watching a run: the
// growth rate moves the field across the transition, diffusion changes the
// correlation length.
func DefaultControls() []Control {
	return []Control{
		{Key: "a", Label: "Growth a", Step: 0.01},
		{Key: "d", Label: "Diffusion D", Step: 0.05, HasMin: true},
		{Key: "b", Label: "Decay b", Step: 0.1, HasMin: true},
	}
}

// adjust returns value moved one step in direction, clamped to the control's
// bounds, and whether it changed.
func (c Control) adjust(value float64, direction int) (float64, bool) {
	step := c.Step
	if step <= 0 {
		step = 0.05
	}
	target := value + float64(direction)*step
	if c.HasMin && target < c.Min {
		target = c.Min
	}
	if c.HasMax && target > c.Max {
		target = c.Max
	}
	target = math.Round(target/step) * step
	if math.Abs(target-value) < 1e-12 {
		return value, false
	}
	return target, true
}

func (c Control) format(value float64) string {
	precision := 1
	switch {
	case c.Step < 0.001:
		precision = 4
	case c.Step < 0.01:
		precision = 3
	case c.Step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}

// PanelLines renders a parameter snapshot as "label  value" lines, one
// header line per group.
func PanelLines(s core.ParameterSnapshot) []string {
	var lines []string
	for _, g := range s.Groups {
		header := g.Name
		if g.Summary != "" {
			header += " (" + g.Summary + ")"
		}
		lines = append(lines, header)
		for _, p := range g.Params {
			lines = append(lines, fmt.Sprintf("  %-18s %s", p.Label, p.Value))
		}
	}
	return lines
}

// Status is what the overlay reports about the running simulation.
type Status struct {
	Iteration int
	Time      float64
	Density   float64
	Paused    bool
	Absorbed  bool
}

// String formats the status line.
func (s Status) String() string {
	line := fmt.Sprintf("t=%-10g density=%.6g  iter=%d", s.Time, s.Density, s.Iteration)
	switch {
	case s.Absorbed:
		line += "  [absorbed]"
	case s.Paused:
		line += "  [paused]"
	}
	return line
}
