// Package replay drives the scene headlessly from a scripted sequence of
// menu choices, gestures and ticks.
package replay

import (
	"errors"
	"fmt"
	"os"

	"missile-demo/internal/core"

	"gopkg.in/yaml.v3"
)

// Point is a screen position written as [x, y].
type Point [2]float64

func (p Point) screen() core.ScreenPoint { return core.ScreenPoint{X: p[0], Y: p[1]} }

// DragStep presses at the first point, moves through the others and holds
// the last one for Hold ticks before releasing.
type DragStep struct {
	Points []Point `yaml:"points"`
	Hold   int     `yaml:"hold"`
}

// PinchStep moves two fingers from From to To in Frames equal steps.
type PinchStep struct {
	From   [2]Point `yaml:"from"`
	To     [2]Point `yaml:"to"`
	Frames int      `yaml:"frames"`
}

// Step is one script instruction. Exactly one field is set.
type Step struct {
	Menu  *int       `yaml:"menu,omitempty"`
	Drag  *DragStep  `yaml:"drag,omitempty"`
	Pinch *PinchStep `yaml:"pinch,omitempty"`
	Ticks int        `yaml:"ticks,omitempty"`
}

// Script is a replay file.
type Script struct {
	// ReportEvery prints the entity state every that many ticks. Zero
	// reports only at the end.
	ReportEvery int    `yaml:"report_every"`
	Steps       []Step `yaml:"steps"`
}

// LoadScript reads and validates a YAML script.
func LoadScript(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, fmt.Errorf("read script: %w", err)
	}
	return ParseScript(data)
}

// ParseScript decodes and validates a YAML script.
func ParseScript(data []byte) (Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parse script: %w", err)
	}
	return s, s.Validate()
}

// ErrEmptyStep is returned for steps that set no instruction.
var ErrEmptyStep = errors.New("step sets no instruction")

// Validate checks that every step sets exactly one well-formed instruction.
func (s Script) Validate() error {
	if s.ReportEvery < 0 {
		return fmt.Errorf("report_every %d must not be negative", s.ReportEvery)
	}
	for i, st := range s.Steps {
		set := 0
		if st.Menu != nil {
			set++
		}
		if st.Drag != nil {
			set++
			if len(st.Drag.Points) < 2 {
				return fmt.Errorf("step %d: drag needs at least two points", i)
			}
			if st.Drag.Hold < 0 {
				return fmt.Errorf("step %d: hold %d must not be negative", i, st.Drag.Hold)
			}
		}
		if st.Pinch != nil {
			set++
		}
		if st.Ticks != 0 {
			set++
			if st.Ticks < 0 {
				return fmt.Errorf("step %d: ticks %d must be positive", i, st.Ticks)
			}
		}
		switch {
		case set == 0:
			return fmt.Errorf("step %d: %w", i, ErrEmptyStep)
		case set > 1:
			return fmt.Errorf("step %d sets %d instructions", i, set)
		}
	}
	return nil
}
