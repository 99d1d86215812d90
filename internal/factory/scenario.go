// Package factory decodes scenario and entity-profile JSON (spec §6) and
// builds the corresponding entities in a Registry.
package factory

import (
	"encoding/json"
	"fmt"
	"os"
)

// Scenario is the top-level scenario file: simulation parameters, the
// entities to construct, and which pair forms the tracked engagement.
type Scenario struct {
	Simulation struct {
		DurationS    float64 `json:"duration_s"`
		TimeStepHz   float64 `json:"time_step_hz"`
	} `json:"simulation"`
	Entities []ScenarioEntity `json:"entities"`
	Engagement struct {
		Shooter string `json:"shooter"`
		Target  string `json:"target"`
	} `json:"engagement"`
}

// ScenarioEntity names one entity to construct and the profile file
// describing its components.
type ScenarioEntity struct {
	Name    string `json:"name"`
	Profile string `json:"profile"`
}

// DtSeconds derives the fixed simulation timestep from time_step_hz.
func (s *Scenario) DtSeconds() (float64, error) {
	if s.Simulation.TimeStepHz <= 0 {
		return 0, fmt.Errorf("factory: scenario time_step_hz must be positive, got %v", s.Simulation.TimeStepHz)
	}
	return 1.0 / s.Simulation.TimeStepHz, nil
}

// LoadScenario reads and decodes a scenario file from disk.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("factory: read scenario %q: %w", path, err)
	}
	var s Scenario
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("factory: decode scenario %q: %w", path, err)
	}
	if len(s.Entities) == 0 {
		return nil, fmt.Errorf("factory: scenario %q declares no entities", path)
	}
	return &s, nil
}
