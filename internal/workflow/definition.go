// Package workflow runs the chat pipeline: parse the message, fetch
// weather, generate recommendations and format a reply. Step order and
// dependencies come from a YAML definition.
package workflow

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// StepType classifies a workflow step.
type StepType string

const (
	StepAgentReasoning StepType = "agent_reasoning"
	StepToolCall       StepType = "tool_call"
	StepAgentResponse  StepType = "agent_response"
)

// Known step IDs.
const (
	StepParseUserInput          = "parse_user_input"
	StepGetWeatherData          = "get_weather_data"
	StepGenerateRecommendations = "generate_recommendations"
	StepFormatResponse          = "format_response"
)

var knownSteps = []string{
	StepParseUserInput,
	StepGetWeatherData,
	StepGenerateRecommendations,
	StepFormatResponse,
}

//go:embed workflow.yaml
var defaultDefinition []byte

// StepDefinition describes one step.
type StepDefinition struct {
	ID          string   `yaml:"id"`
	Description string   `yaml:"description"`
	Type        StepType `yaml:"type"`
	DependsOn   string   `yaml:"depends_on,omitempty"`
}

// Definition is an ordered list of steps.
type Definition struct {
	Name  string           `yaml:"name"`
	Steps []StepDefinition `yaml:"steps"`
}

// DefaultDefinition returns the built-in definition.
func DefaultDefinition() (*Definition, error) {
	return ParseDefinition(defaultDefinition)
}

// LoadDefinition reads a definition from path, or the built-in one when path is empty.
func LoadDefinition(path string) (*Definition, error) {
	if path == "" {
		return DefaultDefinition()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("workflow: failed to read definition: %w", err)
	}
	return ParseDefinition(data)
}

// ParseDefinition decodes and validates a YAML definition.
func ParseDefinition(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("workflow: failed to unmarshal definition: %w", err)
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// Validate checks that every known step appears exactly once, types are
// valid and each dependency names an earlier step.
func (d *Definition) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("workflow: definition has no name")
	}

	seen := make(map[string]bool, len(d.Steps))
	for _, s := range d.Steps {
		switch s.Type {
		case StepAgentReasoning, StepToolCall, StepAgentResponse:
		default:
			return fmt.Errorf("workflow: step %q has invalid type %q", s.ID, s.Type)
		}
		if !isKnownStep(s.ID) {
			return fmt.Errorf("workflow: unknown step %q", s.ID)
		}
		if seen[s.ID] {
			return fmt.Errorf("workflow: duplicate step %q", s.ID)
		}
		if s.DependsOn != "" && !seen[s.DependsOn] {
			return fmt.Errorf("workflow: step %q depends on %q which does not run before it", s.ID, s.DependsOn)
		}
		seen[s.ID] = true
	}

	for _, id := range knownSteps {
		if !seen[id] {
			return fmt.Errorf("workflow: missing step %q", id)
		}
	}
	return nil
}

func isKnownStep(id string) bool {
	for _, k := range knownSteps {
		if k == id {
			return true
		}
	}
	return false
}
