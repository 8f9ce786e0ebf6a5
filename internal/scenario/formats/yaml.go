// Package formats provides pluggable scenario file format parsers.
package formats

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrNoGrid indicates a scenario file without a grid.
var ErrNoGrid = errors.New("formats: scenario has no grid")

// YAMLScenario represents the YAML structure for a scenario file.
type YAMLScenario struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Grid     string            `yaml:"grid"`
	Expected *YAMLExpected     `yaml:"expected,omitempty"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// YAMLExpected holds known answers for regression checks.
type YAMLExpected struct {
	Visited int `yaml:"visited"`
	Loops   int `yaml:"loops"`
}

// Expected holds known answers for a scenario.
type Expected struct {
	Visited int
	Loops   int
}

// Scenario represents a parsed scenario file ready for use.
// The grid is kept as text; turning it into a map is the caller's job.
type Scenario struct {
	ID       string
	Name     string
	Grid     string
	Expected *Expected
	Metadata map[string]string
}

// ParseYAML parses a YAML scenario file.
func ParseYAML(data []byte) (Scenario, error) {
	var ys YAMLScenario
	if err := yaml.Unmarshal(data, &ys); err != nil {
		return Scenario{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if strings.TrimSpace(ys.Grid) == "" {
		return Scenario{}, ErrNoGrid
	}

	sc := Scenario{
		ID:       ys.ID,
		Name:     ys.Name,
		Grid:     ys.Grid,
		Metadata: ys.Metadata,
	}
	if ys.Expected != nil {
		sc.Expected = &Expected{Visited: ys.Expected.Visited, Loops: ys.Expected.Loops}
	}
	return sc, nil
}

// MarshalYAML renders a scenario as a YAML document.
func MarshalYAML(sc Scenario) ([]byte, error) {
	ys := YAMLScenario{
		ID:       sc.ID,
		Name:     sc.Name,
		Grid:     sc.Grid,
		Metadata: sc.Metadata,
	}
	if sc.Expected != nil {
		ys.Expected = &YAMLExpected{Visited: sc.Expected.Visited, Loops: sc.Expected.Loops}
	}
	return yaml.Marshal(ys)
}

// ParseText wraps a raw text grid. The ID is taken from the file name.
func ParseText(data []byte, path string) (Scenario, error) {
	if strings.TrimSpace(string(data)) == "" {
		return Scenario{}, ErrNoGrid
	}
	id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Scenario{ID: id, Name: id, Grid: string(data)}, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml", ".txt"}
}
