// Package config holds the numeric constants threaded through a render
// call. The engine carries no global state: every stage receives a Config
// value rather than reaching for package-level constants, and defaults live
// in this one module. Configs may also be loaded from YAML, for front-ends
// that want to let operators override layout constants without
// recompiling.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config bundles every tunable constant the pipeline needs downstream of
// parsing.
type Config struct {
	FontSize float64 `yaml:"font_size"`
	RowHeight float64 `yaml:"row_height"`

	Gap    float64 `yaml:"gap"`    // horizontal gutter between siblings on a rank
	Margin float64 `yaml:"margin"` // outer canvas margin

	Arrow     float64 `yaml:"arrow"`      // arrowhead size in px
	LabelPad  float64 `yaml:"label_pad"`  // offset of an edge label from its polyline
	LabelGap  float64 `yaml:"label_gap"`  // minimum gap enforced between nudged overlapping labels
	Containment float64 `yaml:"containment"` // max horizontal slack allowed between a child and its container

	Sweeps int `yaml:"sweeps"` // ordering barycenter sweep cap

	WStraightNode    float64 `yaml:"w_straight_node"`
	WStraightVirtual float64 `yaml:"w_straight_virtual"`
	WCenter          float64 `yaml:"w_center"`
	Epsilon          float64 `yaml:"epsilon"`

	SolverTolerance    float64 `yaml:"solver_tolerance"`
	SolverMaxIterations int    `yaml:"solver_max_iterations"`
}

// Default returns the engine's default configuration. row_height defaults
// to font_size*3 per the public API contract.
func Default() Config {
	fontSize := 14.0
	return Config{
		FontSize:  fontSize,
		RowHeight: fontSize * 3,

		Gap:    24,
		Margin: 20,

		Arrow:       7,
		LabelPad:    6,
		LabelGap:    8,
		Containment: 40,

		Sweeps: 24,

		WStraightNode:    1.0,
		WStraightVirtual: 8.0,
		WCenter:          0.5,
		Epsilon:          1e-4,

		SolverTolerance:     1e-4,
		SolverMaxIterations: 4000,
	}
}

// Load reads a Config from a YAML file, starting from Default and
// overriding whatever fields are present.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}
