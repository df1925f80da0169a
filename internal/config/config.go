package config

import (
	"fmt"
	"time"

	"go.yaml.in/yaml/v3"
)

// Config holds the driver configuration. Every field is optional: an absent
// config file leaves the driver on its built-in tool discovery and an
// unbounded stage runtime.
type Config struct {
	Version string       `json:"version"          yaml:"version"`
	Tools   ToolsConfig  `json:"tools,omitempty"  yaml:"tools,omitempty"`
	Stages  StagesConfig `json:"stages,omitempty" yaml:"stages,omitempty"`
}

// ToolsConfig overrides discovered tool locations. A non-empty value
// short-circuits the search service for that tool.
type ToolsConfig struct {
	Slicer    string `json:"slicer,omitempty"    yaml:"slicer,omitempty"`
	Orienter  string `json:"orienter,omitempty"  yaml:"orienter,omitempty"`
	Converter string `json:"converter,omitempty" yaml:"converter,omitempty"`
	Profile   string `json:"profile,omitempty"   yaml:"profile,omitempty"`
}

// StagesConfig holds per-stage execution policy.
type StagesConfig struct {
	// Timeout bounds each external stage. Zero means no timeout, which is
	// the default: a hung tool hangs the pipeline.
	Timeout Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
}

// Duration is a time.Duration that unmarshals from a Go duration string
// such as "90s" or "15m".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}

	*d = Duration(parsed)
	return nil
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}
