package config

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.yaml.in/yaml/v3"

	"github.com/duplex3d/printflow/internal/xfs"
)

//go:embed schema.json
var schemaJSON string

// Load reads and validates the driver config at path. A missing file is not
// an error: the driver runs on defaults.
func Load(path string) (*Config, error) {
	path = xfs.ExpandTilde(path)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{Version: "1"}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("config: invalid YAML in %s: %w", path, err)
	}

	schema, err := jsonschema.CompileString("printflow.v1.schema.json", schemaJSON)
	if err != nil {
		return nil, fmt.Errorf("config: failed to compile schema: %w", err)
	}

	if err := schema.Validate(raw); err != nil {
		return nil, fmt.Errorf("config: validation failed for %s: %w", path, err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal %s: %w", path, err)
	}

	return &config, nil
}
