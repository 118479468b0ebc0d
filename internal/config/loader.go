package config

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.yaml.in/yaml/v3"
)

//go:embed schema/modelprobe.v1.schema.json
var embeddedSchema string

// LoadAndValidate loads and validates the configuration.
// If schemaPath is empty, the embedded schema is used.
func LoadAndValidate(path, schemaPath string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read config: %w", err)
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}

	schema, err := compileSchema(schemaPath)
	if err != nil {
		return nil, err
	}

	if err := schema.Validate(raw); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal into Config struct: %w", err)
	}

	// Semantic checks the schema cannot express.
	if _, err := config.Probe.IntervalDuration(); err != nil {
		return nil, fmt.Errorf("config: probe.interval: %w", err)
	}
	if _, err := config.Probe.CacheTTLDuration(); err != nil {
		return nil, fmt.Errorf("config: probe.cache_ttl: %w", err)
	}
	for id, model := range config.Models {
		if _, err := model.GetSource(); err != nil {
			return nil, fmt.Errorf("config: model %q: %w", id, err)
		}
	}

	return &config, nil
}

func compileSchema(schemaPath string) (*jsonschema.Schema, error) {
	if schemaPath != "" {
		schema, err := jsonschema.Compile(schemaPath)
		if err != nil {
			return nil, fmt.Errorf("config: failed to compile schema: %w", err)
		}
		return schema, nil
	}

	schema, err := jsonschema.CompileString("modelprobe.v1.schema.json", embeddedSchema)
	if err != nil {
		return nil, fmt.Errorf("config: failed to compile embedded schema: %w", err)
	}
	return schema, nil
}
