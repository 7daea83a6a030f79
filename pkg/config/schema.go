package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

// configSchema constrains the config document beyond what YAML decoding
// checks: field types, the provider enum, the threshold range, and unknown
// keys.
const configSchema = `{
	"type": "object",
	"additionalProperties": false,
	"properties": {
		"provider": {"type": "string", "enum": ["anthropic", "openai"]},
		"model": {"type": "string", "minLength": 1},
		"max_tokens": {"type": "integer", "minimum": 1},
		"threshold": {"type": "integer", "minimum": 0, "maximum": 100},
		"api_key_env": {"type": "string"},
		"expected_column": {"type": "string", "minLength": 1}
	}
}`

// ValidateSchema checks the YAML config file at path against the embedded
// JSON Schema. It reports unknown keys, wrong types, and out-of-range values
// with the schema's own error messages.
func ValidateSchema(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}

	// Round-trip through JSON so the document uses the value types the
	// schema validator expects.
	jsonBytes, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("converting config document: %w", err)
	}
	var v any
	if err := json.Unmarshal(jsonBytes, &v); err != nil {
		return fmt.Errorf("converting config document: %w", err)
	}

	var schemaDoc any
	if err := json.Unmarshal([]byte(configSchema), &schemaDoc); err != nil {
		return fmt.Errorf("invalid embedded schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource("config.json", schemaDoc); err != nil {
		return fmt.Errorf("invalid embedded schema: %w", err)
	}
	sch, err := c.Compile("config.json")
	if err != nil {
		return fmt.Errorf("compiling embedded schema: %w", err)
	}

	if err := sch.Validate(v); err != nil {
		return fmt.Errorf("config file %s does not match schema: %w", path, err)
	}
	return nil
}
