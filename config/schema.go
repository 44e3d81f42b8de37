package config

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

//go:generate sh -c "cd .. && go run ./tools/schema-generator/"

// GenerateSchema generates the JSON Schema for jsonlview.yml. Extensions are
// not part of the reflected struct; the schema allows them as additional
// top-level properties.
func GenerateSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		ExpandedStruct:            true,
		// Use YAML field names for property names
		FieldNameTag: "yaml",
	}

	type BaseConfig struct {
		Version string       `yaml:"version,omitempty" jsonschema:"description=Configuration version (e.g. 1.0)"`
		Viewer  ViewerConfig `yaml:"viewer,omitempty" jsonschema:"description=Document viewer settings"`
		Theme   ThemeConfig  `yaml:"theme,omitempty" jsonschema:"description=Theme settings"`
	}

	schema := r.Reflect(&BaseConfig{})
	schema.Title = "jsonlview Configuration"
	schema.Description = "Schema for jsonlview.yml."
	schema.Version = "http://json-schema.org/draft-07/schema#"
	// Top-level extension sections (e.g. logging) are validated by their owners.
	schema.AdditionalProperties = jsonschema.TrueSchema

	return json.MarshalIndent(schema, "", "  ")
}
