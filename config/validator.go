package config

import (
	"github.com/grovetools/jsonlview/schema"
)

// SchemaValidator validates configuration against the embedded JSON Schema.
type SchemaValidator struct {
	validator *schema.Validator
}

// NewSchemaValidator creates a new schema validator, loading the embedded schema.
func NewSchemaValidator() (*SchemaValidator, error) {
	validator, err := schema.NewValidator()
	if err != nil {
		return nil, err
	}
	return &SchemaValidator{validator: validator}, nil
}

// Validate validates configuration data against the schema.
func (v *SchemaValidator) Validate(configData interface{}) error {
	return v.validator.Validate(configData)
}

// ValidateConfig validates cfg together with its extension sections.
func (v *SchemaValidator) ValidateConfig(cfg *Config) error {
	doc := make(map[string]interface{}, len(cfg.Extensions)+3)
	for key, value := range cfg.Extensions {
		doc[key] = value
	}
	doc["version"] = cfg.Version
	doc["viewer"] = cfg.Viewer
	doc["theme"] = cfg.Theme
	return v.validator.Validate(doc)
}
