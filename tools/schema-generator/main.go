// Command schema-generator writes the embedded configuration schema: the
// reflected jsonlview.yml schema with the logging extension composed in.
package main

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"
	"github.com/sirupsen/logrus"

	"github.com/grovetools/jsonlview/config"
	"github.com/grovetools/jsonlview/logging"
	"github.com/grovetools/jsonlview/schema"
)

func main() {
	log := logrus.New()

	base, err := config.GenerateSchema()
	if err != nil {
		log.Fatalf("Error generating schema: %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(base, &doc); err != nil {
		log.Fatalf("Error decoding base schema: %v", err)
	}

	logSchema, err := loggingSchema()
	if err != nil {
		log.Fatalf("Error generating logging schema: %v", err)
	}
	props, _ := doc["properties"].(map[string]any)
	if props == nil {
		props = map[string]any{}
		doc["properties"] = props
	}
	props["logging"] = logSchema

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		log.Fatalf("Error encoding schema: %v", err)
	}

	outputPath := filepath.Join("schema", schema.FileName)
	if err := os.WriteFile(outputPath, append(data, '\n'), 0o644); err != nil {
		log.Fatalf("Error writing schema file: %v", err)
	}
	log.WithField("path", outputPath).Info("Generated configuration schema")
}

// loggingSchema reflects the logging extension. Every field is optional.
func loggingSchema() (map[string]any, error) {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: true,
		ExpandedStruct:            true,
		DoNotReference:            true,
		FieldNameTag:              "yaml",
	}
	s := r.Reflect(&logging.Config{})
	s.Required = nil
	s.Version = ""
	s.ID = ""
	s.Description = "Logging settings"

	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	return out, json.Unmarshal(data, &out)
}
