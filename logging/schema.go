package logging

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// GenerateSchema returns the JSON Schema of the logging extension.
func GenerateSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: true,
		ExpandedStruct:            true,
		FieldNameTag:              "yaml",
	}

	schema := r.Reflect(&Config{})
	schema.Title = "onair Logging Configuration"
	schema.Description = "Schema for the 'logging' section of onair.yml."
	// Every field is optional.
	schema.Required = nil

	return json.MarshalIndent(schema, "", "  ")
}
