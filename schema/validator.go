// Package schema validates inbound documents against JSON schemas.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/grovetools/onair/command"
)

// Validator validates documents against one compiled schema.
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator compiles the schema document data, registered under name.
func NewValidator(name string, data []byte) (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("failed to add schema resource %s: %w", name, err)
	}

	schema, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema %s: %w", name, err)
	}

	return &Validator{schema: schema}, nil
}

// NewCommandValidator compiles the command schema reflected from the payload types.
func NewCommandValidator() (*Validator, error) {
	data, err := command.Schema()
	if err != nil {
		return nil, err
	}
	return NewValidator(command.SchemaID, data)
}

// Validate validates any value that can be marshaled to JSON.
func (v *Validator) Validate(doc interface{}) error {
	jsonData, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document for validation: %w", err)
	}
	return v.ValidateJSON(jsonData)
}

// ValidateJSON validates a raw JSON document.
func (v *Validator) ValidateJSON(data []byte) error {
	var dataToValidate interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&dataToValidate); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	if err := v.schema.Validate(dataToValidate); err != nil {
		if validationErr, ok := err.(*jsonschema.ValidationError); ok {
			var errorMessages []string
			collectErrors(validationErr, &errorMessages)
			return fmt.Errorf("schema validation failed:\n%s", strings.Join(errorMessages, "\n"))
		}
		return fmt.Errorf("schema validation failed: %w", err)
	}

	return nil
}

// collectErrors recursively collects all validation errors into a slice
func collectErrors(err *jsonschema.ValidationError, messages *[]string) {
	if err.InstanceLocation != "" || len(err.Causes) == 0 {
		*messages = append(*messages, fmt.Sprintf("- %s: %s", locationOrRoot(err.InstanceLocation), err.Message))
	}
	for _, cause := range err.Causes {
		collectErrors(cause, messages)
	}
}

func locationOrRoot(loc string) string {
	if loc == "" {
		return "/"
	}
	return loc
}
