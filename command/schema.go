package command

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/invopop/jsonschema"
)

// SchemaID is the resource name of the command schema.
const SchemaID = "onair.commands.json"

// reflector builds a Reflector for payload. Only struct payloads are
// expanded: invopop registers no definition for scalars.
func reflector(payload any) *jsonschema.Reflector {
	t := reflect.TypeOf(payload)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return &jsonschema.Reflector{
		AllowAdditionalProperties:  true,
		Anonymous:                  true,
		DoNotReference:             true,
		ExpandedStruct:             t.Kind() == reflect.Struct,
		RequiredFromJSONSchemaTags: true,
	}
}

// JSONSchema accepts both wire forms of a progress frame.
func (Progress) JSONSchema() *jsonschema.Schema {
	props := jsonschema.NewProperties()
	props.Set("progress", &jsonschema.Schema{Type: "number"})
	props.Set("generation", &jsonschema.Schema{Type: "integer"})
	return &jsonschema.Schema{
		AnyOf: []*jsonschema.Schema{
			{Type: "number", Minimum: json.Number("0"), Maximum: json.Number("1")},
			{
				Type:     "object",
				Required: []string{"progress"},
				Properties: props,
			},
		},
	}
}

// PayloadSchema reflects the payload schema of one command type.
func PayloadSchema(s Spec) (json.RawMessage, error) {
	if s.Payload == nil {
		return nil, nil
	}
	sch := reflector(s.Payload).Reflect(s.Payload)
	sch.Version = ""
	data, err := json.Marshal(sch)
	if err != nil {
		return nil, fmt.Errorf("reflecting %s payload: %w", s.Type, err)
	}
	return data, nil
}

// Schema composes the JSON schema of the wire command. Every known type gets a
// branch constraining its payload; unknown types pass with any payload.
func Schema() ([]byte, error) {
	var branches []map[string]any
	known := Types()
	for _, s := range All() {
		props := map[string]any{
			"type": map[string]any{"const": string(s.Type)},
		}
		branch := map[string]any{"properties": props}
		payload, err := PayloadSchema(s)
		if err != nil {
			return nil, err
		}
		if payload != nil {
			props["payload"] = payload
			branch["required"] = []string{"type", "payload"}
		}
		branches = append(branches, branch)
	}
	branches = append(branches, map[string]any{
		"properties": map[string]any{
			"type": map[string]any{"type": "string", "not": map[string]any{"enum": known}},
		},
	})

	doc := map[string]any{
		"$schema":     "https://json-schema.org/draft/2020-12/schema",
		"$id":         SchemaID,
		"title":       "onair command",
		"description": "A request to change production state.",
		"type":        "object",
		"required":    []string{"type"},
		"properties": map[string]any{
			"type":    map[string]any{"type": "string", "minLength": 1},
			"payload": true,
		},
		"anyOf": branches,
	}
	return json.MarshalIndent(doc, "", "  ")
}
