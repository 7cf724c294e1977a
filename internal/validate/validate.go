// Package validate checks descriptor documents against the descriptor
// JSON schema before they are handed to the loader.
package validate

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	sigsyaml "sigs.k8s.io/yaml"
)

//go:embed schema.json
var schemaText string

var schema = jsonschema.MustCompileString("descriptor.schema.json", schemaText)

// ValidateJSON checks a JSON descriptor document against the schema.
func ValidateJSON(data []byte) error {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing descriptor JSON: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("descriptor does not match schema: %w", err)
	}
	return nil
}

// ValidateYAML converts a YAML descriptor document to JSON and checks it
// against the schema.
func ValidateYAML(data []byte) error {
	if strings.TrimSpace(string(data)) == "" {
		return fmt.Errorf("descriptor document is empty")
	}
	jsonData, err := sigsyaml.YAMLToJSON(data)
	if err != nil {
		return fmt.Errorf("converting descriptor YAML: %w", err)
	}
	return ValidateJSON(jsonData)
}
