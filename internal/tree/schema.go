package tree

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas
var schemaFiles embed.FS

const schemaURL = "https://solverview.dev/schemas/tree.json"

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	data, err := schemaFiles.ReadFile("schemas/tree.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read tree schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(schemaURL, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("failed to add tree schema: %w", err)
	}

	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile tree schema: %w", err)
	}
	return schema, nil
})

func validateSchema(data []byte) error {
	schema, err := compiledSchema()
	if err != nil {
		return err
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
