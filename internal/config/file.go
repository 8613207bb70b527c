package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

const schemaURL = "schema://letterid-config.json"

const schemaDoc = `{
	"type": "object",
	"additionalProperties": false,
	"properties": {
		"attribute_count": {"type": "integer", "minimum": 1},
		"learning_rate":   {"type": "number", "exclusiveMinimum": 0},
		"seed":            {"type": "integer", "minimum": 0},
		"workers":         {"type": "integer", "minimum": 1},
		"train_path":      {"type": "string"},
		"test_path":       {"type": "string"},
		"db_path":         {"type": "string"},
		"delimiter":       {"type": "string", "minLength": 1}
	}
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func fileSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		var doc any
		if err := json.Unmarshal([]byte(schemaDoc), &doc); err != nil {
			schemaErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			schemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(schemaURL)
	})
	return compiledSchema, schemaErr
}

// LoadFile reads a YAML config file and overlays it onto base. Keys the
// file omits keep their base values. The file is checked against the
// config schema before decoding.
func LoadFile(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("read config: %w", err)
	}
	if err := validateDocument(data); err != nil {
		return base, fmt.Errorf("config %s: %w", path, err)
	}
	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, nil
}

// validateDocument checks raw YAML against the schema. The schema library
// expects JSON-shaped values, so the YAML tree is round-tripped through
// encoding/json first.
func validateDocument(data []byte) error {
	var tree any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return fmt.Errorf("invalid YAML: %w", err)
	}
	if tree == nil {
		return nil
	}
	raw, err := json.Marshal(tree)
	if err != nil {
		return fmt.Errorf("convert YAML: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("convert YAML: %w", err)
	}

	schema, err := fileSchema()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
