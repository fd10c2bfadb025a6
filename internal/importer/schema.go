package importer

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CatalogSchema is the top-level YAML structure for a catalog import.
type CatalogSchema struct {
	Plans []PlanImport `yaml:"plans"`
}

// PlanImport defines one catalog plan and the tasks it owns.
type PlanImport struct {
	Ref         string       `yaml:"ref"`
	Name        string       `yaml:"name"`
	Description string       `yaml:"description,omitempty"`
	Tasks       []TaskImport `yaml:"tasks"`
}

type TaskImport struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind,omitempty"`
}

// LoadCatalogSchema reads and parses a YAML catalog file.
func LoadCatalogSchema(path string) (*CatalogSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading import file: %w", err)
	}
	return ParseCatalogSchema(data)
}

// ParseCatalogSchema parses YAML bytes. Unknown keys are rejected.
func ParseCatalogSchema(data []byte) (*CatalogSchema, error) {
	var schema CatalogSchema
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&schema); err != nil {
		return nil, fmt.Errorf("parsing import YAML: %w", err)
	}
	return &schema, nil
}
