package template

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// referenceDataset is the authored CMC deliverable table shipped with the binary.
//
//go:embed data/cmc_milestones.yaml
var referenceDataset []byte

// LoadSchema reads and parses a dataset YAML file.
func LoadSchema(path string) (*DatasetSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSchema(data)
}

// ParseSchema parses dataset YAML. Unknown fields are rejected.
func ParseSchema(data []byte) (*DatasetSchema, error) {
	var schema DatasetSchema
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&schema); err != nil {
		return nil, fmt.Errorf("parsing dataset: %w", err)
	}
	return &schema, nil
}

// ReferenceSchema parses the embedded reference dataset.
func ReferenceSchema() (*DatasetSchema, error) {
	schema, err := ParseSchema(referenceDataset)
	if err != nil {
		return nil, fmt.Errorf("embedded dataset: %w", err)
	}
	return schema, nil
}
