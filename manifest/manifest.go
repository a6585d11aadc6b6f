// Package manifest loads the part of a subgraph manifest (subgraph.yaml)
// that the schema core needs: where the schema lives and how the deployment
// describes itself.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Manifest is the schema-relevant subset of subgraph.yaml.
type Manifest struct {
	SpecVersion string    `yaml:"specVersion"`
	Description string    `yaml:"description"`
	Repository  string    `yaml:"repository"`
	Schema      SchemaRef `yaml:"schema"`

	dir string
}

// SchemaRef points at the schema source file, relative to the manifest.
type SchemaRef struct {
	File string `yaml:"file"`
}

// Load reads and decodes a manifest file.
func Load(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("decoding manifest %s: %w", path, err)
	}
	if m.SpecVersion == "" {
		return nil, fmt.Errorf("manifest %s is missing specVersion", path)
	}
	if m.Schema.File == "" {
		return nil, fmt.Errorf("manifest %s is missing schema.file", path)
	}
	m.dir = filepath.Dir(path)
	return &m, nil
}

// SchemaPath returns the schema file path resolved against the manifest's
// directory.
func (m *Manifest) SchemaPath() string {
	if filepath.IsAbs(m.Schema.File) {
		return m.Schema.File
	}
	return filepath.Join(m.dir, m.Schema.File)
}
