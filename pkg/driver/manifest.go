package driver

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Manifest describes one semantics test: a program fixture plus the
// machine-state outcome it must produce.
type Manifest struct {
	Name         string       `yaml:"name"`
	Program      string       `yaml:"program"`
	CallData     string       `yaml:"calldata,omitempty"`
	MaxCallDepth int          `yaml:"maxCallDepth,omitempty"`
	Expect       Expectations `yaml:"expect"`

	// dir resolves the program path relative to the manifest file.
	dir string
}

// Expectations is the observable outcome of a run. Storage keys and
// values are decimal or 0x-hex tokens. Fault names an expected fault kind
// for negative tests; when set, storage and trace are not compared.
type Expectations struct {
	Storage map[string]string `yaml:"storage,omitempty"`
	Trace   []string          `yaml:"trace,omitempty"`
	Fault   string            `yaml:"fault,omitempty"`
}

// LoadManifest reads and validates one YAML manifest.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	if manifest.Program == "" {
		return nil, fmt.Errorf("manifest %s: missing program", path)
	}
	if manifest.Name == "" {
		manifest.Name = filepath.Base(path)
	}
	manifest.dir = filepath.Dir(path)
	return &manifest, nil
}

// ProgramPath returns the program fixture path resolved against the
// manifest's directory.
func (m *Manifest) ProgramPath() string {
	if filepath.IsAbs(m.Program) || m.dir == "" {
		return m.Program
	}
	return filepath.Join(m.dir, m.Program)
}
