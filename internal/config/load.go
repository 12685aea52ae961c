package config

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultDescriptorFile is the descriptor file looked up in the current
// directory when no path is given.
const DefaultDescriptorFile = "paasboot.yaml"

// Load reads and parses a deployment descriptor from a YAML file.
// Parsing is strict about types (booleans take true/false literals only,
// integers take integers only) but performs no semantic validation;
// that is Resolve's job.
func Load(path string) (*Descriptor, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read descriptor file: %w", err)
	}

	return Parse(data)
}

// Parse decodes descriptor bytes. Split out of Load so tests and the
// wizard writer can round-trip without touching the filesystem.
func Parse(data []byte) (*Descriptor, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	var desc Descriptor
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result: &desc,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build descriptor decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode descriptor: %w", err)
	}

	return &desc, nil
}

// FindDescriptorFile returns the default descriptor path if it exists in
// the current directory.
func FindDescriptorFile() (string, error) {
	if _, err := os.Stat(DefaultDescriptorFile); err != nil {
		return "", fmt.Errorf("descriptor file %s not found: %w", DefaultDescriptorFile, err)
	}
	return DefaultDescriptorFile, nil
}
