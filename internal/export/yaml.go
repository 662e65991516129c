// Package export writes an aggregated bundle to disk.
package export

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/brizzai/mcp-agent/internal/models"
	"gopkg.in/yaml.v3"
)

// WithYAMLSuffix appends ".yaml" unless filename already ends in .yaml or .yml
func WithYAMLSuffix(filename string) string {
	if strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml") {
		return filename
	}
	return filename + ".yaml"
}

// MarshalBundle encodes the bundle as YAML with two-space indentation
func MarshalBundle(bundle *models.Bundle) ([]byte, error) {
	if bundle == nil {
		return nil, fmt.Errorf("bundle is nil")
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(bundle); err != nil {
		return nil, fmt.Errorf("failed to marshal bundle: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("failed to marshal bundle: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportBundleToYamlFile writes the bundle to filename and returns the path
// actually written.
func ExportBundleToYamlFile(bundle *models.Bundle, filename string) (string, error) {
	data, err := MarshalBundle(bundle)
	if err != nil {
		return "", err
	}

	path := WithYAMLSuffix(filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write export file %s: %w", path, err)
	}
	return path, nil
}
