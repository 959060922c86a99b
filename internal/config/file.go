package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/hclsimple"
	"gopkg.in/yaml.v3"
)

// LoadFile decodes a YAML (.yaml, .yml) or HCL (.hcl) settings file. Unknown
// keys are rejected in both syntaxes.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Decode(path, data)
}

// Decode parses data using the syntax implied by filename's extension.
func Decode(filename string, data []byte) (Config, error) {
	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil {
			if len(bytes.TrimSpace(data)) == 0 {
				return Config{}, nil
			}
			return Config{}, fmt.Errorf("config: decode %s: %w", filename, err)
		}
	case ".hcl":
		if err := hclsimple.Decode(filename, data, nil, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: decode %s: %w", filename, err)
		}
	default:
		return Config{}, fmt.Errorf("config: unsupported file extension %q", ext)
	}
	return cfg, nil
}
