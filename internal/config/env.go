package config

import (
	"errors"
	"fmt"

	"github.com/joeshaw/envdecode"
)

// FromEnv reads the BUILDERGEN_* variables. BUILDERGEN_TYPES separates names
// with semicolons. Unset variables leave their field empty.
func FromEnv() (Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		if errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("config: decode environment: %w", err)
	}
	return cfg, nil
}
