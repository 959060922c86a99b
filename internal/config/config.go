// Package config resolves the generator settings from defaults, an optional
// YAML or HCL file, BUILDERGEN_* environment variables and command-line
// flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-buildergen/pkg/optionality"
	"github.com/goliatone/go-buildergen/pkg/schema"
)

// Config holds the settings shared by the CLI front ends. Empty strings and
// nil slices mean "not set" when layers are merged.
type Config struct {
	Types         []string `yaml:"types" hcl:"types,optional" env:"BUILDERGEN_TYPES"`
	Source        string   `yaml:"source" hcl:"source,optional" env:"BUILDERGEN_SOURCE"`
	Kind          string   `yaml:"kind" hcl:"kind,optional" env:"BUILDERGEN_KIND"`
	Output        string   `yaml:"output" hcl:"output,optional" env:"BUILDERGEN_OUTPUT"`
	Package       string   `yaml:"package" hcl:"package,optional" env:"BUILDERGEN_PACKAGE"`
	Renderer      string   `yaml:"renderer" hcl:"renderer,optional" env:"BUILDERGEN_RENDERER"`
	Malformed     string   `yaml:"malformed" hcl:"malformed,optional" env:"BUILDERGEN_MALFORMED"`
	RuntimeImport string   `yaml:"runtime_import" hcl:"runtime_import,optional" env:"BUILDERGEN_RUNTIME_IMPORT"`
	LogLevel      string   `yaml:"log_level" hcl:"log_level,optional" env:"BUILDERGEN_LOG_LEVEL"`
	LogFormat     string   `yaml:"log_format" hcl:"log_format,optional" env:"BUILDERGEN_LOG_FORMAT"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Renderer:  "go",
		Malformed: optionality.PolicyAbort.String(),
		LogLevel:  "warn",
		LogFormat: "text",
	}
}

// Merge returns c with every field set in override applied on top.
func (c Config) Merge(override Config) Config {
	out := c
	if len(override.Types) > 0 {
		out.Types = append([]string(nil), override.Types...)
	}
	set := func(dst *string, v string) {
		if strings.TrimSpace(v) != "" {
			*dst = v
		}
	}
	set(&out.Source, override.Source)
	set(&out.Kind, override.Kind)
	set(&out.Output, override.Output)
	set(&out.Package, override.Package)
	set(&out.Renderer, override.Renderer)
	set(&out.Malformed, override.Malformed)
	set(&out.RuntimeImport, override.RuntimeImport)
	set(&out.LogLevel, override.LogLevel)
	set(&out.LogFormat, override.LogFormat)
	return out
}

// Format returns the parsed input kind. Empty means "infer".
func (c Config) Format() (schema.Format, error) {
	return schema.ParseFormat(c.Kind)
}

// Policy returns the parsed malformed wrapper policy.
func (c Config) Policy() (optionality.Policy, error) {
	return optionality.ParsePolicy(c.Malformed)
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if _, err := c.Format(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Policy(); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("config: invalid log level %q: must be debug, info, warn or error", c.LogLevel))
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("config: invalid log format %q: must be text or json", c.LogFormat))
	}
	for _, name := range c.Types {
		if strings.TrimSpace(name) == "" {
			errs = append(errs, errors.New("config: type names must not be empty"))
			break
		}
	}
	return errors.Join(errs...)
}

// Resolve layers the defaults, the file at path (skipped when empty), the
// environment and flags, then validates the result.
func Resolve(path string, flags Config) (Config, error) {
	cfg := Default()
	if path != "" {
		fileCfg, err := LoadFile(path)
		if err != nil {
			return Config{}, err
		}
		cfg = cfg.Merge(fileCfg)
	}
	envCfg, err := FromEnv()
	if err != nil {
		return Config{}, err
	}
	cfg = cfg.Merge(envCfg).Merge(flags)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// SplitList splits a comma separated flag value, dropping blanks.
func SplitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
