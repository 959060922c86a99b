// Package gotemplate renders source templates with the go-template engine.
package gotemplate

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"strings"

	"github.com/flosch/pongo2/v6"
	gotemplate "github.com/goliatone/go-template"

	"github.com/goliatone/go-buildergen/pkg/render/template"
)

// DefaultExtension is appended to template names that do not carry it.
const DefaultExtension = ".tmpl"

// Option configures the adapter before construction.
type Option func(*config)

type config struct {
	templates fs.FS
	extension string
}

// WithFS loads templates from files.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templates = files
	}
}

// WithExtension overrides DefaultExtension.
func WithExtension(ext string) Option {
	return func(cfg *config) {
		if ext = strings.TrimSpace(ext); ext != "" {
			cfg.extension = ext
		}
	}
}

// Engine implements template.TemplateRenderer with a go-template engine.
// Template data reaches templates through its JSON form, so struct fields are
// addressed by their json names. Besides the go-template defaults, templates
// can use the goquote filter to emit Go string literals.
type Engine struct {
	engine *gotemplate.Engine
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New constructs an Engine. A template bundle is required.
func New(options ...Option) (*Engine, error) {
	cfg := config{extension: DefaultExtension}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.templates == nil {
		return nil, errors.New("gotemplate: template bundle is required")
	}

	engine, err := gotemplate.NewRenderer(
		gotemplate.WithFS(cfg.templates),
		gotemplate.WithExtension(cfg.extension),
		gotemplate.WithTemplateFunc(map[string]any{
			"goquote": pongo2.FilterFunction(filterGoQuote),
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: load engine: %w", err)
	}
	return &Engine{engine: engine}, nil
}

// RenderTemplate executes the named template.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.engine == nil {
		return "", errors.New("gotemplate: engine is nil")
	}
	result, err := e.engine.RenderTemplate(name, data, out...)
	if err != nil {
		return "", fmt.Errorf("gotemplate: %w", err)
	}
	return result, nil
}

// filterGoQuote renders the input as a Go string literal.
func filterGoQuote(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsSafeValue(strconv.Quote(in.String())), nil
}
