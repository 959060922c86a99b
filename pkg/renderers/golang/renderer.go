// Package golang renders builder models as gofmt'd Go source.
package golang

import (
	"context"
	"fmt"
	"go/format"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/goliatone/go-buildergen/pkg/model"
	"github.com/goliatone/go-buildergen/pkg/render"
	rendertemplate "github.com/goliatone/go-buildergen/pkg/render/template"
	gotemplate "github.com/goliatone/go-buildergen/pkg/render/template/gotemplate"
)

// Name is the registry name of the Go renderer.
const Name = "go"

const fileTemplate = "templates/file.tmpl"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. The bundle
// must provide templates/file.tmpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

type Renderer struct {
	templates rendertemplate.TemplateRenderer
}

var (
	_ render.Renderer        = (*Renderer)(nil)
	_ render.FileExtensioner = (*Renderer)(nil)
)

// New constructs the Go renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("go renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/x-go; charset=utf-8"
}

func (r *Renderer) FileExtension() string {
	return ".go"
}

// Render executes the file template and formats the result with go/format.
// A formatting failure returns the unformatted source along with the error so
// callers can inspect what the template produced.
func (r *Renderer) Render(ctx context.Context, file model.FileModel, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.templates == nil {
		return nil, fmt.Errorf("go renderer: template renderer is nil")
	}
	if len(file.Builders) == 0 {
		return nil, fmt.Errorf("go renderer: file model has no builders")
	}

	source := ""
	if file.Source != "" {
		source = filepath.Base(file.Source)
	}

	result, err := r.templates.RenderTemplate(fileTemplate, map[string]any{
		"file":        file,
		"generator":   options.GeneratorName(),
		"source":      source,
		"emitRecords": options.EmitRecords,
	})
	if err != nil {
		return nil, fmt.Errorf("go renderer: render template: %w", err)
	}
	if options.SkipFormat {
		return []byte(result), nil
	}

	formatted, err := format.Source([]byte(result))
	if err != nil {
		return []byte(result), fmt.Errorf("go renderer: format generated source: %w", err)
	}
	return formatted, nil
}
