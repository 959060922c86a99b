package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/goliatone/go-buildergen/internal/golang"
	"github.com/goliatone/go-buildergen/internal/loader"
	"github.com/goliatone/go-buildergen/internal/openapi"
	"github.com/goliatone/go-buildergen/pkg/model"
	"github.com/goliatone/go-buildergen/pkg/optionality"
	"github.com/goliatone/go-buildergen/pkg/render"
	golangrenderer "github.com/goliatone/go-buildergen/pkg/renderers/golang"
	"github.com/goliatone/go-buildergen/pkg/renderers/jsonmodel"
	"github.com/goliatone/go-buildergen/pkg/schema"
)

const (
	defaultRendererName = golangrenderer.Name
	defaultFormat       = schema.FormatGo
)

// Annotator classifies record fields as optional or required.
// *optionality.Analyzer is the built-in implementation.
type Annotator interface {
	AnnotateFile(file schema.File) (schema.File, error)
}

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom document loader.
func WithLoader(l schema.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = l
	}
}

// WithExtractor registers extractor for format, replacing the built-in one.
func WithExtractor(format schema.Format, extractor schema.Extractor) Option {
	return func(o *Orchestrator) {
		if o.extractors == nil {
			o.extractors = NewExtractorRegistry()
		}
		o.extractors.Set(format, extractor)
	}
}

// WithAnnotator injects the optionality analysis step.
func WithAnnotator(a Annotator) Option {
	return func(o *Orchestrator) {
		o.annotator = a
	}
}

// WithMalformedPolicy configures the built-in analyzer. It has no effect when
// a custom Annotator is injected.
func WithMalformedPolicy(policy optionality.Policy) Option {
	return func(o *Orchestrator) {
		o.policy = policy
	}
}

// WithPlanner injects a custom builder model planner.
func WithPlanner(planner model.Planner) Option {
	return func(o *Orchestrator) {
		o.planner = planner
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithTransformer registers a Transformer that can mutate builder models
// after planning but before rendering.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithLogger sets the logger pipeline stages report to. The default discards
// everything.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// Orchestrator coordinates the full pipeline from record declaration to
// generated builder source. It applies sensible defaults (Go and OpenAPI
// extractors, Go and JSON renderers) while remaining open to dependency
// injection for advanced callers.
type Orchestrator struct {
	loader          schema.Loader
	extractors      *ExtractorRegistry
	annotator       Annotator
	policy          optionality.Policy
	planner         model.Planner
	registry        *render.Registry
	defaultRenderer string
	transformer     Transformer
	logger          *slog.Logger
	initialiseErr   error
	defaultsApplied bool
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations so callers can
// start with a single constructor call.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the inputs required to generate builders for the records
// of one document.
type Request struct {
	// Source identifies where the declaration document lives. Optional when
	// Document is supplied.
	Source schema.Source

	// Document allows callers to bypass the loader when they already hold the
	// payload.
	Document *schema.Document

	// Format selects the extractor. Empty infers it from the document
	// extension and falls back to Go.
	Format schema.Format

	// Types lists the records to generate builders for, in output order. Empty
	// selects the records the extractor considers marked.
	Types []string

	// Package overrides the package clause of the generated file. Required
	// for formats that do not carry a package name.
	Package string

	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string

	// RenderOptions carries per-request renderer settings. Records are always
	// emitted for OpenAPI input since no Go declaration exists for them.
	RenderOptions render.RenderOptions
}

// Generate executes the loader → extractor → analyzer → planner → renderer
// sequence and returns the rendered bytes (Go source for the default
// renderer). No output is produced when any stage fails.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	fm, format, err := o.Plan(ctx, req)
	if err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	opts := req.RenderOptions
	if format == schema.FormatOpenAPI {
		opts.EmitRecords = true
	}
	output, err := renderer.Render(ctx, fm, opts)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	o.logger.Debug("rendered builders", "renderer", renderer.Name(), "bytes", len(output))
	return output, nil
}

// Plan runs every stage up to and including the transformer and returns the
// builder model with the input format that was used.
func (o *Orchestrator) Plan(ctx context.Context, req Request) (model.FileModel, schema.Format, error) {
	if ctx == nil {
		return model.FileModel{}, "", errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return model.FileModel{}, "", err
	}
	if err := o.ready(); err != nil {
		return model.FileModel{}, "", err
	}

	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return model.FileModel{}, "", err
	}
	format := resolveFormat(req.Format, doc)
	extractor, err := o.extractors.Get(format)
	if err != nil {
		return model.FileModel{}, "", err
	}

	file, err := extractor.Extract(ctx, doc, req.Types...)
	if err != nil {
		return model.FileModel{}, "", fmt.Errorf("orchestrator: extract records: %w", err)
	}
	if req.Package != "" {
		file.Package = req.Package
	}
	if file.Package == "" {
		return model.FileModel{}, "", fmt.Errorf("orchestrator: package name is required for %s input", format)
	}
	o.logger.Debug("extracted records", "source", doc.Location(), "format", string(format), "types", file.TypeNames())

	file, err = o.annotator.AnnotateFile(file)
	if err != nil {
		return model.FileModel{}, "", fmt.Errorf("orchestrator: analyze optionality: %w", err)
	}
	for _, s := range file.Structs {
		required, optional := 0, 0
		for _, f := range s.Fields {
			if f.IsOptional {
				optional++
			} else {
				required++
			}
		}
		o.logger.Debug("classified fields", "type", s.TypeName, "required", required, "optional", optional)
	}

	fm, err := o.planner.Plan(file)
	if err != nil {
		return model.FileModel{}, "", fmt.Errorf("orchestrator: plan builders: %w", err)
	}
	if o.transformer != nil {
		if err := o.transformer.Transform(ctx, &fm); err != nil {
			return model.FileModel{}, "", fmt.Errorf("orchestrator: transform model: %w", err)
		}
	}
	return fm, format, nil
}

// ListTypes returns every record the request's document declares, for front
// ends that let the user pick. Extractors that cannot enumerate records
// return an error.
func (o *Orchestrator) ListTypes(ctx context.Context, req Request) ([]string, error) {
	if err := o.ready(); err != nil {
		return nil, err
	}
	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return nil, err
	}
	format := resolveFormat(req.Format, doc)
	extractor, err := o.extractors.Get(format)
	if err != nil {
		return nil, err
	}
	lister, ok := extractor.(schema.TypeLister)
	if !ok {
		return nil, fmt.Errorf("orchestrator: %s extractor cannot list types", format)
	}
	names, err := lister.ListTypes(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: list types: %w", err)
	}
	return names, nil
}

// Renderers returns the names of the registered renderers.
func (o *Orchestrator) Renderers() []string {
	if o.registry == nil {
		return nil
	}
	return o.registry.List()
}

// OutputExtension returns the file extension the named renderer's output is
// written with. An empty name selects the default renderer. Unknown names
// return an error wrapping render.ErrUnknownRenderer.
func (o *Orchestrator) OutputExtension(renderer string) (string, error) {
	if err := o.ready(); err != nil {
		return "", err
	}
	if o.registry == nil {
		return "", errors.New("orchestrator: renderer registry is nil")
	}
	ext, err := o.registry.FileExtension(renderer, o.defaultRenderer)
	if err != nil {
		return "", fmt.Errorf("orchestrator: %w", err)
	}
	return ext, nil
}

func (o *Orchestrator) ready() error {
	if err := o.initialiseErr; err != nil {
		return err
	}
	if !o.defaultsApplied {
		o.applyDefaults()
	}
	return o.initialiseErr
}

func resolveFormat(requested schema.Format, doc schema.Document) schema.Format {
	if requested != "" {
		return requested
	}
	if inferred := schema.FormatFromExt(doc.Ext()); inferred != "" {
		return inferred
	}
	return defaultFormat
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (schema.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return schema.Document{}, errors.New("orchestrator: source or document is required")
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return schema.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	return doc, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	renderer, err := o.registry.Resolve(name, o.defaultRenderer)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}

	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	if o.loader == nil {
		o.loader = loader.New(schema.NewLoaderOptions())
	}
	if o.extractors == nil {
		o.extractors = NewExtractorRegistry()
	}
	if !o.extractors.Has(schema.FormatGo) {
		o.extractors.Set(schema.FormatGo, golang.New())
	}
	if !o.extractors.Has(schema.FormatOpenAPI) {
		o.extractors.Set(schema.FormatOpenAPI, openapi.New(openapi.Options{}))
	}
	if o.annotator == nil {
		o.annotator = optionality.New(o.policy)
	}
	if o.planner == nil {
		o.planner = model.NewPlanner()
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := golangrenderer.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.registry.MustRegister(renderer)
		}
		o.registry.MustRegister(jsonmodel.New())
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}

	o.defaultsApplied = true
}
