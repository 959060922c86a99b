// Package buildergen generates builder types for Go records. The root package
// exposes the common entry points; the pipeline stages live under pkg/.
package buildergen

import (
	"context"

	"github.com/goliatone/go-buildergen/pkg/orchestrator"
	"github.com/goliatone/go-buildergen/pkg/render"
	"github.com/goliatone/go-buildergen/pkg/schema"
)

// RenderOptions describes per-request renderer settings.
type RenderOptions = render.RenderOptions

// Request aliases orchestrator.Request for callers that only import the root
// package.
type Request = orchestrator.Request

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Generate loads the Go or OpenAPI source, extracts the named records (the
// marked ones when types is empty) and renders their builders as Go source.
func Generate(ctx context.Context, source schema.Source, types []string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Source: source,
		Types:  types,
	})
}

// GenerateFromDocument renders builders for a pre-loaded document, bypassing
// the loader stage while still delegating to the orchestrator.
func GenerateFromDocument(ctx context.Context, doc schema.Document, types []string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Document: &doc,
		Types:    types,
	})
}
