package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-json"

	"github.com/goliatone/go-buildergen"
	"github.com/goliatone/go-buildergen/pkg/model"
	"github.com/goliatone/go-buildergen/pkg/orchestrator"
	"github.com/goliatone/go-buildergen/pkg/render"
	"github.com/goliatone/go-buildergen/pkg/schema"
)

const snapshotRendererName = "builder-model-snapshot"

// snapshotRenderer writes the planned model instead of Go source so renderer
// tests can start from a fixed model.
type snapshotRenderer struct {
	path string
}

func (r *snapshotRenderer) Name() string {
	return snapshotRendererName
}

func (r *snapshotRenderer) ContentType() string {
	return "application/json"
}

func (r *snapshotRenderer) Render(_ context.Context, file model.FileModel, _ render.RenderOptions) ([]byte, error) {
	payload, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return nil, err
	}
	payload = append(payload, '\n')
	if err := os.WriteFile(r.path, payload, 0o644); err != nil {
		return nil, err
	}
	return payload, nil
}

func main() {
	var (
		sourcePath = flag.String("source", "examples/manifest/manifest.go", "Go source declaring the records")
		types      = flag.String("type", "Manifest,Package,Workspace", "Comma separated record types")
		outputPath = flag.String("output", "pkg/renderers/golang/testdata/manifest_model.json", "output path for the serialized builder model")
	)
	flag.Parse()

	registry := render.NewRegistry()
	registry.MustRegister(&snapshotRenderer{path: *outputPath})

	orch := buildergen.NewOrchestrator(
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer(snapshotRendererName),
		orchestrator.WithTransformer(orchestrator.TransformerFunc(func(_ context.Context, file *model.FileModel) error {
			// Keep the snapshot independent of where the script runs.
			file.Source = "manifest.go"
			return nil
		})),
	)

	_, err := orch.Generate(context.Background(), orchestrator.Request{
		Source: schema.SourceFromFile(*sourcePath),
		Types:  splitTypes(*types),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to snapshot builder model: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Wrote builder model snapshot to %s\n", *outputPath)
}

func splitTypes(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
