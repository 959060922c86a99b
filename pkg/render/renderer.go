package render

import (
	"context"

	"github.com/goliatone/go-buildergen/pkg/model"
)

// Renderer converts a FileModel into an artifact (Go source, JSON, ...).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, file model.FileModel, options RenderOptions) ([]byte, error)
}
