package orchestrator

import (
	"context"

	"github.com/goliatone/go-buildergen/pkg/model"
)

// Transformer mutates a planned FileModel before it is rendered.
// Implementations can rename builders, adjust setter parameter names or drop
// documentation.
type Transformer interface {
	Transform(ctx context.Context, file *model.FileModel) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, file *model.FileModel) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, file *model.FileModel) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, file)
}
