package buildergen

import (
	"io/fs"

	golangrenderer "github.com/goliatone/go-buildergen/pkg/renderers/golang"
)

// EmbeddedTemplates exposes the built-in Go renderer templates so callers can
// reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return golangrenderer.TemplatesFS()
}
