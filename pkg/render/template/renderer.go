package template

import (
	"io"
)

// TemplateRenderer renders a named template from a bundle. The result is
// returned and also written to every writer in out.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
}
